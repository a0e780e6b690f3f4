package services

import (
	"context"
	"fmt"

	"github.com/influencer-portal/backend/internal/catalog"
	"github.com/influencer-portal/backend/internal/models"
	"go.uber.org/zap"
)

type CampaignService struct {
	catalog *catalog.Catalog
	log     *zap.Logger
}

func NewCampaignService(cat *catalog.Catalog, log *zap.Logger) *CampaignService {
	return &CampaignService{catalog: cat, log: log}
}

// List returns every campaign, or those carrying tag when it is set.
func (s *CampaignService) List(tag string) []models.Campaign {
	if tag == "" {
		return s.catalog.All()
	}
	return s.catalog.FilterByTag(tag)
}

func (s *CampaignService) Tags() []string {
	return s.catalog.Tags()
}

func (s *CampaignService) Get(id int) (*models.Campaign, error) {
	c, ok := s.catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("campaign %d: %w", id, ErrNotFound)
	}
	return &c, nil
}

// Apply records the user's interest in campaign id. Applying twice returns the
// existing application with created=false.
func (s *CampaignService) Apply(ctx context.Context, ws *Workspace, id int) (*models.Application, bool, error) {
	campaign, err := s.Get(id)
	if err != nil {
		return nil, false, err
	}
	app, created, err := ws.Apply(ctx, *campaign)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.log.Info("application created",
			zap.String("email", ws.Email()),
			zap.String("application_id", app.ID),
			zap.Int("campaign_id", id),
		)
	}
	return &app, created, nil
}
