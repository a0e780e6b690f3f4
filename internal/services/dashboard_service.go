package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/influencer-portal/backend/internal/models"
)

const recentActivityLimit = 2

type ActivityItem struct {
	Kind        string    `json:"kind"`
	ID          string    `json:"id"`
	BrandName   string    `json:"brand_name"`
	Title       string    `json:"title"`
	StatusLabel string    `json:"status_label"`
	Date        time.Time `json:"date"`
}

type Dashboard struct {
	ActiveCollaborations int            `json:"active_collaborations"`
	PendingApplications  int            `json:"pending_applications"`
	ProfileCompletion    int            `json:"profile_completion"`
	RecentActivity       []ActivityItem `json:"recent_activity"`
}

type DashboardService struct {
	profiles *ProfileService
}

func NewDashboardService(profiles *ProfileService) *DashboardService {
	return &DashboardService{profiles: profiles}
}

func (s *DashboardService) Get(ctx context.Context, ws *Workspace) (*Dashboard, error) {
	profile, err := s.profiles.Get(ctx, ws.Email())
	if err != nil {
		return nil, err
	}
	d := BuildDashboard(*profile, ws.Snapshot())
	return &d, nil
}

// BuildDashboard summarizes a workspace for the landing page.
func BuildDashboard(p models.UserProfile, snap models.WorkspaceSnapshot) Dashboard {
	pending := ListApplications(snap.Applications, snap.Collaborations)
	active := FilterCollaborations(snap.Collaborations, models.CollaborationStatusInProgress)

	latest := append([]models.Application(nil), pending...)
	sort.SliceStable(latest, func(i, j int) bool {
		return latest[i].AppliedDate.After(latest[j].AppliedDate)
	})

	activity := make([]ActivityItem, 0, 2*recentActivityLimit)
	for i := 0; i < len(latest) && i < recentActivityLimit; i++ {
		a := latest[i]
		activity = append(activity, ActivityItem{
			Kind:        DirectoryKindApplication,
			ID:          a.ID,
			BrandName:   a.Campaign.BrandName,
			Title:       a.Campaign.CampaignTitle,
			StatusLabel: a.Status,
			Date:        a.AppliedDate,
		})
	}
	for i := 0; i < len(active) && i < recentActivityLimit; i++ {
		c := active[i]
		item := ActivityItem{
			Kind:        DirectoryKindCollaboration,
			ID:          c.ID,
			BrandName:   c.Campaign.BrandName,
			Title:       c.Campaign.CampaignTitle,
			StatusLabel: models.StatusLabel(c),
		}
		if step, ok := models.FrontierStep(c); ok && step.Date != nil {
			item.Date = *step.Date
		}
		activity = append(activity, item)
	}

	return Dashboard{
		ActiveCollaborations: len(active),
		PendingApplications:  len(pending),
		ProfileCompletion:    ProfileCompletion(p),
		RecentActivity:       activity,
	}
}

// ProfileCompletion is the rounded share of the sixteen profile fields filled in.
func ProfileCompletion(p models.UserProfile) int {
	fields := []bool{
		p.FullName != "",
		p.Bio != "",
		p.Phone != "",
		p.Country != "",
		p.City != "",
		p.DOB != "",
		p.Gender != "",
		len(p.Languages) > 0,
		len(p.Niche) > 0,
		len(p.Website) > 0,
		p.Experience > 0,
		len(p.AudienceDemographics) > 0,
		p.ContentStyle != "",
		len(p.PreferredCollaborations) > 0,
		len(p.Interests) > 0,
		len(p.SocialAccounts) > 0,
	}
	done := 0
	for _, ok := range fields {
		if ok {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(fields)) * 100))
}
