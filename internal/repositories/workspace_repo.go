package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/influencer-portal/backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkspaceRepo mirrors applications and collaborations per user e-mail.
type WorkspaceRepo struct {
	pool *pgxpool.Pool
}

func NewWorkspaceRepo(pool *pgxpool.Pool) *WorkspaceRepo {
	return &WorkspaceRepo{pool: pool}
}

func (r *WorkspaceRepo) LoadWorkspace(ctx context.Context, email string) (models.WorkspaceSnapshot, error) {
	var snap models.WorkspaceSnapshot

	apps, err := r.listApplications(ctx, email)
	if err != nil {
		return snap, fmt.Errorf("load applications: %w", err)
	}
	collabs, err := r.listCollaborations(ctx, email)
	if err != nil {
		return snap, fmt.Errorf("load collaborations: %w", err)
	}

	snap.Applications = apps
	snap.Collaborations = collabs
	return snap, nil
}

func (r *WorkspaceRepo) SaveApplication(ctx context.Context, email string, app models.Application) error {
	campaignBytes, err := json.Marshal(app.Campaign)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO applications (id, user_email, campaign_id, campaign, status, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = now()
	`, app.ID, email, app.Campaign.ID, campaignBytes, app.Status, app.AppliedDate)
	return err
}

func (r *WorkspaceRepo) SaveCollaboration(ctx context.Context, email string, c models.Collaboration) error {
	campaignBytes, err := json.Marshal(c.Campaign)
	if err != nil {
		return err
	}
	workflowBytes, err := json.Marshal(c.Workflow)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO collaborations (id, application_id, user_email, campaign, status, workflow)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			workflow = EXCLUDED.workflow,
			updated_at = now()
	`, c.ID, c.ApplicationID, email, campaignBytes, c.Status, workflowBytes)
	return err
}

func (r *WorkspaceRepo) listApplications(ctx context.Context, email string) ([]models.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign, status, applied_at
		FROM applications WHERE user_email = $1
		ORDER BY applied_at, id
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var a models.Application
		var campaignBytes []byte
		if err := rows.Scan(&a.ID, &campaignBytes, &a.Status, &a.AppliedDate); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(campaignBytes, &a.Campaign); err != nil {
			return nil, fmt.Errorf("application %s: %w", a.ID, err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *WorkspaceRepo) listCollaborations(ctx context.Context, email string) ([]models.Collaboration, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, application_id, campaign, status, workflow
		FROM collaborations WHERE user_email = $1
		ORDER BY created_at, id
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collabs []models.Collaboration
	for rows.Next() {
		var c models.Collaboration
		var campaignBytes, workflowBytes []byte
		if err := rows.Scan(&c.ID, &c.ApplicationID, &campaignBytes, &c.Status, &workflowBytes); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(campaignBytes, &c.Campaign); err != nil {
			return nil, fmt.Errorf("collaboration %s: %w", c.ID, err)
		}
		if err := json.Unmarshal(workflowBytes, &c.Workflow); err != nil {
			return nil, fmt.Errorf("collaboration %s workflow: %w", c.ID, err)
		}
		collabs = append(collabs, c)
	}
	return collabs, rows.Err()
}
