package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/influencer-portal/backend/internal/clock"
	"github.com/influencer-portal/backend/internal/events"
	"github.com/influencer-portal/backend/internal/models"
	"github.com/influencer-portal/backend/internal/rbac"
	"go.uber.org/zap"
)

const persistTimeout = 5 * time.Second

// WorkspaceStore mirrors workspace state into durable storage.
type WorkspaceStore interface {
	LoadWorkspace(ctx context.Context, email string) (models.WorkspaceSnapshot, error)
	SaveApplication(ctx context.Context, email string, app models.Application) error
	SaveCollaboration(ctx context.Context, email string, c models.Collaboration) error
}

type AuditLogger interface {
	Log(ctx context.Context, entry models.AuditLog) error
}

// AuditHistory reads back what AuditLogger recorded for one user.
type AuditHistory interface {
	GetByEntity(ctx context.Context, actorEmail, entityType, entityID string, limit, offset int) ([]models.AuditLog, error)
}

type WorkspaceOptions struct {
	AcceptanceDelay    time.Duration
	BrandResponseDelay time.Duration
	BrandFeedback      string
}

// Workspace is the state of one signed-in user: applications, collaborations
// and the directory selection. All mutations are serialized by mu, including
// the ones made by simulator timers.
type Workspace struct {
	email string

	mu             sync.Mutex
	applications   []models.Application
	collaborations []models.Collaboration
	selection      *DirectoryRef
	closed         bool
	owned          map[uint64]clock.Timer
	ownedSeq       uint64

	acceptance *AcceptanceSimulator
	brand      *BrandSimulator
	ids        *IDGenerator

	store     WorkspaceStore
	audit     AuditLogger
	publisher events.Publisher
	clock     clock.Clock
	log       *zap.Logger
}

func NewWorkspace(
	email string,
	store WorkspaceStore,
	audit AuditLogger,
	publisher events.Publisher,
	clk clock.Clock,
	ids *IDGenerator,
	opts WorkspaceOptions,
	log *zap.Logger,
) *Workspace {
	return &Workspace{
		email:      email,
		owned:      make(map[uint64]clock.Timer),
		acceptance: NewAcceptanceSimulator(clk, opts.AcceptanceDelay),
		brand:      NewBrandSimulator(clk, opts.BrandResponseDelay, opts.BrandFeedback),
		ids:        ids,
		store:      store,
		audit:      audit,
		publisher:  publisher,
		clock:      clk,
		log:        log.With(zap.String("email", email)),
	}
}

func (w *Workspace) Email() string {
	return w.email
}

// Load replaces the in-memory state with the stored snapshot and resumes any
// pending simulation. An unreadable store yields an empty workspace.
func (w *Workspace) Load(ctx context.Context) {
	snap, err := w.store.LoadWorkspace(ctx, w.email)
	if err != nil {
		w.log.Warn("failed to load workspace, starting empty", zap.Error(err))
		snap = models.WorkspaceSnapshot{}
	}

	collabs := make([]models.Collaboration, 0, len(snap.Collaborations))
	for _, c := range snap.Collaborations {
		if err := models.CheckFrontier(c.Workflow); err != nil {
			w.log.Warn("dropping stored collaboration with broken workflow",
				zap.String("collaboration_id", c.ID),
				zap.Error(err),
			)
			continue
		}
		collabs = append(collabs, c)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.applications = snap.Applications
	w.collaborations = collabs
	w.reconcileSelection()
	w.scheduleAcceptance()
	w.scheduleBrand()
}

// Close stops every timer the workspace owns. Callbacks that already fired
// observe the closed flag and do nothing. Safe to call more than once.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	w.acceptance.Stop()
	w.brand.Stop()
	for id, t := range w.owned {
		t.Stop()
		delete(w.owned, id)
	}
}

func (w *Workspace) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// AfterFunc runs fn after d unless the workspace is closed first. fn runs with
// the workspace lock held and must not call back into the workspace.
func (w *Workspace) AfterFunc(d time.Duration, fn func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWorkspaceClosed
	}
	w.ownedSeq++
	id := w.ownedSeq
	w.owned[id] = w.clock.AfterFunc(d, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if _, ok := w.owned[id]; !ok {
			return
		}
		delete(w.owned, id)
		if w.closed {
			return
		}
		fn()
	})
	return nil
}

func (w *Workspace) Applications() []models.Application {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Application(nil), w.applications...)
}

func (w *Workspace) Collaborations() []models.Collaboration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Collaboration(nil), w.collaborations...)
}

func (w *Workspace) Snapshot() models.WorkspaceSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return models.WorkspaceSnapshot{
		Applications:   append([]models.Application(nil), w.applications...),
		Collaborations: append([]models.Collaboration(nil), w.collaborations...),
	}
}

func (w *Workspace) Collaboration(id string) (models.Collaboration, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	idx := findCollaboration(w.collaborations, id)
	if idx < 0 {
		return models.Collaboration{}, false
	}
	return w.collaborations[idx], true
}

// PendingApplications lists applications still waiting for the brand.
func (w *Workspace) PendingApplications() []models.Application {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ListApplications(w.applications, w.collaborations)
}

func (w *Workspace) FilterCollaborations(status string) []models.Collaboration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return FilterCollaborations(w.collaborations, status)
}

// Apply records interest in campaign. A second application to the same
// campaign returns the existing one with created=false.
func (w *Workspace) Apply(ctx context.Context, campaign models.Campaign) (models.Application, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return models.Application{}, false, ErrWorkspaceClosed
	}

	apps, app, created := Apply(w.applications, campaign, w.ids.Next(applicationIDPrefix), w.clock.Now())
	if !created {
		return app, false, nil
	}
	w.applications = apps
	w.saveApplication(ctx, app)
	w.record(ctx, "user", "application_created", "application", app.ID, map[string]any{"campaign_id": campaign.ID})
	w.publish(ctx, events.EventApplicationCreated, map[string]any{
		"application_id": app.ID,
		"campaign_id":    campaign.ID,
	})

	w.scheduleAcceptance()
	return app, true, nil
}

// Advance completes stepID of collaboration collabID on behalf of the user.
// Steps that are not Action Needed are left alone and changed is false.
func (w *Workspace) Advance(ctx context.Context, collabID string, stepID int) (models.Collaboration, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return models.Collaboration{}, false, ErrWorkspaceClosed
	}

	idx := findCollaboration(w.collaborations, collabID)
	if idx < 0 {
		return models.Collaboration{}, false, fmt.Errorf("collaboration %s: %w", collabID, ErrNotFound)
	}

	current := w.collaborations[idx]
	if step, ok := models.CurrentActionStep(current); ok && step.ID == stepID && !rbac.CanAdvance(rbac.RoleInfluencer, step.Actor) {
		return current, false, nil
	}
	next, changed := models.Advance(current, stepID, w.clock.Now())
	if !changed {
		return current, false, nil
	}
	next = completeIfDone(next)
	w.commitCollaboration(ctx, idx, next, "user", stepID)

	w.scheduleBrand()
	return next, true, nil
}

// Select sets the directory selection. An empty kind clears it.
func (w *Workspace) Select(ref DirectoryRef) (DirectoryItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ref.Kind == "" {
		w.selection = nil
		return DirectoryItem{}, nil
	}
	item, ok := Resolve(w.applications, w.collaborations, ref)
	if !ok {
		return DirectoryItem{}, fmt.Errorf("%s %s: %w", ref.Kind, ref.ID, ErrNotFound)
	}
	w.selection = &ref
	return item, nil
}

// Selected returns the selected item, if it still exists.
func (w *Workspace) Selected() (DirectoryItem, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selection == nil {
		return DirectoryItem{}, false
	}
	return Resolve(w.applications, w.collaborations, *w.selection)
}

func (w *Workspace) acceptNext() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	pending, ok := NextPendingApplication(w.applications)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	apps, collabs, collab, accepted := Accept(w.applications, w.collaborations, pending.ID)
	if accepted {
		w.applications = apps
		w.collaborations = collabs
		w.saveApplication(ctx, apps[findApplication(apps, pending.ID)])
		w.saveCollaboration(ctx, collab)
		w.record(ctx, "brand", "application_accepted", "application", pending.ID, map[string]any{"collaboration_id": collab.ID})
		w.publish(ctx, events.EventApplicationAccepted, map[string]any{
			"application_id":   pending.ID,
			"collaboration_id": collab.ID,
		})
		w.reconcileSelection()
		w.log.Info("application accepted",
			zap.String("application_id", pending.ID),
			zap.String("collaboration_id", collab.ID),
		)
	}

	w.scheduleAcceptance()
}

func (w *Workspace) brandTurn() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	idx, ok := NextBrandTurn(w.collaborations)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	before := w.collaborations[idx]
	step, _ := models.FrontierStep(before)
	next, changed := RespondAsBrand(before, w.brand.Feedback(), w.clock.Now())
	if changed {
		w.commitCollaboration(ctx, idx, next, "brand", step.ID)
	}

	w.scheduleBrand()
}

// commitCollaboration stores c at idx and mirrors, audits and publishes it.
// Caller holds mu.
func (w *Workspace) commitCollaboration(ctx context.Context, idx int, c models.Collaboration, actor string, stepID int) {
	collabs := make([]models.Collaboration, len(w.collaborations))
	copy(collabs, w.collaborations)
	collabs[idx] = c
	w.collaborations = collabs

	w.saveCollaboration(ctx, c)
	w.record(ctx, actor, "collaboration_step_advanced", "collaboration", c.ID, map[string]any{
		"step_id": stepID,
		"status":  c.Status,
	})
	w.publish(ctx, events.EventCollaborationUpdated, map[string]any{
		"collaboration_id": c.ID,
		"status":           c.Status,
		"status_label":     models.StatusLabel(c),
		"step_id":          stepID,
	})
}

func (w *Workspace) scheduleAcceptance() {
	if w.closed {
		return
	}
	if _, ok := NextPendingApplication(w.applications); ok {
		w.acceptance.Schedule(w.acceptNext)
	}
}

func (w *Workspace) scheduleBrand() {
	if w.closed {
		return
	}
	if _, ok := NextBrandTurn(w.collaborations); ok {
		w.brand.Schedule(w.brandTurn)
	}
}

func (w *Workspace) reconcileSelection() {
	if w.selection == nil {
		return
	}
	if _, ok := Resolve(w.applications, w.collaborations, *w.selection); !ok {
		w.selection = nil
	}
}

func (w *Workspace) saveApplication(ctx context.Context, app models.Application) {
	if err := w.store.SaveApplication(ctx, w.email, app); err != nil {
		w.log.Warn("failed to persist application", zap.String("application_id", app.ID), zap.Error(err))
	}
}

func (w *Workspace) saveCollaboration(ctx context.Context, c models.Collaboration) {
	if err := w.store.SaveCollaboration(ctx, w.email, c); err != nil {
		w.log.Warn("failed to persist collaboration", zap.String("collaboration_id", c.ID), zap.Error(err))
	}
}

func (w *Workspace) record(ctx context.Context, actorType, action, entityType, entityID string, meta map[string]any) {
	email := w.email
	_ = w.audit.Log(ctx, models.AuditLog{
		ActorEmail: &email,
		ActorType:  actorType,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Meta:       meta,
	})
}

func (w *Workspace) publish(ctx context.Context, eventType string, payload map[string]any) {
	_ = w.publisher.Publish(ctx, events.StreamPortal, events.Event{
		Type:      eventType,
		UserEmail: w.email,
		Payload:   payload,
	})
}
