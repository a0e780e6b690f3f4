package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/influencer-portal/backend/internal/catalog"
	"github.com/influencer-portal/backend/internal/clock"
	"github.com/influencer-portal/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testEmail       = "ava@example.com"
	acceptanceDelay = 5 * time.Second
	brandDelay      = 4 * time.Second
	testFeedback    = "Show the label in the first shot."
)

var testStart = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type workspaceFixture struct {
	ws    *Workspace
	clock *clock.Fake
	store *memWorkspaceStore
	audit *memAudit
	pub   *memPublisher
}

func newWorkspaceFixture(t *testing.T) *workspaceFixture {
	t.Helper()
	f := &workspaceFixture{
		clock: clock.NewFake(testStart),
		store: newMemWorkspaceStore(),
		audit: &memAudit{},
		pub:   &memPublisher{},
	}
	f.ws = f.open()
	t.Cleanup(f.ws.Close)
	return f
}

func (f *workspaceFixture) open() *Workspace {
	ws := NewWorkspace(testEmail, f.store, f.audit, f.pub, f.clock, NewIDGenerator(f.clock), WorkspaceOptions{
		AcceptanceDelay:    acceptanceDelay,
		BrandResponseDelay: brandDelay,
		BrandFeedback:      testFeedback,
	}, zap.NewNop())
	ws.Load(context.Background())
	return ws
}

func campaign(t *testing.T, id int) models.Campaign {
	t.Helper()
	c, ok := catalog.Default().Get(id)
	require.True(t, ok, "campaign %d missing from catalog", id)
	return c
}

func TestEndToEndCampaign42(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	require.Empty(t, f.ws.Applications())

	app, created, err := f.ws.Apply(ctx, campaign(t, 42))
	require.NoError(t, err)
	require.True(t, created)

	apps := f.ws.Applications()
	require.Len(t, apps, 1)
	assert.Equal(t, models.ApplicationStatusApplied, apps[0].Status)
	assert.Equal(t, 42, apps[0].Campaign.ID)

	f.clock.Advance(acceptanceDelay)

	apps = f.ws.Applications()
	require.Len(t, apps, 1)
	assert.Equal(t, models.ApplicationStatusAccepted, apps[0].Status)

	collab, ok := f.ws.Collaboration(models.CollaborationID(app.ID))
	require.True(t, ok, "collaboration not created")
	assert.Equal(t, models.StepStatusActionNeeded, collab.Workflow[0].Status)
	for _, s := range collab.Workflow[1:] {
		assert.Equal(t, models.StepStatusUpcoming, s.Status)
	}

	advanced, changed, err := f.ws.Advance(ctx, collab.ID, collab.Workflow[0].ID)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, models.StepStatusCompleted, advanced.Workflow[0].Status)
	assert.NotNil(t, advanced.Workflow[0].Date)
	assert.Equal(t, models.StepStatusWaiting, advanced.Workflow[1].Status)

	again, changed, err := f.ws.Advance(ctx, collab.ID, advanced.Workflow[1].ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, advanced.Workflow, again.Workflow)

	stored, _ := f.ws.Collaboration(collab.ID)
	assert.Equal(t, advanced.Workflow, stored.Workflow)
}

func TestApplyTwiceKeepsOneApplication(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	first, created, err := f.ws.Apply(ctx, campaign(t, 42))
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := f.ws.Apply(ctx, campaign(t, 42))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.ws.Applications(), 1)

	// Still refused once accepted.
	f.clock.Advance(acceptanceDelay)
	_, created, _ = f.ws.Apply(ctx, campaign(t, 42))
	assert.False(t, created)
	assert.Len(t, f.ws.Applications(), 1)
}

func TestAcceptancePromotesExactlyOnce(t *testing.T) {
	f := newWorkspaceFixture(t)
	app, _, err := f.ws.Apply(context.Background(), campaign(t, 1))
	require.NoError(t, err)

	f.clock.Advance(acceptanceDelay)
	f.clock.Advance(10 * acceptanceDelay)

	collabs := f.ws.Collaborations()
	require.Len(t, collabs, 1)
	assert.Equal(t, models.CollaborationID(app.ID), collabs[0].ID)
	assert.Equal(t, app.ID, collabs[0].ApplicationID)
	assert.Equal(t, models.ApplicationStatusAccepted, f.ws.Applications()[0].Status)
	assert.Equal(t, 1, countEqual(f.pub.types(), "application_accepted"))
}

func TestAcceptanceOldestFirstAndKeepsArmedTimer(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	first, _, _ := f.ws.Apply(ctx, campaign(t, 1))
	f.clock.Advance(3 * time.Second)
	second, _, _ := f.ws.Apply(ctx, campaign(t, 2))

	// The first timer was armed at t0 and is not pushed back by the second apply.
	f.clock.Advance(2 * time.Second)
	_, ok := f.ws.Collaboration(models.CollaborationID(first.ID))
	assert.True(t, ok, "oldest application should be accepted first")
	_, ok = f.ws.Collaboration(models.CollaborationID(second.ID))
	assert.False(t, ok)

	f.clock.Advance(acceptanceDelay)
	_, ok = f.ws.Collaboration(models.CollaborationID(second.ID))
	assert.True(t, ok, "next pending application should be accepted after another delay")
}

func TestCloseCancelsAcceptance(t *testing.T) {
	f := newWorkspaceFixture(t)
	_, _, err := f.ws.Apply(context.Background(), campaign(t, 42))
	require.NoError(t, err)

	f.clock.Advance(acceptanceDelay / 2)
	f.ws.Close()
	f.clock.Advance(2 * acceptanceDelay)

	assert.Empty(t, f.ws.Collaborations())
	apps := f.ws.Applications()
	require.Len(t, apps, 1)
	assert.Equal(t, models.ApplicationStatusApplied, apps[0].Status)
	assert.Zero(t, f.clock.Pending())
}

func TestClosedWorkspaceRejectsMutations(t *testing.T) {
	f := newWorkspaceFixture(t)
	f.ws.Close()
	f.ws.Close()

	_, _, err := f.ws.Apply(context.Background(), campaign(t, 42))
	assert.ErrorIs(t, err, ErrWorkspaceClosed)
	_, _, err = f.ws.Advance(context.Background(), "collab-x", 1)
	assert.ErrorIs(t, err, ErrWorkspaceClosed)
	assert.ErrorIs(t, f.ws.AfterFunc(time.Second, func() {}), ErrWorkspaceClosed)
}

func TestAdvanceUnknownCollaboration(t *testing.T) {
	f := newWorkspaceFixture(t)
	_, changed, err := f.ws.Advance(context.Background(), "collab-missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, changed)
}

func TestBrandSimulatorDrivesCollaborationToCompletion(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	app, _, _ := f.ws.Apply(ctx, campaign(t, 42))
	f.clock.Advance(acceptanceDelay)
	id := models.CollaborationID(app.ID)

	var feedbackSeen string
	for i := 0; i < 40; i++ {
		c, ok := f.ws.Collaboration(id)
		require.True(t, ok)
		require.NoError(t, models.CheckFrontier(c.Workflow), "frontier broken: %+v", c.Workflow)
		if c.Status == models.CollaborationStatusCompleted {
			break
		}
		if fb := c.Workflow[models.StepIDRevisionsRequested-1].Feedback; fb != "" {
			feedbackSeen = fb
		}

		if step, ok := models.CurrentActionStep(c); ok {
			require.Equal(t, models.StepActorInfluencer, step.Actor, "user should only see influencer steps as Action Needed")
			_, changed, err := f.ws.Advance(ctx, id, step.ID)
			require.NoError(t, err)
			require.True(t, changed)
			continue
		}
		f.clock.Advance(brandDelay)
	}

	c, _ := f.ws.Collaboration(id)
	assert.Equal(t, models.CollaborationStatusCompleted, c.Status)
	assert.True(t, models.IsWorkflowComplete(c.Workflow))
	assert.Equal(t, models.CollaborationStatusCompleted, models.StatusLabel(c))
	assert.Equal(t, testFeedback, feedbackSeen)
	assert.Zero(t, f.clock.Pending(), "no timers should remain once everything is settled")

	before := c.Workflow
	for _, s := range c.Workflow {
		_, changed, err := f.ws.Advance(ctx, id, s.ID)
		require.NoError(t, err)
		assert.False(t, changed)
	}
	after, _ := f.ws.Collaboration(id)
	assert.Equal(t, before, after.Workflow)
}

func TestCloseCancelsBrandResponse(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	app, _, _ := f.ws.Apply(ctx, campaign(t, 3))
	f.clock.Advance(acceptanceDelay)
	id := models.CollaborationID(app.ID)
	_, _, err := f.ws.Advance(ctx, id, 1)
	require.NoError(t, err)

	f.ws.Close()
	f.clock.Advance(10 * brandDelay)

	c, _ := f.ws.Collaboration(id)
	assert.Equal(t, models.StepStatusWaiting, c.Workflow[1].Status)
}

func TestWorkspaceMirrorsToStore(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	app, _, _ := f.ws.Apply(ctx, campaign(t, 5))
	f.clock.Advance(acceptanceDelay)
	_, _, err := f.ws.Advance(ctx, models.CollaborationID(app.ID), 1)
	require.NoError(t, err)
	f.ws.Close()

	reopened := f.open()
	defer reopened.Close()
	assert.Equal(t, f.ws.Snapshot(), reopened.Snapshot())
	assert.Contains(t, f.audit.actions(), "application_created")
	assert.Contains(t, f.audit.actions(), "collaboration_step_advanced")
}

func TestLoadResumesPendingWork(t *testing.T) {
	f := newWorkspaceFixture(t)
	app, _, _ := f.ws.Apply(context.Background(), campaign(t, 2))
	f.ws.Close()

	reopened := f.open()
	defer reopened.Close()
	f.clock.Advance(acceptanceDelay)

	_, ok := reopened.Collaboration(models.CollaborationID(app.ID))
	assert.True(t, ok, "pending application should be accepted after reload")
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	f := newWorkspaceFixture(t)
	_, _, _ = f.ws.Apply(context.Background(), campaign(t, 2))
	f.ws.Close()

	f.store.failLoad = true
	reopened := f.open()
	defer reopened.Close()
	assert.Empty(t, reopened.Applications())
	assert.Empty(t, reopened.Collaborations())
}

func TestLoadDropsBrokenCollaborations(t *testing.T) {
	f := newWorkspaceFixture(t)
	broken := models.NewCollaboration(models.Application{ID: "app-1", Campaign: campaign(t, 1)})
	broken.Workflow[2].Status = models.StepStatusWaiting
	f.store.collabs[testEmail] = []models.Collaboration{broken}

	reopened := f.open()
	defer reopened.Close()
	assert.Empty(t, reopened.Collaborations())
}

func TestSaveFailureIsIgnored(t *testing.T) {
	f := newWorkspaceFixture(t)
	f.store.failSave = true

	_, created, err := f.ws.Apply(context.Background(), campaign(t, 1))
	require.NoError(t, err)
	assert.True(t, created)
	f.clock.Advance(acceptanceDelay)
	assert.Len(t, f.ws.Collaborations(), 1)
}

func TestSelectionClearedWhenItemDisappears(t *testing.T) {
	f := newWorkspaceFixture(t)
	app, _, _ := f.ws.Apply(context.Background(), campaign(t, 42))

	item, err := f.ws.Select(DirectoryRef{Kind: DirectoryKindApplication, ID: app.ID})
	require.NoError(t, err)
	assert.Equal(t, app.ID, item.ID())

	_, ok := f.ws.Selected()
	assert.True(t, ok)

	// Acceptance moves the item out of the application list.
	f.clock.Advance(acceptanceDelay)
	_, ok = f.ws.Selected()
	assert.False(t, ok)

	collabID := models.CollaborationID(app.ID)
	item, err = f.ws.Select(DirectoryRef{Kind: DirectoryKindCollaboration, ID: collabID})
	require.NoError(t, err)
	assert.Equal(t, DirectoryKindCollaboration, item.Kind)
	require.NotNil(t, item.Collaboration)
	assert.Equal(t, collabID, item.Collaboration.ID)

	_, err = f.ws.Select(DirectoryRef{Kind: DirectoryKindApplication, ID: app.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.ws.Select(DirectoryRef{})
	require.NoError(t, err)
	_, ok = f.ws.Selected()
	assert.False(t, ok)
}

func TestWorkspaceAfterFunc(t *testing.T) {
	f := newWorkspaceFixture(t)
	ran := 0
	require.NoError(t, f.ws.AfterFunc(time.Second, func() { ran++ }))
	require.NoError(t, f.ws.AfterFunc(time.Hour, func() { ran++ }))

	f.clock.Advance(time.Second)
	assert.Equal(t, 1, ran)

	f.ws.Close()
	f.clock.Advance(2 * time.Hour)
	assert.Equal(t, 1, ran)
}

func TestRegistry(t *testing.T) {
	clk := clock.NewFake(testStart)
	r := NewWorkspaceRegistry(newMemWorkspaceStore(), &memAudit{}, &memPublisher{}, clk, WorkspaceOptions{
		AcceptanceDelay:    acceptanceDelay,
		BrandResponseDelay: brandDelay,
	}, zap.NewNop())
	ctx := context.Background()

	a := r.Open(ctx, testEmail)
	assert.Same(t, a, r.Open(ctx, testEmail))
	b := r.Open(ctx, "bo@example.com")
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, r.Len())

	_, _, err := a.Apply(ctx, campaign(t, 42))
	require.NoError(t, err)

	r.Close(testEmail)
	assert.True(t, a.Closed())
	_, ok := r.Get(testEmail)
	assert.False(t, ok)

	clk.Advance(acceptanceDelay)
	assert.Empty(t, a.Collaborations())

	r.CloseAll()
	assert.True(t, b.Closed())
	assert.Zero(t, r.Len())
}

// gatedWorkspaceStore holds loads for one e-mail until release is closed.
type gatedWorkspaceStore struct {
	*memWorkspaceStore
	gated   string
	entered chan struct{}
	release chan struct{}

	mu    sync.Mutex
	loads map[string]int
}

func (g *gatedWorkspaceStore) LoadWorkspace(ctx context.Context, email string) (models.WorkspaceSnapshot, error) {
	g.mu.Lock()
	g.loads[email]++
	g.mu.Unlock()
	if email == g.gated {
		g.entered <- struct{}{}
		<-g.release
	}
	return g.memWorkspaceStore.LoadWorkspace(ctx, email)
}

func (g *gatedWorkspaceStore) loadCount(email string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loads[email]
}

func TestRegistrySlowLoadDoesNotBlockOtherUsers(t *testing.T) {
	store := &gatedWorkspaceStore{
		memWorkspaceStore: newMemWorkspaceStore(),
		gated:             testEmail,
		entered:           make(chan struct{}, 1),
		release:           make(chan struct{}),
		loads:             make(map[string]int),
	}
	r := NewWorkspaceRegistry(store, &memAudit{}, &memPublisher{}, clock.NewFake(testStart), WorkspaceOptions{
		AcceptanceDelay:    acceptanceDelay,
		BrandResponseDelay: brandDelay,
	}, zap.NewNop())
	t.Cleanup(r.CloseAll)
	ctx := context.Background()

	opened := make(chan *Workspace, 2)
	go func() { opened <- r.Open(ctx, testEmail) }()
	<-store.entered
	go func() { opened <- r.Open(ctx, testEmail) }()

	other := make(chan *Workspace, 1)
	go func() { other <- r.Open(ctx, "bo@example.com") }()
	select {
	case ws := <-other:
		assert.Equal(t, "bo@example.com", ws.Email())
	case <-time.After(2 * time.Second):
		t.Fatal("open for another user waited on a slow load")
	}

	close(store.release)
	a, b := <-opened, <-opened
	assert.Same(t, a, b)
	assert.False(t, a.Closed())
	assert.Equal(t, 1, store.loadCount(testEmail))
	assert.Equal(t, 2, r.Len())
}

func countEqual(list []string, want string) int {
	n := 0
	for _, v := range list {
		if v == want {
			n++
		}
	}
	return n
}

func TestUserCannotAdvanceBrandStep(t *testing.T) {
	f := newWorkspaceFixture(t)
	c := models.NewCollaboration(models.Application{ID: "app-7", Campaign: campaign(t, 1)})
	c.Workflow[0].Status = models.StepStatusCompleted
	c.Workflow[0].ActionLabel = ""
	c.Workflow[1].Status = models.StepStatusCompleted
	c.Workflow[2].Status = models.StepStatusActionNeeded
	f.store.collabs[testEmail] = []models.Collaboration{c}

	ws := f.open()
	defer ws.Close()

	got, changed, err := ws.Advance(context.Background(), c.ID, models.StepIDBrandReview)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, models.StepStatusActionNeeded, got.Workflow[2].Status)
}
