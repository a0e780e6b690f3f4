package services

import (
	"context"
	"sync"

	"github.com/influencer-portal/backend/internal/clock"
	"github.com/influencer-portal/backend/internal/events"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// WorkspaceRegistry owns the open workspace of every signed-in e-mail.
type WorkspaceRegistry struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	loads      singleflight.Group

	store     WorkspaceStore
	audit     AuditLogger
	publisher events.Publisher
	clock     clock.Clock
	ids       *IDGenerator
	opts      WorkspaceOptions
	log       *zap.Logger
}

func NewWorkspaceRegistry(
	store WorkspaceStore,
	audit AuditLogger,
	publisher events.Publisher,
	clk clock.Clock,
	opts WorkspaceOptions,
	log *zap.Logger,
) *WorkspaceRegistry {
	return &WorkspaceRegistry{
		workspaces: make(map[string]*Workspace),
		store:      store,
		audit:      audit,
		publisher:  publisher,
		clock:      clk,
		ids:        NewIDGenerator(clk),
		opts:       opts,
		log:        log,
	}
}

// Open returns the workspace for email, loading it from the store on first use.
// Loads run outside the registry lock, and concurrent first requests for the
// same e-mail share one load.
func (r *WorkspaceRegistry) Open(ctx context.Context, email string) *Workspace {
	if ws, ok := r.Get(email); ok {
		return ws
	}

	v, _, _ := r.loads.Do(email, func() (any, error) {
		if ws, ok := r.Get(email); ok {
			return ws, nil
		}

		// The load outlives a cancelled first caller since every waiter gets its result.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		defer cancel()

		ws := NewWorkspace(email, r.store, r.audit, r.publisher, r.clock, r.ids, r.opts, r.log)
		ws.Load(loadCtx)

		r.mu.Lock()
		defer r.mu.Unlock()
		if existing, ok := r.workspaces[email]; ok {
			ws.Close()
			return existing, nil
		}
		r.workspaces[email] = ws
		return ws, nil
	})
	return v.(*Workspace)
}

func (r *WorkspaceRegistry) Get(email string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[email]
	return ws, ok
}

// Close tears down the workspace of email, if open.
func (r *WorkspaceRegistry) Close(email string) {
	r.mu.Lock()
	ws, ok := r.workspaces[email]
	delete(r.workspaces, email)
	r.mu.Unlock()
	if ok {
		ws.Close()
	}
}

func (r *WorkspaceRegistry) CloseAll() {
	r.mu.Lock()
	open := r.workspaces
	r.workspaces = make(map[string]*Workspace)
	r.mu.Unlock()
	for _, ws := range open {
		ws.Close()
	}
	r.log.Info("workspaces closed", zap.Int("count", len(open)))
}

func (r *WorkspaceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}
