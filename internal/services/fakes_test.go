package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/influencer-portal/backend/internal/events"
	"github.com/influencer-portal/backend/internal/models"
)

var errStoreDown = errors.New("store unavailable")

type memWorkspaceStore struct {
	mu       sync.Mutex
	apps     map[string][]models.Application
	collabs  map[string][]models.Collaboration
	failLoad bool
	failSave bool
}

func newMemWorkspaceStore() *memWorkspaceStore {
	return &memWorkspaceStore{
		apps:    make(map[string][]models.Application),
		collabs: make(map[string][]models.Collaboration),
	}
}

func (m *memWorkspaceStore) LoadWorkspace(_ context.Context, email string) (models.WorkspaceSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLoad {
		return models.WorkspaceSnapshot{}, errStoreDown
	}
	return models.WorkspaceSnapshot{
		Applications:   append([]models.Application(nil), m.apps[email]...),
		Collaborations: append([]models.Collaboration(nil), m.collabs[email]...),
	}, nil
}

func (m *memWorkspaceStore) SaveApplication(_ context.Context, email string, app models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errStoreDown
	}
	list := m.apps[email]
	for i := range list {
		if list[i].ID == app.ID {
			list[i] = app
			return nil
		}
	}
	m.apps[email] = append(list, app)
	return nil
}

func (m *memWorkspaceStore) SaveCollaboration(_ context.Context, email string, c models.Collaboration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errStoreDown
	}
	list := m.collabs[email]
	for i := range list {
		if list[i].ID == c.ID {
			list[i] = c
			return nil
		}
	}
	m.collabs[email] = append(list, c)
	return nil
}

type memAudit struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (m *memAudit) Log(_ context.Context, entry models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memAudit) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Action
	}
	return out
}

type memPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (m *memPublisher) Publish(_ context.Context, _ string, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *memPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.Type
	}
	return out
}

// memUsers versions every record so UpdateUser retries like a WATCH
// transaction when another write commits first.
type memUsers struct {
	mu       sync.Mutex
	records  map[string]models.UserRecord
	versions map[string]int
	failGet  bool

	// afterRead runs on every UpdateUser attempt between the read and the commit.
	afterRead func()
}

func newMemUsers() *memUsers {
	return &memUsers{
		records:  make(map[string]models.UserRecord),
		versions: make(map[string]int),
	}
}

func (m *memUsers) GetUser(_ context.Context, email string) (*models.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, errStoreDown
	}
	rec, ok := m.records[email]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memUsers) SaveUser(_ context.Context, rec models.UserRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.Credentials.Email] = rec
	m.versions[rec.Credentials.Email]++
	return nil
}

func (m *memUsers) UpdateUser(_ context.Context, email string, fn func(*models.UserRecord) error) (*models.UserRecord, error) {
	for {
		m.mu.Lock()
		rec, ok := m.records[email]
		version := m.versions[email]
		hook := m.afterRead
		m.mu.Unlock()
		if !ok {
			return nil, nil
		}

		if hook != nil {
			hook()
		}
		if err := fn(&rec); err != nil {
			return nil, err
		}

		m.mu.Lock()
		if m.versions[email] != version {
			m.mu.Unlock()
			continue
		}
		m.records[email] = rec
		m.versions[email]++
		m.mu.Unlock()
		return &rec, nil
	}
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]string)}
}

func (m *memSessions) CreateSession(_ context.Context, id, email string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = email
	return nil
}

func (m *memSessions) SessionEmail(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id], nil
}

func (m *memSessions) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type memDrafts struct {
	mu     sync.Mutex
	drafts map[string]models.SignupDraft
}

func newMemDrafts() *memDrafts {
	return &memDrafts{drafts: make(map[string]models.SignupDraft)}
}

func (m *memDrafts) GetDraft(_ context.Context, id string) (*models.SignupDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memDrafts) SaveDraft(_ context.Context, d models.SignupDraft, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[d.ID] = d
	return nil
}

func (m *memDrafts) DeleteDraft(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}

type memOnboarding struct {
	mu   sync.Mutex
	done map[string]bool
}

func (m *memOnboarding) MarkOnboarded(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done == nil {
		m.done = make(map[string]bool)
	}
	m.done[email] = true
	return nil
}

func (m *memOnboarding) IsOnboarded(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done[email], nil
}

type closeRecorder struct {
	closed []string
}

func (c *closeRecorder) Close(email string) {
	c.closed = append(c.closed, email)
}
