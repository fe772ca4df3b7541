package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"bid-leveler/internal/models"
	"bid-leveler/internal/repository"

	"github.com/google/uuid"
)

type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[uuid.UUID]*models.User{}}
}

func (m *memUserStore) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type memProjectStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*models.Project
}

func newMemProjectStore() *memProjectStore {
	return &memProjectStore{projects: map[uuid.UUID]*models.Project{}}
}

func (m *memProjectStore) Create(_ context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.projects[p.ID] = &cp
	return nil
}

func (m *memProjectStore) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProjectStore) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Project
	for _, p := range m.projects {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memProjectStore) Update(_ context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	m.projects[p.ID] = &cp
	return nil
}

func (m *memProjectStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

type memBidStore struct {
	mu   sync.Mutex
	bids []*models.Bid
}

func (m *memBidStore) Create(_ context.Context, b *models.Bid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.bids = append(m.bids, &cp)
	return nil
}

func (m *memBidStore) GetByID(_ context.Context, id uuid.UUID) (*models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bids {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memBidStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]*models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Bid
	for _, b := range m.bids {
		if b.ProjectID == projectID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBidStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.bids {
		if b.ID == id {
			m.bids = append(m.bids[:i], m.bids[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memComparisonStore struct {
	mu          sync.Mutex
	comparisons []*models.Comparison
}

func (m *memComparisonStore) Create(_ context.Context, c *models.Comparison) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.comparisons = append(m.comparisons, &cp)
	return nil
}

func (m *memComparisonStore) ListByProject(_ context.Context, projectID uuid.UUID, limit int) ([]*models.Comparison, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Comparison
	for i := len(m.comparisons) - 1; i >= 0 && len(out) < limit; i-- {
		if m.comparisons[i].ProjectID == projectID {
			cp := *m.comparisons[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memComparisonStore) Latest(ctx context.Context, projectID uuid.UUID) (*models.Comparison, error) {
	list, _ := m.ListByProject(ctx, projectID, 1)
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	return list[0], nil
}

type memUsageStore struct {
	mu     sync.Mutex
	events []*models.UsageEvent
	err    error
}

func (m *memUsageStore) Create(_ context.Context, e *models.UsageEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cp := *e
	m.events = append(m.events, &cp)
	return nil
}

func (m *memUsageStore) TotalsByUser(_ context.Context, userID uuid.UUID, since time.Time) ([]models.UsageTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byOp := map[string]*models.UsageTotals{}
	var ops []string
	for _, e := range m.events {
		if e.UserID == nil || *e.UserID != userID || e.OccurredAt.Before(since) {
			continue
		}
		t, ok := byOp[e.Operation]
		if !ok {
			t = &models.UsageTotals{Operation: e.Operation}
			byOp[e.Operation] = t
			ops = append(ops, e.Operation)
		}
		t.Events++
		t.Documents += e.Documents
		t.OriginalTokens += e.OriginalTokens
		t.ProcessedTokens += e.ProcessedTokens
		t.PromptTokens += e.PromptTokens
		t.CompletionTokens += e.CompletionTokens
	}
	sort.Strings(ops)
	out := make([]models.UsageTotals, 0, len(ops))
	for _, op := range ops {
		out = append(out, *byOp[op])
	}
	return out, nil
}

func (m *memUsageStore) snapshot() []*models.UsageEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.UsageEvent(nil), m.events...)
}

type fakeAnalyzer struct {
	prompts  []string
	analysis string
	err      error
}

func (f *fakeAnalyzer) CompareBids(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.analysis, nil
}

func (f *fakeAnalyzer) Model() string { return "GigaChat-Test" }

var errStoreDown = errors.New("store down")
