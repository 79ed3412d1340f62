package usecase

import (
	"context"
	"errors"
	"sync"

	"listing-service/internal/core/domain"
)

// fakeSource отвечает на Search по chrType и считает вызовы
type fakeSource struct {
	mu       sync.Mutex
	byType   map[string][]domain.Property
	failType map[string]error
	total    int
	queries  []domain.UpstreamQuery
	byID     map[string]domain.Property
	pingErr  error
}

func (f *fakeSource) Search(_ context.Context, q domain.UpstreamQuery) (*domain.UpstreamPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if err := f.failType[q.ChrType]; err != nil {
		return nil, err
	}
	props := f.byType[q.ChrType]
	total := f.total
	if total == 0 {
		total = len(props)
	}
	return &domain.UpstreamPage{Properties: props, Total: total}, nil
}

func (f *fakeSource) GetByID(_ context.Context, id string, _ domain.PropertyType) (*domain.Property, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return &p, nil
}

func (f *fakeSource) Ping(context.Context) error { return f.pingErr }

func (f *fakeSource) TokenStatus() domain.TokenStatus {
	return domain.TokenStatus{HasToken: f.pingErr == nil}
}

func (f *fakeSource) chrTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.queries))
	for _, q := range f.queries {
		out = append(out, q.ChrType)
	}
	return out
}

var errUpstream = errors.New("upstream 503")

type memFavorites struct {
	data map[string]domain.FavoriteIDs
}

func newMemFavorites() *memFavorites { return &memFavorites{data: map[string]domain.FavoriteIDs{}} }

func (m *memFavorites) List(_ context.Context, visitorID string) (domain.FavoriteIDs, error) {
	return append(domain.FavoriteIDs(nil), m.data[visitorID]...), nil
}

func (m *memFavorites) Add(_ context.Context, visitorID, propertyID string) error {
	m.data[visitorID] = m.data[visitorID].Add(propertyID)
	return nil
}

func (m *memFavorites) Remove(_ context.Context, visitorID, propertyID string) error {
	m.data[visitorID] = m.data[visitorID].Remove(propertyID)
	return nil
}

type fakeSink struct {
	name  string
	err   error
	leads []domain.Lead
}

func (s *fakeSink) Name() string { return s.name }

func (s *fakeSink) Deliver(_ context.Context, lead domain.Lead) error {
	if s.err != nil {
		return s.err
	}
	s.leads = append(s.leads, lead)
	return nil
}

type fakeChat struct{}

func (fakeChat) BuildURL(text string) string { return "https://wa.me/5541999990000?text=" + text }

type fakeLookup struct {
	addr *domain.PostalCodeAddress
	err  error
	got  string
}

func (f *fakeLookup) Lookup(_ context.Context, cep string) (*domain.PostalCodeAddress, error) {
	f.got = cep
	return f.addr, f.err
}
