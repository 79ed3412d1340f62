package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

func quietLogger() port.LoggerPort {
	return logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard, Level: slog.LevelError})
}

type fakeSearch struct {
	calls  atomic.Int32
	last   domain.PropertyFilters
	result *domain.PropertyResponse
	err    error
}

func (f *fakeSearch) Execute(_ context.Context, filters domain.PropertyFilters) (*domain.PropertyResponse, error) {
	f.calls.Add(1)
	f.last = filters
	return f.result, f.err
}

type fakeShowcase struct {
	props []domain.Property
	err   error
	limit int
}

func (f *fakeShowcase) Execute(_ context.Context, limit int) ([]domain.Property, error) {
	f.limit = limit
	return f.props, f.err
}

type fakeGetProperty struct {
	property  *domain.Property
	err       error
	preferred domain.PropertyType
}

func (f *fakeGetProperty) Execute(_ context.Context, id string, preferred domain.PropertyType) (*domain.Property, error) {
	f.preferred = preferred
	if f.err != nil {
		return nil, f.err
	}
	p := *f.property
	p.ID = id
	return &p, nil
}

type fakeGetByCode struct {
	property *domain.Property
	err      error
}

func (f *fakeGetByCode) Execute(_ context.Context, code string) (*domain.Property, error) {
	return f.property, f.err
}

type fakeFilterOptions struct {
	options *domain.FilterOptions
	err     error
}

func (f *fakeFilterOptions) Execute(context.Context) (*domain.FilterOptions, error) {
	return f.options, f.err
}

type fakeLocations struct {
	locations []domain.Location
	err       error
}

func (f *fakeLocations) Execute(context.Context) ([]domain.Location, error) {
	return f.locations, f.err
}

type fakeFavorites struct {
	ids map[string]domain.FavoriteIDs
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{ids: make(map[string]domain.FavoriteIDs)}
}

func (f *fakeFavorites) Execute(_ context.Context, visitorID string) (domain.FavoriteIDs, error) {
	return f.ids[visitorID], nil
}

func (f *fakeFavorites) Add(_ context.Context, visitorID, propertyID string) (domain.FavoriteIDs, error) {
	f.ids[visitorID] = f.ids[visitorID].Add(propertyID)
	return f.ids[visitorID], nil
}

func (f *fakeFavorites) Remove(_ context.Context, visitorID, propertyID string) (domain.FavoriteIDs, error) {
	f.ids[visitorID] = f.ids[visitorID].Remove(propertyID)
	return f.ids[visitorID], nil
}

type fakeFavoriteProperties struct{}

func (fakeFavoriteProperties) Execute(context.Context, string) ([]domain.Property, error) {
	return []domain.Property{{ID: "1", Title: "Casa"}}, nil
}

type fakeValidator struct{ err error }

func (v fakeValidator) ValidateLead([]byte) error { return v.err }

type fakeSubmitLead struct {
	lead domain.Lead
	err  error
}

func (f *fakeSubmitLead) Execute(_ context.Context, lead domain.Lead) (*domain.LeadReceipt, error) {
	f.lead = lead
	if f.err != nil {
		return nil, f.err
	}
	return &domain.LeadReceipt{ID: uuid.MustParse("6f1c2a3e-2b7d-4d55-9a4c-0e5b1f0f9d11"), WhatsAppURL: "https://wa.me/5541999990000?text=Ol%C3%A1"}, nil
}

type fakePostalCode struct {
	err error
}

func (f *fakePostalCode) Execute(_ context.Context, raw string) (*domain.PostalCodeAddress, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.PostalCodeAddress{PostalCode: raw, Street: "Rua XV de Novembro", City: "Curitiba", State: "PR"}, nil
}

type fakeSource struct{}

func (fakeSource) Search(context.Context, domain.UpstreamQuery) (*domain.UpstreamPage, error) {
	return &domain.UpstreamPage{}, nil
}
func (fakeSource) GetByID(context.Context, string, domain.PropertyType) (*domain.Property, error) {
	return nil, domain.ErrPropertyNotFound
}
func (fakeSource) Ping(context.Context) error { return nil }
func (fakeSource) TokenStatus() domain.TokenStatus {
	return domain.TokenStatus{HasToken: true, ExpiresAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// downSource имитирует недоступный Properfy
type downSource struct{ fakeSource }

func (downSource) Search(context.Context, domain.UpstreamQuery) (*domain.UpstreamPage, error) {
	return nil, errors.New("properfy: 503 service unavailable")
}

type fakeCheck struct{ report domain.UpstreamCheck }

func (f fakeCheck) Execute(context.Context) *domain.UpstreamCheck {
	r := f.report
	return &r
}
