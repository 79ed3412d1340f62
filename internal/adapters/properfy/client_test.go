package properfy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpstream struct {
	t          *testing.T
	logins     atomic.Int32
	searches   atomic.Int32
	rejectNext atomic.Int32 // сколько следующих поисков ответить 401
	token      string
	expiresIn  int64
	lastQuery  atomic.Value
	lastTrace  atomic.Value
}

func (f *fakeUpstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email != "site@example.com" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.logins.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"token": f.token, "expires_in": f.expiresIn})
	})
	mux.HandleFunc("/property/property", func(w http.ResponseWriter, r *http.Request) {
		f.searches.Add(1)
		f.lastQuery.Store(r.URL.Query())
		f.lastTrace.Store(r.Header.Get("X-Trace-ID"))
		if r.Header.Get("Authorization") != "Bearer "+f.token || f.rejectNext.Load() > 0 {
			f.rejectNext.Add(-1)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"total": 2, "data": [
			{"id": 1, "chrCode": "AP01", "chrType": "APARTMENT", "chrTransactionType": "VENDA", "dcmSale": 500000, "chrAddressCity": "Curitiba"},
			{"id": "2", "chrCode": "CA02", "chrType": "HOUSE", "chrTransactionType": "LOCACAO", "dcmRentalTotal": "3500.50"}
		]}`))
	})
	mux.HandleFunc("/property/property/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/property/property/7":
			_, _ = w.Write([]byte(`{"data": {"id": 7, "chrCode": "TE07", "chrType": "LAND", "chrTransactionType": "VENDA_LOCACAO", "dcmSale": 90000, "dcmRentalTotal": 900}}`))
		case "/property/property/8":
			_, _ = w.Write([]byte(`{"id": 8, "chrType": "FARM", "dcmSale": 1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	return mux
}

func newTestClient(t *testing.T, up *fakeUpstream) *Client {
	srv := httptest.NewServer(up.handler())
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{BaseURL: srv.URL, Email: "site@example.com", Password: "secret", TokenTTL: time.Hour})
	require.NoError(t, err)
	return c
}

func TestClient_CachesToken(t *testing.T) {
	up := &fakeUpstream{t: t, token: "tok-1", expiresIn: 3600}
	c := newTestClient(t, up)
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-123")

	page, err := c.Search(ctx, domain.UpstreamQuery{ChrType: "APARTMENT", Type: domain.PropertyTypeSale, Page: 2, Size: 10})
	require.NoError(t, err)
	_, err = c.Search(ctx, domain.UpstreamQuery{})
	require.NoError(t, err)

	assert.EqualValues(t, 1, up.logins.Load())
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Properties, 2)
	assert.Equal(t, "1", page.Properties[0].ID)
	assert.Equal(t, 3500.5, page.Properties[1].Price)
	assert.Equal(t, "trace-123", up.lastTrace.Load())

	status := c.TokenStatus()
	assert.True(t, status.HasToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), status.ExpiresAt, 5*time.Second)
}

func TestClient_SearchParams(t *testing.T) {
	up := &fakeUpstream{t: t, token: "tok", expiresIn: 3600}
	c := newTestClient(t, up)

	_, err := c.Search(context.Background(), domain.UpstreamQuery{
		ChrType: "PENTHOUSE", Type: domain.PropertyTypeRent, City: "São José dos Pinhais",
		MinPrice: 1500, MinBedrooms: 2, Highlighted: true, Page: 3, Size: 12,
	})
	require.NoError(t, err)

	q := up.lastQuery.Load().(url.Values)
	assert.Equal(t, []string{"PENTHOUSE"}, q["chrType"])
	assert.Equal(t, []string{"LOCACAO"}, q["chrTransactionType"])
	assert.Equal(t, []string{"São José dos Pinhais"}, q["chrAddressCity"])
	assert.Equal(t, []string{"1500"}, q["dcmPriceMin"])
	assert.Equal(t, []string{"2"}, q["intBedroomsMin"])
	assert.Equal(t, []string{"true"}, q["bolHighlight"])
	assert.Equal(t, []string{"3"}, q["page"])
	assert.Equal(t, []string{"12"}, q["size"])
	assert.NotContains(t, q, "bolExclusive")
}

func TestClient_RetriesOnceAfter401(t *testing.T) {
	up := &fakeUpstream{t: t, token: "tok", expiresIn: 3600}
	c := newTestClient(t, up)

	_, err := c.Search(context.Background(), domain.UpstreamQuery{})
	require.NoError(t, err)

	up.rejectNext.Store(1)
	_, err = c.Search(context.Background(), domain.UpstreamQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, up.logins.Load())
	assert.EqualValues(t, 3, up.searches.Load())
}

func TestClient_GivesUpAfterSecond401(t *testing.T) {
	up := &fakeUpstream{t: t, token: "tok", expiresIn: 3600}
	up.rejectNext.Store(5)
	c := newTestClient(t, up)

	_, err := c.Search(context.Background(), domain.UpstreamQuery{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.EqualValues(t, 2, up.searches.Load())
}

func TestClient_BadCredentials(t *testing.T) {
	up := &fakeUpstream{t: t, token: "tok"}
	srv := httptest.NewServer(up.handler())
	defer srv.Close()
	c, err := NewClient(Config{BaseURL: srv.URL, Email: "wrong", Password: "x"})
	require.NoError(t, err)

	err = c.Ping(context.Background())
	require.Error(t, err)
	assert.False(t, c.TokenStatus().HasToken)
	assert.EqualValues(t, 0, up.searches.Load())
}

func TestClient_ExpiryFromJWTClaim(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("upstream-key-we-do-not-know"))
	require.NoError(t, err)

	up := &fakeUpstream{t: t, token: signed}
	c := newTestClient(t, up)
	require.NoError(t, c.Ping(context.Background()))

	assert.True(t, exp.Equal(c.TokenStatus().ExpiresAt))
}

func TestClient_DefaultTTLForOpaqueToken(t *testing.T) {
	up := &fakeUpstream{t: t, token: "opaque"}
	c := newTestClient(t, up)
	require.NoError(t, c.Ping(context.Background()))
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.TokenStatus().ExpiresAt, 5*time.Second)
}

func TestClient_ExpiredTokenTriggersLogin(t *testing.T) {
	up := &fakeUpstream{t: t, token: "tok", expiresIn: 3600}
	c := newTestClient(t, up)
	now := time.Now()
	c.tokens.now = func() time.Time { return now }

	_, err := c.Search(context.Background(), domain.UpstreamQuery{})
	require.NoError(t, err)

	now = now.Add(time.Hour - 10*time.Second) // внутри запаса до истечения
	_, err = c.Search(context.Background(), domain.UpstreamQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, up.logins.Load())
}

func TestClient_ConcurrentCallersShareOneLogin(t *testing.T) {
	up := &fakeUpstream{t: t, token: "tok", expiresIn: 3600}
	c := newTestClient(t, up)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Search(context.Background(), domain.UpstreamQuery{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, up.logins.Load())
}

func TestClient_GetByID(t *testing.T) {
	up := &fakeUpstream{t: t, token: "tok", expiresIn: 3600}
	c := newTestClient(t, up)

	p, err := c.GetByID(context.Background(), "7", domain.PropertyTypeRent)
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyTypeRent, p.Type)
	assert.Equal(t, float64(900), p.Price)
	assert.Equal(t, domain.CategoryLand, p.Category)

	p, err = c.GetByID(context.Background(), "8", "")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryRural, p.Category)

	_, err = c.GetByID(context.Background(), "404", "")
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}
