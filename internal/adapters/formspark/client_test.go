package formspark

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DeliverRoutesByFormType(t *testing.T) {
	var (
		gotPath string
		got     submission
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, map[string]string{"contact": "c-form", "announce": "a-form"}, time.Second)
	require.NoError(t, err)

	lead := domain.Lead{ID: uuid.New(), Name: "Ana", Phone: "41999990000", FormType: domain.FormTypeAnnounce, CreatedAt: time.Now()}
	require.NoError(t, c.Deliver(context.Background(), lead))
	assert.Equal(t, "/a-form", gotPath)
	assert.Equal(t, "announce", got.FormType)
	assert.Equal(t, lead.ID.String(), got.LeadID)

	// для property своей формы нет - уходит в contact
	lead.FormType = domain.FormTypeProperty
	require.NoError(t, c.Deliver(context.Background(), lead))
	assert.Equal(t, "/c-form", gotPath)
}

func TestClient_DeliverNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "spam detected", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, map[string]string{"contact": "x"}, time.Second)
	require.NoError(t, err)

	err = c.Deliver(context.Background(), domain.Lead{ID: uuid.New(), FormType: domain.FormTypeContact})
	assert.ErrorContains(t, err, "422")
}

func TestNewClient_RequiresFormID(t *testing.T) {
	_, err := NewClient("https://submit-form.com", map[string]string{"contact": ""}, 0)
	assert.Error(t, err)
}
