package viacep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"listing-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/80240000/json/":
			_, _ = w.Write([]byte(`{"cep":"80240-000","logradouro":"Avenida Sete de Setembro","complemento":"de 4501 a 5499","bairro":"Batel","localidade":"Curitiba","uf":"PR"}`))
		case "/99999999/json/":
			_, _ = w.Write([]byte(`{"erro": true}`))
		case "/99999998/json/":
			_, _ = w.Write([]byte(`{"erro": "true"}`))
		case "/00000000/json/":
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Lookup(t *testing.T) {
	c := NewClient(newServer(t).URL, time.Second)

	addr, err := c.Lookup(context.Background(), "80240000")
	require.NoError(t, err)
	assert.Equal(t, &domain.PostalCodeAddress{
		PostalCode:   "80240000",
		Street:       "Avenida Sete de Setembro",
		Complement:   "de 4501 a 5499",
		Neighborhood: "Batel",
		City:         "Curitiba",
		State:        "PR",
	}, addr)
}

func TestClient_LookupErrors(t *testing.T) {
	c := NewClient(newServer(t).URL, time.Second)

	_, err := c.Lookup(context.Background(), "99999999")
	assert.ErrorIs(t, err, domain.ErrPostalCodeNotFound)

	_, err = c.Lookup(context.Background(), "99999998")
	assert.ErrorIs(t, err, domain.ErrPostalCodeNotFound)

	_, err = c.Lookup(context.Background(), "00000000")
	assert.ErrorIs(t, err, domain.ErrInvalidPostalCode)

	_, err = c.Lookup(context.Background(), "11111111")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPostalCodeNotFound)
}
