package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"São José dos Pinhais", "sao-jose-dos-pinhais"},
		{"  Água--Verde ", "agua-verde"},
		{"CURITIBA", "curitiba"},
		{"Batel", "batel"},
		{"Alto da Glória", "alto-da-gloria"},
		{"Jardim Botânico / Centro", "jardim-botanico-centro"},
		{"Apto 301 - Ed. Açaí", "apto-301-ed-acai"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "--")
			assert.False(t, strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-"))
		})
	}
}

func TestPropertySlug(t *testing.T) {
	p := Property{
		Title:   "Apartamento 3 quartos",
		Code:    "AP0123",
		Address: Address{Neighborhood: "Água Verde", City: "Curitiba"},
	}
	assert.Equal(t, "apartamento-3-quartos-agua-verde-curitiba-ap0123", PropertySlug(p))
}
