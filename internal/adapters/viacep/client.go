package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// Client - клиент ViaCEP. Реализует port.PostalCodeLookupPort.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}}
}

type addressDTO struct {
	CEP         string          `json:"cep"`
	Logradouro  string          `json:"logradouro"`
	Complemento string          `json:"complemento"`
	Bairro      string          `json:"bairro"`
	Localidade  string          `json:"localidade"`
	UF          string          `json:"uf"`
	Erro        json.RawMessage `json:"erro"`
}

// notFound - ViaCEP отвечает 200 с {"erro": true}, в новых версиях "erro": "true"
func (d addressDTO) notFound() bool {
	switch string(d.Erro) {
	case "true", `"true"`:
		return true
	}
	return false
}

func (c *Client) Lookup(ctx context.Context, cep string) (*domain.PostalCodeAddress, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ViaCEPClient",
		"cep":       cep,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+cep+"/json/", nil)
	if err != nil {
		return nil, fmt.Errorf("viacep: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Failed to perform request to ViaCEP", err, nil)
		return nil, fmt.Errorf("viacep: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, domain.ErrInvalidPostalCode
	case resp.StatusCode != http.StatusOK:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("viacep returned status %d: %s", resp.StatusCode, string(raw))
	}

	var dto addressDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("viacep: failed to decode response: %w", err)
	}
	if dto.notFound() {
		return nil, domain.ErrPostalCodeNotFound
	}

	postal, err := domain.NormalizePostalCode(dto.CEP)
	if err != nil {
		postal = cep
	}
	return &domain.PostalCodeAddress{
		PostalCode:   postal,
		Street:       dto.Logradouro,
		Complement:   dto.Complemento,
		Neighborhood: dto.Bairro,
		City:         dto.Localidade,
		State:        dto.UF,
	}, nil
}
