package properfy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

const (
	searchPath   = "/property/property"
	maxErrorBody = 4 << 10
)

// APIError - ответ апстрима со статусом вне 2xx
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("properfy returned status %d: %s", e.Status, e.Body)
}

type Config struct {
	BaseURL    string
	Email      string
	Password   string
	Timeout    time.Duration
	TokenTTL   time.Duration
	HTTPClient *http.Client
}

// Client - клиент API Properfy. Реализует port.PropertySourcePort.
type Client struct {
	baseURL    string
	email      string
	password   string
	httpClient *http.Client
	tokens     *tokenCache
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("properfy: base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("properfy: invalid base url: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 50 * time.Minute
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		email:      cfg.Email,
		password:   cfg.Password,
		httpClient: httpClient,
		tokens:     &tokenCache{defaultTTL: cfg.TokenTTL, now: time.Now},
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// do - один HTTP-запрос без повторов. out может быть nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, token string, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// doAuthorized: при 401 токен сбрасывается и запрос повторяется ровно один раз
func (c *Client) doAuthorized(ctx context.Context, method, path string, query url.Values, out interface{}) error {
	for attempt := 0; ; attempt++ {
		token, err := c.token(ctx)
		if err != nil {
			return err
		}

		err = c.do(ctx, method, path, query, nil, token, out)
		var apiErr *APIError
		if attempt == 0 && errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			contextkeys.LoggerFromContext(ctx).Warn("Properfy rejected token, re-authenticating", port.Fields{"path": path})
			c.tokens.invalidate(token)
			continue
		}
		return err
	}
}

func (c *Client) Search(ctx context.Context, q domain.UpstreamQuery) (*domain.UpstreamPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "ProperfyClient",
		"method":    "Search",
		"chr_type":  q.ChrType,
		"page":      q.Page,
		"size":      q.Size,
	})

	var resp searchResponse
	if err := c.doAuthorized(ctx, http.MethodGet, searchPath, searchParams(q), &resp); err != nil {
		clientLogger.Error("Search request failed", err, nil)
		return nil, err
	}

	page := &domain.UpstreamPage{
		Properties: make([]domain.Property, 0, len(resp.Data)),
		Total:      resp.Total,
	}
	for _, dto := range resp.Data {
		page.Properties = append(page.Properties, toDomain(dto, q.Type))
	}
	if page.Total < len(page.Properties) {
		page.Total = len(page.Properties)
	}

	clientLogger.Debug("Search request finished", port.Fields{"received": len(page.Properties), "total": page.Total})
	return page, nil
}

func (c *Client) GetByID(ctx context.Context, id string, preferred domain.PropertyType) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component":   "ProperfyClient",
		"method":      "GetByID",
		"property_id": id,
	})

	var env propertyEnvelope
	err := c.doAuthorized(ctx, http.MethodGet, searchPath+"/"+url.PathEscape(id), nil, &env)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, domain.ErrPropertyNotFound
		}
		clientLogger.Error("Get property request failed", err, nil)
		return nil, err
	}

	dto := env.property()
	if dto.ID == "" {
		return nil, domain.ErrPropertyNotFound
	}
	p := toDomain(dto, preferred)
	return &p, nil
}

// Ping логинится заново, чтобы проверить учетные данные
func (c *Client) Ping(ctx context.Context) error {
	return c.Authenticate(ctx)
}

func (c *Client) TokenStatus() domain.TokenStatus {
	valid, expiresAt := c.tokens.status()
	return domain.TokenStatus{HasToken: valid, ExpiresAt: expiresAt}
}

func searchParams(q domain.UpstreamQuery) url.Values {
	v := url.Values{}
	if q.ChrType != "" {
		v.Set("chrType", q.ChrType)
	}
	if t := transactionParam(q.Type); t != "" {
		v.Set("chrTransactionType", t)
	}
	if q.City != "" {
		v.Set("chrAddressCity", q.City)
	}
	if q.Neighborhood != "" {
		v.Set("chrAddressDistrict", q.Neighborhood)
	}
	if q.MinPrice > 0 {
		v.Set("dcmPriceMin", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		v.Set("dcmPriceMax", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.MinBedrooms > 0 {
		v.Set("intBedroomsMin", strconv.Itoa(q.MinBedrooms))
	}
	if q.Code != "" {
		v.Set("chrCode", q.Code)
	}
	if q.Highlighted {
		v.Set("bolHighlight", "true")
	}
	if q.Exclusive {
		v.Set("bolExclusive", "true")
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	return v
}
