package formspark

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// Client пересылает заявки в Formspark. Реализует port.LeadSinkPort.
type Client struct {
	baseURL    string
	formIDs    map[domain.FormType]string
	httpClient *http.Client
}

type submission struct {
	LeadID       string `json:"leadId"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Message      string `json:"message,omitempty"`
	PropertyID   string `json:"propertyId,omitempty"`
	PropertyCode string `json:"propertyCode,omitempty"`
	Source       string `json:"source,omitempty"`
	FormType     string `json:"formType"`
	CreatedAt    string `json:"createdAt"`
}

// NewClient. formIDs - id формы по formType; для типа без своей формы используется contact.
func NewClient(baseURL string, formIDs map[string]string, timeout time.Duration) (*Client, error) {
	ids := make(map[domain.FormType]string, len(formIDs))
	for k, v := range formIDs {
		if v != "" {
			ids[domain.FormType(k)] = v
		}
	}
	if len(ids) == 0 {
		return nil, errors.New("formspark: at least one form id is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		formIDs:    ids,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Name() string { return "formspark" }

func (c *Client) formID(t domain.FormType) (string, bool) {
	if id, ok := c.formIDs[t]; ok {
		return id, true
	}
	id, ok := c.formIDs[domain.FormTypeContact]
	return id, ok
}

func (c *Client) Deliver(ctx context.Context, lead domain.Lead) error {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "FormsparkClient",
		"lead_id":   lead.ID.String(),
		"form_type": lead.FormType,
	})

	formID, ok := c.formID(lead.FormType)
	if !ok {
		return fmt.Errorf("formspark: no form configured for %q", lead.FormType)
	}

	body, err := json.Marshal(submission{
		LeadID:       lead.ID.String(),
		Name:         lead.Name,
		Email:        lead.Email,
		Phone:        lead.Phone,
		Message:      lead.Message,
		PropertyID:   lead.PropertyID,
		PropertyCode: lead.PropertyCode,
		Source:       lead.Source,
		FormType:     string(lead.FormType),
		CreatedAt:    lead.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("formspark: failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+formID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("formspark: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Failed to perform request to Formspark", err, nil)
		return fmt.Errorf("formspark: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		err := fmt.Errorf("formspark returned status %d: %s", resp.StatusCode, string(raw))
		clientLogger.Error("Received non-OK response from Formspark", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}

	clientLogger.Debug("Lead forwarded to Formspark", nil)
	return nil
}
