package properfy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"

	"github.com/golang-jwt/jwt/v5"
)

// токен считается истекшим немного раньше, чем на самом деле
const tokenExpirySkew = 30 * time.Second

// tokenCache - bearer-токен апстрима. Мьютекс держится на время логина,
// поэтому одновременно идет не больше одного запроса /auth/login.
type tokenCache struct {
	mu         sync.Mutex
	token      string
	expiresAt  time.Time
	defaultTTL time.Duration
	now        func() time.Time
}

func (tc *tokenCache) validLocked() bool {
	return tc.token != "" && tc.now().Before(tc.expiresAt.Add(-tokenExpirySkew))
}

// invalidate сбрасывает токен, только если он не успел обновиться
func (tc *tokenCache) invalidate(token string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.token == token {
		tc.token = ""
		tc.expiresAt = time.Time{}
	}
}

func (tc *tokenCache) status() (bool, time.Time) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.validLocked(), tc.expiresAt
}

// token возвращает закешированный токен или логинится заново
func (c *Client) token(ctx context.Context) (string, error) {
	c.tokens.mu.Lock()
	defer c.tokens.mu.Unlock()

	if c.tokens.validLocked() {
		return c.tokens.token, nil
	}
	return c.loginLocked(ctx)
}

// Authenticate всегда выполняет логин и обновляет кеш
func (c *Client) Authenticate(ctx context.Context) error {
	c.tokens.mu.Lock()
	defer c.tokens.mu.Unlock()
	_, err := c.loginLocked(ctx)
	return err
}

func (c *Client) loginLocked(ctx context.Context) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ProperfyClient",
		"method":    "login",
	})

	body, err := json.Marshal(loginRequest{Email: c.email, Password: c.password})
	if err != nil {
		return "", fmt.Errorf("failed to marshal login request: %w", err)
	}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, bytes.NewReader(body), "", &resp); err != nil {
		logger.Error("Login to Properfy failed", err, nil)
		return "", fmt.Errorf("properfy login: %w", err)
	}

	token := resp.bearer()
	if token == "" {
		err := errors.New("properfy login: empty token in response")
		logger.Error("Login to Properfy failed", err, nil)
		return "", err
	}

	c.tokens.token = token
	c.tokens.expiresAt = c.tokenExpiry(token, resp.ExpiresIn)

	logger.Info("Authenticated against Properfy", port.Fields{"expires_at": c.tokens.expiresAt.Format(time.RFC3339)})
	return token, nil
}

// tokenExpiry: expires_in из ответа, иначе claim exp самого JWT, иначе TTL по умолчанию.
// Подпись не проверяем, ключа апстрима у нас нет.
func (c *Client) tokenExpiry(token string, expiresIn int64) time.Time {
	now := c.tokens.now()
	if expiresIn > 0 {
		return now.Add(time.Duration(expiresIn) * time.Second)
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return now.Add(c.tokens.defaultTTL)
}
