package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type AdminHandler struct {
	config  DebugConfig
	source  port.PropertySourcePort
	cache   port.ResponseCachePort
	checkUC usecases_port.CheckUpstreamUseCase
	now     func() time.Time
}

func NewAdminHandler(config DebugConfig,
	source port.PropertySourcePort,
	cache port.ResponseCachePort,
	checkUC usecases_port.CheckUpstreamUseCase) *AdminHandler {
	return &AdminHandler{
		config:  config,
		source:  source,
		cache:   cache,
		checkUC: checkUC,
		now:     time.Now,
	}
}

// Debug обрабатывает GET /api/debug
func (h *AdminHandler) Debug(w http.ResponseWriter, r *http.Request) {
	resp := DebugResponse{
		Config:       h.config,
		Token:        toTokenStatusResponse(h.source.TokenStatus()),
		CacheBackend: "none",
		ServerTime:   h.now().UTC(),
	}
	if h.cache != nil {
		resp.CacheBackend = h.cache.Backend()
	}
	w.Header().Set("Cache-Control", "no-store")
	RespondWithJSON(w, http.StatusOK, resp)
}

// TestUpstream обрабатывает GET /api/test-properfy
func (h *AdminHandler) TestUpstream(w http.ResponseWriter, r *http.Request) {
	check := h.checkUC.Execute(r.Context())

	status := http.StatusOK
	if !check.Authenticated || !check.SearchOK {
		status = http.StatusBadGateway
	}
	w.Header().Set("Cache-Control", "no-store")
	RespondWithJSON(w, status, toUpstreamCheckResponse(*check))
}

// Revalidate обрабатывает POST /api/revalidate.
// Префикс берется из ?path= или из тела {"prefix": "..."}.
func (h *AdminHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Revalidate"})

	if h.cache == nil {
		WriteJSONError(w, http.StatusServiceUnavailable, "Cache is not configured")
		return
	}

	prefix := strings.TrimSpace(r.URL.Query().Get("path"))
	if prefix == "" && r.Body != nil {
		var req RevalidateRequest
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		prefix = strings.TrimSpace(req.Prefix)
	}
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		WriteJSONError(w, http.StatusBadRequest, "Prefix must start with /")
		return
	}

	purged, err := h.cache.DeletePrefix(r.Context(), prefix)
	if err != nil {
		logger.Error("Cache purge failed", err, port.Fields{"prefix": prefix})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to purge cache")
		return
	}

	logger.Info("Cache purged", port.Fields{"prefix": prefix, "purged": purged})
	RespondWithJSON(w, http.StatusOK, RevalidateResponse{Revalidated: true, Prefix: prefix, Purged: purged})
}

// Healthz - проверка живости
func Healthz(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
