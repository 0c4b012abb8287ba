package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/config"
	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/logging"
)

// stubTurns returns a canned response and records the last request.
type stubTurns struct {
	resp domain.TurnResponse
	last domain.TurnRequest
}

func (s *stubTurns) Turn(_ context.Context, req domain.TurnRequest) domain.TurnResponse {
	s.last = req
	return s.resp
}

func testServer(t *testing.T, cfg config.Config, turns TurnRunner) *Server {
	t.Helper()
	if turns == nil {
		turns = &stubTurns{resp: domain.TurnResponse{Success: true, Message: "ok"}}
	}
	return New(cfg, turns, logging.New(nil, "silent"))
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t, config.Defaults(), nil)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
}

func TestRequireAuth(t *testing.T) {
	cfg := config.Defaults()
	cfg.Gateway.Auth = config.GatewayAuth{Mode: "token", Token: "s3cret"}
	s := testServer(t, cfg, nil)

	handler := s.requireAuth(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest("POST", "/api/chat", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "token required")
	})

	t.Run("accepts bearer token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/chat", nil)
		req.Header.Set("Authorization", "Bearer s3cret")
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestHandleChat(t *testing.T) {
	turns := &stubTurns{resp: domain.TurnResponse{
		Success:   true,
		SessionID: "sess-1",
		Message:   "Here are the details for order #9435.",
	}}
	s := testServer(t, config.Defaults(), turns)

	body := `{"sessionId":"sess-1","messages":[{"id":"m1","role":"user","content":"show me order #9435"}]}`
	rec := httptest.NewRecorder()
	s.handleChat(rec, httptest.NewRequest("POST", "/api/chat", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp domain.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "sess-1", resp.SessionID)

	require.Len(t, turns.last.Messages, 1)
	assert.Equal(t, "show me order #9435", turns.last.Messages[0].Content)
}

func TestHandleChat_BadBody(t *testing.T) {
	s := testServer(t, config.Defaults(), nil)

	rec := httptest.NewRecorder()
	s.handleChat(rec, httptest.NewRequest("POST", "/api/chat", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChat_FailureStatus(t *testing.T) {
	turns := &stubTurns{resp: domain.TurnResponse{Success: false, Error: "upstream down"}}
	s := testServer(t, config.Defaults(), turns)

	rec := httptest.NewRecorder()
	s.handleChat(rec, httptest.NewRequest("POST", "/api/chat",
		strings.NewReader(`{"messages":[]}`)))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream down")
}

func TestResolveBindAddr(t *testing.T) {
	cfg := config.Defaults()
	assert.Equal(t, "127.0.0.1:18620", resolveBindAddr(cfg.Gateway))

	cfg.Gateway.Bind = "lan"
	cfg.Gateway.Port = 9000
	assert.Equal(t, "0.0.0.0:9000", resolveBindAddr(cfg.Gateway))
}

func TestWithRequestLog_CapturesStatus(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := withRequestLog(inner, logging.New(nil, "silent"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
