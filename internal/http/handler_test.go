package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hsadv/quotes-service/internal/auth"
	"github.com/hsadv/quotes-service/internal/config"
	"github.com/hsadv/quotes-service/internal/email"
	"github.com/hsadv/quotes-service/internal/http/middleware"
	"github.com/hsadv/quotes-service/internal/logger"
	"github.com/hsadv/quotes-service/internal/model"
	"github.com/hsadv/quotes-service/internal/security"
	"github.com/hsadv/quotes-service/internal/service"
)

const testSecret = "handler-test-secret"

type memoryStore struct {
	quotes []model.Quote
}

func (m *memoryStore) Create(_ context.Context, quote model.Quote) (*model.Quote, error) {
	quote.ID = uuid.New()
	quote.CreatedAt = time.Now()
	m.quotes = append(m.quotes, quote)
	return &quote, nil
}

func (m *memoryStore) Get(_ context.Context, id uuid.UUID) (*model.Quote, error) {
	for i := range m.quotes {
		if m.quotes[i].ID == id {
			return &m.quotes[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryStore) ListRecent(_ context.Context, limit int) ([]model.Quote, error) {
	if limit > len(m.quotes) {
		limit = len(m.quotes)
	}
	return m.quotes[:limit], nil
}

func (m *memoryStore) ListSince(_ context.Context, _ time.Time) ([]model.Quote, error) {
	return m.quotes, nil
}

func (m *memoryStore) ListAll(_ context.Context) ([]model.Quote, error) {
	return m.quotes, nil
}

func (m *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	for i := range m.quotes {
		if m.quotes[i].ID == id {
			m.quotes = append(m.quotes[:i], m.quotes[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type noopNotifier struct{}

func (noopNotifier) Send(_ context.Context, _, _ string) error { return nil }

type noopCRM struct{}

func (noopCRM) SyncQuote(_ context.Context, _ model.Quote) (string, error) { return "page", nil }

type noopMailer struct{}

func (noopMailer) Send(_ context.Context, _ email.Message) error { return nil }

type staticExcel struct{}

func (staticExcel) Generate(_ []model.Quote) ([]byte, error) { return []byte("xlsx-bytes"), nil }

type staticPDF struct{}

func (staticPDF) Generate(_ model.Quote) ([]byte, error) { return []byte("pdf-bytes"), nil }

type env struct {
	store  *memoryStore
	router *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memoryStore{}
	cfg := &config.Config{
		Email:  config.EmailConfig{OwnerAddress: "owner@example.com"},
		Quotes: config.QuotesConfig{RecentLimit: 10, MetricsPeriodDays: 30},
	}
	log := logger.New("test")
	svc := service.NewQuoteService(store, noopNotifier{}, noopCRM{}, noopMailer{}, staticExcel{}, staticPDF{}, cfg, log)
	monitor := security.NewMonitor(log)

	authMiddleware := middleware.Auth(auth.NewParser(testSecret), monitor)
	limiter := middleware.SubmitRateLimit(middleware.NewRateLimiter(100, time.Minute), monitor)
	handler := NewHandler(svc, monitor, log)

	return &env{
		store:  store,
		router: NewRouter(handler, authMiddleware, limiter, "test", nil),
	}
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "admin-1",
		"email": "admin@example.com",
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func validSubmission() map[string]any {
	return map[string]any{
		"name":        "Maria Silva",
		"email":       "maria@example.com",
		"phone":       "32999887766",
		"serviceType": "trademark",
		"urgency":     "normal",
	}
}

func TestSubmitQuoteEndpoint(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/quotes", "", validSubmission())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Orçamento solicitado com sucesso! Entraremos em contato em breve.", resp.Message)
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, e.store.quotes, 1)
}

func TestSubmitQuoteValidationErrors(t *testing.T) {
	e := newEnv(t)

	body := validSubmission()
	body["name"] = ""
	body["email"] = "bogus"

	rec := e.do(t, http.MethodPost, "/api/quotes", "", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Nome é obrigatório", resp.Fields["name"])
	assert.Equal(t, "E-mail inválido", resp.Fields["email"])
	assert.Empty(t, e.store.quotes)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/quotes/recent"},
		{http.MethodDelete, "/api/quotes/" + uuid.NewString()},
		{http.MethodGet, "/api/quotes/metrics"},
		{http.MethodPost, "/api/quotes/export"},
		{http.MethodGet, "/api/security/events"},
		{http.MethodGet, "/api/security/statistics"},
	}

	for _, p := range paths {
		rec := e.do(t, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}

	rec := e.do(t, http.MethodGet, "/api/quotes/recent", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListRecentEndpoint(t *testing.T) {
	e := newEnv(t)
	token := adminToken(t)

	e.do(t, http.MethodPost, "/api/quotes", "", validSubmission())

	rec := e.do(t, http.MethodGet, "/api/quotes/recent", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Quotes []model.Quote `json:"quotes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Quotes, 1)
	assert.Equal(t, "Maria Silva", resp.Quotes[0].Name)
}

func TestDeleteQuoteEndpoint(t *testing.T) {
	e := newEnv(t)
	token := adminToken(t)

	e.do(t, http.MethodPost, "/api/quotes", "", validSubmission())
	id := e.store.quotes[0].ID

	rec := e.do(t, http.MethodDelete, "/api/quotes/"+id.String(), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, e.store.quotes)

	rec = e.do(t, http.MethodDelete, "/api/quotes/"+id.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/quotes/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	e := newEnv(t)
	token := adminToken(t)

	e.do(t, http.MethodPost, "/api/quotes", "", validSubmission())

	rec := e.do(t, http.MethodGet, "/api/quotes/metrics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var metrics model.QuoteMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.Equal(t, 1, metrics.TotalQuotes)
	assert.Equal(t, 800.0, metrics.EstimatedRevenue)

	rec = e.do(t, http.MethodGet, "/api/quotes/metrics?period_days=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportQuotesEndpoint(t *testing.T) {
	e := newEnv(t)
	token := adminToken(t)

	rec := e.do(t, http.MethodPost, "/api/quotes/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "orcamentos-")
	assert.Equal(t, "xlsx-bytes", rec.Body.String())
}

func TestExportQuotePDFEndpoint(t *testing.T) {
	e := newEnv(t)
	token := adminToken(t)

	e.do(t, http.MethodPost, "/api/quotes", "", validSubmission())
	id := e.store.quotes[0].ID

	rec := e.do(t, http.MethodGet, "/api/quotes/"+id.String()+"/export/pdf", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "pdf-bytes", rec.Body.String())

	rec = e.do(t, http.MethodGet, "/api/quotes/"+uuid.NewString()+"/export/pdf", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSecurityEndpoints(t *testing.T) {
	e := newEnv(t)
	token := adminToken(t)

	// A failed auth attempt leaves a trace for the dashboard.
	e.do(t, http.MethodGet, "/api/quotes/recent", "bad-token", nil)

	rec := e.do(t, http.MethodGet, "/api/security/events", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Events []security.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Events)
	assert.Equal(t, security.EventUnauthorizedAccess, resp.Events[0].Type)

	rec = e.do(t, http.MethodGet, "/api/security/statistics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats security.Statistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.GreaterOrEqual(t, stats.TotalEvents, 1)
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityHeadersApplied(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}
