package httpapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-optimizer-dashboard/internal/config"
	"github.com/tbourn/go-optimizer-dashboard/internal/http/handlers"
	"github.com/tbourn/go-optimizer-dashboard/internal/http/middleware"
	"github.com/tbourn/go-optimizer-dashboard/internal/repo"
	"github.com/tbourn/go-optimizer-dashboard/internal/services"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if migrate {
		if err := repo.AutoMigrate(db); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	t.Cleanup(func() { _ = repo.Close(db) })
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath:    "/api/v1",
		RateRPS:        1000,
		RateBurst:      1000,
		DemoSeed:       42,
		IdempotencyTTL: time.Hour,
		OTEL:           config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newTestRouter(t *testing.T, cfg config.Config, migrate bool) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t, migrate)
	RegisterRoutes(r, db, cfg)
	return r, db
}

func do(r http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode: %v (body=%s)", err, w.Body.String())
	}
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(), true)

	w := do(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	if w.Header().Get("X-Request-ID") == "" || w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("request id / security headers missing: %v", w.Header())
	}

	w = do(r, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	w = do(r, http.MethodGet, "/nope", "", nil)
	var er handlers.ErrorResponse
	decodeInto(t, w, &er)
	if w.Code != http.StatusNotFound || er.Code != handlers.ErrCodeNotFound || er.Success {
		t.Fatalf("NoRoute: %d %+v", w.Code, er)
	}

	w = do(r, http.MethodDelete, "/dashboard", "", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("NoMethod = %d", w.Code)
	}
}

func TestRegisterRoutes_CORSAllowlistEchoesOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.CORS.AllowedOrigins = []string{"https://ok.example"}
	r, _ := newTestRouter(t, cfg, true)

	w := do(r, http.MethodGet, "/health", "", map[string]string{"Origin": "https://ok.example"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://ok.example" {
		t.Fatalf("allowed origin not echoed: %q", got)
	}
	w = do(r, http.MethodGet, "/health", "", map[string]string{"Origin": "https://evil.example"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected ACAO for disallowed origin: %q", got)
	}
}

func TestRegisterRoutes_RootRedirectAndNoStore(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(), true)

	w := do(r, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("GET / = %d %q", w.Code, w.Header().Get("Location"))
	}

	w = do(r, http.MethodGet, "/api/monitoring-data", "", nil)
	if w.Code != http.StatusOK || w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("api response: %d cache=%q", w.Code, w.Header().Get("Cache-Control"))
	}
	w = do(r, http.MethodGet, "/dashboard", "", nil)
	if w.Header().Get("Cache-Control") == "no-store" {
		t.Fatalf("pages should stay cacheable")
	}
}

func TestRegisterRoutes_EndToEnd(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(), true)

	// Seed, then the chart reflects the 50 monitoring samples.
	w := do(r, http.MethodPost, "/api/v1/demo-data", "", nil)
	var seed handlers.SeedResponse
	decodeInto(t, w, &seed)
	if w.Code != http.StatusOK || !seed.Success || seed.Monitoring != 50 {
		t.Fatalf("seed: %d %+v", w.Code, seed)
	}
	var series services.ChartSeries
	decodeInto(t, do(r, http.MethodGet, "/api/monitoring-data", "", nil), &series)
	if len(series.Labels) != 50 || len(series.LoadTimes) != 50 {
		t.Fatalf("series len = %d/%d", len(series.Labels), len(series.LoadTimes))
	}

	// Generate content and find it on the ai-tools page and in usage.
	w = do(r, http.MethodPost, "/api/generate-content", `{"type":"code","prompt":"sort a list"}`, nil)
	var gen handlers.GenerateContentResponse
	decodeInto(t, w, &gen)
	if w.Code != http.StatusOK || !gen.Success || gen.Generation.ID == 0 {
		t.Fatalf("generate: %d %+v", w.Code, gen)
	}

	var ai handlers.AIToolsPageResponse
	decodeInto(t, do(r, http.MethodGet, "/ai-tools", "", nil), &ai)
	found := false
	for _, g := range ai.Generations {
		found = found || g.ID == gen.Generation.ID
	}
	if !found {
		t.Fatalf("generation %d not listed", gen.Generation.ID)
	}

	var usage services.UsageSummary
	decodeInto(t, do(r, http.MethodGet, "/api/v1/usage", "", nil), &usage)
	if usage.TotalCalls != 1 || usage.TotalTokens <= 0 {
		t.Fatalf("usage = %+v", usage)
	}

	// Unknown ids are 404.
	w = do(r, http.MethodPatch, "/api/v1/generations/999999/status", `{"status":"processing"}`, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown generation = %d", w.Code)
	}
}

func TestRegisterRoutes_IdempotentGeneration(t *testing.T) {
	r, db := newTestRouter(t, testConfig(), true)
	hdr := map[string]string{middleware.HeaderIdempotencyKey: "gen-retry-1"}
	body := `{"type":"text","prompt":"Summer sale"}`

	var first, second handlers.GenerateContentResponse
	w1 := do(r, http.MethodPost, "/api/generate-content", body, hdr)
	decodeInto(t, w1, &first)
	w2 := do(r, http.MethodPost, "/api/generate-content", body, hdr)
	decodeInto(t, w2, &second)

	if w1.Code != http.StatusOK || w2.Code != http.StatusOK {
		t.Fatalf("codes %d/%d", w1.Code, w2.Code)
	}
	if w2.Header().Get(middleware.HeaderIdempotencyReplayed) != "true" || first.Generation.ID != second.Generation.ID {
		t.Fatalf("replay mismatch: %+v vs %+v", first.Generation, second.Generation)
	}

	n, err := repo.CountGenerations(context.Background(), db)
	if err != nil || n != 1 {
		t.Fatalf("generations = %d (%v); want 1", n, err)
	}

	w := do(r, http.MethodPost, "/api/generate-content", body, map[string]string{middleware.HeaderIdempotencyKey: "bad key!"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad key = %d", w.Code)
	}
}

func TestRegisterRoutes_UnmigratedStoreIsNotReady(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(), false)

	for _, p := range []string{"/dashboard", "/monitoring", "/api/monitoring-data"} {
		w := do(r, http.MethodGet, p, "", nil)
		var er handlers.ErrorResponse
		decodeInto(t, w, &er)
		if w.Code != http.StatusServiceUnavailable || er.Code != handlers.ErrCodeNotReady {
			t.Fatalf("%s = %d %+v", p, w.Code, er)
		}
	}
	w := do(r, http.MethodPost, "/api/v1/demo-data", "", nil)
	if w.Code == http.StatusOK {
		t.Fatalf("seeding an unmigrated store must fail")
	}
}

func TestRegisterRoutes_Gzip(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(), true)

	w := do(r, http.MethodGet, "/settings", "", map[string]string{"Accept-Encoding": "gzip"})
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", w.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	raw, _ := io.ReadAll(zr)
	var s handlers.SettingsResponse
	if err := json.Unmarshal(raw, &s); err != nil || s.APIBasePath != "/api/v1" {
		t.Fatalf("settings = %+v (%v)", s, err)
	}
}

func TestRegisterRoutes_SwaggerToggle(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(), true)
	if w := do(r, http.MethodGet, "/swagger/doc.json", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be off by default, got %d", w.Code)
	}

	cfg := testConfig()
	cfg.SwaggerEnabled = true
	gin.SetMode(gin.TestMode)
	on := gin.New()
	RegisterRoutes(on, newTestDB(t, true), cfg)
	w := do(on, http.MethodGet, "/swagger/doc.json", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/api/run-analysis") {
		t.Fatalf("swagger doc: %d %s", w.Code, w.Body.String())
	}
}

func TestIdempotencyStore_LookupAndRemember(t *testing.T) {
	db := newTestDB(t, true)
	s := idempotencyStore{db: db, ttl: time.Minute}
	ctx := context.Background()
	now := time.Now().UTC()

	if _, ok, err := s.Lookup(ctx, "/api/run-analysis", "k1", now); ok || err != nil {
		t.Fatalf("miss expected, got ok=%v err=%v", ok, err)
	}
	if err := s.Remember(ctx, "/api/run-analysis", "k1", 7); err != nil {
		t.Fatalf("remember: %v", err)
	}
	// A second write for the same pair keeps the first record.
	if err := s.Remember(ctx, "/api/run-analysis", "k1", 8); err != nil {
		t.Fatalf("duplicate remember: %v", err)
	}
	id, ok, err := s.Lookup(ctx, "/api/run-analysis", "k1", now)
	if err != nil || !ok || id != 7 {
		t.Fatalf("lookup = %d %v %v", id, ok, err)
	}
	if _, ok, _ := s.Lookup(ctx, "/api/run-analysis", "k1", now.Add(2*time.Minute)); ok {
		t.Fatalf("expired key should miss")
	}
}
