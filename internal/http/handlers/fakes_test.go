package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
	"github.com/tbourn/go-optimizer-dashboard/internal/http/middleware"
	"github.com/tbourn/go-optimizer-dashboard/internal/services"
)

// ---------- fakes ----------

type fakeDash struct {
	err       error
	lastLimit int
}

func (f *fakeDash) Overview(context.Context) (*services.Overview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.Overview{
		Summary:           services.Summary{AvgLoadTime: 1.25, AvgSEOScore: 80, TotalGenerations: 2},
		RecentMonitoring:  []domain.MonitoringSample{{ID: 1, URL: "https://a"}},
		RecentSEO:         []domain.SEOAnalysis{},
		RecentGenerations: []domain.AIGeneration{},
	}, nil
}
func (f *fakeDash) Monitoring(context.Context) ([]domain.MonitoringSample, error) {
	return []domain.MonitoringSample{{ID: 1}, {ID: 2}}, f.err
}
func (f *fakeDash) SEOAnalyses(context.Context) ([]domain.SEOAnalysis, error) {
	return []domain.SEOAnalysis{{ID: 3, URL: "https://s"}}, f.err
}
func (f *fakeDash) Generations(context.Context) ([]domain.AIGeneration, error) {
	return []domain.AIGeneration{{ID: 4, ContentType: domain.ContentCode}}, f.err
}
func (f *fakeDash) ChartSeries(_ context.Context, limit int) (services.ChartSeries, error) {
	f.lastLimit = limit
	return services.ChartSeries{
		Labels:      []string{"09:00", "09:01"},
		LoadTimes:   []float64{1, 2},
		MemoryUsage: []float64{30, 40},
	}, f.err
}
func (f *fakeDash) Usage(context.Context) (*services.UsageSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.UsageSummary{TotalCalls: 3, TotalTokens: 40, Recent: []domain.APIUsage{}}, nil
}

type fakeIngest struct {
	mu         sync.Mutex
	analyses   map[uint]*domain.SEOAnalysis
	gens       map[uint]*domain.AIGeneration
	nextID     uint
	genErr     error
	lastURL    string
	lastType   string
	lastPrompt string
	advance    func(id uint, next domain.GenerationStatus) (*domain.AIGeneration, error)
}

func newFakeIngest() *fakeIngest {
	return &fakeIngest{analyses: map[uint]*domain.SEOAnalysis{}, gens: map[uint]*domain.AIGeneration{}}
}

func (f *fakeIngest) SubmitSEOAnalysis(_ context.Context, rawURL string) (*domain.SEOAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.lastURL = rawURL
	a := &domain.SEOAnalysis{ID: f.nextID, URL: rawURL, SEOScore: 77, Suggestions: []string{"Add structured data markup"}}
	f.analyses[a.ID] = a
	return a, nil
}

func (f *fakeIngest) SubmitGeneration(_ context.Context, contentType, prompt string) (*domain.AIGeneration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.lastType, f.lastPrompt = contentType, prompt
	ct, _ := domain.ParseContentType(contentType)
	res := "AI-generated content based on: '" + prompt + "'"
	g := &domain.AIGeneration{ID: f.nextID, ContentType: ct, Prompt: prompt, Result: &res, Status: domain.StatusCompleted}
	if f.genErr != nil {
		g.Result, g.Status = nil, domain.StatusFailed
		f.gens[g.ID] = g
		return g, f.genErr
	}
	f.gens[g.ID] = g
	return g, nil
}

func (f *fakeIngest) AdvanceGeneration(_ context.Context, id uint, next domain.GenerationStatus, _, _ *string) (*domain.AIGeneration, error) {
	return f.advance(id, next)
}

func (f *fakeIngest) GetSEOAnalysis(_ context.Context, id uint) (*domain.SEOAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.analyses[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeIngest) GetGeneration(_ context.Context, id uint) (*domain.AIGeneration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.gens[id]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeIngest) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.analyses) + len(f.gens)
}

type fakeSeeder struct {
	err   error
	calls int
}

func (f *fakeSeeder) ResetAndSeed(context.Context) (services.SeedReport, error) {
	f.calls++
	if f.err != nil {
		return services.SeedReport{}, f.err
	}
	return services.SeedReport{Monitoring: 50, SEO: 3, Generations: 3}, nil
}

// memIdem is an in-memory IdempotencyStore plus the matching lookup.
type memIdem struct {
	mu   sync.Mutex
	recs map[string]uint
}

func newMemIdem() *memIdem { return &memIdem{recs: map[string]uint{}} }

func (m *memIdem) Remember(_ context.Context, scope, key string, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[scope+"|"+key]; !ok {
		m.recs[scope+"|"+key] = id
	}
	return nil
}

func (m *memIdem) lookup(scope, key string) (uint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.recs[scope+"|"+key]
	return id, ok
}

// ---------- helpers ----------

// newTestRouter mounts every handler the way the real router does, with the
// idempotency validator backed by idem.
func newTestRouter(h *Handlers, idem *memIdem) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{},
		func(_ context.Context, scope, key string, _ time.Time) (uint, bool, error) {
			id, ok := idem.lookup(scope, key)
			return id, ok, nil
		}))

	r.GET("/dashboard", h.Dashboard)
	r.GET("/monitoring", h.Monitoring)
	r.GET("/seo-optimization", h.SEOOptimization)
	r.GET("/ai-tools", h.AITools)
	r.GET("/settings", h.Settings)
	r.GET("/initialize-demo-data", h.InitializeDemoData)
	r.POST("/api/run-analysis", h.RunAnalysis)
	r.POST("/api/generate-content", h.GenerateContent)
	r.POST("/api/test-api", h.TestAPI)
	r.GET("/api/monitoring-data", h.MonitoringData)

	v1 := r.Group("/api/v1")
	v1.GET("/usage", h.Usage)
	v1.POST("/demo-data", h.SeedDemoData)
	v1.PATCH("/generations/:id/status", h.AdvanceGenerationStatus)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %T: %v (body=%s)", out, err, w.Body.String())
	}
	return out
}
