package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestReplayRecordID_AndKeyHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/run-analysis", nil)

	if _, ok := GetIdempotencyKey(c); ok {
		t.Fatalf("expected no key")
	}
	if _, ok := ReplayRecordID(c); ok {
		t.Fatalf("expected no replay")
	}
	c.Set(ctxKeyIdemRecord, "7")
	if _, ok := ReplayRecordID(c); ok {
		t.Fatalf("non-uint value must not count as replay")
	}
	c.Set(ctxKeyIdemRecord, uint(7))
	if id, ok := ReplayRecordID(c); !ok || id != 7 {
		t.Fatalf("ReplayRecordID = %d, %v", id, ok)
	}
	// No matched route in a bare test context.
	if got := IdempotencyScope(c); got != "/api/run-analysis" {
		t.Fatalf("scope fallback = %q", got)
	}
}

func TestIdempotencyValidator_NoHeaderOrSafeMethod_SkipsLookup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	called := false
	lookup := func(context.Context, string, string, time.Time) (uint, bool, error) {
		called = true
		return 0, false, nil
	}
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{}, lookup))
	r.GET("/api/usage", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/api/run-analysis", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/run-analysis", nil))

	req := httptest.NewRequest(http.MethodGet, "/api/usage", nil)
	req.Header.Set(HeaderIdempotencyKey, "k1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if called {
		t.Fatalf("lookup should not run without header or on GET")
	}
}

func TestIdempotencyValidator_RejectsBadKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		opts IdempotencyOptions
		key  string
	}{
		{"too long", IdempotencyOptions{MaxLen: 5}, "abcdef"},
		{"pattern", IdempotencyOptions{Pattern: regexp.MustCompile(`^[0-9]+$`)}, "abc123"},
		{"default pattern", IdempotencyOptions{}, "has space"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(IdempotencyValidator(tc.opts, nil))
			r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/x", nil)
			req.Header.Set(HeaderIdempotencyKey, tc.key)
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["success"] != false || body["code"] != "bad_idempotency_key" {
				t.Fatalf("unexpected body: %v", body)
			}
		})
	}
}

func TestIdempotencyValidator_HitMarksReplayAndBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var gotScope, gotKey string
	lookup := func(_ context.Context, scope, key string, _ time.Time) (uint, bool, error) {
		gotScope, gotKey = scope, key
		return 42, true, nil
	}
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{}, lookup))
	r.POST("/api/generate-content", func(c *gin.Context) {
		id, ok := ReplayRecordID(c)
		if !ok || id != 42 || !IsRateBypass(c) {
			t.Fatalf("expected replay of 42 with bypass, got %d %v", id, ok)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/generate-content", nil)
	req.Header.Set(HeaderIdempotencyKey, "gen-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotScope != "/api/generate-content" || gotKey != "gen-1" {
		t.Fatalf("lookup got (%q, %q)", gotScope, gotKey)
	}
}

func TestIdempotencyValidator_LookupErrorIsMiss(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lookup := func(context.Context, string, string, time.Time) (uint, bool, error) {
		return 9, true, errors.New("db down")
	}
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{}, lookup))
	r.POST("/x", func(c *gin.Context) {
		if _, ok := ReplayRecordID(c); ok || IsRateBypass(c) {
			t.Fatalf("lookup error must not mark replay")
		}
		if k, ok := GetIdempotencyKey(c); !ok || k != "k-2" {
			t.Fatalf("key not stashed: %q", k)
		}
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(HeaderIdempotencyKey, "k-2")
	r.ServeHTTP(httptest.NewRecorder(), req)
}
