package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad should not panic on valid defaults, got: %v", r)
		}
	}()
	cfg := MustLoad()
	if cfg.APIBasePath == "" {
		t.Fatalf("unexpected empty config from MustLoad")
	}
}

// --- Load success + normalization + parsing ---

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIBasePath != "/api/v1" || cfg.DBDriver != DriverSQLite || cfg.DBPath != "optimizer.db" {
		t.Fatalf("store defaults unexpected: %+v", cfg)
	}
	if cfg.SeedOnStart || cfg.DemoSeed != 0 || cfg.ModelsAvailable != nil || cfg.Admin.Enabled() {
		t.Fatalf("demo defaults unexpected: %+v", cfg)
	}
	if cfg.OTEL.ServiceName != "go-optimizer-dashboard" || cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("defaults unexpected: %+v", cfg)
	}
	if cfg.DSN() != "optimizer.db" {
		t.Fatalf("DSN = %q", cfg.DSN())
	}
}

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v2/") // -> "/api/v2"

	// Store
	t.Setenv("DB_DRIVER", " Postgres ")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/opt?sslmode=disable")

	// Demo data
	t.Setenv("SEED_ON_START", "true")
	t.Setenv("DEMO_SEED", "42")
	t.Setenv("MODELS_AVAILABLE", "m1, ,m2")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 5.0
	t.Setenv("RATE_BURST", "nope") // -> default 10

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	t.Setenv("IDEMPOTENCY_TTL", "48h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v2" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}
	if cfg.DBDriver != DriverPostgres || cfg.DSN() != "postgres://u:p@db:5432/opt?sslmode=disable" {
		t.Fatalf("store unexpected: driver=%q dsn=%q", cfg.DBDriver, cfg.DSN())
	}
	if !cfg.SeedOnStart || cfg.DemoSeed != 42 || !reflect.DeepEqual(cfg.ModelsAvailable, []string{"m1", "m2"}) {
		t.Fatalf("demo fields unexpected: %+v", cfg)
	}
	if !cfg.Admin.Enabled() || cfg.Admin.Email != "admin@example.com" {
		t.Fatalf("admin unexpected: %+v", cfg.Admin)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}
	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("idempotency ttl unexpected: %v", cfg.IdempotencyTTL)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

// --- config file ---

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_ConfigFileFillsUnsetKeys(t *testing.T) {
	p := writeConfigFile(t, `
port: 9090
SEED_ON_START: yes
DEMO_SEED: 7
RATE_RPS: 2.5
CORS_ALLOWED_ORIGINS:
  - https://a.com
  - https://b.com
LOG_LEVEL: debug
`)
	t.Setenv("CONFIG_FILE", p)
	t.Setenv("LOG_LEVEL", "error") // env wins over the file

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "9090" || !cfg.SeedOnStart || cfg.DemoSeed != 7 || cfg.RateRPS != 2.5 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "https://b.com"}) {
		t.Fatalf("list value not joined: %#v", cfg.CORS.AllowedOrigins)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("env should override file, got %q", cfg.LogLevel)
	}
}

func TestLoad_ConfigFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		if _, err := Load(); err == nil || !containsErr(err, "failed to read config") {
			t.Fatalf("expected read error, got: %v", err)
		}
	})
	t.Run("bad yaml", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", writeConfigFile(t, "PORT: [unterminated"))
		if _, err := Load(); err == nil || !containsErr(err, "failed to parse config") {
			t.Fatalf("expected parse error, got: %v", err)
		}
	})
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"invalid LOG_LEVEL", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"empty PORT via spaces", map[string]string{"PORT": "   "}, "PORT must not be empty"},
		{"non-positive timeouts", map[string]string{"READ_TIMEOUT": "0s"}, "timeouts must be positive"},
		{"max header bytes <= 0", map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		{"empty DB_PATH", map[string]string{"DB_PATH": "   "}, "DB_PATH must not be empty"},
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}, "DATABASE_URL"},
		{"admin without password", map[string]string{"ADMIN_USERNAME": "admin"}, "ADMIN_PASSWORD"},
		{"rate rps negative", map[string]string{"RATE_RPS": "-1"}, "RATE_RPS"},
		{"rate burst < 1", map[string]string{"RATE_BURST": "0"}, "RATE_BURST"},
		{"hsts max age negative", map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		{"idempotency ttl non-positive", map[string]string{"IDEMPOTENCY_TTL": "0s"}, "IDEMPOTENCY_TTL"},
		{"otel sample ratio out of range", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil || !containsErr(err, tc.want) {
				t.Fatalf("expected %s validation error, got: %v", tc.want, err)
			}
		})
	}
}

// --- helpers ---

func TestSource_EnvThenFileThenDefault(t *testing.T) {
	src := source{file: map[string]string{"X_FILE": "from-file", "X_BOTH": "file"}}
	t.Setenv("X_BOTH", "env")
	t.Setenv("X_EMPTY", "")

	if src.getenv("X_BOTH", "d") != "env" {
		t.Fatalf("env should win")
	}
	if src.getenv("X_FILE", "d") != "from-file" {
		t.Fatalf("file value should be used when env unset")
	}
	if src.getenv("X_EMPTY", "d") != "d" {
		t.Fatalf("empty env should fall back to default")
	}
}

func TestSource_Parsers(t *testing.T) {
	var src source
	t.Setenv("F_VALID", "3.14")
	t.Setenv("F_BAD", "nope")
	t.Setenv("I_VALID", " 42 ")
	t.Setenv("I_BAD", "x")
	t.Setenv("I64_VALID", "-9000000000")
	t.Setenv("D_VALID", "150ms")
	t.Setenv("D_BAD", "zzz")

	if src.getfloat("F_VALID", 0) != 3.14 || src.getfloat("F_BAD", 1.23) != 1.23 {
		t.Fatalf("getfloat unexpected")
	}
	if src.getint("I_VALID", 0) != 42 || src.getint("I_BAD", 7) != 7 {
		t.Fatalf("getint unexpected")
	}
	if src.getint64("I64_VALID", 0) != -9000000000 || src.getint64("I_BAD", 5) != 5 {
		t.Fatalf("getint64 unexpected")
	}
	if src.getdur("D_VALID", time.Second) != 150*time.Millisecond || src.getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatalf("getdur unexpected")
	}
}

func TestSource_getbool(t *testing.T) {
	var src source
	for i, v := range []string{"1", "true", "TRUE", " yes ", "Y", "on", "On"} {
		k := "B_T_" + strconv.Itoa(i)
		t.Setenv(k, v)
		if !src.getbool(k, false) {
			t.Fatalf("getbool(%q) = false; want true", v)
		}
	}
	for i, v := range []string{"0", "false", "FALSE", " no ", "N", "off", "Off"} {
		k := "B_F_" + strconv.Itoa(i)
		t.Setenv(k, v)
		if src.getbool(k, true) {
			t.Fatalf("getbool(%q) = true; want false", v)
		}
	}
	t.Setenv("B_EMPTY", "")
	if !src.getbool("B_EMPTY", true) || src.getbool("B_EMPTY", false) {
		t.Fatalf("getbool default behavior unexpected")
	}
}

func TestHelpers_splitCSV_and_normalizeBasePath(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("splitCSV empty should return nil")
	}
	want := []string{"a", "b", "c"}
	if got := splitCSV(" a, ,b ,  c  ,"); !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCSV mismatch: got %#v want %#v", got, want)
	}

	cases := map[string]string{"": "/", "v1": "/v1", "/v1/": "/v1", " / ": "/"}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestScalar(t *testing.T) {
	if scalar(nil) != "" || scalar(8080) != "8080" || scalar(true) != "true" {
		t.Fatalf("scalar conversions unexpected")
	}
	if got := scalar([]any{"a", 1}); got != "a,1" {
		t.Fatalf("scalar list = %q", got)
	}
}

// Ensure tests don't inherit a config file or port from the environment.
func TestMain(m *testing.M) {
	os.Unsetenv("PORT")
	os.Unsetenv("CONFIG_FILE")
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}
