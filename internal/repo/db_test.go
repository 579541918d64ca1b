package repo

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
)

func TestOpen_RejectsBadInput(t *testing.T) {
	if _, err := Open("mysql", "x"); err == nil || !strings.Contains(err.Error(), "mysql") {
		t.Fatalf("unsupported driver: err = %v", err)
	}
	if _, err := OpenPostgres("  ", 1, 0); err == nil {
		t.Fatal("blank DATABASE_URL accepted")
	}
	missing := filepath.Join(t.TempDir(), "no-such-dir", "optimizer.db")
	if db, err := OpenSQLite(missing); err == nil || db != nil {
		t.Fatalf("OpenSQLite(%q) = %v, %v; want error", missing, db, err)
	}
}

func TestSQLiteDSN(t *testing.T) {
	cases := map[string]string{
		"optimizer.db":       "optimizer.db?" + sqlitePragmas,
		"file:x?mode=memory": "file:x?mode=memory&" + sqlitePragmas,
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Errorf("sqliteDSN(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestOpenSQLite_FileStore(t *testing.T) {
	db, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "optimizer.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	pragmas := []struct {
		name string
		want string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL
		{"foreign_keys", "1"},
		{"busy_timeout", "5000"},
	}
	for _, p := range pragmas {
		var got string
		if err := db.Raw("PRAGMA " + p.name).Row().Scan(&got); err != nil {
			t.Fatalf("PRAGMA %s: %v", p.name, err)
		}
		if !strings.EqualFold(got, p.want) {
			t.Errorf("PRAGMA %s = %q; want %q", p.name, got, p.want)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}
	if n := sqlDB.Stats().MaxOpenConnections; n != 10 {
		t.Errorf("MaxOpenConnections = %d; want 10", n)
	}
}

func TestAutoMigrate_CreatesEveryTable(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 2; i++ {
		if err := AutoMigrate(db); err != nil {
			t.Fatalf("AutoMigrate run %d: %v", i+1, err)
		}
	}
	m := db.Migrator()
	for _, model := range Models() {
		if !m.HasTable(model) {
			t.Errorf("missing table for %T", model)
		}
	}
	if !m.HasIndex(&domain.MonitoringSample{}, "idx_monitoring_ts") {
		t.Error("missing idx_monitoring_ts")
	}
}

func TestInstrument_RegistersPlugin(t *testing.T) {
	db := newTestDB(t)
	before := len(db.Config.Plugins)
	if err := Instrument(db); err != nil {
		t.Fatalf("Instrument: %v", err)
	}
	if len(db.Config.Plugins) != before+1 {
		t.Fatalf("plugins = %d; want %d", len(db.Config.Plugins), before+1)
	}
}
