package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/kids-talk-backend/internal/config"
	"github.com/tbourn/kids-talk-backend/internal/domain"
)

func TestSQLiteDSN(t *testing.T) {
	got := SQLiteDSN("app.db")
	want := "app.db?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if got != want {
		t.Fatalf("SQLiteDSN = %q", got)
	}
	if got := SQLiteDSN("file:x?mode=memory"); !strings.HasPrefix(got, "file:x?mode=memory&_pragma=") {
		t.Fatalf("existing query not extended: %q", got)
	}
}

func TestOpenSQLite_MissingDirectory(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "does-not-exist", "app.db")
	db, err := OpenSQLite(bad)
	if err == nil || db != nil {
		t.Fatalf("expected error opening %q, got db=%v err=%v", bad, db, err)
	}
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestOpenSQLite_PragmasPoolAndSchema(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	var journal string
	if err := db.Raw("PRAGMA journal_mode;").Row().Scan(&journal); err != nil || strings.ToLower(journal) != "wal" {
		t.Fatalf("journal_mode = %q err=%v", journal, err)
	}
	for pragma, want := range map[string]int{"synchronous": 1, "foreign_keys": 1, "busy_timeout": 5000} {
		var got int
		if err := db.Raw("PRAGMA " + pragma + ";").Row().Scan(&got); err != nil {
			t.Fatalf("PRAGMA %s: %v", pragma, err)
		}
		if got != want {
			t.Fatalf("PRAGMA %s = %d, want %d", pragma, got, want)
		}
	}
	if n := sqlDB.Stats().MaxOpenConnections; n != 10 {
		t.Fatalf("MaxOpenConnections = %d", n)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	for _, tbl := range []any{&domain.Profile{}, &domain.Chatroom{}, &domain.Talk{}, &domain.Analysis{}, &domain.WeeklyReport{}, &domain.Idempotency{}} {
		if !db.Migrator().HasTable(tbl) {
			t.Fatalf("table for %T not created", tbl)
		}
	}

	// Talks reference their room on every pooled connection.
	now := time.Now().UTC()
	orphan := &domain.Talk{ID: "t0", ChatroomID: "missing", ProfileID: 1, SessionID: "s", Category: "C", Role: domain.RoleUser, Content: "x", CreatedAt: now}
	if err := db.Create(orphan).Error; err == nil {
		t.Fatalf("expected FK violation for orphan talk")
	}
	if err := db.Create(&domain.Chatroom{ID: "c1", ProfileID: 1, CreatedAt: now}).Error; err != nil {
		t.Fatalf("insert chatroom: %v", err)
	}
	talk := &domain.Talk{ID: "t1", ChatroomID: "c1", ProfileID: 1, SessionID: "s1", Category: "LIFESTYLEHABIT", Role: domain.RoleUser, Content: "hi", CreatedAt: now}
	if err := db.Create(talk).Error; err != nil {
		t.Fatalf("insert talk: %v", err)
	}
}

func TestOpen_SQLiteDriverInstallsTracing(t *testing.T) {
	cfg := config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "app.db")}
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	if _, ok := db.Config.Plugins["otelgorm"]; !ok {
		t.Fatalf("expected otelgorm plugin registered, got %v", db.Config.Plugins)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(config.Config{DBDriver: "oracle"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
