package database

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/tenantify/apikit/component"
	"github.com/tenantify/apikit/logger"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Driver != DriverSQLite {
		t.Errorf("expected sqlite default, got %s", cfg.Driver)
	}
	if cfg.MaxOpenConns != 25 || cfg.MaxIdleConns != 5 {
		t.Errorf("unexpected pool defaults: %d/%d", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("unexpected retries: %d", cfg.MaxRetries)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"bad driver", func(c *Config) { c.Driver = "oracle" }, true},
		{"missing dsn", func(c *Config) { c.DSN = "" }, true},
		{"idle exceeds open", func(c *Config) { c.MaxIdleConns = 50 }, true},
		{"bad lifetime", func(c *Config) { c.ConnMaxLifetime = "soon" }, true},
		{"bad slow threshold", func(c *Config) { c.SlowQueryThreshold = "fast" }, true},
	}
	for _, tc := range cases {
		cfg := Config{DSN: "file::memory:?cache=shared"}
		cfg.ApplyDefaults()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestDialectorFor(t *testing.T) {
	if _, err := dialectorFor(Config{Driver: DriverSQLite, DSN: ":memory:"}); err != nil {
		t.Errorf("sqlite: %v", err)
	}
	if _, err := dialectorFor(Config{Driver: DriverPostgres, DSN: "host=localhost"}); err != nil {
		t.Errorf("postgres: %v", err)
	}
	if _, err := dialectorFor(Config{Driver: "oracle"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}

type testModel struct {
	ID   uint `gorm:"primarykey"`
	Name string
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := Config{Driver: DriverSQLite, DSN: ":memory:", MaxRetries: 1, LogLevel: "silent"}
	db, err := New(context.Background(), cfg, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewAndMigrate(t *testing.T) {
	db := openTestDB(t)

	if err := db.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if err := db.Gorm().Create(&testModel{Name: "a"}).Error; err != nil {
		t.Fatalf("Create: %v", err)
	}

	var got testModel
	if err := db.WithContext(context.Background()).First(&got, "name = ?", "a").Error; err != nil {
		t.Fatalf("First: %v", err)
	}
	if got.Name != "a" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestTransactionRollback(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	wantErr := context.DeadlineExceeded // arbitrary sentinel
	err := db.Transaction(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "doomed"}).Error; err != nil {
			return err
		}
		return wantErr
	})
	if err == nil {
		t.Fatal("expected transaction error")
	}

	var count int64
	db.Gorm().Model(&testModel{}).Count(&count)
	if count != 0 {
		t.Errorf("expected rollback, found %d rows", count)
	}
}

func TestNewFailsFast(t *testing.T) {
	cfg := Config{Driver: "oracle", DSN: "x", MaxRetries: 1}
	if _, err := New(context.Background(), cfg, logger.NewDefault("test")); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestComponentLifecycle(t *testing.T) {
	db := openTestDB(t)
	c := NewComponent(db, logger.NewDefault("test"))

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := c.Health(context.Background()); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %s (%s)", h.Status, h.Message)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
