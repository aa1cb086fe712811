package entity

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "github.com/tenantify/apikit/errors"
	"github.com/tenantify/apikit/logger"
)

type testHandle struct {
	db *gorm.DB
}

func (h testHandle) Gorm() *gorm.DB { return h.db }

type Widget struct {
	ID       uint `gorm:"primarykey"`
	TenantID string
	Name     string
}

func newTestService(t *testing.T) *Service[testHandle] {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	svc := NewService(testHandle{db: db}, logger.NewDefault("test"))
	if err := svc.Migrate(&Widget{}); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return svc
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	w := Widget{TenantID: "t1", Name: "anvil"}
	if err := Create(ctx, svc, &w); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if w.ID == 0 {
		t.Fatal("expected assigned primary key")
	}

	var got Widget
	if err := Get(ctx, svc, &got, w.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "anvil" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(t)

	var got Widget
	err := Get(context.Background(), svc, &got, 42)
	if err == nil {
		t.Fatal("expected error for missing record")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestListForTenant(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, w := range []Widget{
		{TenantID: "t1", Name: "a"},
		{TenantID: "t1", Name: "b"},
		{TenantID: "t2", Name: "c"},
	} {
		w := w
		if err := Create(ctx, svc, &w); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	var got []Widget
	if err := ListForTenant(ctx, svc, "t1", &got); err != nil {
		t.Fatalf("ListForTenant: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records for t1, got %d", len(got))
	}
	for _, w := range got {
		if w.TenantID != "t1" {
			t.Errorf("record leaked across tenants: %+v", w)
		}
	}
}

func TestSaveAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	w := Widget{TenantID: "t1", Name: "before"}
	if err := Create(ctx, svc, &w); err != nil {
		t.Fatalf("Create: %v", err)
	}

	w.Name = "after"
	if err := Save(ctx, svc, &w); err != nil {
		t.Fatalf("Save: %v", err)
	}
	var got Widget
	if err := Get(ctx, svc, &got, w.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "after" {
		t.Errorf("expected updated name, got %q", got.Name)
	}

	if err := Delete[Widget](ctx, svc, w.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := Get(ctx, svc, &got, w.ID); err == nil {
		t.Error("expected missing record after delete")
	}
}

func TestEntityName(t *testing.T) {
	if name := entityName[Widget](); name != "widget" {
		t.Errorf("expected widget, got %q", name)
	}
	if name := entityName[*Widget](); name != "widget" {
		t.Errorf("expected widget for pointer model, got %q", name)
	}
}
