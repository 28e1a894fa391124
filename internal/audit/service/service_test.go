package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditdomain "github.com/smallbiznis/paperpress/internal/audit/domain"
	"github.com/smallbiznis/paperpress/internal/audit/repository"
	"github.com/smallbiznis/paperpress/internal/auditcontext"
	"github.com/smallbiznis/paperpress/internal/clock"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(`DROP TABLE IF EXISTS audit_logs`).Error; err != nil {
		t.Fatalf("drop audit_logs: %v", err)
	}
	if err := db.AutoMigrate(&auditdomain.AuditLog{}); err != nil {
		t.Fatalf("migrate audit_logs: %v", err)
	}
	return db
}

func newAuditTestService(t *testing.T, db *gorm.DB) auditdomain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new snowflake node: %v", err)
	}
	return &Service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		clock: clock.Fixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		repo:  repository.Provide(),
	}
}

func TestAuditLogCapturesContextActor(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditTestService(t, db)

	ctx := auditcontext.WithActor(context.Background(), "user", "42")
	ctx = auditcontext.WithIPAddress(ctx, "203.0.113.9")

	orgID := snowflake.ID(1)
	target := "1001"
	if err := svc.AuditLog(ctx, &orgID, "", nil, "template.update", "invoice_template", &target, map[string]any{"name": "Classic"}); err != nil {
		t.Fatalf("audit log: %v", err)
	}

	entries, err := svc.List(ctx, auditdomain.ListFilter{OrgID: orgID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.ActorType != "user" || entry.ActorID == nil || *entry.ActorID != "42" {
		t.Fatalf("expected context actor, got %s %v", entry.ActorType, entry.ActorID)
	}
	if entry.IPAddress == nil || *entry.IPAddress != "203.0.113.9" {
		t.Fatalf("expected ip address recorded")
	}
	if entry.Action != "template.update" {
		t.Fatalf("unexpected action %q", entry.Action)
	}
}

func TestAuditLogRejectsEmptyAction(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditTestService(t, db)

	orgID := snowflake.ID(1)
	if err := svc.AuditLog(context.Background(), &orgID, "", nil, " ", "invoice_template", nil, nil); err != auditdomain.ErrInvalidAction {
		t.Fatalf("expected invalid action, got %v", err)
	}
}

func TestListFiltersByAction(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditTestService(t, db)
	ctx := context.Background()
	orgID := snowflake.ID(1)

	for _, action := range []string{"template.create", "template.delete", "template.create"} {
		if err := svc.AuditLog(ctx, &orgID, "system", nil, action, "invoice_template", nil, nil); err != nil {
			t.Fatalf("audit log %s: %v", action, err)
		}
	}

	entries, err := svc.List(ctx, auditdomain.ListFilter{OrgID: orgID, Action: "template.create"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 create entries, got %d", len(entries))
	}
}
