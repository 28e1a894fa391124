package dispatch

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smallbiznis/paperpress/internal/events"
)

func setupDispatchTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(`DROP TABLE IF EXISTS template_events`).Error; err != nil {
		t.Fatalf("drop template_events: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE template_events (
			id BIGINT PRIMARY KEY,
			org_id BIGINT NOT NULL,
			event_type TEXT NOT NULL,
			payload TEXT NOT NULL DEFAULT '{}',
			dedupe_key TEXT,
			published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (org_id, dedupe_key)
		)`,
	).Error; err != nil {
		t.Fatalf("create template_events: %v", err)
	}
	return db
}

func TestWorkerDispatchesAndMarksPublished(t *testing.T) {
	db := setupDispatchTestDB(t)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new snowflake node: %v", err)
	}

	outbox := events.NewOutbox(db, node)
	ctx := context.Background()
	if err := outbox.Publish(ctx, events.Event{
		OrgID:   1,
		Type:    events.EventTemplateCreated,
		Payload: events.TemplatePayload{TemplateID: "42", Name: "Classic"}.ToMap(),
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	var seen []StoredEvent
	worker := NewWorker(Params{
		DB:  db,
		Log: zap.NewNop(),
		Handlers: []Handler{func(ctx context.Context, event StoredEvent) error {
			seen = append(seen, event)
			return nil
		}},
	})

	if err := worker.RunOnce(ctx); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("expected 1 dispatched event, got %d", len(seen))
	}
	if seen[0].EventType != events.EventTemplateCreated {
		t.Fatalf("unexpected event type %q", seen[0].EventType)
	}

	var pending int64
	if err := db.Table("template_events").Where("published = ?", false).Count(&pending).Error; err != nil {
		t.Fatalf("count pending: %v", err)
	}
	if pending != 0 {
		t.Fatalf("expected all events published, got %d pending", pending)
	}
}

func TestWorkerRetriesFailedHandler(t *testing.T) {
	db := setupDispatchTestDB(t)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new snowflake node: %v", err)
	}

	outbox := events.NewOutbox(db, node)
	ctx := context.Background()
	if err := outbox.Publish(ctx, events.Event{
		OrgID:   1,
		Type:    events.EventTemplateUpdated,
		Payload: map[string]any{"template_id": "42"},
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	failures := 0
	worker := NewWorker(Params{
		DB:  db,
		Log: zap.NewNop(),
		Handlers: []Handler{func(ctx context.Context, event StoredEvent) error {
			failures++
			if failures == 1 {
				return context.DeadlineExceeded
			}
			return nil
		}},
	})

	if err := worker.RunOnce(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	var pending int64
	if err := db.Table("template_events").Where("published = ?", false).Count(&pending).Error; err != nil {
		t.Fatalf("count pending: %v", err)
	}
	if pending != 1 {
		t.Fatalf("expected failed event to stay pending, got %d", pending)
	}

	if err := worker.RunOnce(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if err := db.Table("template_events").Where("published = ?", false).Count(&pending).Error; err != nil {
		t.Fatalf("count pending: %v", err)
	}
	if pending != 0 {
		t.Fatalf("expected retry to publish the event, got %d pending", pending)
	}
}
