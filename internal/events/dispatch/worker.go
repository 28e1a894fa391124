package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StoredEvent is one unpublished outbox row handed to handlers.
type StoredEvent struct {
	ID        snowflake.ID
	OrgID     snowflake.ID
	EventType string
	Payload   datatypes.JSONMap
	CreatedAt time.Time
}

// Handler reacts to a catalog event. A failing handler leaves the row
// unpublished so the next poll retries it.
type Handler func(ctx context.Context, event StoredEvent) error

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Handlers []Handler `group:"template_event_handlers"`
	Config   Config    `optional:"true"`
}

// Worker drains the template_events outbox and fans rows out to handlers.
type Worker struct {
	db       *gorm.DB
	log      *zap.Logger
	handlers []Handler
	cfg      Config
}

func NewWorker(p Params) *Worker {
	return &Worker{
		db:       p.DB,
		log:      p.Log.Named("events.dispatch"),
		handlers: p.Handlers,
		cfg:      p.Config.withDefaults(),
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(ctx); err != nil {
			w.log.Warn("outbox dispatch run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Worker) RunOnce(ctx context.Context) error {
	_, err := w.processBatch(ctx, w.cfg.BatchSize)
	return err
}

func (w *Worker) processBatch(ctx context.Context, limit int) (int, error) {
	if w.db == nil {
		return 0, errors.New("dispatch_worker_unavailable")
	}
	if limit <= 0 {
		limit = w.cfg.BatchSize
	}

	var rows []StoredEvent
	err := w.db.WithContext(ctx).
		Table("template_events").
		Select("id, org_id, event_type, payload, created_at").
		Where("published = ?", false).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, row := range rows {
		if err := w.dispatch(ctx, row); err != nil {
			w.log.Warn("event handler failed",
				zap.String("event_type", row.EventType),
				zap.String("event_id", row.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := w.markPublished(ctx, row.ID); err != nil {
			return dispatched, err
		}
		dispatched++
	}
	return dispatched, nil
}

func (w *Worker) dispatch(ctx context.Context, event StoredEvent) error {
	for _, handler := range w.handlers {
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) markPublished(ctx context.Context, id snowflake.ID) error {
	return w.db.WithContext(ctx).
		Table("template_events").
		Where("id = ?", id).
		Update("published", true).Error
}
