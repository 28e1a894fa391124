package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditdomain "github.com/smallbiznis/paperpress/internal/audit/domain"
	"github.com/smallbiznis/paperpress/internal/clock"
	"github.com/smallbiznis/paperpress/internal/design"
	"github.com/smallbiznis/paperpress/internal/events"
	"github.com/smallbiznis/paperpress/internal/observability/metrics"
	"github.com/smallbiznis/paperpress/internal/orgcontext"
	templatedomain "github.com/smallbiznis/paperpress/internal/template/domain"
	"github.com/smallbiznis/paperpress/pkg/db/pagination"
)

const maxTemplateNameLen = 120

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	repo   templatedomain.Repository
	audit  auditdomain.Service
	outbox *events.Outbox
}

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     templatedomain.Repository
	AuditSvc auditdomain.Service `optional:"true"`
	Outbox   *events.Outbox      `optional:"true"`
}

func NewService(p ServiceParam) templatedomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("template.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		audit:  p.AuditSvc,
		outbox: p.Outbox,
	}
}

func (s *Service) List(ctx context.Context, req templatedomain.ListRequest) (templatedomain.ListResponse, error) {
	orgID := orgcontext.OrgIDFromContext(ctx)
	if orgID == 0 {
		return templatedomain.ListResponse{}, templatedomain.ErrInvalidOrganization
	}

	templates, total, err := s.repo.List(ctx, s.db, orgID, req)
	if err != nil {
		return templatedomain.ListResponse{}, err
	}

	responses := make([]templatedomain.Response, 0, len(templates))
	for i := range templates {
		resp, err := toResponse(&templates[i])
		if err != nil {
			return templatedomain.ListResponse{}, err
		}
		responses = append(responses, *resp)
	}

	return templatedomain.ListResponse{
		PageInfo:  pagination.Build(req.Page, req.PageSize, total),
		Templates: responses,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*templatedomain.Response, error) {
	orgID, templateID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	tmpl, err := s.repo.FindByID(ctx, s.db, orgID, templateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, templatedomain.ErrNotFound
	}
	return toResponse(tmpl)
}

func (s *Service) Create(ctx context.Context, req templatedomain.CreateRequest) (*templatedomain.Response, error) {
	orgID := orgcontext.OrgIDFromContext(ctx)
	if orgID == 0 {
		return nil, templatedomain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxTemplateNameLen {
		return nil, templatedomain.ErrInvalidName
	}

	designBlob, err := normalizeDesign(req.Design)
	if err != nil {
		return nil, err
	}

	defaults := templatedomain.Defaults{}
	if req.Defaults != nil {
		defaults = *req.Defaults
	}
	if err := templatedomain.ValidateDefaults(defaults); err != nil {
		return nil, err
	}
	defaultsBlob, err := json.Marshal(defaults)
	if err != nil {
		return nil, err
	}
	tagsBlob, err := marshalTags(req.Tags)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	tmpl := &templatedomain.Template{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		IsDefault:   req.IsDefault,
		Design:      designBlob,
		Defaults:    defaultsBlob,
		Tags:        tagsBlob,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tmpl.IsDefault {
			if err := s.repo.ClearDefault(ctx, tx, orgID); err != nil {
				return err
			}
		}
		if err := s.repo.Insert(ctx, tx, tmpl); err != nil {
			return err
		}
		return s.publish(ctx, tx, orgID, events.EventTemplateCreated, events.TemplatePayload{
			TemplateID:  tmpl.ID.String(),
			Name:        tmpl.Name,
			Fingerprint: designFingerprint(tmpl.Design),
		})
	})
	if err != nil {
		metrics.Render().IncTemplateOperation("create", "failed")
		return nil, err
	}

	metrics.Render().IncTemplateOperation("create", "success")
	s.auditLog(ctx, orgID, "template.create", tmpl.ID, map[string]any{"name": tmpl.Name})
	return toResponse(tmpl)
}

func (s *Service) Update(ctx context.Context, req templatedomain.UpdateRequest) (*templatedomain.Response, error) {
	orgID, templateID, err := s.scope(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	tmpl, err := s.repo.FindByID(ctx, s.db, orgID, templateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, templatedomain.ErrNotFound
	}
	if !templatedomain.CanEdit(tmpl) {
		return nil, templatedomain.ErrSystemTemplateImmutable
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > maxTemplateNameLen {
			return nil, templatedomain.ErrInvalidName
		}
		tmpl.Name = name
	}
	if req.Description != nil {
		tmpl.Description = strings.TrimSpace(*req.Description)
	}
	if len(req.Design) > 0 {
		designBlob, err := normalizeDesign(req.Design)
		if err != nil {
			return nil, err
		}
		tmpl.Design = designBlob
	}
	if req.Defaults != nil {
		if err := templatedomain.ValidateDefaults(*req.Defaults); err != nil {
			return nil, err
		}
		defaultsBlob, err := json.Marshal(*req.Defaults)
		if err != nil {
			return nil, err
		}
		tmpl.Defaults = defaultsBlob
	}
	if req.Tags != nil {
		tagsBlob, err := marshalTags(req.Tags)
		if err != nil {
			return nil, err
		}
		tmpl.Tags = tagsBlob
	}
	tmpl.UpdatedAt = s.clock.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, tmpl); err != nil {
			return err
		}
		return s.publish(ctx, tx, orgID, events.EventTemplateUpdated, events.TemplatePayload{
			TemplateID:  tmpl.ID.String(),
			Name:        tmpl.Name,
			Fingerprint: designFingerprint(tmpl.Design),
		})
	})
	if err != nil {
		metrics.Render().IncTemplateOperation("update", "failed")
		return nil, err
	}

	metrics.Render().IncTemplateOperation("update", "success")
	s.auditLog(ctx, orgID, "template.update", tmpl.ID, map[string]any{"name": tmpl.Name})
	return toResponse(tmpl)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	orgID, templateID, err := s.scope(ctx, id)
	if err != nil {
		return err
	}

	tmpl, err := s.repo.FindByID(ctx, s.db, orgID, templateID)
	if err != nil {
		return err
	}
	if tmpl == nil {
		return templatedomain.ErrNotFound
	}

	total, err := s.repo.CountByOrg(ctx, s.db, orgID)
	if err != nil {
		return err
	}
	if !templatedomain.CanDelete(tmpl, total-1) {
		if tmpl.IsSystemTemplate {
			return templatedomain.ErrSystemTemplateImmutable
		}
		return templatedomain.ErrDefaultDeletionConflict
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Delete(ctx, tx, orgID, templateID); err != nil {
			return err
		}
		return s.publish(ctx, tx, orgID, events.EventTemplateDeleted, events.TemplatePayload{
			TemplateID: templateID.String(),
			Name:       tmpl.Name,
		})
	})
	if err != nil {
		metrics.Render().IncTemplateOperation("delete", "failed")
		return err
	}

	metrics.Render().IncTemplateOperation("delete", "success")
	s.auditLog(ctx, orgID, "template.delete", templateID, map[string]any{"name": tmpl.Name})
	return nil
}

func (s *Service) Duplicate(ctx context.Context, id string) (*templatedomain.Response, error) {
	orgID, templateID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	source, err := s.repo.FindByID(ctx, s.db, orgID, templateID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, templatedomain.ErrNotFound
	}

	name, err := s.copyName(ctx, orgID, source.Name)
	if err != nil {
		return nil, err
	}

	copied := templatedomain.DuplicateAggregate(source, s.genID.Generate(), orgID, name, s.clock.Now())
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &copied); err != nil {
			return err
		}
		return s.publish(ctx, tx, orgID, events.EventTemplateDuplicated, events.TemplatePayload{
			TemplateID: copied.ID.String(),
			Name:       copied.Name,
			SourceID:   source.ID.String(),
		})
	})
	if err != nil {
		metrics.Render().IncTemplateOperation("duplicate", "failed")
		return nil, err
	}

	metrics.Render().IncTemplateOperation("duplicate", "success")
	s.auditLog(ctx, orgID, "template.duplicate", copied.ID, map[string]any{
		"name":      copied.Name,
		"source_id": source.ID.String(),
	})
	return toResponse(&copied)
}

func (s *Service) SetDefault(ctx context.Context, id string) (*templatedomain.Response, error) {
	orgID, templateID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	var tmpl *templatedomain.Template
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repo.FindByID(ctx, tx, orgID, templateID)
		if err != nil {
			return err
		}
		if found == nil {
			return templatedomain.ErrNotFound
		}
		if !templatedomain.CanSetDefault(found) {
			return templatedomain.ErrNotFound
		}
		// A shared starter belongs to the bootstrap org; marking it default
		// would leak the flag across orgs. Orgs duplicate a starter first.
		if found.IsSystemTemplate && found.OrgID != orgID {
			return templatedomain.ErrSystemTemplateImmutable
		}
		if err := s.repo.ClearDefault(ctx, tx, orgID); err != nil {
			return err
		}
		found.IsDefault = true
		found.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, tx, found); err != nil {
			return err
		}
		if err := s.publish(ctx, tx, orgID, events.EventTemplateDefaultChanged, events.TemplatePayload{
			TemplateID: found.ID.String(),
			Name:       found.Name,
		}); err != nil {
			return err
		}
		tmpl = found
		return nil
	})
	if err != nil {
		metrics.Render().IncTemplateOperation("set_default", "failed")
		return nil, err
	}

	metrics.Render().IncTemplateOperation("set_default", "success")
	s.auditLog(ctx, orgID, "template.set_default", tmpl.ID, map[string]any{"name": tmpl.Name})
	return toResponse(tmpl)
}

func (s *Service) RecordUse(ctx context.Context, id string) (*templatedomain.Response, error) {
	orgID, templateID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	var tmpl *templatedomain.Template
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repo.FindByID(ctx, tx, orgID, templateID)
		if err != nil {
			return err
		}
		if found == nil {
			return templatedomain.ErrNotFound
		}
		now := s.clock.Now()
		found.UsageCount++
		found.LastUsedAt = &now
		if err := s.repo.Update(ctx, tx, found); err != nil {
			return err
		}
		tmpl = found
		return nil
	})
	if err != nil {
		metrics.Render().IncTemplateOperation("use", "failed")
		return nil, err
	}

	metrics.Render().IncTemplateOperation("use", "success")
	return toResponse(tmpl)
}

func (s *Service) scope(ctx context.Context, rawID string) (snowflake.ID, snowflake.ID, error) {
	orgID := orgcontext.OrgIDFromContext(ctx)
	if orgID == 0 {
		return 0, 0, templatedomain.ErrInvalidOrganization
	}
	templateID, err := templatedomain.ParseID(rawID)
	if err != nil {
		return 0, 0, templatedomain.ErrInvalidID
	}
	return orgID, templateID, nil
}

// copyName derives a unique "<name> (Copy)" label, counting up when earlier
// copies already exist.
func (s *Service) copyName(ctx context.Context, orgID snowflake.ID, base string) (string, error) {
	existing, err := s.repo.ListNamesByPrefix(ctx, s.db, orgID, base)
	if err != nil {
		return "", err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		taken[name] = struct{}{}
	}

	candidate := base + " (Copy)"
	if _, ok := taken[candidate]; !ok {
		return candidate, nil
	}
	for i := 2; ; i++ {
		candidate = fmt.Sprintf("%s (Copy %d)", base, i)
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
	}
}

// publish writes a catalog event through the outbox; a missing outbox is not
// an error so the service stays usable in minimal wiring.
func (s *Service) publish(ctx context.Context, db *gorm.DB, orgID snowflake.ID, eventType string, payload events.TemplatePayload) error {
	if s.outbox == nil {
		return nil
	}
	return s.outbox.PublishTx(ctx, db, events.Event{
		OrgID:   orgID,
		Type:    eventType,
		Payload: payload.ToMap(),
	})
}

func (s *Service) auditLog(ctx context.Context, orgID snowflake.ID, action string, targetID snowflake.ID, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	target := targetID.String()
	if err := s.audit.AuditLog(ctx, &orgID, "", nil, action, "invoice_template", &target, metadata); err != nil {
		s.log.Warn("audit log failed", zap.String("action", action), zap.Error(err))
	}
}

// designFingerprint identifies a stored design so event consumers can tell
// whether an update actually changed it.
func designFingerprint(blob datatypes.JSON) string {
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:])
}

// normalizeDesign decodes the submitted blob (migrating legacy payloads),
// validates it, and re-encodes the canonical shape for storage.
func normalizeDesign(raw json.RawMessage) (datatypes.JSON, error) {
	if len(raw) == 0 {
		raw, _ = json.Marshal(design.Default())
	}
	cfg, _, err := design.Decode(raw)
	if err != nil {
		return nil, err
	}
	if errs := design.Validate(cfg); len(errs) > 0 {
		return nil, errs
	}
	encoded, err := design.Encode(cfg)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		cleaned = append(cleaned, tag)
	}
	blob, err := json.Marshal(cleaned)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(blob), nil
}

func toResponse(tmpl *templatedomain.Template) (*templatedomain.Response, error) {
	cfg, _, err := design.Decode(tmpl.Design)
	if err != nil {
		return nil, err
	}
	defaults, err := templatedomain.DecodeDefaults(tmpl.Defaults)
	if err != nil {
		return nil, err
	}
	tags, err := templatedomain.DecodeTags(tmpl.Tags)
	if err != nil {
		return nil, err
	}

	resp := &templatedomain.Response{
		ID:               tmpl.ID.String(),
		OrgID:            tmpl.OrgID.String(),
		Name:             tmpl.Name,
		Description:      tmpl.Description,
		IsDefault:        tmpl.IsDefault,
		IsSystemTemplate: tmpl.IsSystemTemplate,
		Design:           cfg,
		Defaults:         defaults,
		Tags:             tags,
		Thumbnail:        tmpl.Thumbnail,
		LastUsedAt:       tmpl.LastUsedAt,
		UsageCount:       tmpl.UsageCount,
		CreatedAt:        tmpl.CreatedAt,
		UpdatedAt:        tmpl.UpdatedAt,
	}
	if tmpl.UserID != nil {
		userID := tmpl.UserID.String()
		resp.UserID = &userID
	}
	return resp, nil
}
