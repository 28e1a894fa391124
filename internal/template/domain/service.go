package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/smallbiznis/paperpress/internal/design"
	"github.com/smallbiznis/paperpress/pkg/db/pagination"
)

type ListRequest struct {
	Search           string `form:"search"`
	Tag              string `form:"tag"`
	IsSystemTemplate *bool  `form:"is_system_template"`
	SortBy           string `form:"sort_by"`
	OrderBy          string `form:"order_by"`
	Page             int    `form:"page"`
	PageSize         int    `form:"page_size"`
}

type CreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	IsDefault   bool            `json:"is_default"`
	Design      json.RawMessage `json:"design"`
	Defaults    *Defaults       `json:"defaults"`
	Tags        []string        `json:"tags"`
}

type UpdateRequest struct {
	ID          string          `json:"id"`
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Design      json.RawMessage `json:"design"`
	Defaults    *Defaults       `json:"defaults"`
	Tags        []string        `json:"tags"`
}

type Response struct {
	ID               string        `json:"id"`
	OrgID            string        `json:"organization_id"`
	UserID           *string       `json:"user_id,omitempty"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	IsDefault        bool          `json:"is_default"`
	IsSystemTemplate bool          `json:"is_system_template"`
	Design           design.Config `json:"design"`
	Defaults         Defaults      `json:"defaults"`
	Tags             []string      `json:"tags"`
	Thumbnail        *string       `json:"thumbnail,omitempty"`
	LastUsedAt       *time.Time    `json:"last_used_at,omitempty"`
	UsageCount       int64         `json:"usage_count"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type ListResponse struct {
	pagination.PageInfo
	Templates []Response `json:"templates"`
}

// Service is the catalog contract the HTTP layer consumes. Implementations
// must reject invariant violations before any store write.
type Service interface {
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (*Response, error)
	SetDefault(ctx context.Context, id string) (*Response, error)
	RecordUse(ctx context.Context, id string) (*Response, error)
}

func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

var (
	ErrInvalidOrganization     = errors.New("invalid_organization")
	ErrInvalidID               = errors.New("invalid_id")
	ErrInvalidName             = errors.New("invalid_name")
	ErrInvalidDefaults         = errors.New("invalid_defaults")
	ErrNotFound                = errors.New("not_found")
	ErrSystemTemplateImmutable = errors.New("system_template_immutable")
	ErrDefaultDeletionConflict = errors.New("default_template_conflict")
)
