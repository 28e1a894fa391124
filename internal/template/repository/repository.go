package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	templatedomain "github.com/smallbiznis/paperpress/internal/template/domain"
	"github.com/smallbiznis/paperpress/pkg/db/pagination"
)

type store struct{}

// Provide returns the gorm-backed template repository.
func Provide() templatedomain.Repository {
	return &store{}
}

func (s *store) Insert(ctx context.Context, db *gorm.DB, tmpl *templatedomain.Template) error {
	return db.WithContext(ctx).Create(tmpl).Error
}

func (s *store) Update(ctx context.Context, db *gorm.DB, tmpl *templatedomain.Template) error {
	return db.WithContext(ctx).Save(tmpl).Error
}

func (s *store) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&templatedomain.Template{}).Error
}

// FindByID resolves a template the org may read: its own rows plus the
// shared system starters.
func (s *store) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*templatedomain.Template, error) {
	var tmpl templatedomain.Template
	err := db.WithContext(ctx).
		Where("(org_id = ? OR is_system_template = ?) AND id = ?", orgID, true, id).
		First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tmpl, nil
}

func (s *store) FindDefault(ctx context.Context, db *gorm.DB, orgID snowflake.ID) (*templatedomain.Template, error) {
	var tmpl templatedomain.Template
	err := db.WithContext(ctx).
		Where("org_id = ? AND is_default = ?", orgID, true).
		First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tmpl, nil
}

func (s *store) ClearDefault(ctx context.Context, db *gorm.DB, orgID snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&templatedomain.Template{}).
		Where("org_id = ? AND is_default = ?", orgID, true).
		Update("is_default", false).Error
}

func (s *store) CountByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&templatedomain.Template{}).
		Where("org_id = ?", orgID).
		Count(&count).Error
	return count, err
}

func (s *store) ListNamesByPrefix(ctx context.Context, db *gorm.DB, orgID snowflake.ID, prefix string) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).
		Model(&templatedomain.Template{}).
		Where(`org_id = ? AND name LIKE ? ESCAPE '\'`, orgID, escapeLike(prefix)+"%").
		Pluck("name", &names).Error
	return names, err
}

func (s *store) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter templatedomain.ListRequest) ([]templatedomain.Template, int64, error) {
	// System starters are visible to every org alongside its own rows.
	query := db.WithContext(ctx).
		Model(&templatedomain.Template{}).
		Where("org_id = ? OR is_system_template = ?", orgID, true)

	if search := strings.TrimSpace(filter.Search); search != "" {
		needle := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, needle, needle)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		// Tags are stored as a JSON array; a substring match over the raw
		// column keeps the filter portable across sqlite and postgres.
		query = query.Where(`tags LIKE ? ESCAPE '\'`, `%"`+escapeLike(tag)+`"%`)
	}
	if filter.IsSystemTemplate != nil {
		query = query.Where("is_system_template = ?", *filter.IsSystemTemplate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageInfo := pagination.Build(filter.Page, filter.PageSize, total)
	query = query.
		Order(orderClause(filter.SortBy, filter.OrderBy)).
		Offset(pageInfo.Offset()).
		Limit(pageInfo.PageSize)

	var templates []templatedomain.Template
	if err := query.Find(&templates).Error; err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

func orderClause(sortBy, orderBy string) string {
	column := "updated_at"
	switch strings.TrimSpace(strings.ToLower(sortBy)) {
	case "name":
		column = "name"
	case "created_at":
		column = "created_at"
	case "last_used_at":
		column = "last_used_at"
	case "usage_count":
		column = "usage_count"
	}

	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(orderBy), "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, "%", `\%`)
	return strings.ReplaceAll(value, "_", `\_`)
}
