package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tmpl *Template) error
	Update(ctx context.Context, db *gorm.DB, tmpl *Template) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Template, error)
	FindDefault(ctx context.Context, db *gorm.DB, orgID snowflake.ID) (*Template, error)
	ClearDefault(ctx context.Context, db *gorm.DB, orgID snowflake.ID) error
	CountByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID) (int64, error)
	ListNamesByPrefix(ctx context.Context, db *gorm.DB, orgID snowflake.ID, prefix string) ([]string, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListRequest) ([]Template, int64, error)
}
