package seed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/smallbiznis/paperpress/internal/design"
	templatedomain "github.com/smallbiznis/paperpress/internal/template/domain"
)

// EnsureSystemTemplates seeds the starter catalog for the bootstrap org.
// Existing system templates are left untouched, so re-running on every boot
// is safe.
func EnsureSystemTemplates(db *gorm.DB, orgID snowflake.ID) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if orgID == 0 {
		return errors.New("seed org id is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, starter := range starterTemplates() {
			if err := ensureTemplateTx(ctx, tx, node, orgID, starter); err != nil {
				return err
			}
		}
		return ensureDefaultTx(ctx, tx, orgID)
	})
}

// ensureDefaultTx promotes the Modern starter when the org has no default
// yet. An existing default, user-made or not, is never stolen.
func ensureDefaultTx(ctx context.Context, tx *gorm.DB, orgID snowflake.ID) error {
	var defaults int64
	err := tx.WithContext(ctx).
		Model(&templatedomain.Template{}).
		Where("org_id = ? AND is_default = ?", orgID, true).
		Count(&defaults).Error
	if err != nil {
		return err
	}
	if defaults > 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Model(&templatedomain.Template{}).
		Where("org_id = ? AND name = ? AND is_system_template = ?", orgID, defaultStarterName, true).
		Update("is_default", true).Error
}

// defaultStarterName is the starter promoted to org default when nothing
// else holds the flag.
const defaultStarterName = "Modern"

type starterTemplate struct {
	name        string
	description string
	tags        []string
	design      design.Config
}

func ensureTemplateTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, orgID snowflake.ID, starter starterTemplate) error {
	var count int64
	err := tx.WithContext(ctx).
		Model(&templatedomain.Template{}).
		Where("org_id = ? AND name = ? AND is_system_template = ?", orgID, starter.name, true).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	designBlob, err := design.Encode(starter.design)
	if err != nil {
		return err
	}
	tagsBlob, err := json.Marshal(starter.tags)
	if err != nil {
		return err
	}
	defaultsBlob, err := json.Marshal(templatedomain.Defaults{})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return tx.WithContext(ctx).Create(&templatedomain.Template{
		ID:               node.Generate(),
		OrgID:            orgID,
		Name:             starter.name,
		Description:      starter.description,
		IsSystemTemplate: true,
		Design:           datatypes.JSON(designBlob),
		Defaults:         datatypes.JSON(defaultsBlob),
		Tags:             datatypes.JSON(tagsBlob),
		CreatedAt:        now,
		UpdatedAt:        now,
	}).Error
}

func starterTemplates() []starterTemplate {
	classic := design.Default()
	classic.Colors.Primary = "#1f2937"
	classic.Colors.Accent = "#6b7280"
	classic.Typography.HeadingFont = "Georgia"
	classic.Typography.BodyFont = "Georgia"
	classic.Advanced.ShowBorders = true
	classic.Advanced.RoundedCorners = false

	modern := design.Default()

	minimal := design.Default()
	minimal.Colors.Primary = "#111827"
	minimal.Colors.Accent = "#111827"
	minimal.Logo.Enabled = false
	minimal.Spacing.SectionGap = 32
	minimal.Sections[design.SectionNotes] = design.SectionConfig{
		Enabled: false,
		Fields:  []string{"notes"},
		Order:   5,
	}

	return []starterTemplate{
		{
			name:        "Classic",
			description: "Traditional serif layout with ruled sections.",
			tags:        []string{"starter", "classic"},
			design:      classic,
		},
		{
			name:        "Modern",
			description: "Clean sans-serif layout with accent colors.",
			tags:        []string{"starter", "modern"},
			design:      modern,
		},
		{
			name:        "Minimal",
			description: "Sparse monochrome layout without a logo.",
			tags:        []string{"starter", "minimal"},
			design:      minimal,
		},
	}
}
