package seed

import (
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smallbiznis/paperpress/internal/design"
	templatedomain "github.com/smallbiznis/paperpress/internal/template/domain"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(`DROP TABLE IF EXISTS invoice_templates`).Error; err != nil {
		t.Fatalf("drop invoice_templates: %v", err)
	}
	if err := db.AutoMigrate(&templatedomain.Template{}); err != nil {
		t.Fatalf("migrate invoice_templates: %v", err)
	}
	return db
}

func TestEnsureSystemTemplatesIsIdempotent(t *testing.T) {
	db := setupSeedTestDB(t)

	if err := EnsureSystemTemplates(db, 1); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := EnsureSystemTemplates(db, 1); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var count int64
	if err := db.Model(&templatedomain.Template{}).
		Where("org_id = ? AND is_system_template = ?", 1, true).
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 system templates after reseeding, got %d", count)
	}
}

func TestEnsureSystemTemplatesPromotesDefault(t *testing.T) {
	db := setupSeedTestDB(t)

	if err := EnsureSystemTemplates(db, 1); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var defaults []templatedomain.Template
	if err := db.Where("org_id = ? AND is_default = ?", 1, true).
		Find(&defaults).Error; err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if len(defaults) != 1 {
		t.Fatalf("expected exactly one default after seeding, got %d", len(defaults))
	}
	if defaults[0].Name != "Modern" {
		t.Fatalf("expected Modern starter as default, got %q", defaults[0].Name)
	}

	if err := EnsureSystemTemplates(db, 1); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	var count int64
	if err := db.Model(&templatedomain.Template{}).
		Where("org_id = ? AND is_default = ?", 1, true).
		Count(&count).Error; err != nil {
		t.Fatalf("count defaults: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected default to survive reseeding, got %d", count)
	}
}

func TestEnsureSystemTemplatesKeepsExistingDefault(t *testing.T) {
	db := setupSeedTestDB(t)

	raw, err := design.Encode(design.Default())
	if err != nil {
		t.Fatalf("encode design: %v", err)
	}
	existing := templatedomain.Template{
		ID:        42,
		OrgID:     1,
		Name:      "House Style",
		IsDefault: true,
		Design:    datatypes.JSON(raw),
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("create existing default: %v", err)
	}

	if err := EnsureSystemTemplates(db, 1); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var defaults []templatedomain.Template
	if err := db.Where("org_id = ? AND is_default = ?", 1, true).
		Find(&defaults).Error; err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if len(defaults) != 1 || defaults[0].Name != "House Style" {
		t.Fatalf("expected the existing default to survive seeding, got %+v", defaults)
	}
}

func TestStarterDesignsValidate(t *testing.T) {
	for _, starter := range starterTemplates() {
		if errs := design.Validate(starter.design); len(errs) != 0 {
			t.Fatalf("starter %q must validate, got %v", starter.name, errs)
		}
	}
}

func TestEnsureSystemTemplatesRequiresOrg(t *testing.T) {
	db := setupSeedTestDB(t)
	if err := EnsureSystemTemplates(db, 0); err == nil {
		t.Fatalf("expected error for missing org id")
	}
	if err := EnsureSystemTemplates(nil, 1); err == nil {
		t.Fatalf("expected error for missing db handle")
	}
}
