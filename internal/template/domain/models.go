package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Defaults are free-text values pre-filled into invoices created from the
// template. No validation beyond length caps.
type Defaults struct {
	PaymentTerms string `json:"paymentTerms"`
	Notes        string `json:"notes"`
	Terms        string `json:"terms"`
}

// MaxDefaultsTextLen caps each Defaults field.
const MaxDefaultsTextLen = 2000

// Template is the persisted design aggregate: identity plus a design config.
// UsageCount and LastUsedAt are written only through the use-template flow,
// never by the design editor.
type Template struct {
	ID               snowflake.ID   `gorm:"primaryKey"`
	OrgID            snowflake.ID   `gorm:"not null;index"`
	UserID           *snowflake.ID  `gorm:"index"`
	Name             string         `gorm:"type:text;not null"`
	Description      string         `gorm:"type:text"`
	IsDefault        bool           `gorm:"not null;default:false"`
	IsSystemTemplate bool           `gorm:"not null;default:false"`
	Design           datatypes.JSON `gorm:"type:jsonb;not null"`
	Defaults         datatypes.JSON `gorm:"type:jsonb"`
	Tags             datatypes.JSON `gorm:"type:jsonb"`
	Thumbnail        *string        `gorm:"type:text"`
	LastUsedAt       *time.Time
	UsageCount       int64     `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Template) TableName() string { return "invoice_templates" }
