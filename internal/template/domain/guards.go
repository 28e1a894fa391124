package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// CanEdit reports whether the editing UI may mutate the template. System
// templates are immutable from the editor.
func CanEdit(t *Template) bool {
	return t != nil && !t.IsSystemTemplate
}

// CanDelete reports whether the template may be removed. The current default
// needs another template able to take over before it can go.
func CanDelete(t *Template, otherTemplates int64) bool {
	if t == nil || t.IsSystemTemplate {
		return false
	}
	if t.IsDefault && otherTemplates == 0 {
		return false
	}
	return true
}

// CanSetDefault reports whether the template may become the org default.
func CanSetDefault(t *Template) bool {
	return t != nil
}

// DuplicateAggregate produces an independent copy owned by orgID: fresh
// identity, cleared default/system flags, zeroed usage, and a deep-copied
// design so mutating the copy can never bleed into the source. Duplicating a
// shared system starter is how an org takes its own editable copy.
func DuplicateAggregate(source *Template, id, orgID snowflake.ID, name string, now time.Time) Template {
	copied := *source
	copied.ID = id
	copied.OrgID = orgID
	copied.Name = name
	copied.IsDefault = false
	copied.IsSystemTemplate = false
	copied.UsageCount = 0
	copied.LastUsedAt = nil
	copied.Thumbnail = nil
	copied.CreatedAt = now
	copied.UpdatedAt = now
	copied.Design = append(datatypes.JSON(nil), source.Design...)
	copied.Defaults = append(datatypes.JSON(nil), source.Defaults...)
	copied.Tags = append(datatypes.JSON(nil), source.Tags...)
	if source.UserID != nil {
		userID := *source.UserID
		copied.UserID = &userID
	}
	return copied
}

// DecodeDefaults reads the stored defaults blob; absent blobs decode to zero.
func DecodeDefaults(raw datatypes.JSON) (Defaults, error) {
	if len(raw) == 0 {
		return Defaults{}, nil
	}
	var defaults Defaults
	if err := json.Unmarshal(raw, &defaults); err != nil {
		return Defaults{}, err
	}
	return defaults, nil
}

// DecodeTags reads the stored tag list; absent blobs decode to nil.
func DecodeTags(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// ValidateDefaults enforces the per-field length caps.
func ValidateDefaults(defaults Defaults) error {
	for _, value := range []string{defaults.PaymentTerms, defaults.Notes, defaults.Terms} {
		if len(value) > MaxDefaultsTextLen {
			return ErrInvalidDefaults
		}
	}
	return nil
}
