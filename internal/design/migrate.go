package design

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownSchema is returned when a stored design matches neither the
// canonical nor the legacy shape.
var ErrUnknownSchema = errors.New("unknown_design_schema")

// legacyConfig is the first-generation design shape: the bill-to section keyed
// "billTo", spacing keyed "itemGap", and decorations split across top-level
// "borders"/"watermark" objects instead of the advanced block.
type legacyConfig struct {
	Colors     ColorScheme              `json:"colors"`
	Typography Typography               `json:"typography"`
	Logo       LogoConfig               `json:"logo"`
	Layout     PageLayout               `json:"layout"`
	Sections   map[string]SectionConfig `json:"sections"`
	Spacing    struct {
		SectionGap int `json:"sectionGap"`
		ItemGap    int `json:"itemGap"`
		Padding    int `json:"padding"`
	} `json:"spacing"`
	Borders struct {
		Enabled bool   `json:"enabled"`
		Style   string `json:"style"`
		Rounded bool   `json:"rounded"`
	} `json:"borders"`
	Watermark struct {
		Enabled bool   `json:"enabled"`
		Text    string `json:"text"`
	} `json:"watermark"`
	PageNumbers bool `json:"pageNumbers"`
}

// Decode parses a stored design document, migrating legacy records to the
// canonical schema. The second return reports whether a migration ran.
func Decode(raw []byte) (Config, bool, error) {
	if len(raw) == 0 {
		return Config{}, false, ErrUnknownSchema
	}

	var probe struct {
		SchemaVersion int             `json:"schemaVersion"`
		Sections      map[string]any  `json:"sections"`
		Spacing       map[string]any  `json:"spacing"`
		Borders       json.RawMessage `json:"borders"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Config{}, false, fmt.Errorf("decode design: %w", err)
	}

	if isLegacyShape(probe.SchemaVersion, probe.Sections, probe.Spacing, probe.Borders) {
		cfg, err := decodeLegacy(raw)
		return cfg, true, err
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("decode design: %w", err)
	}
	cfg.SchemaVersion = SchemaVersionCanonical
	return cfg, false, nil
}

func isLegacyShape(version int, sections, spacing map[string]any, borders json.RawMessage) bool {
	if version >= SchemaVersionCanonical {
		return false
	}
	if _, ok := sections["billTo"]; ok {
		return true
	}
	if _, ok := spacing["itemGap"]; ok {
		return true
	}
	return len(borders) > 0 && string(borders) != "null"
}

func decodeLegacy(raw []byte) (Config, error) {
	var legacy legacyConfig
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return Config{}, fmt.Errorf("decode legacy design: %w", err)
	}

	sections := make(map[SectionKey]SectionConfig, len(legacy.Sections))
	for key, section := range legacy.Sections {
		target := SectionKey(key)
		if key == "billTo" {
			target = SectionInvoiceInfo
		}
		section.Fields = append([]string(nil), section.Fields...)
		sections[target] = section
	}

	borderStyle := BorderStyle(legacy.Borders.Style)
	if borderStyle == "" {
		borderStyle = BorderStyleSolid
	}

	return Config{
		SchemaVersion: SchemaVersionCanonical,
		Colors:        legacy.Colors,
		Typography:    legacy.Typography,
		Logo:          legacy.Logo,
		Layout:        legacy.Layout,
		Sections:      sections,
		Spacing: Spacing{
			SectionGap: legacy.Spacing.SectionGap,
			ElementGap: legacy.Spacing.ItemGap,
			Padding:    legacy.Spacing.Padding,
		},
		Advanced: Advanced{
			ShowBorders:     legacy.Borders.Enabled,
			BorderStyle:     borderStyle,
			RoundedCorners:  legacy.Borders.Rounded,
			ShowPageNumbers: legacy.PageNumbers,
			ShowWatermark:   legacy.Watermark.Enabled,
			WatermarkText:   legacy.Watermark.Text,
		},
	}, nil
}

// Encode serializes a config at the canonical schema version.
func Encode(cfg Config) ([]byte, error) {
	cfg.SchemaVersion = SchemaVersionCanonical
	return json.Marshal(cfg)
}
