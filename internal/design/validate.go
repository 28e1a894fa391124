package design

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError scopes a single failed check to the offending field path so
// callers can highlight the matching editor control.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors aggregates field-scoped failures into one error value.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "design is valid"
	}
	parts := make([]string, 0, len(e))
	for _, item := range e {
		parts = append(parts, item.Error())
	}
	return strings.Join(parts, "; ")
}

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

	namedColors = map[string]struct{}{
		"black": {}, "white": {}, "gray": {}, "grey": {}, "silver": {},
		"red": {}, "maroon": {}, "orange": {}, "yellow": {}, "olive": {},
		"green": {}, "lime": {}, "teal": {}, "cyan": {}, "aqua": {},
		"blue": {}, "navy": {}, "purple": {}, "fuchsia": {}, "magenta": {},
	}
)

type sizeRange struct {
	min int
	max int
}

var fontSizeRanges = map[string]sizeRange{
	"heading":    {18, 36},
	"subheading": {14, 24},
	"body":       {10, 18},
	"small":      {8, 14},
}

var spacingRanges = map[string]sizeRange{
	"sectionGap": {8, 64},
	"elementGap": {4, 32},
	"padding":    {16, 64},
}

// Validate runs the structural and range checks over a design config. It
// returns nil when the config is complete. Cross-field aesthetic checks
// (contrast ratios and the like) are out of scope on purpose.
func Validate(cfg Config) ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, validateColors(cfg.Colors)...)
	errs = append(errs, validateTypography(cfg.Typography)...)
	errs = append(errs, validateLogo(cfg.Logo)...)
	errs = append(errs, validateLayout(cfg.Layout)...)
	errs = append(errs, validateSections(cfg.Sections)...)
	errs = append(errs, validateSpacing(cfg.Spacing)...)
	errs = append(errs, validateAdvanced(cfg.Advanced)...)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateColors(colors ColorScheme) ValidationErrors {
	slots := []struct {
		field string
		value string
	}{
		{"colors.primary", colors.Primary},
		{"colors.secondary", colors.Secondary},
		{"colors.text", colors.Text},
		{"colors.textSecondary", colors.TextSecondary},
		{"colors.accent", colors.Accent},
		{"colors.background", colors.Background},
		{"colors.border", colors.Border},
	}

	var errs ValidationErrors
	for _, slot := range slots {
		value := strings.TrimSpace(slot.value)
		if value == "" {
			errs = append(errs, ValidationError{Field: slot.field, Code: "required", Message: "color slot is required"})
			continue
		}
		if !validColor(value) {
			errs = append(errs, ValidationError{Field: slot.field, Code: "invalid_color", Message: fmt.Sprintf("%q is not a hex or named color", value)})
		}
	}
	return errs
}

func validColor(value string) bool {
	if hexColorPattern.MatchString(value) {
		return true
	}
	_, ok := namedColors[strings.ToLower(value)]
	return ok
}

func validateTypography(typo Typography) ValidationErrors {
	var errs ValidationErrors

	if !fontAllowed(typo.HeadingFont) {
		errs = append(errs, ValidationError{Field: "typography.headingFont", Code: "invalid_font", Message: fmt.Sprintf("%q is not an allowed font family", typo.HeadingFont)})
	}
	if !fontAllowed(typo.BodyFont) {
		errs = append(errs, ValidationError{Field: "typography.bodyFont", Code: "invalid_font", Message: fmt.Sprintf("%q is not an allowed font family", typo.BodyFont)})
	}

	sizes := map[string]int{
		"heading":    typo.FontSizes.Heading,
		"subheading": typo.FontSizes.Subheading,
		"body":       typo.FontSizes.Body,
		"small":      typo.FontSizes.Small,
	}
	for _, role := range []string{"heading", "subheading", "body", "small"} {
		bounds := fontSizeRanges[role]
		if size := sizes[role]; size < bounds.min || size > bounds.max {
			errs = append(errs, ValidationError{
				Field:   "typography.fontSizes." + role,
				Code:    "out_of_range",
				Message: fmt.Sprintf("%d is outside %d-%d", size, bounds.min, bounds.max),
			})
		}
	}

	// Size roles must not invert even when each sits inside its own range.
	if typo.FontSizes.Heading < typo.FontSizes.Subheading ||
		typo.FontSizes.Subheading < typo.FontSizes.Body ||
		typo.FontSizes.Body < typo.FontSizes.Small {
		errs = append(errs, ValidationError{
			Field:   "typography.fontSizes",
			Code:    "size_order",
			Message: "sizes must satisfy heading >= subheading >= body >= small",
		})
	}
	return errs
}

func fontAllowed(family string) bool {
	family = strings.TrimSpace(family)
	for _, allowed := range FontAllowList {
		if strings.EqualFold(family, allowed) {
			return true
		}
	}
	return false
}

func validateLogo(logo LogoConfig) ValidationErrors {
	var errs ValidationErrors
	switch logo.Position {
	case LogoPositionLeft, LogoPositionCenter, LogoPositionRight:
	default:
		errs = append(errs, ValidationError{Field: "logo.position", Code: "invalid_enum", Message: fmt.Sprintf("%q is not a logo position", logo.Position)})
	}
	switch logo.Size {
	case LogoSizeSmall, LogoSizeMedium, LogoSizeLarge:
	default:
		errs = append(errs, ValidationError{Field: "logo.size", Code: "invalid_enum", Message: fmt.Sprintf("%q is not a logo size", logo.Size)})
	}
	return errs
}

func validateLayout(layout PageLayout) ValidationErrors {
	var errs ValidationErrors
	switch layout.PaperSize {
	case PaperSizeA4, PaperSizeLetter:
	default:
		errs = append(errs, ValidationError{Field: "layout.paperSize", Code: "invalid_enum", Message: fmt.Sprintf("%q is not a paper size", layout.PaperSize)})
	}
	switch layout.Orientation {
	case OrientationPortrait, OrientationLandscape:
	default:
		errs = append(errs, ValidationError{Field: "layout.orientation", Code: "invalid_enum", Message: fmt.Sprintf("%q is not an orientation", layout.Orientation)})
	}

	margins := map[string]int{
		"top":    layout.Margins.Top,
		"right":  layout.Margins.Right,
		"bottom": layout.Margins.Bottom,
		"left":   layout.Margins.Left,
	}
	for _, side := range []string{"top", "right", "bottom", "left"} {
		if margins[side] < 0 {
			errs = append(errs, ValidationError{
				Field:   "layout.margins." + side,
				Code:    "out_of_range",
				Message: "margin must be non-negative",
			})
		}
	}
	return errs
}

func validateSections(sections map[SectionKey]SectionConfig) ValidationErrors {
	var errs ValidationErrors
	if sections == nil {
		errs = append(errs, ValidationError{Field: "sections", Code: "required", Message: "sections map is required"})
		return errs
	}
	for _, key := range SectionKeys {
		if _, ok := sections[key]; !ok {
			errs = append(errs, ValidationError{
				Field:   "sections." + string(key),
				Code:    "required",
				Message: "section is required",
			})
		}
	}
	for key := range sections {
		if !canonicalSectionKey(key) {
			errs = append(errs, ValidationError{
				Field:   "sections." + string(key),
				Code:    "unknown_section",
				Message: fmt.Sprintf("%q is not a known section", key),
			})
		}
	}
	return errs
}

func canonicalSectionKey(key SectionKey) bool {
	for _, known := range SectionKeys {
		if key == known {
			return true
		}
	}
	return false
}

func validateSpacing(spacing Spacing) ValidationErrors {
	var errs ValidationErrors
	values := map[string]int{
		"sectionGap": spacing.SectionGap,
		"elementGap": spacing.ElementGap,
		"padding":    spacing.Padding,
	}
	for _, field := range []string{"sectionGap", "elementGap", "padding"} {
		bounds := spacingRanges[field]
		if value := values[field]; value < bounds.min || value > bounds.max {
			errs = append(errs, ValidationError{
				Field:   "spacing." + field,
				Code:    "out_of_range",
				Message: fmt.Sprintf("%d is outside %d-%d", value, bounds.min, bounds.max),
			})
		}
	}
	return errs
}

func validateAdvanced(advanced Advanced) ValidationErrors {
	var errs ValidationErrors
	switch advanced.BorderStyle {
	case BorderStyleSolid, BorderStyleDashed, BorderStyleNone:
	default:
		errs = append(errs, ValidationError{Field: "advanced.borderStyle", Code: "invalid_enum", Message: fmt.Sprintf("%q is not a border style", advanced.BorderStyle)})
	}
	if advanced.ShowWatermark && strings.TrimSpace(advanced.WatermarkText) == "" {
		errs = append(errs, ValidationError{
			Field:   "advanced.watermarkText",
			Code:    "required",
			Message: "watermark text is required while the watermark is enabled",
		})
	}
	return errs
}
