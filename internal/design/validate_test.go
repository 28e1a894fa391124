package design

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if errs := Validate(Default()); len(errs) != 0 {
		t.Fatalf("expected default design to validate, got %v", errs)
	}
}

func TestValidateRejectsEmptyWatermarkText(t *testing.T) {
	cfg := Default()
	cfg.Advanced.ShowWatermark = true
	cfg.Advanced.WatermarkText = "   "

	errs := Validate(cfg)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "advanced.watermarkText" {
		t.Fatalf("expected field advanced.watermarkText, got %q", errs[0].Field)
	}
	if errs[0].Code != "required" {
		t.Fatalf("expected code required, got %q", errs[0].Code)
	}
}

func TestValidateScopesRangeErrorsToField(t *testing.T) {
	cfg := Default()
	cfg.Typography.FontSizes.Body = 40
	cfg.Spacing.SectionGap = 4

	errs := Validate(cfg)
	fields := map[string]bool{}
	for _, err := range errs {
		fields[err.Field] = true
	}
	if !fields["typography.fontSizes.body"] {
		t.Fatalf("expected error on typography.fontSizes.body, got %v", errs)
	}
	if !fields["spacing.sectionGap"] {
		t.Fatalf("expected error on spacing.sectionGap, got %v", errs)
	}
}

func TestValidateRejectsInvertedFontSizes(t *testing.T) {
	cfg := Default()
	cfg.Typography.FontSizes.Heading = 18
	cfg.Typography.FontSizes.Subheading = 24

	errs := Validate(cfg)
	found := false
	for _, err := range errs {
		if err.Field == "typography.fontSizes" && err.Code == "size_order" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected size_order error, got %v", errs)
	}
}

func TestValidateRejectsMissingSection(t *testing.T) {
	cfg := Default()
	delete(cfg.Sections, SectionSummary)

	errs := Validate(cfg)
	found := false
	for _, err := range errs {
		if err.Field == "sections.summary" && err.Code == "required" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected missing summary section error, got %v", errs)
	}
}

func TestValidateAcceptsNamedColors(t *testing.T) {
	cfg := Default()
	cfg.Colors.Accent = "teal"
	if errs := Validate(cfg); len(errs) != 0 {
		t.Fatalf("expected named color to pass, got %v", errs)
	}

	cfg.Colors.Accent = "#12z"
	errs := Validate(cfg)
	if len(errs) != 1 || errs[0].Field != "colors.accent" {
		t.Fatalf("expected single colors.accent error, got %v", errs)
	}
}

func TestValidateRejectsUnknownFont(t *testing.T) {
	cfg := Default()
	cfg.Typography.BodyFont = "Comic Sans MS"
	errs := Validate(cfg)
	if len(errs) != 1 || errs[0].Field != "typography.bodyFont" {
		t.Fatalf("expected single typography.bodyFont error, got %v", errs)
	}
}

func TestCloneSharesNoState(t *testing.T) {
	original := Default()
	copied := original.Clone()

	copied.Colors.Primary = "#000000"
	items := copied.Sections[SectionItems]
	items.Fields[0] = "mutated"
	items.Order = 99
	copied.Sections[SectionItems] = items

	if original.Colors.Primary == "#000000" {
		t.Fatalf("clone shares color state with original")
	}
	if original.Sections[SectionItems].Fields[0] == "mutated" {
		t.Fatalf("clone shares section field slice with original")
	}
	if original.Sections[SectionItems].Order == 99 {
		t.Fatalf("clone shares section map with original")
	}
}
