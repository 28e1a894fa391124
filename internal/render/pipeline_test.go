package render

import (
	"encoding/json"
	"testing"

	"github.com/smallbiznis/paperpress/internal/design"
)

func fixtureData() DocumentData {
	return DocumentData{
		Company:       Party{Name: "Acme Ltd", Address: "1 Main St", Email: "billing@acme.test"},
		BillTo:        Party{Name: "Globex", Address: "9 Side Ave", Email: "ap@globex.test"},
		InvoiceNumber: "INV-2026-0042",
		IssueDate:     "2026-08-01",
		DueDate:       "2026-08-31",
		Items: []LineItem{
			{Description: "Consulting", Quantity: 40, UnitPriceCents: 10000},
			{Description: "Support", Quantity: 20, UnitPriceCents: 8000},
		},
		TaxRatePercent: 10,
		DiscountCents:  500,
		PaymentTerms:   "Net 30",
		Notes:          "Paid monthly",
		Terms:          "Late fees apply",
	}
}

func TestComputeTotalsInCents(t *testing.T) {
	totals := ComputeTotals(fixtureData())
	if totals.SubtotalCents != 560000 {
		t.Fatalf("expected subtotal 560000, got %d", totals.SubtotalCents)
	}
	if totals.TaxCents != 56000 {
		t.Fatalf("expected tax 56000, got %d", totals.TaxCents)
	}
	if totals.TotalCents != 615500 {
		t.Fatalf("expected total 615500, got %d", totals.TotalCents)
	}
}

func TestBuildLayoutIsDeterministic(t *testing.T) {
	cfg := design.Default()
	data := fixtureData()

	first, err := BuildLayout(cfg, data)
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}
	second, err := BuildLayout(cfg, data)
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("identical inputs produced different trees")
	}
}

func TestBuildLayoutOrdersSectionsAscending(t *testing.T) {
	cfg := design.Default()
	for key, section := range cfg.Sections {
		switch key {
		case design.SectionHeader:
			section.Order = 1
		case design.SectionInvoiceInfo:
			section.Order = 2
		case design.SectionNotes:
			section.Order = 3
		case design.SectionItems:
			section.Order = 4
		case design.SectionSummary:
			section.Order = 5
		case design.SectionFooter:
			section.Order = 6
		}
		cfg.Sections[key] = section
	}

	tree, err := BuildLayout(cfg, fixtureData())
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}

	want := []BlockKind{BlockHeader, BlockInvoiceInfo, BlockNotes, BlockItems, BlockSummary, BlockFooter}
	if len(tree.Blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(tree.Blocks))
	}
	for i, kind := range want {
		if tree.Blocks[i].Kind != kind {
			t.Fatalf("block %d: expected %s, got %s", i, kind, tree.Blocks[i].Kind)
		}
	}
}

func TestBuildLayoutBreaksOrderTiesByKey(t *testing.T) {
	cfg := design.Default()
	for key, section := range cfg.Sections {
		section.Order = 7
		cfg.Sections[key] = section
	}

	tree, err := BuildLayout(cfg, fixtureData())
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}
	// Lexicographic key order: footer, header, invoiceInfo, items, notes, summary.
	want := []BlockKind{BlockFooter, BlockHeader, BlockInvoiceInfo, BlockItems, BlockNotes, BlockSummary}
	for i, kind := range want {
		if tree.Blocks[i].Kind != kind {
			t.Fatalf("block %d: expected %s, got %s", i, kind, tree.Blocks[i].Kind)
		}
	}
}

func TestBuildLayoutOmitsDisabledSections(t *testing.T) {
	cfg := design.Default()
	info := cfg.Sections[design.SectionInvoiceInfo]
	info.Enabled = false
	cfg.Sections[design.SectionInvoiceInfo] = info

	tree, err := BuildLayout(cfg, fixtureData())
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}
	if len(tree.Blocks) != 5 {
		t.Fatalf("expected 5 blocks, got %d", len(tree.Blocks))
	}
	for _, block := range tree.Blocks {
		if block.Kind == BlockInvoiceInfo {
			t.Fatalf("disabled section left a block behind")
		}
	}
}

func TestBuildLayoutRejectsInvalidDesign(t *testing.T) {
	cfg := design.Default()
	cfg.Advanced.ShowWatermark = true
	cfg.Advanced.WatermarkText = ""

	if _, err := BuildLayout(cfg, fixtureData()); err == nil {
		t.Fatalf("expected invalid design to be rejected")
	}
}

func TestBuildLayoutEmitsOverlays(t *testing.T) {
	cfg := design.Default()
	cfg.Advanced.ShowWatermark = true
	cfg.Advanced.WatermarkText = "DRAFT"
	cfg.Advanced.ShowPageNumbers = true

	tree, err := BuildLayout(cfg, fixtureData())
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}
	if len(tree.Overlays) != 2 {
		t.Fatalf("expected 2 overlays, got %d", len(tree.Overlays))
	}
	if tree.Overlays[0].Kind != OverlayWatermark || tree.Overlays[0].Text != "DRAFT" {
		t.Fatalf("unexpected watermark overlay: %+v", tree.Overlays[0])
	}
	if tree.Overlays[1].Kind != OverlayPageNumbers {
		t.Fatalf("unexpected second overlay: %+v", tree.Overlays[1])
	}
}

func TestBuildLayoutResolvesPageGeometry(t *testing.T) {
	cfg := design.Default()
	cfg.Layout.PaperSize = design.PaperSizeLetter
	cfg.Layout.Orientation = design.OrientationLandscape

	tree, err := BuildLayout(cfg, fixtureData())
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}
	if tree.Page.WidthPx != 1056 || tree.Page.HeightPx != 816 {
		t.Fatalf("expected landscape Letter 1056x816, got %dx%d", tree.Page.WidthPx, tree.Page.HeightPx)
	}
}

func TestFingerprintTracksInputs(t *testing.T) {
	cfg := design.Default()
	data := fixtureData()

	first := Fingerprint(cfg, data, "desktop", "100")
	second := Fingerprint(cfg, data, "desktop", "100")
	if first != second {
		t.Fatalf("fingerprint is not stable")
	}

	data.DiscountCents++
	if Fingerprint(cfg, data, "desktop", "100") == first {
		t.Fatalf("fingerprint ignored a data change")
	}
	if Fingerprint(cfg, fixtureData(), "mobile", "100") == first {
		t.Fatalf("fingerprint ignored an option change")
	}
}
