package export

import (
	"bytes"
	"testing"

	"github.com/smallbiznis/paperpress/internal/design"
	"github.com/smallbiznis/paperpress/internal/render"
)

func buildTree(t *testing.T, mutate func(*design.Config)) *render.LayoutTree {
	t.Helper()
	cfg := design.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	tree, err := render.BuildLayout(cfg, render.DocumentData{
		Company:       render.Party{Name: "Acme Ltd", Address: "1 Main St"},
		BillTo:        render.Party{Name: "Globex"},
		InvoiceNumber: "INV-7",
		IssueDate:     "2026-08-01",
		DueDate:       "2026-08-31",
		Items: []render.LineItem{
			{Description: "Consulting", Quantity: 40, UnitPriceCents: 10000},
		},
		TaxRatePercent: 10,
	})
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}
	return tree
}

func TestRenderPDFProducesDocument(t *testing.T) {
	pdf, err := NewPDFRenderer().RenderPDF(buildTree(t, nil))
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected a PDF header, got %q", pdf[:8])
	}
}

func TestRenderPDFConsumesSameTreeAsPreview(t *testing.T) {
	tree := buildTree(t, func(cfg *design.Config) {
		cfg.Advanced.ShowWatermark = true
		cfg.Advanced.WatermarkText = "DRAFT"
		cfg.Advanced.ShowPageNumbers = true
		cfg.Layout.PaperSize = design.PaperSizeLetter
		cfg.Layout.Orientation = design.OrientationLandscape
	})

	pdf, err := NewPDFRenderer().RenderPDF(tree)
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected pdf output")
	}
}

func TestRenderPDFRejectsNilTree(t *testing.T) {
	if _, err := NewPDFRenderer().RenderPDF(nil); err == nil {
		t.Fatalf("expected error for nil tree")
	}
}
