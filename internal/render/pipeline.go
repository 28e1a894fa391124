package render

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/smallbiznis/paperpress/internal/design"
)

// Page pixel dimensions at the 96dpi reference scale.
const (
	a4WidthPx      = 794
	a4HeightPx     = 1123
	letterWidthPx  = 816
	letterHeightPx = 1056
)

var logoHeightsPx = map[design.LogoSize]int{
	design.LogoSizeSmall:  32,
	design.LogoSizeMedium: 48,
	design.LogoSizeLarge:  72,
}

// BuildLayout turns a design and document data into a layout tree. It is pure
// and deterministic: identical inputs produce structurally identical trees.
// The service paths validate designs before calling in; an invalid design
// here still returns the validation errors rather than a partial tree.
func BuildLayout(cfg design.Config, data DocumentData) (*LayoutTree, error) {
	if errs := design.Validate(cfg); len(errs) != 0 {
		return nil, fmt.Errorf("build layout: %w", errs)
	}

	totals := ComputeTotals(data)
	style := resolveStyle(cfg)

	tree := &LayoutTree{
		Page:   resolvePage(cfg.Layout),
		Totals: totals,
	}

	for _, key := range orderedSectionKeys(cfg.Sections) {
		section := cfg.Sections[key]
		if !section.Enabled {
			// Gapless flow: a disabled section leaves nothing behind.
			continue
		}
		block := Block{
			Kind:   BlockKind(key),
			Order:  section.Order,
			Fields: append([]string(nil), section.Fields...),
			Style:  style,
		}
		fillContent(&block, key, cfg, data, totals)
		tree.Blocks = append(tree.Blocks, block)
	}

	if cfg.Advanced.ShowWatermark {
		tree.Overlays = append(tree.Overlays, Overlay{
			Kind:  OverlayWatermark,
			Text:  cfg.Advanced.WatermarkText,
			Color: cfg.Colors.Border,
		})
	}
	if cfg.Advanced.ShowPageNumbers {
		tree.Overlays = append(tree.Overlays, Overlay{
			Kind:  OverlayPageNumbers,
			Color: cfg.Colors.TextSecondary,
		})
	}

	return tree, nil
}

// orderedSectionKeys sorts sections ascending by order with the key name as a
// stable tiebreak, so map iteration order never leaks into the tree.
func orderedSectionKeys(sections map[design.SectionKey]design.SectionConfig) []design.SectionKey {
	keys := make([]design.SectionKey, 0, len(sections))
	for key := range sections {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := sections[keys[i]], sections[keys[j]]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return keys[i] < keys[j]
	})
	return keys
}

func resolvePage(layout design.PageLayout) Page {
	width, height := a4WidthPx, a4HeightPx
	if layout.PaperSize == design.PaperSizeLetter {
		width, height = letterWidthPx, letterHeightPx
	}
	if layout.Orientation == design.OrientationLandscape {
		width, height = height, width
	}
	return Page{
		PaperSize:   layout.PaperSize,
		Orientation: layout.Orientation,
		Margins:     layout.Margins,
		WidthPx:     width,
		HeightPx:    height,
	}
}

func resolveStyle(cfg design.Config) BlockStyle {
	return BlockStyle{
		TextColor:          cfg.Colors.Text,
		SecondaryTextColor: cfg.Colors.TextSecondary,
		PrimaryColor:       cfg.Colors.Primary,
		AccentColor:        cfg.Colors.Accent,
		BackgroundColor:    cfg.Colors.Background,
		BorderColor:        cfg.Colors.Border,
		HeadingFont:        cfg.Typography.HeadingFont,
		BodyFont:           cfg.Typography.BodyFont,
		HeadingSizePt:      cfg.Typography.FontSizes.Heading,
		SubheadingSizePt:   cfg.Typography.FontSizes.Subheading,
		BodySizePt:         cfg.Typography.FontSizes.Body,
		SmallSizePt:        cfg.Typography.FontSizes.Small,
		SectionGapPx:       cfg.Spacing.SectionGap,
		ElementGapPx:       cfg.Spacing.ElementGap,
		PaddingPx:          cfg.Spacing.Padding,
		ShowBorder:         cfg.Advanced.ShowBorders,
		BorderStyle:        cfg.Advanced.BorderStyle,
		RoundedCorners:     cfg.Advanced.RoundedCorners,
	}
}

func fillContent(block *Block, key design.SectionKey, cfg design.Config, data DocumentData, totals Totals) {
	switch key {
	case design.SectionHeader:
		content := &HeaderContent{
			CompanyName:    data.Company.Name,
			CompanyAddress: data.Company.Address,
			CompanyEmail:   data.Company.Email,
			CompanyPhone:   data.Company.Phone,
		}
		if cfg.Logo.Enabled {
			content.Logo = &LogoPlacement{
				ImageURL: cfg.Logo.ImageURL,
				Position: cfg.Logo.Position,
				HeightPx: logoHeightsPx[cfg.Logo.Size],
			}
		}
		block.Header = content
	case design.SectionInvoiceInfo:
		block.InvoiceInfo = &InvoiceInfoContent{
			InvoiceNumber: data.InvoiceNumber,
			IssueDate:     data.IssueDate,
			DueDate:       data.DueDate,
			BillToName:    data.BillTo.Name,
			BillToAddress: data.BillTo.Address,
			BillToEmail:   data.BillTo.Email,
		}
	case design.SectionItems:
		rows := make([]ItemRow, 0, len(data.Items))
		for _, item := range data.Items {
			rows = append(rows, ItemRow{
				Description:    item.Description,
				Quantity:       item.Quantity,
				UnitPriceCents: item.UnitPriceCents,
				AmountCents:    item.AmountCents(),
			})
		}
		block.Items = &ItemsContent{
			Columns: []string{"Description", "Quantity", "Unit Price", "Amount"},
			Rows:    rows,
		}
	case design.SectionSummary:
		block.Summary = &SummaryContent{
			Totals:         totals,
			TaxRatePercent: data.TaxRatePercent,
		}
	case design.SectionNotes:
		block.Notes = &NotesContent{
			Notes: data.Notes,
			Terms: data.Terms,
		}
	case design.SectionFooter:
		block.Footer = &FooterContent{
			PaymentTerms: data.PaymentTerms,
			Message:      "Thank you for your business",
		}
	}
}

// Fingerprint hashes the full render input so previews can be memoized. Two
// equal fingerprints mean byte-identical render output; correctness never
// depends on a cache hit.
func Fingerprint(cfg design.Config, data DocumentData, parts ...string) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(cfg)
	_ = enc.Encode(data)
	for _, part := range parts {
		h.Write([]byte{0})
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}
