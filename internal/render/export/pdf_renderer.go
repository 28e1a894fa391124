package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/smallbiznis/paperpress/internal/design"
	"github.com/smallbiznis/paperpress/internal/render"
)

// mmPerPx converts the layout tree's 96dpi pixel values into millimetres.
const mmPerPx = 25.4 / 96

// PDFRenderer produces the print document from the same layout tree the live
// preview consumes, which is what keeps export output aligned with what the
// user edited.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// RenderPDF draws the tree into a single-flow paginated PDF.
func (r *PDFRenderer) RenderPDF(tree *render.LayoutTree) ([]byte, error) {
	if tree == nil {
		return nil, fmt.Errorf("render pdf: nil layout tree")
	}

	orientation := "P"
	if tree.Page.Orientation == design.OrientationLandscape {
		orientation = "L"
	}
	size := "A4"
	if tree.Page.PaperSize == design.PaperSizeLetter {
		size = "Letter"
	}

	pdf := gofpdf.New(orientation, "mm", size, "")
	pdf.SetMargins(
		float64(tree.Page.Margins.Left)*mmPerPx,
		float64(tree.Page.Margins.Top)*mmPerPx,
		float64(tree.Page.Margins.Right)*mmPerPx,
	)
	pdf.SetAutoPageBreak(true, float64(tree.Page.Margins.Bottom)*mmPerPx)
	pdf.AliasNbPages("")

	style := treeStyle(tree)
	installOverlays(pdf, tree, style)
	pdf.AddPage()

	for _, block := range tree.Blocks {
		drawBlock(pdf, block)
		pdf.Ln(float64(block.Style.SectionGapPx) * mmPerPx)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func treeStyle(tree *render.LayoutTree) render.BlockStyle {
	if len(tree.Blocks) > 0 {
		return tree.Blocks[0].Style
	}
	return render.BlockStyle{TextColor: "#111827", BodyFont: "Helvetica", BodySizePt: 12, SmallSizePt: 9}
}

// installOverlays hooks watermark and page-number decorations so they repeat
// on every page independent of the section flow.
func installOverlays(pdf *gofpdf.Fpdf, tree *render.LayoutTree, style render.BlockStyle) {
	var watermark *render.Overlay
	var pageNumbers bool
	for i := range tree.Overlays {
		switch tree.Overlays[i].Kind {
		case render.OverlayWatermark:
			watermark = &tree.Overlays[i]
		case render.OverlayPageNumbers:
			pageNumbers = true
		}
	}

	if watermark != nil {
		text := watermark.Text
		pdf.SetHeaderFunc(func() {
			width, height := pdf.GetPageSize()
			pdf.SetFont(coreFont(style.HeadingFont), "B", 56)
			r, g, b := rgb(watermark.Color)
			pdf.SetTextColor(r, g, b)
			pdf.TransformBegin()
			pdf.TransformRotate(30, width/2, height/2)
			pdf.Text(width/2-pdf.GetStringWidth(text)/2, height/2, text)
			pdf.TransformEnd()
		})
	}
	if pageNumbers {
		pdf.SetFooterFunc(func() {
			pdf.SetY(-float64(tree.Page.Margins.Bottom) * mmPerPx)
			pdf.SetFont(coreFont(style.BodyFont), "", float64(style.SmallSizePt))
			r, g, b := rgb(style.SecondaryTextColor)
			pdf.SetTextColor(r, g, b)
			pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
		})
	}
}

func drawBlock(pdf *gofpdf.Fpdf, block render.Block) {
	switch {
	case block.Header != nil:
		drawHeader(pdf, block.Style, block.Header)
	case block.InvoiceInfo != nil:
		drawInvoiceInfo(pdf, block.Style, block.InvoiceInfo)
	case block.Items != nil:
		drawItems(pdf, block.Style, block.Items)
	case block.Summary != nil:
		drawSummary(pdf, block.Style, block.Summary)
	case block.Notes != nil:
		drawNotes(pdf, block.Style, block.Notes)
	case block.Footer != nil:
		drawFooter(pdf, block.Style, block.Footer)
	}
}

func drawHeader(pdf *gofpdf.Fpdf, style render.BlockStyle, content *render.HeaderContent) {
	pdf.SetFont(coreFont(style.HeadingFont), "B", float64(style.HeadingSizePt))
	setText(pdf, style.PrimaryColor)
	pdf.CellFormat(0, float64(style.HeadingSizePt)*0.6, content.CompanyName, "", 1, "L", false, 0, "")

	pdf.SetFont(coreFont(style.BodyFont), "", float64(style.SmallSizePt))
	setText(pdf, style.SecondaryTextColor)
	for _, line := range []string{content.CompanyAddress, content.CompanyEmail, content.CompanyPhone} {
		if line != "" {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}
}

func drawInvoiceInfo(pdf *gofpdf.Fpdf, style render.BlockStyle, content *render.InvoiceInfoContent) {
	pdf.SetFont(coreFont(style.HeadingFont), "B", float64(style.SubheadingSizePt))
	setText(pdf, style.TextColor)
	pdf.CellFormat(0, 8, "Invoice "+content.InvoiceNumber, "", 1, "L", false, 0, "")

	pdf.SetFont(coreFont(style.BodyFont), "", float64(style.SmallSizePt))
	setText(pdf, style.SecondaryTextColor)
	pdf.CellFormat(0, 5, "Issued "+content.IssueDate+"  Due "+content.DueDate, "", 1, "L", false, 0, "")

	pdf.Ln(float64(style.ElementGapPx) * mmPerPx)
	pdf.CellFormat(0, 5, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont(coreFont(style.BodyFont), "", float64(style.BodySizePt))
	setText(pdf, style.TextColor)
	for _, line := range []string{content.BillToName, content.BillToAddress, content.BillToEmail} {
		if line != "" {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}
}

func drawItems(pdf *gofpdf.Fpdf, style render.BlockStyle, content *render.ItemsContent) {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right
	widths := []float64{usable * 0.46, usable * 0.14, usable * 0.2, usable * 0.2}
	aligns := []string{"L", "R", "R", "R"}

	pdf.SetFont(coreFont(style.BodyFont), "B", float64(style.SmallSizePt))
	setText(pdf, style.SecondaryTextColor)
	r, g, b := rgb(style.BorderColor)
	pdf.SetDrawColor(r, g, b)
	for i, column := range content.Columns {
		pdf.CellFormat(widths[i], 7, strings.ToUpper(column), "B", 0, aligns[i], false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(coreFont(style.BodyFont), "", float64(style.BodySizePt))
	setText(pdf, style.TextColor)
	for _, row := range content.Rows {
		pdf.CellFormat(widths[0], 7, row.Description, "B", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, formatQuantity(row.Quantity), "B", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, formatCents(row.UnitPriceCents), "B", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, formatCents(row.AmountCents), "B", 1, "R", false, 0, "")
	}
}

func drawSummary(pdf *gofpdf.Fpdf, style render.BlockStyle, content *render.SummaryContent) {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	boxWidth := (pageWidth - left - right) * 0.45
	indent := pageWidth - right - boxWidth

	row := func(label, value string, bold bool) {
		font := ""
		if bold {
			font = "B"
		}
		pdf.SetFont(coreFont(style.BodyFont), font, float64(style.BodySizePt))
		pdf.SetX(indent)
		pdf.CellFormat(boxWidth*0.55, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(boxWidth*0.45, 6, value, "", 1, "R", false, 0, "")
	}

	setText(pdf, style.TextColor)
	row("Subtotal", formatCents(content.Totals.SubtotalCents), false)
	row(fmt.Sprintf("Tax (%s%%)", formatQuantity(content.TaxRatePercent)), formatCents(content.Totals.TaxCents), false)
	if content.Totals.DiscountCents != 0 {
		row("Discount", "-"+formatCents(content.Totals.DiscountCents), false)
	}
	r, g, b := rgb(style.PrimaryColor)
	pdf.SetDrawColor(r, g, b)
	pdf.Line(indent, pdf.GetY(), pageWidth-right, pdf.GetY())
	setText(pdf, style.PrimaryColor)
	row("Total", formatCents(content.Totals.TotalCents), true)
}

func drawNotes(pdf *gofpdf.Fpdf, style render.BlockStyle, content *render.NotesContent) {
	section := func(label, body string) {
		if body == "" {
			return
		}
		pdf.SetFont(coreFont(style.BodyFont), "B", float64(style.SmallSizePt))
		setText(pdf, style.SecondaryTextColor)
		pdf.CellFormat(0, 5, label, "", 1, "L", false, 0, "")
		pdf.SetFont(coreFont(style.BodyFont), "", float64(style.BodySizePt))
		setText(pdf, style.TextColor)
		pdf.MultiCell(0, 5, body, "", "L", false)
	}
	section("Notes", content.Notes)
	section("Terms", content.Terms)
}

func drawFooter(pdf *gofpdf.Fpdf, style render.BlockStyle, content *render.FooterContent) {
	pdf.SetFont(coreFont(style.BodyFont), "", float64(style.SmallSizePt))
	setText(pdf, style.SecondaryTextColor)
	if content.PaymentTerms != "" {
		pdf.CellFormat(0, 5, content.PaymentTerms, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, content.Message, "", 1, "L", false, 0, "")
}

func setText(pdf *gofpdf.Fpdf, color string) {
	r, g, b := rgb(color)
	pdf.SetTextColor(r, g, b)
}

// coreFont maps a design font family onto the closest built-in PDF font.
func coreFont(family string) string {
	switch strings.ToLower(strings.TrimSpace(family)) {
	case "times new roman", "georgia":
		return "Times"
	case "courier new":
		return "Courier"
	default:
		return "Helvetica"
	}
}

var namedRGB = map[string][3]int{
	"black": {0, 0, 0}, "white": {255, 255, 255}, "gray": {128, 128, 128},
	"grey": {128, 128, 128}, "red": {255, 0, 0}, "green": {0, 128, 0},
	"blue": {0, 0, 255}, "teal": {0, 128, 128}, "navy": {0, 0, 128},
	"orange": {255, 165, 0}, "purple": {128, 0, 128},
}

func rgb(color string) (int, int, int) {
	color = strings.ToLower(strings.TrimSpace(color))
	if values, ok := namedRGB[color]; ok {
		return values[0], values[1], values[2]
	}
	if strings.HasPrefix(color, "#") && len(color) == 7 {
		r, errR := strconv.ParseInt(color[1:3], 16, 32)
		g, errG := strconv.ParseInt(color[3:5], 16, 32)
		b, errB := strconv.ParseInt(color[5:7], 16, 32)
		if errR == nil && errG == nil && errB == nil {
			return int(r), int(g), int(b)
		}
	}
	return 17, 24, 39
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func formatQuantity(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}
