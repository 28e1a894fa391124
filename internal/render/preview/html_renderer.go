package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/smallbiznis/paperpress/internal/design"
	"github.com/smallbiznis/paperpress/internal/render"
)

const previewHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice preview</title>
  <style>
    * { box-sizing: border-box; }
    body { margin: 0; background: #f3f4f6; }
    .viewport {
      width: {{.ViewportWidth}}px;
      margin: 0 auto;
      transform: scale({{printf "%.2f" .Scale}});
      transform-origin: top center;
    }
    .page {
      position: relative;
      width: {{.ViewportWidth}}px;
      min-height: {{.PageHeight}}px;
      background: {{safeColor .Style.BackgroundColor}};
      color: {{safeColor .Style.TextColor}};
      font-family: "{{safeFont .Style.BodyFont}}", "Helvetica Neue", Arial, sans-serif;
      font-size: {{.Style.BodySizePt}}pt;
      padding: {{.Tree.Page.Margins.Top}}px {{.Tree.Page.Margins.Right}}px {{.Tree.Page.Margins.Bottom}}px {{.Tree.Page.Margins.Left}}px;
      overflow: hidden;
    }
    .block { margin-bottom: {{.Style.SectionGapPx}}px; padding: {{.Style.ElementGapPx}}px; }
    {{if .Style.ShowBorder}}
    .block { border: 1px {{borderStyle .Style.BorderStyle}} {{safeColor .Style.BorderColor}}; {{if .Style.RoundedCorners}}border-radius: 8px;{{end}} }
    {{end}}
    h1, h2 { font-family: "{{safeFont .Style.HeadingFont}}", "Helvetica Neue", Arial, sans-serif; margin: 0; }
    h1 { font-size: {{.Style.HeadingSizePt}}pt; color: {{safeColor .Style.PrimaryColor}}; }
    h2 { font-size: {{.Style.SubheadingSizePt}}pt; }
    .muted { color: {{safeColor .Style.SecondaryTextColor}}; font-size: {{.Style.SmallSizePt}}pt; }
    .logo-left { text-align: left; } .logo-center { text-align: center; } .logo-right { text-align: right; }
    table { width: 100%; border-collapse: collapse; }
    th, td { padding: {{.Style.ElementGapPx}}px; border-bottom: 1px solid {{safeColor .Style.BorderColor}}; text-align: left; }
    th { text-transform: uppercase; font-size: {{.Style.SmallSizePt}}pt; letter-spacing: 0.04em; color: {{safeColor .Style.SecondaryTextColor}}; }
    td.amount, th.amount { text-align: right; }
    .summary { margin-left: auto; width: 45%; }
    .summary .row { display: flex; justify-content: space-between; padding: 2px 0; }
    .summary .total { border-top: 2px solid {{safeColor .Style.PrimaryColor}}; font-weight: 600; }
    .watermark {
      position: absolute; inset: 0; display: flex; align-items: center; justify-content: center;
      font-size: 64pt; opacity: 0.12; pointer-events: none;
      transform: rotate(-30deg); text-transform: uppercase;
    }
    .page-number { position: absolute; bottom: 8px; right: {{.Tree.Page.Margins.Right}}px; }
  </style>
</head>
<body>
  <div class="viewport">
    <div class="page">
      {{range .Tree.Blocks}}
      {{if .Header}}
      <div class="block">
        {{with .Header.Logo}}{{if .ImageURL}}
        <div class="logo-{{.Position}}"><img src="{{.ImageURL}}" alt="logo" style="height: {{.HeightPx}}px" /></div>
        {{end}}{{end}}
        <h1>{{.Header.CompanyName}}</h1>
        <div class="muted">{{.Header.CompanyAddress}}</div>
        <div class="muted">{{.Header.CompanyEmail}}{{if .Header.CompanyPhone}} &middot; {{.Header.CompanyPhone}}{{end}}</div>
      </div>
      {{end}}
      {{if .InvoiceInfo}}
      <div class="block">
        <h2>Invoice {{.InvoiceInfo.InvoiceNumber}}</h2>
        <div class="muted">Issued {{.InvoiceInfo.IssueDate}} &middot; Due {{.InvoiceInfo.DueDate}}</div>
        <div style="margin-top: 6px">
          <div class="muted">Bill To</div>
          <div>{{.InvoiceInfo.BillToName}}</div>
          <div class="muted">{{.InvoiceInfo.BillToAddress}}</div>
          <div class="muted">{{.InvoiceInfo.BillToEmail}}</div>
        </div>
      </div>
      {{end}}
      {{if .Items}}
      <div class="block">
        <table>
          <thead>
            <tr>{{range .Items.Columns}}<th{{if or (eq . "Unit Price") (eq . "Amount")}} class="amount"{{end}}>{{.}}</th>{{end}}</tr>
          </thead>
          <tbody>
            {{range .Items.Rows}}
            <tr>
              <td>{{.Description}}</td>
              <td>{{formatQuantity .Quantity}}</td>
              <td class="amount">{{formatCents .UnitPriceCents}}</td>
              <td class="amount">{{formatCents .AmountCents}}</td>
            </tr>
            {{end}}
          </tbody>
        </table>
      </div>
      {{end}}
      {{if .Summary}}
      <div class="block summary">
        <div class="row"><span>Subtotal</span><span>{{formatCents .Summary.Totals.SubtotalCents}}</span></div>
        <div class="row"><span>Tax ({{formatQuantity .Summary.TaxRatePercent}}%)</span><span>{{formatCents .Summary.Totals.TaxCents}}</span></div>
        {{if .Summary.Totals.DiscountCents}}<div class="row"><span>Discount</span><span>-{{formatCents .Summary.Totals.DiscountCents}}</span></div>{{end}}
        <div class="row total"><span>Total</span><span>{{formatCents .Summary.Totals.TotalCents}}</span></div>
      </div>
      {{end}}
      {{if .Notes}}
      <div class="block">
        {{if .Notes.Notes}}<div><span class="muted">Notes</span><div>{{.Notes.Notes}}</div></div>{{end}}
        {{if .Notes.Terms}}<div><span class="muted">Terms</span><div>{{.Notes.Terms}}</div></div>{{end}}
      </div>
      {{end}}
      {{if .Footer}}
      <div class="block muted">
        {{if .Footer.PaymentTerms}}<div>{{.Footer.PaymentTerms}}</div>{{end}}
        <div>{{.Footer.Message}}</div>
      </div>
      {{end}}
      {{end}}
      {{range .Tree.Overlays}}
      {{if eq .Kind "watermark"}}<div class="watermark" style="color: {{safeColor .Color}}">{{.Text}}</div>{{end}}
      {{if eq .Kind "pageNumbers"}}<div class="page-number muted">Page 1</div>{{end}}
      {{end}}
    </div>
  </div>
</body>
</html>
`

var (
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	namedColorFilter = regexp.MustCompile(`^[a-zA-Z]+$`)
	fontFamilyFilter = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)
)

// HTMLRenderer draws a layout tree as a scaled HTML document mirror.
type HTMLRenderer struct {
	tpl *template.Template
}

// NewHTMLRenderer parses the embedded preview template once at startup.
func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{
		"formatCents":    formatCents,
		"formatQuantity": formatQuantity,
		"safeColor":      safeColor,
		"safeFont":       safeFont,
		"borderStyle":    borderStyleCSS,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("preview").Funcs(funcs).Parse(previewHTMLTemplate)),
	}
}

type templateData struct {
	Tree          *render.LayoutTree
	Style         render.BlockStyle
	ViewportWidth int
	PageHeight    int
	Scale         float64
}

// RenderHTML draws the tree. The zoom option becomes a CSS scale on the
// viewport wrapper only; block content and totals come straight from the tree.
func (r *HTMLRenderer) RenderHTML(tree *render.LayoutTree, opts Options) (string, error) {
	if tree == nil {
		return "", fmt.Errorf("render preview: nil layout tree")
	}
	opts = opts.withDefaults()

	width := tree.Page.WidthPx
	height := tree.Page.HeightPx
	if opts.ViewMode == ViewModeMobile {
		// Mobile re-flows into a narrow viewport; block order is untouched.
		height = height * mobileViewportWidthPx / width
		width = mobileViewportWidthPx
	}

	data := templateData{
		Tree:          tree,
		Style:         pageStyle(tree),
		ViewportWidth: width,
		PageHeight:    height,
		Scale:         float64(opts.ZoomPercent) / 100,
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return buf.String(), nil
}

// pageStyle picks the shared style off the first block; every block carries
// the same resolved design so any of them works as the page style source.
func pageStyle(tree *render.LayoutTree) render.BlockStyle {
	if len(tree.Blocks) > 0 {
		return tree.Blocks[0].Style
	}
	return render.BlockStyle{
		TextColor:       "#111827",
		BackgroundColor: "#ffffff",
		BorderColor:     "#e5e7eb",
		BodyFont:        "Inter",
		HeadingFont:     "Inter",
		BodySizePt:      12,
		HeadingSizePt:   24,
	}
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

func safeColor(value string) template.CSS {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) || namedColorFilter.MatchString(trimmed) {
		return template.CSS(trimmed)
	}
	return template.CSS("#111827")
}

func safeFont(value string) template.CSS {
	trimmed := strings.TrimSpace(value)
	if trimmed != "" && fontFamilyFilter.MatchString(trimmed) {
		return template.CSS(trimmed)
	}
	return template.CSS("Inter")
}

func borderStyleCSS(style design.BorderStyle) template.CSS {
	switch style {
	case design.BorderStyleDashed:
		return "dashed"
	case design.BorderStyleNone:
		return "hidden"
	default:
		return "solid"
	}
}
