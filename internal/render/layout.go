package render

import "github.com/smallbiznis/paperpress/internal/design"

// BlockKind tags a layout block with the section it was emitted for.
type BlockKind string

const (
	BlockHeader      BlockKind = "header"
	BlockInvoiceInfo BlockKind = "invoiceInfo"
	BlockItems       BlockKind = "items"
	BlockSummary     BlockKind = "summary"
	BlockFooter      BlockKind = "footer"
	BlockNotes       BlockKind = "notes"
)

// OverlayKind tags page decorations that float outside the section flow.
type OverlayKind string

const (
	OverlayWatermark   OverlayKind = "watermark"
	OverlayPageNumbers OverlayKind = "pageNumbers"
)

// Page is the resolved physical geometry at the layout's reference scale.
// Pixel dimensions are at 96dpi; renderers scale from here, never re-layout.
type Page struct {
	PaperSize   design.PaperSize   `json:"paper_size"`
	Orientation design.Orientation `json:"orientation"`
	Margins     design.Margins     `json:"margins"`
	WidthPx     int                `json:"width_px"`
	HeightPx    int                `json:"height_px"`
}

// BlockStyle carries the colors, fonts and gaps a block resolved from the
// design so consumers never reach back into the config.
type BlockStyle struct {
	TextColor          string             `json:"text_color"`
	SecondaryTextColor string             `json:"secondary_text_color"`
	PrimaryColor       string             `json:"primary_color"`
	AccentColor        string             `json:"accent_color"`
	BackgroundColor    string             `json:"background_color"`
	BorderColor        string             `json:"border_color"`
	HeadingFont        string             `json:"heading_font"`
	BodyFont           string             `json:"body_font"`
	HeadingSizePt      int                `json:"heading_size_pt"`
	SubheadingSizePt   int                `json:"subheading_size_pt"`
	BodySizePt         int                `json:"body_size_pt"`
	SmallSizePt        int                `json:"small_size_pt"`
	SectionGapPx       int                `json:"section_gap_px"`
	ElementGapPx       int                `json:"element_gap_px"`
	PaddingPx          int                `json:"padding_px"`
	ShowBorder         bool               `json:"show_border"`
	BorderStyle        design.BorderStyle `json:"border_style"`
	RoundedCorners     bool               `json:"rounded_corners"`
}

// LogoPlacement is the resolved logo slot inside the header block.
type LogoPlacement struct {
	ImageURL string              `json:"image_url"`
	Position design.LogoPosition `json:"position"`
	HeightPx int                 `json:"height_px"`
}

// HeaderContent is the payload of a header block.
type HeaderContent struct {
	CompanyName    string         `json:"company_name"`
	CompanyAddress string         `json:"company_address"`
	CompanyEmail   string         `json:"company_email"`
	CompanyPhone   string         `json:"company_phone"`
	Logo           *LogoPlacement `json:"logo,omitempty"`
}

// InvoiceInfoContent is the payload of an invoiceInfo block.
type InvoiceInfoContent struct {
	InvoiceNumber string `json:"invoice_number"`
	IssueDate     string `json:"issue_date"`
	DueDate       string `json:"due_date"`
	BillToName    string `json:"bill_to_name"`
	BillToAddress string `json:"bill_to_address"`
	BillToEmail   string `json:"bill_to_email"`
}

// ItemRow is one rendered line item; money stays in cents until a renderer
// formats it.
type ItemRow struct {
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	AmountCents    int64   `json:"amount_cents"`
}

// ItemsContent is the payload of an items block.
type ItemsContent struct {
	Columns []string  `json:"columns"`
	Rows    []ItemRow `json:"rows"`
}

// SummaryContent is the payload of a summary block.
type SummaryContent struct {
	Totals         Totals  `json:"totals"`
	TaxRatePercent float64 `json:"tax_rate_percent"`
}

// NotesContent is the payload of a notes block.
type NotesContent struct {
	Notes string `json:"notes"`
	Terms string `json:"terms"`
}

// FooterContent is the payload of a footer block.
type FooterContent struct {
	PaymentTerms string `json:"payment_terms"`
	Message      string `json:"message"`
}

// Block is one visual section in document flow order. Exactly one payload
// pointer is set, matching Kind.
type Block struct {
	Kind   BlockKind  `json:"kind"`
	Order  int        `json:"order"`
	Fields []string   `json:"fields"`
	Style  BlockStyle `json:"style"`

	Header      *HeaderContent      `json:"header,omitempty"`
	InvoiceInfo *InvoiceInfoContent `json:"invoice_info,omitempty"`
	Items       *ItemsContent       `json:"items,omitempty"`
	Summary     *SummaryContent     `json:"summary,omitempty"`
	Notes       *NotesContent       `json:"notes,omitempty"`
	Footer      *FooterContent      `json:"footer,omitempty"`
}

// Overlay is a page decoration positioned independently of section order.
type Overlay struct {
	Kind  OverlayKind `json:"kind"`
	Text  string      `json:"text"`
	Color string      `json:"color"`
}

// LayoutTree is the single source of truth both the live preview and the
// export renderer consume; producing it is the whole job of the pipeline.
type LayoutTree struct {
	Page     Page      `json:"page"`
	Blocks   []Block   `json:"blocks"`
	Overlays []Overlay `json:"overlays"`
	Totals   Totals    `json:"totals"`
}
