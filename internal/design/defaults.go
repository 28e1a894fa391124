package design

// FontAllowList is the closed set of font families the editor may select.
var FontAllowList = []string{
	"Inter",
	"Space Grotesk",
	"Helvetica",
	"Arial",
	"Georgia",
	"Times New Roman",
	"Roboto",
	"Courier New",
}

// Default returns the starter design every new template is created from.
func Default() Config {
	return Config{
		SchemaVersion: SchemaVersionCanonical,
		Colors: ColorScheme{
			Primary:       "#4f46e5",
			Secondary:     "#6b7280",
			Text:          "#111827",
			TextSecondary: "#6b7280",
			Accent:        "#10b981",
			Background:    "#ffffff",
			Border:        "#e5e7eb",
		},
		Typography: Typography{
			HeadingFont: "Inter",
			BodyFont:    "Inter",
			FontSizes: FontSizes{
				Heading:    24,
				Subheading: 16,
				Body:       12,
				Small:      10,
			},
		},
		Logo: LogoConfig{
			Enabled:  true,
			ImageURL: "",
			Position: LogoPositionLeft,
			Size:     LogoSizeMedium,
		},
		Layout: PageLayout{
			PaperSize:   PaperSizeA4,
			Orientation: OrientationPortrait,
			Margins:     Margins{Top: 40, Right: 40, Bottom: 40, Left: 40},
		},
		Sections: map[SectionKey]SectionConfig{
			SectionHeader:      {Enabled: true, Fields: []string{"companyName", "companyAddress", "logo"}, Order: 1},
			SectionInvoiceInfo: {Enabled: true, Fields: []string{"invoiceNumber", "issueDate", "dueDate", "billTo"}, Order: 2},
			SectionItems:       {Enabled: true, Fields: []string{"description", "quantity", "unitPrice", "amount"}, Order: 3},
			SectionSummary:     {Enabled: true, Fields: []string{"subtotal", "tax", "discount", "total"}, Order: 4},
			SectionNotes:       {Enabled: true, Fields: []string{"notes", "terms"}, Order: 5},
			SectionFooter:      {Enabled: true, Fields: []string{"paymentTerms", "thankYou"}, Order: 6},
		},
		Spacing: Spacing{
			SectionGap: 24,
			ElementGap: 8,
			Padding:    32,
		},
		Advanced: Advanced{
			ShowBorders:     false,
			BorderStyle:     BorderStyleSolid,
			RoundedCorners:  true,
			ShowPageNumbers: false,
			ShowWatermark:   false,
			WatermarkText:   "",
		},
	}
}
