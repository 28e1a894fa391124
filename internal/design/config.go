package design

// SchemaVersion identifies the canonical design config shape. Records written
// under the legacy shape (schema 1) are migrated on read, never served as-is.
const (
	SchemaVersionLegacy    = 1
	SchemaVersionCanonical = 2
)

// ColorScheme holds the seven named color slots a document design resolves
// against. Every slot must carry a valid color once a template exists.
type ColorScheme struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary"`
	Accent        string `json:"accent"`
	Background    string `json:"background"`
	Border        string `json:"border"`
}

// FontSizes is the point-size table for the four text roles.
type FontSizes struct {
	Heading    int `json:"heading"`
	Subheading int `json:"subheading"`
	Body       int `json:"body"`
	Small      int `json:"small"`
}

// Typography selects font families from the closed allow-list plus the size table.
type Typography struct {
	HeadingFont string    `json:"headingFont"`
	BodyFont    string    `json:"bodyFont"`
	FontSizes   FontSizes `json:"fontSizes"`
}

// LogoPosition enumerates horizontal logo placement.
type LogoPosition string

const (
	LogoPositionLeft   LogoPosition = "left"
	LogoPositionCenter LogoPosition = "center"
	LogoPositionRight  LogoPosition = "right"
)

// LogoSize enumerates logo size presets.
type LogoSize string

const (
	LogoSizeSmall  LogoSize = "small"
	LogoSizeMedium LogoSize = "medium"
	LogoSizeLarge  LogoSize = "large"
)

// LogoConfig controls the document logo. Position and size stay validated for
// shape even while Enabled is false.
type LogoConfig struct {
	Enabled  bool         `json:"enabled"`
	ImageURL string       `json:"imageUrl"`
	Position LogoPosition `json:"position"`
	Size     LogoSize     `json:"size"`
}

// SectionKey identifies one of the six fixed document sections.
type SectionKey string

const (
	SectionHeader      SectionKey = "header"
	SectionInvoiceInfo SectionKey = "invoiceInfo"
	SectionItems       SectionKey = "items"
	SectionSummary     SectionKey = "summary"
	SectionFooter      SectionKey = "footer"
	SectionNotes       SectionKey = "notes"
)

// SectionKeys lists the canonical section keys in their default order.
var SectionKeys = []SectionKey{
	SectionHeader,
	SectionInvoiceInfo,
	SectionItems,
	SectionSummary,
	SectionFooter,
	SectionNotes,
}

// SectionConfig controls one section's visibility, field set and placement.
// Order drives the vertical sort; values need not be unique or contiguous.
type SectionConfig struct {
	Enabled bool     `json:"enabled"`
	Fields  []string `json:"fields"`
	Order   int      `json:"order"`
}

// Spacing holds pixel gaps, each clamped to its documented range.
type Spacing struct {
	SectionGap int `json:"sectionGap"`
	ElementGap int `json:"elementGap"`
	Padding    int `json:"padding"`
}

// BorderStyle enumerates border rendering styles.
type BorderStyle string

const (
	BorderStyleSolid  BorderStyle = "solid"
	BorderStyleDashed BorderStyle = "dashed"
	BorderStyleNone   BorderStyle = "none"
)

// Advanced holds the decoration toggles. WatermarkText is required non-empty
// only while ShowWatermark is set.
type Advanced struct {
	ShowBorders     bool        `json:"showBorders"`
	BorderStyle     BorderStyle `json:"borderStyle"`
	RoundedCorners  bool        `json:"roundedCorners"`
	ShowPageNumbers bool        `json:"showPageNumbers"`
	ShowWatermark   bool        `json:"showWatermark"`
	WatermarkText   string      `json:"watermarkText"`
}

// PaperSize enumerates supported page sizes.
type PaperSize string

const (
	PaperSizeA4     PaperSize = "A4"
	PaperSizeLetter PaperSize = "Letter"
)

// Orientation enumerates page orientation values.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// Margins holds page margins in pixels, all non-negative.
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// PageLayout selects the physical page geometry.
type PageLayout struct {
	PaperSize   PaperSize   `json:"paperSize"`
	Orientation Orientation `json:"orientation"`
	Margins     Margins     `json:"margins"`
}

// Config is the full declarative document design. A Config is complete only
// when every sub-object is present and passes Validate; incomplete configs
// must never reach the render pipeline.
type Config struct {
	SchemaVersion int                          `json:"schemaVersion"`
	Colors        ColorScheme                  `json:"colors"`
	Typography    Typography                   `json:"typography"`
	Logo          LogoConfig                   `json:"logo"`
	Layout        PageLayout                   `json:"layout"`
	Sections      map[SectionKey]SectionConfig `json:"sections"`
	Spacing       Spacing                      `json:"spacing"`
	Advanced      Advanced                     `json:"advanced"`
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (c Config) Clone() Config {
	out := c
	out.Sections = make(map[SectionKey]SectionConfig, len(c.Sections))
	for key, section := range c.Sections {
		copied := section
		copied.Fields = append([]string(nil), section.Fields...)
		out.Sections[key] = copied
	}
	return out
}
