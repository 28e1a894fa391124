package preview

import "github.com/smallbiznis/paperpress/internal/render"

// ViewMode selects the preview viewport.
type ViewMode string

const (
	ViewModeDesktop ViewMode = "desktop"
	ViewModeMobile  ViewMode = "mobile"
)

// Zoom bounds in percent. Zoom is a presentation transform applied after
// layout; changing it never re-runs the pipeline.
const (
	MinZoomPercent     = 25
	MaxZoomPercent     = 200
	DefaultZoomPercent = 100
)

// Mobile preview viewport width at the reference scale.
const mobileViewportWidthPx = 390

// Options controls how a layout tree is drawn, not what it contains.
type Options struct {
	ViewMode    ViewMode `json:"view_mode"`
	ZoomPercent int      `json:"zoom_percent"`
}

func (o Options) withDefaults() Options {
	if o.ViewMode != ViewModeMobile {
		o.ViewMode = ViewModeDesktop
	}
	if o.ZoomPercent == 0 {
		o.ZoomPercent = DefaultZoomPercent
	}
	if o.ZoomPercent < MinZoomPercent {
		o.ZoomPercent = MinZoomPercent
	}
	if o.ZoomPercent > MaxZoomPercent {
		o.ZoomPercent = MaxZoomPercent
	}
	return o
}

// Renderer draws a layout tree as an on-screen document mirror.
type Renderer interface {
	RenderHTML(tree *render.LayoutTree, opts Options) (string, error)
}
