package mapview

import (
	"fmt"

	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

const (
	DefaultZoom        = 12
	DefaultWidth       = 700
	DefaultHeight      = 500
	DefaultTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = "&copy; OpenStreetMap contributors"
)

type Options struct {
	Zoom        int
	TileURL     string
	Attribution string
	Width       int
	Height      int
}

// Renderer builds single-marker map views. The browser draws them with Leaflet.
type Renderer struct {
	opts Options
}

func NewRenderer(opts Options) *Renderer {
	if opts.Zoom <= 0 {
		opts.Zoom = DefaultZoom
	}
	if opts.TileURL == "" {
		opts.TileURL = DefaultTileURL
	}
	if opts.Attribution == "" {
		opts.Attribution = DefaultAttribution
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	return &Renderer{opts: opts}
}

// Render centres a map on at with one marker labelled with place.
func (r *Renderer) Render(place string, at types.Coordinates) types.MapView {
	return types.MapView{
		Center:      at,
		Zoom:        r.opts.Zoom,
		Tooltip:     fmt.Sprintf("Location: %s", place),
		TileURL:     r.opts.TileURL,
		Attribution: r.opts.Attribution,
		Width:       r.opts.Width,
		Height:      r.opts.Height,
	}
}
