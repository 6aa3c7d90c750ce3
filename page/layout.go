package page

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/glass/contrast"
)

// Layout is a snapshot of rendered geometry: viewport-relative element
// boxes keyed by selector, the scroll offset and, optionally, computed
// background colors that inline styles do not carry.
type Layout struct {
	ScrollY     float64                  `json:"scrollY"`
	Boxes       map[string]contrast.Rect `json:"boxes"`
	Backgrounds map[string]string        `json:"backgrounds,omitempty"`
}

// LoadLayout reads a JSON layout snapshot.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("page: read layout: %w", err)
	}
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("page: decode layout: %w", err)
	}
	return &l, nil
}

// Geometry combines a Layout with a Document into a
// contrast.GeometryProvider. Elements missing from the document are
// reported as absent even if the layout has a box for them.
type Geometry struct {
	layout *Layout
	doc    *Document
}

// NewGeometry creates a provider. doc may be nil.
func NewGeometry(layout *Layout, doc *Document) *Geometry {
	if layout == nil {
		layout = &Layout{}
	}
	return &Geometry{layout: layout, doc: doc}
}

// Bounds implements contrast.GeometryProvider.
func (g *Geometry) Bounds(selector string) (contrast.Rect, bool) {
	r, ok := g.layout.Boxes[selector]
	if !ok {
		return contrast.Rect{}, false
	}
	if g.doc != nil && g.doc.Selection(selector).Length() == 0 {
		return contrast.Rect{}, false
	}
	return r, true
}

// ScrollY implements contrast.GeometryProvider.
func (g *Geometry) ScrollY() float64 {
	return g.layout.ScrollY
}

// Background implements contrast.GeometryProvider.
func (g *Geometry) Background(selector string) (string, bool) {
	if bg, ok := g.layout.Backgrounds[selector]; ok {
		return bg, true
	}
	if g.doc == nil {
		return "", false
	}
	return g.doc.Background(selector)
}

// SetScrollY updates the scroll offset, shifting every box so that
// viewport coordinates stay consistent. Boxes listed in fixed keep their
// position, as a position: fixed nav does.
func (l *Layout) SetScrollY(y float64, fixed ...string) {
	delta := y - l.ScrollY
	l.ScrollY = y

	pinned := make(map[string]bool, len(fixed))
	for _, f := range fixed {
		pinned[f] = true
	}
	for k, r := range l.Boxes {
		if pinned[k] {
			continue
		}
		r.Y -= delta
		l.Boxes[k] = r
	}
}
