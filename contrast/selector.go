// Package contrast switches navigation text between light-on-dark and
// dark-on-light styling depending on the background behind the bar.
package contrast

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/glass"
)

// Rect is an on-screen bounding box in viewport coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// GeometryProvider answers layout questions about the rendered page.
// Elements and regions are identified by CSS selectors.
type GeometryProvider interface {
	// Bounds returns the viewport-relative box of the first element
	// matching selector.
	Bounds(selector string) (Rect, bool)

	// ScrollY returns the current vertical scroll offset.
	ScrollY() float64

	// Background returns the effective CSS background color of the first
	// element matching selector.
	Background(selector string) (string, bool)
}

// ClassApplier sets the contrast class on every element matching selector,
// removing the opposite class.
type ClassApplier interface {
	ApplyContrast(selector string, c Class) error
}

// Default selectors of the site's navigation bar.
var (
	DefaultNav      = "#nav"
	DefaultRegions  = []string{".background_nav", ".content", "footer"}
	DefaultElements = []string{"#nav .logo", "#nav .logo-slogan", "#nav button"}
)

// Selector decides the contrast class of the nav text.
type Selector struct {
	geom     GeometryProvider
	nav      string
	regions  []string
	elements []string
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithNav sets the navigation bar selector.
func WithNav(selector string) SelectorOption {
	return func(s *Selector) {
		s.nav = selector
	}
}

// WithRegions sets the candidate background regions, in priority order.
func WithRegions(selectors ...string) SelectorOption {
	return func(s *Selector) {
		s.regions = selectors
	}
}

// WithElements sets the text elements to recolor.
func WithElements(selectors ...string) SelectorOption {
	return func(s *Selector) {
		s.elements = selectors
	}
}

// NewSelector creates a Selector backed by geom.
func NewSelector(geom GeometryProvider, opts ...SelectorOption) *Selector {
	s := &Selector{
		geom:     geom,
		nav:      DefaultNav,
		regions:  DefaultRegions,
		elements: DefaultElements,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Background returns the color painted behind the vertical center of the
// nav: the first candidate region that spans it and has a visible
// background. Missing elements fall back to opaque white.
func (s *Selector) Background() color.NRGBA {
	nav, ok := s.geom.Bounds(s.nav)
	if !ok {
		glass.Logger().Warn("contrast: nav not found, assuming white background", "nav", s.nav)
		return White
	}

	scrollY := s.geom.ScrollY()
	centerY := nav.Y + scrollY + nav.Height/2

	for _, region := range s.regions {
		r, ok := s.geom.Bounds(region)
		if !ok {
			continue
		}
		top := r.Y + scrollY
		if centerY < top || centerY > top+r.Height {
			continue
		}
		bg, ok := s.geom.Background(region)
		if !ok {
			continue
		}
		if c, ok := ParseColor(bg); ok {
			return c
		}
	}
	return White
}

// Class returns the contrast class for the current background.
func (s *Selector) Class() Class {
	return ClassifyColor(s.Background())
}

// Recolor classifies the background once and applies the class to every
// element that is present on the page.
func (s *Selector) Recolor(dst ClassApplier) (Class, error) {
	class := s.Class()

	var errs []error
	for _, el := range s.elements {
		if _, ok := s.geom.Bounds(el); !ok {
			continue
		}
		if err := dst.ApplyContrast(el, class); err != nil {
			errs = append(errs, fmt.Errorf("contrast: apply %s to %q: %w", class, el, err))
		}
	}

	glass.Logger().Debug("contrast: recolored", "class", string(class))
	return class, errors.Join(errs...)
}
