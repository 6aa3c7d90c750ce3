// Package page installs the liquid glass filter into HTML documents and
// answers background and layout queries for the contrast selector.
package page

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/contrast"
)

// Page errors.
var (
	ErrNoBody          = errors.New("page: document has no body")
	ErrNavNotFound     = errors.New("page: navigation element not found")
	ErrElementNotFound = errors.New("page: element not found")
)

const backdropProperty = "backdrop-filter"

// Document is an HTML page the effect is installed into.
type Document struct {
	doc *goquery.Document
	nav string
}

// Parse reads an HTML document. nav selects the navigation bar that
// receives the backdrop filter.
func Parse(r io.Reader, nav string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("page: parse: %w", err)
	}
	return &Document{doc: doc, nav: nav}, nil
}

// Load parses the HTML file at path.
func Load(path, nav string) (*Document, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("page: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, nav)
}

// Selection exposes the underlying goquery selection for selector.
func (d *Document) Selection(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// AttachFilter implements glass.Backdrop. It appends the SVG container to
// the body, replacing a previous one, and points the nav's backdrop-filter
// at it.
func (d *Document) AttachFilter(g *glass.FilterGraph) error {
	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return ErrNoBody
	}
	nav := d.doc.Find(d.nav).First()
	if nav.Length() == 0 {
		return fmt.Errorf("%w: %q", ErrNavNotFound, d.nav)
	}

	markup, err := g.MarshalSVG()
	if err != nil {
		return err
	}

	d.doc.Find("#" + g.ContainerID).Remove()
	body.AppendHtml(string(markup))

	style, _ := nav.Attr("style")
	nav.SetAttr("style", setStyleValue(style, backdropProperty, g.CSSValue()))
	return nil
}

// DetachFilter implements glass.Backdrop. Detaching a filter that is not
// installed is a no-op.
func (d *Document) DetachFilter(g *glass.FilterGraph) error {
	d.doc.Find("#" + g.ContainerID).Remove()

	nav := d.doc.Find(d.nav).First()
	style, ok := nav.Attr("style")
	if !ok {
		return nil
	}
	if v, ok := styleValue(style, backdropProperty); ok && v == g.CSSValue() {
		style = removeStyleValue(style, backdropProperty)
		if style == "" {
			nav.RemoveAttr("style")
		} else {
			nav.SetAttr("style", style)
		}
	}
	return nil
}

// ApplyContrast implements contrast.ClassApplier.
func (d *Document) ApplyContrast(selector string, c contrast.Class) error {
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return fmt.Errorf("%w: %q", ErrElementNotFound, selector)
	}
	sel.RemoveClass(string(c.Opposite())).AddClass(string(c))
	return nil
}

// Background returns the inline background color of the first element
// matching selector, from background-color, the background shorthand or
// the legacy bgcolor attribute.
func (d *Document) Background(selector string) (string, bool) {
	el := d.doc.Find(selector).First()
	if el.Length() == 0 {
		return "", false
	}

	style, _ := el.Attr("style")
	if v, ok := styleValue(style, "background-color"); ok {
		return v, true
	}
	if v, ok := styleValue(style, "background"); ok {
		for _, tok := range shorthandTokens(v) {
			if _, ok := contrast.ParseColor(tok); ok || strings.EqualFold(tok, "transparent") {
				return tok, true
			}
		}
	}
	if v, ok := el.Attr("bgcolor"); ok {
		return v, true
	}
	return "", false
}

// HTML renders the document.
func (d *Document) HTML() (string, error) {
	s, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("page: render: %w", err)
	}
	return s, nil
}

// WriteTo writes the rendered document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	s, err := d.HTML()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, s)
	return int64(n), err
}
