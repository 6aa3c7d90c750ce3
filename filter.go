package glass

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// Identifiers used in the generated markup.
const (
	FilterID          = "liquid-glass-filter"
	ContainerID       = "liquid-glass-svg"
	DisplacementInput = "displacement_map"
)

const (
	svgNS   = "http://www.w3.org/2000/svg"
	xlinkNS = "http://www.w3.org/1999/xlink"
)

// FilterGraph is the two-stage compositing filter handed to the renderer:
// an image source stage carrying the displacement raster, and a
// displacement stage warping the content behind the navigation bar.
type FilterGraph struct {
	ID          string
	ContainerID string

	// ImageHref is the data URL of the displacement raster.
	ImageHref string
	Width     int
	Height    int

	// Scale is the feDisplacementMap scale: MaxDisplacement * ScaleFactor.
	Scale float64
}

// NewFilterGraph builds the filter graph for a rasterized field.
func NewFilterGraph(img *DisplacementImage, field *DisplacementField, params Params) (*FilterGraph, error) {
	href, err := img.DataURL()
	if err != nil {
		return nil, err
	}
	return &FilterGraph{
		ID:          FilterID,
		ContainerID: ContainerID,
		ImageHref:   href,
		Width:       img.Width(),
		Height:      img.Height(),
		Scale:       field.MaxDisplacement * params.ScaleFactor,
	}, nil
}

// CSSValue returns the backdrop-filter value referencing the graph.
func (g *FilterGraph) CSSValue() string {
	return "url(#" + g.ID + ")"
}

type svgRoot struct {
	XMLName xml.Name  `xml:"svg"`
	XMLNS   string    `xml:"xmlns,attr"`
	XLink   string    `xml:"xmlns:xlink,attr"`
	ID      string    `xml:"id,attr"`
	Width   string    `xml:"width,attr"`
	Height  string    `xml:"height,attr"`
	Style   string    `xml:"style,attr"`
	Filter  svgFilter `xml:"filter"`
}

type svgFilter struct {
	ID       string            `xml:"id,attr"`
	X        string            `xml:"x,attr"`
	Y        string            `xml:"y,attr"`
	Width    string            `xml:"width,attr"`
	Height   string            `xml:"height,attr"`
	Image    feImage           `xml:"feImage"`
	Displace feDisplacementMap `xml:"feDisplacementMap"`
}

type feImage struct {
	Href      string `xml:"href,attr"`
	XLinkHref string `xml:"xlink:href,attr"`
	X         string `xml:"x,attr"`
	Y         string `xml:"y,attr"`
	Width     int    `xml:"width,attr"`
	Height    int    `xml:"height,attr"`
	Result    string `xml:"result,attr"`
}

type feDisplacementMap struct {
	In               string `xml:"in,attr"`
	In2              string `xml:"in2,attr"`
	Scale            string `xml:"scale,attr"`
	XChannelSelector string `xml:"xChannelSelector,attr"`
	YChannelSelector string `xml:"yChannelSelector,attr"`
}

func (g *FilterGraph) document() svgRoot {
	return svgRoot{
		XMLNS:  svgNS,
		XLink:  xlinkNS,
		ID:     g.ContainerID,
		Width:  "0",
		Height: "0",
		Style:  "position: absolute; z-index: -1;",
		Filter: svgFilter{
			ID:     g.ID,
			X:      "0",
			Y:      "0",
			Width:  "100%",
			Height: "100%",
			Image: feImage{
				Href:      g.ImageHref,
				XLinkHref: g.ImageHref,
				X:         "0",
				Y:         "0",
				Width:     g.Width,
				Height:    g.Height,
				Result:    DisplacementInput,
			},
			Displace: feDisplacementMap{
				In:               "SourceGraphic",
				In2:              DisplacementInput,
				Scale:            strconv.FormatFloat(g.Scale, 'g', -1, 64),
				XChannelSelector: "R",
				YChannelSelector: "G",
			},
		},
	}
}

// MarshalSVG returns the SVG container markup holding the filter.
func (g *FilterGraph) MarshalSVG() ([]byte, error) {
	b, err := xml.Marshal(g.document())
	if err != nil {
		return nil, fmt.Errorf("glass: marshal SVG: %w", err)
	}
	return b, nil
}

// WriteSVG writes an indented standalone SVG document.
func (g *FilterGraph) WriteSVG(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(g.document()); err != nil {
		return fmt.Errorf("glass: write SVG: %w", err)
	}
	return enc.Close()
}
