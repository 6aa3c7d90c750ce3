package glass

import (
	"fmt"
)

// Backdrop is the render boundary the filter graph is attached to:
// typically the navigation bar of a page.
type Backdrop interface {
	AttachFilter(g *FilterGraph) error
	DetachFilter(g *FilterGraph) error
}

// Effect holds everything computed for one initialization: the radial
// field, its raster and the filter graph referencing it.
type Effect struct {
	Params Params
	Field  *DisplacementField
	Image  *DisplacementImage
	Filter *FilterGraph
}

// NewEffect runs the whole pipeline with the given options.
// It returns ErrDegenerateField when the geometry produces no displacement;
// callers should then skip installation.
func NewEffect(opts ...Option) (*Effect, error) {
	return NewEffectParams(NewParams(opts...))
}

// NewEffectParams is NewEffect for prepared parameters.
func NewEffectParams(params Params) (*Effect, error) {
	field, err := GenerateField(params)
	if err != nil {
		return nil, err
	}
	img, err := Rasterize(field, params)
	if err != nil {
		return nil, err
	}
	graph, err := NewFilterGraph(img, field, params)
	if err != nil {
		return nil, err
	}
	return &Effect{
		Params: params,
		Field:  field,
		Image:  img,
		Filter: graph,
	}, nil
}

// Install attaches the filter graph to b.
func (e *Effect) Install(b Backdrop) error {
	if err := b.AttachFilter(e.Filter); err != nil {
		return fmt.Errorf("glass: install filter: %w", err)
	}
	Logger().Info("glass: filter installed", "id", e.Filter.ID, "scale", e.Filter.Scale)
	return nil
}

// Uninstall detaches the filter graph from b.
func (e *Effect) Uninstall(b Backdrop) error {
	if err := b.DetachFilter(e.Filter); err != nil {
		return fmt.Errorf("glass: uninstall filter: %w", err)
	}
	Logger().Info("glass: filter removed", "id", e.Filter.ID)
	return nil
}
