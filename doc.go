// Package glass generates the displacement map behind a "liquid glass"
// navigation bar.
//
// # Overview
//
// A rounded glass bezel is modeled as a quarter-circle height profile. For
// each integer step from the bezel edge toward the center the package
// computes where a vertical ray is bent by Snell's law, normalizes the
// resulting magnitudes into a radial table and rasterizes that table into
// a small RGBA image. The image is embedded in an SVG filter graph
// (feImage feeding feDisplacementMap) that a page applies to its navigation
// bar with the CSS value url(#liquid-glass-filter).
//
// # Quick Start
//
//	eff, err := glass.NewEffect(glass.WithRadius(10), glass.WithSize(100, 85))
//	if errors.Is(err, glass.ErrDegenerateField) {
//		return // nothing to displace; leave the page unfiltered
//	}
//	if err != nil {
//		return err
//	}
//	svg, _ := eff.Filter.MarshalSVG()
//
// Effect.Install attaches the graph to any Backdrop; package page provides
// one backed by an HTML document.
//
// # Pixel encoding
//
// Red and green carry the X and Y displacement as 128 ± 127, blue is 128
// and alpha is 255. Pixels outside the bezel radius are neutral
// (128, 128, 128, 255), which feDisplacementMap treats as no displacement.
//
// # Concurrency
//
// Rasterization splits the image into row bands run on an internal worker
// pool. The output bytes do not depend on the number of workers.
//
// # Logging
//
// The package is silent by default. Call SetLogger with an *slog.Logger to
// receive debug and info records from generation and installation.
package glass
