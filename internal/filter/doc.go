// Package filter provides a software rendition of the displacement
// compositing stage, used to preview the liquid glass effect outside a
// browser.
//
// The compositor follows SVG feDisplacementMap semantics:
//
//	P'(x,y) = P(x + scale*(XC(x,y) - 0.5), y + scale*(YC(x,y) - 0.5))
//
// where XC and YC are the red and green channels of the map in [0, 1].
package filter
