// Package color resolves named and hex colors into the normalized RGB triples
// the Sheets and Slides APIs expect, and provides cyclic palettes for
// assigning series colors.
//
// Named colors and base palettes are embedded. Extra palettes can be merged
// from a user YAML file shaped like:
//
//	corporate:
//	  - "#003366"
//	  - orange
package color
