// Package layout places objects on a slide.
//
// A Grid splits a canvas into rows × columns of equally sized cells
// separated by border and spacing fractions of the canvas. Next returns the
// top-left offset of the following cell in row-major order and starts over
// after the last one.
package layout
