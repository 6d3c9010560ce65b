// Package source reads point data for conversion.
//
// Two inputs are supported:
//
//   - NPY: a 3-D numpy array. Every element equal to 1 is an occupied grid
//     index; the volume is fixed at 256 cells per axis.
//   - PLY: the vertex element of an ascii or binary PLY mesh. x, y and z give
//     the position; every other scalar vertex property becomes an attribute.
//
// Faces and other elements are ignored.
package source
