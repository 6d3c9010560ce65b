// Package octree builds fixed-depth occupancy octrees over a grid.Space.
//
// Nodes live in an arena and refer to each other by Handle. An internal node
// keeps an 8-bit child mask and a compact slice of child handles ordered by
// octant, so memory grows with the number of visited paths rather than with
// the grid volume. Leaves sit at level depth and are occupied by construction.
//
// A Builder inserts cells (optionally with attribute vectors) and produces an
// immutable Document. The tree shape depends only on the set of distinct
// cells; when several points share a cell, the last attribute vector wins.
package octree
