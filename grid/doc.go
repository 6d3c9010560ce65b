// Package grid maps point coordinates into the cubic cell space of an octree.
//
// A Space is a BoundingBox plus a depth. Its root cube is anchored at the
// box's min corner with a side equal to the box's largest extent, and is split
// into 2^depth cells per axis. Continuous coordinates are rescaled linearly
// (MapPoint); integer grid coordinates map by offset (MapIndex).
//
// Cells are half-open [i, i+1) except the last cell on each axis, which also
// holds the max boundary, so a point exactly on max maps to 2^depth-1.
//
// Points outside the box follow the Space's format.RangePolicy: RangeReject
// returns errs.ErrPointOutOfRange, RangeClamp moves them onto the nearest
// boundary.
package grid
