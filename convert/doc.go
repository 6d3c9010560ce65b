// Package convert turns NPY and PLY files into VOLA files.
//
// Each file goes through the same pipeline: read points, map them into a
// grid.Space, build an octree.Document, and write it with a volume.Encoder
// next to the input. Files whose output already exists and files without
// points are skipped, not failed. A failing file never stops the others.
package convert
