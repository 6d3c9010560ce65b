package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chenzhekl/goply"
	"github.com/golang/geo/r3"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/grid"
)

// plyScalarTypes lists the scalar property types a PLY header may declare.
var plyScalarTypes = map[string]bool{
	"char": true, "int8": true,
	"uchar": true, "uint8": true,
	"short": true, "int16": true,
	"ushort": true, "uint16": true,
	"int": true, "int32": true,
	"uint": true, "uint32": true,
	"float": true, "float32": true,
	"double": true, "float64": true,
}

// plyVertexLayout is what the header says about the vertex element.
// goply hands records back as maps, so the declared property order is kept
// here to give attributes a stable order.
type plyVertexLayout struct {
	count int
	names []string
}

// ReadPLY reads the vertex element of a PLY file. The bounding box is the
// vertex extent; an empty vertex element yields an empty PointSet.
func ReadPLY(r io.Reader) (*PointSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	layout, err := scanPLYHeader(data)
	if err != nil {
		return nil, err
	}

	vertices, err := decodePLYVertices(data)
	if err != nil {
		return nil, err
	}
	if len(vertices) != layout.count {
		return nil, fmt.Errorf("%w: ply has %d vertices, header declares %d",
			errs.ErrUnsupportedSource, len(vertices), layout.count)
	}

	ps := &PointSet{Points: make([]r3.Vector, 0, layout.count)}
	for _, name := range layout.names {
		if name != "x" && name != "y" && name != "z" {
			ps.AttributeNames = append(ps.AttributeNames, name)
		}
	}
	if len(ps.AttributeNames) > 0 {
		ps.Attributes = make([][]float64, 0, layout.count)
	}

	for n, v := range vertices {
		var pos [3]float64
		for i, axis := range []string{"x", "y", "z"} {
			if pos[i], err = plyScalar(v, axis); err != nil {
				return nil, fmt.Errorf("vertex %d: %w", n, err)
			}
		}
		ps.Points = append(ps.Points, r3.Vector{X: pos[0], Y: pos[1], Z: pos[2]})

		if len(ps.AttributeNames) == 0 {
			continue
		}
		attrs := make([]float64, len(ps.AttributeNames))
		for j, name := range ps.AttributeNames {
			if attrs[j], err = plyScalar(v, name); err != nil {
				return nil, fmt.Errorf("vertex %d: %w", n, err)
			}
		}
		ps.Attributes = append(ps.Attributes, attrs)
	}

	if ps.Len() > 0 {
		ps.Box, err = grid.BoundsOf(ps.Points)
		if err != nil {
			return nil, err
		}
	}

	return ps, nil
}

// decodePLYVertices runs goply over the whole file. goply panics on malformed
// bodies; the panic is reported as an unsupported source.
func decodePLYVertices(data []byte) (vertices []goply.PlyElement, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			vertices = nil
			err = fmt.Errorf("%w: ply body: %v", errs.ErrUnsupportedSource, rec)
		}
	}()

	return goply.New(bytes.NewReader(data)).Elements("vertex"), nil
}

// scanPLYHeader validates the header and returns the vertex element layout.
func scanPLYHeader(data []byte) (plyVertexLayout, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	if !sc.Scan() || strings.TrimRight(sc.Text(), "\r") != "ply" {
		return plyVertexLayout{}, fmt.Errorf("%w: missing ply magic", errs.ErrUnsupportedSource)
	}

	var (
		layout    plyVertexLayout
		hasFormat bool
		hasVertex bool
		inVertex  bool
		seen      = map[string]bool{}
	)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "end_header":
			if !hasFormat {
				return layout, fmt.Errorf("%w: ply header has no format line", errs.ErrUnsupportedSource)
			}
			if !hasVertex {
				return layout, fmt.Errorf("%w: ply has no vertex element", errs.ErrUnsupportedSource)
			}
			if !seen["x"] || !seen["y"] || !seen["z"] {
				return layout, fmt.Errorf("%w: vertex element lacks x, y or z", errs.ErrUnsupportedSource)
			}

			return layout, nil
		case "comment", "obj_info":
		case "format":
			if len(fields) != 3 {
				return layout, fmt.Errorf("%w: ply format line %q", errs.ErrUnsupportedSource, line)
			}
			switch fields[1] {
			case "ascii", "binary_little_endian", "binary_big_endian":
			default:
				return layout, fmt.Errorf("%w: ply format %q", errs.ErrUnsupportedSource, fields[1])
			}
			hasFormat = true
		case "element":
			if len(fields) != 3 {
				return layout, fmt.Errorf("%w: ply element line %q", errs.ErrUnsupportedSource, line)
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return layout, fmt.Errorf("%w: ply element count %q", errs.ErrUnsupportedSource, fields[2])
			}
			inVertex = fields[1] == "vertex" && !hasVertex
			if inVertex {
				hasVertex = true
				layout.count = count
			}
		case "property":
			if err := checkPLYProperty(fields, inVertex); err != nil {
				return layout, err
			}
			if inVertex {
				name := fields[len(fields)-1]
				layout.names = append(layout.names, name)
				seen[name] = true
			}
		default:
			return layout, fmt.Errorf("%w: ply header line %q", errs.ErrUnsupportedSource, line)
		}
	}

	return layout, fmt.Errorf("%w: ply header is not terminated", errs.ErrUnsupportedSource)
}

func checkPLYProperty(fields []string, inVertex bool) error {
	if len(fields) == 5 && fields[1] == "list" {
		if inVertex {
			return fmt.Errorf("%w: list property %q in vertex element", errs.ErrUnsupportedSource, fields[4])
		}
		if !plyScalarTypes[fields[2]] || !plyScalarTypes[fields[3]] {
			return fmt.Errorf("%w: ply list types %q", errs.ErrUnsupportedSource, strings.Join(fields[2:4], " "))
		}

		return nil
	}
	if len(fields) != 3 {
		return fmt.Errorf("%w: ply property %q", errs.ErrUnsupportedSource, strings.Join(fields, " "))
	}
	if !plyScalarTypes[fields[1]] {
		return fmt.Errorf("%w: ply property type %q", errs.ErrUnsupportedSource, fields[1])
	}

	return nil
}

// plyScalar converts one decoded property value to float64.
func plyScalar(v goply.PlyElement, name string) (float64, error) {
	switch val := v[name].(type) {
	case float32:
		return float64(val), nil
	case float64:
		return val, nil
	case int8:
		return float64(val), nil
	case uint8:
		return float64(val), nil
	case int16:
		return float64(val), nil
	case uint16:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case uint32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	default:
		return 0, fmt.Errorf("%w: property %q holds %T", errs.ErrUnsupportedSource, name, val)
	}
}
