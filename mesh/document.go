package mesh

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The persisted tree mirrors the editor format:
//
//	<mesh>
//	  <vertex id="0" time="0" phase="0.1" amp="0.5" red="0" blue="0" curve="0"/>
//	  <cube id="0" verts="0 1 2 3 4 5 6 7">
//	    <deform dim="phase" chan="2" gain="0.5"/>
//	  </cube>
//	  <loop cube="0"/>
//	  <sustain cube="1"/>
//	</mesh>

type xmlMesh struct {
	XMLName  xml.Name    `xml:"mesh"`
	Vertices []xmlVertex `xml:"vertex"`
	Cubes    []xmlCube   `xml:"cube"`
	Loop     []xmlTag    `xml:"loop"`
	Sustain  []xmlTag    `xml:"sustain"`
}

type xmlVertex struct {
	ID    int     `xml:"id,attr"`
	Time  float64 `xml:"time,attr"`
	Phase float64 `xml:"phase,attr"`
	Amp   float64 `xml:"amp,attr"`
	Red   float64 `xml:"red,attr"`
	Blue  float64 `xml:"blue,attr"`
	Curve float64 `xml:"curve,attr"`
}

type xmlCube struct {
	ID     int         `xml:"id,attr"`
	Verts  string      `xml:"verts,attr"`
	Deform []xmlDeform `xml:"deform"`
}

type xmlDeform struct {
	Dim  string  `xml:"dim,attr"`
	Chan int     `xml:"chan,attr"`
	Gain float64 `xml:"gain,attr"`
}

type xmlTag struct {
	Cube int `xml:"cube,attr"`
}

// Encode writes m as an indented XML tree.
func (m *Mesh) Encode(w io.Writer) error {
	doc := xmlMesh{
		Vertices: make([]xmlVertex, len(m.verts)),
		Cubes:    make([]xmlCube, len(m.cubes)),
	}
	for i, v := range m.verts {
		doc.Vertices[i] = xmlVertex{
			ID:    i,
			Time:  v.Values[Time],
			Phase: v.Values[Phase],
			Amp:   v.Values[Amp],
			Red:   v.Values[Red],
			Blue:  v.Values[Blue],
			Curve: v.Values[Curve],
		}
	}
	for i, c := range m.cubes {
		ids := make([]string, NumCorners)
		for k, v := range c.Verts {
			ids[k] = strconv.Itoa(int(v))
		}
		xc := xmlCube{ID: i, Verts: strings.Join(ids, " ")}
		for d := Dim(0); d < NumDims; d++ {
			if c.DeformChan[d] < 0 && c.DeformGain[d] == UnityGain {
				continue
			}
			xc.Deform = append(xc.Deform, xmlDeform{Dim: d.String(), Chan: c.DeformChan[d], Gain: c.DeformGain[d]})
		}
		doc.Cubes[i] = xc
	}
	for _, c := range m.loop {
		doc.Loop = append(doc.Loop, xmlTag{Cube: int(c)})
	}
	for _, c := range m.sustain {
		doc.Sustain = append(doc.Sustain, xmlTag{Cube: int(c)})
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("mesh: encode: %w", err)
	}
	return enc.Flush()
}

// Decode reads a mesh written by Encode. Vertex and cube ids in the document
// may be sparse; they are renumbered in document order.
func Decode(r io.Reader) (*Mesh, error) {
	var doc xmlMesh
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	m := New()
	vertexIDs := make(map[int]VertexID, len(doc.Vertices))
	for _, xv := range doc.Vertices {
		if _, dup := vertexIDs[xv.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate vertex id %d", ErrMalformedDocument, xv.ID)
		}
		vertexIDs[xv.ID] = m.AddVertex(NewVertex(xv.Time, xv.Phase, xv.Amp, xv.Red, xv.Blue, xv.Curve))
	}

	cubeIDs := make(map[int]CubeID, len(doc.Cubes))
	for _, xc := range doc.Cubes {
		fields := strings.Fields(xc.Verts)
		if len(fields) != NumCorners {
			return nil, fmt.Errorf("%w: cube %d has %d corners", ErrMalformedDocument, xc.ID, len(fields))
		}
		var corners [NumCorners]VertexID
		for k, f := range fields {
			ref, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: cube %d corner %q", ErrMalformedDocument, xc.ID, f)
			}
			id, ok := vertexIDs[ref]
			if !ok {
				return nil, fmt.Errorf("%w: cube %d references vertex %d", ErrInvalidVertex, xc.ID, ref)
			}
			corners[k] = id
		}

		cube := NewCube(corners)
		for _, xd := range xc.Deform {
			d, ok := ParseDim(xd.Dim)
			if !ok {
				return nil, fmt.Errorf("%w: cube %d deform dim %q", ErrMalformedDocument, xc.ID, xd.Dim)
			}
			cube.SetDeform(d, xd.Chan, xd.Gain)
		}

		id, err := m.AppendCube(cube)
		if err != nil {
			return nil, fmt.Errorf("cube %d: %w", xc.ID, err)
		}
		cubeIDs[xc.ID] = id
	}

	for _, t := range doc.Loop {
		id, ok := cubeIDs[t.Cube]
		if !ok {
			return nil, fmt.Errorf("%w: loop tag references cube %d", ErrInvalidCube, t.Cube)
		}
		if err := m.TagLoop(id); err != nil {
			return nil, err
		}
	}
	for _, t := range doc.Sustain {
		id, ok := cubeIDs[t.Cube]
		if !ok {
			return nil, fmt.Errorf("%w: sustain tag references cube %d", ErrInvalidCube, t.Cube)
		}
		if err := m.TagSustain(id); err != nil {
			return nil, err
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
