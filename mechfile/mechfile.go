package mechfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/screwdof/mobility"
	"github.com/katalvlaran/screwdof/screw"
)

// Load reads and converts the mechanism file at name (YAML or JSON).
func Load(name string) (*Loaded, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("mechfile: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return l, nil
}

// Parse decodes a YAML or JSON document and converts it.
func Parse(data []byte) (*Loaded, error) {
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return f.Convert()
}

// Decode reads one document. Unknown fields are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrDecode)
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &f, nil
}

// Convert validates f and builds the analyzer input.
//
// Steps:
//  1. Check vector and link arities.
//  2. Characteristic length: settings.char_length, else the mean link length.
//  3. Build every joint with screw.NewJoint.
//  4. Resolve base/end-effector defaults and strip extended-path anchors.
func (f *File) Convert() (*Loaded, error) {
	if len(f.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrSchema)
	}

	// 1. arities
	positions := make(map[int]r3.Vec, len(f.Nodes))
	for _, n := range f.Nodes {
		if len(n.Axis) != 3 || len(n.Pos) != 3 {
			return nil, fmt.Errorf("%w: node %d: axis and pos need 3 components", ErrSchema, n.ID)
		}
		positions[n.ID] = vec(n.Pos)
	}
	links := make([][2]int, 0, len(f.Links))
	for k, lk := range f.Links {
		if len(lk) != 2 {
			return nil, fmt.Errorf("%w: link %d: need 2 node ids, got %d", ErrSchema, k, len(lk))
		}
		links = append(links, [2]int{lk[0], lk[1]})
	}

	// 2. characteristic length
	l := f.Settings.CharLength
	switch {
	case l < 0:
		return nil, fmt.Errorf("%w: char_length %g is negative", ErrSchema, l)
	case l == 0:
		l = screw.CharacteristicLength(positions, links)
	}

	// 3. joints
	m := mobility.Mechanism{
		Links:       links,
		RigidBodies: f.RigidBodies,
		CharLength:  l,
	}
	for _, n := range f.Nodes {
		kind, err := screw.ParseKind(n.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: %w", ErrSchema, n.ID, err)
		}
		j, err := screw.NewJoint(n.ID, kind, vec(n.Axis), vec(n.Pos), l)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSchema, err)
		}
		m.Joints = append(m.Joints, j)
	}

	// 4. endpoints and path
	ext := f.Settings.ManualPath
	m.Base, m.EndEffector = endpoints(f.Settings, len(f.Nodes))
	if ext != nil {
		m.Path = corePath(ext, m.Base, m.EndEffector)
	}

	return &Loaded{
		Name:         f.Name,
		Mechanism:    m,
		Tolerances:   f.Settings.Tolerances,
		ExtendedPath: ext,
	}, nil
}

// endpoints applies the defaults: explicit settings first, then the
// anchors of an extended manual path, then node 0 and node count − 1.
func endpoints(s Settings, nodes int) (base, ee int) {
	base, ee = 0, nodes-1
	if p := s.ManualPath; len(p) >= 3 {
		base, ee = p[1], p[len(p)-2]
	}
	if s.BaseNode != nil {
		base = *s.BaseNode
	}
	if s.EENode != nil {
		ee = *s.EENode
	}
	return base, ee
}

// corePath returns the base … ee part of a manual path. A path that already
// runs base … ee is kept whole; an extended path anchor, base … ee, anchor
// loses its anchors. Anything else is returned as is and rejected later.
func corePath(p []int, base, ee int) []int {
	n := len(p)
	if n >= 2 && p[0] == base && p[n-1] == ee {
		return append([]int(nil), p...)
	}
	if n >= 4 && p[1] == base && p[n-2] == ee {
		return append([]int(nil), p[1:n-1]...)
	}
	return append([]int(nil), p...)
}

func vec(a []float64) r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }
