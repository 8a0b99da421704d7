// SPDX-License-Identifier: MIT
// Package mobility: screw-system assembly.
// assemble turns a Mechanism into the index-addressed system every later
// stage works on: the topology graph, its spanning forest and loops, the
// resolved base → end-effector path(s) and the column layout of the loop
// constraint matrix M.

package mobility

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/screwdof/path"
	"github.com/katalvlaran/screwdof/screw"
	"github.com/katalvlaran/screwdof/topology"
)

// system is the assembled model of one analysis.
type system struct {
	g      *topology.Graph
	forest *topology.Forest
	joints []screw.Joint // by joint index
	length float64       // characteristic length

	colOf  []int // joint index → column, -1 outside the analyzed component
	colRep []int // column → smallest member joint index
	pos    []int // column → position among active columns, -1 for gauge
	active int

	res   *path.Resolution
	paths [][]int // candidate paths as joint indices; paths[0] is res.Path
	signs [][]float64
}

// assemble validates the topology, resolves the path and lays out columns.
// Graph and path checks run before any numeric work.
func assemble(m Mechanism, log *zap.Logger) (*system, error) {
	// 1. graph
	ids := make([]int, len(m.Joints))
	for i, j := range m.Joints {
		ids[i] = j.ID
	}
	g, err := topology.New(ids, m.Links, m.RigidBodies)
	if err != nil {
		return nil, fail(StageGraph, ErrGraph, err)
	}
	if m.Base == m.EndEffector {
		return nil, fail(StageGraph, ErrGraph,
			fmt.Errorf("base and end-effector are the same joint %d", m.Base))
	}
	bi, ok := g.Index(m.Base)
	if !ok {
		return nil, fail(StageGraph, ErrGraph, fmt.Errorf("%w: base %d", topology.ErrUnknownJoint, m.Base))
	}
	ei, ok := g.Index(m.EndEffector)
	if !ok {
		return nil, fail(StageGraph, ErrGraph, fmt.Errorf("%w: end-effector %d", topology.ErrUnknownJoint, m.EndEffector))
	}
	f := g.SpanningForest(bi)
	if !f.InComponent[ei] {
		return nil, fail(StageGraph, ErrGraph,
			fmt.Errorf("%w: base %d, end-effector %d", topology.ErrDisconnected, m.Base, m.EndEffector))
	}

	// 2. path
	res, err := path.Resolve(g, m.Base, m.EndEffector, m.Path)
	if err != nil {
		if errors.Is(err, path.ErrUnreachable) {
			return nil, fail(StageGraph, ErrGraph, err)
		}
		return nil, fail(StagePath, ErrPath, err)
	}

	s := &system{g: g, forest: f, res: res, joints: make([]screw.Joint, g.Len())}
	for _, j := range m.Joints {
		i, _ := g.Index(j.ID)
		s.joints[i] = j
	}
	for _, cand := range res.Candidates {
		p := make([]int, len(cand))
		for k, id := range cand {
			p[k], _ = g.Index(id)
		}
		s.paths = append(s.paths, p)
		s.signs = append(s.signs, g.PathSigns(p))
	}

	// 3. geometry
	for i, in := range f.InComponent {
		if in && !finiteJoint(s.joints[i]) {
			return nil, fail(StageAssemble, ErrNumeric,
				fmt.Errorf("joint %d: %w", s.joints[i].ID, screw.ErrNonFinite))
		}
	}
	s.length = m.CharLength
	if s.length == 0 {
		positions := make(map[int]r3.Vec, len(m.Joints))
		for _, j := range m.Joints {
			positions[j.ID] = j.Position
		}
		s.length = screw.CharacteristicLength(positions, m.Links)
	}

	// 4. columns
	s.layout()

	log.Debug("assembled screw system",
		zap.Int("joints", g.Len()),
		zap.Int("loops", len(f.Loops)),
		zap.Int("columns", len(s.colRep)),
		zap.Int("active", s.active),
		zap.Int("path_candidates", len(s.paths)),
		zap.Float64("char_length", s.length))

	return s, nil
}

// layout assigns one column per rigid group of the analyzed component and
// marks gauge columns: those in no loop and on no candidate path.
func (s *system) layout() {
	n := s.g.Len()
	s.colOf = make([]int, n)
	byGroup := make(map[int]int)
	for i := 0; i < n; i++ {
		s.colOf[i] = -1
		if !s.forest.InComponent[i] {
			continue
		}
		gid := s.g.Group(i)
		c, ok := byGroup[gid]
		if !ok {
			c = len(s.colRep)
			byGroup[gid] = c
			s.colRep = append(s.colRep, i)
		}
		s.colOf[i] = c
	}

	used := make([]bool, len(s.colRep))
	for _, lp := range s.forest.Loops {
		for _, j := range lp.Joints {
			used[s.colOf[j]] = true
		}
	}
	for _, p := range s.paths {
		for _, j := range p {
			used[s.colOf[j]] = true
		}
	}

	s.pos = make([]int, len(s.colRep))
	for c, u := range used {
		if !u {
			s.pos[c] = -1
			continue
		}
		s.pos[c] = s.active
		s.active++
	}
}

// gauge returns the number of gauge columns.
func (s *system) gauge() int { return len(s.colRep) - s.active }

// rate returns the rate of joint index j under an active-column vector q.
func (s *system) rate(q []float64, j int) float64 {
	c := s.colOf[j]
	if c < 0 || s.pos[c] < 0 {
		return 0
	}
	return q[s.pos[c]]
}

// matrix assembles the loop constraint matrix over the active columns for
// the given screws (indexed like s.joints). It returns nil when there is no
// loop or no active column.
func (s *system) matrix(joints []screw.Joint) *mat.Dense {
	rows := 6 * len(s.forest.Loops)
	if rows == 0 || s.active == 0 {
		return nil
	}
	m := mat.NewDense(rows, s.active, nil)
	for l, lp := range s.forest.Loops {
		for i, j := range lp.Joints {
			c := s.pos[s.colOf[j]]
			if c < 0 {
				continue
			}
			sc := joints[j].Screw
			for r := 0; r < 6; r++ {
				m.Set(6*l+r, c, m.At(6*l+r, c)+lp.Signs[i]*sc[r])
			}
		}
	}
	return m
}

// connectivity summarizes the topology for the Result.
func (s *system) connectivity() Connectivity {
	c := Connectivity{Joints: s.g.Len(), Columns: len(s.colRep)}
	for _, l := range s.g.Links() {
		if l.Virtual {
			c.VirtualLinks++
		} else {
			c.Links++
		}
	}
	for gid := 0; gid < s.g.GroupCount(); gid++ {
		if len(s.g.GroupMembers(gid)) > 1 {
			c.RigidGroups++
		}
	}
	for _, lp := range s.forest.Loops {
		c.Loops = append(c.Loops, s.ids(lp.Joints))
	}
	for col, p := range s.pos {
		if p < 0 {
			c.GaugeJoints = append(c.GaugeJoints, s.g.ID(s.colRep[col]))
		}
	}
	for i, in := range s.forest.InComponent {
		if !in {
			c.Detached = append(c.Detached, s.g.ID(i))
		}
	}
	return c
}

// ids maps joint indices to ids.
func (s *system) ids(idx []int) []int {
	out := make([]int, len(idx))
	for k, i := range idx {
		out[k] = s.g.ID(i)
	}
	return out
}

func finiteJoint(j screw.Joint) bool {
	return j.Screw.IsFinite() &&
		screw.FromParts(j.Axis, j.Position).IsFinite()
}
