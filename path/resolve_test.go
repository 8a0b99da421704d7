package path_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/screwdof/path"
	"github.com/katalvlaran/screwdof/topology"
)

// square is the four-bar graph 0–1–2–3–0.
func square(t *testing.T) *topology.Graph {
	t.Helper()
	g, err := topology.New([]int{0, 1, 2, 3}, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, nil)
	require.NoError(t, err)
	return g
}

// TestResolve_Unique returns the single shortest path between neighbors.
func TestResolve_Unique(t *testing.T) {
	res, err := path.Resolve(square(t), 0, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, res.Path)
	assert.Len(t, res.Candidates, 1)
	assert.False(t, res.Manual)
}

// TestResolve_AllShortest enumerates both sides of the square.
func TestResolve_AllShortest(t *testing.T) {
	res, err := path.Resolve(square(t), 0, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, res.Path)
	assert.Equal(t, [][]int{{0, 1, 2}, {0, 3, 2}}, res.Candidates)

	amb := res.Ambiguous(1)
	assert.ErrorIs(t, amb, path.ErrAmbiguous)
	var ae *path.AmbiguousError
	require.True(t, errors.As(amb, &ae))
	assert.Equal(t, [][]int{{0, 1, 2}, {0, 3, 2}}, ae.Candidates)
}

// TestResolve_ThroughRigidGroup crosses a group without a real link.
func TestResolve_ThroughRigidGroup(t *testing.T) {
	// 10–11 linked, 11 and 13 welded (virtual chain 11–12–13), 13–14 linked
	g, err := topology.New([]int{10, 11, 12, 13, 14},
		[][2]int{{10, 11}, {13, 14}}, [][]int{{11, 12, 13}})
	require.NoError(t, err)

	res, err := path.Resolve(g, 10, 14, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11, 13, 14}, res.Path)
}

// TestResolve_Unreachable reports disconnected endpoints.
func TestResolve_Unreachable(t *testing.T) {
	g, err := topology.New([]int{0, 1, 2}, [][2]int{{0, 1}}, nil)
	require.NoError(t, err)

	_, err = path.Resolve(g, 0, 2, nil)
	assert.ErrorIs(t, err, path.ErrUnreachable)

	_, err = path.Resolve(g, 0, 7, nil)
	assert.ErrorIs(t, err, path.ErrUnknownJoint)
}

// TestResolve_Manual validates caller-supplied paths.
func TestResolve_Manual(t *testing.T) {
	g := square(t)

	res, err := path.Resolve(g, 0, 2, []int{0, 3, 2})
	require.NoError(t, err)
	assert.True(t, res.Manual)
	assert.Equal(t, []int{0, 3, 2}, res.Path)
	assert.Equal(t, [][]int{{0, 3, 2}}, res.Candidates)

	cases := []struct {
		name string
		path []int
		want error
	}{
		{"too short", []int{0}, path.ErrTooShort},
		{"wrong start", []int{1, 2}, path.ErrEndpoints},
		{"wrong end", []int{0, 1}, path.ErrEndpoints},
		{"unknown", []int{0, 9, 2}, path.ErrUnknownJoint},
		{"repeated", []int{0, 1, 0, 1, 2}, path.ErrRepeatedJoint},
		{"not adjacent", []int{0, 2}, path.ErrNotAdjacent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := path.Resolve(g, 0, 2, tc.path)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestResolve_CandidateCap stops enumerating at MaxCandidates.
func TestResolve_CandidateCap(t *testing.T) {
	// ladder of 7 diamonds: 2^7 = 128 shortest paths
	ids := []int{0}
	var links [][2]int
	prev := 0
	next := 1
	for k := 0; k < 7; k++ {
		a, b, c := next, next+1, next+2
		ids = append(ids, a, b, c)
		links = append(links, [2]int{prev, a}, [2]int{prev, b}, [2]int{a, c}, [2]int{b, c})
		prev = c
		next += 3
	}
	g, err := topology.New(ids, links, nil)
	require.NoError(t, err)

	res, err := path.Resolve(g, 0, prev, nil)
	require.NoError(t, err)
	assert.Len(t, res.Candidates, path.MaxCandidates)
	for _, c := range res.Candidates {
		assert.Len(t, c, 15)
	}
}
