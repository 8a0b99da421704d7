package mechfile

import (
	"errors"

	"github.com/katalvlaran/screwdof/mobility"
)

// Sentinel errors for mechanism files.
var (
	// ErrDecode indicates malformed YAML/JSON or an unknown field.
	ErrDecode = errors.New("mechfile: cannot decode mechanism")

	// ErrSchema indicates a well-formed document with invalid content.
	ErrSchema = errors.New("mechfile: invalid mechanism")
)

// Node is one joint as written in a mechanism file.
type Node struct {
	ID   int       `yaml:"id"`
	Type string    `yaml:"type"` // "R" or "P"
	Axis []float64 `yaml:"axis"`
	Pos  []float64 `yaml:"pos"`
}

// Settings holds the optional analysis settings of a file.
type Settings struct {
	// BaseNode and EENode default to 0 and len(nodes)−1, or to the
	// anchors of an extended manual path.
	BaseNode *int `yaml:"base_node,omitempty"`
	EENode   *int `yaml:"ee_node,omitempty"`

	// ManualPath is either base…ee or an extended path anchor, base…ee, anchor.
	ManualPath []int `yaml:"manual_path,omitempty"`

	// CharLength overrides the mean link length when positive.
	CharLength float64 `yaml:"char_length,omitempty"`

	Tolerances mobility.Tolerances `yaml:"tolerances,omitempty"`
}

// File is the on-disk document.
type File struct {
	Name        string   `yaml:"name,omitempty"`
	Nodes       []Node   `yaml:"nodes"`
	Links       [][]int  `yaml:"links"`
	RigidBodies [][]int  `yaml:"rigid_bodies,omitempty"`
	Settings    Settings `yaml:"settings,omitempty"`
}

// Loaded is a decoded file turned into analyzer input.
type Loaded struct {
	// Name is File.Name, or the file name without extension for Load.
	Name string

	Mechanism  mobility.Mechanism
	Tolerances mobility.Tolerances

	// ExtendedPath is the manual path as written, anchors included.
	ExtendedPath []int
}
