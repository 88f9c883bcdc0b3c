// Package effects simulates the decorative background animations: a
// drifting neural-node field and a self-solving Sudoku board. Each viewer
// gets its own simulation; the browser only draws the frames.
package effects

import (
	"math"
	"math/rand/v2"

	"github.com/folio-dev/folio/internal/config"
)

const (
	// LinkDistance is the maximum distance between two nodes joined by a
	// static edge.
	LinkDistance = 150.0
	// FrameMillis is the simulated time of one Step.
	FrameMillis = 16.0
	// PulseStep is added to each node's pulse phase per Step.
	PulseStep = 0.02
	// MaxScrollVelocity caps the scroll velocity a client can report.
	MaxScrollVelocity = 50.0
)

// NodeCount returns the number of nodes for an intensity level. Unknown
// levels use the low count.
func NodeCount(level config.Intensity) int {
	switch level {
	case config.IntensityHigh:
		return 20
	case config.IntensityMedium:
		return 15
	default:
		return 10
	}
}

// Node is one drifting point of the neural field.
type Node struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"-"`
	VY    float64 `json:"-"`
	Pulse float64 `json:"pulse"`
}

// Link is a transient glowing connection between two nodes.
type Link struct {
	From      int     `json:"from"`
	To        int     `json:"to"`
	Intensity float64 `json:"intensity"`
	Age       float64 `json:"-"`
	MaxAge    float64 `json:"-"`
}

// Progress is the fraction of the link's lifetime already elapsed, in [0,1].
func (l Link) Progress() float64 {
	if l.MaxAge <= 0 {
		return 1
	}
	return math.Min(l.Age/l.MaxAge, 1)
}

// Field is the neural-node simulation for one viewport.
type Field struct {
	Width  float64
	Height float64
	Nodes  []Node
	// Edges are the node pairs closer than LinkDistance when the field
	// was laid out. They do not change as nodes drift.
	Edges [][2]int
	Links []Link

	level  config.Intensity
	scroll float64
	rng    *rand.Rand
}

// NewField lays out a field of the given size.
func NewField(width, height float64, level config.Intensity, rng *rand.Rand) *Field {
	f := &Field{level: level, rng: rng}
	f.Resize(width, height)
	return f
}

// Resize lays the field out again for a new viewport. Links are dropped.
func (f *Field) Resize(width, height float64) {
	f.Width, f.Height = math.Max(width, 0), math.Max(height, 0)

	n := NodeCount(f.level)
	f.Nodes = make([]Node, n)
	for i := range f.Nodes {
		f.Nodes[i] = Node{
			X:     f.rng.Float64() * f.Width,
			Y:     f.rng.Float64() * f.Height,
			VX:    (f.rng.Float64() - 0.5) * 0.5,
			VY:    (f.rng.Float64() - 0.5) * 0.5,
			Pulse: f.rng.Float64() * math.Pi * 2,
		}
	}

	f.Edges = f.Edges[:0]
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := f.Nodes[i].X - f.Nodes[j].X
			dy := f.Nodes[i].Y - f.Nodes[j].Y
			if math.Hypot(dx, dy) < LinkDistance {
				f.Edges = append(f.Edges, [2]int{i, j})
			}
		}
	}
	f.Links = nil
}

// SetScroll records the viewer's scroll velocity, which drives how often
// links spawn.
func (f *Field) SetScroll(velocity float64) {
	f.scroll = math.Min(math.Abs(velocity), MaxScrollVelocity)
}

// Activity is the link spawn pressure in [0.3, 1].
func (f *Field) Activity() float64 {
	return math.Min(f.scroll*0.1+0.3, 1)
}

// Step advances the field by one frame.
func (f *Field) Step() {
	for i := range f.Nodes {
		n := &f.Nodes[i]
		nx, ny := n.X+n.VX, n.Y+n.VY
		if nx < 0 || nx > f.Width {
			n.VX = -n.VX
			nx = n.X
		}
		if ny < 0 || ny > f.Height {
			n.VY = -n.VY
			ny = n.Y
		}
		n.X, n.Y = nx, ny
		n.Pulse += PulseStep
	}

	live := f.Links[:0]
	for _, l := range f.Links {
		l.Age += FrameMillis
		if l.Progress() < 1 {
			live = append(live, l)
		}
	}
	f.Links = live

	if f.rng.Float64() < f.Activity()*0.02 {
		f.spawnLink()
	}
}

func (f *Field) spawnLink() {
	if len(f.Nodes) < 2 {
		return
	}
	from := f.rng.IntN(len(f.Nodes))
	to := f.rng.IntN(len(f.Nodes))
	if from == to {
		return
	}
	f.Links = append(f.Links, Link{
		From:      from,
		To:        to,
		Intensity: 0.8 + f.rng.Float64()*0.2,
		MaxAge:    3000 + f.rng.Float64()*2000,
	})
}
