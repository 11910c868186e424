package rvo

import (
	"errors"
	"fmt"
)

// ErrDegenerate is returned by Advance under the Fail policy when the
// direction of motion has zero length.
var ErrDegenerate = errors.New("rvo: zero-length direction")

// A Branch identifies which rule an agent followed during a step.
type Branch int8

const (
	NoBranch    Branch = iota - 1 // no step taken yet
	GoalSeeking                   // heading straight to the goal
	Avoidance                     // deflecting perpendicular to the other agent
)

func (b Branch) String() string {
	switch b {
	case GoalSeeking:
		return "goal"
	case Avoidance:
		return "avoid"
	default:
		return "none"
	}
}

// A DegeneratePolicy decides what happens when the direction of motion
// of an agent has zero length (coincident agents, agent sitting on its goal).
type DegeneratePolicy int

const (
	// Hold leaves the agent in place for this step.
	// The unchanged position is still recorded in the path.
	Hold DegeneratePolicy = iota

	// Propagate divides by zero anyway. The resulting NaN or Inf
	// coordinates poison every later step.
	Propagate

	// Fail returns ErrDegenerate and leaves position and path untouched.
	Fail
)

var policyNames = [...]string{Hold: "hold", Propagate: "propagate", Fail: "fail"}

func (p DegeneratePolicy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("DegeneratePolicy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy returns the policy named s.
func ParsePolicy(s string) (DegeneratePolicy, error) {
	for i, name := range policyNames {
		if s == name {
			return DegeneratePolicy(i), nil
		}
	}
	return 0, fmt.Errorf("rvo: unknown degenerate policy %q", s)
}

// Stats counts the steps taken in each branch.
type Stats struct {
	GoalSeeking int // steps toward the goal
	Avoidance   int // steps away from the other agent
	Degenerate  int // steps with a zero-length direction
}

// An Agent is a point robot heading to a fixed goal at constant speed.
type Agent[V Vector[V]] struct {
	Name   string  // label used in logs and outputs
	Pos    V       // current position
	Goal   V       // fixed target
	Speed  float64 // distance covered per step
	Radius float64 // contribution to the collision threshold

	// Avoid returns the avoidance direction given the position of the
	// other agent relative to this one. Nil means V.Perp.
	Avoid func(rel V) V

	// Degenerate selects the behavior on zero-length directions.
	Degenerate DegeneratePolicy

	Path  []V    // all positions so far, starting with the initial one
	Last  Branch // branch taken during the last step
	Stats Stats
}

// NewAgent returns an agent at pos heading to goal.
// Speed and radius must be positive.
func NewAgent[V Vector[V]](name string, pos, goal V, speed, radius float64) (*Agent[V], error) {
	if !(speed > 0) {
		return nil, fmt.Errorf("rvo: agent %q: speed must be positive, got %g", name, speed)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("rvo: agent %q: radius must be positive, got %g", name, radius)
	}
	return &Agent[V]{
		Name:   name,
		Pos:    pos,
		Goal:   goal,
		Speed:  speed,
		Radius: radius,
		Path:   []V{pos},
		Last:   NoBranch,
	}, nil
}

// Advance moves the agent by one step given the current state of other.
// Closer than the sum of both radii, the agent moves along Avoid(rel);
// otherwise it moves straight to its goal. The other agent is not modified.
func (a *Agent[V]) Advance(other *Agent[V]) (Branch, error) {
	rel := other.Pos.Sub(a.Pos)

	var b Branch
	var dir V
	if rel.Norm() < a.Radius+other.Radius {
		b, dir = Avoidance, a.avoid(rel)
	} else {
		b, dir = GoalSeeking, a.Goal.Sub(a.Pos)
	}

	if dir.Norm() == 0 {
		a.Stats.Degenerate++
		switch a.Degenerate {
		case Fail:
			return b, fmt.Errorf("%w: agent %q in %s branch at %v", ErrDegenerate, a.Name, b, a.Pos.Coords())
		case Hold:
			a.record(b, a.Pos)
			return b, nil
		}
	}

	a.record(b, a.Pos.Add(dir.Unit().Scale(a.Speed)))
	return b, nil
}

func (a *Agent[V]) avoid(rel V) V {
	if a.Avoid == nil {
		return rel.Perp()
	}
	return a.Avoid(rel)
}

// record moves the agent to pos and bookkeeps the step.
func (a *Agent[V]) record(b Branch, pos V) {
	a.Pos = pos
	a.Path = append(a.Path, pos)
	a.Last = b
	switch b {
	case GoalSeeking:
		a.Stats.GoalSeeking++
	case Avoidance:
		a.Stats.Avoidance++
	}
}

// Trajectory returns a copy of path as rows of coordinates.
func Trajectory[V Vector[V]](path []V) [][]float64 {
	t := make([][]float64, len(path))
	for i, p := range path {
		t[i] = p.Coords()
	}
	return t
}
