// Package rvo simulates reciprocal collision avoidance between two point robots.
//
// Each robot heads straight to a fixed goal at constant speed.
// When the other robot gets closer than the sum of their radii,
// it deflects perpendicular to their relative position instead.
// The same rule is available in 2D (Vec2) and 3D (Vec3).
package rvo

import (
	"go.uber.org/zap"
)

// A Simulation advances a pair of agents for a fixed number of steps.
// Within a step the first agent moves before the second one decides,
// so the second agent always sees the first one's updated position.
type Simulation[V Vector[V]] struct {
	Agents [2]*Agent[V]
	Steps  int // total number of steps
	Log    *zap.Logger

	step int // number of steps done
}

// NewSimulation returns a simulation of a and b lasting steps steps.
// A nil logger discards all messages.
func NewSimulation[V Vector[V]](a, b *Agent[V], steps int, log *zap.Logger) *Simulation[V] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulation[V]{
		Agents: [2]*Agent[V]{a, b},
		Steps:  steps,
		Log:    log,
	}
}

// Step runs a single simulation step.
func (s *Simulation[V]) Step() error {
	for i, a := range s.Agents {
		prev := a.Last
		degen := a.Stats.Degenerate
		b, err := a.Advance(s.Agents[1-i])
		if err != nil {
			s.Log.Error("step failed", zap.Int("step", s.step), zap.String("agent", a.Name), zap.Error(err))
			return err
		}
		if a.Stats.Degenerate > degen {
			s.Log.Warn("zero-length direction",
				zap.Int("step", s.step),
				zap.String("agent", a.Name),
				zap.Stringer("branch", b),
				zap.Stringer("policy", a.Degenerate))
		}
		if b != prev {
			s.Log.Debug("branch change",
				zap.Int("step", s.step),
				zap.String("agent", a.Name),
				zap.Stringer("from", prev),
				zap.Stringer("to", b),
				zap.Float64s("pos", a.Pos.Coords()))
		}
	}
	s.step++
	return nil
}

// Done reports whether all steps have been run.
func (s *Simulation[V]) Done() bool {
	return s.step >= s.Steps
}

// StepCount returns the number of steps done so far.
func (s *Simulation[V]) StepCount() int {
	return s.step
}

// Run runs the remaining steps and stops at the first error.
func (s *Simulation[V]) Run() error {
	for !s.Done() {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Paths returns the recorded paths of both agents.
func (s *Simulation[V]) Paths() [2][]V {
	return [2][]V{s.Agents[0].Path, s.Agents[1].Path}
}

// Fingerprint hashes the paths of both agents.
func (s *Simulation[V]) Fingerprint() uint64 {
	return Fingerprint(s.Agents[0].Path, s.Agents[1].Path)
}
