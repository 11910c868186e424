package scenario

import (
	"fmt"

	"github.com/markusbuchholz/rvo"
	"go.uber.org/zap"
)

// Build2D returns the 2D simulation described by conf.
func Build2D(conf *Config, log *zap.Logger) (*rvo.Simulation[rvo.Vec2], error) {
	if conf.Dim != 2 {
		return nil, fmt.Errorf("scenario: cannot build a 2D simulation from a %dD config", conf.Dim)
	}
	return build(conf, log, func(x []float64) rvo.Vec2 {
		return rvo.Vec2{X: x[0], Y: x[1]}
	}, nil)
}

// Build3D returns the 3D simulation described by conf.
func Build3D(conf *Config, log *zap.Logger) (*rvo.Simulation[rvo.Vec3], error) {
	if conf.Dim != 3 {
		return nil, fmt.Errorf("scenario: cannot build a 3D simulation from a %dD config", conf.Dim)
	}
	var avoid func(rvo.Vec3) rvo.Vec3
	if conf.Avoidance == "cross" {
		avoid = rvo.Vec3.CrossPerp
	}
	return build(conf, log, func(x []float64) rvo.Vec3 {
		return rvo.Vec3{X: x[0], Y: x[1], Z: x[2]}
	}, avoid)
}

// build validates conf and sets up both agents.
func build[V rvo.Vector[V]](conf *Config, log *zap.Logger, vec func([]float64) V, avoid func(V) V) (*rvo.Simulation[V], error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	policy, err := rvo.ParsePolicy(conf.Degenerate)
	if err != nil {
		return nil, err
	}

	var agents [2]*rvo.Agent[V]
	for i, c := range conf.Agents {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("robot %d", i+1)
		}
		a, err := rvo.NewAgent(name, vec(c.Start), vec(c.Goal), c.Speed, c.Radius)
		if err != nil {
			return nil, err
		}
		a.Avoid = avoid
		a.Degenerate = policy
		agents[i] = a
	}

	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.Int("dim", conf.Dim))
	log.Debug("simulation ready",
		zap.Int("steps", conf.Steps),
		zap.String("degenerate", conf.Degenerate),
		zap.String("avoidance", conf.Avoidance))
	return rvo.NewSimulation(agents[0], agents[1], conf.Steps, log), nil
}

// Report logs the final state of each agent and the fingerprint of the run.
func Report[V rvo.Vector[V]](log *zap.Logger, s *rvo.Simulation[V]) {
	for _, a := range s.Agents {
		log.Info("agent summary",
			zap.String("agent", a.Name),
			zap.Float64s("final", a.Pos.Coords()),
			zap.Float64("goal_distance", a.Goal.Sub(a.Pos).Norm()),
			zap.Int("goal_steps", a.Stats.GoalSeeking),
			zap.Int("avoid_steps", a.Stats.Avoidance),
			zap.Int("degenerate_steps", a.Stats.Degenerate),
			zap.Int("path_len", len(a.Path)))
	}
	log.Info("simulation done",
		zap.Int("steps", s.StepCount()),
		zap.String("fingerprint", fmt.Sprintf("%016x", s.Fingerprint())))
}
