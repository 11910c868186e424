package rvo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// crossing returns the two-robot crossing scenario: opposite corners
// of a 100x100 square, speed 2, radius 15.
func crossing(t *testing.T, steps int, log *zap.Logger) *Simulation[Vec2] {
	t.Helper()
	a, err := NewAgent("robot 1", Vec2{0, 0}, Vec2{100, 100}, 2, 15)
	require.NoError(t, err)
	b, err := NewAgent("robot 2", Vec2{100, 100}, Vec2{0, 0}, 2, 15)
	require.NoError(t, err)
	return NewSimulation(a, b, steps, log)
}

func TestFirstStep(t *testing.T) {
	s := crossing(t, 1, nil)
	require.NoError(t, s.Step())

	a, b := s.Agents[0], s.Agents[1]
	assert.InDelta(t, math.Sqrt2, a.Pos.X, 1e-9)
	assert.InDelta(t, math.Sqrt2, a.Pos.Y, 1e-9)
	assert.InDelta(t, 100-math.Sqrt2, b.Pos.X, 1e-9)
	assert.InDelta(t, 100-math.Sqrt2, b.Pos.Y, 1e-9)
	assert.Equal(t, GoalSeeking, a.Last)
	assert.Equal(t, GoalSeeking, b.Last)
	assert.True(t, s.Done())
}

func TestSecondAgentSeesUpdatedFirst(t *testing.T) {
	// b starts just outside the threshold of a's start position but a's
	// first move brings it inside
	a, err := NewAgent("a", Vec2{0, 0}, Vec2{100, 0}, 2, 15)
	require.NoError(t, err)
	b, err := NewAgent("b", Vec2{31, 0}, Vec2{200, 0}, 2, 15)
	require.NoError(t, err)
	s := NewSimulation(a, b, 1, nil)
	require.NoError(t, s.Step())

	assert.Equal(t, GoalSeeking, a.Last)
	assert.Equal(t, Avoidance, b.Last)
	assert.InDelta(t, 31, b.Pos.X, 1e-12)
	assert.InDelta(t, -2, b.Pos.Y, 1e-12)
}

func TestRunPathGrowth(t *testing.T) {
	s := crossing(t, 100, nil)
	require.NoError(t, s.Run())

	assert.Equal(t, 100, s.StepCount())
	paths := s.Paths()
	for i, p := range paths {
		assert.Len(t, p, 101)
		assert.Equal(t, s.Agents[i].Path[0], p[0])
	}
	assert.Equal(t, Vec2{0, 0}, paths[0][0])
	assert.Equal(t, Vec2{100, 100}, paths[1][0])

	for _, a := range s.Agents {
		for k := 1; k < len(a.Path); k++ {
			assert.InDelta(t, 2, a.Path[k].Sub(a.Path[k-1]).Norm(), 1e-9)
		}
		assert.Equal(t, 100, a.Stats.GoalSeeking+a.Stats.Avoidance)
		assert.Greater(t, a.Stats.Avoidance, 0, "robots must meet")
		assert.Zero(t, a.Stats.Degenerate)
	}

	// Done simulations do not move anymore
	require.NoError(t, s.Run())
	assert.Len(t, s.Agents[0].Path, 101)
}

func TestRunZeroSteps(t *testing.T) {
	s := crossing(t, 0, nil)
	require.NoError(t, s.Run())
	assert.Len(t, s.Agents[0].Path, 1)
	assert.Len(t, s.Agents[1].Path, 1)
}

func TestDeterminism(t *testing.T) {
	s1 := crossing(t, 100, nil)
	s2 := crossing(t, 100, nil)
	require.NoError(t, s1.Run())
	require.NoError(t, s2.Run())
	assert.Equal(t, s1.Paths(), s2.Paths())
	assert.Equal(t, s1.Fingerprint(), s2.Fingerprint())

	s3 := crossing(t, 99, nil)
	require.NoError(t, s3.Run())
	assert.NotEqual(t, s1.Fingerprint(), s3.Fingerprint())
}

func TestFingerprintBits(t *testing.T) {
	p := []Vec2{{0, 0}}
	q := []Vec2{{math.Copysign(0, -1), 0}}
	assert.NotEqual(t, Fingerprint(p), Fingerprint(q))
	assert.NotEqual(t, Fingerprint(p, p), Fingerprint(append(p, p...)))
}

func TestRunStopsOnError(t *testing.T) {
	a, err := NewAgent("a", Vec2{5, 5}, Vec2{100, 100}, 2, 15)
	require.NoError(t, err)
	b, err := NewAgent("b", Vec2{5, 5}, Vec2{0, 0}, 2, 15)
	require.NoError(t, err)
	a.Degenerate, b.Degenerate = Fail, Fail

	core, logs := observer.New(zapcore.DebugLevel)
	s := NewSimulation(a, b, 10, zap.New(core))
	err = s.Run()
	assert.ErrorIs(t, err, ErrDegenerate)
	assert.Equal(t, 0, s.StepCount())
	assert.Len(t, b.Path, 1)
	assert.Equal(t, 1, logs.FilterMessage("step failed").Len())
}

func TestStepLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := crossing(t, 100, zap.New(core))
	require.NoError(t, s.Run())

	changes := logs.FilterMessage("branch change")
	// the first step of each agent is a change from none
	assert.GreaterOrEqual(t, changes.Len(), 4)
	first := changes.All()[0].ContextMap()
	assert.Equal(t, "robot 1", first["agent"])
	assert.Equal(t, "none", first["from"])
	assert.Equal(t, "goal", first["to"])
	assert.Zero(t, logs.FilterMessage("zero-length direction").Len())
}

func TestStepLogsDegenerate(t *testing.T) {
	a, err := NewAgent("a", Vec3{}, Vec3{0, 0, 100}, 2, 15)
	require.NoError(t, err)
	b, err := NewAgent("b", Vec3{}, Vec3{0, 0, -100}, 2, 15)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	s := NewSimulation(a, b, 3, zap.New(core))
	require.NoError(t, s.Run())
	assert.Equal(t, 6, logs.FilterMessage("zero-length direction").Len())
	assert.Equal(t, []Vec3{{}, {}, {}, {}}, a.Path)
}
