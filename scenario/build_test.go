package scenario

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/markusbuchholz/rvo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuild2D(t *testing.T) {
	s, err := Build2D(DefaultConf2D(), nil)
	require.NoError(t, err)
	assert.Equal(t, 100, s.Steps)
	assert.Equal(t, rvo.Vec2{X: 0, Y: 0}, s.Agents[0].Pos)
	assert.Equal(t, rvo.Vec2{X: 100, Y: 100}, s.Agents[0].Goal)
	assert.Equal(t, "robot 2", s.Agents[1].Name)

	require.NoError(t, s.Step())
	assert.InDelta(t, 1.414, s.Agents[0].Pos.X, 1e-3)
	assert.InDelta(t, 98.586, s.Agents[1].Pos.Y, 1e-3)
}

func TestBuild3D(t *testing.T) {
	s, err := Build3D(DefaultConf3D(), nil)
	require.NoError(t, err)

	// planar avoidance never moves a robot along z
	for !s.Done() {
		before := [2]rvo.Vec3{s.Agents[0].Pos, s.Agents[1].Pos}
		require.NoError(t, s.Step())
		for i, a := range s.Agents {
			if a.Last == rvo.Avoidance {
				assert.Equal(t, before[i].Z, a.Pos.Z)
			}
		}
	}
	for _, a := range s.Agents {
		assert.Len(t, a.Path, 101)
		assert.Greater(t, a.Stats.Avoidance, 0)
	}
}

func TestBuild3DCrossAvoidance(t *testing.T) {
	conf, err := ParseConfig(filepath.Join("testdata", "vertical.yaml"), DefaultConf3D())
	require.NoError(t, err)
	s, err := Build3D(conf, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run())
	for _, a := range s.Agents {
		assert.Zero(t, a.Stats.Degenerate)
		assert.Greater(t, a.Stats.Avoidance, 0)
	}

	// the planar rule gets stuck on the same scenario
	conf.Avoidance = "planar"
	s, err = Build3D(conf, nil)
	require.NoError(t, err)
	require.NoError(t, s.Run())
	assert.Greater(t, s.Agents[0].Stats.Degenerate, 0)
}

func TestBuildPolicy(t *testing.T) {
	conf := DefaultConf2D()
	conf.Degenerate = "propagate"
	conf.Agents[1].Start = []float64{0, 0}
	s, err := Build2D(conf, nil)
	require.NoError(t, err)
	require.NoError(t, s.Step())
	assert.True(t, math.IsNaN(s.Agents[0].Pos.X))

	conf.Degenerate = "fail"
	s, err = Build2D(conf, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Run(), rvo.ErrDegenerate)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build2D(DefaultConf3D(), nil)
	assert.Error(t, err)
	_, err = Build3D(DefaultConf2D(), nil)
	assert.Error(t, err)

	conf := DefaultConf2D()
	conf.Agents[0].Speed = 0
	_, err = Build2D(conf, nil)
	assert.Error(t, err)
}

func TestBuildDefaultNames(t *testing.T) {
	conf := DefaultConf2D()
	conf.Agents[0].Name = ""
	s, err := Build2D(conf, nil)
	require.NoError(t, err)
	assert.Equal(t, "robot 1", s.Agents[0].Name)
}

func TestReport(t *testing.T) {
	s, err := Build2D(DefaultConf2D(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Run())

	core, logs := observer.New(zapcore.InfoLevel)
	Report(zap.New(core), s)
	summaries := logs.FilterMessage("agent summary").All()
	require.Len(t, summaries, 2)
	fields := summaries[0].ContextMap()
	assert.Equal(t, "robot 1", fields["agent"])
	assert.EqualValues(t, 101, fields["path_len"])

	done := logs.FilterMessage("simulation done").All()
	require.Len(t, done, 1)
	assert.Len(t, done[0].ContextMap()["fingerprint"], 16)
}
