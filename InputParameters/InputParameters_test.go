package InputParameters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomacflow/model_problems/NavierStokes2D"
)

func TestInputParametersNS2D(t *testing.T) {
	{ // Defaults reproduce the standard room
		ip := NewInputParametersNS2D()
		require.NoError(t, ip.Parse([]byte(`
Title: "Fan in the left wall"
Inlet: [[1, 3], [1, 4]]
`)))
		nx, ny, err := ip.GridCounts()
		require.NoError(t, err)
		assert.Equal(t, 42, nx)
		assert.Equal(t, 24, ny)
		cfg, err := ip.ToConfig()
		require.NoError(t, err)
		def := NavierStokes2D.DefaultConfig()
		assert.Equal(t, def, cfg)
		ip.Print()
	}
	{ // Explicit spacing and BC entries
		ip := NewInputParametersNS2D()
		require.NoError(t, ip.Parse([]byte(`
Title: Small Room
Lx: 0.6
Ly: 0.4
Dell: 0.1
DelY: 0.05
DelT: 0.001
Rho: 1.0
Mu: 0.
FinalTime: 0.01
V0: 2.5
Omega: 1.5
MaxIterations: 200
ParallelDegree: 4
Gravity: -9.8
Inlet: [[1, 2]]
BCs:
  Inflow: [[1, 3]]
  Fan: [[1, 4]]
  Wall: []
`)))
		assert.Equal(t, [][2]int{{1, 2}, {1, 4}, {1, 3}}, ip.Inlets())
		delx, dely := ip.Spacing()
		assert.Equal(t, 0.1, delx)
		assert.Equal(t, 0.05, dely)
		cfg, err := ip.ToConfig()
		require.NoError(t, err)
		assert.Equal(t, 6, cfg.Nx)
		assert.Equal(t, 8, cfg.Ny)
		assert.Equal(t, [][2]int{{1, 2}, {1, 4}, {1, 3}}, cfg.Inlet)
		assert.Equal(t, 2.5, cfg.V0)
		assert.Equal(t, 1.5, cfg.Omega)
		assert.Equal(t, 200, cfg.MaxIterations)
		assert.Equal(t, 4, cfg.ParallelDegree)
		assert.Equal(t, -9.8, cfg.Gravity)
		assert.Equal(t, 1e-8, cfg.Eps)
		ip.Print()
	}
	{ // Half cells round up
		ip := &InputParametersNS2D{Lx: 0.45, Ly: 0.55, Dell: 0.1}
		nx, ny, err := ip.GridCounts()
		require.NoError(t, err)
		assert.Equal(t, 5, nx)
		assert.Equal(t, 6, ny)
	}
	{ // Bad input
		ip := NewInputParametersNS2D()
		assert.Error(t, ip.Parse([]byte(`BCs: {Outflow: [[1, 1]]}`)))
		ip = NewInputParametersNS2D()
		assert.Error(t, ip.Parse([]byte(`BCs: {Wall: [[1, 1]]}`)))
		ip = NewInputParametersNS2D()
		assert.Error(t, ip.Parse([]byte(`Lx: [1`)))

		ip = &InputParametersNS2D{Lx: 1, Ly: 1}
		_, _, err := ip.GridCounts()
		assert.True(t, errors.Is(err, NavierStokes2D.ErrInvalidConfig))

		ip = NewInputParametersNS2D()
		require.NoError(t, ip.Parse([]byte(`Inlet: [[50, 3]]`)))
		_, err = ip.ToConfig()
		assert.Error(t, err)
		ip = NewInputParametersNS2D()
		require.NoError(t, ip.Parse([]byte(`Omega: 2.5`)))
		_, err = ip.ToConfig()
		assert.True(t, errors.Is(err, NavierStokes2D.ErrInvalidConfig))
	}
}
