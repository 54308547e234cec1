package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{ // Name parsing
		bc, err := NewBCFLAG(" Inflow ")
		require.NoError(t, err)
		assert.Equal(t, BC_In, bc)
		bc, err = NewBCFLAG("wall")
		require.NoError(t, err)
		assert.Equal(t, BC_Wall, bc)
		_, err = NewBCFLAG("outflow")
		assert.Error(t, err)
		assert.Equal(t, "BC_In", BC_In.String())
		assert.Equal(t, "BCFLAG(9)", BCFLAG(9).String())
	}
	{ // Row major flag map
		bm := NewBCMap(3, 2)
		bm.Set(2, 1, BC_In)
		bm.Set(0, 0, BC_Wall)
		bm.Set(0, 1, BC_Wall)
		assert.Equal(t, BC_In, bm.Get(2, 1))
		assert.Equal(t, BC_In, bm.Flags[5])
		assert.Equal(t, 2, bm.Count(BC_Wall))
		assert.Equal(t, 3, bm.Count(BC_None))
	}
}
