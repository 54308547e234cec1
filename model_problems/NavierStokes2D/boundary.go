package NavierStokes2D

import (
	"fmt"

	"github.com/notargets/gomacflow/types"
	"github.com/notargets/gomacflow/utils"
)

// BoundaryEnforcer applies the no-slip walls and the fixed velocity inlet.
// Walls are the two outermost layers of Ux and Uy on each side; Inlet holds
// Ux indices that are pinned to V0 after the walls are cleared.
type BoundaryEnforcer struct {
	Nx, Ny int
	Inlet  [][2]int
	V0     float64
}

func NewBoundaryEnforcer(nx, ny int, inlet [][2]int, v0 float64) (be *BoundaryEnforcer, err error) {
	nr, nc := UxShape(nx, ny)
	for _, h := range inlet {
		if h[0] < 0 || h[0] >= nr || h[1] < 0 || h[1] >= nc {
			err = fmt.Errorf("%w: [%d, %d] is not inside %dx%d", ErrInletOutOfBounds, h[0], h[1], nr, nc)
			return
		}
	}
	be = &BoundaryEnforcer{
		Nx:    nx,
		Ny:    ny,
		Inlet: append([][2]int(nil), inlet...),
		V0:    v0,
	}
	return
}

// Enforce zeroes the wall layers of both fields and pins the inlet. Calling it
// repeatedly gives the same result as calling it once.
func (be *BoundaryEnforcer) Enforce(ux, uy utils.Matrix) {
	ux.CheckShape(UxShape(be.Nx, be.Ny))
	uy.CheckShape(UyShape(be.Nx, be.Ny))
	zeroWallLayers(ux)
	zeroWallLayers(uy)
	for _, h := range be.Inlet {
		ux.Set(h[0], h[1], be.V0)
	}
}

func zeroWallLayers(u utils.Matrix) {
	// Left/right walls, then floor/ceiling; ranges are inclusive, -1 is the last index
	u.SetRange(0, 1, 0, -1, 0)
	u.SetRange(-2, -1, 0, -1, 0)
	u.SetRange(0, -1, 0, 1, 0)
	u.SetRange(0, -1, -2, -1, 0)
}

// ApplyBodyForce adds a uniform acceleration to Uy. The following Enforce
// clears the wall layers again.
func (be *BoundaryEnforcer) ApplyBodyForce(uy utils.Matrix, gravity, delt float64) {
	if gravity == 0 {
		return
	}
	data := uy.Data()
	for i := range data {
		data[i] += gravity * delt
	}
}

// Flags classifies every Ux and Uy sample as wall, inlet or free.
func (be *BoundaryEnforcer) Flags() (uxFlags, uyFlags types.BCMap) {
	mark := func(nr, nc int) (bm types.BCMap) {
		bm = types.NewBCMap(nr, nc)
		for i := 0; i < nr; i++ {
			for j := 0; j < nc; j++ {
				if i < 2 || i > nr-3 || j < 2 || j > nc-3 {
					bm.Set(i, j, types.BC_Wall)
				}
			}
		}
		return
	}
	uxFlags = mark(UxShape(be.Nx, be.Ny))
	uyFlags = mark(UyShape(be.Nx, be.Ny))
	for _, h := range be.Inlet {
		uxFlags.Set(h[0], h[1], types.BC_In)
	}
	return
}
