package NavierStokes2D

import (
	"fmt"

	"github.com/notargets/gomacflow/utils"
)

/*
	Staggered (MAC) layout for an Nx x Ny cell room:

		Ux  (Nx+2) x (Ny+1)  x velocity on vertical faces
		Uy  (Nx+1) x (Ny+2)  y velocity on horizontal faces
		Div (Nx-1) x (Ny-1)  divergence / delt of the provisional velocity
		P   (Nx-1) x (Ny-1)  pressure, cell centred

	Pressure cell (x,y) is bounded by Ux[x+1][y+1] (left), Ux[x+2][y+1] (right),
	Uy[x+1][y+1] (bottom) and Uy[x+1][y+2] (top). The two outermost layers of Ux
	and Uy on every side are wall layers.
*/
const minCells = 4

type GridState struct {
	Nx, Ny int
	Ux, Uy utils.Matrix
	Div, P utils.Matrix
}

func UxShape(nx, ny int) (nr, nc int) { return nx + 2, ny + 1 }
func UyShape(nx, ny int) (nr, nc int) { return nx + 1, ny + 2 }
func PShape(nx, ny int) (nr, nc int)  { return nx - 1, ny - 1 }

func NewGridState(nx, ny int) (g *GridState, err error) {
	if nx < minCells || ny < minCells {
		err = fmt.Errorf("%w: grid must have at least %d cells per side, have %d x %d",
			ErrInvalidConfig, minCells, nx, ny)
		return
	}
	g = &GridState{
		Nx:  nx,
		Ny:  ny,
		Ux:  utils.NewMatrix(UxShape(nx, ny)),
		Uy:  utils.NewMatrix(UyShape(nx, ny)),
		Div: utils.NewMatrix(PShape(nx, ny)),
		P:   utils.NewMatrix(PShape(nx, ny)),
	}
	return
}

// CheckShapes panics if any field no longer matches the grid dimensions.
func (g *GridState) CheckShapes() {
	g.Ux.CheckShape(UxShape(g.Nx, g.Ny))
	g.Uy.CheckShape(UyShape(g.Nx, g.Ny))
	g.Div.CheckShape(PShape(g.Nx, g.Ny))
	g.P.CheckShape(PShape(g.Nx, g.Ny))
}

func (g *GridState) Zero() {
	g.Ux.Zero()
	g.Uy.Zero()
	g.Div.Zero()
	g.P.Zero()
}

// checkVelocityShapes fails fast when a stage is handed fields from a
// different grid.
func checkVelocityShapes(ux, uy utils.Matrix) (nx, ny int) {
	uxR, uxC := ux.Dims()
	nx, ny = uxR-2, uxC-1
	uyR, uyC := uy.Dims()
	if uyR != nx+1 || uyC != ny+2 {
		err := fmt.Errorf("staggered field mismatch: Ux is %dx%d, Uy is %dx%d, want Uy %dx%d",
			uxR, uxC, uyR, uyC, nx+1, ny+2)
		panic(err)
	}
	return
}
