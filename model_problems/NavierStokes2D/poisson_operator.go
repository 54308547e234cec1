package NavierStokes2D

import (
	"math"

	"github.com/notargets/gomacflow/utils"
)

// PoissonOperator is the assembled 5 point Laplacian over the pressure grid.
// Rows for border cells are empty, matching the fixed border values used by
// the SOR sweep, so A*P - D is the residual of the interior equations.
type PoissonOperator struct {
	Nx, Ny     int // Pressure grid dimensions
	DelX, DelY float64
	A          utils.CSR
}

func NewPoissonOperator(nxp, nyp int, delx, dely float64) (po *PoissonOperator) {
	var (
		N   = nxp * nyp
		A   = utils.NewDOK(N, N)
		dx2 = utils.POW(delx, 2)
		dy2 = utils.POW(dely, 2)
	)
	for x := 1; x < nxp-1; x++ {
		for y := 1; y < nyp-1; y++ {
			r := x*nyp + y
			A.Set(r, r, -2/dx2-2/dy2)
			A.Set(r, r+nyp, 1/dx2)
			A.Set(r, r-nyp, 1/dx2)
			A.Set(r, r+1, 1/dy2)
			A.Set(r, r-1, 1/dy2)
		}
	}
	A.SetReadOnly("Poisson")
	po = &PoissonOperator{
		Nx:   nxp,
		Ny:   nyp,
		DelX: delx,
		DelY: dely,
		A:    A.ToCSR(),
	}
	return
}

// Residual returns max |Laplacian(P) - D| over the interior pressure cells.
func (po *PoissonOperator) Residual(P, D utils.Matrix) (maxRes float64) {
	P.CheckShape(po.Nx, po.Ny)
	D.CheckShape(po.Nx, po.Ny)
	lapP := po.A.MulVec(P.DataP)
	for x := 1; x < po.Nx-1; x++ {
		for y := 1; y < po.Ny-1; y++ {
			r := x*po.Ny + y
			maxRes = math.Max(maxRes, math.Abs(lapP[r]-D.DataP[r]))
		}
	}
	return
}
