package NavierStokes2D

import (
	"github.com/notargets/gomacflow/utils"
)

/*
	Explicit viscous update, 5 point Laplacian on the interior samples:

		U' = U + delt * mu/rho * (d2U/dx2 + d2U/dy2)

	Stable only while DiffusionNumber <= 0.5, which is left to the caller.
*/
type DiffusionSolver struct {
	DelT, DelX, DelY float64
	Mu, Rho          float64
	pmX, pmY         *utils.PartitionMap
}

func NewDiffusionSolver(nx, ny int, delt, delx, dely, mu, rho float64, parallelDegree int) (ds *DiffusionSolver) {
	ds = &DiffusionSolver{
		DelT: delt,
		DelX: delx,
		DelY: dely,
		Mu:   mu,
		Rho:  rho,
		pmX:  utils.NewPartitionMap(parallelDegree, nx),
		pmY:  utils.NewPartitionMap(parallelDegree, nx-1),
	}
	return
}

func DiffusionNumber(delt, delx, dely, mu, rho float64) float64 {
	return delt * mu / rho * (1/utils.POW(delx, 2) + 1/utils.POW(dely, 2))
}

func (ds *DiffusionSolver) Diffuse(ux, uy utils.Matrix) (uxNew, uyNew utils.Matrix) {
	checkVelocityShapes(ux, uy)
	uxNew = ds.laplacianUpdate(ux, ds.pmX)
	uyNew = ds.laplacianUpdate(uy, ds.pmY)
	return
}

func (ds *DiffusionSolver) laplacianUpdate(u utils.Matrix, pm *utils.PartitionMap) (uNew utils.Matrix) {
	var (
		nr, nc = u.Dims()
		d      = u.DataP
		dx2    = utils.POW(ds.DelX, 2)
		dy2    = utils.POW(ds.DelY, 2)
		nu     = ds.DelT * ds.Mu / ds.Rho
	)
	uNew = utils.NewMatrix(nr, nc)
	outD := uNew.DataP
	sweepRows(pm, func(i int) {
		for j := 1; j < nc-1; j++ {
			ind := i*nc + j
			lap := (d[ind+nc]-2*d[ind]+d[ind-nc])/dx2 + (d[ind+1]-2*d[ind]+d[ind-1])/dy2
			outD[ind] = d[ind] + lap*nu
		}
	})
	return
}
