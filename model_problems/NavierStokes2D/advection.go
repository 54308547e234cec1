package NavierStokes2D

import (
	"fmt"

	"github.com/notargets/gomacflow/utils"
)

/*
	First order upwind convection:

		U' = U - delt * (vx * dU/dx + vy * dU/dy)

	Each axis picks its one sided difference from the sign of the local
	velocity component along that axis: a non-negative component differences
	against the neighbour behind (backward), a negative one against the
	neighbour ahead (forward).
*/
type UpwindCase uint8

const (
	UpwindBackwardBackward UpwindCase = iota // vx >= 0, vy >= 0
	UpwindBackwardForward                    // vx >= 0, vy < 0
	UpwindForwardBackward                    // vx < 0, vy >= 0
	UpwindForwardForward                     // vx < 0, vy < 0
)

func SelectUpwind(vx, vy float64) UpwindCase {
	switch {
	case vx >= 0 && vy >= 0:
		return UpwindBackwardBackward
	case vx >= 0:
		return UpwindBackwardForward
	case vy >= 0:
		return UpwindForwardBackward
	default:
		return UpwindForwardForward
	}
}

func (uc UpwindCase) String() string {
	switch uc {
	case UpwindBackwardBackward:
		return "Backward/Backward"
	case UpwindBackwardForward:
		return "Backward/Forward"
	case UpwindForwardBackward:
		return "Forward/Backward"
	case UpwindForwardForward:
		return "Forward/Forward"
	}
	return fmt.Sprintf("UpwindCase(%d)", uint8(uc))
}

func (uc UpwindCase) backwardX() bool { return uc == UpwindBackwardBackward || uc == UpwindBackwardForward }
func (uc UpwindCase) backwardY() bool { return uc == UpwindBackwardBackward || uc == UpwindForwardBackward }

// Differences returns the one sided derivatives of f at (i,j) for this case.
func (uc UpwindCase) Differences(f utils.Matrix, i, j int, dx, dy float64) (dfdx, dfdy float64) {
	var (
		_, nc = f.Dims()
		d     = f.DataP
		ind   = i*nc + j
	)
	if uc.backwardX() {
		dfdx = (d[ind] - d[ind-nc]) / dx
	} else {
		dfdx = (d[ind+nc] - d[ind]) / dx
	}
	if uc.backwardY() {
		dfdy = (d[ind] - d[ind-1]) / dy
	} else {
		dfdy = (d[ind+1] - d[ind]) / dy
	}
	return
}

type AdvectionSolver struct {
	DelT, DelX, DelY float64
	pmX, pmY         *utils.PartitionMap // Interior rows of Ux and Uy
}

func NewAdvectionSolver(nx, ny int, delt, delx, dely float64, parallelDegree int) (as *AdvectionSolver) {
	as = &AdvectionSolver{
		DelT: delt,
		DelX: delx,
		DelY: dely,
		pmX:  utils.NewPartitionMap(parallelDegree, nx),
		pmY:  utils.NewPartitionMap(parallelDegree, nx-1),
	}
	return
}

// AdvectX returns the convected Ux in a new array. The y velocity at a Ux
// sample is the mean of the four surrounding Uy samples.
func (as *AdvectionSolver) AdvectX(ux, uy utils.Matrix) (uxNew utils.Matrix) {
	checkVelocityShapes(ux, uy)
	var (
		nr, nc = ux.Dims()
		_, ncY = uy.Dims()
		uxD    = ux.DataP
		uyD    = uy.DataP
	)
	uxNew = utils.NewMatrix(nr, nc)
	outD := uxNew.DataP
	sweepRows(as.pmX, func(i int) {
		for j := 1; j < nc-1; j++ {
			ind := i*nc + j
			vx := uxD[ind]
			vy := (uyD[i*ncY+j] + uyD[(i-1)*ncY+j] + uyD[i*ncY+j+1] + uyD[(i-1)*ncY+j+1]) / 4
			dudx, dudy := SelectUpwind(vx, vy).Differences(ux, i, j, as.DelX, as.DelY)
			outD[ind] = uxD[ind] - as.DelT*(vx*dudx+vy*dudy)
		}
	})
	return
}

// AdvectY returns the convected Uy in a new array. The stage order is fixed:
// ux must be the output of AdvectX for this step, so the x velocity averaged
// onto Uy samples already carries this step's convection of Ux.
func (as *AdvectionSolver) AdvectY(ux, uy utils.Matrix) (uyNew utils.Matrix) {
	checkVelocityShapes(ux, uy)
	var (
		nr, nc = uy.Dims()
		_, ncX = ux.Dims()
		uxD    = ux.DataP
		uyD    = uy.DataP
	)
	uyNew = utils.NewMatrix(nr, nc)
	outD := uyNew.DataP
	sweepRows(as.pmY, func(i int) {
		for j := 1; j < nc-1; j++ {
			ind := i*nc + j
			vx := (uxD[i*ncX+j] + uxD[i*ncX+j-1] + uxD[(i+1)*ncX+j] + uxD[(i+1)*ncX+j-1]) / 4
			vy := uyD[ind]
			dvdx, dvdy := SelectUpwind(vx, vy).Differences(uy, i, j, as.DelX, as.DelY)
			outD[ind] = uyD[ind] - as.DelT*(vx*dvdx+vy*dvdy)
		}
	})
	return
}

// sweepRows visits interior rows 1..MaxIndex of a field, one partition per
// goroutine. Stages using it read only their input arrays, so the result does
// not depend on the parallel degree.
func sweepRows(pm *utils.PartitionMap, f func(i int)) {
	pm.Execute(func(_, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			f(k + 1)
		}
	})
}
