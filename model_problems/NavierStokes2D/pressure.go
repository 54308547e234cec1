package NavierStokes2D

import (
	"fmt"
	"math"

	"github.com/notargets/gomacflow/utils"
)

type SORResult struct {
	Iterations int     // Sweeps performed
	Error      float64 // Largest |P_old - P_unrelaxed| of the last sweep, floored at Eps
	Converged  bool
}

func (sr SORResult) String() string {
	return fmt.Sprintf("iterations = %d, error = %8.3e, converged = %v", sr.Iterations, sr.Error, sr.Converged)
}

// PressureSolver computes the divergence of the provisional velocity and
// solves Laplacian(P) = Div by lexicographic SOR. Border cells of P are never
// updated and act as Dirichlet values for the interior.
type PressureSolver struct {
	DelT, DelX, DelY float64
	Eps, Omega       float64
	MaxIterations    int
}

func NewPressureSolver(delt, delx, dely, eps, omega float64, maxIterations int) (ps *PressureSolver) {
	ps = &PressureSolver{
		DelT:          delt,
		DelX:          delx,
		DelY:          dely,
		Eps:           eps,
		Omega:         omega,
		MaxIterations: maxIterations,
	}
	return
}

// ComputeDivergence fills D with the divergence of (ux, uy) divided by delt
// at every pressure cell.
func (ps *PressureSolver) ComputeDivergence(ux, uy, D utils.Matrix) {
	var (
		nx, ny = checkVelocityShapes(ux, uy)
		_, ncX = ux.Dims()
		_, ncY = uy.Dims()
		uxD    = ux.DataP
		uyD    = uy.DataP
		dD     = D.DataP
	)
	D.CheckShape(PShape(nx, ny))
	nrP, ncP := D.Dims()
	for x := 0; x < nrP; x++ {
		for y := 0; y < ncP; y++ {
			dudx := (uxD[(x+2)*ncX+y+1] - uxD[(x+1)*ncX+y+1]) / ps.DelX
			dvdy := (uyD[(x+1)*ncY+y+2] - uyD[(x+1)*ncY+y+1]) / ps.DelY
			dD[x*ncP+y] = (dudx + dvdy) / ps.DelT
		}
	}
}

// Sweep performs one Gauss-Seidel pass with over-relaxation over the interior
// of P and returns the largest unrelaxed change of the pass, floored at Eps.
func (ps *PressureSolver) Sweep(P, D utils.Matrix) (maxErr float64) {
	var (
		nr, nc = P.Dims()
		pD     = P.DataP
		dD     = D.DataP
		dx2    = utils.POW(ps.DelX, 2)
		dy2    = utils.POW(ps.DelY, 2)
		scale  = dx2 * dy2 * 0.5 / (dx2 + dy2)
		w      = ps.Omega
	)
	D.CheckShape(nr, nc)
	maxErr = ps.Eps
	for x := 1; x < nr-1; x++ {
		for y := 1; y < nc-1; y++ {
			ind := x*nc + y
			pCalc := ((pD[ind+nc]+pD[ind-nc])/dx2 + (pD[ind+1]+pD[ind-1])/dy2 - dD[ind]) * scale
			maxErr = math.Max(maxErr, math.Abs(pD[ind]-pCalc))
			pD[ind] = (1-w)*pD[ind] + w*pCalc
		}
	}
	return
}

// Solve recomputes D from the provisional velocity and sweeps P, starting
// from its current contents, until the sweep error reaches Eps or
// MaxIterations sweeps have been made.
func (ps *PressureSolver) Solve(ux, uy, D, P utils.Matrix) (sr SORResult) {
	ps.ComputeDivergence(ux, uy, D)
	sr.Error = math.Inf(1)
	for sr.Error > ps.Eps && sr.Iterations < ps.MaxIterations {
		sr.Error = ps.Sweep(P, D)
		sr.Iterations++
	}
	sr.Converged = sr.Error <= ps.Eps
	return
}
