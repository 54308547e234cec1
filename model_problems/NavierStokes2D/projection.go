package NavierStokes2D

import (
	"github.com/notargets/gomacflow/utils"
)

// ProjectionCorrector subtracts the pressure gradient from the provisional
// velocity. Each Ux/Uy face between two pressure cells gets
// -(P[right]-P[left])*delt/dx, which cancels the divergence that P was solved
// for at every interior pressure cell.
type ProjectionCorrector struct {
	DelT, DelX, DelY float64
}

func NewProjectionCorrector(delt, delx, dely float64) *ProjectionCorrector {
	return &ProjectionCorrector{DelT: delt, DelX: delx, DelY: dely}
}

func (pc *ProjectionCorrector) Correct(ux, uy, P utils.Matrix) {
	var (
		nx, ny   = checkVelocityShapes(ux, uy)
		_, ncX   = ux.Dims()
		_, ncY   = uy.Dims()
		uxD, uyD = ux.DataP, uy.DataP
		pD       = P.DataP
		cx       = pc.DelT / pc.DelX
		cy       = pc.DelT / pc.DelY
	)
	P.CheckShape(PShape(nx, ny))
	nrP, ncP := P.Dims()
	for x := 0; x < nrP-1; x++ {
		for y := 0; y < ncP-1; y++ {
			ind := x*ncP + y
			uxD[(x+2)*ncX+y+1] -= (pD[ind+ncP] - pD[ind]) * cx
			uyD[(x+1)*ncY+y+2] -= (pD[ind+1] - pD[ind]) * cy
		}
	}
}
