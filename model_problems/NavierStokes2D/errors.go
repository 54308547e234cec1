package NavierStokes2D

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid solver configuration")
	ErrInletOutOfBounds = errors.New("inlet coordinate outside the Ux field")
	ErrNonFinite        = errors.New("non-finite value in velocity or pressure field")
)
