package types

import (
	"fmt"
	"strings"
)

type BCFLAG uint8

const (
	BC_None BCFLAG = iota // Interior sample, free to evolve
	BC_Wall               // No-slip wall layer, forced to zero
	BC_In                 // Fixed velocity inlet (fan)
)

var BCNameMap = map[string]BCFLAG{
	"none":   BC_None,
	"wall":   BC_Wall,
	"in":     BC_In,
	"inflow": BC_In,
	"inlet":  BC_In,
	"fan":    BC_In,
}

func (bc BCFLAG) String() string {
	switch bc {
	case BC_None:
		return "BC_None"
	case BC_Wall:
		return "BC_Wall"
	case BC_In:
		return "BC_In"
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bc))
}

func NewBCFLAG(name string) (bc BCFLAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown boundary condition name: \"%s\"", name)
	}
	return
}

// BCMap holds one flag per sample of an Nx x Ny staggered velocity field,
// stored row major.
type BCMap struct {
	Nx, Ny int
	Flags  []BCFLAG
}

func NewBCMap(nx, ny int) (bm BCMap) {
	bm = BCMap{
		Nx:    nx,
		Ny:    ny,
		Flags: make([]BCFLAG, nx*ny),
	}
	return
}

func (bm BCMap) Get(i, j int) BCFLAG { return bm.Flags[i*bm.Ny+j] }

func (bm BCMap) Set(i, j int, bc BCFLAG) { bm.Flags[i*bm.Ny+j] = bc }

func (bm BCMap) Count(bc BCFLAG) (count int) {
	for _, f := range bm.Flags {
		if f == bc {
			count++
		}
	}
	return
}
