package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) NNZ() int            { return m.M.NNZ() }

// MulVec returns A*x for a dense x. The length of x must match the column
// dimension.
func (m CSR) MulVec(x []float64) (y []float64) {
	var (
		nr, nc = m.Dims()
	)
	if len(x) != nc {
		err := fmt.Errorf("dimension mismatch in CSR.MulVec: ncols = %d, len(x) = %d", nc, len(x))
		panic(err)
	}
	// MulVecTo accumulates into its destination
	y = make([]float64, nr)
	m.M.MulVecTo(y, false, x)
	return
}
