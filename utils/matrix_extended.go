package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a row major 2D field of float64 backed by a gonum Dense. DataP
// aliases the Dense storage so stencil loops can index it directly with
// ind = i*nc + j.
type Matrix struct {
	M        *mat.Dense
	DataP    []float64
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if nr <= 0 || nc <= 0 {
		err := fmt.Errorf("invalid matrix dimensions: NewMatrix nr,nc = %v,%v", nr, nc)
		panic(err)
	}
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		M:     m,
		DataP: m.RawMatrix().Data,
		name:  "unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }
func (m Matrix) Data() []float64     { return m.DataP }

// Chainable methods (extended)
func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, m.DataP)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	var (
		nr, nc = m.Dims()
	)
	i, j = lim(i, nr), lim(j, nc)
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetRange(i1, i2, j1, j2 int, val float64) Matrix { // Changes receiver
	var (
		nr, nc = m.Dims()
		data   = m.DataP
	)
	m.checkWritable()
	i1, i2, j1, j2 = limRange(i1, i2, j1, j2, nr, nc)
	for i := i1; i < i2; i++ {
		for j := j1; j < j2; j++ {
			ind := i*nc + j
			data[ind] = val
		}
	}
	return m
}

func (m Matrix) Zero() Matrix { // Changes receiver
	m.checkWritable()
	for i := range m.DataP {
		m.DataP[i] = 0
	}
	return m
}

func (m Matrix) CopyFrom(A Matrix) Matrix { // Changes receiver
	m.checkWritable()
	m.CheckShape(A.Dims())
	copy(m.DataP, A.DataP)
	return m
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	m.checkWritable()
	floats.Scale(a, m.DataP)
	return m
}

func (m Matrix) MaxAbs() (max float64) {
	return floats.Norm(m.DataP, math.Inf(1))
}

// Equal reports whether both matrices have the same shape and identical
// values. NaNs compare unequal.
func (m Matrix) Equal(A Matrix) bool {
	nr, nc := m.Dims()
	ar, ac := A.Dims()
	if nr != ar || nc != ac {
		return false
	}
	return floats.Equal(m.DataP, A.DataP)
}

// CheckShape panics when the receiver is not nr x nc.
func (m Matrix) CheckShape(nr, nc int) {
	mr, mc := m.Dims()
	if mr != nr || mc != nc {
		err := fmt.Errorf("shape mismatch for matrix \"%v\": have %dx%d, want %dx%d",
			m.name, mr, mc, nr, nc)
		panic(err)
	}
}

// Rows returns a copy of the matrix as a slice of rows.
func (m Matrix) Rows() (R [][]float64) {
	var (
		nr, nc = m.Dims()
	)
	R = make([][]float64, nr)
	for i := 0; i < nr; i++ {
		R[i] = make([]float64, nc)
		copy(R[i], m.DataP[i*nc:(i+1)*nc])
	}
	return
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func lim(i, imax int) int {
	if i < 0 {
		return imax + i // Support indexing from end, -1 is imax
	}
	return i
}

func limLoop(ib, ie, imax int) (ibeg, iend int) {
	if ib < 0 {
		ibeg = imax + ib
	} else {
		ibeg = ib
	}
	if ie < 0 {
		iend = imax + ie + 1 // Support indexing from end, -1 is imax
	} else {
		iend = ie + 1
	}
	return
}

func limRange(i1, i2, j1, j2, nr, nc int) (ii1, ii2, jj1, jj2 int) {
	ii1, ii2 = limLoop(i1, i2, nr)
	jj1, jj2 = limLoop(j1, j2, nc)
	return ii1, ii2, jj1, jj2
}
