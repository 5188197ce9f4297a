package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a row major dense matrix, DataP aliases the gonum storage
// so that kernels can index it as DataP[j*nc+i] directly
type Matrix struct {
	M     *mat.Dense
	DataP []float64
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n",
				nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		M:     m,
		DataP: m.RawMatrix().Data,
	}
	return
}

func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }

func (m Matrix) SetCol(j int, val float64) Matrix { // Changes receiver
	nr, _ := m.Dims()
	for i := 0; i < nr; i++ {
		m.M.Set(i, j, val)
	}
	return m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	nr, nc := m.Dims()
	R = NewMatrix(nr, nc)
	copy(R.DataP, m.DataP)
	return
}

// Hypot returns sqrt(m^2 + A^2) element-wise
func (m Matrix) Hypot(A Matrix) (R Matrix) { // Does not change receiver
	nr, nc := m.Dims()
	R = NewMatrix(nr, nc)
	for i, a := range m.DataP {
		b := A.DataP[i]
		R.DataP[i] = math.Sqrt(a*a + b*b)
	}
	return
}

func (m Matrix) Min() (min float64) {
	min = m.DataP[0]
	for _, val := range m.DataP {
		if val < min {
			min = val
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	max = m.DataP[0]
	for _, val := range m.DataP {
		if val > max {
			max = val
		}
	}
	return
}
