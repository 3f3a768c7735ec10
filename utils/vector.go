package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vector is a thin chainable wrapper over a gonum VecDense, holding one
// scalar per point of a batch.
type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (V Vector) {
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v", n, len(dataO[0]))
			panic(err)
		}
		V = Vector{mat.NewVecDense(n, dataO[0])}
	} else {
		V = Vector{mat.NewVecDense(n, make([]float64, n))}
	}
	return
}

func (v Vector) Len() int           { return v.V.Len() }
func (v Vector) At(i int) float64   { return v.V.AtVec(i) }
func (v Vector) Set(i int, val float64) Vector {
	v.V.SetVec(i, val)
	return v
}
func (v Vector) RawData() []float64 { return v.V.RawVector().Data }

func (v Vector) Copy() (R Vector) {
	var (
		data  = v.RawData()
		dataR = make([]float64, len(data))
	)
	copy(dataR, data)
	R = NewVector(v.Len(), dataR)
	return
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	var (
		data = v.RawData()
	)
	for i := range data {
		data[i] *= a
	}
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector { // Changes receiver
	var (
		data = v.RawData()
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

func (v Vector) Sum() (s float64) {
	for _, val := range v.RawData() {
		s += val
	}
	return
}

func (v Vector) MaxAbs() (m float64) {
	for _, val := range v.RawData() {
		if a := math.Abs(val); a > m {
			m = a
		}
	}
	return
}

// Find returns the indices where (optionally |.|) the element compares true
// against target.
func (v Vector) Find(op EvalOp, target float64, abs bool) (I Index) {
	for i, val := range v.RawData() {
		if abs {
			val = math.Abs(val)
		}
		var hit bool
		switch op {
		case Equal:
			hit = val == target
		case Less:
			hit = val < target
		case Greater:
			hit = val > target
		case LessOrEqual:
			hit = val <= target
		case GreaterOrEqual:
			hit = val >= target
		}
		if hit {
			I = append(I, i)
		}
	}
	return
}
