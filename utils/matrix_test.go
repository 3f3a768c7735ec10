package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// SliceRows
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		I := NewIndex(2)
		I[0] = 1
		I[1] = 0
		A := M.SliceRows(I)
		assert.Equal(t, NewMatrix(2, 3, []float64{
			4, 5, 6,
			1, 2, 3,
		}), A)
	}
	// SliceRows with an empty index yields the empty Matrix
	{
		M := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		A := M.SliceRows(Index{})
		assert.True(t, A.IsEmpty())
	}
	// ConcatRows stacks, tolerating empty sides
	{
		A := NewMatrix(1, 2, []float64{1, 2})
		B := NewMatrix(2, 2, []float64{3, 4, 5, 6})
		C := ConcatRows(A, B)
		assert.Equal(t, NewMatrix(3, 2, []float64{1, 2, 3, 4, 5, 6}), C)
		assert.Equal(t, A, ConcatRows(A, Matrix{}))
		assert.Equal(t, B, ConcatRows(Matrix{}, B))
	}
	// Clamp
	{
		M := NewMatrix(1, 3, []float64{-2, 0.5, 2})
		M.Clamp(-1, 1)
		assert.Equal(t, []float64{-1, 0.5, 1}, M.RawData())
	}
}

func TestRowOps(t *testing.T) {
	// NormalizeRows yields unit rows, eps floor keeps the zero row finite
	{
		M := NewMatrix(2, 2, []float64{
			3, 4,
			0, 0,
		})
		M.NormalizeRows(1.e-8)
		assert.InDelta(t, 1, math.Hypot(M.At(0, 0), M.At(0, 1)), 1.e-6)
		assert.Equal(t, 0., M.At(1, 0))
	}
	// SubRowsScaled is the batched Newton step x - g*y
	{
		X := NewMatrix(2, 2, []float64{
			1, 1,
			2, 2,
		})
		G := NewMatrix(2, 2, []float64{
			1, 0,
			0, 1,
		})
		Y := NewVector(2, []float64{0.5, 2})
		X.SubRowsScaled(G, Y)
		assert.Equal(t, []float64{
			0.5, 1,
			2, 0,
		}, X.RawData())
	}
}

func TestVector(t *testing.T) {
	{
		V := NewVector(4, []float64{-1, 0.5, 2, -3})
		assert.Equal(t, Index{0, 1}, V.Find(Less, 2, true))
		assert.Equal(t, Index{2}, V.Find(Greater, 1, false))
		assert.InDelta(t, 3, V.MaxAbs(), 1.e-15)
		assert.InDelta(t, -1.5, V.Sum(), 1.e-15)
	}
	{
		V := NewVector(3, []float64{1, -2, 3}).Copy().Apply(math.Abs)
		assert.Equal(t, []float64{1, 2, 3}, V.RawData())
	}
}
