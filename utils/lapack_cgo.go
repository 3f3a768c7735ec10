//go:build cgo
// +build cgo

package utils

/*
#cgo LDFLAGS: -lopenblas -llapacke -lm -lpthread
#include <cblas.h>
#include <lapacke.h>
*/
import "C"

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// With cgo available, route the per-block determinant LU work through
// netlib/OpenBLAS instead of the pure-Go gonum kernels.
func init() {
	blas64.Use(netblas.Implementation{})
	fmt.Println("Using netlib BLAS for batched determinants")
}
