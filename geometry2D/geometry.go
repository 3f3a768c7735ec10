// Package geometry2D turns two-dimensional level-set samples into simple
// geometric summaries: bounding boxes, Delaunay triangulations, and area
// estimates used when inspecting a sampled band.
package geometry2D

import (
	"math"

	"github.com/pradeep-pyro/triangle"

	"github.com/implicitfields/igp/utils"
)

type Point struct {
	X [2]float64
}

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(geometry []Point) (box *BoundingBox) {
	if len(geometry) == 0 {
		return nil
	}
	box = new(BoundingBox)
	box.XMin = geometry[0].X
	box.XMax = geometry[0].X
	for _, point := range geometry {
		for i := 0; i < 2; i++ {
			if point.X[i] < box.XMin[i] {
				box.XMin[i] = point.X[i]
			}
			if point.X[i] > box.XMax[i] {
				box.XMax[i] = point.X[i]
			}
		}
	}
	return box
}

// FromMatrix converts a 2-D point batch into geometry points. Batches of
// other dimension are a precondition failure.
func FromMatrix(x utils.Matrix) (points []Point) {
	var (
		nr, nc = x.Dims()
	)
	if nc != 2 {
		panic("geometry2D requires a two dimensional point batch")
	}
	points = make([]Point, nr)
	for i := 0; i < nr; i++ {
		points[i].X[0] = x.At(i, 0)
		points[i].X[1] = x.At(i, 1)
	}
	return
}

type TriMesh struct {
	Points    []Point
	Triangles [][3]int32
}

// Delaunay triangulates the point set.
func Delaunay(points []Point) (tm TriMesh) {
	pts := make([][2]float64, len(points))
	for i, p := range points {
		pts[i] = p.X
	}
	tm = TriMesh{
		Points:    points,
		Triangles: triangle.Delaunay(pts),
	}
	return
}

// TotalArea sums the unsigned triangle areas, an estimate of the area the
// sampled band covers.
func (tm TriMesh) TotalArea() (area float64) {
	for _, tri := range tm.Triangles {
		a, b, c := tm.Points[tri[0]].X, tm.Points[tri[1]].X, tm.Points[tri[2]].X
		cross := (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
		area += 0.5 * math.Abs(cross)
	}
	return
}
