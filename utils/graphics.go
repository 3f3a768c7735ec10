package utils

import (
	"image/color"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

type ColorName uint8

const (
	White ColorName = iota
	Blue
	Red
	Green
	Black
)

func GetColor(name ColorName) (c color.RGBA) {
	switch name {
	case White:
		c = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	case Blue:
		c = color.RGBA{R: 50, G: 0, B: 255, A: 0}
	case Red:
		c = color.RGBA{R: 255, G: 0, B: 50, A: 0}
	case Green:
		c = color.RGBA{R: 25, G: 255, B: 25, A: 0}
	case Black:
		c = color.RGBA{R: 0, G: 0, B: 0, A: 0}
	}
	return
}

// ScatterChart displays sampled point batches as glyph-only series.
type ScatterChart struct {
	Chart    *chart2d.Chart2D
	ColorMap *utils2.ColorMap
}

func NewScatterChart(width, height int, xmin, xmax, ymin, ymax float64) (sc *ScatterChart) {
	sc = &ScatterChart{
		Chart:    chart2d.NewChart2D(width, height, float32(xmin), float32(xmax), float32(ymin), float32(ymax)),
		ColorMap: utils2.NewColorMap(-1, 1, 1),
	}
	go sc.Chart.Plot()
	return
}

// AddPoints plots the first two coordinates of a point batch. seriesColor
// goes from -1 (red) to 1 (blue).
func (sc *ScatterChart) AddPoints(name string, x Matrix, seriesColor float64, graphDelay time.Duration) {
	var (
		nr, _ = x.Dims()
		xs    = make([]float64, nr)
		ys    = make([]float64, nr)
	)
	for i := 0; i < nr; i++ {
		xs[i] = x.At(i, 0)
		ys[i] = x.At(i, 1)
	}
	if err := sc.Chart.AddSeries(name, xs, ys,
		chart2d.CrossGlyph, chart2d.NoLine, sc.ColorMap.GetRGB(float32(seriesColor))); err != nil {
		panic("unable to add graph series")
	}
	time.Sleep(graphDelay)
}
