package reporting

import (
	"fmt"

	"github.com/will-rowe/pansel/src/sweep"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is the dissimilarity along one reference sequence
type Series struct {
	Chrom  string
	Points plotter.XYs
}

// Add is a method to add a record to the series, plotted at the middle of its window
func (s *Series) Add(r *sweep.Record) {
	mid := float64(r.ChunkStart+r.ChunkEnd) / 2
	s.Points = append(s.Points, plotter.XY{X: mid, Y: r.Dissimilarity})
}

// PlotDissimilarity saves a line plot of each series
func PlotDissimilarity(series []*Series, fileName string) error {
	if len(series) == 0 {
		return fmt.Errorf("nothing to plot")
	}
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = "path dissimilarity along the reference"
	p.X.Label.Text = "position"
	p.Y.Label.Text = "mean dissimilarity"
	lines := make([]interface{}, 0, 2*len(series))
	for _, s := range series {
		lines = append(lines, s.Chrom, s.Points)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return err
	}
	return p.Save(12*vg.Inch, 4*vg.Inch, fileName)
}
