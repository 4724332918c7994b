package main

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// plotValence saves a histogram of vertex valences to path. The image
// format follows the file extension.
func plotValence(path string, vals []float64) error {
	if len(vals) == 0 {
		return errors.New("no vertices to plot")
	}
	maxv := 0.
	for _, v := range vals {
		if v > maxv {
			maxv = v
		}
	}
	p := plot.New()
	p.Title.Text = "Vertex valence"
	p.X.Label.Text = "connected vertices"
	p.Y.Label.Text = "count"
	h, err := plotter.NewHist(plotter.Values(vals), int(maxv)+1)
	if err != nil {
		return err
	}
	p.Add(h)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, path)
	}
	klog.V(1).Infof("plotted %d valences to %s", len(vals), path)
	return nil
}
