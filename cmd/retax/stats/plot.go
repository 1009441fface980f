// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/js-arias/retax/taxtree"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RankAbundancePlot saves a rank-abundance plot,
// the taxon read counts in decreasing order,
// in a log10 scale,
// as a PNG file.
func rankAbundancePlot(sample string, out *taxtree.Values) error {
	counts := make([]int, 0, len(out.Counts))
	for _, v := range out.Counts {
		if v == 0 {
			continue
		}
		counts = append(counts, v)
	}
	if len(counts) == 0 {
		return fmt.Errorf("sample %q: no taxa with reads", sample)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	pts := make(plotter.XYs, len(counts))
	for i, v := range counts {
		pts[i].X = float64(i + 1)
		pts[i].Y = math.Log10(float64(v))
	}

	p := plot.New()
	p.Title.Text = sample
	p.X.Label.Text = "abundance rank"
	p.Y.Label.Text = "reads (log10)"

	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle = plotter.DefaultLineStyle
	p.Add(l)

	name := fmt.Sprintf("%s-%s-rank-abundance.png", plotPrefix, sample)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, name); err != nil {
		return err
	}
	return nil
}
