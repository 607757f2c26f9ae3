/*
 * stats.go, part of mdtools.
 *
 * Copyright 2026 The mdtools authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package energy

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Stats are the mean and standard deviation of a series.
type Stats struct {
	Name   string
	Mean   float64
	StdDev float64
}

// Summary returns the mean and standard deviation of every series in X, skipping the
// first skip rows (i.e. the equilibration part).
func Summary(X *XVG, skip int) ([]Stats, error) {
	if skip < 0 || skip >= len(X.Data) {
		return nil, fmt.Errorf("energy.Summary: can't skip %d rows out of %d", skip, len(X.Data))
	}
	ret := make([]Stats, 0, len(X.Names))
	for _, n := range X.Names {
		s := X.Series(n)[skip:]
		mean, std := stat.MeanStdDev(s, nil)
		ret = append(ret, Stats{Name: n, Mean: mean, StdDev: std})
	}
	return ret, nil
}

// Plot saves to plotname a plot of the given series of X against time. The
// format depends on the extension of plotname (png, svg, pdf...).
func Plot(X *XVG, names []string, title, plotname string) error {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Time (ps)"
	p.Y.Label.Text = "Energy (kJ/mol)"
	p.Add(plotter.NewGrid())
	for i, n := range names {
		s := X.Series(n)
		if s == nil {
			return fmt.Errorf("energy.Plot: no series %q", n)
		}
		pts := make(plotter.XYs, len(s))
		for j, v := range s {
			pts[j].X = X.Time[j]
			pts[j].Y = v
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(n, l)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, plotname)
}
