// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements a command to print
// per rank abundance summaries
// for a sample of a retax project.
package stats

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/retax/profile"
	"github.com/js-arias/retax/project"
	"github.com/js-arias/retax/rank"
	"github.com/js-arias/retax/taxtree"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

var Command = &command.Command{
	Usage: `stats [--sample <sample-name>]
	[--plot <out-prefix>]
	<project-file>`,
	Short: "print per rank abundance summaries",
	Long: `
Command stats builds and shapes the abundance tree of a sample of a retax
project and prints a summary of the read counts at each taxonomic rank: the
number of taxa, the total number of reads, and the median and the 95%
empirical interval of the reads per taxon.

The argument of the command is the name of the project file.

By default, the first sample of the project is used; use the flag --sample
to indicate a different sample.

If the flag --plot is set, a rank-abundance plot (taxon counts in decreasing
order) will be saved as a PNG file using the indicated prefix.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var sampleName string
var plotPrefix string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&sampleName, "sample", "", "")
	c.Flags().StringVar(&plotPrefix, "plot", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	tx, err := p.Taxonomy()
	if err != nil {
		return err
	}

	s, err := pickSample(p, sampleName)
	if err != nil {
		return err
	}
	prof, err := readProfile(s.Path)
	if err != nil {
		return err
	}

	t := taxtree.Grow(tx, prof.Counts(), prof.Scores())
	t.Shape()

	out := taxtree.NewValues()
	t.Taxa(taxtree.Filter{}, out)

	byRank := make(map[rank.Rank][]float64)
	for id, v := range out.Counts {
		if v == 0 {
			continue
		}
		r := out.Ranks[id]
		byRank[r] = append(byRank[r], float64(v))
	}

	fmt.Fprintf(c.Stdout(), "# sample %s\n", s.Name)
	fmt.Fprintf(c.Stdout(), "rank\ttaxa\treads\tmedian\t2.5%%\t97.5%%\n")
	for _, r := range rank.List() {
		counts, ok := byRank[r]
		if !ok {
			continue
		}
		slices.Sort(counts)

		weights := make([]float64, len(counts))
		for i := range weights {
			weights[i] = 1.0
		}
		sum := 0.0
		for _, v := range counts {
			sum += v
		}

		fmt.Fprintf(c.Stdout(), "%s\t%d\t%.0f\t%.1f\t%.1f\t%.1f\n",
			r, len(counts), sum,
			stat.Quantile(0.5, stat.Empirical, counts, weights),
			stat.Quantile(0.025, stat.Empirical, counts, weights),
			stat.Quantile(0.975, stat.Empirical, counts, weights))
	}

	if plotPrefix != "" {
		if err := rankAbundancePlot(s.Name, out); err != nil {
			return err
		}
	}
	return nil
}

func pickSample(p *project.Project, name string) (project.Sample, error) {
	sf := p.Path(project.Samples)
	if sf == "" {
		return project.Sample{}, fmt.Errorf("no samples defined in project %q", p.Name())
	}
	ls, err := project.ReadSamples(sf)
	if err != nil {
		return project.Sample{}, err
	}
	if len(ls) == 0 {
		return project.Sample{}, fmt.Errorf("no samples defined in project %q", p.Name())
	}

	if name == "" {
		return ls[0], nil
	}
	for _, s := range ls {
		if s.Name == name {
			return s, nil
		}
	}
	return project.Sample{}, fmt.Errorf("sample %q not in project %q", name, p.Name())
}

func readProfile(name string) (*profile.Profile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	prof, err := profile.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return prof, nil
}
