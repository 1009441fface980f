// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// the abundance tree of a sample as an SVG file.
package draw

import (
	"bufio"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/retax/profile"
	"github.com/js-arias/retax/project"
	"github.com/js-arias/retax/rank"
	"github.com/js-arias/retax/taxtree"
)

var Command = &command.Command{
	Usage: `draw [--sample <sample-name>]
	[--mintaxa <number>] [--minrank <rank>]
	[--step <value>]
	[-o|--output <out-prefix>]
	<project-file>`,
	Short: "draw the abundance tree of a sample as an SVG file",
	Long: `
Command draw builds, shapes, and prunes the abundance tree of a sample of a
retax project and draws it into an SVG-encoded file. Each taxon is drawn as
a circle with an area proportional to its accumulated reads, and colored by
its score, using a color-blind-safe gradient.

The argument of the command is the name of the project file.

By default, the first sample of the project is used; use the flag --sample
to indicate a different sample.

By default, taxa with less than 5 reads are pruned and collapsed into their
parents before drawing; use the flag --mintaxa to define a different
threshold, and --minrank to also prune taxa with a rank finer than the
indicated rank.

By default, 120 pixel units are used per tree level; use the flag --step to
define a different value.

By default, the sample name will be used as the output file name. Use the
flag -o, or --output, to define a prefix for the resulting file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var sampleName string
var minTaxa int
var minRankFlag string
var stepX float64
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&sampleName, "sample", "", "")
	c.Flags().IntVar(&minTaxa, "mintaxa", 5, "")
	c.Flags().StringVar(&minRankFlag, "minrank", "", "")
	c.Flags().Float64Var(&stepX, "step", 120, "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	minRank := rank.Unclassified
	if minRankFlag != "" {
		r, err := rank.Parse(minRankFlag)
		if err != nil {
			return err
		}
		minRank = r
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
	t.Prune(minTaxa, minRank, true)

	st := copyTree(tx, t, stepX)
	return writeSVG(s.Name, st)
}

func writeSVG(name string, t svgTree) (err error) {
	if outPrefix != "" {
		name = fmt.Sprintf("%s-%s.svg", outPrefix, name)
	} else {
		name += ".svg"
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	if err := t.draw(bw); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
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
