// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package lineage implements a command to trace
// the lineage of taxa found in a sample of a retax project.
package lineage

import (
	"fmt"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/retax/profile"
	"github.com/js-arias/retax/project"
	"github.com/js-arias/retax/taxonomy"
	"github.com/js-arias/retax/taxtree"
)

var Command = &command.Command{
	Usage: `lineage [--sample <sample-name>] [--names]
	<project-file> <taxid>...`,
	Short: "print the lineage of taxa found in a sample",
	Long: `
Command lineage builds the abundance tree of a sample of a retax project and
prints the path from the root of the tree to each of the given taxa, one
taxon per line.

The first argument of the command is the name of the project file. The rest
of the arguments are the taxids of the taxa to trace.

By default, the first sample of the project is used; use the flag --sample
to indicate a different sample.

By default, the lineages are printed as taxids; if the flag --names is set,
the scientific names will be printed instead.

A taxid unknown to the taxonomy, or not found in the tree of the sample, is
reported as a warning in the standard error, and does not stop the tracing
of the other taxa.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var sampleName string
var useNames bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&sampleName, "sample", "", "")
	c.Flags().BoolVar(&useNames, "names", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting project file and taxids")
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

	taxids := make([]taxonomy.TaxID, 0, len(args)-1)
	for _, a := range args[1:] {
		taxids = append(taxids, taxonomy.TaxID(strings.TrimSpace(a)))
	}

	traced := t.Lineage(tx.Parents(), taxids, c.Stderr())
	for _, id := range taxids {
		nodes, ok := traced[id]
		if !ok {
			continue
		}
		path := make([]string, 0, len(nodes))
		for _, n := range nodes {
			if useNames {
				path = append(path, tx.Name(n))
				continue
			}
			path = append(path, string(n))
		}
		fmt.Fprintf(c.Stdout(), "%s: %s\n", id, strings.Join(path, ";"))
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
