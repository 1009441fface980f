// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package report implements a command to build
// a comparative abundance report
// for the samples of a retax project.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/js-arias/command"
	"github.com/js-arias/retax/krona"
	"github.com/js-arias/retax/profile"
	"github.com/js-arias/retax/project"
	"github.com/js-arias/retax/rank"
	"github.com/js-arias/retax/taxonomy"
	"github.com/js-arias/retax/taxtree"
)

var Command = &command.Command{
	Usage: `report [--mintaxa <number>] [--minrank <rank>]
	[--nocollapse] [--scoring <scheme>]
	[--cpu <number>] [-o|--output <out-prefix>]
	<project-file>`,
	Short: "build a comparative abundance report",
	Long: `
Command report reads the samples of a retax project, builds an abundance
tree for each sample, and merges the shaped trees into a single multi-sample
tree that is written as a Krona XML file and as a standalone HTML page for
interactive visualization.

The argument of the command is the name of the project file.

Each sample tree is shaped, so the read counts are accumulated from the tips
to the root, and then pruned. By default, taxa with less than 5 reads are
pruned, and the counts of the pruned taxa are collapsed into their parents;
use the flag --mintaxa to define a different threshold. If the flag
--minrank is set, taxa with a rank finer than the indicated rank will also
be pruned. If the flag --nocollapse is set, the counts of the pruned taxa
will be discarded instead of collapsed to their parents.

The scores of the samples are reported using the scoring scheme of the
classifier, one of "shel" (single hit equivalent length, the default),
"length", "loglength", "norma", or "lmat"; an unknown scheme is rejected
before any tree is built. The scheme is used only for the report labels.

Each sample tree is built independently, so the trees are processed in
parallel. By default all available processors will be used; use the flag
--cpu to define a different number.

By default, the output files are named after the project file; use the flag
-o, or --output, to define a different prefix.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var minTaxa int
var minRankFlag string
var noCollapse bool
var scoringFlag string
var numCPU int
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&minTaxa, "mintaxa", 5, "")
	c.Flags().StringVar(&minRankFlag, "minrank", "", "")
	c.Flags().BoolVar(&noCollapse, "nocollapse", false, "")
	c.Flags().StringVar(&scoringFlag, "scoring", string(krona.Shel), "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	// an unknown scoring scheme is a configuration error,
	// so it is rejected before any tree is built
	scoring, err := krona.ParseScoring(scoringFlag)
	if err != nil {
		return err
	}

	minRank := rank.Unclassified
	if minRankFlag != "" {
		minRank, err = rank.Parse(minRankFlag)
		if err != nil {
			return err
		}
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	tx, err := p.Taxonomy()
	if err != nil {
		return err
	}

	sf := p.Path(project.Samples)
	if sf == "" {
		return fmt.Errorf("no samples defined in project %q", args[0])
	}
	ls, err := project.ReadSamples(sf)
	if err != nil {
		return err
	}
	if len(ls) == 0 {
		return fmt.Errorf("no samples defined in project %q", args[0])
	}

	vals, err := buildTrees(tx, ls, minRank)
	if err != nil {
		return err
	}

	mt := taxtree.GrowMulti(tx, vals)

	min, max := scoreRange(vals)
	doc, err := krona.New(mt.Samples(), len(ls), min, max, scoring)
	if err != nil {
		return err
	}
	doc.SetTree(tx, mt)

	prefix := outPrefix
	if prefix == "" {
		prefix = args[0]
	}
	if err := writeDoc(prefix+".xml", doc.WriteXML); err != nil {
		return err
	}
	if err := writeDoc(prefix+".html", doc.WriteHTML); err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "report for %d samples written to %q and %q\n", len(ls), prefix+".xml", prefix+".html")
	return nil
}

// BuildTrees grows,
// shapes,
// and prunes an abundance tree
// for each sample,
// and returns the per sample tree values
// used to grow the multi-sample tree.
// Each tree owns its own nodes
// and only reads the shared taxonomy,
// so the samples are processed in parallel
// without coordination.
func buildTrees(tx *taxonomy.Taxonomy, ls []project.Sample, minRank rank.Rank) ([]taxtree.SampleValues, error) {
	cpu := numCPU
	if cpu == 0 {
		cpu = runtime.NumCPU()
	}

	vals := make([]taxtree.SampleValues, len(ls))
	errs := make([]error, len(ls))
	jobs := make(chan int, cpu*2)

	var wg sync.WaitGroup
	for w := 0; w < cpu; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				vals[i], errs[i] = sampleTree(tx, ls[i], minRank)
			}
		}()
	}
	for i := range ls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return vals, nil
}

func sampleTree(tx *taxonomy.Taxonomy, s project.Sample, minRank rank.Rank) (taxtree.SampleValues, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return taxtree.SampleValues{}, err
	}
	defer f.Close()

	prof, err := profile.Read(f)
	if err != nil {
		return taxtree.SampleValues{}, fmt.Errorf("on file %q: %v", s.Path, err)
	}

	t := taxtree.Grow(tx, prof.Counts(), prof.Scores())
	t.Shape()
	t.Prune(minTaxa, minRank, !noCollapse)

	out := taxtree.NewValues()
	t.Taxa(taxtree.Filter{}, out)
	return taxtree.SampleValues{
		Name:   s.Name,
		Counts: out.Counts,
		Accs:   out.Accs,
		Scores: out.Scores,
	}, nil
}

func scoreRange(vals []taxtree.SampleValues) (min, max float64) {
	min = 0
	max = 1
	first := true
	for _, v := range vals {
		for _, s := range v.Scores {
			if first {
				min = s
				max = s
				first = false
				continue
			}
			if s < min {
				min = s
			}
			if s > max {
				max = s
			}
		}
	}
	return min, max
}

func writeDoc(name string, fn func(w io.Writer) error) (err error) {
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
	if err := fn(bw); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}
