// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxa implements a command to retrieve
// the taxa found in a sample of a retax project.
package taxa

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/retax/profile"
	"github.com/js-arias/retax/project"
	"github.com/js-arias/retax/rank"
	"github.com/js-arias/retax/taxonomy"
	"github.com/js-arias/retax/taxtree"
)

var Command = &command.Command{
	Usage: `taxa [--sample <sample-name>]
	[--mindepth <number>] [--maxdepth <number>]
	[-i|--include <taxid>,...] [-x|--exclude <taxid>,...]
	[--rank <rank>]
	<project-file>`,
	Short: "print the taxa found in a sample",
	Long: `
Command taxa builds and shapes the abundance tree of a sample of a retax
project and prints the retrieved taxa as TSV rows in the standard output,
with the fields "taxid", "rank", "name", "count", "acc", and "score" (empty
if the taxon has no score).

The argument of the command is the name of the project file.

By default, the first sample of the project is used; use the flag --sample
to indicate a different sample.

The flags --mindepth and --maxdepth bound the depth of the retrieved taxa,
with the root at depth zero; a zero bound means no bound at all.

The flag -i, or --include, defines the taxids of the subtrees to be
retrieved, as a comma separated list; by default all taxa are retrieved. The
flag -x, or --exclude, defines the taxids of the subtrees to be discarded;
exclusion always wins over inclusion.

If the flag --rank is set, only taxa of the indicated rank will be printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var sampleName string
var minDepth int
var maxDepth int
var includeFlag string
var excludeFlag string
var rankFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&sampleName, "sample", "", "")
	c.Flags().IntVar(&minDepth, "mindepth", 0, "")
	c.Flags().IntVar(&maxDepth, "maxdepth", 0, "")
	c.Flags().StringVar(&includeFlag, "include", "", "")
	c.Flags().StringVar(&includeFlag, "i", "", "")
	c.Flags().StringVar(&excludeFlag, "exclude", "", "")
	c.Flags().StringVar(&excludeFlag, "x", "", "")
	c.Flags().StringVar(&rankFlag, "rank", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	justLevel := rank.Unclassified
	if rankFlag != "" {
		r, err := rank.Parse(rankFlag)
		if err != nil {
			return err
		}
		justLevel = r
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

	f := taxtree.Filter{
		MinDepth:  minDepth,
		MaxDepth:  maxDepth,
		Include:   taxidSet(includeFlag),
		Exclude:   taxidSet(excludeFlag),
		JustLevel: justLevel,
	}
	out := taxtree.NewValues()
	t.Taxa(f, out)

	ids := make([]taxonomy.TaxID, 0, len(out.Counts))
	for id := range out.Counts {
		ids = append(ids, id)
	}
	taxonomy.SortIDs(ids)

	tsv := csv.NewWriter(c.Stdout())
	tsv.Comma = '\t'
	if err := tsv.Write([]string{"taxid", "rank", "name", "count", "acc", "score"}); err != nil {
		return err
	}
	for _, id := range ids {
		score := ""
		if sc, ok := out.Scores[id]; ok {
			score = strconv.FormatFloat(sc, 'f', 1, 64)
		}
		row := []string{
			string(id),
			out.Ranks[id].String(),
			tx.Name(id),
			strconv.Itoa(out.Counts[id]),
			strconv.Itoa(out.Accs[id]),
			score,
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}
	tsv.Flush()
	return tsv.Error()
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

func taxidSet(flag string) map[taxonomy.TaxID]bool {
	if flag == "" {
		return nil
	}
	set := make(map[taxonomy.TaxID]bool)
	for _, v := range strings.Split(flag, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set[taxonomy.TaxID(v)] = true
	}
	return set
}
