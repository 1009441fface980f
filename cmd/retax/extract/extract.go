// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package extract implements a command to extract
// the reads assigned to a set of taxa
// from FASTQ files.
package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/retax/project"
	"github.com/js-arias/retax/taxonomy"
)

var Command = &command.Command{
	Usage: `extract --reads <classification-file>
	[-q|--fastq <file>]
	[-1|--mate1 <file>] [-2|--mate2 <file>]
	[-i|--include <taxid>,...] [-x|--exclude <taxid>,...]
	[-o|--output <out-prefix>]
	<project-file>`,
	Short: "extract the reads assigned to a set of taxa",
	Long: `
Command extract reads a per read classification file, in the output format
of Centrifuge or Kraken, selects the reads assigned to a set of taxa, and
writes the sequences of the selected reads from the given FASTQ files into
new FASTQ files.

The argument of the command is the name of the project file, used to load
the taxonomy.

The flag --reads is required and indicates the per read classification
file. The file is a tab-delimited file in which the first line is a header,
the first column is the read identifier, and the taxid of the assignment is
in the third column (Centrifuge), or in the second column if the file only
has two columns (Kraken).

The flag -q, or --fastq, indicates a single, unpaired, FASTQ file. For
paired-end reads use the flags -1, or --mate1, and -2, or --mate2, with the
files of the first and second mates. The mate files must have the reads in
the same order.

By default, the reads of all the taxa are selected. Use the flag -i, or
--include, with a comma separated list of taxids, to select only the reads
of the indicated taxa and all the taxa underneath. Use the flag -x, or
--exclude, to unselect the reads of the given taxa and all the taxa
underneath; exclusion takes precedence over inclusion.

By default, the name of an output file is the name of its FASTQ file with
the suffix "-extract". Use the flag -o, or --output, to define a prefix for
the output files.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var readsFile string
var fastqFile string
var mate1File string
var mate2File string
var inclFlag string
var exclFlag string
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&readsFile, "reads", "", "")
	c.Flags().StringVar(&fastqFile, "fastq", "", "")
	c.Flags().StringVar(&fastqFile, "q", "", "")
	c.Flags().StringVar(&mate1File, "mate1", "", "")
	c.Flags().StringVar(&mate1File, "1", "", "")
	c.Flags().StringVar(&mate2File, "mate2", "", "")
	c.Flags().StringVar(&mate2File, "2", "", "")
	c.Flags().StringVar(&inclFlag, "include", "", "")
	c.Flags().StringVar(&inclFlag, "i", "", "")
	c.Flags().StringVar(&exclFlag, "exclude", "", "")
	c.Flags().StringVar(&exclFlag, "x", "", "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if readsFile == "" {
		return c.UsageError("flag --reads must be defined")
	}
	if fastqFile == "" && mate1File == "" {
		return c.UsageError("expecting FASTQ file, flag --fastq or --mate1")
	}
	if fastqFile != "" && mate1File != "" {
		return c.UsageError("flags --fastq and --mate1 are incompatible")
	}
	if mate1File != "" && mate2File == "" {
		return c.UsageError("flag --mate1 requires flag --mate2")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	tx, err := p.Taxonomy()
	if err != nil {
		return err
	}

	taxa := selectTaxa(tx, taxidSet(inclFlag), taxidSet(exclFlag))
	fmt.Fprintf(c.Stdout(), "selected taxa: %d\n", len(taxa))

	reads, scanned, err := readClassification(readsFile, taxa)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "matching reads: %d of %d\n", len(reads), scanned)

	if fastqFile != "" {
		wrote, err := extractReads(fastqFile, outName(fastqFile), reads)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "%s: %d reads\n", outName(fastqFile), wrote)
		return nil
	}

	w1, w2, err := extractMates(mate1File, mate2File, outName(mate1File), outName(mate2File), reads)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "%s: %d reads\n", outName(mate1File), w1)
	fmt.Fprintf(c.Stdout(), "%s: %d reads\n", outName(mate2File), w2)
	return nil
}

// SelectTaxa collects the taxa of the subtrees
// rooted at the included taxa,
// removing the subtrees rooted at the excluded taxa.
// Exclusion takes precedence over inclusion.
func selectTaxa(tx *taxonomy.Taxonomy, include, exclude map[taxonomy.TaxID]bool) map[taxonomy.TaxID]bool {
	taxa := make(map[taxonomy.TaxID]bool)
	addSubtree(tx, taxonomy.Root, len(include) == 0, include, exclude, taxa)
	return taxa
}

func addSubtree(tx *taxonomy.Taxonomy, id taxonomy.TaxID, inBranch bool, include, exclude, taxa map[taxonomy.TaxID]bool) {
	inBranch = (inBranch || include[id]) && !exclude[id]
	if inBranch {
		taxa[id] = true
	}
	for _, c := range tx.Children(id) {
		addSubtree(tx, c, inBranch, include, exclude, taxa)
	}
}

// ReadClassification reads a per read classification file
// and returns the identifiers of the reads
// assigned to any of the given taxa,
// with the total number of classified reads scanned.
func readClassification(name string, taxa map[taxonomy.TaxID]bool) (map[string]bool, int, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.FieldsPerRecord = -1

	// header
	if _, err := tsv.Read(); err != nil {
		return nil, 0, fmt.Errorf("on file %q: while reading header: %v", name, err)
	}

	reads := make(map[string]bool)
	scanned := 0
	for {
		row, err := tsv.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("on file %q: %v", name, err)
		}
		if len(row) < 2 {
			continue
		}
		scanned++

		tid := taxonomy.TaxID(strings.TrimSpace(row[1]))
		if len(row) > 2 {
			tid = taxonomy.TaxID(strings.TrimSpace(row[2]))
		}
		if !taxa[tid] {
			continue
		}
		reads[strings.TrimSpace(row[0])] = true
	}
	return reads, scanned, nil
}

func outName(fastq string) string {
	base := strings.TrimSuffix(fastq, ".gz")
	ext := filepath.Ext(base)
	base = strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = ".fastq"
	}
	if outPrefix != "" {
		return fmt.Sprintf("%s-%s%s", outPrefix, filepath.Base(base), ext)
	}
	return base + "-extract" + ext
}

func taxidSet(flag string) map[taxonomy.TaxID]bool {
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
