// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// A Sample is a named sample
// with the path of its classification profile.
type Sample struct {
	Name string
	Path string
}

var sampleHeader = []string{
	"sample",
	"profile",
}

// ReadSamples reads a sample list from a TSV file.
// The row order of the file is preserved,
// as it defines the sample order
// used for multi-sample reports.
//
// The TSV must contain the following fields:
//
//   - sample, the name of the sample
//   - profile, the path of the classification profile
//
// Here is an example file:
//
//	# retax samples
//	sample	profile
//	gut-ctrl	profiles/gut-ctrl.tab
//	gut-case	profiles/gut-case.tab
func ReadSamples(name string) ([]Sample, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range sampleHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	var ls []Sample
	seen := make(map[string]bool)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "sample"
		sn := strings.TrimSpace(row[fields[f]])
		if sn == "" {
			return nil, fmt.Errorf("on file %q: on row %d: sample without name", name, ln)
		}
		if seen[sn] {
			return nil, fmt.Errorf("on file %q: on row %d: repeated sample %q", name, ln, sn)
		}
		seen[sn] = true

		f = "profile"
		path := strings.TrimSpace(row[fields[f]])
		if path == "" {
			return nil, fmt.Errorf("on file %q: on row %d: sample %q without profile", name, ln, sn)
		}

		ls = append(ls, Sample{Name: sn, Path: path})
	}
	return ls, nil
}

// WriteSamples writes a sample list into a file,
// keeping the given sample order.
func WriteSamples(name string, ls []Sample) (err error) {
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
	fmt.Fprintf(bw, "# retax samples\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(sampleHeader); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", name, err)
	}
	for _, s := range ls {
		row := []string{
			s.Name,
			s.Path,
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", name, err)
	}
	return nil
}
