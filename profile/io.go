// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package profile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/retax/taxonomy"
)

var header = []string{
	"taxid",
	"count",
	"score",
}

// Read reads a profile from a TSV file.
//
// The TSV must contain the following fields:
//
//   - taxid, the taxon identifier
//   - count, the number of reads assigned to the taxon
//   - score, the confidence score of the taxon,
//     empty if the taxon has no score
//
// Here is an example file:
//
//	# classification profile
//	taxid	count	score
//	9606	1500	150.5
//	9598	25	32.0
//	562	3
//
// The score field can be left out of a row.
func Read(r io.Reader) (*Profile, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.FieldsPerRecord = -1

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	p := New()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "taxid"
		if fields[f] >= len(row) {
			return nil, fmt.Errorf("on row %d: taxon without identifier", ln)
		}
		id := taxonomy.TaxID(strings.TrimSpace(row[fields[f]]))
		if id == "" {
			return nil, fmt.Errorf("on row %d: taxon without identifier", ln)
		}

		f = "count"
		if fields[f] >= len(row) {
			return nil, fmt.Errorf("on row %d: taxon %s without count", ln, id)
		}
		count, err := strconv.Atoi(strings.TrimSpace(row[fields[f]]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if count < 0 {
			return nil, fmt.Errorf("on row %d: field %q: negative count %d", ln, f, count)
		}
		p.Add(id, count)

		f = "score"
		if fields[f] >= len(row) {
			continue
		}
		sf := strings.TrimSpace(row[fields[f]])
		if sf == "" {
			continue
		}
		score, err := strconv.ParseFloat(sf, 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		p.SetScore(id, score)
	}
	return p, nil
}

// TSV writes a profile as a TSV file.
func (p *Profile) TSV(w io.Writer) error {
	fmt.Fprintf(w, "# classification profile\n")
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	for _, id := range p.TaxIDs() {
		score := ""
		if s, ok := p.scores[id]; ok {
			score = strconv.FormatFloat(s, 'f', -1, 64)
		}
		row := []string{
			string(id),
			strconv.Itoa(p.counts[id]),
			score,
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

