// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/js-arias/retax/rank"
)

// Read reads a taxonomy from the NCBI taxonomy dump files
// nodes.dmp and names.dmp.
//
// In the dump files each row is a set of fields
// delimited by "\t|\t"
// and terminated by "\t|".
// From nodes.dmp only the taxid,
// the parent taxid,
// and the rank fields are used.
// From names.dmp only the names
// of the "scientific name" class are used.
func Read(nodes, names io.Reader) (*Taxonomy, error) {
	tx := New()

	if err := tx.readNodes(nodes); err != nil {
		return nil, fmt.Errorf("nodes: %v", err)
	}
	if err := tx.readNames(names); err != nil {
		return nil, fmt.Errorf("names: %v", err)
	}
	return tx, nil
}

func splitDmp(line string) []string {
	line = strings.TrimSuffix(strings.TrimSpace(line), "|")
	line = strings.TrimSuffix(line, "\t")
	return strings.Split(line, "\t|\t")
}

func (tx *Taxonomy) readNodes(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for ln := 1; sc.Scan(); ln++ {
		row := splitDmp(sc.Text())
		if len(row) < 3 {
			return fmt.Errorf("on row %d: got %d fields, want at least 3", ln, len(row))
		}

		id := TaxID(strings.TrimSpace(row[0]))
		if id == "" {
			return fmt.Errorf("on row %d: taxon without identifier", ln)
		}
		parent := TaxID(strings.TrimSpace(row[1]))

		r, err := rank.Parse(row[2])
		if err != nil {
			// Ranks added to the NCBI taxonomy
			// after this package was written
			// are read as unranked taxa.
			r = rank.NoRank
		}

		if id == Root {
			continue
		}
		tx.taxa[id] = &taxon{
			id:     id,
			parent: parent,
			rank:   r,
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	// children are linked after all taxa are read
	// because the dump file rows
	// are not topologically sorted.
	for _, tax := range tx.taxa {
		if tax.id == Root {
			continue
		}
		p, ok := tx.taxa[tax.parent]
		if !ok {
			return fmt.Errorf("taxon %q: parent %q not in taxonomy", tax.id, tax.parent)
		}
		p.children = append(p.children, tax.id)
	}
	for _, tax := range tx.taxa {
		SortIDs(tax.children)
	}
	return nil
}

// SortIDs sorts taxids in numeric order,
// which is the order used for the children lists.
// Taxids are numeric strings,
// so shorter ids sort first.
func SortIDs(ids []TaxID) {
	slices.SortFunc(ids, func(a, b TaxID) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		return strings.Compare(string(a), string(b))
	})
}

func (tx *Taxonomy) readNames(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for ln := 1; sc.Scan(); ln++ {
		row := splitDmp(sc.Text())
		if len(row) < 4 {
			return fmt.Errorf("on row %d: got %d fields, want 4", ln, len(row))
		}
		if strings.TrimSpace(row[3]) != "scientific name" {
			continue
		}

		id := TaxID(strings.TrimSpace(row[0]))
		tax, ok := tx.taxa[id]
		if !ok {
			// names of taxa removed from the nodes file
			continue
		}
		tax.name = strings.TrimSpace(row[1])
	}
	return sc.Err()
}
