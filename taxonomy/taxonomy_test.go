// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/retax/rank"
	"github.com/js-arias/retax/taxonomy"
)

func TestTaxonomy(t *testing.T) {
	tx := newTaxonomy(t)

	testTaxonomy(t, "add", tx)
}

func TestRead(t *testing.T) {
	// rows of the dump files are not topologically sorted
	nodes := `2	|	131567	|	superkingdom	|
9606	|	9605	|	species	|
9605	|	9604	|	genus	|
9604	|	131567	|	family	|
131567	|	1	|	no rank	|
1	|	1	|	no rank	|
562	|	2	|	species	|
`
	names := `1	|	root	|		|	scientific name	|
2	|	Bacteria	|	Bacteria <bacteria>	|	scientific name	|
2	|	eubacteria	|		|	genbank common name	|
9604	|	Hominidae	|		|	scientific name	|
9605	|	Homo	|		|	scientific name	|
9606	|	Homo sapiens	|		|	scientific name	|
131567	|	cellular organisms	|		|	scientific name	|
562	|	Escherichia coli	|		|	scientific name	|
`

	tx, err := taxonomy.Read(strings.NewReader(nodes), strings.NewReader(names))
	if err != nil {
		t.Fatalf("unable to read taxonomy: %v", err)
	}

	testTaxonomy(t, "read", tx)
}

func TestReadOrphan(t *testing.T) {
	nodes := "9606\t|\t9605\t|\tspecies\t|\n"
	names := ""

	if _, err := taxonomy.Read(strings.NewReader(nodes), strings.NewReader(names)); err == nil {
		t.Errorf("read: expecting error for taxon with unknown parent")
	}
}

func TestSortIDs(t *testing.T) {
	ids := []taxonomy.TaxID{"131567", "2", "9606", "562", "9605"}
	want := []taxonomy.TaxID{"2", "562", "9605", "9606", "131567"}

	taxonomy.SortIDs(ids)
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("sort: got %v, want %v", ids, want)
	}
}

func newTaxonomy(t testing.TB) *taxonomy.Taxonomy {
	t.Helper()

	tx := taxonomy.New()
	add := func(id, parent taxonomy.TaxID, r rank.Rank, name string) {
		if err := tx.Add(id, parent, r, name); err != nil {
			t.Fatalf("unable to add taxon %q: %v", id, err)
		}
	}
	add("131567", "1", rank.NoRank, "cellular organisms")
	add("2", "131567", rank.Superkingdom, "Bacteria")
	add("562", "2", rank.Species, "Escherichia coli")
	add("9604", "131567", rank.Family, "Hominidae")
	add("9605", "9604", rank.Genus, "Homo")
	add("9606", "9605", rank.Species, "Homo sapiens")
	return tx
}

func testTaxonomy(t testing.TB, name string, tx *taxonomy.Taxonomy) {
	t.Helper()

	if g := tx.Len(); g != 7 {
		t.Errorf("%s: len: got %d taxa, want %d", name, g, 7)
	}
	if g := tx.Name("9606"); g != "Homo sapiens" {
		t.Errorf("%s: name: got %q, want %q", name, g, "Homo sapiens")
	}
	if g := tx.Name(taxonomy.Root); g != "root" {
		t.Errorf("%s: name: got %q, want %q", name, g, "root")
	}
	if g := tx.Rank("9605"); g != rank.Genus {
		t.Errorf("%s: rank: got %v, want %v", name, g, rank.Genus)
	}
	if g := tx.Rank("666"); g != rank.Unclassified {
		t.Errorf("%s: rank: got %v, want %v", name, g, rank.Unclassified)
	}
	if g := tx.Parent("9606"); g != "9605" {
		t.Errorf("%s: parent: got %q, want %q", name, g, "9605")
	}
	if g := tx.Parent(taxonomy.Root); g != taxonomy.Root {
		t.Errorf("%s: parent: got %q, want %q", name, g, taxonomy.Root)
	}

	children := tx.Children("131567")
	want := []taxonomy.TaxID{"2", "9604"}
	if !reflect.DeepEqual(children, want) {
		t.Errorf("%s: children: got %v, want %v", name, children, want)
	}
	if g := tx.Children("9606"); g != nil {
		t.Errorf("%s: children: got %v, want nil", name, g)
	}

	parents := tx.Parents()
	if g := parents["562"]; g != "2" {
		t.Errorf("%s: parents: got %q, want %q", name, g, "2")
	}
}
