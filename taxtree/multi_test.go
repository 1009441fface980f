// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxtree_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/js-arias/retax/taxtree"
)

func newMultiTree(t testing.TB) *taxtree.MultiTree {
	t.Helper()

	tx := newTaxonomy(t)

	bacteria := newTree(t)
	bacteria.Shape()
	v1 := taxtree.NewValues()
	bacteria.Taxa(taxtree.Filter{}, v1)

	human := taxtree.Grow(tx,
		map[taxtree.TaxID]int{"9606": 7},
		map[taxtree.TaxID]float64{"9606": 0.95})
	human.Shape()
	v2 := taxtree.NewValues()
	human.Taxa(taxtree.Filter{}, v2)

	return taxtree.GrowMulti(tx, []taxtree.SampleValues{
		{Name: "gut", Counts: v1.Counts, Accs: v1.Accs, Scores: v1.Scores},
		{Name: "host", Counts: v2.Counts, Accs: v2.Accs, Scores: v2.Scores},
	})
}

func TestGrowMulti(t *testing.T) {
	mt := newMultiTree(t)

	if g := mt.Samples(); !reflect.DeepEqual(g, []string{"gut", "host"}) {
		t.Errorf("multi: samples: got %v, want %v", g, []string{"gut", "host"})
	}

	root := mt.Root()
	if root == nil {
		t.Fatalf("multi: empty tree")
	}
	if g := root.Accs; !reflect.DeepEqual(g, []int{18, 7}) {
		t.Errorf("multi: root accs: got %v, want %v", g, []int{18, 7})
	}

	// the merge is a union:
	// each sample contributes its own branches
	cell := root.Children["131567"]
	if _, ok := cell.Children["2"]; !ok {
		t.Errorf("multi: taxon %q not in tree", "2")
	}
	euk, ok := cell.Children["2759"]
	if !ok {
		t.Fatalf("multi: taxon %q not in tree", "2759")
	}
	hs := euk.Children["9606"]
	if g := hs.Accs; !reflect.DeepEqual(g, []int{0, 7}) {
		t.Errorf("multi: taxon %q: got %v accs, want %v", "9606", g, []int{0, 7})
	}
	if hs.Scores[0] != taxtree.NoScore {
		t.Errorf("multi: taxon %q: got score %.6f for sample %q, want no score", "9606", hs.Scores[0], "gut")
	}
	if math.Abs(hs.Scores[1]-0.95) > 1e-10 {
		t.Errorf("multi: taxon %q: got score %.6f for sample %q, want %.6f", "9606", hs.Scores[1], "host", 0.95)
	}
}

func TestGrowMultiEmpty(t *testing.T) {
	tx := newTaxonomy(t)
	mt := taxtree.GrowMulti(tx, []taxtree.SampleValues{
		{Name: "empty"},
	})
	if mt.Root() != nil {
		t.Errorf("multi: got a root node for a sample set without reads")
	}
}

func TestItems(t *testing.T) {
	tx := newTaxonomy(t)
	mt := newMultiTree(t)

	items := mt.Items(tx, nil)
	if len(items) != 9 {
		t.Fatalf("items: got %d items, want %d", len(items), 9)
	}
	if items[0].TaxID != "1" {
		t.Errorf("items: first item: got taxon %q, want %q", items[0].TaxID, "1")
	}
	for _, it := range items {
		if it.TaxID != "562" {
			continue
		}
		if it.Name != "Escherichia coli" {
			t.Errorf("items: taxon %q: got name %q, want %q", it.TaxID, it.Name, "Escherichia coli")
		}
		if !reflect.DeepEqual(it.Counts, []int{10, 0}) {
			t.Errorf("items: taxon %q: got %v counts, want %v", it.TaxID, it.Counts, []int{10, 0})
		}
	}

	// counts restricted to a set of samples
	items = mt.Items(tx, []int{1})
	for _, it := range items {
		if len(it.Counts) != 1 {
			t.Errorf("items: taxon %q: got %d count columns, want %d", it.TaxID, len(it.Counts), 1)
		}
	}
}

func TestMultiWalk(t *testing.T) {
	tx := newTaxonomy(t)
	mt := newMultiTree(t)

	var ids []taxtree.TaxID
	mt.Walk(tx, func(v taxtree.Visit) {
		ids = append(ids, v.TaxID)
		if len(v.Counts) != 2 || len(v.Accs) != 2 || len(v.Scores) != 2 {
			t.Errorf("walk: taxon %q: values for %d samples, want %d", v.TaxID, len(v.Counts), 2)
		}
	})

	want := []taxtree.TaxID{"1", "131567", "2", "1224", "561", "562", "1239", "2759", "9606"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("walk: got %v, want %v", ids, want)
	}
}
