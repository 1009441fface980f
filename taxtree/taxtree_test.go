// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxtree_test

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/retax/rank"
	"github.com/js-arias/retax/taxonomy"
	"github.com/js-arias/retax/taxtree"
)

// NewTaxonomy returns the reference taxonomy
// used by most of the tests:
//
//	1 root (no rank)
//	└ 131567 cellular organisms (no rank)
//	  ├ 2 Bacteria (superkingdom)
//	  │ ├ 1224 Proteobacteria (phylum)
//	  │ │ └ 561 Escherichia (genus)
//	  │ │   └ 562 Escherichia coli (species)
//	  │ └ 1239 Bacillota (phylum)
//	  └ 2759 Eukaryota (superkingdom)
//	    └ 9606 Homo sapiens (species)
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
	add("1224", "2", rank.Phylum, "Proteobacteria")
	add("561", "1224", rank.Genus, "Escherichia")
	add("562", "561", rank.Species, "Escherichia coli")
	add("1239", "2", rank.Phylum, "Bacillota")
	add("2759", "131567", rank.Superkingdom, "Eukaryota")
	add("9606", "2759", rank.Species, "Homo sapiens")
	return tx
}

func newTree(t testing.TB) *taxtree.Tree {
	t.Helper()

	tx := newTaxonomy(t)
	abund := map[taxtree.TaxID]int{
		"562":  10,
		"561":  5,
		"1239": 3,
	}
	scores := map[taxtree.TaxID]float64{
		"562": 0.9,
		"561": 0.6,
	}
	return taxtree.Grow(tx, abund, scores)
}

func TestGrow(t *testing.T) {
	tr := newTree(t)

	root := tr.Root()
	if root.Counts != 0 {
		t.Errorf("grow: root counts: got %d, want %d", root.Counts, 0)
	}
	if root.Score != taxtree.NoScore {
		t.Errorf("grow: root score: got %.6f, want no score", root.Score)
	}

	// before shaping the tree mirrors the whole taxonomy
	nodes := 0
	sum := 0
	tx := newTaxonomy(t)
	tr.Walk(tx, func(v taxtree.Visit) {
		nodes++
		sum += v.Counts[0]
	})
	if nodes != 9 {
		t.Errorf("grow: got %d nodes, want %d", nodes, 9)
	}
	if sum != 18 {
		t.Errorf("grow: got %d reads, want %d", sum, 18)
	}

	ec := root.Children["131567"].Children["2"].Children["1224"].Children["561"].Children["562"]
	if ec.Counts != 10 {
		t.Errorf("grow: taxon %q: got %d counts, want %d", "562", ec.Counts, 10)
	}
	if ec.Rank != rank.Species {
		t.Errorf("grow: taxon %q: got rank %v, want %v", "562", ec.Rank, rank.Species)
	}
	if math.Abs(ec.Score-0.9) > 1e-10 {
		t.Errorf("grow: taxon %q: got score %.6f, want %.6f", "562", ec.Score, 0.9)
	}
}

func TestGrowEmpty(t *testing.T) {
	tx := newTaxonomy(t)
	tr := taxtree.Grow(tx, nil, nil)

	if g := tr.Root().Counts; g != 1 {
		t.Errorf("grow: root counts: got %d, want %d", g, 1)
	}
}

// A looped taxonomy has a back-edge,
// 88 points back to 87,
// as it happens with some curated merges
// of reference taxonomies.
type looped struct{}

func (l looped) Rank(taxtree.TaxID) rank.Rank { return rank.NoRank }
func (l looped) Name(id taxtree.TaxID) string { return string(id) }
func (l looped) Children(id taxtree.TaxID) []taxtree.TaxID {
	children := map[taxtree.TaxID][]taxtree.TaxID{
		"1":  {"87"},
		"87": {"88"},
		"88": {"87"},
	}
	return children[id]
}

func TestGrowLoop(t *testing.T) {
	tr := taxtree.Grow(looped{}, map[taxtree.TaxID]int{"87": 5}, nil)

	root := tr.Root()
	n87, ok := root.Children["87"]
	if !ok {
		t.Fatalf("loop: taxon %q not in tree", "87")
	}
	n88, ok := n87.Children["88"]
	if !ok {
		t.Fatalf("loop: taxon %q not in tree", "88")
	}
	if len(n88.Children) != 0 {
		t.Errorf("loop: taxon %q: got %d children, want none", "88", len(n88.Children))
	}

	// no taxid appears twice on any root-to-node path
	tr.Shape()
	if g := root.Acc; g != 5 {
		t.Errorf("loop: root acc: got %d, want %d", g, 5)
	}
}

func TestShape(t *testing.T) {
	tx := newTaxonomy(t)
	tr := newTree(t)
	tr.Shape()

	root := tr.Root()
	if root.Acc != 18 {
		t.Errorf("shape: root acc: got %d, want %d", root.Acc, 18)
	}

	cell := root.Children["131567"]
	bact := cell.Children["2"]
	if _, ok := cell.Children["2759"]; ok {
		t.Errorf("shape: taxon %q: empty branch not removed", "2759")
	}
	if bact.Acc != 18 {
		t.Errorf("shape: taxon %q: got %d acc, want %d", "2", bact.Acc, 18)
	}

	// scores derived from the children,
	// weighted by accumulated counts
	prot := bact.Children["1224"]
	if math.Abs(prot.Score-0.6) > 1e-10 {
		t.Errorf("shape: taxon %q: got score %.6f, want %.6f", "1224", prot.Score, 0.6)
	}
	esch := prot.Children["561"]
	if esch.Acc != 15 {
		t.Errorf("shape: taxon %q: got %d acc, want %d", "561", esch.Acc, 15)
	}
	// a taxon with its own reads keeps its own score
	if math.Abs(esch.Score-0.6) > 1e-10 {
		t.Errorf("shape: taxon %q: got score %.6f, want %.6f", "561", esch.Score, 0.6)
	}

	// an unscored child leaves the derived score unset
	if bact.Score != taxtree.NoScore {
		t.Errorf("shape: taxon %q: got score %.6f, want no score", "2", bact.Score)
	}

	// shaping twice yields the same tree
	before := treeValues(tx, tr)
	tr.Shape()
	after := treeValues(tx, tr)
	if !reflect.DeepEqual(after, before) {
		t.Errorf("shape: not idempotent:\ngot  %v\nwant %v", after, before)
	}
}

func TestPruneCollapse(t *testing.T) {
	tr := newTree(t)
	tr.Shape()
	tr.Prune(6, rank.Unclassified, true)

	root := tr.Root()
	bact := root.Children["131567"].Children["2"]
	if _, ok := bact.Children["1239"]; ok {
		t.Errorf("prune: taxon %q: low abundance leaf not removed", "1239")
	}
	if bact.Counts != 3 {
		t.Errorf("prune: taxon %q: got %d counts, want %d", "2", bact.Counts, 3)
	}

	// 561 has 5 reads,
	// below the threshold,
	// but it is not a leaf,
	// so it must be kept
	esch := bact.Children["1224"].Children["561"]
	if esch.Counts != 5 {
		t.Errorf("prune: taxon %q: got %d counts, want %d", "561", esch.Counts, 5)
	}

	// no read mass is lost when collapsing
	sum := 0
	tx := newTaxonomy(t)
	tr.Walk(tx, func(v taxtree.Visit) { sum += v.Counts[0] })
	if sum != 18 {
		t.Errorf("prune: got %d reads, want %d", sum, 18)
	}
	if root.Acc != 18 {
		t.Errorf("prune: root acc: got %d, want %d", root.Acc, 18)
	}
}

func TestPruneNoOp(t *testing.T) {
	tx := newTaxonomy(t)
	tr := newTree(t)
	tr.Shape()
	before := treeValues(tx, tr)

	// a single read threshold never removes a leaf
	tr.Prune(1, rank.Unclassified, true)
	after := treeValues(tx, tr)
	if !reflect.DeepEqual(after, before) {
		t.Errorf("prune: threshold of one read is not a no-op:\ngot  %v\nwant %v", after, before)
	}
}

func TestPruneRank(t *testing.T) {
	tr := newTree(t)
	tr.Shape()
	tr.Prune(0, rank.Genus, true)

	root := tr.Root()
	esch := root.Children["131567"].Children["2"].Children["1224"].Children["561"]
	if _, ok := esch.Children["562"]; ok {
		t.Errorf("prune: taxon %q: leaf below the rank floor not removed", "562")
	}
	if esch.Counts != 15 {
		t.Errorf("prune: taxon %q: got %d counts, want %d", "561", esch.Counts, 15)
	}
	// collapsed score is the count weighted average
	want := (0.6*5 + 0.9*10) / 15
	if math.Abs(esch.Score-want) > 1e-10 {
		t.Errorf("prune: taxon %q: got score %.6f, want %.6f", "561", esch.Score, want)
	}
}

func TestPruneNoCollapse(t *testing.T) {
	tr := newTree(t)
	tr.Shape()
	tr.Prune(6, rank.Unclassified, false)

	root := tr.Root()
	bact := root.Children["131567"].Children["2"]
	if _, ok := bact.Children["1239"]; ok {
		t.Errorf("prune: taxon %q: low abundance leaf not removed", "1239")
	}
	// the removed counts are discounted
	// from the accumulated counts of the parent
	if bact.Acc != 15 {
		t.Errorf("prune: taxon %q: got %d acc, want %d", "2", bact.Acc, 15)
	}
	if bact.Counts != 0 {
		t.Errorf("prune: taxon %q: got %d counts, want %d", "2", bact.Counts, 0)
	}
}

func TestTaxaDepth(t *testing.T) {
	tr := newTree(t)
	tr.Shape()

	out := taxtree.NewValues()
	tr.Taxa(taxtree.Filter{MinDepth: 2, MaxDepth: 3}, out)

	want := []taxtree.TaxID{"2", "1224", "1239"}
	if len(out.Counts) != len(want) {
		t.Errorf("taxa: got %d taxa, want %d", len(out.Counts), len(want))
	}
	for _, id := range want {
		if _, ok := out.Counts[id]; !ok {
			t.Errorf("taxa: taxon %q not retrieved", id)
		}
	}
}

// A chained taxonomy is a single lineage,
// 1 -> 10 -> 20 -> 30.
type chained struct{}

func (c chained) Rank(taxtree.TaxID) rank.Rank { return rank.NoRank }
func (c chained) Name(id taxtree.TaxID) string { return string(id) }
func (c chained) Children(id taxtree.TaxID) []taxtree.TaxID {
	children := map[taxtree.TaxID][]taxtree.TaxID{
		"1":  {"10"},
		"10": {"20"},
		"20": {"30"},
	}
	return children[id]
}

func TestTaxaSingleDepth(t *testing.T) {
	tr := taxtree.Grow(chained{}, map[taxtree.TaxID]int{"30": 1}, nil)
	tr.Shape()

	out := taxtree.NewValues()
	tr.Taxa(taxtree.Filter{MinDepth: 2, MaxDepth: 2}, out)

	if len(out.Counts) != 1 {
		t.Fatalf("taxa: got %d taxa, want %d: %v", len(out.Counts), 1, out.Counts)
	}
	if _, ok := out.Counts["20"]; !ok {
		t.Errorf("taxa: taxon %q not retrieved", "20")
	}
}

func TestTaxaFilter(t *testing.T) {
	tr := newTree(t)
	tr.Shape()

	out := taxtree.NewValues()
	tr.Taxa(taxtree.Filter{
		Include: map[taxtree.TaxID]bool{"1224": true},
		Exclude: map[taxtree.TaxID]bool{"562": true},
	}, out)

	want := []taxtree.TaxID{"1224", "561"}
	if len(out.Counts) != len(want) {
		t.Errorf("taxa: got %d taxa, want %d: %v", len(out.Counts), len(want), out.Counts)
	}
	for _, id := range want {
		if _, ok := out.Counts[id]; !ok {
			t.Errorf("taxa: taxon %q not retrieved", id)
		}
	}
	// exclusion wins over inclusion
	if _, ok := out.Counts["562"]; ok {
		t.Errorf("taxa: taxon %q retrieved, want excluded", "562")
	}

	// accumulated counts and scores of the retrieved taxa
	if g := out.Accs["561"]; g != 15 {
		t.Errorf("taxa: taxon %q: got %d acc, want %d", "561", g, 15)
	}
	if g := out.Scores["561"]; math.Abs(g-0.6) > 1e-10 {
		t.Errorf("taxa: taxon %q: got score %.6f, want %.6f", "561", g, 0.6)
	}
}

func TestTaxaRank(t *testing.T) {
	tr := newTree(t)
	tr.Shape()

	out := taxtree.NewValues()
	tr.Taxa(taxtree.Filter{JustLevel: rank.Phylum}, out)

	want := []taxtree.TaxID{"1224", "1239"}
	if len(out.Counts) != len(want) {
		t.Errorf("taxa: got %d taxa, want %d: %v", len(out.Counts), len(want), out.Counts)
	}
	for _, id := range want {
		if g := out.Ranks[id]; g != rank.Phylum {
			t.Errorf("taxa: taxon %q: got rank %v, want %v", id, g, rank.Phylum)
		}
	}
}

func TestLineage(t *testing.T) {
	tx := newTaxonomy(t)
	tr := newTree(t)
	tr.Shape()

	var warns bytes.Buffer
	taxids := []taxtree.TaxID{"562", "1239", taxonomy.Root, "666", "9606"}
	traced := tr.Lineage(tx.Parents(), taxids, &warns)

	want := map[taxtree.TaxID][]taxtree.TaxID{
		"562":         {"1", "131567", "2", "1224", "561", "562"},
		"1239":        {"1", "131567", "2", "1239"},
		taxonomy.Root: {"1"},
	}
	if len(traced) != len(want) {
		t.Errorf("lineage: got %d lineages, want %d", len(traced), len(want))
	}
	for id, w := range want {
		if g := traced[id]; !reflect.DeepEqual(g, w) {
			t.Errorf("lineage: taxon %q: got %v, want %v", id, g, w)
		}
	}

	// 666 is not in the taxonomy,
	// 9606 is in the taxonomy but not in the tree
	if !strings.Contains(warns.String(), "discarded unknown taxid 666") {
		t.Errorf("lineage: expecting warning for taxid %q, got:\n%s", "666", warns.String())
	}
	if !strings.Contains(warns.String(), "failed tracing of taxid 9606") {
		t.Errorf("lineage: expecting warning for taxid %q, got:\n%s", "9606", warns.String())
	}
}

func TestWalk(t *testing.T) {
	tx := newTaxonomy(t)
	tr := newTree(t)
	tr.Shape()

	var ids []taxtree.TaxID
	depths := make(map[taxtree.TaxID]int)
	tr.Walk(tx, func(v taxtree.Visit) {
		ids = append(ids, v.TaxID)
		depths[v.TaxID] = v.Depth
	})

	// pre-order,
	// children in numeric order
	want := []taxtree.TaxID{"1", "131567", "2", "1224", "561", "562", "1239"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("walk: got %v, want %v", ids, want)
	}
	for id, d := range map[taxtree.TaxID]int{"1": 0, "131567": 1, "2": 2, "1224": 3, "1239": 3, "562": 5} {
		if depths[id] != d {
			t.Errorf("walk: taxon %q: got depth %d, want %d", id, depths[id], d)
		}
	}
}

func treeValues(tx taxtree.Taxonomy, tr *taxtree.Tree) map[taxtree.TaxID][]float64 {
	vals := make(map[taxtree.TaxID][]float64)
	tr.Walk(tx, func(v taxtree.Visit) {
		vals[v.TaxID] = []float64{float64(v.Counts[0]), float64(v.Accs[0]), v.Scores[0]}
	})
	return vals
}
