// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxtree

import (
	"github.com/js-arias/retax/rank"
	"github.com/js-arias/retax/taxonomy"
)

// A MultiNode is a taxon in a multi-sample abundance tree.
// Counts,
// accumulated counts,
// and scores are stored per sample,
// in the sample order of the tree.
type MultiNode struct {
	Rank rank.Rank

	// Per sample values
	Counts []int
	Accs   []int
	Scores []float64

	Children map[TaxID]*MultiNode
}

// A MultiTree is an abundance tree
// for a set of samples,
// in a fixed sample order.
type MultiTree struct {
	samples []string
	root    *MultiNode
}

// SampleValues are the per sample inputs
// used to grow a multi-sample tree,
// usually retrieved with Tree.Taxa
// from an already shaped single-sample tree.
type SampleValues struct {
	// Name of the sample
	Name string

	Counts map[TaxID]int
	Accs   map[TaxID]int
	Scores map[TaxID]float64
}

// GrowMulti merges the values of several shaped single-sample trees
// into a multi-sample tree.
// The sample order of the tree
// is the order of the given values.
//
// The merge is a union:
// a taxon is added to the tree
// if at least one sample
// has accumulated counts for it,
// and every node stores a value slot
// for every sample,
// zero
// (or NoScore)
// for the samples without the taxon.
// The cycle guard of the single-sample growth
// also applies here.
func GrowMulti(tx Taxonomy, samples []SampleValues) *MultiTree {
	t := &MultiTree{
		samples: make([]string, 0, len(samples)),
	}
	for _, s := range samples {
		t.samples = append(t.samples, s.Name)
	}
	t.root = growMulti(tx, samples, taxonomy.Root, nil)
	return t
}

func growMulti(tx Taxonomy, samples []SampleValues, id TaxID, path []TaxID) *MultiNode {
	n := &MultiNode{
		Rank:   tx.Rank(id),
		Counts: make([]int, len(samples)),
		Accs:   make([]int, len(samples)),
		Scores: make([]float64, len(samples)),
	}
	populated := false
	for i, s := range samples {
		n.Counts[i] = s.Counts[id]
		n.Accs[i] = s.Accs[id]
		n.Scores[i] = scoreOf(s.Scores, id)
		if n.Accs[i] > 0 {
			populated = true
		}
	}
	if !populated {
		return nil
	}

	path = append(path, id)
	for _, c := range tx.Children(id) {
		if onPath(path, c) {
			continue
		}
		nc := growMulti(tx, samples, c, path)
		if nc == nil {
			continue
		}
		if n.Children == nil {
			n.Children = make(map[TaxID]*MultiNode)
		}
		n.Children[c] = nc
	}
	return n
}

// Root returns the root node of the tree.
// It is nil if no sample has accumulated counts
// at the root.
func (t *MultiTree) Root() *MultiNode {
	return t.root
}

// Samples returns the sample names
// in the sample order of the tree.
func (t *MultiTree) Samples() []string {
	return t.samples
}

// An Item is the tabular representation
// of a taxon in a multi-sample tree.
type Item struct {
	TaxID TaxID
	Name  string
	Rank  rank.Rank

	// Per sample values
	Counts []int
	Accs   []int
	Scores []float64
}

// Items returns one row per taxon of the tree,
// in a pre-order traversal,
// with the accumulated counts,
// counts,
// and score of every sample,
// as well as the rank and name of the taxon.
//
// If indexes is not empty,
// only the counts of the indicated samples
// are reported
// (used when comparing a restricted set of samples).
func (t *MultiTree) Items(tx Taxonomy, indexes []int) []Item {
	var items []Item
	if t.root == nil {
		return nil
	}
	items = itemsOf(tx, taxonomy.Root, t.root, indexes, items)
	return items
}

func itemsOf(tx Taxonomy, id TaxID, n *MultiNode, indexes []int, items []Item) []Item {
	it := Item{TaxID: id}
	if len(indexes) > 0 {
		it.Counts = make([]int, 0, len(indexes))
		for _, i := range indexes {
			it.Counts = append(it.Counts, n.Counts[i])
		}
	} else {
		it.Name = tx.Name(id)
		it.Rank = n.Rank
		it.Counts = n.Counts
		it.Accs = n.Accs
		it.Scores = n.Scores
	}
	items = append(items, it)

	for _, c := range sortedMultiIDs(n.Children) {
		items = itemsOf(tx, c, n.Children[c], indexes, items)
	}
	return items
}
