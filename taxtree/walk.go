// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxtree

import (
	"github.com/js-arias/retax/rank"
	"github.com/js-arias/retax/taxonomy"
)

// A Visit is the view of a node
// given to the callback of a tree traversal.
// Counts,
// accumulated counts,
// and scores have one value per sample,
// in the sample order of the tree
// (a single-sample tree has a single slot).
type Visit struct {
	TaxID TaxID
	Name  string
	Rank  rank.Rank
	Depth int

	// Per sample values
	Counts []int
	Accs   []int
	Scores []float64

	// True if the node has children,
	// which will be visited
	// after the callback returns
	HasChildren bool
}

// Walk traverses the tree in pre-order,
// parents before children,
// calling fn once per node.
// Names are resolved with the reference taxonomy.
// Children are visited in the numeric order
// of their taxids.
func (t *Tree) Walk(tx Taxonomy, fn func(Visit)) {
	walk(tx, taxonomy.Root, t.root, 0, fn)
}

func walk(tx Taxonomy, id TaxID, n *Node, depth int, fn func(Visit)) {
	fn(Visit{
		TaxID:       id,
		Name:        tx.Name(id),
		Rank:        n.Rank,
		Depth:       depth,
		Counts:      []int{n.Counts},
		Accs:        []int{n.Acc},
		Scores:      []float64{n.Score},
		HasChildren: len(n.Children) > 0,
	})
	for _, c := range sortedIDs(n.Children) {
		walk(tx, c, n.Children[c], depth+1, fn)
	}
}

// Walk traverses the tree in pre-order,
// parents before children,
// calling fn once per node.
// Names are resolved with the reference taxonomy.
// Children are visited in the numeric order
// of their taxids.
func (t *MultiTree) Walk(tx Taxonomy, fn func(Visit)) {
	if t.root == nil {
		return
	}
	walkMulti(tx, taxonomy.Root, t.root, 0, fn)
}

func walkMulti(tx Taxonomy, id TaxID, n *MultiNode, depth int, fn func(Visit)) {
	fn(Visit{
		TaxID:       id,
		Name:        tx.Name(id),
		Rank:        n.Rank,
		Depth:       depth,
		Counts:      n.Counts,
		Accs:        n.Accs,
		Scores:      n.Scores,
		HasChildren: len(n.Children) > 0,
	})
	for _, c := range sortedMultiIDs(n.Children) {
		walkMulti(tx, c, n.Children[c], depth+1, fn)
	}
}

func sortedIDs(m map[TaxID]*Node) []TaxID {
	ids := make([]TaxID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	taxonomy.SortIDs(ids)
	return ids
}

func sortedMultiIDs(m map[TaxID]*MultiNode) []TaxID {
	ids := make([]TaxID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	taxonomy.SortIDs(ids)
	return ids
}
