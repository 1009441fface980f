// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxtree

import (
	"github.com/js-arias/retax/rank"
	"github.com/js-arias/retax/taxonomy"
)

// A Filter restricts the taxa retrieved
// from an abundance tree.
// The zero value of a filter
// retrieves every taxon in the tree.
type Filter struct {
	// Depth bounds for the retrieved taxa.
	// The root is at depth zero,
	// and a zero bound means no bound at all.
	MinDepth int
	MaxDepth int

	// Include contains the root taxids
	// of the subtrees to be retrieved.
	// If empty,
	// all taxa are candidates for retrieval.
	Include map[TaxID]bool

	// Exclude contains the root taxids
	// of the subtrees to be discarded.
	// Exclusion always wins over inclusion.
	Exclude map[TaxID]bool

	// JustLevel restricts the retrieved taxa
	// to a single rank.
	// The zero value
	// (rank.Unclassified)
	// means taxa of any rank.
	JustLevel rank.Rank
}

// Values are the values retrieved
// for the taxa of an abundance tree.
// Only the non-nil maps are populated,
// so the caller decides which values to retrieve.
// Scores are recorded only for taxa
// with a score different from NoScore.
type Values struct {
	Counts map[TaxID]int
	Accs   map[TaxID]int
	Scores map[TaxID]float64
	Ranks  map[TaxID]rank.Rank
}

// NewValues returns a values collection
// with all the maps initialized.
func NewValues() *Values {
	return &Values{
		Counts: make(map[TaxID]int),
		Accs:   make(map[TaxID]int),
		Scores: make(map[TaxID]float64),
		Ranks:  make(map[TaxID]rank.Rank),
	}
}

// Taxa retrieves the taxa of the tree
// that pass the given filter,
// storing their values
// in the non-nil maps of out.
func (t *Tree) Taxa(f Filter, out *Values) {
	t.taxa(taxonomy.Root, t.root, 0, len(f.Include) == 0, f, out)
}

func (t *Tree) taxa(id TaxID, n *Node, depth int, inBranch bool, f Filter, out *Values) {
	if f.MaxDepth > 0 && depth > f.MaxDepth {
		return
	}

	inBranch = (inBranch || f.Include[id]) && !f.Exclude[id]
	if depth >= f.MinDepth && inBranch {
		if f.JustLevel == rank.Unclassified || n.Rank == f.JustLevel {
			record(id, n, out)
		}
	}

	for c, nc := range n.Children {
		t.taxa(c, nc, depth+1, inBranch, f, out)
	}
}

func record(id TaxID, n *Node, out *Values) {
	if out.Counts != nil {
		out.Counts[id] = n.Counts
	}
	if out.Accs != nil {
		out.Accs[id] = n.Acc
	}
	if out.Scores != nil && n.Score != NoScore {
		out.Scores[id] = n.Score
	}
	if out.Ranks != nil {
		out.Ranks[id] = n.Rank
	}
}
