// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxtree implements an abundance tree
// for the results of a taxonomic classification.
//
// An abundance tree mirrors a reference taxonomy
// and stores the number of reads
// assigned to each taxon,
// with an optional confidence score.
// The tree is grown from the classification results of a sample,
// then shaped to accumulate read counts
// from the tips to the root,
// and can be pruned to remove low abundant
// or low rank taxa.
// Several shaped trees can be merged
// into a multi-sample tree
// for comparative analysis.
package taxtree

import (
	"math"

	"github.com/js-arias/retax/rank"
	"github.com/js-arias/retax/taxonomy"
)

// A TaxID is the identifier of a taxon
// in the reference taxonomy.
type TaxID = taxonomy.TaxID

// A Taxonomy is a reference taxonomy
// used to grow an abundance tree.
// It is usually a taxonomy.Taxonomy.
type Taxonomy interface {
	// Rank returns the rank of a taxon.
	Rank(TaxID) rank.Rank

	// Name returns the scientific name of a taxon.
	Name(TaxID) string

	// Children returns the children of a taxon,
	// in a stable order.
	Children(TaxID) []TaxID
}

// NoScore is the score of a node
// without a confidence score.
var NoScore = math.Inf(-1)

// A Node is a taxon in an abundance tree.
// Each node owns its children,
// so no node is shared between two trees.
type Node struct {
	// Reads assigned directly to this taxon
	// (and not to any of its descendants)
	Counts int

	// Rank of the taxon
	Rank rank.Rank

	// Confidence score of the taxon,
	// NoScore if no score was assigned
	Score float64

	// Accumulated reads
	// (own plus all descendants),
	// zero until Shape is called
	Acc int

	// Children of the node
	Children map[TaxID]*Node
}

// A Tree is an abundance tree for a single sample.
type Tree struct {
	root *Node
}

// Grow creates an abundance tree for a sample
// by a recursive descent on the reference taxonomy
// from the root taxon.
//
// Abund contains the number of reads
// assigned to each taxid
// and scores the confidence score,
// if any,
// for each taxid.
// If abund is empty,
// a single synthetic read is assigned to the root,
// so the resulting tree has at least one node.
//
// A taxid repeated on the path from the root
// (a back-edge in the taxonomy graph)
// terminates that branch,
// so the tree is always finite
// and no taxid appears twice
// on any root-to-node path.
func Grow(tx Taxonomy, abund map[TaxID]int, scores map[TaxID]float64) *Tree {
	if len(abund) == 0 {
		abund = map[TaxID]int{taxonomy.Root: 1}
	}
	return &Tree{
		root: grow(tx, abund, scores, taxonomy.Root, nil),
	}
}

func grow(tx Taxonomy, abund map[TaxID]int, scores map[TaxID]float64, id TaxID, path []TaxID) *Node {
	n := &Node{
		Counts: abund[id],
		Rank:   tx.Rank(id),
		Score:  scoreOf(scores, id),
	}

	path = append(path, id)
	for _, c := range tx.Children(id) {
		if onPath(path, c) {
			continue
		}
		nc := grow(tx, abund, scores, c, path)
		if n.Children == nil {
			n.Children = make(map[TaxID]*Node)
		}
		n.Children[c] = nc
	}
	return n
}

func onPath(path []TaxID, id TaxID) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}
	return false
}

func scoreOf(scores map[TaxID]float64, id TaxID) float64 {
	if s, ok := scores[id]; ok {
		return s
	}
	return NoScore
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node {
	return t.root
}
