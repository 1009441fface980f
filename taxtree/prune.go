// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxtree

import "github.com/js-arias/retax/rank"

// Prune removes low abundant
// or low rank taxa
// from a shaped tree.
//
// Only leaves are removed,
// in a bottom-up pass,
// so a branch is removed
// only after all its descendants
// have been removed.
// A leaf is removed if its counts are below minTaxa,
// or if minRank is set
// (that is, different from rank.Unclassified)
// and the leaf rank is finer than minRank,
// or its parent rank is at minRank or finer.
//
// If collapse is true,
// the counts of a removed leaf
// are added to the counts of its parent,
// and the parent score is averaged with the leaf score,
// weighted by their respective counts,
// so no read mass is lost.
// Otherwise the counts of the removed leaf
// are discounted from the accumulated counts of the parent.
func (t *Tree) Prune(minTaxa int, minRank rank.Rank, collapse bool) {
	prune(t.root, minTaxa, minRank, collapse)
}

// Prune reports whether the node still has children
// after the pruning.
func prune(n *Node, minTaxa int, minRank rank.Rank, collapse bool) bool {
	for id, c := range n.Children {
		if len(c.Children) > 0 && prune(c, minTaxa, minRank, collapse) {
			// the pruned subtree keeps having branches
			continue
		}

		// c is a leaf,
		// either terminal or pruned to a leaf
		prunable := c.Counts < minTaxa
		if minRank != rank.Unclassified {
			if c.Rank < minRank || n.Rank <= minRank {
				prunable = true
			}
		}
		if !prunable {
			continue
		}

		if collapse {
			collapsed := n.Counts + c.Counts
			if collapsed > 0 {
				if n.Score == NoScore || c.Score == NoScore {
					// an unscored side leaves the merge unscored
					n.Score = NoScore
				} else {
					n.Score = (n.Score*float64(n.Counts) + c.Score*float64(c.Counts)) / float64(collapsed)
				}
				n.Counts = collapsed
			}
		} else {
			if n.Acc > c.Counts {
				n.Acc -= c.Counts
			} else {
				n.Acc = 0
			}
		}
		delete(n.Children, id)
	}
	return len(n.Children) > 0
}
