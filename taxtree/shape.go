// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxtree

// Shape accumulates read counts from the tips to the root,
// so after shaping,
// the accumulated counts of a node
// are its own counts
// plus the accumulated counts of all its children.
//
// Children without accumulated counts are removed,
// as they carry no information for the sample.
// A node without reads assigned directly
// but with accumulated counts
// gets as score the average of the scores of its children,
// weighted by their accumulated counts.
// An empty branch keeps NoScore.
//
// Shaping twice yields the same tree as shaping once.
func (t *Tree) Shape() {
	shape(t.root)
}

func shape(n *Node) {
	n.Acc = n.Counts
	for id, c := range n.Children {
		shape(c)
		if c.Acc == 0 {
			delete(n.Children, id)
			continue
		}
		n.Acc += c.Acc
	}

	if n.Counts > 0 {
		// keep the score assigned at growth time
		return
	}
	if n.Acc == 0 {
		// an empty branch remains without score
		return
	}
	var score float64
	for _, c := range n.Children {
		score += c.Score * float64(c.Acc) / float64(n.Acc)
	}
	n.Score = score
}
