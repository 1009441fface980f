// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxtree

import (
	"fmt"
	"io"

	"github.com/js-arias/retax/taxonomy"
)

// Trace searches for a taxon in the tree
// by a backtracking depth first search,
// appending to nodes the taxids on the path
// from the root to the target,
// both included.
// It reports whether the target was found;
// on failure nodes is left as given.
func (t *Tree) Trace(target TaxID, nodes *[]TaxID) bool {
	if len(t.root.Children) == 0 {
		return false
	}

	*nodes = append(*nodes, taxonomy.Root)
	if _, ok := t.root.Children[target]; ok && target != taxonomy.Root {
		*nodes = append(*nodes, target)
		return true
	}
	if trace(t.root, target, nodes) {
		return true
	}
	*nodes = (*nodes)[:len(*nodes)-1]
	return false
}

func trace(n *Node, target TaxID, nodes *[]TaxID) bool {
	for id, c := range n.Children {
		if len(c.Children) == 0 {
			continue
		}

		*nodes = append(*nodes, id)
		if _, ok := c.Children[target]; ok && target != taxonomy.Root {
			*nodes = append(*nodes, target)
			return true
		}
		if trace(c, target, nodes) {
			return true
		}
		// not in this subtree,
		// backtrack and try a sibling
		*nodes = (*nodes)[:len(*nodes)-1]
	}
	return false
}

// Lineage returns the path from the root of the tree
// to each of the given taxids.
// Parents are the parent relations of the reference taxonomy
// (see taxonomy.Taxonomy.Parents).
//
// A taxid unknown to the taxonomy,
// or not found in the tree,
// is skipped with a warning written to w,
// and never aborts the whole batch.
func (t *Tree) Lineage(parents map[TaxID]TaxID, taxids []TaxID, w io.Writer) map[TaxID][]TaxID {
	if w == nil {
		w = io.Discard
	}

	traced := make(map[TaxID][]TaxID, len(taxids))
	for _, id := range taxids {
		if id == taxonomy.Root {
			// the root is always its own lineage
			traced[taxonomy.Root] = []TaxID{taxonomy.Root}
			continue
		}
		if _, ok := parents[id]; !ok {
			fmt.Fprintf(w, "warning: discarded unknown taxid %s: missing in parents\n", id)
			continue
		}

		var nodes []TaxID
		if !t.Trace(id, &nodes) {
			fmt.Fprintf(w, "warning: failed tracing of taxid %s: missing in tree\n", id)
			continue
		}
		traced[id] = nodes
	}
	return traced
}
