// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxonomy provides a reference taxonomy
// read from the NCBI taxonomy dump files.
//
// The taxonomy is a rooted graph of taxa,
// each one identified by a taxid,
// with a rank,
// a scientific name,
// and a list of children
// in the order given by the source files.
package taxonomy

import (
	"fmt"

	"github.com/js-arias/retax/rank"
)

// A TaxID is the identifier of a taxon
// in a reference taxonomy.
type TaxID string

// Root is the taxid of the root node,
// the universal ancestor of all taxa.
const Root TaxID = "1"

type taxon struct {
	id     TaxID
	parent TaxID
	rank   rank.Rank
	name   string

	children []TaxID
}

// A Taxonomy is a reference taxonomy,
// a collection of taxa
// forming a rooted graph.
type Taxonomy struct {
	taxa map[TaxID]*taxon
}

// New creates a new empty taxonomy
// that contains only the root node.
func New() *Taxonomy {
	tx := &Taxonomy{
		taxa: make(map[TaxID]*taxon),
	}
	tx.taxa[Root] = &taxon{
		id:     Root,
		parent: Root,
		rank:   rank.NoRank,
		name:   "root",
	}
	return tx
}

// Add adds a taxon to the taxonomy
// as a child of the indicated parent.
// The parent must be already in the taxonomy.
func (tx *Taxonomy) Add(id, parent TaxID, r rank.Rank, name string) error {
	if id == "" {
		return fmt.Errorf("taxon without identifier")
	}
	if _, ok := tx.taxa[id]; ok {
		return fmt.Errorf("taxon %q already in taxonomy", id)
	}
	p, ok := tx.taxa[parent]
	if !ok {
		return fmt.Errorf("taxon %q: parent %q not in taxonomy", id, parent)
	}

	tx.taxa[id] = &taxon{
		id:     id,
		parent: parent,
		rank:   r,
		name:   name,
	}
	p.children = append(p.children, id)
	return nil
}

// Children returns the children of a taxon,
// in the order in which they were added.
// It returns nil for a terminal taxon
// or a taxon not in the taxonomy.
func (tx *Taxonomy) Children(id TaxID) []TaxID {
	tax, ok := tx.taxa[id]
	if !ok {
		return nil
	}
	return tax.children
}

// Len returns the number of taxa in the taxonomy.
func (tx *Taxonomy) Len() int {
	return len(tx.taxa)
}

// Name returns the scientific name of a taxon.
func (tx *Taxonomy) Name(id TaxID) string {
	tax, ok := tx.taxa[id]
	if !ok {
		return ""
	}
	return tax.name
}

// Parent returns the parent of a taxon.
// The parent of the root is the root itself.
func (tx *Taxonomy) Parent(id TaxID) TaxID {
	tax, ok := tx.taxa[id]
	if !ok {
		return ""
	}
	return tax.parent
}

// Parents returns the parent relations of the whole taxonomy
// as a map of taxids to parent taxids.
func (tx *Taxonomy) Parents() map[TaxID]TaxID {
	p := make(map[TaxID]TaxID, len(tx.taxa))
	for id, tax := range tx.taxa {
		p[id] = tax.parent
	}
	return p
}

// Rank returns the rank of a taxon.
// A taxon not in the taxonomy
// is reported as unclassified.
func (tx *Taxonomy) Rank(id TaxID) rank.Rank {
	tax, ok := tx.taxa[id]
	if !ok {
		return rank.Unclassified
	}
	return tax.rank
}

// SetName sets the scientific name of a taxon
// already in the taxonomy.
func (tx *Taxonomy) SetName(id TaxID, name string) error {
	tax, ok := tx.taxa[id]
	if !ok {
		return fmt.Errorf("taxon %q not in taxonomy", id)
	}
	tax.name = name
	return nil
}
