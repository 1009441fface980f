// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rank provides the linnean ranks
// used in a reference taxonomy,
// with a total order from fine to coarse levels.
package rank

import (
	"fmt"
	"strings"
)

// A Rank is a taxonomic category
// in a reference taxonomy.
// Ranks are ordered,
// so a coarser rank
// (for example Kingdom)
// is always greater than a finer rank
// (for example Genus).
type Rank int

// Valid taxonomic ranks,
// from finest to coarsest.
// Unclassified is the sentinel rank
// for taxa without a classification,
// and is finer than any real rank.
const (
	Unclassified Rank = iota
	NoRank
	Forma
	Varietas
	Subspecies
	Species
	SpeciesSubgroup
	SpeciesGroup
	Subgenus
	Genus
	Subtribe
	Tribe
	Subfamily
	Family
	Superfamily
	Parvorder
	Infraorder
	Suborder
	Order
	Superorder
	Cohort
	Infraclass
	Subclass
	Class
	Superclass
	Subphylum
	Phylum
	Superphylum
	Subkingdom
	Kingdom
	Superkingdom
	Domain
)

var names = map[Rank]string{
	Unclassified:    "unclassified",
	NoRank:          "no rank",
	Forma:           "forma",
	Varietas:        "varietas",
	Subspecies:      "subspecies",
	Species:         "species",
	SpeciesSubgroup: "species subgroup",
	SpeciesGroup:    "species group",
	Subgenus:        "subgenus",
	Genus:           "genus",
	Subtribe:        "subtribe",
	Tribe:           "tribe",
	Subfamily:       "subfamily",
	Family:          "family",
	Superfamily:     "superfamily",
	Parvorder:       "parvorder",
	Infraorder:      "infraorder",
	Suborder:        "suborder",
	Order:           "order",
	Superorder:      "superorder",
	Cohort:          "cohort",
	Infraclass:      "infraclass",
	Subclass:        "subclass",
	Class:           "class",
	Superclass:      "superclass",
	Subphylum:       "subphylum",
	Phylum:          "phylum",
	Superphylum:     "superphylum",
	Subkingdom:      "subkingdom",
	Kingdom:         "kingdom",
	Superkingdom:    "superkingdom",
	Domain:          "domain",
}

// String returns the rank name,
// in lower caps,
// as used in the NCBI taxonomy dump files.
func (r Rank) String() string {
	if n, ok := names[r]; ok {
		return n
	}
	return "unclassified"
}

// Parse returns a rank
// from a rank name,
// ignoring caps and
// accepting underscores as spaces
// (so both "species group" and "Species_Group" are valid).
// An unknown rank name is an error.
func Parse(s string) (Rank, error) {
	s = strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(s, "_", " "))), " ")
	for r, n := range names {
		if s == n {
			return r, nil
		}
	}
	return Unclassified, fmt.Errorf("unknown rank %q", s)
}

// List returns the valid ranks,
// from the finest to the coarsest.
func List() []Rank {
	ls := make([]Rank, 0, len(names))
	for r := Unclassified; r <= Domain; r++ {
		ls = append(ls, r)
	}
	return ls
}
