// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package profile implements reading and writing
// of taxonomic classification profiles.
//
// A profile stores the number of reads
// assigned to each taxon of a sample,
// with an optional confidence score,
// and is the input used to grow an abundance tree.
// Profiles are agnostic about the classifier
// that produced the assignments.
package profile

import (
	"github.com/js-arias/retax/taxonomy"
)

// A Profile is a collection of read counts
// and confidence scores
// assigned to the taxa of a sample.
type Profile struct {
	counts map[taxonomy.TaxID]int
	scores map[taxonomy.TaxID]float64
}

// New creates a new empty profile.
func New() *Profile {
	return &Profile{
		counts: make(map[taxonomy.TaxID]int),
		scores: make(map[taxonomy.TaxID]float64),
	}
}

// Add adds reads assigned to a taxon.
func (p *Profile) Add(id taxonomy.TaxID, reads int) {
	if id == "" || reads <= 0 {
		return
	}
	p.counts[id] += reads
}

// Count returns the number of reads
// assigned to a taxon.
func (p *Profile) Count(id taxonomy.TaxID) int {
	return p.counts[id]
}

// Counts returns the number of reads
// assigned to each taxon of the profile.
func (p *Profile) Counts() map[taxonomy.TaxID]int {
	c := make(map[taxonomy.TaxID]int, len(p.counts))
	for id, v := range p.counts {
		c[id] = v
	}
	return c
}

// Len returns the number of taxa
// with reads in the profile.
func (p *Profile) Len() int {
	return len(p.counts)
}

// Reads returns the total number of reads
// in the profile.
func (p *Profile) Reads() int {
	sum := 0
	for _, v := range p.counts {
		sum += v
	}
	return sum
}

// Score returns the confidence score of a taxon.
// Ok is false if the taxon has no score.
func (p *Profile) Score(id taxonomy.TaxID) (score float64, ok bool) {
	score, ok = p.scores[id]
	return score, ok
}

// Scores returns the confidence score
// of each scored taxon of the profile.
func (p *Profile) Scores() map[taxonomy.TaxID]float64 {
	s := make(map[taxonomy.TaxID]float64, len(p.scores))
	for id, v := range p.scores {
		s[id] = v
	}
	return s
}

// SetScore sets the confidence score of a taxon.
func (p *Profile) SetScore(id taxonomy.TaxID, score float64) {
	if id == "" {
		return
	}
	p.scores[id] = score
}

// TaxIDs returns the taxa with reads in the profile,
// in numeric order.
func (p *Profile) TaxIDs() []taxonomy.TaxID {
	ids := make([]taxonomy.TaxID, 0, len(p.counts))
	for id := range p.counts {
		ids = append(ids, id)
	}
	taxonomy.SortIDs(ids)
	return ids
}
