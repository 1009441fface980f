// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package krona implements the export of abundance trees
// as Krona documents
// for interactive visualization.
//
// For details of the document format see:
// https://github.com/marbl/Krona/wiki/Krona-2.0-XML-Specification
package krona

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/js-arias/retax/taxtree"
)

// A Scoring is the identifier of the scoring scheme
// used by the classifier that produced the scores.
// It only affects the score labels of the document.
type Scoring string

// Valid scoring schemes.
const (
	// Single hit equivalent length.
	Shel Scoring = "shel"

	// Average read length.
	Length Scoring = "length"

	// Average read length,
	// in logarithmic scale.
	LogLength Scoring = "loglength"

	// Confidence normalized by read length.
	Norma Scoring = "norma"

	// Average LMAT score.
	Lmat Scoring = "lmat"
)

// ParseScoring returns a scoring scheme
// from a string.
// An unknown scheme is a configuration error,
// reported immediately
// instead of deferred into the document build.
func ParseScoring(s string) (Scoring, error) {
	sc := Scoring(strings.ToLower(strings.TrimSpace(s)))
	if _, err := sc.display(); err != nil {
		return "", err
	}
	return sc, nil
}

func (sc Scoring) display() (string, error) {
	switch sc {
	case Shel:
		return "Confidence (avg)", nil
	case Length:
		return "Read length (avg)", nil
	case LogLength:
		return "Read length (avg, log10)", nil
	case Norma:
		return "Confidence/Length (%)", nil
	case Lmat:
		return "LMAT score (avg)", nil
	}
	return "", fmt.Errorf("unknown scoring %q", string(sc))
}

// A Walker is a tree that can be traversed in pre-order,
// parents before children.
// Both taxtree.Tree and taxtree.MultiTree are walkers.
type Walker interface {
	Walk(taxtree.Taxonomy, func(taxtree.Visit))
}

// A Document is a Krona document
// for a set of samples.
type Document struct {
	samples    []string
	rawSamples int
	scoring    Scoring
	minScore   float64
	maxScore   float64

	root *element
}

// New creates an empty Krona document
// for the given samples.
// RawSamples is the number of samples
// that are not the result of a cross analysis.
// MinScore and maxScore define the range
// used for the score coloring.
func New(samples []string, rawSamples int, minScore, maxScore float64, sc Scoring) (*Document, error) {
	if _, err := sc.display(); err != nil {
		return nil, err
	}
	return &Document{
		samples:    samples,
		rawSamples: rawSamples,
		scoring:    sc,
		minScore:   minScore,
		maxScore:   maxScore,
	}, nil
}

// Samples returns the sample names of the document.
func (d *Document) Samples() []string {
	return d.samples
}

// SetTree sets the abundance tree of the document,
// traversing it in pre-order.
// The sample order of the tree
// must be the sample order of the document.
func (d *Document) SetTree(tx taxtree.Taxonomy, t Walker) {
	// A pre-order traversal with depths
	// is enough to rebuild the node nesting:
	// the parent of a node at depth d
	// is the last node seen at depth d-1.
	stack := []*element{}
	t.Walk(tx, func(v taxtree.Visit) {
		n := d.node(v)
		if v.Depth == 0 {
			d.root = n
			stack = []*element{n}
			return
		}
		stack = stack[:v.Depth]
		p := stack[len(stack)-1]
		p.children = append(p.children, n)
		stack = append(stack, n)
	})
}

// Node builds the Krona element for a visited taxon.
func (d *Document) node(v taxtree.Visit) *element {
	n := newElement("node")
	n.setAttr("name", v.Name)
	n.setAttr("href", "https://www.google.com/search?q="+v.Name)

	count := newElement("count")
	for _, c := range v.Accs {
		// zero values are written as empty tags
		// to save space
		val := newElement("val")
		if c != 0 {
			val.text = strconv.Itoa(c)
		}
		count.children = append(count.children, val)
	}
	n.children = append(n.children, count)

	// skipped if all the unassigned values are zero
	someUnassigned := false
	for _, c := range v.Counts {
		if c != 0 {
			someUnassigned = true
			break
		}
	}
	if someUnassigned {
		un := newElement("unassigned")
		for _, c := range v.Counts {
			val := newElement("val")
			if c != 0 {
				val.text = strconv.Itoa(c)
			}
			un.children = append(un.children, val)
		}
		n.children = append(n.children, un)
	}

	tid := newElement("tid")
	val := newElement("val")
	val.setAttr("href", string(v.TaxID))
	val.text = string(v.TaxID)
	tid.children = append(tid.children, val)
	n.children = append(n.children, tid)

	rk := newElement("rank")
	val = newElement("val")
	val.text = v.Rank.String()
	rk.children = append(rk.children, val)
	n.children = append(n.children, rk)

	score := newElement("score")
	for _, s := range v.Scores {
		val := newElement("val")
		if s == taxtree.NoScore {
			val.text = "0"
		} else {
			val.text = strconv.FormatFloat(s, 'f', 1, 64)
		}
		score.children = append(score.children, val)
	}
	n.children = append(n.children, score)

	return n
}
