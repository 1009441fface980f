// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package krona

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// An element is an XML element
// of a Krona document.
// Krona does not support empty-element tags,
// so elements are always written
// with an open and a close tag.
type element struct {
	tag      string
	attrs    []string // name-value pairs
	text     string
	children []*element
}

func newElement(tag string) *element {
	return &element{tag: tag}
}

func (e *element) setAttr(name, value string) {
	e.attrs = append(e.attrs, name, value)
}

func (e *element) write(w io.Writer, indent int) error {
	pre := ""
	for i := 0; i < indent; i++ {
		pre += "  "
	}

	if _, err := fmt.Fprintf(w, "%s<%s", pre, e.tag); err != nil {
		return err
	}
	for i := 0; i < len(e.attrs); i += 2 {
		if _, err := fmt.Fprintf(w, " %s=\"%s\"", e.attrs[i], escape(e.attrs[i+1])); err != nil {
			return err
		}
	}
	if len(e.children) == 0 {
		_, err := fmt.Fprintf(w, ">%s</%s>\n", escape(e.text), e.tag)
		return err
	}

	if _, err := fmt.Fprintf(w, ">%s\n", escape(e.text)); err != nil {
		return err
	}
	for _, c := range e.children {
		if err := c.write(w, indent+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</%s>\n", pre, e.tag)
	return err
}

func escape(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// WriteXML writes the document as Krona XML.
func (d *Document) WriteXML(w io.Writer) error {
	k := d.build()
	return k.write(w, 0)
}

// Build builds the whole document tree:
// the attribute declarations,
// the datasets,
// the color scale,
// and the tree nodes.
func (d *Document) build() *element {
	k := newElement("krona")
	k.setAttr("collapse", "true")
	k.setAttr("key", "true")

	attrs := newElement("attributes")
	attrs.setAttr("magnitude", "count")

	count := newElement("attribute")
	count.setAttr("display", "Count")
	count.setAttr("dataAll", "members")
	count.text = "count"
	attrs.children = append(attrs.children, count)

	un := newElement("attribute")
	un.setAttr("display", "Unassigned")
	un.setAttr("dataNode", "members")
	un.text = "unassigned"
	attrs.children = append(attrs.children, un)

	tid := newElement("attribute")
	tid.setAttr("display", "TaxID")
	tid.setAttr("mono", "true")
	tid.setAttr("hrefBase", "https://www.ncbi.nlm.nih.gov/Taxonomy/Browser/wwwtax.cgi?mode=Info&id=")
	tid.text = "tid"
	attrs.children = append(attrs.children, tid)

	rk := newElement("attribute")
	rk.setAttr("display", "Rank")
	rk.setAttr("mono", "true")
	rk.text = "rank"
	attrs.children = append(attrs.children, rk)

	// the scoring was validated at the document creation
	display, _ := d.scoring.display()
	score := newElement("attribute")
	score.setAttr("display", display)
	score.text = "score"
	attrs.children = append(attrs.children, score)

	k.children = append(k.children, attrs)

	ds := newElement("datasets")
	ds.setAttr("rawSamples", strconv.Itoa(d.rawSamples))
	for _, s := range d.samples {
		e := newElement("dataset")
		e.text = s
		ds.children = append(ds.children, e)
	}
	k.children = append(k.children, ds)

	color := newElement("color")
	color.setAttr("attribute", "score")
	color.setAttr("hueStart", "0")
	color.setAttr("hueEnd", "300")
	color.setAttr("valueStart", strconv.FormatFloat(d.minScore, 'f', 1, 64))
	color.setAttr("valueEnd", strconv.FormatFloat(d.maxScore, 'f', 1, 64))
	color.setAttr("default", "true")
	color.text = " "
	k.children = append(k.children, color)

	if d.root != nil {
		k.children = append(k.children, d.root)
	}
	return k
}
