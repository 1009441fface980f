// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package draw

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/js-arias/blind"
	"github.com/js-arias/retax/taxtree"
)

const yStep = 12

type node struct {
	x     float64
	y     int
	topY  int
	botY  int
	r     float64
	color color.Color

	tax   string
	score float64

	anc  *node
	desc []*node
}

type svgTree struct {
	y     int
	x     float64
	taxSz int
	root  *node
}

func copyTree(tx taxtree.Taxonomy, t *taxtree.Tree, xStep float64) svgTree {
	maxSz := 0
	maxAcc := 0
	var root *node

	// the parent of a node at depth d
	// is the last node seen at depth d-1
	var stack []*node
	t.Walk(tx, func(v taxtree.Visit) {
		var anc *node
		if v.Depth > 0 {
			anc = stack[v.Depth-1]
		}

		n := &node{
			x:     float64(v.Depth)*xStep + 10,
			tax:   v.Name,
			score: v.Scores[0],
			anc:   anc,
		}
		acc := v.Accs[0]
		n.r = math.Sqrt(float64(acc))
		if anc == nil {
			root = n
		} else {
			anc.desc = append(anc.desc, n)
		}

		if len(stack) <= v.Depth {
			stack = append(stack, n)
		} else {
			stack[v.Depth] = n
		}
		if len(n.tax) > maxSz {
			maxSz = len(n.tax)
		}
		if acc > maxAcc {
			maxAcc = acc
		}
	})

	s := svgTree{root: root}
	if root == nil {
		return s
	}
	s.scaleRadius(root, maxAcc)
	s.prepare(root)
	s.setColor()
	s.y = s.y * yStep
	s.taxSz = maxSz

	return s
}

func (s *svgTree) scaleRadius(n *node, maxAcc int) {
	// the most abundant taxon is drawn
	// with a radius of half a row
	max := math.Sqrt(float64(maxAcc))
	n.r = n.r * (yStep / 2) / max
	if n.r < 1 {
		n.r = 1
	}

	for _, d := range n.desc {
		s.scaleRadius(d, maxAcc)
	}
}

func (s *svgTree) prepare(n *node) {
	if s.x < n.x {
		s.x = n.x
	}

	if n.desc == nil {
		n.y = s.y*yStep + 5
		s.y += 1
		return
	}

	botY := 0
	topY := math.MaxInt
	for _, d := range n.desc {
		s.prepare(d)
		if d.y < topY {
			topY = d.y
		}
		if d.y > botY {
			botY = d.y
		}
	}
	n.topY = topY
	n.botY = botY
	n.y = topY + (botY-topY)/2
}

func (s *svgTree) setColor() {
	min, max := s.scoreRange(s.root, math.MaxFloat64, -math.MaxFloat64)
	s.root.setColor(min, max)
}

func (s *svgTree) scoreRange(n *node, min, max float64) (float64, float64) {
	if n.score != taxtree.NoScore {
		if n.score < min {
			min = n.score
		}
		if n.score > max {
			max = n.score
		}
	}
	for _, d := range n.desc {
		min, max = s.scoreRange(d, min, max)
	}
	return min, max
}

func (n *node) setColor(min, max float64) {
	// unscored taxa are drawn in gray
	n.color = color.RGBA{128, 128, 128, 255}
	if n.score != taxtree.NoScore {
		v := 0.5
		if max > min {
			v = (n.score - min) / (max - min)
		}
		n.color = blind.Sequential(blind.Iridescent, v)
	}

	for _, d := range n.desc {
		d.setColor(min, max)
	}
}

func (s *svgTree) draw(w io.Writer) error {
	fmt.Fprintf(w, "%s", xml.Header)
	e := xml.NewEncoder(w)
	svg := xml.StartElement{
		Name: xml.Name{Local: "svg"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "height"}, Value: strconv.Itoa(s.y + 5)},
			// assume that each character has 6 pixels wide
			{Name: xml.Name{Local: "width"}, Value: strconv.Itoa(int(s.x) + s.taxSz*6 + 20)},
			{Name: xml.Name{Local: "xmlns"}, Value: "http://www.w3.org/2000/svg"},
		},
	}
	e.EncodeToken(svg)

	g := xml.StartElement{
		Name: xml.Name{Local: "g"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "stroke-width"}, Value: "2"},
			{Name: xml.Name{Local: "stroke"}, Value: "black"},
			{Name: xml.Name{Local: "stroke-linecap"}, Value: "round"},
			{Name: xml.Name{Local: "font-family"}, Value: "Verdana"},
			{Name: xml.Name{Local: "font-size"}, Value: "10"},
		},
	}
	e.EncodeToken(g)

	if s.root != nil {
		s.root.draw(e)
		s.root.label(e)
	}

	e.EncodeToken(g.End())
	e.EncodeToken(svg.End())
	if err := e.Flush(); err != nil {
		return err
	}
	return nil
}

func (n node) draw(e *xml.Encoder) {
	r, g, b, _ := n.color.RGBA()
	rgb := fmt.Sprintf("rgb(%d,%d,%d)", r>>8, g>>8, b>>8)

	// horizontal line
	if n.anc != nil {
		ln := xml.StartElement{
			Name: xml.Name{Local: "line"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "x1"}, Value: strconv.Itoa(int(n.anc.x))},
				{Name: xml.Name{Local: "y1"}, Value: strconv.Itoa(int(n.y))},
				{Name: xml.Name{Local: "x2"}, Value: strconv.Itoa(int(n.x))},
				{Name: xml.Name{Local: "y2"}, Value: strconv.Itoa(int(n.y))},
			},
		}
		e.EncodeToken(ln)
		e.EncodeToken(ln.End())
	}

	if n.desc != nil {
		// vertical line
		ln := xml.StartElement{
			Name: xml.Name{Local: "line"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "x1"}, Value: strconv.Itoa(int(n.x))},
				{Name: xml.Name{Local: "y1"}, Value: strconv.Itoa(int(n.topY))},
				{Name: xml.Name{Local: "x2"}, Value: strconv.Itoa(int(n.x))},
				{Name: xml.Name{Local: "y2"}, Value: strconv.Itoa(int(n.botY))},
			},
		}
		e.EncodeToken(ln)
		e.EncodeToken(ln.End())
	}

	cr := xml.StartElement{
		Name: xml.Name{Local: "circle"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "cx"}, Value: strconv.Itoa(int(n.x))},
			{Name: xml.Name{Local: "cy"}, Value: strconv.Itoa(int(n.y))},
			{Name: xml.Name{Local: "r"}, Value: strconv.Itoa(int(n.r))},
			{Name: xml.Name{Local: "fill"}, Value: rgb},
			{Name: xml.Name{Local: "stroke-width"}, Value: "1"},
		},
	}
	e.EncodeToken(cr)
	e.EncodeToken(cr.End())

	for _, d := range n.desc {
		d.draw(e)
	}
}

func (n node) label(e *xml.Encoder) {
	if n.desc == nil {
		tx := xml.StartElement{
			Name: xml.Name{Local: "text"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "x"}, Value: strconv.Itoa(int(n.x + 10))},
				{Name: xml.Name{Local: "y"}, Value: strconv.Itoa(int(n.y + 5))},
				{Name: xml.Name{Local: "stroke-width"}, Value: "0"},
				{Name: xml.Name{Local: "font-style"}, Value: "italic"},
			},
		}
		e.EncodeToken(tx)
		e.EncodeToken(xml.CharData(n.tax))
		e.EncodeToken(tx.End())
	}

	for _, d := range n.desc {
		d.label(e)
	}
}
