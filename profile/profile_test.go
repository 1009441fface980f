// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package profile_test

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/retax/profile"
	"github.com/js-arias/retax/taxonomy"
)

func TestProfile(t *testing.T) {
	p := newProfile()

	testProfile(t, "profile", p)
}

func TestRead(t *testing.T) {
	data := `# classification profile
taxid	count	score
9606	1500	150.5
9598	25	32.0
562	3
561	2
9606	20
`

	p, err := profile.Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read profile: %v", err)
	}

	testProfile(t, "read", p)
}

func TestTSV(t *testing.T) {
	p := newProfile()

	var w bytes.Buffer
	if err := p.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	np, err := profile.Read(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}

	testProfile(t, "tsv", np)
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"no taxid field": "count\tscore\n10\t0.5\n",
		"negative count": "taxid\tcount\tscore\n9606\t-3\t0.5\n",
		"empty taxid":    "taxid\tcount\tscore\n\t10\t0.5\n",
		"bad count":      "taxid\tcount\tscore\n9606\tten\t0.5\n",
		"bad score":      "taxid\tcount\tscore\n9606\t10\thigh\n",
	}
	for name, data := range tests {
		if _, err := profile.Read(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func newProfile() *profile.Profile {
	p := profile.New()

	p.Add("9606", 1500)
	p.SetScore("9606", 150.5)
	p.Add("9598", 25)
	p.SetScore("9598", 32.0)
	p.Add("562", 3)
	p.Add("561", 2)

	// repeated additions are cumulative
	p.Add("9606", 20)
	return p
}

func testProfile(t testing.TB, name string, p *profile.Profile) {
	t.Helper()

	if g := p.Len(); g != 4 {
		t.Errorf("%s: len: got %d taxa, want %d", name, g, 4)
	}
	if g := p.Reads(); g != 1550 {
		t.Errorf("%s: reads: got %d, want %d", name, g, 1550)
	}
	if g := p.Count("9606"); g != 1520 {
		t.Errorf("%s: count: got %d, want %d", name, g, 1520)
	}
	if g := p.Count("666"); g != 0 {
		t.Errorf("%s: count: got %d, want %d", name, g, 0)
	}

	s, ok := p.Score("9598")
	if !ok {
		t.Errorf("%s: score: taxon %q without score", name, "9598")
	}
	if math.Abs(s-32.0) > 1e-10 {
		t.Errorf("%s: score: got %.6f, want %.6f", name, s, 32.0)
	}
	if _, ok := p.Score("562"); ok {
		t.Errorf("%s: score: taxon %q with score, want unscored", name, "562")
	}

	ids := p.TaxIDs()
	want := []taxonomy.TaxID{"561", "562", "9598", "9606"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("%s: taxids: got %v, want %v", name, ids, want)
	}
}
