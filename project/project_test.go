// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"reflect"
	"slices"
	"testing"

	"github.com/js-arias/retax/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Nodes, "taxdump/nodes.dmp"},
		{project.Names, "taxdump/names.dmp"},
		{project.Samples, "samples.tab"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := "tmp-project-for-test.tab"
	defer os.Remove(name)

	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)
	if np.Name() != name {
		t.Errorf("name: got %q, want %q", np.Name(), name)
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}
	slices.Sort(datasets)

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}

func TestSamples(t *testing.T) {
	ls := []project.Sample{
		{Name: "gut-ctrl", Path: "profiles/gut-ctrl.tab"},
		{Name: "gut-case", Path: "profiles/gut-case.tab"},
		{Name: "skin", Path: "profiles/skin.tab"},
	}

	name := "tmp-samples-for-test.tab"
	defer os.Remove(name)

	if err := project.WriteSamples(name, ls); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	nl, err := project.ReadSamples(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}

	// the sample order of the file must be preserved
	if !reflect.DeepEqual(nl, ls) {
		t.Errorf("samples: got %v, want %v", nl, ls)
	}
}

func TestSamplesRepeated(t *testing.T) {
	ls := []project.Sample{
		{Name: "gut", Path: "profiles/gut-1.tab"},
		{Name: "gut", Path: "profiles/gut-2.tab"},
	}

	name := "tmp-samples-for-test.tab"
	defer os.Remove(name)

	if err := project.WriteSamples(name, ls); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	if _, err := project.ReadSamples(name); err == nil {
		t.Errorf("samples: expecting error for a repeated sample")
	}
}
