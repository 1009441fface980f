// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/retax/taxonomy"
)

// Taxonomy reads the reference taxonomy
// from the taxonomy dump files
// defined in a project.
func (p *Project) Taxonomy() (*taxonomy.Taxonomy, error) {
	nf := p.Path(Nodes)
	if nf == "" {
		return nil, fmt.Errorf("taxonomy nodes not defined in project %q", p.name)
	}
	mf := p.Path(Names)
	if mf == "" {
		return nil, fmt.Errorf("taxonomy names not defined in project %q", p.name)
	}

	nodes, err := os.Open(nf)
	if err != nil {
		return nil, err
	}
	defer nodes.Close()

	names, err := os.Open(mf)
	if err != nil {
		return nil, err
	}
	defer names.Close()

	tx, err := taxonomy.Read(nodes, names)
	if err != nil {
		return nil, fmt.Errorf("on taxonomy files %q, %q: %v", nf, mf, err)
	}
	return tx, nil
}
