// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxdump implements a command to set
// the reference taxonomy of a retax project.
package taxdump

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/retax/project"
	"github.com/js-arias/retax/taxonomy"
)

var Command = &command.Command{
	Usage: `taxdump [--nodes <nodes-file>] [--names <names-file>]
	<project-file> [<taxdump-dir>]`,
	Short: "set the reference taxonomy of a project",
	Long: `
Command taxdump sets the NCBI taxonomy dump files used as the reference
taxonomy of a retax project.

The first argument of the command is the name of the project file. If the
project file does not exist, a new project will be created. The second
argument is the path of a directory with the dump files "nodes.dmp" and
"names.dmp", as extracted from the taxdump archive distributed by NCBI.

The flags --nodes and --names define explicit paths for the dump files, and
override the files of the taxdump directory.

The dump files are read before updating the project, so an invalid taxonomy
is rejected immediately.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var nodesFile string
var namesFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&nodesFile, "nodes", "", "")
	c.Flags().StringVar(&namesFile, "names", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	nf := nodesFile
	mf := namesFile
	if len(args) > 1 {
		if nf == "" {
			nf = filepath.Join(args[1], "nodes.dmp")
		}
		if mf == "" {
			mf = filepath.Join(args[1], "names.dmp")
		}
	}
	if nf == "" || mf == "" {
		return c.UsageError("undefined taxonomy dump files")
	}

	tx, err := readTaxonomy(nf, mf)
	if err != nil {
		return err
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}
	p.Add(project.Nodes, nf)
	p.Add(project.Names, mf)
	if err := p.Write(); err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "taxonomy with %d taxa set in project %q\n", tx.Len(), p.Name())
	return nil
}

func readTaxonomy(nf, mf string) (*taxonomy.Taxonomy, error) {
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

func openProject(name string) (*project.Project, error) {
	if _, err := os.Stat(name); err == nil {
		return project.Read(name)
	}
	p := project.New()
	p.SetName(name)
	return p, nil
}
