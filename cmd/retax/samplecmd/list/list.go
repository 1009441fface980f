// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the list of samples in a retax project.
package list

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/retax/profile"
	"github.com/js-arias/retax/project"
)

var Command = &command.Command{
	Usage: "list [--reads] <project-file>",
	Short: "print a list of the samples in a project",
	Long: `
Command list reads the samples from a retax project and print the sample
names in the standard output, in the sample order of the project.

The argument of the command is the name of the project file.

If the flag --reads is set, the number of assigned reads and the number of
taxa of each sample will be printed next to the sample name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var withReads bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&withReads, "reads", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	sf := p.Path(project.Samples)
	if sf == "" {
		return nil
	}
	ls, err := project.ReadSamples(sf)
	if err != nil {
		return err
	}

	for _, s := range ls {
		if !withReads {
			fmt.Fprintf(c.Stdout(), "%s\n", s.Name)
			continue
		}
		prof, err := readProfile(s.Path)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "%s\t%d reads\t%d taxa\n", s.Name, prof.Reads(), prof.Len())
	}
	return nil
}

func readProfile(name string) (*profile.Profile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := profile.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return p, nil
}
