// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add samples
// to a retax project.
package add

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/retax/profile"
	"github.com/js-arias/retax/project"
)

var Command = &command.Command{
	Usage: `add [--name <sample-name>] [-f|--file <sample-file>]
	<project-file> <profile-file>...`,
	Short: "add samples to a project",
	Long: `
Command add adds one or more classification profiles as samples of a retax
project. A classification profile is a TSV file with a row per taxon, with
the fields "taxid", "count", and, optionally, "score".

The first argument of the command is the name of the project file. If the
project file does not exist, a new project will be created. The rest of the
arguments are the paths of the profile files to add.

By default, each sample is named after its profile file name, without the
extension. If the flag --name is set, its value will be used as the sample
name (valid only when a single profile is added).

By default, the sample list will be stored in the file defined in the
project, or in the file "samples.tab"; use the flag --file, or -f, to define
a different file name.

The samples will be added at the end of the sample list, so the sample order
of the project is the order in which the samples were added.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var sampleName string
var sampleFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&sampleName, "name", "", "")
	c.Flags().StringVar(&sampleFile, "file", "", "")
	c.Flags().StringVar(&sampleFile, "f", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting project and profile files")
	}
	if sampleName != "" && len(args) > 2 {
		return c.UsageError("flag --name valid only for a single profile")
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	sf := p.Path(project.Samples)
	if sampleFile != "" {
		sf = sampleFile
	}
	if sf == "" {
		sf = "samples.tab"
	}

	var ls []project.Sample
	if p.Path(project.Samples) != "" {
		ls, err = project.ReadSamples(p.Path(project.Samples))
		if err != nil {
			return err
		}
	}
	names := make(map[string]bool, len(ls))
	for _, s := range ls {
		names[s.Name] = true
	}

	added := 0
	for _, pf := range args[1:] {
		if err := validProfile(pf); err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(pf), filepath.Ext(pf))
		if sampleName != "" {
			name = sampleName
		}
		if names[name] {
			fmt.Fprintf(c.Stderr(), "warning: sample %q already in project: skipped\n", name)
			continue
		}
		names[name] = true
		ls = append(ls, project.Sample{Name: name, Path: pf})
		added++
	}
	if added == 0 {
		return nil
	}

	if err := project.WriteSamples(sf, ls); err != nil {
		return err
	}
	p.Add(project.Samples, sf)
	if err := p.Write(); err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "%d samples added to project %q\n", added, p.Name())
	return nil
}

func openProject(name string) (*project.Project, error) {
	if _, err := os.Stat(name); err == nil {
		return project.Read(name)
	}
	p := project.New()
	p.SetName(name)
	return p, nil
}

// ValidProfile reads a profile file
// to check that it is usable
// before adding it to the project.
func validProfile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := profile.Read(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
