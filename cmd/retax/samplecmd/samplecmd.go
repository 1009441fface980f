// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package samplecmd is a metapackage for commands
// that dealt with the samples of a retax project.
package samplecmd

import (
	"github.com/js-arias/command"
	"github.com/js-arias/retax/cmd/retax/samplecmd/add"
	"github.com/js-arias/retax/cmd/retax/samplecmd/list"
)

var Command = &command.Command{
	Usage: "sample <command> [<argument>...]",
	Short: "commands for the samples of a project",
}

func init() {
	Command.Add(add.Command)
	Command.Add(list.Command)
}
