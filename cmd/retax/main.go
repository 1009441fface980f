// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Retax is a tool for comparative analysis
// of taxonomic classification results.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/retax/cmd/retax/draw"
	"github.com/js-arias/retax/cmd/retax/extract"
	"github.com/js-arias/retax/cmd/retax/lineage"
	"github.com/js-arias/retax/cmd/retax/report"
	"github.com/js-arias/retax/cmd/retax/samplecmd"
	"github.com/js-arias/retax/cmd/retax/stats"
	"github.com/js-arias/retax/cmd/retax/taxa"
	"github.com/js-arias/retax/cmd/retax/taxdump"
)

var app = &command.Command{
	Usage: "retax <command> [<argument>...]",
	Short: "a tool for comparative analysis of taxonomic classifications",
}

func init() {
	app.Add(draw.Command)
	app.Add(extract.Command)
	app.Add(lineage.Command)
	app.Add(report.Command)
	app.Add(samplecmd.Command)
	app.Add(stats.Command)
	app.Add(taxa.Command)
	app.Add(taxdump.Command)
}

func main() {
	app.Main()
}
