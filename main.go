// elCheck: input sanity checks for genome-annotation pipelines.
// Copyright (c) 2024 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://www.gnu.org/licenses/>.

// elCheck checks the inputs of a genome-annotation pipeline before
// the expensive stages start: sequence indexes against BED and chain
// files, and U12 and isoforms files against the annotated transcripts.
// Filtered copies of the U12 and isoforms files are written for the
// later stages of the pipeline.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/elcheck/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: check, check-2bit, filter-u12, filter-isoforms, check-classified")
	fmt.Fprint(os.Stderr, "\n", cmd.CheckHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.CheckTwoBitHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.FilterU12Help)
	fmt.Fprint(os.Stderr, "\n", cmd.FilterIsoformsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.CheckClassifiedHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage, "\n")
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "check":
		err = cmd.Check()
	case "check-2bit":
		err = cmd.CheckTwoBit()
	case "filter-u12":
		err = cmd.FilterU12()
	case "filter-isoforms":
		err = cmd.FilterIsoforms()
	case "check-classified":
		err = cmd.CheckClassified()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
