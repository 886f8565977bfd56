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

package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/exascience/elcheck/chain"
	"github.com/exascience/elcheck/chroms"
	"github.com/exascience/elcheck/sanity"
)

// CheckTwoBitHelp is the help string for this command.
const CheckTwoBitHelp = "check-2bit parameters:\n" +
	"elcheck check-2bit index-file (bed-file | chain-file)\n" +
	"[--side [target | query]]\n" +
	"[--log-path path]\n"

// CheckTwoBit implements the elcheck check-2bit command.
func CheckTwoBit() error {
	var sideName, logPath string

	var flags flag.FlagSet
	flags.StringVar(&sideName, "side", "target", "side of the chains to compare against")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(&flags, 4, CheckTwoBitHelp)

	index := getFilename(os.Args[2], CheckTwoBitHelp)
	chromFile := getFilename(os.Args[3], CheckTwoBitHelp)

	setLogOutput(logPath)

	side, err := chain.ParseSide(sideName)
	if err != nil {
		log.Println("Error:", err)
		fmt.Fprint(os.Stderr, CheckTwoBitHelp)
		os.Exit(1)
	}
	if !checkExist("", index) || !checkExist("", chromFile) {
		fmt.Fprint(os.Stderr, CheckTwoBitHelp)
		os.Exit(1)
	}

	var sizes chroms.Sizes
	if filepath.Ext(chromFile) == ".chain" {
		sizes, err = sanity.ReadChainSizes(chromFile, side)
	} else {
		_, sizes, err = sanity.ReadAnnotation(chromFile)
	}
	if err != nil {
		return err
	}
	if err := sanity.CheckTwoBitCompleteness(index, sizes, chromFile); err != nil {
		return err
	}
	log.Printf("All %v chromosomes of %v found in %v.\n", len(sizes), chromFile, index)
	return nil
}

// FilterU12Help is the help string for this command.
const FilterU12Help = "filter-u12 parameters:\n" +
	"elcheck filter-u12 u12-file bed-file temp-dir\n" +
	"[--log-path path]\n"

// FilterU12 implements the elcheck filter-u12 command.
func FilterU12() error {
	var logPath string

	var flags flag.FlagSet
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(&flags, 5, FilterU12Help)

	u12File := getFilename(os.Args[2], FilterU12Help)
	bedFile := getFilename(os.Args[3], FilterU12Help)
	tempDir := getFilename(os.Args[4], FilterU12Help)

	setLogOutput(logPath)

	if !checkExist("", u12File) || !checkExist("", bedFile) {
		fmt.Fprint(os.Stderr, FilterU12Help)
		os.Exit(1)
	}

	transcripts, _, err := sanity.ReadAnnotation(bedFile)
	if err != nil {
		return err
	}
	if tempDir, err = prepareTempDir(tempDir); err != nil {
		return err
	}
	saved, err := sanity.CheckAndWriteU12(u12File, transcripts, tempDir)
	if err != nil {
		return err
	}
	log.Println("Filtered U12 file written to", saved)
	return nil
}

// FilterIsoformsHelp is the help string for this command.
const FilterIsoformsHelp = "filter-isoforms parameters:\n" +
	"elcheck filter-isoforms isoforms-file bed-file temp-dir\n" +
	"[--log-path path]\n"

// FilterIsoforms implements the elcheck filter-isoforms command.
func FilterIsoforms() error {
	var logPath string

	var flags flag.FlagSet
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(&flags, 5, FilterIsoformsHelp)

	isoformsFile := getFilename(os.Args[2], FilterIsoformsHelp)
	bedFile := getFilename(os.Args[3], FilterIsoformsHelp)
	tempDir := getFilename(os.Args[4], FilterIsoformsHelp)

	setLogOutput(logPath)

	if !checkExist("", isoformsFile) || !checkExist("", bedFile) {
		fmt.Fprint(os.Stderr, FilterIsoformsHelp)
		os.Exit(1)
	}

	transcripts, _, err := sanity.ReadAnnotation(bedFile)
	if err != nil {
		return err
	}
	if tempDir, err = prepareTempDir(tempDir); err != nil {
		return err
	}
	saved, err := sanity.CheckIsoformsFile(isoformsFile, transcripts, tempDir)
	if err != nil {
		return err
	}
	log.Println("Filtered isoforms file written to", saved)
	return nil
}

// CheckClassifiedHelp is the help string for this command.
const CheckClassifiedHelp = "check-classified parameters:\n" +
	"elcheck check-classified result-file\n" +
	"[--log-path path]\n"

// CheckClassified implements the elcheck check-classified command.
func CheckClassified() error {
	var logPath string

	var flags flag.FlagSet
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(&flags, 3, CheckClassifiedHelp)

	resultFile := getFilename(os.Args[2], CheckClassifiedHelp)

	setLogOutput(logPath)

	if !checkExist("", resultFile) {
		fmt.Fprint(os.Stderr, CheckClassifiedHelp)
		os.Exit(1)
	}
	return sanity.CheckChainsClassified(resultFile)
}
