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
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/exascience/pargo/parallel"

	"github.com/exascience/elcheck/chain"
	"github.com/exascience/elcheck/chroms"
	"github.com/exascience/elcheck/sanity"
)

// CheckHelp is the help string for this command.
const CheckHelp = "check parameters:\n" +
	"elcheck check bed-file chain-file\n" +
	"[--target-2bit file]\n" +
	"[--query-2bit file]\n" +
	"[--u12 file]\n" +
	"[--isoforms file]\n" +
	"[--temp-dir path]\n" +
	"[--scratch-dir path]\n" +
	"[--buckets list]\n" +
	"[--classified file]\n" +
	"[--tools list]\n" +
	"[--timed]\n" +
	"[--log-path path]\n"

// Check implements the elcheck check command. It runs all input checks
// of a pipeline run, and writes the filtered U12 and isoforms files to
// the temporary directory.
func Check() error {
	var (
		targetTwoBit, queryTwoBit, u12File, isoformsFile   string
		tempDir, scratchDir, buckets, classified, toolList string
		logPath                                            string
		timed                                              bool
	)

	var flags flag.FlagSet

	flags.StringVar(&targetTwoBit, "target-2bit", "", "sequence index of the target (reference) assembly")
	flags.StringVar(&queryTwoBit, "query-2bit", "", "sequence index of the query assembly")
	flags.StringVar(&u12File, "u12", "", "U12 splice site annotation")
	flags.StringVar(&isoformsFile, "isoforms", "", "gene to transcript mapping")
	flags.StringVar(&tempDir, "temp-dir", "", "directory for the filtered U12 and isoforms files")
	flags.StringVar(&scratchDir, "scratch-dir", "", "directory that is deleted after the pipeline run")
	flags.StringVar(&buckets, "buckets", "", "comma-separated list of memory buckets")
	flags.StringVar(&classified, "classified", "", "chain classification result to check")
	flags.StringVar(&toolList, "tools", "", "comma-separated list of executables that must be available")
	flags.BoolVar(&timed, "timed", false, "measure the runtime of the individual phases")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 4, CheckHelp)

	bedFile := getFilename(os.Args[2], CheckHelp)
	chainFile := getFilename(os.Args[3], CheckHelp)

	setLogOutput(logPath)

	// sanity checks

	sanityChecksFailed := !checkExist("", bedFile) || !checkExist("", chainFile)

	for parameter, filename := range map[string]string{
		"--target-2bit": targetTwoBit,
		"--query-2bit":  queryTwoBit,
		"--u12":         u12File,
		"--isoforms":    isoformsFile,
		"--classified":  classified,
	} {
		if !checkOptionalExist(parameter, filename) {
			sanityChecksFailed = true
		}
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, CheckHelp)
		os.Exit(1)
	}

	env := sanity.System{}
	if err := sanity.CheckInputFile(env, "bed", bedFile); err != nil {
		return err
	}
	if err := sanity.CheckInputFile(env, "chain", chainFile); err != nil {
		return err
	}
	var optionalFiles []string
	for _, filename := range []string{targetTwoBit, queryTwoBit, u12File, isoformsFile, classified} {
		if filename != "" {
			optionalFiles = append(optionalFiles, filename)
		}
	}
	if err := sanity.CheckFiles(env, optionalFiles...); err != nil {
		return err
	}
	if buckets != "" {
		if _, err := sanity.CheckBuckets(buckets); err != nil {
			return err
		}
	}
	if toolList != "" {
		if err := sanity.CheckTools(env, strings.Split(toolList, ",")...); err != nil {
			return err
		}
	}

	tempDir, err := prepareTempDir(tempDir)
	if err != nil {
		return err
	}
	if scratchDir != "" {
		if err := sanity.CheckDirSafety(scratchDir, tempDir, filepath.Dir(tempDir)); err != nil {
			return err
		}
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " check ", bedFile, " ", chainFile)
	fmt.Fprint(&command, " --temp-dir ", tempDir)
	for _, option := range []struct{ name, value string }{
		{"--target-2bit", targetTwoBit},
		{"--query-2bit", queryTwoBit},
		{"--u12", u12File},
		{"--isoforms", isoformsFile},
		{"--scratch-dir", scratchDir},
		{"--buckets", buckets},
		{"--classified", classified},
		{"--tools", toolList},
	} {
		if option.value != "" {
			fmt.Fprint(&command, " ", option.name, " ", option.value)
		}
	}
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	log.Println("Executing command:\n", command.String())

	// reading inputs

	var (
		transcripts               *sanity.TranscriptSet
		bedSizes                  chroms.Sizes
		targetSizes, querySizes   chroms.Sizes
		bedErr, targetErr, qryErr error
	)
	timedRun(timed, "Reading annotation and chains.", func() {
		parallel.Do(
			func() { transcripts, bedSizes, bedErr = sanity.ReadAnnotation(bedFile) },
			func() {
				if targetTwoBit != "" {
					targetSizes, targetErr = sanity.ReadChainSizes(chainFile, chain.Target)
				}
			},
			func() {
				if queryTwoBit != "" {
					querySizes, qryErr = sanity.ReadChainSizes(chainFile, chain.Query)
				}
			},
		)
	})
	if err := firstError(bedErr, targetErr, qryErr); err != nil {
		return err
	}

	// checking inputs

	var (
		targetCheckErr, queryCheckErr, u12Err, isoformsErr, classifiedErr error
		u12Saved, isoformsSaved                                           string
	)
	timedRun(timed, "Checking inputs.", func() {
		parallel.Do(
			func() {
				if targetTwoBit == "" {
					return
				}
				index, err := sanity.ReadSequenceIndex(targetTwoBit)
				if err != nil {
					targetCheckErr = err
					return
				}
				if targetCheckErr = sanity.CheckSequenceSizes(targetTwoBit, index, bedSizes, bedFile); targetCheckErr == nil {
					targetCheckErr = sanity.CheckSequenceSizes(targetTwoBit, index, targetSizes, chainFile)
				}
			},
			func() {
				if queryTwoBit != "" {
					queryCheckErr = sanity.CheckTwoBitCompleteness(queryTwoBit, querySizes, chainFile)
				}
			},
			func() { u12Saved, u12Err = sanity.CheckAndWriteU12(u12File, transcripts, tempDir) },
			func() { isoformsSaved, isoformsErr = sanity.CheckIsoformsFile(isoformsFile, transcripts, tempDir) },
			func() {
				if classified != "" {
					classifiedErr = sanity.CheckChainsClassified(classified)
				}
			},
		)
	})
	if err := firstError(targetCheckErr, queryCheckErr, u12Err, isoformsErr, classifiedErr); err != nil {
		return err
	}

	if u12Saved != "" {
		log.Println("Filtered U12 file written to", u12Saved)
	}
	if isoformsSaved != "" {
		log.Println("Filtered isoforms file written to", isoformsSaved)
	}
	log.Println("All input checks passed.")
	return nil
}
