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

package sanity

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/exascience/elcheck/isoforms"
)

// IsoformsFileName is the name of the filtered isoforms file in the
// temporary working directory.
const IsoformsFileName = "isoforms.tsv"

func writeIsoforms(filename string, iso *isoforms.Isoforms, transcripts []string, writeHeader bool) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	out := bufio.NewWriter(f)
	if writeHeader {
		fmt.Fprintf(out, "%v\t%v\n", iso.Header.Gene, iso.Header.Transcript)
	}
	for _, trans := range transcripts {
		fmt.Fprintf(out, "%v\t%v\n", iso.TranscriptToGene[trans], trans)
	}
	return out.Flush()
}

// CheckIsoformsFile checks that the isoforms file assigns a gene to
// every transcript of the set, and writes the assignments of those
// transcripts to IsoformsFileName in tempDir, returning the path of the
// new file. An empty isoformsFile means no isoforms were provided, in
// which case the result is the empty string.
//
// Whether the first row of the isoforms file is a header is guessed:
// if its transcript field is in the set, it is treated as data and no
// header is written. Otherwise it is written as header. A real header
// whose second label happens to be a transcript identifier of the set
// is therefore lost.
func CheckIsoformsFile(isoformsFile string, transcripts *TranscriptSet, tempDir string) (string, error) {
	if isoformsFile == "" {
		log.Println("Continue without isoforms file: not provided")
		return "", nil
	}
	iso, err := isoforms.Read(isoformsFile)
	if errors.Is(err, isoforms.ErrEmpty) {
		return "", newError(CompletenessError, isoformsFile, 0, err, "%v", err)
	} else if err != nil {
		return "", newError(FormatError, isoformsFile, 0, err, "%v", err)
	}
	if missing := transcripts.Uncovered(iso.TranscriptToGene); len(missing) > 0 {
		return "", newError(CompletenessError, isoformsFile, 0, nil,
			"there are %v transcripts in the bed file absent in the isoforms file %v! These are the transcripts (first %v):\n%v",
			len(missing), isoformsFile, MaxReported, sample(missing))
	}
	inBoth := transcripts.Intersect(iso.Transcripts)
	skipHeader := transcripts.Contains(iso.Header.Transcript)

	saved := filepath.Join(tempDir, IsoformsFileName)
	log.Printf("Writing isoforms data for %v transcripts.\n", len(inBoth))
	if err := writeIsoforms(saved, iso, inBoth, !skipHeader); err != nil {
		return "", err
	}
	return saved, nil
}
