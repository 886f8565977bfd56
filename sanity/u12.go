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
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// U12FileName is the name of the filtered U12 file in the
// temporary working directory.
const U12FileName = "u12_data.txt"

const u12Fields = 3

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isSpliceRole(s string) bool {
	// acceptor or donor
	return s == "A" || s == "D"
}

// filterU12 returns the lines of the U12 file whose transcript is in
// the set, with their original line terminators.
func filterU12(u12File string, transcripts *TranscriptSet) (retained []string, err error) {
	f, err := os.Open(u12File)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()

	reader := bufio.NewReader(f)
	for lineNr := 1; ; lineNr++ {
		line, rerr := reader.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, rerr
		}
		if line == "" && rerr == io.EOF {
			break
		}
		fields := strings.Split(strings.TrimRightFunc(line, unicode.IsSpace), "\t")
		if len(fields) != u12Fields {
			return nil, newError(FormatError, u12File, lineNr, nil,
				"U12 file %v line %v is corrupted, %v fields expected; got %v; please note that a tab-separated file is expected",
				u12File, lineNr, u12Fields, len(fields))
		}
		if transcripts.Contains(fields[0]) {
			if !isNumeric(fields[1]) {
				return nil, newError(FormatError, u12File, lineNr, nil,
					"U12 file %v line %v is corrupted, field 2 value is %v; this field must contain a numeric value (exon number)",
					u12File, lineNr, fields[1])
			}
			if !isSpliceRole(fields[2]) {
				return nil, newError(FormatError, u12File, lineNr, nil,
					"U12 file %v line %v is corrupted, field 3 value is %v; this field can have either A or D value",
					u12File, lineNr, fields[2])
			}
			retained = append(retained, line)
		}
		if rerr == io.EOF {
			break
		}
	}
	return retained, nil
}

// CheckAndWriteU12 validates the U12 file and writes the lines whose
// transcript is in the set to U12FileName in tempDir, returning the
// path of the new file. An empty u12File means no U12 data was
// provided, in which case the result is the empty string.
//
// Rows for transcripts outside the set are dropped; their exon number
// and splice role are not validated. Every row must have three fields.
func CheckAndWriteU12(u12File string, transcripts *TranscriptSet, tempDir string) (string, error) {
	if u12File == "" {
		return "", nil
	}
	retained, err := filterU12(u12File, transcripts)
	if err != nil {
		return "", err
	}
	if len(retained) == 0 {
		return "", newError(CompletenessError, u12File, 0, nil,
			"no lines left in the U12 file %v after filter; please check that transcript IDs in this file and the input bed file are consistent",
			u12File)
	}
	saved := filepath.Join(tempDir, U12FileName)
	if err := ioutil.WriteFile(saved, []byte(strings.Join(retained, "")), 0666); err != nil {
		return "", err
	}
	log.Printf("Saved %v U12 lines to %v\n", len(retained), saved)
	return saved, nil
}
