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

// Package isoforms reads tab-separated files that map transcript
// identifiers (isoforms) onto their parent gene identifiers.
package isoforms

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/exascience/elcheck/utils"
)

// ErrEmpty is returned for isoforms files without any rows.
var ErrEmpty = errors.New("isoforms file is empty")

// Header holds the two fields of the first row of an isoforms file.
// Whether they are column labels or an actual gene/transcript pair
// cannot be told from the file alone.
type Header struct {
	Gene       string
	Transcript string
}

// Isoforms is the parsed content of an isoforms file.
type Isoforms struct {
	Header Header
	// Transcripts in the order of their first occurrence, including
	// the transcript field of the first row.
	Transcripts []string
	// Maps each transcript onto its gene.
	TranscriptToGene map[string]string
	// Maps each gene onto its transcripts, in file order.
	GeneToTranscripts map[string][]string
}

func newIsoforms() *Isoforms {
	return &Isoforms{
		TranscriptToGene:  make(map[string]string),
		GeneToTranscripts: make(map[string][]string),
	}
}

func (iso *Isoforms) add(gene, transcript string) error {
	if old, found := iso.TranscriptToGene[transcript]; found {
		if old != gene {
			return fmt.Errorf("transcript %v assigned to both gene %v and gene %v", transcript, old, gene)
		}
		return nil
	}
	iso.TranscriptToGene[transcript] = gene
	iso.Transcripts = append(iso.Transcripts, transcript)
	iso.GeneToTranscripts[gene] = append(iso.GeneToTranscripts[gene], transcript)
	return nil
}

// Read parses an isoforms file whose first two tab-separated columns
// are gene and transcript. Further columns are ignored. Empty lines
// are skipped. The first row is both returned as Header and added to
// the mapping.
func Read(filename string) (iso *Isoforms, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()

	iso = newIsoforms()
	scanner := bufio.NewScanner(file)
	first := true
	for lineNr := 1; scanner.Scan(); lineNr++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			return nil, fmt.Errorf("isoforms file %v line %v is corrupted, at least 2 non-empty tab-separated fields expected, got %v", filename, lineNr, len(fields))
		}
		gene := *utils.Intern(fields[0])
		if first {
			iso.Header = Header{Gene: gene, Transcript: fields[1]}
			first = false
		}
		if err := iso.add(gene, fields[1]); err != nil {
			return nil, fmt.Errorf("isoforms file %v line %v: %v", filename, lineNr, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if first {
		return nil, fmt.Errorf("%w: %v", ErrEmpty, filename)
	}
	return iso, nil
}
