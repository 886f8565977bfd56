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
	"errors"
	"log"

	"github.com/exascience/elcheck/bed"
	"github.com/exascience/elcheck/chain"
	"github.com/exascience/elcheck/chroms"
)

// ReadAnnotation parses the primary BED annotation file and returns
// its transcript identifiers and the chromosomes it references.
func ReadAnnotation(bedFile string) (*TranscriptSet, chroms.Sizes, error) {
	annotation, err := bed.ParseBed(bedFile)
	if err != nil {
		return nil, nil, newError(FormatError, bedFile, 0, err, "%v", err)
	}
	ids, err := bed.TranscriptIDs(annotation)
	if err != nil {
		return nil, nil, newError(FormatError, bedFile, 0, err, "bed file %v: %v", bedFile, err)
	}
	if len(ids) == 0 {
		return nil, nil, newError(CompletenessError, bedFile, 0, nil, "bed file %v contains no transcripts", bedFile)
	}
	log.Printf("Found %v transcripts in %v\n", len(ids), bedFile)
	return NewTranscriptSet(ids), bed.ChromSizes(annotation), nil
}

// ReadChainSizes returns the chromosome sizes that the chain file
// states for the given side.
func ReadChainSizes(chainFile string, side chain.Side) (chroms.Sizes, error) {
	sizes, err := chain.ParseSizes(chainFile, side)
	if errors.Is(err, chain.ErrInconsistent) {
		return nil, newError(ConsistencyError, chainFile, 0, err, "%v", err)
	} else if err != nil {
		return nil, newError(FormatError, chainFile, 0, err, "%v", err)
	}
	if len(sizes) == 0 {
		return nil, newError(CompletenessError, chainFile, 0, nil, "chain file %v contains no chains", chainFile)
	}
	log.Printf("Found %v %v chromosomes in %v\n", len(sizes), side, chainFile)
	return sizes, nil
}
