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
	"log"
	"path/filepath"

	"github.com/exascience/elcheck/chroms"
	"github.com/exascience/elcheck/fasta"
	"github.com/exascience/elcheck/twobit"
)

// ReadSequenceIndex returns the sequence sizes of a .2bit file, or of
// an FAI file if the filename has the .fai extension. A file that
// cannot be read is reported as a FormatError.
func ReadSequenceIndex(filename string) (sizes map[string]int64, err error) {
	if filepath.Ext(filename) == fasta.FaiExt {
		sizes, err = fasta.SequenceSizes(filename)
	} else {
		sizes, err = twobit.ReadSequenceSizes(filename)
	}
	if err != nil {
		return nil, newError(FormatError, filename, 0, err, "cannot read sequence index %v: %v", filename, err)
	}
	log.Printf("Found %v sequences in %v\n", len(sizes), filename)
	return sizes, nil
}

// CheckTwoBitCompleteness checks that the given sequence index is
// readable, contains all chromosomes of sizes, and agrees with every
// known size in sizes. chromFile is the bed or chain file sizes was
// derived from, and is only used in error messages.
func CheckTwoBitCompleteness(twoBitFile string, sizes chroms.Sizes, chromFile string) error {
	index, err := ReadSequenceIndex(twoBitFile)
	if err != nil {
		return err
	}
	return CheckSequenceSizes(twoBitFile, index, sizes, chromFile)
}

// CheckSequenceSizes checks sizes against an already read sequence
// index. Chromosomes with unknown size are only checked for presence.
func CheckSequenceSizes(indexFile string, index map[string]int64, sizes chroms.Sizes, chromFile string) error {
	if missing := sizes.Missing(index); len(missing) > 0 {
		return newError(CompletenessError, chromFile, 0, nil,
			"sequence index: %v; chain/bed file: %v; %v chromosomes present in the chain/bed file are not found in the sequence index. First <=%v:\n%v",
			indexFile, chromFile, len(missing), MaxReported, sample(missing))
	}
	for _, chrom := range sizes.Names() {
		size := sizes[chrom]
		if !size.Known() {
			continue
		}
		if indexSize := index[chrom]; indexSize != int64(size) {
			// the two files were most likely built from different assemblies
			return newError(ConsistencyError, chromFile, 0, nil,
				"sequence index: %v; chain/bed file: %v; chromosome: %v; sizes don't match! size in sequence index: %v; size in chain/bed file: %v",
				indexFile, chromFile, chrom, indexSize, size)
		}
	}
	return nil
}
