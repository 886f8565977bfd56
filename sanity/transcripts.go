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

import "github.com/bits-and-blooms/bitset"

// TranscriptSet is the set of transcript identifiers of the primary
// annotation file. It is immutable once created and keeps the order in
// which identifiers were first added.
type TranscriptSet struct {
	ids   []string
	index map[string]uint
}

// NewTranscriptSet creates a set from the given identifiers. Duplicates
// are ignored.
func NewTranscriptSet(ids []string) *TranscriptSet {
	set := &TranscriptSet{index: make(map[string]uint, len(ids))}
	for _, id := range ids {
		if _, found := set.index[id]; found {
			continue
		}
		set.index[id] = uint(len(set.ids))
		set.ids = append(set.ids, id)
	}
	return set
}

// Len returns the number of transcripts in the set.
func (set *TranscriptSet) Len() int {
	return len(set.ids)
}

// Contains returns true if id is in the set.
func (set *TranscriptSet) Contains(id string) bool {
	_, found := set.index[id]
	return found
}

// IDs returns the identifiers in insertion order. The result must not
// be modified.
func (set *TranscriptSet) IDs() []string {
	return set.ids
}

// Intersect returns the given ids that are in the set, in the order
// given.
func (set *TranscriptSet) Intersect(ids []string) (result []string) {
	for _, id := range ids {
		if set.Contains(id) {
			result = append(result, id)
		}
	}
	return result
}

// Uncovered returns the identifiers of the set that are not keys of
// covered, in insertion order.
func (set *TranscriptSet) Uncovered(covered map[string]string) (missing []string) {
	seen := bitset.New(uint(len(set.ids)))
	for id := range covered {
		if i, found := set.index[id]; found {
			seen.Set(i)
		}
	}
	if seen.Count() == uint(len(set.ids)) {
		return nil
	}
	for i := uint(0); i < uint(len(set.ids)); i++ {
		if !seen.Test(i) {
			missing = append(missing, set.ids[i])
		}
	}
	return missing
}
