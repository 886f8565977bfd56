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

// Package chroms provides the chromosome size map shared by the
// sequence index, BED and chain readers.
package chroms

import "sort"

// Size is the length of a chromosome in bases, or Unknown.
type Size int64

// Unknown marks a chromosome whose length is not known from its
// source, for example because it was only referenced by a BED file.
const Unknown Size = -1

// Known returns true if s is an actual length.
func (s Size) Known() bool {
	return s >= 0
}

// Sizes maps chromosome names onto their sizes.
type Sizes map[string]Size

// Names returns the chromosome names in s in sorted order.
func (s Sizes) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Missing returns the names in s that are not keys of index, in
// sorted order.
func (s Sizes) Missing(index map[string]int64) (missing []string) {
	for _, name := range s.Names() {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
