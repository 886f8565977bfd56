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

package bed

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/exascience/elcheck/chroms"
	"github.com/exascience/elcheck/utils"
)

// Bed is a struct for representing the contents of a BED file. See
// https://genome.ucsc.edu/FAQ/FAQformat.html#format1
type Bed struct {
	// Regions in the order in which they appear in the file.
	Regions []*Region
	// Maps chromosome name onto bed regions.
	RegionMap map[utils.Symbol][]*Region
}

// A Region is a struct for representing intervals as defined in a BED
// file. See https://genome.ucsc.edu/FAQ/FAQformat.html#format1
type Region struct {
	Chrom          utils.Symbol
	Start          int32
	End            int32
	OptionalFields []interface{}
}

// Symbols for optional strand field of a Region.
var (
	// Strand forward.
	SF = utils.Intern("+")
	// Strand reverse.
	SR = utils.Intern("-")
	// Strand unknown.
	SU = utils.Intern(".")
)

// NewRegion allocates and initializes a new Region. Optional fields
// are given in order. If a "later" field is entered, then the
// "earlier" field was entered as well. See
// https://genome.ucsc.edu/FAQ/FAQformat.html#format1
func NewRegion(chrom utils.Symbol, start int32, end int32, fields []string) (b *Region, err error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid interval %v-%v", start, end)
	}
	regionFields, err := initializeRegionFields(fields)
	if err != nil {
		return nil, err
	}
	return &Region{
		Chrom:          chrom,
		Start:          start,
		End:            end,
		OptionalFields: regionFields,
	}, nil
}

// Optional BED fields, see https://genome.ucsc.edu/FAQ/FAQformat.html#format1
const (
	brName = iota
	brScore
	brStrand
	brThickStart
	brThickEnd
	brItemRgb
	brBlockCount
	brBlockSizes
	brBlockStarts
)

func parseIntList(val string) ([]int32, error) {
	val = strings.TrimSuffix(val, ",")
	if val == "" {
		return nil, nil
	}
	strs := strings.Split(val, ",")
	list := make([]int32, len(strs))
	for i, str := range strs {
		n, err := strconv.ParseInt(str, 10, 32)
		if err != nil {
			return nil, err
		}
		list[i] = int32(n)
	}
	return list, nil
}

// Allocates a fresh slice to initialize a Region's optional fields.
func initializeRegionFields(fields []string) ([]interface{}, error) {
	brFields := make([]interface{}, len(fields))
	for i, val := range fields {
		switch i {
		case brName:
			if val == "" {
				return nil, fmt.Errorf("empty Name field")
			}
			brFields[brName] = val
		case brScore:
			score, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid Score field: %v", val)
			}
			brFields[brScore] = score
		case brStrand:
			if val != "+" && val != "-" && val != "." {
				return nil, fmt.Errorf("invalid Strand field: %v", val)
			}
			brFields[brStrand] = utils.Intern(val)
		case brThickStart:
			start, err := strconv.ParseInt(val, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid ThickStart field: %v", val)
			}
			brFields[brThickStart] = int32(start)
		case brThickEnd:
			end, err := strconv.ParseInt(val, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid ThickEnd field: %v", val)
			}
			brFields[brThickEnd] = int32(end)
		case brItemRgb:
			brFields[brItemRgb] = val
		case brBlockCount:
			count, err := strconv.Atoi(val)
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid BlockCount field: %v", val)
			}
			brFields[brBlockCount] = count
		case brBlockSizes:
			sizes, err := parseIntList(val)
			if err != nil || len(sizes) != brFields[brBlockCount].(int) {
				return nil, fmt.Errorf("invalid BlockSizes field: %v", val)
			}
			brFields[brBlockSizes] = sizes
		case brBlockStarts:
			starts, err := parseIntList(val)
			if err != nil || len(starts) != brFields[brBlockCount].(int) {
				return nil, fmt.Errorf("invalid BlockStarts field: %v", val)
			}
			brFields[brBlockStarts] = starts
		default:
			return nil, fmt.Errorf("invalid optional field: %v out of 0-8", val)
		}
	}
	return brFields, nil
}

// Name returns the name of the region, if present. In annotation
// files, this is the transcript identifier.
func (region *Region) Name() (string, bool) {
	if len(region.OptionalFields) <= brName {
		return "", false
	}
	return region.OptionalFields[brName].(string), true
}

// NewBed allocates and initializes an empty bed.
func NewBed() *Bed {
	return &Bed{
		RegionMap: make(map[utils.Symbol][]*Region),
	}
}

// AddRegion adds a region to the bed region map.
func AddRegion(bed *Bed, region *Region) {
	bed.Regions = append(bed.Regions, region)
	bed.RegionMap[region.Chrom] = append(bed.RegionMap[region.Chrom], region)
}

// A function for sorting the bed regions.
func sortRegions(bed *Bed) {
	for _, regions := range bed.RegionMap {
		sort.SliceStable(regions, func(i, j int) bool {
			return regions[i].Start < regions[j].Start
		})
	}
}

// ChromSizes returns the chromosomes referenced by the bed regions.
// A BED file does not state chromosome lengths, so all sizes are
// chroms.Unknown.
func ChromSizes(bed *Bed) chroms.Sizes {
	sizes := make(chroms.Sizes, len(bed.RegionMap))
	for chrom := range bed.RegionMap {
		sizes[*chrom] = chroms.Unknown
	}
	return sizes
}

// TranscriptIDs returns the names of the bed regions in file order,
// without duplicates. All regions must be named.
func TranscriptIDs(bed *Bed) ([]string, error) {
	seen := make(map[string]bool, len(bed.Regions))
	ids := make([]string, 0, len(bed.Regions))
	for _, region := range bed.Regions {
		name, ok := region.Name()
		if !ok {
			return nil, fmt.Errorf("unnamed region %v:%v-%v", *region.Chrom, region.Start, region.End)
		}
		if !seen[name] {
			seen[name] = true
			ids = append(ids, name)
		}
	}
	return ids, nil
}
