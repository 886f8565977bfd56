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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/exascience/elcheck/utils"
)

func parseLine(line string) (*Region, error) {
	data := strings.Split(line, "\t")
	if len(data) < 3 {
		return nil, fmt.Errorf("%v fields, at least 3 expected", len(data))
	}
	start, err := strconv.ParseInt(data[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid start %q", data[1])
	}
	end, err := strconv.ParseInt(data[2], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid end %q", data[2])
	}
	return NewRegion(utils.Intern(data[0]), int32(start), int32(end), data[3:])
}

// ParseBed parses a BED file. See
// https://genome.ucsc.edu/FAQ/FAQformat.html#format1
func ParseBed(filename string) (bed *Bed, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()

	bed = NewBed()
	scanner := bufio.NewScanner(file)
	scanner.Buffer(nil, 1<<24)

	for lineNr := 1; scanner.Scan(); lineNr++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" ||
			strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") ||
			strings.HasPrefix(line, "browser") {
			continue
		}
		region, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("bed file %v line %v is corrupted: %v", filename, lineNr, err)
		}
		AddRegion(bed, region)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// Make sure bed regions are sorted.
	sortRegions(bed)
	return bed, nil
}
