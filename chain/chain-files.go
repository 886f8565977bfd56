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

// Package chain reads the headers of UCSC chain alignment files. See
// https://genome.ucsc.edu/goldenPath/help/chain.html
package chain

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/exascience/pargo/pipeline"

	"github.com/exascience/elcheck/chroms"
	"github.com/exascience/elcheck/internal"
)

// Side selects which of the two aligned assemblies to look at.
type Side int

const (
	// Target is the reference assembly of the chains.
	Target Side = iota
	// Query is the assembly aligned against the reference.
	Query
)

func (side Side) String() string {
	if side == Query {
		return "query"
	}
	return "target"
}

// ParseSide parses "target" or "query".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "", "target", "t":
		return Target, nil
	case "query", "q":
		return Query, nil
	default:
		return Target, fmt.Errorf("invalid chain side %v", s)
	}
}

// A Header is the first line of a chain.
type Header struct {
	Score   float64
	TName   string
	TSize   int64
	TStrand byte
	TStart  int64
	TEnd    int64
	QName   string
	QSize   int64
	QStrand byte
	QStart  int64
	QEnd    int64
	ID      string
}

// ErrInconsistent is wrapped by errors that report a chromosome that
// is listed with two different sizes.
var ErrInconsistent = errors.New("inconsistent chromosome sizes")

const headerFields = 13

func parseCoordinate(s, field string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %v %q", field, s)
	}
	return n, nil
}

func parseStrand(s string) (byte, error) {
	if s != "+" && s != "-" {
		return 0, fmt.Errorf("invalid strand %q", s)
	}
	return s[0], nil
}

// ParseHeader parses a chain header line.
func ParseHeader(line string) (h Header, err error) {
	fields := strings.Fields(line)
	if len(fields) != headerFields || fields[0] != "chain" {
		return h, fmt.Errorf("%v fields in chain header, %v expected", len(fields), headerFields)
	}
	if h.Score, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return h, fmt.Errorf("invalid score %q", fields[1])
	}
	h.TName, h.QName, h.ID = fields[2], fields[7], fields[12]
	if h.TSize, err = parseCoordinate(fields[3], "tSize"); err != nil {
		return
	}
	if h.TStrand, err = parseStrand(fields[4]); err != nil {
		return
	}
	if h.TStart, err = parseCoordinate(fields[5], "tStart"); err != nil {
		return
	}
	if h.TEnd, err = parseCoordinate(fields[6], "tEnd"); err != nil {
		return
	}
	if h.QSize, err = parseCoordinate(fields[8], "qSize"); err != nil {
		return
	}
	if h.QStrand, err = parseStrand(fields[9]); err != nil {
		return
	}
	if h.QStart, err = parseCoordinate(fields[10], "qStart"); err != nil {
		return
	}
	if h.QEnd, err = parseCoordinate(fields[11], "qEnd"); err != nil {
		return
	}
	if h.TEnd < h.TStart || h.TEnd > h.TSize {
		return h, fmt.Errorf("target range %v-%v outside of %v of size %v", h.TStart, h.TEnd, h.TName, h.TSize)
	}
	if h.QEnd < h.QStart || h.QEnd > h.QSize {
		return h, fmt.Errorf("query range %v-%v outside of %v of size %v", h.QStart, h.QEnd, h.QName, h.QSize)
	}
	return h, nil
}

// Chrom returns the chromosome name and size of the given side.
func (h Header) Chrom(side Side) (string, int64) {
	if side == Query {
		return h.QName, h.QSize
	}
	return h.TName, h.TSize
}

func isHeader(line string) bool {
	return strings.HasPrefix(line, "chain ") || strings.HasPrefix(line, "chain\t")
}

func addSize(sizes chroms.Sizes, name string, size chroms.Size) error {
	if old, found := sizes[name]; found && old != size {
		return fmt.Errorf("%w: chromosome %v listed with sizes %v and %v", ErrInconsistent, name, old, size)
	}
	sizes[name] = size
	return nil
}

// ParseSizes returns the chromosome sizes that the chain headers in
// the given file state for the given side. A chromosome listed with
// two different sizes is an error.
func ParseSizes(filename string, side Side) (sizes chroms.Sizes, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()

	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(file))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		local := make(chroms.Sizes)
		for _, line := range data.([]string) {
			if !isHeader(line) {
				continue
			}
			h, err := ParseHeader(line)
			if err != nil {
				p.SetErr(fmt.Errorf("chain file %v is corrupted: %v, in header %q", filename, err, line))
				return local
			}
			name, size := h.Chrom(side)
			if err := addSize(local, name, chroms.Size(size)); err != nil {
				p.SetErr(fmt.Errorf("chain file %v: %w", filename, err))
				return local
			}
		}
		return local
	})))
	sizes = make(chroms.Sizes)
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for name, size := range data.(chroms.Sizes) {
			if err := addSize(sizes, name, size); err != nil {
				p.SetErr(fmt.Errorf("chain file %v: %w", filename, err))
				break
			}
		}
		return data
	})))
	if err = internal.RunPipeline(&p); err != nil {
		return nil, err
	}
	return sizes, nil
}
