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

package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
)

// FaiExt is the file extension of FASTA index files.
const FaiExt = ".fai"

// FaiReference represents an entry in an FAI file.
type FaiReference struct {
	Length    int64
	Offset    int64
	LineBases int32
	LineWidth int32
}

func parseFaiLine(line []byte) (contig string, ref FaiReference, err error) {
	b := bytes.Split(line, []byte("\t"))
	if len(b) != 5 {
		return "", ref, fmt.Errorf("invalid number of entries: %v instead of 5", len(b))
	}
	if len(b[0]) == 0 {
		return "", ref, fmt.Errorf("empty sequence name")
	}
	if ref.Length, err = strconv.ParseInt(string(b[1]), 10, 64); err != nil || ref.Length < 0 {
		return "", ref, fmt.Errorf("invalid length %q", b[1])
	}
	if ref.Offset, err = strconv.ParseInt(string(b[2]), 10, 64); err != nil {
		return "", ref, fmt.Errorf("invalid offset %q", b[2])
	}
	lineBases, err := strconv.ParseInt(string(b[3]), 10, 32)
	if err != nil {
		return "", ref, fmt.Errorf("invalid line bases %q", b[3])
	}
	lineWidth, err := strconv.ParseInt(string(b[4]), 10, 32)
	if err != nil {
		return "", ref, fmt.Errorf("invalid line width %q", b[4])
	}
	ref.LineBases, ref.LineWidth = int32(lineBases), int32(lineWidth)
	return string(b[0]), ref, nil
}

// ParseFai parses an FAI file.
func ParseFai(filename string) (fai map[string]FaiReference, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()

	fai = make(map[string]FaiReference)

	scanner := bufio.NewScanner(f)

	for line := 1; scanner.Scan(); line++ {
		contig, ref, err := parseFaiLine(scanner.Bytes())
		if err != nil {
			return nil, fmt.Errorf("badly formatted fai file %v line %v - %v", filename, line, err)
		}
		if _, found := fai[contig]; found {
			return nil, fmt.Errorf("badly formatted fai file %v line %v - duplicate sequence %v", filename, line, contig)
		}
		fai[contig] = ref
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return fai, nil
}

// SequenceSizes returns the sequence lengths listed in an FAI file.
func SequenceSizes(filename string) (map[string]int64, error) {
	fai, err := ParseFai(filename)
	if err != nil {
		return nil, err
	}
	sizes := make(map[string]int64, len(fai))
	for contig, ref := range fai {
		sizes[contig] = ref.Length
	}
	return sizes, nil
}
