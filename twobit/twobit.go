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

// Package twobit reads the sequence index of .2bit files. See
// https://genome.ucsc.edu/FAQ/FAQformat.html#format7
package twobit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Signature is the magic number every .2bit file starts with, in the
// byte order of the machine that wrote it.
const Signature = 0x1A412743

const headerSize = 16

// ErrMalformed is wrapped by all errors that report a .2bit file
// that cannot be read.
var ErrMalformed = errors.New("malformed 2bit file")

// File represents an opened, memory-mapped .2bit file.
type File struct {
	data  []byte
	file  *os.File
	sizes map[string]int64
	names []string
}

// Open maps the given .2bit file into memory and reads its sequence
// index and per-sequence headers.
func Open(filename string) (result *File, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if stat.Size() < headerSize {
		_ = file.Close()
		return nil, fmt.Errorf("%w %v: file too short for a header", ErrMalformed, filename)
	}
	data, err := unix.Mmap(int(file.Fd()), 0, int(stat.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	result = &File{data: data, file: file}
	if result.names, result.sizes, err = parseIndex(data); err != nil {
		_ = result.Close()
		return nil, fmt.Errorf("%w %v: %v", ErrMalformed, filename, err)
	}
	return result, nil
}

// Close unmaps and closes the .2bit file.
func (tb *File) Close() error {
	err := unix.Munmap(tb.data)
	tb.data = nil
	if nerr := tb.file.Close(); err == nil {
		err = nerr
	}
	tb.file = nil
	return err
}

// Names returns the sequence names in index order.
func (tb *File) Names() []string {
	return tb.names
}

// SequenceSizes returns a fresh map from sequence names to their
// lengths in bases.
func (tb *File) SequenceSizes() map[string]int64 {
	sizes := make(map[string]int64, len(tb.sizes))
	for name, size := range tb.sizes {
		sizes[name] = size
	}
	return sizes
}

// ReadSequenceSizes opens the given .2bit file, returns its sequence
// sizes and closes it again.
func ReadSequenceSizes(filename string) (sizes map[string]int64, err error) {
	tb, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := tb.Close(); err == nil {
			err = nerr
		}
	}()
	return tb.SequenceSizes(), nil
}

type reader struct {
	data  []byte
	order binary.ByteOrder
	pos   uint64
}

func (r *reader) bytes(n uint64) ([]byte, error) {
	if n > uint64(len(r.data)) || r.pos > uint64(len(r.data))-n {
		return nil, fmt.Errorf("unexpected end of file at offset %v", r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

func (r *reader) uint64() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(b), nil
}

func (r *reader) skipBlocks() error {
	count, err := r.uint32()
	if err != nil {
		return err
	}
	// one start and one size per block
	_, err = r.bytes(8 * uint64(count))
	return err
}

func parseIndex(data []byte) (names []string, sizes map[string]int64, err error) {
	r := &reader{data: data}
	switch {
	case binary.LittleEndian.Uint32(data[0:4]) == Signature:
		r.order = binary.LittleEndian
	case binary.BigEndian.Uint32(data[0:4]) == Signature:
		r.order = binary.BigEndian
	default:
		return nil, nil, fmt.Errorf("invalid signature %#x", binary.LittleEndian.Uint32(data[0:4]))
	}
	r.pos = 4
	version, _ := r.uint32()
	if version > 1 {
		return nil, nil, fmt.Errorf("unsupported version %v", version)
	}
	count, _ := r.uint32()
	r.pos = headerSize

	// name size byte plus a 32- or 64-bit offset per index record
	minRecord := uint64(5)
	if version == 1 {
		minRecord = 9
	}
	if uint64(count) > (uint64(len(data))-headerSize)/minRecord {
		return nil, nil, fmt.Errorf("sequence count %v exceeds the file size", count)
	}

	offsets := make([]uint64, 0, count)
	sizes = make(map[string]int64, count)
	for i := uint32(0); i < count; i++ {
		nameSize, err := r.bytes(1)
		if err != nil {
			return nil, nil, err
		}
		name, err := r.bytes(uint64(nameSize[0]))
		if err != nil {
			return nil, nil, err
		}
		var offset uint64
		if version == 0 {
			o, err := r.uint32()
			if err != nil {
				return nil, nil, err
			}
			offset = uint64(o)
		} else if offset, err = r.uint64(); err != nil {
			return nil, nil, err
		}
		seq := string(name)
		if _, found := sizes[seq]; found {
			return nil, nil, fmt.Errorf("duplicate sequence name %v", seq)
		}
		sizes[seq] = 0
		names = append(names, seq)
		offsets = append(offsets, offset)
	}

	for i, seq := range names {
		r.pos = offsets[i]
		dnaSize, err := r.uint32()
		if err != nil {
			return nil, nil, fmt.Errorf("%v, in header of sequence %v", err, seq)
		}
		if err := r.skipBlocks(); err != nil {
			return nil, nil, fmt.Errorf("%v, in N blocks of sequence %v", err, seq)
		}
		if err := r.skipBlocks(); err != nil {
			return nil, nil, fmt.Errorf("%v, in mask blocks of sequence %v", err, seq)
		}
		if _, err := r.uint32(); err != nil {
			return nil, nil, fmt.Errorf("%v, in header of sequence %v", err, seq)
		}
		// four bases per byte
		if _, err := r.bytes((uint64(dnaSize) + 3) / 4); err != nil {
			return nil, nil, fmt.Errorf("%v, in packed DNA of sequence %v", err, seq)
		}
		sizes[seq] = int64(dnaSize)
	}
	return names, sizes, nil
}
