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
	"bufio"
	"io"
	"log"
	"os"
)

// countLines counts the lines of r, but stops counting at limit.
func countLines(r io.Reader, limit int) (int, error) {
	reader := bufio.NewReader(r)
	lines := 0
	inLine := false
	for lines < limit {
		chunk, err := reader.ReadSlice('\n')
		if len(chunk) > 0 {
			inLine = true
		}
		switch err {
		case nil:
			lines++
			inLine = false
		case bufio.ErrBufferFull:
			// a long line, keep reading it
		case io.EOF:
			if inLine {
				lines++
			}
			return lines, nil
		default:
			return lines, err
		}
	}
	return lines, nil
}

// CheckChainsClassified checks that the chain classification result
// has at least one line after the header. Only the first two lines
// are read.
func CheckChainsClassified(resultFile string) (err error) {
	f, err := os.Open(resultFile)
	if os.IsNotExist(err) {
		return newError(CompletenessError, resultFile, 0, err, "chain results file %v does not exist", resultFile)
	} else if err != nil {
		return newError(FormatError, resultFile, 0, err, "cannot read chain results file %v: %v", resultFile, err)
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	lines, err := countLines(f, 2)
	if err != nil {
		return newError(FormatError, resultFile, 0, err, "cannot read chain results file %v: %v", resultFile, err)
	}
	if lines <= 1 {
		e := newError(CompletenessError, resultFile, 0, nil, "chain results file %v is empty! Abort.", resultFile)
		log.Println(e)
		return e
	}
	return nil
}
