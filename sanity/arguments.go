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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/exascience/elcheck/internal"
)

// CheckBuckets parses a comma-separated list of non-negative integers,
// such as memory bucket limits.
func CheckBuckets(buckets string) ([]int, error) {
	fields := strings.Split(buckets, ",")
	result := make([]int, len(fields))
	for i, field := range fields {
		if !isNumeric(field) {
			return nil, newError(FormatError, "", 0, nil,
				"bucket value %v is incorrect, expected comma-separated list of integers", buckets)
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, newError(FormatError, "", 0, err,
				"bucket value %v is incorrect: %v", buckets, err)
		}
		result[i] = n
	}
	return result, nil
}

// CheckInputFile checks that a required input file exists. kind names
// the input in the error message, for example "chain" or "bed".
func CheckInputFile(env Environment, kind, filename string) error {
	if !env.FileExists(filename) {
		return newError(CompletenessError, filename, 0, nil, "%v file %v does not exist", kind, filename)
	}
	return nil
}

// CheckDirSafety checks that a scratch directory, which is deleted
// after the pipeline run, does not resolve to any of the protected
// directories. The current working directory is always protected.
func CheckDirSafety(scratchDir string, protected ...string) error {
	scratch, err := internal.FullPathname(scratchDir)
	if err != nil {
		return err
	}
	protected = append(protected, ".")
	for _, dir := range protected {
		full, err := internal.FullPathname(dir)
		if err != nil {
			return err
		}
		if filepath.Clean(full) == filepath.Clean(scratch) {
			return newError(ConsistencyError, scratchDir, 0, nil,
				"scratch directory is set to %v, which is deleted after the pipeline run, but it matches the directory %v which must be preserved",
				scratchDir, dir)
		}
	}
	return nil
}

// NewTempDir creates a fresh, uniquely named working directory in
// parent for the files produced by the sanity checks.
func NewTempDir(parent string) (string, error) {
	dir := filepath.Join(parent, "temp_"+uuid.New().String())
	if err := internal.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
