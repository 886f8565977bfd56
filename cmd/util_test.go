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

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFirstError(t *testing.T) {
	if firstError(nil, nil) != nil {
		t.Error("firstError invented an error")
	}
	err1, err2 := errors.New("first"), errors.New("second")
	if firstError(nil, err1, err2) != err1 {
		t.Error("firstError did not return the first error")
	}
}

func TestPrepareTempDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	prepared, err := prepareTempDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(prepared); err != nil || !info.IsDir() {
		t.Errorf("%v was not created", prepared)
	}
}

func TestCheckOptionalExist(t *testing.T) {
	if !checkOptionalExist("--u12", "") {
		t.Error("an omitted optional file was rejected")
	}
	if checkOptionalExist("--u12", filepath.Join(t.TempDir(), "absent")) {
		t.Error("a missing optional file was accepted")
	}
}
