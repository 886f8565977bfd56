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
	"strings"
	"testing"
)

const testU12 = "t1\t3\tA\r\n" +
	"t9\t1\tD\n" +
	"t2\t12\tD\n" +
	"t1\t4\tD\n" +
	"t3\t1\tA"

func TestCheckAndWriteU12NotProvided(t *testing.T) {
	saved, err := CheckAndWriteU12("", NewTranscriptSet([]string{"t1"}), t.TempDir())
	if saved != "" || err != nil {
		t.Errorf("expected no artifact and no error, got %q, %v", saved, err)
	}
}

func TestCheckAndWriteU12(t *testing.T) {
	dir := t.TempDir()
	u12 := writeFile(t, dir, "u12.tsv", testU12)
	set := NewTranscriptSet([]string{"t1", "t2", "t3"})

	saved, err := CheckAndWriteU12(u12, set, dir)
	if err != nil {
		t.Fatal(err)
	}
	if saved != filepath.Join(dir, U12FileName) {
		t.Errorf("unexpected output path %v", saved)
	}
	expected := "t1\t3\tA\r\nt2\t12\tD\nt1\t4\tD\nt3\t1\tA"
	if got := readFile(t, saved); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestCheckAndWriteU12Idempotent(t *testing.T) {
	dir1, dir2 := t.TempDir(), t.TempDir()
	set := NewTranscriptSet([]string{"t2", "t3"})
	first, err := CheckAndWriteU12(writeFile(t, dir1, "u12.tsv", testU12), set, dir1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CheckAndWriteU12(first, set, dir2)
	if err != nil {
		t.Fatal(err)
	}
	if readFile(t, first) != readFile(t, second) {
		t.Error("filtering a filtered U12 file changed it")
	}
}

func TestCheckAndWriteU12AllFiltered(t *testing.T) {
	dir := t.TempDir()
	u12 := writeFile(t, dir, "u12.tsv", testU12)
	_, err := CheckAndWriteU12(u12, NewTranscriptSet([]string{"ENST01"}), dir)
	e := checkKind(t, err, CompletenessError)
	if e.File != u12 {
		t.Errorf("error names %v instead of %v", e.File, u12)
	}
}

func TestCheckAndWriteU12Corrupted(t *testing.T) {
	set := NewTranscriptSet([]string{"t1", "t2"})
	cases := []struct {
		content string
		line    int
		value   string
	}{
		{"t1\t1\tA\nt2 1 A\n", 2, "got 1"},
		{"t1\t1\tA\n\nt2\t1\tA\n", 2, "got 1"},
		{"t1\t1\tA\nt2\t1\tA\textra\n", 2, "got 4"},
		{"t1\tx1\tA\n", 1, "x1"},
		{"t1\t1\tA\nt2\t-2\tD\n", 2, "-2"},
		{"t1\t1\tacceptor\n", 1, "acceptor"},
		{"t1\t1\tA\nt2\t1\ta\n", 2, "value is a;"},
		{"t7\t1\tA\nt9\t1\n", 2, "got 2"},
	}
	for _, c := range cases {
		dir := t.TempDir()
		_, err := CheckAndWriteU12(writeFile(t, dir, "u12.tsv", c.content), set, dir)
		e := checkKind(t, err, FormatError)
		if e.Line != c.line {
			t.Errorf("%q: expected line %v, got %v", c.content, c.line, e.Line)
		}
		if !strings.Contains(e.Message, c.value) {
			t.Errorf("%q: message %v does not mention %v", c.content, e.Message, c.value)
		}
	}
}

func TestCheckAndWriteU12OutOfScopeRowsNotValidated(t *testing.T) {
	dir := t.TempDir()
	u12 := writeFile(t, dir, "u12.tsv", "t1\t1\tA\nother\tfirst\tX\n")
	saved, err := CheckAndWriteU12(u12, NewTranscriptSet([]string{"t1"}), dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, saved); got != "t1\t1\tA\n" {
		t.Errorf("unexpected output %q", got)
	}
}
