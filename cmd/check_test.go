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
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/exascience/elcheck/sanity"
)

func writeInput(t *testing.T, dir, name, content string) string {
	filename := filepath.Join(dir, name)
	if err := ioutil.WriteFile(filename, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return filename
}

// runCommand calls command with the given command line, and restores
// the arguments, stderr and log output that the command changes.
func runCommand(t *testing.T, command func() error, args ...string) error {
	orgArgs := os.Args
	orgStderr, err := unix.Dup(2)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		os.Args = orgArgs
		if err := unix.Dup2(orgStderr, 2); err != nil {
			t.Error(err)
		}
		_ = unix.Close(orgStderr)
		log.SetOutput(os.Stderr)
	}()
	os.Args = append([]string{"elcheck"}, args...)
	return command()
}

type checkInputs struct {
	dir, bed, chain, target, query, u12, isoforms, classified string
}

func newCheckInputs(t *testing.T) checkInputs {
	dir := t.TempDir()
	return checkInputs{
		dir:        dir,
		bed:        writeInput(t, dir, "annotation.bed", "chr1\t10\t100\tt1\nchr2\t10\t100\tt2\n"),
		chain:      writeInput(t, dir, "alignment.chain", "chain 10 chr1 1000 + 0 10 s1 50 + 0 10 1\n10\n\n"),
		target:     writeInput(t, dir, "target.fa.fai", "chr1\t1000\t6\t60\t61\nchr2\t500\t1030\t60\t61\n"),
		query:      writeInput(t, dir, "query.fa.fai", "s1\t50\t6\t60\t61\n"),
		u12:        writeInput(t, dir, "u12.tsv", "t1\t2\tA\nt9\t1\tD\n"),
		isoforms:   writeInput(t, dir, "isoforms.txt", "gene\ttranscript\ng1\tt1\ng2\tt2\ng3\tt3\n"),
		classified: writeInput(t, dir, "results.tsv", "transcript\tchain\nt1\t1\n"),
	}
}

func (in checkInputs) args(query string) []string {
	return []string{
		"check", in.bed, in.chain,
		"--target-2bit", in.target,
		"--query-2bit", query,
		"--u12", in.u12,
		"--isoforms", in.isoforms,
		"--classified", in.classified,
		"--temp-dir", filepath.Join(in.dir, "temp"),
		"--buckets", "10,20",
		"--log-path", filepath.Join(in.dir, "logs"),
	}
}

func TestCheck(t *testing.T) {
	in := newCheckInputs(t)
	if err := runCommand(t, Check, in.args(in.query)...); err != nil {
		t.Fatal(err)
	}
	u12, err := ioutil.ReadFile(filepath.Join(in.dir, "temp", sanity.U12FileName))
	if err != nil {
		t.Fatal(err)
	}
	if string(u12) != "t1\t2\tA\n" {
		t.Errorf("unexpected U12 output %q", u12)
	}
	iso, err := ioutil.ReadFile(filepath.Join(in.dir, "temp", sanity.IsoformsFileName))
	if err != nil {
		t.Fatal(err)
	}
	if string(iso) != "gene\ttranscript\ng1\tt1\ng2\tt2\n" {
		t.Errorf("unexpected isoforms output %q", iso)
	}
	if logs, err := ioutil.ReadDir(filepath.Join(in.dir, "logs", "logs", "elcheck")); err != nil || len(logs) != 1 {
		t.Errorf("expected one log file, got %v, %v", logs, err)
	}
}

func TestCheckMissingQueryChromosome(t *testing.T) {
	in := newCheckInputs(t)
	query := writeInput(t, in.dir, "other.fa.fai", "s2\t50\t6\t60\t61\n")
	err := runCommand(t, Check, in.args(query)...)
	if !sanity.IsKind(err, sanity.CompletenessError) {
		t.Errorf("expected a completeness error, got %v", err)
	}
}
