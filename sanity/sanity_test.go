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
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	filename := filepath.Join(dir, name)
	if err := ioutil.WriteFile(filename, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return filename
}

func readFile(t *testing.T, filename string) string {
	content, err := ioutil.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	return string(content)
}

func checkKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected a %v, got %v", kind, err)
	}
	if e.Kind != kind {
		t.Fatalf("expected a %v, got a %v: %v", kind, e.Kind, e)
	}
	return e
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("cause")
	err := fmt.Errorf("wrapped: %w", newError(ConsistencyError, "a.chain", 0, cause, "sizes differ"))
	if !IsKind(err, ConsistencyError) || IsKind(err, FormatError) {
		t.Error("IsKind does not see through wrapping")
	}
	if !errors.Is(err, cause) {
		t.Error("Error does not unwrap to its cause")
	}
	if !strings.HasPrefix(errors.Unwrap(err).Error(), "consistency error: ") {
		t.Errorf("unexpected message %v", errors.Unwrap(err))
	}
}

func TestSample(t *testing.T) {
	ids := make([]string, 250)
	for i := range ids {
		ids[i] = fmt.Sprintf("t%v", i)
	}
	if n := len(strings.Split(sample(ids), "\n")); n != MaxReported {
		t.Errorf("expected %v sampled ids, got %v", MaxReported, n)
	}
	if sample([]string{"a", "b"}) != "a\nb" {
		t.Error("short lists must be reported completely")
	}
}

func TestTranscriptSet(t *testing.T) {
	set := NewTranscriptSet([]string{"t3", "t1", "t3", "t2"})
	if set.Len() != 3 || strings.Join(set.IDs(), ",") != "t3,t1,t2" {
		t.Errorf("unexpected set %v", set.IDs())
	}
	if !set.Contains("t1") || set.Contains("t4") {
		t.Error("Contains failed")
	}
	if got := set.Intersect([]string{"t4", "t2", "t3"}); strings.Join(got, ",") != "t2,t3" {
		t.Errorf("unexpected intersection %v", got)
	}
	missing := set.Uncovered(map[string]string{"t1": "g1", "t9": "g9"})
	if strings.Join(missing, ",") != "t3,t2" {
		t.Errorf("unexpected uncovered transcripts %v", missing)
	}
	if set.Uncovered(map[string]string{"t1": "g", "t2": "g", "t3": "g"}) != nil {
		t.Error("fully covered set reported missing transcripts")
	}
	if NewTranscriptSet(nil).Uncovered(nil) != nil {
		t.Error("empty set reported missing transcripts")
	}
}

func TestBuckets(t *testing.T) {
	buckets, err := CheckBuckets("5,10,30")
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 3 || buckets[2] != 30 {
		t.Errorf("unexpected buckets %v", buckets)
	}
	for _, s := range []string{"5,x", "", "5,,10", "-1", "1.5"} {
		if _, err := CheckBuckets(s); !IsKind(err, FormatError) {
			t.Errorf("expected a format error for %q, got %v", s, err)
		}
	}
}

type fakeEnvironment map[string]bool

func (env fakeEnvironment) ToolAvailable(name string) bool { return env[name] }
func (env fakeEnvironment) FileExists(path string) bool { return env[path] }

func TestEnvironment(t *testing.T) {
	env := fakeEnvironment{"nextflow": true, "/opt/bin/chain_score_filter": true}
	if err := CheckTools(env, "nextflow"); err != nil {
		t.Error(err)
	}
	err := CheckTools(env, "nextflow", "cesar", "faToTwoBit")
	if e := checkKind(t, err, CompletenessError); !strings.Contains(e.Message, "cesar, faToTwoBit") {
		t.Errorf("missing tools not listed: %v", e)
	}
	if err := CheckFiles(env, "/opt/bin/chain_score_filter"); err != nil {
		t.Error(err)
	}
	checkKind(t, CheckFiles(env, "/opt/bin/chain_score_filter", "/opt/bin/classify"), CompletenessError)
	checkKind(t, CheckInputFile(env, "chain", "missing.chain"), CompletenessError)

	dir := t.TempDir()
	file := writeFile(t, dir, "x.bed", "")
	if !(System{}).FileExists(file) || (System{}).FileExists(dir) {
		t.Error("System.FileExists failed")
	}
}

func TestDirSafety(t *testing.T) {
	dir := t.TempDir()
	if err := CheckDirSafety(filepath.Join(dir, "nextflow"), dir); err != nil {
		t.Error(err)
	}
	checkKind(t, CheckDirSafety(dir+"/", dir), ConsistencyError)
	checkKind(t, CheckDirSafety("."), ConsistencyError)
}

func TestNewTempDir(t *testing.T) {
	parent := t.TempDir()
	dir1, err := NewTempDir(parent)
	if err != nil {
		t.Fatal(err)
	}
	dir2, err := NewTempDir(parent)
	if err != nil {
		t.Fatal(err)
	}
	if dir1 == dir2 || filepath.Dir(dir1) != parent {
		t.Errorf("unexpected temp dirs %v and %v", dir1, dir2)
	}
}
