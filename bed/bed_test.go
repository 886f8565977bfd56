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
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exascience/elcheck/chroms"
)

const testBed = `track name=annotation
chr1	1000	5000	ENST01	1000	+	1200	4800	0	2	100,200,	0,3800,
chr2	10	90	ENST02	0	-	10	90	0,0,0	1	80	0
# a comment
chr1	100	900	ENST03	0	+	100	900	0	1	800,	0,
chr1	1000	5000	ENST01	1000	+	1200	4800	0	2	100,200,	0,3800,
`

func writeBed(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), "annotation.bed")
	if err := ioutil.WriteFile(filename, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestParseBed(t *testing.T) {
	bed, err := ParseBed(writeBed(t, testBed))
	if err != nil {
		t.Fatal(err)
	}
	if len(bed.Regions) != 4 {
		t.Fatalf("expected 4 regions, got %v", len(bed.Regions))
	}
	if len(bed.RegionMap) != 2 {
		t.Errorf("expected 2 chromosomes, got %v", len(bed.RegionMap))
	}
	chr1 := bed.Regions[0].Chrom
	if regions := bed.RegionMap[chr1]; regions[0].Start != 100 {
		t.Error("chr1 regions are not sorted")
	}
	if strand := bed.Regions[1].OptionalFields[brStrand]; strand != SR {
		t.Error("unexpected strand for ENST02")
	}
	if starts := bed.Regions[0].OptionalFields[brBlockStarts].([]int32); len(starts) != 2 || starts[1] != 3800 {
		t.Errorf("unexpected block starts %v", starts)
	}
}

func TestTranscriptIDs(t *testing.T) {
	bed, err := ParseBed(writeBed(t, testBed))
	if err != nil {
		t.Fatal(err)
	}
	ids, err := TranscriptIDs(bed)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(ids, ",") != "ENST01,ENST02,ENST03" {
		t.Errorf("unexpected transcript IDs %v", ids)
	}
	sizes := ChromSizes(bed)
	if len(sizes) != 2 || sizes["chr1"] != chroms.Unknown || sizes["chr2"] != chroms.Unknown {
		t.Errorf("unexpected chromosome sizes %v", sizes)
	}
}

func TestTranscriptIDsUnnamed(t *testing.T) {
	bed, err := ParseBed(writeBed(t, "chr1\t10\t20\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := TranscriptIDs(bed); err == nil {
		t.Error("expected an error for an unnamed region")
	}
}

func TestParseBedErrors(t *testing.T) {
	for _, content := range []string{
		"chr1\t10\n",
		"chr1\tx\t20\tt1\n",
		"chr1\t30\t20\tt1\n",
		"chr1\t10\t20\tt1\t0\t*\n",
		"chr1\t10\t20\tt1\t0\t+\t10\t20\t0\t2\t5,\t0,5,\n",
	} {
		_, err := ParseBed(writeBed(t, "chr1\t0\t5\tok\n"+content))
		if err == nil {
			t.Errorf("expected an error for %q", content)
		} else if !strings.Contains(err.Error(), "line 2") {
			t.Errorf("error %v does not name line 2", err)
		}
	}
}
