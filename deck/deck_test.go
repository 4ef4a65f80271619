package deck

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mixvm/negroni/mix"
)

func TestBinaryRoundTrip(t *testing.T) {
	p := New()
	p.Words[10] = mix.MustFromValue(1000)
	p.Words[11] = mix.MustFromValue(-42)
	p.Start = 10

	var buf bytes.Buffer
	if err := EncodeBinary(&buf, p); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeBinary(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Start != p.Start {
		t.Errorf("Start = %d, want %d", got.Start, p.Start)
	}
	if got.Words[10].Value() != 1000 {
		t.Errorf("Words[10] = %d, want 1000", got.Words[10].Value())
	}
	if got.Words[11].Value() != -42 {
		t.Errorf("Words[11] = %d, want -42", got.Words[11].Value())
	}
}

func TestWriteDeckBootLoaderIsVerbatim(t *testing.T) {
	p := New()
	p.Start = 0

	var buf bytes.Buffer
	if err := WriteDeck(&buf, p); err != nil {
		t.Fatal(err)
	}

	lines := strings.SplitN(buf.String(), "\n", 3)
	if lines[0]+"\n"+lines[1] != BootLoader {
		t.Fatalf("boot loader lines don't match BootLoader verbatim")
	}
	if len(lines[0]) != 80 {
		t.Fatalf("boot loader first line = %d columns, want 80", len(lines[0]))
	}
}

// TestWriteDeckSingleGroup exercises spec.md §6's SHAKE card encoding:
// one positive word as 10 digits, one negative word as 9 digits plus
// the character-coded sign/last-digit byte.
func TestWriteDeckSingleGroup(t *testing.T) {
	p := New()
	p.Words[10] = mix.MustFromValue(77)
	p.Words[11] = mix.MustFromValue(-5)
	p.Start = 10

	var buf bytes.Buffer
	if err := WriteDeck(&buf, p); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// line 0-1: boot loader, line 2: the SHAKE card, line 3: TRANS0.
	shakeLine := lines[2]
	want := "SHAKE20010" + "0000000077" + "000000000N"
	if shakeLine != want {
		t.Fatalf("shake line = %q, want %q", shakeLine, want)
	}

	trailer := lines[3]
	if trailer != "TRANS00010" {
		t.Fatalf("trailer = %q, want TRANS00010", trailer)
	}
}

func TestGroupRunsSplitsOnGapAndSize(t *testing.T) {
	locations := []int{1, 2, 3, 10, 11, 20, 21, 22, 23, 24, 25, 26, 27}
	groups := groupRuns(locations)
	if len(groups) != 4 {
		t.Fatalf("got %d groups, want 4: %v", len(groups), groups)
	}
	if len(groups[0]) != 3 || len(groups[1]) != 2 {
		t.Fatalf("unexpected group sizes: %v", groups)
	}
	// the run of 8 contiguous addresses splits into 7 + 1.
	if len(groups[2]) != 7 || len(groups[3]) != 1 {
		t.Fatalf("run-of-8 did not split at maxCardWords: %v", groups)
	}
}
