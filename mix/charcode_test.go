package mix

import "testing"

func TestCharCodeRoundTrip(t *testing.T) {
	for b := 0; b < len(charTable); b++ {
		r, err := CharFromCode(byte(b))
		if err != nil {
			t.Fatalf("CharFromCode(%d): %v", b, err)
		}
		got, err := CodeFromChar(r)
		if err != nil {
			t.Fatalf("CodeFromChar(%q): %v", r, err)
		}
		if got != byte(b) {
			t.Errorf("round trip byte %d -> %q -> %d", b, r, got)
		}
	}
}

func TestCharCodeGreekLetters(t *testing.T) {
	cases := map[rune]byte{'Δ': 10, '∑': 20, '∏': 21}
	for r, want := range cases {
		got, err := CodeFromChar(r)
		if err != nil {
			t.Fatalf("CodeFromChar(%q): %v", r, err)
		}
		if got != want {
			t.Errorf("CodeFromChar(%q) = %d, want %d", r, got, want)
		}
	}
}

func TestBadCharCode(t *testing.T) {
	if _, err := CodeFromChar('~'); err == nil {
		t.Fatal("expected BadCharCode for '~'")
	}
	if _, err := CharFromCode(200); err == nil {
		t.Fatal("expected BadCharCode for byte 200")
	}
}

func TestWordFromCharCode(t *testing.T) {
	w, err := WordFromCharCode([]rune("HI"))
	if err != nil {
		t.Fatal(err)
	}
	want := Word{Sign: Positive, Bytes: [5]byte{8, 9, 0, 0, 0}}
	if w != want {
		t.Errorf("WordFromCharCode(HI) = %+v, want %+v", w, want)
	}
}
