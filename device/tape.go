package device

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mixvm/negroni/mix"
)

// TapeBlockSize is the word count of one tape block (spec.md §4.E).
const TapeBlockSize = 100

// Tape is a sequential-access device: IN/OUT transfer one block at the
// current file position; IOC with a negative address rewinds or skips
// backward. Backing file is word-packed with no framing: six bytes per
// word, a sign byte then the five byte values (codec.go). This is not
// the gob encoding the binary artifact format (deck.EncodeBinary) uses.
type Tape struct {
	file *os.File
	pos  int64 // current block position, in blocks
}

// NewTape opens (creating if necessary) the tape's backing file.
func NewTape(path string) (*Tape, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("tape: open %s: %w", path, err)
	}
	return &Tape{file: f}, nil
}

func (t *Tape) BlockSize() int { return TapeBlockSize }

func (t *Tape) Close() error { return t.file.Close() }

func (t *Tape) Process(msg Message, mem MemoryAccessor, _ int64) error {
	switch msg.Operation {
	case mix.OpIOC:
		if msg.Address < 0 {
			t.pos += msg.Address // skip backward (or rewind if it goes negative)
			if t.pos < 0 {
				t.pos = 0
			}
		}
		return nil
	case mix.OpIN:
		buf := make([]byte, TapeBlockSize*wordByteSize)
		off := t.pos * int64(len(buf))
		if _, err := t.file.ReadAt(buf, off); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("tape: read: %w", err)
		}
		// Reading past current EOF is a legitimate unwritten tape
		// region: buf stays zero-filled, which decodes to all-zero
		// words exactly as an unwritten block should.
		words := decodeWords(buf)
		base := int(msg.Address)
		for i, w := range words {
			mem.Write(base+i, w)
		}
		t.pos++
		return nil
	case mix.OpOUT:
		base := int(msg.Address)
		words := make([]mix.Word, TapeBlockSize)
		for i := range words {
			words[i] = mem.Read(base + i)
		}
		buf := encodeWords(words)
		off := t.pos * int64(len(buf))
		if _, err := t.file.WriteAt(buf, off); err != nil {
			return fmt.Errorf("tape: write: %w", err)
		}
		t.pos++
		return nil
	default:
		return fmt.Errorf("tape: unsupported operation %d", msg.Operation)
	}
}
