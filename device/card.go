package device

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mixvm/negroni/mix"
)

// CardBlockSize is the word count of one card (spec.md §4.E): 80
// characters packed 5-per-word.
const CardBlockSize = 16

// CardReader reads 80-column text lines, left-aligned, from its backing
// file, packing every 5 characters into a word via the character-code
// table. The original_source stub (io/card_reader.rs) never implemented
// this; spec.md §4.E requires a working device, so this repo supplies
// one (documented in DESIGN.md as a supplemented implementation, not a
// ported stub).
type CardReader struct {
	file    *os.File
	scanner *bufio.Scanner
}

func NewCardReader(path string) (*CardReader, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("card reader: open %s: %w", path, err)
	}
	return &CardReader{file: f, scanner: bufio.NewScanner(f)}, nil
}

func (c *CardReader) BlockSize() int { return CardBlockSize }
func (c *CardReader) Close() error   { return c.file.Close() }

func (c *CardReader) Process(msg Message, mem MemoryAccessor, _ int64) error {
	if msg.Operation != mix.OpIN {
		return fmt.Errorf("card reader: unsupported operation %d", msg.Operation)
	}
	line := ""
	if c.scanner.Scan() {
		line = c.scanner.Text()
	} else if err := c.scanner.Err(); err != nil {
		return fmt.Errorf("card reader: %w", err)
	}
	line = padTrunc(line, 80)
	base := int(msg.Address)
	for i := 0; i < CardBlockSize; i++ {
		chunk := []rune(line[i*5 : i*5+5])
		w, err := mix.WordFromCharCode(chunk)
		if err != nil {
			return fmt.Errorf("card reader: %w", err)
		}
		mem.Write(base+i, w)
	}
	return nil
}

// CardPunch packs words to characters via the character-code table and
// writes one 80-column line per OUT.
type CardPunch struct {
	file *os.File
}

func NewCardPunch(path string) (*CardPunch, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("card punch: open %s: %w", path, err)
	}
	return &CardPunch{file: f}, nil
}

func (c *CardPunch) BlockSize() int { return CardBlockSize }
func (c *CardPunch) Close() error   { return c.file.Close() }

func (c *CardPunch) Process(msg Message, mem MemoryAccessor, _ int64) error {
	if msg.Operation != mix.OpOUT {
		return fmt.Errorf("card punch: unsupported operation %d", msg.Operation)
	}
	base := int(msg.Address)
	var sb strings.Builder
	for i := 0; i < CardBlockSize; i++ {
		w := mem.Read(base + i)
		chars, err := w.ToCharCode()
		if err != nil {
			return fmt.Errorf("card punch: %w", err)
		}
		for _, r := range chars {
			sb.WriteRune(r)
		}
	}
	_, err := fmt.Fprintln(c.file, sb.String())
	return err
}

func padTrunc(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}
