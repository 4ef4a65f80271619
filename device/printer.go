package device

import (
	"fmt"
	"os"
	"strings"

	"github.com/mixvm/negroni/mix"
)

// PrinterBlockSize is the word count of one printed line (spec.md §4.E).
const PrinterBlockSize = 24

// LinePrinter writes one 120-character line per OUT (24 words * 5
// chars), decoding each word via word.ToCharCode(). IOC triggers a
// best-effort form feed. Grounded on original_source/src/io/line_printer.rs,
// the one device the original fully implemented.
type LinePrinter struct {
	file *os.File
}

func NewLinePrinter(path string) (*LinePrinter, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("line printer: open %s: %w", path, err)
	}
	return &LinePrinter{file: f}, nil
}

func (p *LinePrinter) BlockSize() int { return PrinterBlockSize }
func (p *LinePrinter) Close() error   { return p.file.Close() }

func (p *LinePrinter) Process(msg Message, mem MemoryAccessor, _ int64) error {
	switch msg.Operation {
	case mix.OpOUT:
		base := int(msg.Address)
		var sb strings.Builder
		for i := 0; i < PrinterBlockSize; i++ {
			w := mem.Read(base + i)
			chars, err := w.ToCharCode()
			if err != nil {
				return fmt.Errorf("line printer: %w", err)
			}
			for _, r := range chars {
				sb.WriteRune(r)
			}
		}
		_, err := fmt.Fprintln(p.file, sb.String())
		return err
	case mix.OpIOC:
		_, err := fmt.Fprint(p.file, "\f")
		return err
	default:
		return fmt.Errorf("line printer: unsupported operation %d", msg.Operation)
	}
}
