package device

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mixvm/negroni/mix"
)

// DiskBlockSize is the word count of one disk block (spec.md §4.E).
const DiskBlockSize = 100

// Disk is a random-access device whose target block number is taken
// from the X register at the time the worker processes the message
// (grounded on original_source/src/io/disk.rs, which reads
// computer.extension.read().value()).
type Disk struct {
	file *os.File
}

func NewDisk(path string) (*Disk, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("disk: open %s: %w", path, err)
	}
	return &Disk{file: f}, nil
}

func (d *Disk) BlockSize() int { return DiskBlockSize }

func (d *Disk) Close() error { return d.file.Close() }

func (d *Disk) Process(msg Message, mem MemoryAccessor, x int64) error {
	blockBytes := int64(DiskBlockSize * wordByteSize)
	off := x * blockBytes

	switch msg.Operation {
	case mix.OpIOC:
		return nil
	case mix.OpIN:
		buf := make([]byte, blockBytes)
		if _, err := d.file.ReadAt(buf, off); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("disk: read: %w", err)
		}
		words := decodeWords(buf)
		base := int(msg.Address)
		for i, w := range words {
			mem.Write(base+i, w)
		}
		return nil
	case mix.OpOUT:
		base := int(msg.Address)
		words := make([]mix.Word, DiskBlockSize)
		for i := range words {
			words[i] = mem.Read(base + i)
		}
		buf := encodeWords(words)
		if _, err := d.file.WriteAt(buf, off); err != nil {
			return fmt.Errorf("disk: write: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("disk: unsupported operation %d", msg.Operation)
	}
}
