// Command stir is the MIX emulator CLI: it loads an assembled program
// (binary artifact or punched-card deck) into a fresh cpu.Computer and
// runs it to completion. Grounded on original_source/src/bin/stir.rs's
// main, rebuilt on climate (SPEC_FULL.md §4.I/§4.J) with the deck
// bootstrap path and interactive stepper spec.md §6/§9 add beyond what
// stir.rs implements.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/grimdork/climate"

	"github.com/mixvm/negroni/cpu"
	"github.com/mixvm/negroni/deck"
	"github.com/mixvm/negroni/device"
	"github.com/mixvm/negroni/disassembler"
	"github.com/mixvm/negroni/mix"
)

// Args is stir's command-line surface: --format, --interactive, and an
// optional positional artifact path, matching spec.md §6's "stir" CLI
// contract.
type Args struct {
	Format      string `short:"f" long:"format" description:"input format: binary or deck" default:"binary"`
	Interactive bool   `long:"interactive" description:"step one instruction per Enter keypress, printing register state"`
	Input       string `positional:"1" description:"assembled program to load (binary artifact or deck file)"`
}

func main() {
	log.SetFlags(0)

	args := &Args{Format: "binary"}
	if err := climate.Parse(args); err != nil {
		log.Fatalf("stir: %v", err)
	}

	dataDir, err := deviceDataDir()
	if err != nil {
		log.Fatalf("stir: %v", err)
	}

	computer, err := cpu.New(dataDir)
	if err != nil {
		log.Fatalf("stir: %v", err)
	}

	switch args.Format {
	case "binary":
		if err := loadBinary(computer, args.Input); err != nil {
			log.Fatalf("stir: %v", err)
		}
	case "deck":
		if err := bootstrapDeck(computer, dataDir, args.Input); err != nil {
			log.Fatalf("stir: %v", err)
		}
	default:
		log.Fatalf("stir: unknown format %q", args.Format)
	}

	if args.Interactive {
		computer.PreStep = interactiveStep
	}

	if err := computer.Run(); err != nil {
		log.Fatalf("stir: %v", err)
	}

	computer.Devices.Shutdown()

	fmt.Println("===MIX COMPUTER===")
	fmt.Println(computer)
}

// deviceDataDir is the per-user directory spec.md §6 names for
// persisted device state: one file per slot, under
// os.UserConfigDir()/negroni/devices.
func deviceDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	dir := filepath.Join(base, "negroni", "devices")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating device data dir: %w", err)
	}
	return dir, nil
}

// loadBinary reads a deck.Program from path and populates memory
// directly, matching stir.rs's main (read file, bincode::deserialize,
// write every word into computer.memory).
func loadBinary(c *cpu.Computer, path string) error {
	if path == "" {
		return fmt.Errorf("format=binary requires an input path")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	program, err := deck.DecodeBinary(f)
	if err != nil {
		return err
	}
	for addr, word := range program.Words {
		c.Memory.Write(addr, word)
	}
	c.PC = program.Start
	return nil
}

// bootstrapDeck installs a punched-card deck into the card reader's
// backing file, then performs the single bootstrap IN spec.md §6
// describes: read card 0 (the boot loader) into memory 0..15, start
// execution at PC 0. The boot loader's own instructions -- not this
// Go code -- read the rest of the deck as the program runs.
func bootstrapDeck(c *cpu.Computer, dataDir, path string) error {
	if path != "" {
		if err := installCardDeck(dataDir, path); err != nil {
			return err
		}
	}

	reader := c.Devices.Device(device.CardReaderSlot)
	if reader == nil {
		return fmt.Errorf("card reader device not present")
	}
	if err := reader.Send(device.Message{Operation: mix.OpIN, Address: 0}); err != nil {
		return err
	}
	if err := reader.WaitReady(); err != nil {
		return err
	}
	c.PC = 0
	return nil
}

// installCardDeck copies a deck file's contents verbatim into the
// persisted card_reader backing file, so the card reader device reads
// it back line by line on subsequent IN operations.
func installCardDeck(dataDir, deckPath string) error {
	src, err := os.Open(deckPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dataDir, "card_reader"))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// interactiveStep is the minimal line-oriented stepper spec.md's
// Non-goals section calls for: print state, block for Enter, execute
// one instruction.
func interactiveStep(c *cpu.Computer) {
	fmt.Println(c)
	instr := mix.FromWord(c.Memory.Read(c.PC))
	fmt.Println(disassembler.Format(c.PC, instr))
	fmt.Print("(stir) press Enter to step> ")
	bufio.NewReader(os.Stdin).ReadString('\n')
}
