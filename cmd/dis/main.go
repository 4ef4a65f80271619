// Command dis is a standalone disassembly CLI: it reads a binary
// artifact produced by shake and prints one mnemonic line per word.
// Adapted from the teacher's cmd/dis68 (read file, disassemble, print
// or write to an output file) with disassembler.Disassemble's new
// map[int]mix.Word signature in place of the teacher's flat byte slice.
package main

import (
	"fmt"
	"os"

	"github.com/mixvm/negroni/deck"
	"github.com/mixvm/negroni/disassembler"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <binary-artifact> [outputfile]\n", os.Args[0])
		os.Exit(1)
	}

	inputFile := os.Args[1]
	var outputFile string
	if len(os.Args) == 3 {
		outputFile = os.Args[2]
	}

	f, err := os.Open(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	program, err := deck.DecodeBinary(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decode error: %v\n", err)
		os.Exit(1)
	}

	listing := disassembler.Disassemble(program.Words)

	if outputFile == "" {
		fmt.Print(listing)
	} else {
		if err := os.WriteFile(outputFile, []byte(listing), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Disassembly written to %s\n", outputFile)
	}
}
