// Command shake is the MIXAL assembler CLI: it reads a source file,
// assembles it, and writes either the binary artifact format or a
// bit-exact punched-card deck. Grounded on
// original_source/src/bin/shake.rs's main/assemble/lex functions,
// rebuilt on climate per SPEC_FULL.md §4.I/§4.J instead of shake.rs's
// clap-based argument parsing.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/grimdork/climate"

	"github.com/mixvm/negroni/deck"
	"github.com/mixvm/negroni/mixal"
)

// Args is shake's command-line surface: --format, --debug, and a
// positional source file, matching spec.md §6's "shake" CLI contract.
type Args struct {
	Format string `short:"f" long:"format" description:"output format: binary or deck" default:"binary"`
	Debug  bool   `long:"debug" description:"print lexer tokens and the assembled word table"`
	Output string `short:"o" long:"output" description:"binary output path (format=binary only)" default:"out.bin"`
	Input  string `positional:"1" description:"MIXAL source file"`
}

func main() {
	log.SetFlags(0)

	args := &Args{Format: "binary", Output: "out.bin"}
	if err := climate.Parse(args); err != nil {
		log.Fatalf("shake: %v", err)
	}
	if args.Input == "" {
		log.Fatal("shake: usage: shake [--format binary|deck] [--debug] <INPUT>")
	}

	fmt.Println("===SHAKE===")

	source, err := os.ReadFile(args.Input)
	if err != nil {
		log.Fatalf("shake: %v", err)
	}

	if args.Debug {
		debugLex(string(source))
	}

	program, err := assemble(string(source))
	if err != nil {
		log.Fatal(err)
	}

	if args.Debug {
		debugWords(program)
	}

	switch args.Format {
	case "binary":
		f, err := os.Create(args.Output)
		if err != nil {
			log.Fatalf("shake: %v", err)
		}
		defer f.Close()
		if err := deck.EncodeBinary(f, program); err != nil {
			log.Fatalf("shake: %v", err)
		}
	case "deck":
		if err := deck.WriteDeck(os.Stdout, program); err != nil {
			log.Fatalf("shake: %v", err)
		}
	default:
		log.Fatalf("shake: unknown format %q", args.Format)
	}
}

func assemble(source string) (*deck.Program, error) {
	a, err := mixal.Assemble(source)
	if err != nil {
		return nil, err
	}
	return &deck.Program{Words: a.Words, Start: a.ProgramStart}, nil
}

// debugLex mirrors shake.rs's lex() debug pass: scan the whole input
// and print each line's tokens, bracketed, ending each line with
// [EOL].
func debugLex(source string) {
	lexer := mixal.NewLexer(source)
	line := ""
	for {
		lexeme := lexer.Scan()
		switch lexeme.Token {
		case mixal.ILLEGAL:
			fmt.Printf("ERROR: unexpected token %q (%d:%d)\n", lexeme.Literal, lexeme.Line, lexeme.Col)
			return
		case mixal.EOF:
			fmt.Println("[EOF]")
			return
		case mixal.EOL:
			fmt.Println(line + "[EOL]")
			line = ""
		default:
			line += fmt.Sprintf("[%s]", lexeme.Literal)
		}
	}
}

func debugWords(p *deck.Program) {
	locations := make([]int, 0, len(p.Words))
	for loc := range p.Words {
		locations = append(locations, loc)
	}
	sort.Ints(locations)
	for _, loc := range locations {
		fmt.Printf("%04d: %s\n", loc, p.Words[loc])
	}
}
