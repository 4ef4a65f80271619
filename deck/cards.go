package deck

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mixvm/negroni/mix"
)

// BootLoader is Knuth's historical MIX card loader, reproduced verbatim
// from original_source/src/bin/shake.rs's loader() function rather than
// spec.md §6's own transcription of it: the spec's copy splits its
// embedded newline eight columns early, breaking the "80-column string"
// property the original string actually has (its first line is exactly
// 80 characters). original_source is the bit-exact reference here, so
// its string wins per the grounding rule of following the original
// when the distillation disagrees with it on a literal detail.
const BootLoader = " O O6 2 O6    I C O4 3 EH A  F F CF    E   EU 3 IH Z EB   EJ  CA. 2 EU   EH 0 EA\n" +
	"   EU 5A-H Z EB  C U 4AEH 5AEN    E  CLU  ABG 2 EH 0 EB J B. A  9    0    A"

// maxCardWords is the most words one SHAKE card groups together
// (shake.rs's make_groups caps each group at 7).
const maxCardWords = 7

// WriteDeck renders p as a bit-exact punched-card deck: the boot loader
// line, one SHAKE card per maximal run of up to 7 contiguous addresses,
// and a trailing TRANS0 transfer card. Grounded on shake.rs's
// make_groups/assemble "deck" branch.
func WriteDeck(w io.Writer, p *Program) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, BootLoader); err != nil {
		return err
	}

	locations := make([]int, 0, len(p.Words))
	for loc := range p.Words {
		locations = append(locations, loc)
	}
	sort.Ints(locations)

	for _, group := range groupRuns(locations) {
		card, err := renderShakeCard(group, p.Words)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(bw, card); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(bw, "TRANS0%04d\n", p.Start); err != nil {
		return err
	}
	return bw.Flush()
}

// groupRuns partitions sorted addresses into maximal contiguous runs,
// splitting a run early once it reaches maxCardWords. Ported from
// shake.rs's make_groups.
func groupRuns(locations []int) [][]int {
	if len(locations) == 0 {
		return nil
	}

	var groups [][]int
	var group []int
	lastLoc := locations[0] - 1

	for _, loc := range locations {
		if loc != lastLoc+1 || len(group) == maxCardWords {
			groups = append(groups, group)
			group = nil
		}
		group = append(group, loc)
		lastLoc = loc
	}
	groups = append(groups, group)
	return groups
}

// renderShakeCard formats one SHAKE card: the header (word count, start
// address) followed by each word's 10-character encoding. A negative
// word is rendered as nine digits of |value|/10 followed by the
// character-coded sign/last-digit byte (shake.rs's "(lsb + 10)" trick).
func renderShakeCard(group []int, words map[int]mix.Word) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SHAKE%d%04d", len(group), group[0])

	for _, loc := range group {
		value := words[loc].Value()
		if value >= 0 {
			fmt.Fprintf(&sb, "%010d", value)
			continue
		}
		value = -value
		fmt.Fprintf(&sb, "%09d", value/10)
		lastDigit := byte(value % 10)
		ch, err := mix.CharFromCode(mix.SignDigitCode(lastDigit))
		if err != nil {
			return "", fmt.Errorf("deck: encoding negative word at %d: %w", loc, err)
		}
		sb.WriteRune(ch)
	}

	return sb.String(), nil
}
