// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ConsolePort is the interactive Port implementation: it prints ranked
// candidates and reads a decision per title from its input. End of input
// surfaces as io.EOF, which Review treats as "abort the remaining titles".
type ConsolePort struct {
	in  *bufio.Scanner
	out io.Writer

	rule     *color.Color
	title    *color.Color
	number   *color.Color
	skipHint *color.Color
	prompt   *color.Color
	invalid  *color.Color
}

// NewConsolePort builds a console port reading decisions from in and
// writing the prompt to out. noColor disables ANSI styling.
func NewConsolePort(in io.Reader, out io.Writer, noColor bool) *ConsolePort {
	p := &ConsolePort{
		in:       bufio.NewScanner(in),
		out:      out,
		rule:     color.New(color.FgYellow, color.Bold),
		title:    color.New(color.Bold),
		number:   color.New(color.FgCyan),
		skipHint: color.New(color.FgGreen),
		prompt:   color.New(color.FgYellow),
		invalid:  color.New(color.FgRed),
	}
	if noColor {
		for _, c := range []*color.Color{p.rule, p.title, p.number, p.skipHint, p.prompt, p.invalid} {
			c.DisableColor()
		}
	}
	return p
}

// Choose displays the ranked candidates for one reference title and loops
// until the user selects a candidate number, skips, or the input ends.
func (p *ConsolePort) Choose(title string, candidates []Candidate) (int, error) {
	fmt.Fprintln(p.out, p.rule.Sprint(strings.Repeat("-", 70)))
	fmt.Fprintf(p.out, "\nReviewing reference title: %s\n", p.title.Sprint(title))
	fmt.Fprintln(p.out, "No automatic match was selected. Candidates from the discarded games:")
	for i, c := range candidates {
		fmt.Fprintf(p.out, "  %s %s (score: %d%%)\n",
			p.number.Sprintf("[%d]", i+1), c.Entry.Name, c.Score.Primary)
	}
	fmt.Fprintf(p.out, "  %s none of these - keep %q unmatched\n", p.skipHint.Sprint("[0 or N]"), title)

	for {
		fmt.Fprint(p.out, p.prompt.Sprint("Select candidate number to keep, or 0/N to skip: "))
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return Skip, err
			}
			return Skip, io.EOF
		}
		choice := strings.ToLower(strings.TrimSpace(p.in.Text()))
		if choice == "" || choice == "0" || choice == "n" {
			return Skip, nil
		}
		idx, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Fprintln(p.out, p.invalid.Sprint("  Invalid input. Enter a number or 'N'."))
			continue
		}
		if idx < 1 || idx > len(candidates) {
			fmt.Fprintln(p.out, p.invalid.Sprintf("  Invalid choice. Enter a number between 1 and %d, or 0/N.", len(candidates)))
			continue
		}
		return idx - 1, nil
	}
}
