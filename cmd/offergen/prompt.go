package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ideamans/go-l10n"
)

// errNoInput is returned when the input stream ends before an answer.
var errNoInput = errors.New("no input")

// prompter asks questions on a terminal. Each answer is one line.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", errNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ask reads free text. An empty answer returns def.
func (p *prompter) ask(question, def string) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", question, def)
		} else {
			fmt.Fprintf(p.out, "%s: ", question)
		}
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = def
		}
		if answer != "" {
			return answer, nil
		}
	}
}

// choose shows a numbered list and accepts either a listed value or its
// 1-based index. An empty answer returns def.
func (p *prompter) choose(question string, choices []string, def string) (string, error) {
	fmt.Fprintln(p.out, question)
	for i, c := range choices {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, c)
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", l10n.T("Choice"), def)
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer == "" {
			return def, nil
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(choices) {
			return choices[n-1], nil
		}
		for _, c := range choices {
			if strings.EqualFold(c, answer) {
				return c, nil
			}
		}
		fmt.Fprintln(p.out, l10n.F("Invalid choice %q, try again.", answer))
	}
}

// askInt reads an integer in [lo, hi]. An empty answer returns def.
func (p *prompter) askInt(question string, def, lo, hi int) (int, error) {
	for {
		answer, err := p.ask(question, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		fmt.Fprintln(p.out, l10n.F("Please enter a number between %d and %d.", lo, hi))
	}
}

// askFloat reads a number in [lo, hi]. An empty answer returns def.
func (p *prompter) askFloat(question string, def, lo, hi float64) (float64, error) {
	for {
		answer, err := p.ask(question, strconv.FormatFloat(def, 'f', -1, 64))
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(answer, 64)
		if err == nil && f >= lo && f <= hi {
			return f, nil
		}
		fmt.Fprintln(p.out, l10n.F("Please enter a number between %v and %v.", lo, hi))
	}
}
