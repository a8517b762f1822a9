// Command termdump drives a Terminal from a scenario file and prints the
// resulting screen content. It exists so the core model can be exercised
// without a VT parser or renderer attached: each line is either a bare
// codepoint sequence to print, or a directive recognized below.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pagedterm/term"
)

func main() {
	cols := flag.Int("cols", term.DefaultCols, "terminal width")
	rows := flag.Int("rows", term.DefaultRows, "terminal height")
	scrollback := flag.Int("scrollback", 1000, "primary screen scrollback rows")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: termdump [-cols N] [-rows N] [-scrollback N] <scenario-file>")
		os.Exit(2)
	}

	t, err := term.New(
		term.WithSize(*rows, *cols),
		term.WithScrollback(*scrollback),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "new terminal:", err)
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := run(t, f); err != nil {
		fmt.Fprintln(os.Stderr, "scenario error:", err)
		os.Exit(1)
	}

	var out strings.Builder
	if err := t.Active().DumpString(&out, 0); err != nil {
		fmt.Fprintln(os.Stderr, "dump:", err)
		os.Exit(1)
	}
	fmt.Println(out.String())
}

func run(t *term.Terminal, f *os.File) error {
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		directive, arg, hasDirective := strings.Cut(line, " ")
		if !hasDirective {
			directive, arg = line, ""
		}

		switch directive {
		case "":
			continue
		case "print":
			for _, r := range arg {
				if err := t.Print(r); err != nil {
					return fmt.Errorf("print: %w", err)
				}
			}
		case "index":
			if err := t.Index(); err != nil {
				return fmt.Errorf("index: %w", err)
			}
		case "reverseindex":
			t.ReverseIndex()
		case "nextline":
			if err := t.NextLine(); err != nil {
				return fmt.Errorf("nextline: %w", err)
			}
		case "cr":
			t.CarriageReturn()
		case "tab":
			t.HorizontalTab()
		case "sgr":
			if err := applySGR(t, arg); err != nil {
				return fmt.Errorf("sgr: %w", err)
			}
		case "cursor":
			x, y, err := twoInts(arg)
			if err != nil {
				return fmt.Errorf("cursor: %w", err)
			}
			t.Active().CursorAbsolute(x, y)
		case "region":
			top, bottom, err := twoInts(arg)
			if err != nil {
				return fmt.Errorf("region: %w", err)
			}
			t.SetScrollingRegion(top, bottom, 0, t.Cols()-1)
		case "scroll":
			delta, err := strconv.Atoi(strings.TrimSpace(arg))
			if err != nil {
				return fmt.Errorf("scroll: %w", err)
			}
			t.ScrollViewport(delta)
		case "viewport-reset":
			t.ResetViewport()
		case "dumpviewport":
			n, err := strconv.Atoi(strings.TrimSpace(arg))
			if err != nil {
				return fmt.Errorf("dumpviewport: %w", err)
			}
			var out strings.Builder
			if err := t.ViewportText(&out, n); err != nil {
				return fmt.Errorf("dumpviewport: %w", err)
			}
			fmt.Println(out.String())
		default:
			return fmt.Errorf("unrecognized directive %q", directive)
		}
	}
	return scanner.Err()
}

func applySGR(t *term.Terminal, arg string) error {
	values, subs, err := term.ParseSGRParams(arg)
	if err != nil {
		return err
	}
	p := term.NewSGRParser(values, subs)
	for {
		attr, ok := p.Next()
		if !ok {
			return nil
		}
		t.Active().SetAttribute(attr)
	}
}

func twoInts(arg string) (a, b int, err error) {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want two space-separated integers, got %q", arg)
	}
	a, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
