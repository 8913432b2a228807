// Command inkwell renders bracket-markup text and sample tables to the
// terminal, downgrading colors to whatever the terminal supports. It
// doubles as a quick probe for what inkwell detects about the current
// terminal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/odvcencio/inkwell/pkg/color"
	"github.com/odvcencio/inkwell/pkg/console"
	"github.com/odvcencio/inkwell/pkg/segment"
	"github.com/odvcencio/inkwell/pkg/table"
	"github.com/odvcencio/inkwell/pkg/text"
	"github.com/odvcencio/inkwell/pkg/theme"
)

// Version information - set via ldflags during build
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

var (
	noColor     bool
	showCaps    bool
	showVersion bool
	demoTable   bool
	widthFlag   int
	themePath   string
)

func main() {
	flag.BoolVar(&noColor, "no-color", false, "disable color output")
	flag.BoolVar(&showCaps, "caps", false, "print detected terminal capabilities and exit")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&demoTable, "table", false, "render a sample table and exit")
	flag.IntVar(&widthFlag, "width", 0, "override detected terminal width")
	flag.StringVar(&themePath, "theme", "", "path to a YAML theme file")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("inkwell %s (%s)\n", version, commit)
		return
	}

	caps := console.Detect(os.Stdout)
	if noColor {
		caps.Colors = color.SystemNone
		caps.Hyperlinks = false
	}
	if widthFlag > 0 {
		caps.Width = widthFlag
	}

	if showCaps {
		printCaps(caps)
		return
	}

	th := theme.Default()
	if themePath != "" {
		loaded, err := theme.LoadFile(themePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "inkwell: %v\n", err)
			os.Exit(1)
		}
		th = loaded
	}

	w := console.NewWriter(os.Stdout, caps)

	if demoTable {
		if err := renderDemoTable(w, caps.Width); err != nil {
			fmt.Fprintf(os.Stderr, "inkwell: %v\n", err)
			os.Exit(1)
		}
		return
	}

	resolver := text.Resolver{Lookup: th.Lookup}

	if flag.NArg() > 0 {
		if err := renderMarkup(w, resolver, strings.Join(flag.Args(), " ")); err != nil {
			fmt.Fprintf(os.Stderr, "inkwell: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := renderMarkup(w, resolver, scanner.Text()); err != nil {
			fmt.Fprintf(os.Stderr, "inkwell: %v\n", err)
			os.Exit(1)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "inkwell: reading stdin: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: inkwell [flags] [markup...]

Renders bracket markup like "[bold red]error:[/] details" to the
terminal. With no arguments, reads markup line by line from stdin.

Flags:
`)
	flag.PrintDefaults()
}

func renderMarkup(w *console.Writer, r text.Resolver, markup string) error {
	txt, err := r.Parse(markup)
	if err != nil {
		return err
	}
	return w.WriteLines([][]segment.Segment{txt.Render()})
}

func printCaps(caps console.Capabilities) {
	fmt.Printf("tty:        %v\n", caps.IsTTY)
	fmt.Printf("size:       %dx%d\n", caps.Width, caps.Height)
	fmt.Printf("colors:     %s\n", colorSystemName(caps.Colors))
	fmt.Printf("hyperlinks: %v\n", caps.Hyperlinks)
}

func colorSystemName(sys color.System) string {
	switch sys {
	case color.SystemTrueColor:
		return "truecolor"
	case color.SystemEightBit:
		return "256"
	case color.SystemStandard:
		return "16"
	default:
		return "none"
	}
}

func renderDemoTable(w *console.Writer, width int) error {
	tbl := table.New(
		table.Column{Header: "Component", Justify: table.JustifyLeft},
		table.Column{Header: "Status", Justify: table.JustifyCenter},
		table.Column{Header: "Detail", Ratio: 1, Overflow: table.OverflowFold},
	)
	tbl.Border = table.BorderRounded

	tbl.AddTextRow("markup", "ok", "bracket tags, escapes, themed names")
	tbl.AddTextRow("color", "ok", "truecolor, 256, and 16-color downgrading with nearest match")
	tbl.AddTextRow("table", "ok", "colspan, rowspan, ratio columns, folding overflow")

	return w.WriteLines(tbl.Render(width))
}
