// Package theme provides a named style registry: semantic names
// ("warning", "success") resolving to styles, with a default set and
// YAML-defined overrides. The markup resolver consults a theme before
// falling back to raw style parsing, so "[warning]...[/]" works out of
// the box.
package theme

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/inkwell/pkg/errors"
	"github.com/odvcencio/inkwell/pkg/style"
)

// Theme maps style names to resolved styles.
type Theme struct {
	styles map[string]style.Style
}

// defaultDefinitions is the built-in style vocabulary.
var defaultDefinitions = map[string]string{
	"info":      "blue",
	"success":   "green",
	"warning":   "yellow",
	"error":     "bold red",
	"danger":    "bold red",
	"muted":     "dim",
	"emphasis":  "italic",
	"strong":    "bold",
	"code":      "bright_white on #333333",
	"heading":   "bold underline",
	"highlight": "black on yellow",
}

// Default returns the built-in theme.
func Default() *Theme {
	t := &Theme{styles: make(map[string]style.Style, len(defaultDefinitions))}
	for name, def := range defaultDefinitions {
		st, err := style.Parse(def)
		if err != nil {
			// Built-in definitions are fixed strings; a parse failure
			// here is a programming error.
			panic(err)
		}
		t.styles[name] = st
	}
	return t
}

// New returns an empty theme.
func New() *Theme {
	return &Theme{styles: make(map[string]style.Style)}
}

// Get resolves a style name.
func (t *Theme) Get(name string) (style.Style, bool) {
	st, ok := t.styles[name]
	return st, ok
}

// Set registers or replaces a named style.
func (t *Theme) Set(name string, st style.Style) {
	t.styles[name] = st
}

// Len returns the number of registered styles.
func (t *Theme) Len() int {
	return len(t.styles)
}

// Load reads a YAML mapping of name to style definition and overlays
// it on the default theme. Definitions parse through style.Parse at
// load time; the first bad definition fails the whole load.
func Load(r io.Reader) (*Theme, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "reading theme")
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "parsing theme yaml")
	}

	t := Default()
	for name, def := range raw {
		st, parseErr := style.Parse(def)
		if parseErr != nil {
			return nil, errors.Wrap(parseErr, errors.GetCode(parseErr), "theme entry "+name)
		}
		t.styles[name] = st
	}
	return t, nil
}

// LoadFile loads a theme from a YAML file.
func LoadFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "opening theme file")
	}
	defer f.Close()
	return Load(f)
}

// Lookup adapts the theme to the markup resolver's lookup hook.
func (t *Theme) Lookup(name string) (style.Style, bool) {
	return t.Get(name)
}
