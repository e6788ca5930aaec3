// Released under an MIT license. See LICENSE.

// Package loader reads rules from rule files and rule commands.
//
// A rule file has one rule per line:
//
//	<namespace.name> pattern replacement
//
// Blank lines and lines starting with '#' are ignored.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/michaelmacinnis/modal/internal/engine/rule"
	"github.com/michaelmacinnis/modal/internal/reader"
	"github.com/michaelmacinnis/modal/internal/reader/parser"
)

//nolint:gochecknoglobals
var (
	header = regexp.MustCompile(`^\s*<([^.<>\s]+)\.([^<>\s]+)>\s*`)
	remove = regexp.MustCompile(`^>([^.<>\s]+)\.([^<>\s]+)<$`)
)

// ErrSyntax is wrapped by every malformed rule or rule command error.
var ErrSyntax = errors.New("invalid rule syntax") //nolint:gochecknoglobals

// Command is an add or remove rule command.
// Exactly one of Rule and Remove is set.
type Command struct {
	Rule   *rule.T // Rule to add.
	Remove string  // Full name of the rules to remove.
}

// Load reads every rule in r. The name labels error locations.
func Load(name string, r io.Reader) ([]*rule.T, error) {
	var rules []*rule.T

	s := bufio.NewScanner(r)

	for n := 1; s.Scan(); n++ {
		line := s.Text()

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		r, err := parse(name, n, line)
		if err != nil {
			return nil, err
		}

		rules = append(rules, r)
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return rules, nil
}

// File loads the rules in the file at path.
func File(path string) ([]*rule.T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(path, f)
}

// Files loads every file named by patterns, in order.
func Files(patterns ...string) ([]*rule.T, error) {
	paths, err := Paths(patterns...)
	if err != nil {
		return nil, err
	}

	var rules []*rule.T

	for _, path := range paths {
		loaded, err := File(path)
		if err != nil {
			return nil, err
		}

		rules = append(rules, loaded...)
	}

	return rules, nil
}

// Paths expands each glob pattern. A pattern that matches nothing is
// treated as a file name.
func Paths(patterns ...string) ([]string, error) {
	var paths []string

	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}

		if len(matches) == 0 {
			matches = []string{p}
		}

		paths = append(paths, matches...)
	}

	return paths, nil
}

// IsCommand returns true if line looks like a rule command.
func IsCommand(line string) bool {
	line = strings.TrimSpace(line)

	return strings.HasPrefix(line, "<") || strings.HasPrefix(line, ">")
}

// Parse parses the rule command in line.
func Parse(line string) (*Command, error) {
	line = strings.TrimSpace(line)

	if m := remove.FindStringSubmatch(line); m != nil {
		return &Command{Remove: m[1] + "." + m[2]}, nil
	}

	r, err := parse("command", 1, line)
	if err != nil {
		return nil, err
	}

	return &Command{Rule: r}, nil
}

func parse(name string, n int, line string) (*rule.T, error) {
	m := header.FindStringSubmatchIndex(line)
	if m == nil {
		return nil, fmt.Errorf(
			"%s:%d: %w: expected <namespace.name> pattern replacement or >namespace.name<",
			name, n, ErrSyntax,
		)
	}

	namespace, id := line[m[2]:m[3]], line[m[4]:m[5]]
	rest := line[m[1]:]

	terms, err := reader.ParseAll(name, rest)
	if err != nil {
		var e *parser.Error
		if errors.As(err, &e) {
			e.Source.Line = n
			e.Source.Char += utf8.RuneCountInString(line[:m[1]])
		}

		return nil, err
	}

	if len(terms) != 2 {
		return nil, fmt.Errorf(
			"%s:%d: %w: expected a pattern and a replacement, got %d terms",
			name, n, ErrSyntax, len(terms),
		)
	}

	return rule.New(namespace, id, terms[0], terms[1]), nil
}
