// Released under an MIT license. See LICENSE.

package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/michaelmacinnis/modal/internal/engine/debug"
	"github.com/michaelmacinnis/modal/internal/engine/rule"
	"github.com/michaelmacinnis/modal/internal/loader"
	"github.com/michaelmacinnis/modal/internal/system/terminal"
)

const help = `Commands:
  :help                Show this help.
  :mode [MODE]         Show or set the mode (quiet, debug, trace, step-by-step).
  :rules [GLOB]        Show all rules, or the rules with a matching full name.
  :namespaces          Show every namespace and its number of rules.
  :load FILE...        Load rule files.
  :stats               Show evaluation statistics.
  :exit                Leave modal.

Rules:
  <namespace.name> pattern replacement    Add a rule.
  >namespace.name<                        Remove every rule with this name.

Examples:
  (+ (* 5 9) 13)
  (length (1 2 3))
  <math.double> (double ?x) (* ?x 2)
  >math.double<
`

type handler func(u *T, args []string)

//nolint:gochecknoglobals
var commands = map[string]handler{
	":help":       showHelp,
	":load":       load,
	":mode":       mode,
	":namespaces": namespaces,
	":rules":      rules,
	":stats":      stats,
}

// Commands returns the name of every command, sorted.
func Commands() []string {
	names := []string{":exit", ":quit"}
	for name := range commands {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (u *T) command(line string) bool {
	fields := strings.Fields(line)

	name, args := fields[0], fields[1:]

	switch name {
	case ":exit", ":quit":
		return false
	}

	h, ok := commands[name]
	if !ok {
		u.failed(fmt.Errorf("unknown command %s (try :help)", name))

		return true
	}

	h(u, args)

	return true
}

func load(u *T, args []string) {
	if len(args) == 0 {
		u.failed(errors.New("usage: :load FILE..."))

		return
	}

	loaded, err := loader.Files(args...)
	if err != nil {
		u.failed(err)

		return
	}

	u.mu.Lock()
	u.engine.Rules().Add(loaded...)
	u.mu.Unlock()

	fmt.Fprintf(u.out, "loaded %d rules\n", len(loaded))
}

func mode(u *T, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(u.out, "mode: %s\n", u.mode)

		return
	}

	m, err := debug.ParseMode(args[0])
	if err != nil {
		u.failed(err)

		return
	}

	u.SetMode(m)

	fmt.Fprintf(u.out, "mode set to %s\n", m)
}

func namespaces(u *T, _ []string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	rs := u.engine.Rules()

	for _, ns := range rs.Namespaces() {
		fmt.Fprintf(u.out, "  %s (%d)\n", ns, len(rs.Namespace(ns)))
	}
}

func rules(u *T, args []string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	var (
		listed []*rule.T
		err    error
	)

	rs := u.engine.Rules()

	if len(args) == 0 {
		listed = rs.All()

		fmt.Fprintf(u.out, "rules (%d):\n", len(listed))
	} else {
		listed, err = rs.Match(args[0])
		if err != nil {
			u.failed(err)

			return
		}

		if len(listed) == 0 {
			fmt.Fprintf(u.out, "no rules match %s\n", args[0])

			return
		}

		fmt.Fprintf(u.out, "rules matching %s (%d):\n", args[0], len(listed))
	}

	for _, r := range listed {
		fmt.Fprintln(u.out, terminal.Fit("  "+r.String(), u.width))
	}
}

func showHelp(u *T, _ []string) {
	fmt.Fprint(u.out, help)
}

func stats(u *T, _ []string) {
	m := u.engine.Metrics()
	if m == nil {
		fmt.Fprintln(u.out, "statistics are not being collected")

		return
	}

	lines, err := m.Summary()
	if err != nil {
		u.failed(err)

		return
	}

	for _, line := range lines {
		fmt.Fprintln(u.out, "  "+line)
	}
}
