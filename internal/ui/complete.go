// Released under an MIT license. See LICENSE.

package ui

import (
	"sort"
	"strings"

	"github.com/michaelmacinnis/modal/internal/engine/primitive"
)

// The word completer for liner. Completes commands at the start of a
// line, rule names after "<" or ">", and function symbols elsewhere.
func (u *T) complete(line string, pos int) (head string, completions []string, tail string) {
	head, tail = line[:pos], line[pos:]

	if u.busy {
		return head, nil, tail
	}

	start := strings.LastIndexAny(head, " \t()") + 1
	word := head[start:]
	head = head[:start]

	var candidates []string

	switch {
	case strings.HasPrefix(word, ":") && strings.TrimSpace(head) == "":
		candidates = Commands()
	case strings.HasPrefix(word, "<") || strings.HasPrefix(word, ">"):
		candidates = u.names(word[:1])
	default:
		candidates = u.symbols()
	}

	for _, c := range candidates {
		if strings.HasPrefix(c, word) {
			completions = append(completions, c)
		}
	}

	return head, completions, tail
}

func (u *T) names(prefix string) []string {
	u.mu.Lock()
	defer u.mu.Unlock()

	closing := ">"
	if prefix == ">" {
		closing = "<"
	}

	seen := map[string]bool{}
	names := []string{}

	for _, r := range u.engine.Rules().All() {
		if name := r.FullName(); !seen[name] {
			seen[name] = true
			names = append(names, prefix+name+closing)
		}
	}

	sort.Strings(names)

	return names
}

func (u *T) symbols() []string {
	u.mu.Lock()
	symbols := u.engine.Rules().Keys()
	u.mu.Unlock()

	symbols = append(symbols, primitive.Operators()...)

	sort.Strings(symbols)

	return symbols
}
