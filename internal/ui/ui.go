// Released under an MIT license. See LICENSE.

// Package ui provides a command-line interface for the modal language.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/michaelmacinnis/modal/internal/engine"
	"github.com/michaelmacinnis/modal/internal/engine/debug"
	"github.com/michaelmacinnis/modal/internal/engine/rule"
	"github.com/michaelmacinnis/modal/internal/loader"
	"github.com/michaelmacinnis/modal/internal/reader"
	"github.com/michaelmacinnis/modal/internal/system/history"
	"github.com/michaelmacinnis/modal/internal/system/terminal"
)

const (
	primary   = "> "
	secondary = "... "
)

// T (ui) is a modal session. It reads lines, evaluates expressions and
// manages rules. Rule files may be reloaded from another goroutine.
type T struct {
	busy    bool // Evaluating. Step mode prompts while the lock is held.
	console *zap.Logger
	engine  *engine.T
	logger  *zap.Logger
	mode    debug.Mode
	out     io.Writer
	pending string
	prompt  func(string) (string, error)
	width   int

	mu sync.Mutex
}

// New creates a session that evaluates with e and writes to out.
func New(e *engine.T, out io.Writer, logger *zap.Logger) *T {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.CallerKey = ""
	cfg.LevelKey = ""
	cfg.NameKey = ""
	cfg.TimeKey = ""

	return &T{
		console: zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(cfg),
			zapcore.AddSync(out),
			zapcore.DebugLevel,
		)),
		engine: e,
		logger: logger,
		out:    out,
		prompt: func(string) (string, error) {
			return "", io.EOF
		},
	}
}

// Mode returns the current debug mode.
func (u *T) Mode() debug.Mode {
	return u.mode
}

// SetMode changes the debug mode used for the next evaluation.
func (u *T) SetMode(m debug.Mode) {
	u.mode = m

	switch m {
	case debug.DebugMode:
		u.engine.SetSink(debug.NewLog(u.console, false))
	case debug.TraceMode:
		u.engine.SetSink(debug.NewLog(u.console, true))
	case debug.StepMode:
		u.engine.SetSink(debug.NewStep(u.ask, u.out))
	default:
		u.engine.SetSink(debug.Quiet)
	}
}

// Feed adds line to any incomplete input and executes it once it is
// complete. It returns false when the session should end.
func (u *T) Feed(line string) bool {
	if u.pending == "" {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			return true
		case strings.HasPrefix(trimmed, ":"):
			return u.command(trimmed)
		case loader.IsCommand(trimmed):
			u.rule(trimmed)

			return true
		}

		u.pending = line
	} else {
		u.pending += "\n" + line
	}

	if reader.Depth(u.pending) > 0 {
		return true
	}

	text := u.pending
	u.pending = ""

	u.evaluate(text)

	return true
}

// Interactive runs the session on the terminal with line editing and
// history. History is read from, and saved to, the file at path.
func (u *T) Interactive(path string) error {
	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)
	cli.SetWordCompleter(u.complete)

	if err := history.Load(path, cli.ReadHistory); err != nil {
		u.logger.Warn("failed to read history", zap.String("path", path), zap.Error(err))
	}

	u.prompt = cli.Prompt
	u.width = terminal.Width(os.Stdout.Fd())

	fmt.Fprintln(u.out, "modal term-rewriting language")
	fmt.Fprintf(u.out, "Loaded %d rules\n", u.size())
	fmt.Fprintln(u.out, "Type :help for commands or :exit to quit")

	for {
		line, err := cli.Prompt(u.ps())
		if errors.Is(err, liner.ErrPromptAborted) {
			u.pending = ""

			continue
		} else if err != nil {
			fmt.Fprintln(u.out)

			break
		}

		if strings.TrimSpace(line) != "" {
			cli.AppendHistory(line)
		}

		if !u.Feed(line) {
			break
		}
	}

	return history.Save(path, cli.WriteHistory)
}

// Reload replaces the rules of every namespace defined in the file at
// path with the rules the file now contains.
func (u *T) Reload(path string) {
	rules, err := loader.File(path)
	if err != nil {
		u.logger.Warn("failed to reload rule file", zap.String("path", path), zap.Error(err))

		return
	}

	namespaces := []string{}
	byNamespace := map[string][]*rule.T{}

	for _, r := range rules {
		ns := r.Namespace()
		if _, ok := byNamespace[ns]; !ok {
			namespaces = append(namespaces, ns)
		}

		byNamespace[ns] = append(byNamespace[ns], r)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	for _, ns := range namespaces {
		u.engine.Rules().Replace(ns, byNamespace[ns])
	}

	u.logger.Info("reloaded rule file",
		zap.String("path", path),
		zap.Int("rules", len(rules)),
		zap.Strings("namespaces", namespaces))
}

// Run runs the session without line editing, reading one line at a
// time from in. Only step mode prompts.
func (u *T) Run(in io.Reader) error {
	s := bufio.NewScanner(in)

	u.prompt = func(p string) (string, error) {
		fmt.Fprint(u.out, p)

		if !s.Scan() {
			fmt.Fprintln(u.out)

			return "", io.EOF
		}

		return s.Text(), nil
	}

	for s.Scan() {
		if !u.Feed(s.Text()) {
			return nil
		}
	}

	if err := s.Err(); err != nil {
		return err
	}

	if u.pending != "" {
		u.failed(fmt.Errorf("incomplete input: %s", strings.TrimSpace(u.pending)))
		u.pending = ""
	}

	return nil
}

func (u *T) ask(p string) (string, error) {
	return u.prompt(p)
}

func (u *T) evaluate(text string) {
	t, err := reader.Parse("input", text)
	if err != nil {
		u.failed(err)

		return
	}

	u.mu.Lock()
	u.busy = true
	result, err := u.engine.Evaluate(t)
	u.busy = false
	u.mu.Unlock()

	if err != nil {
		u.failed(err)

		return
	}

	fmt.Fprintln(u.out, result)
}

func (u *T) failed(err error) {
	fmt.Fprintf(u.out, "error: %v\n", err)
}

func (u *T) ps() string {
	if u.pending != "" {
		return secondary
	}

	return primary
}

func (u *T) rule(line string) {
	c, err := loader.Parse(line)
	if err != nil {
		u.failed(err)

		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if c.Rule != nil {
		u.engine.Rules().Add(c.Rule)
		fmt.Fprintf(u.out, "added %s\n", c.Rule.FullName())

		return
	}

	switch n := u.engine.Rules().Remove(c.Remove); n {
	case 0:
		fmt.Fprintf(u.out, "rule %s not found\n", c.Remove)
	case 1:
		fmt.Fprintf(u.out, "removed 1 rule for %s\n", c.Remove)
	default:
		fmt.Fprintf(u.out, "removed %d rules for %s\n", n, c.Remove)
	}
}

func (u *T) size() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.engine.Rules().Size()
}
