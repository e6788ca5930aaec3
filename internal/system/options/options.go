// Released under an MIT license. See LICENSE.

// Package options parses modal's command line.
package options

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

const usage = `modal

Usage:
  modal [-vw] [--config=PATH] [--mode=MODE] [--max-steps=N] [--no-standard] [RULES...]
  modal [-v] -e EXPR [--config=PATH] [--max-steps=N] [--no-standard] [RULES...]
  modal -h
  modal --version

Arguments:
  RULES  Rule files, or glob patterns, to load after the standard rules.

Options:
  -c, --config=PATH    Configuration file. Defaults to $HOME/.modal.yaml.
  -e, --eval=EXPR      Evaluate EXPR, print the result and exit.
  -m, --mode=MODE      Debug mode: quiet, debug, trace or step-by-step.
  -n, --max-steps=N    Maximum number of steps for one evaluation.
  -s, --no-standard    Do not load the standard rules.
  -v, --verbose        Log engine activity to stderr.
  -w, --watch          Reload rule files when they change.
  -h, --help           Display this help.
  --version            Print modal version.

If modal's stdin is a TTY, and no expression was given, line editing and
history are enabled. Otherwise, modal reads one line at a time from stdin
without prompting.
`

// ErrUsage is wrapped by every command line error.
var ErrUsage = errors.New("usage") //nolint:gochecknoglobals

// T (options) holds the parsed command line.
type T struct {
	Config      string
	Expression  string
	Interactive bool
	MaxSteps    int // Zero if not given.
	Mode        string
	NoStandard  bool
	Rules       []string
	Verbose     bool
	Watch       bool
}

// Parse parses argv, which should not include the program name.
//
// If help or the version was requested, the text to print is returned
// and the options are nil.
func Parse(argv []string, version string) (*T, string, error) {
	var output string

	p := &docopt.Parser{
		HelpHandler: func(_ error, s string) {
			output = s
		},
	}

	if argv == nil {
		argv = []string{}
	}

	opts, err := p.ParseArgs(usage, argv, version)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrUsage, output)
	}

	if opts == nil {
		return nil, output, nil
	}

	o := &T{}

	o.Config, _ = opts.String("--config")
	o.Expression, _ = opts.String("--eval")
	o.Mode, _ = opts.String("--mode")
	o.NoStandard, _ = opts.Bool("--no-standard")
	o.Rules, _ = opts["RULES"].([]string)
	o.Verbose, _ = opts.Bool("--verbose")
	o.Watch, _ = opts.Bool("--watch")

	if s, ok := opts["--max-steps"].(string); ok {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return nil, "", fmt.Errorf("%w: --max-steps must be a positive integer, got %q", ErrUsage, s)
		}

		o.MaxSteps = n
	}

	o.Interactive = o.Expression == "" && terminal(os.Stdin)

	return o, "", nil
}

// Usage returns the usage message.
func Usage() string {
	return usage
}

func terminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
