// Released under an MIT license. See LICENSE.

/*
Modal is a term-rewriting language. Expressions are rewritten, using
namespaced rules, until no rule applies:

	> (fact 5)
	120
	> <math.double> (double ?x) (* ?x 2)
	added math.double
	> (double (length (a b c)))
	6
	> >math.double<
	removed 1 rule for math.double

A small standard library of rules is loaded unless --no-standard is
given. Type :help at the prompt for the list of commands.

Modal is released under an MIT-style license.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/michaelmacinnis/modal/internal/engine"
	"github.com/michaelmacinnis/modal/internal/engine/boot"
	"github.com/michaelmacinnis/modal/internal/engine/debug"
	"github.com/michaelmacinnis/modal/internal/engine/ruleset"
	"github.com/michaelmacinnis/modal/internal/loader"
	"github.com/michaelmacinnis/modal/internal/metrics"
	"github.com/michaelmacinnis/modal/internal/reader"
	"github.com/michaelmacinnis/modal/internal/system/config"
	"github.com/michaelmacinnis/modal/internal/system/options"
	"github.com/michaelmacinnis/modal/internal/system/watch"
	"github.com/michaelmacinnis/modal/internal/ui"
)

const version = "modal 0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, output, err := options.Parse(argv, version)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 2
	} else if opts == nil {
		fmt.Fprintln(stdout, output)

		return 0
	}

	cfg, err := configure(opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	logger := newLogger(stderr, cfg.Level())
	defer logger.Sync() //nolint:errcheck

	paths, rules, err := load(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	logger.Debug("loaded rules",
		zap.Int("rules", rules.Size()),
		zap.Strings("namespaces", rules.Namespaces()),
		zap.Strings("files", paths))

	e := engine.New(rules,
		engine.WithLogger(logger),
		engine.WithMaxSteps(cfg.MaxSteps),
		engine.WithMetrics(metrics.New(nil)),
	)

	if opts.Expression != "" {
		return evaluate(e, opts.Expression, stdout, stderr)
	}

	u := ui.New(e, stdout, logger)

	if mode, err := debug.ParseMode(cfg.Mode); err == nil {
		u.SetMode(mode)
	}

	if cfg.Watch && len(paths) > 0 {
		w, err := watch.New(paths, watch.DefaultDebounce, logger, u.Reload)
		if err != nil {
			logger.Warn("rule files will not be reloaded", zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	if opts.Interactive && stdin == os.Stdin {
		err = u.Interactive(cfg.History)
	} else {
		err = u.Run(stdin)
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	return 0
}

// Command line options take precedence over the configuration file.
func configure(opts *options.T) (*config.T, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}

	if opts.MaxSteps > 0 {
		cfg.MaxSteps = opts.MaxSteps
	}

	if opts.Mode != "" {
		cfg.Mode = opts.Mode
	}

	if opts.NoStandard {
		standard := false
		cfg.Standard = &standard
	}

	if opts.Verbose {
		cfg.LogLevel = zapcore.DebugLevel.String()
	}

	if opts.Watch {
		cfg.Watch = true
	}

	cfg.Rules = append(cfg.Rules, opts.Rules...)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func evaluate(e *engine.T, expr string, stdout, stderr io.Writer) int {
	t, err := reader.Parse("expression", expr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	result, err := e.Evaluate(t)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	fmt.Fprintln(stdout, result)

	return 0
}

func load(cfg *config.T) ([]string, *ruleset.T, error) {
	rules := ruleset.New()

	if cfg.UseStandard() {
		standard, err := boot.Rules()
		if err != nil {
			return nil, nil, err
		}

		rules.Add(standard...)
	}

	paths, err := loader.Paths(cfg.Rules...)
	if err != nil {
		return nil, nil, err
	}

	for _, path := range paths {
		loaded, err := loader.File(path)
		if err != nil {
			return nil, nil, err
		}

		rules.Add(loaded...)
	}

	return paths, rules, nil
}

func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	))
}
