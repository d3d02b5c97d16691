// Package app wires configuration, logging and the key classifier into
// the operations the keyscreen command exposes.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyscreen/internal/config"
	"github.com/dshills/keyscreen/internal/input/key"
	"github.com/dshills/keyscreen/internal/input/record"
	"github.com/dshills/keyscreen/internal/input/termkey"
	"github.com/dshills/keyscreen/internal/report"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// ConfigRequired makes a missing ConfigPath an error.
	ConfigRequired bool

	// LogLevel overrides logging.level when set.
	LogLevel string

	// Format overrides output.format when set.
	Format string

	// Output receives reports. Defaults to os.Stdout.
	Output io.Writer

	// LogOutput receives log messages. Defaults to os.Stderr.
	LogOutput io.Writer
}

// App evaluates key events and writes reports.
type App struct {
	cfg    config.Config
	logger *Logger
	out    io.Writer
}

// New loads configuration and creates an App.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.ConfigRequired)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Format != "" {
		cfg.Output.Format = opts.Format
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(cfg.Logging.Level)
	logCfg.JSON = strings.EqualFold(cfg.Logging.Format, "json")
	if opts.LogOutput != nil {
		logCfg.Output = opts.LogOutput
	}
	logger := NewLogger(logCfg)
	logger.Debug("configuration loaded from %q", opts.ConfigPath)

	return &App{cfg: cfg, logger: logger, out: opts.Output}, nil
}

// Config returns the effective configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the application's logger.
func (a *App) Logger() *Logger {
	return a.logger
}

// Classify evaluates ev and, when spec is non-empty, the binding it names.
func (a *App) Classify(ev key.Event, spec string) (report.Report, error) {
	if spec == "" {
		return report.Classify(ev, nil), nil
	}
	b, err := key.ParseBinding(spec)
	if err != nil {
		return report.Report{}, err
	}
	return report.Classify(ev, &b), nil
}

// Match classifies ev against spec, writes the report and returns
// ErrNoMatch when the binding does not match.
func (a *App) Match(ev key.Event, spec string) error {
	if strings.TrimSpace(spec) == "" {
		return key.ErrEmptySpec
	}
	r, err := a.Classify(ev, spec)
	if err != nil {
		return err
	}
	if err := a.Write(r); err != nil {
		return err
	}
	if !r.Binding.Matches {
		return fmt.Errorf("%w: %s", ErrNoMatch, r.Binding.Binding)
	}
	return nil
}

// Write renders r in the configured output format.
func (a *App) Write(r report.Report) error {
	if strings.EqualFold(a.cfg.Output.Format, "json") {
		var out []byte
		var err error
		if a.cfg.Output.Pretty {
			out, err = r.PrettyJSON()
		} else {
			out, err = r.JSON()
			out = append(out, '\n')
		}
		if err != nil {
			return err
		}
		_, err = a.out.Write(out)
		return err
	}

	if err := r.WriteText(a.out); err != nil {
		return err
	}
	_, err := io.WriteString(a.out, "\n")
	return err
}

// Replay reads JSON-lines records from r and writes a report per record.
// Undecodable records are logged and skipped; if any were skipped the
// returned error wraps ErrInvalidRecords.
func (a *App) Replay(ctx context.Context, r io.Reader, name string) error {
	log := a.logger.WithComponent("replay").WithField("source", name)

	sc := record.NewScanner(r)
	var count, bad int
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return NewOperationError("replay", name, err)
		}

		if err := sc.Err(); err != nil {
			log.Warn("skipping record: %v", err)
			bad++
			continue
		}

		rec := sc.Record()
		rep, err := a.Classify(rec.Event, rec.Bind)
		if err != nil {
			log.WithField("line", rec.Line).Warn("skipping record: %v", err)
			bad++
			continue
		}

		log.WithField("line", rec.Line).Debug("classified %s", rec.Event)
		if err := a.Write(rep); err != nil {
			return NewOperationError("replay", name, err)
		}
		count++
	}
	if err := sc.Err(); err != nil {
		return NewOperationError("replay", name, err)
	}

	log.Info("replayed %d records", count)
	if bad > 0 {
		return NewOperationError("replay", name, fmt.Errorf("%w: %d skipped", ErrInvalidRecords, bad))
	}
	return nil
}

// Watch classifies live key presses from screen and draws each report on
// it. Escape or Ctrl+C ends the session. The caller owns the screen.
func (a *App) Watch(ctx context.Context, screen tcell.Screen) error {
	log := a.logger.WithComponent("watch")
	drawLines(screen, []string{"Press keys to classify them. Escape or Ctrl+C quits."})

	src := termkey.NewSource(screen)
	err := src.Run(ctx, func(ev key.Event) bool {
		if isQuit(ev) {
			return false
		}

		rep := report.Classify(ev, nil)
		var buf bytes.Buffer
		if err := rep.WriteText(&buf); err != nil {
			log.Error("rendering report: %v", err)
			return true
		}
		drawLines(screen, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"))
		log.Debug("classified %s", ev)
		return true
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return NewOperationError("watch", "", err)
	}
	return nil
}

func isQuit(ev key.Event) bool {
	return ev.MatchesModifiersAndCharacter(key.ModNone, "\x1b") ||
		ev.MatchesModifiersAndCharacter(key.ModCtrl, "c")
}

// drawLines replaces the screen contents with lines.
func drawLines(screen tcell.Screen, lines []string) {
	screen.Clear()
	for y, line := range lines {
		x := 0
		for _, r := range line {
			screen.SetContent(x, y, r, nil, tcell.StyleDefault)
			x++
		}
	}
	screen.Show()
}
