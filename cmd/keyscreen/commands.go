package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/keyscreen/internal/app"
	"github.com/dshills/keyscreen/internal/input/key"
)

type globalFlags struct {
	configPath string
	logLevel   string
	format     string
}

// eventFlags describe one key event on the command line.
type eventFlags struct {
	mods  string
	flags string
	code  string
	chars string
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mods, "mods", "m", "", "modifier names, e.g. shift,numpad,fn")
	cmd.Flags().StringVar(&f.flags, "flags", "", "raw modifier flags, e.g. 0xa20102")
	cmd.Flags().StringVarP(&f.code, "code", "k", "", "key code number or name, e.g. 126 or up")
	cmd.Flags().StringVarP(&f.chars, "chars", "c", "", "characters ignoring modifiers")
	_ = cmd.MarkFlagRequired("code")
}

// event builds the key event. Names and raw flags are ORed together.
func (f *eventFlags) event() (key.Event, error) {
	mods := key.ParseModifiers(f.mods)

	if f.flags != "" {
		raw, err := strconv.ParseUint(f.flags, 0, 64)
		if err != nil {
			return key.Event{}, fmt.Errorf("invalid --flags %q: %w", f.flags, err)
		}
		mods |= key.Modifier(raw)
	}

	code, err := parseCode(f.code)
	if err != nil {
		return key.Event{}, err
	}

	return key.NewEvent(mods, code, f.chars), nil
}

// parseCode accepts a 16-bit number, a key name or a single character on
// the ANSI US layout. Numbers win, so "1" is code 1 and not the 1 key.
func parseCode(s string) (key.Code, error) {
	if n, err := strconv.ParseUint(s, 0, 16); err == nil {
		return key.Code(n), nil
	}
	if c, ok := key.CodeFromName(s); ok {
		return c, nil
	}
	if r := []rune(s); len(r) == 1 {
		if c, ok := key.CodeForRune(r[0]); ok {
			return c, nil
		}
	}
	return 0, fmt.Errorf("invalid --code %q: not a 16-bit number or key name", s)
}

func newRootCommand() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           "keyscreen",
		Short:         "Classify key events by modifier flags and key code",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "path to configuration file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.format, "format", "", "output format (text, json)")

	newApp := func(cmd *cobra.Command) (*app.App, error) {
		return app.New(app.Options{
			ConfigPath:     g.configPath,
			ConfigRequired: cmd.Flags().Changed("config"),
			LogLevel:       g.logLevel,
			Format:         g.format,
			Output:         cmd.OutOrStdout(),
			LogOutput:      cmd.ErrOrStderr(),
		})
	}

	root.AddCommand(
		newClassifyCommand(newApp),
		newMatchCommand(newApp),
		newReplayCommand(newApp),
		newWatchCommand(newApp),
		newVersionCommand(),
	)
	return root
}

type appFactory func(*cobra.Command) (*app.App, error)

func newClassifyCommand(newApp appFactory) *cobra.Command {
	var ev eventFlags
	var bind string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Evaluate every classification for one key event",
		Example: `  keyscreen classify --mods numpad,fn --code up
  keyscreen classify --mods shift --code 1 --chars S --bind Shift+S`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			e, err := ev.event()
			if err != nil {
				return err
			}
			r, err := a.Classify(e, bind)
			if err != nil {
				return err
			}
			return a.Write(r)
		},
	}
	ev.register(cmd)
	cmd.Flags().StringVarP(&bind, "bind", "b", "", "binding to test, e.g. Shift+Up")
	return cmd
}

func newMatchCommand(newApp appFactory) *cobra.Command {
	var ev eventFlags

	cmd := &cobra.Command{
		Use:   "match BINDING",
		Short: "Exit non-zero unless the key event matches the binding",
		Example: `  keyscreen match "Shift+Up" --mods shift,numpad,fn --code up
  keyscreen match "Cmd+Shift+S" --mods cmd,shift --code 1 --chars S`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			e, err := ev.event()
			if err != nil {
				return err
			}
			return a.Match(e, args[0])
		},
	}
	ev.register(cmd)
	return cmd
}

func newReplayCommand(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "replay [FILE|-]",
		Short: "Classify recorded key events from a JSON-lines file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			name := "-"
			if len(args) == 1 {
				name = args[0]
			}

			var in io.Reader = cmd.InOrStdin()
			if name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Replay(ctx, in, name)
		},
	}
}

func newWatchCommand(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Classify live key presses in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return app.NewOperationError("watch", "", app.ErrNotTerminal)
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return app.NewOperationError("watch", "", err)
			}
			if err := screen.Init(); err != nil {
				return app.NewOperationError("watch", "", err)
			}
			defer screen.Fini()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()
			return a.Watch(ctx, screen)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "keyscreen %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}
