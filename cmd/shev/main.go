// shev is the interactive shell built on top of internal/interp. It owns
// everything the evaluator itself treats as an external collaborator
// (spec.md §6): reading a line, expanding aliases, firing lifecycle
// hooks, parsing, and looping — grounded on mvdan-sh/cmd/gosh/main.go's
// split between a one-shot "-c" run and an interactive read loop, with
// the flag surface itself done the way aledsdavies-opal/cli/main.go uses
// cobra instead of a bare flag.FlagSet.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	fatihcolor "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shev-sh/shev/internal/alias"
	"github.com/shev-sh/shev/internal/config"
	"github.com/shev-sh/shev/internal/history"
	"github.com/shev-sh/shev/internal/hooks"
	"github.com/shev-sh/shev/internal/interp"
	"github.com/shev-sh/shev/internal/line"
	"github.com/shev-sh/shev/internal/parser"
	"github.com/shev-sh/shev/internal/prompt"
)

func main() {
	var (
		command  string
		rcPath   string
		histPath string
		noColor  bool
	)

	rootCmd := &cobra.Command{
		Use:   "shev",
		Short: "A small POSIX-flavored interactive shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(command, rcPath, histPath, noColor, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&command, "command", "c", "", "run a single command line and exit")
	rootCmd.PersistentFlags().StringVar(&rcPath, "rc", config.DefaultPath(), "path to the alias config file")
	rootCmd.PersistentFlags().StringVar(&histPath, "history-file", "", "path to a persisted history file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored prompt and error output")

	if err := rootCmd.Execute(); err != nil {
		var es *exitStatusError
		if errors.As(err, &es) {
			os.Exit(es.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exitStatusError carries a non-zero status out of runShell without
// printing anything extra — the -c path's way of reporting the run
// command's own exit code through cobra's error-returning RunE.
type exitStatusError struct{ code int }

func (e *exitStatusError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func runShell(command, rcPath, histPath string, noColor bool, args []string) error {
	goCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A signal handler is installed at startup (spec.md §5) so Ctrl-C
	// delivered to the shell itself doesn't kill it; this is purely for
	// lifecycle logging, distinct from goCtx above which cancels in-flight
	// exec.CommandContext children on the same signals.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range sigCh {
			logger.Info("signal received", "signal", sig.String())
		}
	}()

	if noColor {
		fatihcolor.NoColor = true
	}

	var opts []config.Option
	if histPath != "" {
		fh, err := history.NewFile(histPath)
		if err != nil {
			return err
		}
		opts = append(opts, config.WithHistory(fh))
	}
	cfg := config.New(opts...)

	if f, err := config.Load(rcPath); err == nil {
		f.ApplyAliases(cfg.Alias)
	}

	sh := interp.NewShell(cfg.Builtins, cfg.Hooks, cfg.Theme)
	sh.Logger = logger

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/"
	}
	ctx := interp.NewContext(os.Stdin, os.Stdout, cfg.History)
	rt := interp.NewRuntime(cwd, interp.DefaultName(os.Args[0]), args)

	if err := sh.Hooks.RunStartup(ctx.Out, &hooks.StartupCtx{StartupTime: 0}); err != nil {
		return err
	}

	if command != "" {
		runLine(goCtx, sh, ctx, rt, cfg.Alias, command)
		if rt.ExitStatus() != 0 {
			return &exitStatusError{code: rt.ExitStatus()}
		}
		return nil
	}

	reader := line.StdReader()
	pr := prompt.NewDefault(cfg.Theme, rt.ExitStatus, func() string { return rt.WorkingDir })

	for {
		raw, err := reader.ReadLine(pr)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if raw == "" {
			continue
		}
		runLine(goCtx, sh, ctx, rt, cfg.Alias, raw)
	}
}

// runLine performs one trip through spec.md §2's pipeline — alias
// expansion, the before_command hook, parsing, evaluation, and output —
// recovering every error kind at this single point so one bad line never
// takes down the loop (spec.md §7's propagation policy).
func runLine(goCtx context.Context, sh *interp.Shell, ctx *interp.Context, rt *interp.Runtime, aliasTable *alias.Table, raw string) {
	expanded, _ := aliasTable.Get(raw)

	if err := sh.Hooks.RunBeforeCommand(ctx.Out, &hooks.BeforeCommandCtx{Raw: raw, Expanded: expanded}); err != nil {
		fmt.Fprintln(os.Stderr, sh.Theme.SprintError(err.Error()))
		return
	}

	cmd, err := parser.Parse(expanded)
	if err != nil {
		fmt.Fprintln(os.Stderr, sh.Theme.SprintError(err.Error()))
		return
	}

	child, err := sh.EvalCommand(goCtx, ctx, rt, cmd, interp.Stdio{Stdin: ctx.Stdin, Capture: true})
	if err != nil {
		fmt.Fprintln(os.Stderr, sh.Theme.SprintError(err.Error()))
		return
	}

	if _, err := sh.CommandOutput(ctx, rt, child); err != nil {
		fmt.Fprintln(os.Stderr, sh.Theme.SprintError(err.Error()))
		return
	}

	ctx.History.Push(raw)
}
