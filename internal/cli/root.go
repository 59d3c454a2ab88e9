// Package cli wires configuration, logging, storage and the terminal UI behind
// the todo command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/analytics"
	"github.com/sandeepkv93/todo/internal/config"
	"github.com/sandeepkv93/todo/internal/exitcode"
	"github.com/sandeepkv93/todo/internal/logging"
	"github.com/sandeepkv93/todo/internal/storage"
	"github.com/sandeepkv93/todo/internal/todo"
	"github.com/sandeepkv93/todo/internal/update"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// annotation marking commands that run without opening the store.
const noStore = "no-store"

type globalOptions struct {
	configPath string
	dataDir    string
	backend    string
	verbose    bool
}

type app struct {
	opts   globalOptions
	cfg    *config.Config
	logger *zap.Logger
	slot   storage.Slot
	store  *todo.Store
	doc    *analytics.Document
	tag    *analytics.Tag

	// runTUI is replaced in tests.
	runTUI func(ctx context.Context, m update.Model) error
}

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userErr(err error) error    { return &exitError{code: exitcode.UserError, err: err} }
func configErr(err error) error  { return &exitError{code: exitcode.ConfigError, err: err} }
func storageErr(err error) error { return &exitError{code: exitcode.StorageError, err: err} }

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{runTUI: runProgram}
	return a.run(ctx, args, stdout, stderr)
}

func (a *app) run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	if err == nil {
		return exitcode.Success
	}
	fmt.Fprintf(stderr, "todo: %v\n", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitcode.UserError
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "A terminal todo list with a durable local store",
		Long: `todo keeps a single list of tasks on this machine.

Run without arguments to open the interactive list. The subcommands expose the
same operations for scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m := update.NewModel(a.store, update.Options{
				Context: cmd.Context(),
				Filter:  a.cfg.Filter(),
				Logger:  a.logger,
				Tag:     a.tag,
			})
			a.tag.Dispatch("event", "page_view", map[string]any{"page_title": "list"})
			if err := a.runTUI(cmd.Context(), m); err != nil {
				return fmt.Errorf("ui: %w", err)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/todo/config.yaml)")
	flags.StringVar(&a.opts.dataDir, "data-dir", "", "directory holding the task store")
	flags.StringVar(&a.opts.backend, "backend", "", "storage backend: file, sqlite or memory")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.addCommand(),
		a.listCommand(),
		a.toggleCommand(),
		a.editCommand(),
		a.removeCommand(),
		a.clearCompletedCommand(),
		a.exportCommand(),
		a.analyticsCommand(),
		a.configCommand(),
	)
	return root
}

// setup loads configuration and, unless the command opts out, opens the store.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return configErr(err)
	}
	if a.opts.dataDir != "" {
		cfg.Storage.Dir = a.opts.dataDir
	}
	if a.opts.backend != "" {
		cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(a.opts.backend))
	}
	if err := cfg.Validate(); err != nil {
		return configErr(err)
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Verbose: a.opts.verbose,
	})
	if err != nil {
		return configErr(err)
	}
	a.logger = logger.With(zap.String("cmd", cmd.Name()))

	a.doc = analytics.NewDocument()
	a.tag = analytics.Install(a.doc, cfg.Analytics.MeasurementID)
	if a.tag != nil {
		a.logger.Debug("analytics installed", zap.String("measurement_id", a.tag.MeasurementID()))
	}

	if cmd.Annotations[noStore] != "" {
		return nil
	}

	slot, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		return storageErr(err)
	}
	a.slot = slot
	store, err := todo.Open(cmd.Context(), slot, todo.WithLogger(a.logger))
	if err != nil {
		return storageErr(err)
	}
	a.store = store
	a.logger.Debug("store opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("dir", cfg.Storage.Dir),
		zap.Int("tasks", store.Len()))
	return nil
}

func (a *app) close() {
	if a.slot != nil {
		if err := a.slot.Close(); err != nil && a.logger != nil {
			a.logger.Warn("close store", zap.Error(err))
		}
		a.slot = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func runProgram(ctx context.Context, m update.Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
