package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/config"
	"github.com/sandeepkv93/todo/internal/export"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/output"
	"github.com/spf13/cobra"
)

var errEmptyTitle = errors.New("title is empty")

func (a *app) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task to the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, ok := model.NormalizeTitle(strings.Join(args, " "))
			if !ok {
				return userErr(errEmptyTitle)
			}
			if err := a.store.Add(cmd.Context(), title); err != nil {
				return storageErr(err)
			}
			a.tag.Event("todo_add", nil)
			fmt.Fprintf(cmd.OutOrStdout(), "added: %s\n", title)
			return nil
		},
	}
}

func (a *app) listCommand() *cobra.Command {
	var filterFlag string
	var showIDs bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filterFlag)
			if err != nil {
				return userErr(err)
			}
			tasks := a.store.Filtered(f)
			w := cmd.OutOrStdout()
			if showIDs && len(tasks) > 0 {
				for i, t := range tasks {
					output.FormatTaskVerbose(w, i+1, t)
				}
			} else {
				output.FormatTasks(w, tasks)
			}
			output.FormatItemsLeft(w, a.store.RemainingCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&filterFlag, "filter", "f", string(model.FilterAll), "all, active or completed")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "include task ids")
	return cmd
}

func (a *app) toggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <n|id>",
		Short: "Flip a task between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			if err := a.store.Toggle(cmd.Context(), id); err != nil {
				return storageErr(err)
			}
			a.tag.Event("todo_toggle", nil)
			task, _ := a.store.Get(id)
			state := "open"
			if task.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", state, task.Title)
			return nil
		},
	}
}

func (a *app) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <n|id> [title...]",
		Short: "Retitle a task; an empty title deletes it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			if err := a.store.Edit(cmd.Context(), id, title); err != nil {
				return storageErr(err)
			}
			a.tag.Event("todo_edit", nil)
			if task, ok := a.store.Get(id); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "updated: %s\n", task.Title)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "removed")
			}
			return nil
		},
	}
}

func (a *app) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <n|id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			task, _ := a.store.Get(id)
			if err := a.store.Remove(cmd.Context(), id); err != nil {
				return storageErr(err)
			}
			a.tag.Event("todo_remove", nil)
			fmt.Fprintf(cmd.OutOrStdout(), "removed: %s\n", task.Title)
			return nil
		},
	}
}

func (a *app) clearCompletedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.store.CompletedCount()
			if err := a.store.ClearCompleted(cmd.Context()); err != nil {
				return storageErr(err)
			}
			a.tag.Event("todo_clear_completed", map[string]any{"count": n})
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d completed\n", n)
			return nil
		},
	}
}

func (a *app) exportCommand() *cobra.Command {
	var formatFlag, outPath, filterFlag, title string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the list as markdown, json, csv or pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return userErr(err)
			}
			f, err := model.ParseFilter(filterFlag)
			if err != nil {
				return userErr(err)
			}
			tasks := a.store.Filtered(f)

			write := func(w io.Writer) error { return export.Write(w, format, title, tasks) }
			if outPath == "" || outPath == "-" {
				if err := write(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("export %s: %w", format, err)
				}
				return nil
			}

			file, err := os.Create(outPath)
			if err != nil {
				return userErr(fmt.Errorf("export: %w", err))
			}
			if err := writeAndClose(file, write); err != nil {
				return fmt.Errorf("export %s to %s: %w", format, outPath, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d tasks to %s\n", len(tasks), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&formatFlag, "format", string(export.FormatMarkdown), "markdown, json, csv or pdf")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&filterFlag, "filter", "f", string(model.FilterAll), "all, active or completed")
	cmd.Flags().StringVar(&title, "title", "Todos", "document title")
	return cmd
}

// writeAndClose runs write against wc and always closes it. A close error is
// reported when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

func (a *app) analyticsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "analytics-snippet",
		Short:       "Print the analytics loader tag for the configured measurement id",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.tag == nil {
				return userErr(errors.New("analytics measurement id is not configured"))
			}
			html, err := a.doc.Render()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), html)
			return nil
		},
	}
}

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the effective configuration to the config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return userErr(fmt.Errorf("%s already exists (use --force)", path))
			}
			if err := a.cfg.Save(path); err != nil {
				return configErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:         "path",
		Short:       "Print the config file path",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.configPath())
			return nil
		},
	}
	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}

func (a *app) configPath() string {
	if a.opts.configPath != "" {
		return a.opts.configPath
	}
	return config.DefaultPath()
}

// resolve maps a 1-based position in the full list, or an id, to a task id.
func (a *app) resolve(raw string) (string, error) {
	ref, err := commands.ParseRef(raw)
	if err != nil {
		return "", userErr(err)
	}
	id, err := ref.Resolve(a.store.Tasks())
	if err != nil {
		return "", userErr(err)
	}
	return id, nil
}
