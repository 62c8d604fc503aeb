package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/git-identity/pkg/registry"
)

// currentCmd represents the current command
var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Get the currently active identity for this repository",
	Long: `Print the name and email set in the repository's local config, and the
id of the global identity they belong to when exactly one matches.

With --watch the identity is printed again every time the local config
changes.

Example:
  git-identity current
  git-identity current --watch`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		watch, _ := cmd.Flags().GetBool("watch")

		withEnvironment("get current identity", func(env *environment) error {
			if !watch {
				return printCurrent(env.registry, os.Stdout)
			}
			if env.localPath == "" {
				return registry.ErrNoLocalScope
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchCurrent(ctx, env.registry, env.localPath, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(currentCmd)
	currentCmd.Flags().BoolP("watch", "w", false, "Print the identity again whenever the local config changes")
}

func printCurrent(reg *registry.Registry, out io.Writer) error {
	current, err := reg.Current()
	if err != nil {
		return err
	}
	if current == nil {
		_, err = fmt.Fprintln(out, "none set")
		return err
	}
	if current.ID != "" {
		_, err = fmt.Fprintf(out, "%s (%s) [%s]\n", current.Name, current.Email, current.ID)
		return err
	}
	_, err = fmt.Fprintf(out, "%s (%s)\n", current.Name, current.Email)
	return err
}

// watchCurrent prints the current identity, then again after every change
// to the config file at path, until ctx is done. The directory is watched
// rather than the file since writers replace the file by renaming.
func watchCurrent(ctx context.Context, reg *registry.Registry, path string, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if err := printCurrent(reg, out); err != nil {
		return err
	}

	// git touches several files per write; coalesce them into one print.
	const settle = 100 * time.Millisecond
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			log.WithFields(log.Fields{"path": event.Name, "op": event.Op.String()}).Debug("local config changed")
			timer.Reset(settle)
		case <-timer.C:
			if err := printCurrent(reg, out); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		}
	}
}
