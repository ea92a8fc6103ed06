package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tailung1129/dft-tools/pkg/config"
	"github.com/tailung1129/dft-tools/pkg/telemetry"
)

func newCheckCommand() *cobra.Command {
	var (
		dump  bool
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "check <config-file>",
		Short: "Validate a config document",
		Long: `Check parses a shell/group config document, runs all consistency
checks, and reports any violation with the offending section and key.

With --dump the resolved model is written to standard output as YAML.
With --watch the file is re-checked every time it changes on disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if !watch {
				return runCheck(path, dump)
			}

			if err := runCheck(path, dump); err != nil {
				logger.Error().Err(err).Str("path", path).Msg("check failed")
			}
			return watchConfig(cmd, path, dump)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "write the resolved model to stdout as YAML")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-check the document whenever it changes")

	return cmd
}

func runCheck(path string, dump bool) error {
	rep := telemetry.NewReporter(logger)
	model, err := config.ParseFile(path,
		config.WithReporter(rep),
		config.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info().
		Str("path", path).
		Int("shells", model.NumShells()).
		Int("groups", model.NumGroups()).
		Int("advisories", rep.Count()).
		Msg("config document is consistent")

	if dump {
		out, err := yaml.Marshal(model)
		if err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
		if _, err := os.Stdout.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// watchConfig re-runs the check whenever the config file changes. Editors
// often replace the file on save, so the watch is placed on the parent
// directory and events are filtered by name.
func watchConfig(cmd *cobra.Command, path string, dump bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	logger.Info().Str("path", abs).Msg("watching config document for changes")

	ctx := cmd.Context()
	var debounce *time.Timer
	const debounceDelay = 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("stopping config watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Debounce rapid successive writes
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				logger.Info().Str("path", abs).Msg("config document changed, re-checking")
				if err := runCheck(abs, dump); err != nil {
					logger.Error().Err(err).Msg("check failed")
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("file watcher error")
		}
	}
}
