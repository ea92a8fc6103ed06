package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tailung1129/dft-tools/pkg/config"
	"github.com/tailung1129/dft-tools/pkg/stores"
	"github.com/tailung1129/dft-tools/pkg/telemetry"
	"github.com/tailung1129/dft-tools/pkg/vaspio"
)

func newConvertCommand() *cobra.Command {
	var archivePath string

	cmd := &cobra.Command{
		Use:   "convert <config-file> [<vasp-dir>]",
		Short: "Convert VASP output using a config document",
		Long: `Convert reads the VASP output files from the given working directory
(default "."), parses the config document with the crystal geometry
available as a collaborator, and validates the combined result.

With --archive the run is recorded in a SQLite database, including the
resolved model and any advisories. Failed runs are archived too.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := args[0]
			vaspDir := "."
			if len(args) == 2 {
				vaspDir = args[1]
			}
			return runConvert(cmd.Context(), configPath, vaspDir, archivePath)
		},
	}

	cmd.Flags().StringVar(&archivePath, "archive", "", "archive the run in the given SQLite database")

	return cmd
}

func runConvert(ctx context.Context, configPath, vaspDir, archivePath string) error {
	rep := telemetry.NewReporter(logger)
	started := time.Now().UTC()

	model, runErr := convert(configPath, vaspDir, rep)

	if archivePath != "" {
		if err := archiveRun(ctx, archivePath, &stores.Run{
			ID:          rep.RunID().String(),
			ConfigPath:  configPath,
			VaspDir:     vaspDir,
			StartedAt:   started,
			CompletedAt: time.Now().UTC(),
			Advisories:  rep.Count(),
		}, model, runErr); err != nil {
			logger.Error().Err(err).Str("archive", archivePath).Msg("failed to archive run")
		}
	}

	if runErr != nil {
		return runErr
	}

	logger.Info().
		Str("run_id", rep.RunID().String()).
		Int("shells", model.NumShells()).
		Int("groups", model.NumGroups()).
		Int("advisories", rep.Count()).
		Msg("conversion completed")
	return nil
}

func convert(configPath, vaspDir string, rep *telemetry.Reporter) (*config.Model, error) {
	data, err := vaspio.Load(vaspDir,
		vaspio.WithLogger(logger),
		vaspio.WithReporter(rep),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read VASP output: %w", err)
	}

	model, err := config.ParseFile(configPath,
		config.WithGeometry(data.Poscar),
		config.WithReporter(rep),
		config.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	if err := checkIonBounds(model, data.Poscar); err != nil {
		return nil, err
	}
	return model, nil
}

// checkIonBounds rejects shells selecting ions beyond the POSCAR ion count.
// The config parser cannot enforce this on its own because the upper bound
// comes from the geometry.
func checkIonBounds(model *config.Model, pos *vaspio.Poscar) error {
	for _, sh := range model.Shells {
		for _, ion := range sh.Ions {
			if ion >= pos.NQ {
				return fmt.Errorf("[Shell %d]: ion index %d exceeds the %d ions in POSCAR",
					sh.UserIndex, ion+1, pos.NQ)
			}
		}
	}
	return nil
}

func archiveRun(ctx context.Context, path string, run *stores.Run, model *config.Model, runErr error) error {
	if runErr != nil {
		run.Status = stores.RunStatusFailed
		msg := runErr.Error()
		run.Error = &msg
	} else {
		run.Status = stores.RunStatusCompleted
		snapshot, err := yaml.Marshal(model)
		if err != nil {
			return fmt.Errorf("failed to encode model snapshot: %w", err)
		}
		run.Snapshot = string(snapshot)
	}

	store, err := openStore(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.CreateRun(ctx, run)
}

func openStore(ctx context.Context, path string) (*stores.RunStore, error) {
	store, err := stores.NewRunStore(stores.Config{Path: path})
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
