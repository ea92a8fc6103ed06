package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRunsCommand() *cobra.Command {
	var (
		archivePath string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived conversion runs",
		Long:  `Runs lists conversion runs previously archived with convert --archive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx, archivePath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("no archived runs")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tCONFIG\tVASP DIR\tADVISORIES\tCOMPLETED")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					run.ID,
					run.Status,
					run.ConfigPath,
					run.VaspDir,
					run.Advisories,
					run.CompletedAt.Format("2006-01-02 15:04:05"),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&archivePath, "archive", "", "SQLite database holding the archived runs")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of runs to list (0 = all)")
	_ = cmd.MarkFlagRequired("archive")

	return cmd
}
