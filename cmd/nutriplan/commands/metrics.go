package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// metrics: print daily selection usage and system health.
func metricsCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show selection usage and system health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := appCtx.Usage(cmd.Context(), days)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tSELECTIONS\tRANDOM\tBEST-MATCH\tFALLBACK\tLOOKUPS\tAVG MS")
			for _, d := range usage {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%.1f\n",
					d.Date, d.TotalSelection, d.Random, d.BestMatch, d.Fallback, d.LookupHits, d.AvgLatencyMS)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			h := appCtx.Health()
			fmt.Printf("\nuptime %s, alloc %dMB, sys %dMB, goroutines %d, data %s\n",
				h.Uptime, h.AllocMB, h.SysMB, h.Goroutines, h.DataDiskSize)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "number of days to report")
	return cmd
}

// metrics-cleanup: drop selection metrics older than --days.
func metricsCleanupCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "metrics-cleanup",
		Short: "Remove old selection metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			affected, err := appCtx.CleanupMetrics(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Printf("Successfully removed %d old metric records.\n", affected)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "keep records for the last N days")
	return cmd
}
