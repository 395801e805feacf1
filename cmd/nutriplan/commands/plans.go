package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nutriplan/internal/planner"
)

var planUserID int64

// plans: manage saved plans.
func plansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage saved meal plans",
	}
	cmd.PersistentFlags().Int64Var(&planUserID, "user", planner.DefaultUserID, "plan owner")
	cmd.AddCommand(plansListCmd(), plansShowCmd(), plansDeleteCmd(), plansExportCmd())
	return cmd
}

func plansListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved plans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := appCtx.ListPlans(cmd.Context(), planUserID)
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Println("no saved plans")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCREATED\tCOST")
			for _, p := range plans {
				fmt.Fprintf(tw, "%s\t%s\t%s\t$%.2f\n", p.ID, p.PlanName, p.DateCreated.Format("2006-01-02 15:04"), p.PlanData.TotalCost)
			}
			return tw.Flush()
		},
	}
}

func plansShowCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := appCtx.GetPlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			fmt.Printf("%s (%s)\n\n", p.PlanName, p.DateCreated.Format("2006-01-02"))
			printPlan(os.Stdout, p.PlanData)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored record as JSON")
	return cmd
}

func plansDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := appCtx.DeletePlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("meal plan %s not found or already deleted", args[0])
			}
			fmt.Println("deleted")
			return nil
		},
	}
}

func plansExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write saved plans to the JSON archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := appCtx.ExportPlans(cmd.Context(), planUserID)
			if err != nil {
				return err
			}
			fmt.Printf("exported %d plans to %s\n", n, cfg.ArchivePath)
			return nil
		},
	}
}
