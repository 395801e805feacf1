package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"nutriplan/internal/catalog"
	"nutriplan/internal/meal"
)

// import-meal <url>: clip a recipe page into the catalog.
func importMealCmd() *cobra.Command {
	var (
		slot   string
		bucket string
		cost   float64
	)
	cmd := &cobra.Command{
		Use:   "import-meal <url>",
		Short: "Import a recipe page as an extra catalog meal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported, err := appCtx.ImportMeal(cmd.Context(), args[0], meal.Slot(slot), catalog.Bucket(bucket), cost)
			if err != nil {
				return err
			}
			fmt.Printf("imported #%d %q as %s (%s, $%.2f)\n",
				imported.ID, imported.Candidate.Name, imported.Slot, imported.Bucket, imported.Candidate.Cost)
			return nil
		},
	}
	cmd.Flags().StringVar(&slot, "slot", "", "meal slot (breakfast, lunch, snack, dinner)")
	cmd.Flags().StringVar(&bucket, "bucket", string(catalog.BucketOmnivore), "catalog bucket (vegan, vegetarian, omnivore)")
	cmd.Flags().Float64Var(&cost, "cost", 5, "estimated cost in dollars")
	_ = cmd.MarkFlagRequired("slot")
	return cmd
}
