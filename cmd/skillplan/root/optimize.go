package root

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/okian/skillbudget/internal/plan"
	"github.com/okian/skillbudget/internal/ui"
)

func newOptimizeCmd(flags *globalFlags) *cobra.Command {
	var (
		planPath string
		budget   int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Find the best purchase set for a plan",
		Long:  "optimize applies a YAML plan (budget, aptitudes, costs by name, penalties by name) to the catalog and prints the highest-rated purchase set.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := plan.Load(planPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("budget") {
				p.Budget = budget
			}

			ctx := cmd.Context()
			svc, err := startService(ctx, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer svc.Stop()

			if err := p.Apply(ctx, svc); err != nil {
				return errors.Join(errors.New("plan does not match the catalog"), err)
			}
			rep, err := svc.Optimize(ctx, p.Budget)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			return ui.RenderReport(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().StringVar(&planPath, "plan", "plan.yaml", "plan file")
	cmd.Flags().IntVar(&budget, "budget", 0, "override the plan's budget")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	return cmd
}
