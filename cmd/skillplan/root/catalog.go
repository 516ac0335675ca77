package root

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/ui"
)

func newCatalogCmd(flags *globalFlags) *cobra.Command {
	var (
		typeName string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the normalized skill catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var typ model.SkillType
			if typeName != "" {
				t, err := model.ParseSkillType(typeName)
				if err != nil {
					return err
				}
				typ = t
			}
			ctx := cmd.Context()
			svc, err := startService(ctx, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer svc.Stop()

			skills, err := svc.Skills(ctx, typ)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(skills)
			}
			return ui.RenderCatalog(cmd.OutOrStdout(), skills)
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "", "only this category (Yellow, Blue, Red, Green, Inherit, Purple)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	return cmd
}
