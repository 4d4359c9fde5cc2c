package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/rt-deploy/internal/cli/render"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// NewBlueprintsCmd creates the blueprints command
func NewBlueprintsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "blueprints [filter]",
		Aliases: []string{"ls"},
		Short:   "List compiled contracts that can be deployed",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListBlueprintsParams{}
			if len(args) > 0 {
				params.Filter = args[0]
			}

			result, err := app.ListBlueprints.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewBlueprintsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
