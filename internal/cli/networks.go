package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/rt-deploy/internal/cli/render"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List available networks",
		Long: `List localhost and every network in the [rpc_endpoints] section of foundry.toml.

Each endpoint is queried for its chain ID. The network deployments go to is marked with *.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
