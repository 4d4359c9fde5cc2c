package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/rt-deploy/internal/app"
	"github.com/trebuchet-org/rt-deploy/internal/cli/render"
	"github.com/trebuchet-org/rt-deploy/internal/config"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the rt-deploy command. Running it without a
// subcommand deploys the configured contract.
func NewRootCmd() *cobra.Command {
	var cancel context.CancelFunc

	rootCmd := &cobra.Command{
		Use:   "rt-deploy",
		Short: "Deploy a compiled contract to an EVM network",
		Long: `rt-deploy deploys a compiled contract (RTT by default) from the project's
hardhat or foundry artifacts and prints the address it was deployed to.

Configuration comes from RT_* environment variables, .env files,
rt-deploy.toml and foundry.toml [rpc_endpoints].`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			cmd.SetContext(ctx)

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cancel != nil {
				cancel()
			}
			if appInstance, err := getApp(cmd); err == nil {
				return appInstance.Close()
			}
			return nil
		},
		RunE: runDeploy,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable the progress spinner")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from foundry.toml [rpc_endpoints] (default localhost)")
	rootCmd.Flags().StringP("contract", "c", "", "Contract name or path:Name to deploy (default RTT)")

	rootCmd.AddCommand(NewNetworksCmd())
	rootCmd.AddCommand(NewBlueprintsCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func runDeploy(cmd *cobra.Command, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.DeployContract.Run(cmd.Context(), usecase.DeployContractParams{
		BlueprintName: app.Config.Blueprint,
	})
	if err != nil {
		return err
	}

	return render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
