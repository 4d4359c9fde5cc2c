package app

import (
	"github.com/trebuchet-org/rt-deploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployContract *usecase.DeployContract
	ListNetworks   *usecase.ListNetworks
	ListBlueprints *usecase.ListBlueprints

	// Adapters (needed to release the RPC connection)
	Deployer *blockchain.Deployer
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployContract *usecase.DeployContract,
	listNetworks *usecase.ListNetworks,
	listBlueprints *usecase.ListBlueprints,
	deployer *blockchain.Deployer,
) (*App, error) {
	return &App{
		Config:         cfg,
		DeployContract: deployContract,
		ListNetworks:   listNetworks,
		ListBlueprints: listBlueprints,
		Deployer:       deployer,
	}, nil
}

// Close releases resources held by adapters
func (a *App) Close() error {
	if a.Deployer == nil {
		return nil
	}
	return a.Deployer.Close()
}
