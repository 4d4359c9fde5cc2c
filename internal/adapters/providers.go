package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/rt-deploy/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/rt-deploy/internal/adapters/config"
	"github.com/trebuchet-org/rt-deploy/internal/adapters/interactive"
	"github.com/trebuchet-org/rt-deploy/internal/adapters/progress"
	"github.com/trebuchet-org/rt-deploy/internal/adapters/repository/blueprints"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// RepositorySet provides artifact-backed implementations
var RepositorySet = wire.NewSet(
	blueprints.NewRepository,
	wire.Bind(new(usecase.BlueprintRepository), new(*blueprints.Repository)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolver)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDeployer,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Deployer)),
)

// ProgressSet picks the progress sink for the current terminal
var ProgressSet = wire.NewSet(
	progress.NewSink,
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelector,
	wire.Bind(new(usecase.BlueprintSelector), new(*interactive.Selector)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	ConfigSet,
	BlockchainSet,
	ProgressSet,
	InteractiveSet,
)
