package usecase

import (
	"context"
	"errors"

	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
	"github.com/trebuchet-org/rt-deploy/internal/domain/models"
)

// BlueprintRepository provides access to compiled contracts
type BlueprintRepository interface {
	// GetBlueprint resolves a bare contract name or "path:Name"
	GetBlueprint(ctx context.Context, name string) (*models.Blueprint, error)
	ListBlueprints(ctx context.Context) ([]*models.Blueprint, error)
}

// ContractDeployer submits deployment transactions and waits for them to be mined
type ContractDeployer interface {
	Submit(ctx context.Context, blueprint *models.Blueprint) (*models.PendingDeployment, error)
	WaitConfirmed(ctx context.Context, pending *models.PendingDeployment) (*models.DeployedContract, error)
}

// ErrSelectionUnavailable is returned by selectors when there is no terminal to prompt on
var ErrSelectionUnavailable = errors.New("interactive selection not available")

// BlueprintSelector asks the user to pick one of several fully qualified names
type BlueprintSelector interface {
	SelectBlueprint(ctx context.Context, options []string, prompt string) (string, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// Progress tracking interfaces

// ExecutionStage represents a stage in the deployment process
type ExecutionStage string

const (
	StageResolving  ExecutionStage = "Resolving"
	StageSubmitting ExecutionStage = "Submitting"
	StageConfirming ExecutionStage = "Confirming"
	StageCompleted  ExecutionStage = "Completed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   ExecutionStage
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}
