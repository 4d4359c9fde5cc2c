package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trebuchet-org/rt-deploy/internal/domain"
	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
	"github.com/trebuchet-org/rt-deploy/internal/domain/models"
)

// DeployContractParams contains parameters for deploying a contract
type DeployContractParams struct {
	BlueprintName string
}

// DeployContractResult contains the result of a deployment
type DeployContractResult struct {
	Blueprint *models.Blueprint
	Contract  *models.DeployedContract
	Network   *config.Network
}

// Address returns the deployed contract address in EIP-55 form
func (r *DeployContractResult) Address() string {
	return r.Contract.Address.Hex()
}

// DeployContract resolves a blueprint, deploys one instance and waits for it
// to be mined. Each call submits a fresh transaction.
type DeployContract struct {
	config     *config.RuntimeConfig
	blueprints BlueprintRepository
	deployer   ContractDeployer
	selector   BlueprintSelector
	progress   ProgressSink
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	blueprints BlueprintRepository,
	deployer ContractDeployer,
	selector BlueprintSelector,
	progress ProgressSink,
) *DeployContract {
	return &DeployContract{
		config:     cfg,
		blueprints: blueprints,
		deployer:   deployer,
		selector:   selector,
		progress:   progress,
	}
}

// Run executes the deployment
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	name := strings.TrimSpace(params.BlueprintName)
	if name == "" {
		return nil, domain.ErrEmptyBlueprintName
	}

	// Stage 1: Resolve blueprint
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageResolving,
		Message: fmt.Sprintf("Resolving %s", name),
	})

	blueprint, err := uc.resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := blueprint.Validate(); err != nil {
		return nil, err
	}

	// Stage 2: Submit deployment transaction
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageSubmitting,
		Message: fmt.Sprintf("Deploying %s to %s", blueprint.Name, uc.config.Network.Name),
		Spinner: true,
	})

	pending, err := uc.deployer.Submit(ctx, blueprint)
	if err != nil {
		uc.progress.Error(fmt.Sprintf("Deployment of %s failed", blueprint.Name))
		return nil, err
	}

	// Stage 3: Wait for the transaction to be mined
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Message: fmt.Sprintf("Waiting for %s", pending.Tx.Hash().Hex()),
		Spinner: true,
	})

	deployed, err := uc.deployer.WaitConfirmed(ctx, pending)
	if err != nil {
		uc.progress.Error(fmt.Sprintf("Deployment of %s failed", blueprint.Name))
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Message: fmt.Sprintf("%s mined in block %d", blueprint.Name, deployed.BlockNumber),
	})

	return &DeployContractResult{
		Blueprint: blueprint,
		Contract:  deployed,
		Network:   uc.config.Network,
	}, nil
}

// resolve looks up the blueprint. An ambiguous bare name is offered to the
// selector when running interactively.
func (uc *DeployContract) resolve(ctx context.Context, name string) (*models.Blueprint, error) {
	blueprint, err := uc.blueprints.GetBlueprint(ctx, name)

	var ambiguous domain.AmbiguousBlueprintError
	if err == nil || uc.selector == nil || uc.config.NonInteractive || !errors.As(err, &ambiguous) {
		return blueprint, err
	}

	choice, selErr := uc.selector.SelectBlueprint(ctx, ambiguous.Matches,
		fmt.Sprintf("Multiple contracts match %s, select one", name))
	if errors.Is(selErr, ErrSelectionUnavailable) {
		return nil, err
	}
	if selErr != nil {
		return nil, selErr
	}

	return uc.blueprints.GetBlueprint(ctx, choice)
}
