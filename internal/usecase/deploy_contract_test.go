package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/rt-deploy/internal/domain"
	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
	"github.com/trebuchet-org/rt-deploy/internal/domain/models"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// MockBlueprintRepository is a mock implementation of BlueprintRepository
type MockBlueprintRepository struct {
	mock.Mock
}

func (m *MockBlueprintRepository) GetBlueprint(ctx context.Context, name string) (*models.Blueprint, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blueprint), args.Error(1)
}

func (m *MockBlueprintRepository) ListBlueprints(ctx context.Context) ([]*models.Blueprint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Blueprint), args.Error(1)
}

// MockContractDeployer is a mock implementation of ContractDeployer
type MockContractDeployer struct {
	mock.Mock
}

func (m *MockContractDeployer) Submit(ctx context.Context, blueprint *models.Blueprint) (*models.PendingDeployment, error) {
	args := m.Called(ctx, blueprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingDeployment), args.Error(1)
}

func (m *MockContractDeployer) WaitConfirmed(ctx context.Context, pending *models.PendingDeployment) (*models.DeployedContract, error) {
	args := m.Called(ctx, pending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeployedContract), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {}

func (m *MockProgressSink) Error(message string) {
	m.errors = append(m.errors, message)
}

func (m *MockProgressSink) stages() []usecase.ExecutionStage {
	stages := make([]usecase.ExecutionStage, len(m.events))
	for i, event := range m.events {
		stages[i] = event.Stage
	}
	return stages
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

func newTestConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Blueprint: "RTT",
		Network: &config.Network{
			Name:    "localhost",
			RPCURL:  "http://127.0.0.1:8545",
			ChainID: 31337,
		},
	}
}

func newTestBlueprint(name, abiJSON string) *models.Blueprint {
	return &models.Blueprint{
		Name:   name,
		Path:   "contracts/" + name + ".sol",
		Format: models.ArtifactFormatHardhat,
		Artifact: &models.Artifact{
			ContractName: name,
			SourceName:   "contracts/" + name + ".sol",
			ABI:          json.RawMessage(abiJSON),
			Bytecode:     models.BytecodeObject{Object: "0x6001600c60003960016000f300"},
		},
	}
}

func newPending(blueprint *models.Blueprint, nonce uint64, address common.Address) *models.PendingDeployment {
	return &models.PendingDeployment{
		Blueprint: blueprint,
		Address:   address,
		Tx:        types.NewTx(&types.DynamicFeeTx{Nonce: nonce}),
	}
}

func TestDeployContract(t *testing.T) {
	ctx := context.Background()

	t.Run("deploys and returns the mined address", func(t *testing.T) {
		blueprint := newTestBlueprint("RTT", "[]")
		address := common.HexToAddress("0xABCDEF0123456789abcdef0123456789ABCDEF01")
		pending := newPending(blueprint, 0, address)
		deployed := &models.DeployedContract{
			Blueprint:   blueprint,
			Address:     address,
			TxHash:      pending.Tx.Hash(),
			BlockNumber: 7,
			ChainID:     31337,
		}

		repo := new(MockBlueprintRepository)
		repo.On("GetBlueprint", ctx, "RTT").Return(blueprint, nil)
		deployer := new(MockContractDeployer)
		deployer.On("Submit", ctx, blueprint).Return(pending, nil)
		deployer.On("WaitConfirmed", ctx, pending).Return(deployed, nil)
		progress := &MockProgressSink{}

		uc := usecase.NewDeployContract(newTestConfig(), repo, deployer, nil, progress)
		result, err := uc.Run(ctx, usecase.DeployContractParams{BlueprintName: "RTT"})

		require.NoError(t, err)
		assert.Equal(t, address, result.Contract.Address)
		assert.Equal(t, address.Hex(), result.Address())
		assert.Regexp(t, addressPattern, result.Address())
		assert.Equal(t, "localhost", result.Network.Name)
		assert.Same(t, blueprint, result.Blueprint)
		assert.Equal(t, []usecase.ExecutionStage{
			usecase.StageResolving,
			usecase.StageSubmitting,
			usecase.StageConfirming,
			usecase.StageCompleted,
		}, progress.stages())
		assert.Empty(t, progress.errors)

		repo.AssertExpectations(t)
		deployer.AssertExpectations(t)
	})

	t.Run("unknown blueprint never submits a transaction", func(t *testing.T) {
		notFound := domain.BlueprintNotFoundError{Name: "DoesNotExist"}

		repo := new(MockBlueprintRepository)
		repo.On("GetBlueprint", ctx, "DoesNotExist").Return(nil, notFound)
		deployer := new(MockContractDeployer)

		uc := usecase.NewDeployContract(newTestConfig(), repo, deployer, nil, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.DeployContractParams{BlueprintName: "DoesNotExist"})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrBlueprintNotFound)
		deployer.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
		deployer.AssertNotCalled(t, "WaitConfirmed", mock.Anything, mock.Anything)
	})

	t.Run("blank name is rejected before resolution", func(t *testing.T) {
		repo := new(MockBlueprintRepository)
		deployer := new(MockContractDeployer)

		uc := usecase.NewDeployContract(newTestConfig(), repo, deployer, nil, &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.DeployContractParams{BlueprintName: "   "})

		assert.ErrorIs(t, err, domain.ErrEmptyBlueprintName)
		repo.AssertNotCalled(t, "GetBlueprint", mock.Anything, mock.Anything)
		deployer.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("constructor arguments are rejected before submission", func(t *testing.T) {
		blueprint := newTestBlueprint("Token",
			`[{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}],"stateMutability":"nonpayable"}]`)

		repo := new(MockBlueprintRepository)
		repo.On("GetBlueprint", ctx, "Token").Return(blueprint, nil)
		deployer := new(MockContractDeployer)

		uc := usecase.NewDeployContract(newTestConfig(), repo, deployer, nil, &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.DeployContractParams{BlueprintName: "Token"})

		assert.ErrorIs(t, err, domain.ErrConstructorArgsUnsupported)
		deployer.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("network unavailable on submit", func(t *testing.T) {
		blueprint := newTestBlueprint("RTT", "[]")
		unavailable := domain.NetworkUnavailableError{
			RPCURL: "http://127.0.0.1:8545",
			Err:    errors.New("connection refused"),
		}

		repo := new(MockBlueprintRepository)
		repo.On("GetBlueprint", ctx, "RTT").Return(blueprint, nil)
		deployer := new(MockContractDeployer)
		deployer.On("Submit", ctx, blueprint).Return(nil, unavailable)
		progress := &MockProgressSink{}

		uc := usecase.NewDeployContract(newTestConfig(), repo, deployer, nil, progress)
		_, err := uc.Run(ctx, usecase.DeployContractParams{BlueprintName: "RTT"})

		assert.ErrorIs(t, err, domain.ErrNetworkUnavailable)
		assert.Len(t, progress.errors, 1)
		deployer.AssertNotCalled(t, "WaitConfirmed", mock.Anything, mock.Anything)
	})

	t.Run("reverted deployment produces no result", func(t *testing.T) {
		blueprint := newTestBlueprint("RTT", "[]")
		pending := newPending(blueprint, 3, common.HexToAddress("0x1111111111111111111111111111111111111111"))
		reverted := domain.TransactionRevertedError{TxHash: pending.Tx.Hash(), BlockNumber: 12}

		repo := new(MockBlueprintRepository)
		repo.On("GetBlueprint", ctx, "RTT").Return(blueprint, nil)
		deployer := new(MockContractDeployer)
		deployer.On("Submit", ctx, blueprint).Return(pending, nil)
		deployer.On("WaitConfirmed", ctx, pending).Return(nil, reverted)
		progress := &MockProgressSink{}

		uc := usecase.NewDeployContract(newTestConfig(), repo, deployer, nil, progress)
		result, err := uc.Run(ctx, usecase.DeployContractParams{BlueprintName: "RTT"})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrTransactionReverted)
		assert.NotContains(t, progress.stages(), usecase.StageCompleted)
		assert.Len(t, progress.errors, 1)
	})

	t.Run("repeated runs deploy fresh instances", func(t *testing.T) {
		blueprint := newTestBlueprint("RTT", "[]")
		first := newPending(blueprint, 0, common.HexToAddress("0x1111111111111111111111111111111111111111"))
		second := newPending(blueprint, 1, common.HexToAddress("0x2222222222222222222222222222222222222222"))

		repo := new(MockBlueprintRepository)
		repo.On("GetBlueprint", ctx, "RTT").Return(blueprint, nil)
		deployer := new(MockContractDeployer)
		deployer.On("Submit", ctx, blueprint).Return(first, nil).Once()
		deployer.On("Submit", ctx, blueprint).Return(second, nil).Once()
		deployer.On("WaitConfirmed", ctx, first).Return(&models.DeployedContract{Address: first.Address}, nil)
		deployer.On("WaitConfirmed", ctx, second).Return(&models.DeployedContract{Address: second.Address}, nil)

		uc := usecase.NewDeployContract(newTestConfig(), repo, deployer, nil, &MockProgressSink{})
		r1, err := uc.Run(ctx, usecase.DeployContractParams{BlueprintName: "RTT"})
		require.NoError(t, err)
		r2, err := uc.Run(ctx, usecase.DeployContractParams{BlueprintName: "RTT"})
		require.NoError(t, err)

		assert.NotEqual(t, r1.Address(), r2.Address())
		repo.AssertNumberOfCalls(t, "GetBlueprint", 2)
		deployer.AssertNumberOfCalls(t, "Submit", 2)
	})
}

// MockBlueprintSelector is a mock implementation of BlueprintSelector
type MockBlueprintSelector struct {
	mock.Mock
}

func (m *MockBlueprintSelector) SelectBlueprint(ctx context.Context, options []string, prompt string) (string, error) {
	args := m.Called(ctx, options, prompt)
	return args.String(0), args.Error(1)
}

func TestDeployContractAmbiguousName(t *testing.T) {
	ctx := context.Background()
	matches := []string{"contracts/Token.sol:Token", "contracts/legacy/Token.sol:Token"}
	ambiguous := domain.AmbiguousBlueprintError{Name: "Token", Matches: matches}

	t.Run("interactive selection picks the blueprint", func(t *testing.T) {
		chosen := newTestBlueprint("Token", "[]")
		chosen.Path = "contracts/legacy/Token.sol"
		pending := newPending(chosen, 0, common.HexToAddress("0x3333333333333333333333333333333333333333"))

		repo := new(MockBlueprintRepository)
		repo.On("GetBlueprint", ctx, "Token").Return(nil, ambiguous)
		repo.On("GetBlueprint", ctx, "contracts/legacy/Token.sol:Token").Return(chosen, nil)
		selector := new(MockBlueprintSelector)
		selector.On("SelectBlueprint", ctx, matches, mock.Anything).Return(matches[1], nil)
		deployer := new(MockContractDeployer)
		deployer.On("Submit", ctx, chosen).Return(pending, nil)
		deployer.On("WaitConfirmed", ctx, pending).Return(&models.DeployedContract{Address: pending.Address}, nil)

		uc := usecase.NewDeployContract(newTestConfig(), repo, deployer, selector, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.DeployContractParams{BlueprintName: "Token"})

		require.NoError(t, err)
		assert.Same(t, chosen, result.Blueprint)
		selector.AssertExpectations(t)
	})

	t.Run("non-interactive keeps the ambiguity error", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.NonInteractive = true

		repo := new(MockBlueprintRepository)
		repo.On("GetBlueprint", ctx, "Token").Return(nil, ambiguous)
		selector := new(MockBlueprintSelector)
		deployer := new(MockContractDeployer)

		uc := usecase.NewDeployContract(cfg, repo, deployer, selector, &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.DeployContractParams{BlueprintName: "Token"})

		assert.ErrorIs(t, err, domain.ErrAmbiguousBlueprint)
		selector.AssertNotCalled(t, "SelectBlueprint", mock.Anything, mock.Anything, mock.Anything)
		deployer.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("no terminal keeps the ambiguity error", func(t *testing.T) {
		repo := new(MockBlueprintRepository)
		repo.On("GetBlueprint", ctx, "Token").Return(nil, ambiguous)
		selector := new(MockBlueprintSelector)
		selector.On("SelectBlueprint", ctx, matches, mock.Anything).Return("", usecase.ErrSelectionUnavailable)
		deployer := new(MockContractDeployer)

		uc := usecase.NewDeployContract(newTestConfig(), repo, deployer, selector, &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.DeployContractParams{BlueprintName: "Token"})

		assert.ErrorIs(t, err, domain.ErrAmbiguousBlueprint)
		deployer.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})
}
