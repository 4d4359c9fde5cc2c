package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/rt-deploy/internal/domain"
	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
	"github.com/trebuchet-org/rt-deploy/internal/domain/models"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// Backend is the subset of an Ethereum client needed to deploy and confirm contracts
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// DialFunc opens a Backend for an RPC endpoint. The returned func releases it.
type DialFunc func(ctx context.Context, rpcURL string) (Backend, func(), error)

// DialEthClient connects with go-ethereum's JSON-RPC client
func DialEthClient(ctx context.Context, rpcURL string) (Backend, func(), error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

// Deployer implements ContractDeployer on top of go-ethereum's bind package.
// It connects lazily on the first submission.
type Deployer struct {
	network  *config.Network
	signer   config.Signer
	gasLimit uint64
	dial     DialFunc
	log      *slog.Logger

	backend Backend
	release func()
	chainID *big.Int
	key     *ecdsa.PrivateKey
	from    common.Address
}

// NewDeployer creates a deployer that dials the configured network over JSON-RPC
func NewDeployer(cfg *config.RuntimeConfig, log *slog.Logger) *Deployer {
	return NewDeployerWithDialer(cfg, DialEthClient, log)
}

// NewDeployerWithDialer creates a deployer using a custom backend dialer
func NewDeployerWithDialer(cfg *config.RuntimeConfig, dial DialFunc, log *slog.Logger) *Deployer {
	return &Deployer{
		network:  cfg.Network,
		signer:   cfg.Signer,
		gasLimit: cfg.GasLimit,
		dial:     dial,
		log:      log.With("component", "deployer", "network", cfg.Network.Name),
	}
}

// Connect parses the signer key, dials the network and checks its chain ID
func (d *Deployer) Connect(ctx context.Context) error {
	if d.backend != nil {
		return nil
	}

	key, err := parsePrivateKey(d.signer)
	if err != nil {
		return err
	}

	backend, release, err := d.dial(ctx, d.network.RPCURL)
	if err != nil {
		return domain.NetworkUnavailableError{RPCURL: d.network.RPCURL, Err: err}
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		release()
		return domain.NetworkUnavailableError{RPCURL: d.network.RPCURL, Err: err}
	}

	if d.network.ChainID != 0 && chainID.Uint64() != d.network.ChainID {
		release()
		return fmt.Errorf("%w: expected chain ID %d, %s reports %d",
			domain.ErrNetworkMismatch, d.network.ChainID, d.network.Name, chainID.Uint64())
	}

	d.backend = backend
	d.release = release
	d.chainID = chainID
	d.key = key
	d.from = crypto.PubkeyToAddress(key.PublicKey)

	d.log.Debug("connected", "chainId", chainID.Uint64(), "deployer", d.from.Hex())
	return nil
}

// Submit sends the contract creation transaction without waiting for it to be mined
func (d *Deployer) Submit(ctx context.Context, blueprint *models.Blueprint) (*models.PendingDeployment, error) {
	if err := d.Connect(ctx); err != nil {
		return nil, err
	}

	parsed, err := blueprint.ParsedABI()
	if err != nil {
		return nil, err
	}
	code, err := blueprint.CreationCode()
	if err != nil {
		return nil, err
	}

	auth, err := bind.NewKeyedTransactorWithChainID(d.key, d.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx
	auth.GasLimit = d.gasLimit

	address, tx, contract, err := bind.DeployContract(auth, *parsed, code, d.backend)
	if err != nil {
		return nil, d.classify(err)
	}

	d.log.Info("deployment submitted",
		"blueprint", blueprint.FullyQualifiedName(),
		"tx", tx.Hash().Hex(),
		"address", address.Hex(),
		"nonce", tx.Nonce())

	return &models.PendingDeployment{
		Blueprint: blueprint,
		Address:   address,
		Tx:        tx,
		Contract:  contract,
	}, nil
}

// WaitConfirmed blocks until the transaction is mined. There is no timeout
// other than the one carried by ctx.
func (d *Deployer) WaitConfirmed(ctx context.Context, pending *models.PendingDeployment) (*models.DeployedContract, error) {
	if d.backend == nil {
		return nil, fmt.Errorf("not connected to %s", d.network.Name)
	}

	receipt, err := bind.WaitMined(ctx, d.backend, pending.Tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", pending.Tx.Hash().Hex(), err)
	}

	var blockNumber uint64
	if receipt.BlockNumber != nil {
		blockNumber = receipt.BlockNumber.Uint64()
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, domain.TransactionRevertedError{
			TxHash:      receipt.TxHash,
			BlockNumber: blockNumber,
		}
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = pending.Address
	} else if address != pending.Address {
		d.log.Warn("receipt address differs from predicted address",
			"predicted", pending.Address.Hex(), "actual", address.Hex())
	}

	d.log.Info("deployment confirmed",
		"address", address.Hex(),
		"block", blockNumber,
		"gasUsed", receipt.GasUsed)

	return &models.DeployedContract{
		Blueprint:   pending.Blueprint,
		Address:     address,
		TxHash:      receipt.TxHash,
		BlockNumber: blockNumber,
		GasUsed:     receipt.GasUsed,
		ChainID:     d.chainID.Uint64(),
		Deployer:    d.from,
		Contract:    pending.Contract,
	}, nil
}

// Close releases the network connection
func (d *Deployer) Close() error {
	if d.release != nil {
		d.release()
		d.release = nil
		d.backend = nil
	}
	return nil
}

// classify maps a submission failure onto the domain errors. Transport
// failures mean the network is unavailable; anything the node answered with
// (reverted estimation, insufficient funds, bad nonce) is a rejection.
func (d *Deployer) classify(err error) error {
	if isTransportError(err) {
		return domain.NetworkUnavailableError{RPCURL: d.network.RPCURL, Err: err}
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) || strings.Contains(strings.ToLower(err.Error()), "revert") {
		return domain.TransactionRevertedError{Reason: err.Error()}
	}

	return fmt.Errorf("failed to submit deployment: %w", err)
}

func isTransportError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, rpc.ErrClientQuit)
}

// parsePrivateKey decodes a hex private key with or without 0x prefix.
// The key itself never appears in errors.
func parsePrivateKey(signer config.Signer) (*ecdsa.PrivateKey, error) {
	if !signer.Configured() {
		return nil, fmt.Errorf("%w: set RT_PRIVATE_KEY or PRIVATE_KEY", domain.ErrMissingSigner)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(signer.PrivateKey), "0x"))
	if err != nil {
		return nil, domain.ErrInvalidSigner
	}
	return key, nil
}

// Ensure the adapter implements the interface
var _ usecase.ContractDeployer = (*Deployer)(nil)
