package config

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"
	"github.com/trebuchet-org/rt-deploy/internal/domain"
	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

const (
	localhostNetwork = "localhost"
	localhostRPCURL  = "http://127.0.0.1:8545"

	chainIDTimeout = 5 * time.Second
)

// NetworkResolver resolves network names from foundry.toml [rpc_endpoints]
// and queries each endpoint for its chain ID
type NetworkResolver struct {
	active    *config.Network
	endpoints map[string]string
	log       *slog.Logger
}

// NewNetworkResolver creates a resolver over the configured endpoints
func NewNetworkResolver(cfg *config.RuntimeConfig, log *slog.Logger) *NetworkResolver {
	endpoints := map[string]string{
		localhostNetwork: localhostRPCURL,
	}
	if cfg.FoundryConfig != nil {
		endpoints = lo.Assign(endpoints, lo.PickBy(cfg.FoundryConfig.RpcEndpoints, func(_ string, url string) bool {
			return url != ""
		}))
	}
	// The selected network may come from rpc_url alone
	if cfg.Network != nil && cfg.Network.RPCURL != "" {
		endpoints[cfg.Network.Name] = cfg.Network.RPCURL
	}

	return &NetworkResolver{
		active:    cfg.Network,
		endpoints: endpoints,
		log:       log.With("component", "networks"),
	}
}

// GetNetworks returns all known network names, sorted
func (r *NetworkResolver) GetNetworks(ctx context.Context) []string {
	names := lo.Keys(r.endpoints)
	sort.Strings(names)
	return names
}

// ResolveNetwork returns the endpoint for a network along with the chain ID it reports
func (r *NetworkResolver) ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error) {
	rpcURL, ok := r.endpoints[networkName]
	if !ok {
		return nil, fmt.Errorf("network '%s' not found in foundry.toml [rpc_endpoints]", networkName)
	}

	chainID, err := r.fetchChainID(ctx, rpcURL)
	if err != nil {
		return nil, domain.NetworkUnavailableError{RPCURL: rpcURL, Err: err}
	}

	if r.active != nil && r.active.Name == networkName && r.active.ChainID != 0 && r.active.ChainID != chainID {
		return nil, fmt.Errorf("%w: expected chain ID %d, %s reports %d",
			domain.ErrNetworkMismatch, r.active.ChainID, networkName, chainID)
	}

	return &config.Network{
		Name:    networkName,
		RPCURL:  rpcURL,
		ChainID: chainID,
	}, nil
}

func (r *NetworkResolver) fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, chainIDTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, err
	}

	r.log.Debug("resolved chain ID", "rpcUrl", rpcURL, "chainId", chainID.Uint64())
	return chainID.Uint64(), nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolver)(nil)
