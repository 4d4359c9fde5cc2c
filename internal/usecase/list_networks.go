package usecase

import (
	"context"
	"sort"

	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus is a configured network and what its endpoint reported
type NetworkStatus struct {
	Name    string
	RPCURL  string
	ChainID uint64
	Active  bool // the network deployments go to
	Error   error
}

// ListNetworks probes every configured network for its chain ID
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
	}
}

// Run executes the use case. Unreachable networks are reported per entry,
// never as an overall error.
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	names := uc.resolver.GetNetworks(ctx)
	sort.Strings(names)

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		status := NetworkStatus{
			Name:   name,
			Active: uc.config.Network != nil && uc.config.Network.Name == name,
		}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
		} else {
			status.RPCURL = info.RPCURL
			status.ChainID = info.ChainID
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
