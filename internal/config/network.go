package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
)

const (
	// LocalhostNetwork is always available, pointing at a local development node
	LocalhostNetwork = "localhost"
	LocalhostRPCURL  = "http://127.0.0.1:8545"
)

// resolveNetwork picks the RPC endpoint for the selected network. An explicit
// rpc_url wins over foundry.toml [rpc_endpoints].
func resolveNetwork(v *viper.Viper, foundryConfig *config.FoundryConfig) (*config.Network, error) {
	name := v.GetString("network")
	if name == "" {
		name = LocalhostNetwork
	}

	network := &config.Network{
		Name:    name,
		ChainID: v.GetUint64("chain_id"),
	}

	if rpcURL := v.GetString("rpc_url"); rpcURL != "" {
		network.RPCURL = rpcURL
		return network, nil
	}

	if rpcURL, ok := foundryConfig.RpcEndpoints[name]; ok && rpcURL != "" {
		network.RPCURL = rpcURL
		return network, nil
	}

	if name == LocalhostNetwork {
		network.RPCURL = LocalhostRPCURL
		return network, nil
	}

	return nil, fmt.Errorf("network '%s' not found in foundry.toml [rpc_endpoints] and no rpc_url set", name)
}
