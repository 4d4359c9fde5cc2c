package config

// FoundryConfig holds the parts of foundry.toml used for network resolution
type FoundryConfig struct {
	RpcEndpoints map[string]string `toml:"rpc_endpoints"`
}
