package config

import (
	"strings"
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	ArtifactDirs []string // absolute, searched in order

	// Deployment settings
	Blueprint string   // contract name or path:Name
	Network   *Network // always resolved, defaults to localhost
	Signer    Signer
	GasLimit  uint64 // 0 lets the node estimate

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration // 0 waits for confirmation indefinitely

	// Resolved configurations
	FoundryConfig *FoundryConfig
}

// Network represents network configuration
type Network struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
	ChainID uint64 `json:"chainId"` // 0 accepts whatever the endpoint reports
}

// Signer holds the credentials used to sign the deployment transaction
type Signer struct {
	PrivateKey string `json:"-"` //nolint:gosec // loaded from env, never logged
}

// Configured reports whether signer credentials are present
func (s Signer) Configured() bool {
	return strings.TrimSpace(s.PrivateKey) != ""
}
