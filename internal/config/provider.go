package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
)

// DefaultBlueprint is deployed when no contract is configured
const DefaultBlueprint = "RTT"

// projectMarkers identify the root of a contracts project
var projectMarkers = []string{
	"rt-deploy.toml",
	"hardhat.config.js",
	"hardhat.config.ts",
	"hardhat.config.cjs",
	"hardhat.config.mjs",
	"foundry.toml",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// .env must be loaded before any env-backed key is read
	loadEnvFiles(projectRoot)

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}

	network, err := resolveNetwork(v, foundryConfig)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		ArtifactDirs:   artifactDirs(projectRoot, v.GetStringSlice("artifacts")),
		Blueprint:      strings.TrimSpace(v.GetString("contract")),
		Network:        network,
		Signer:         config.Signer{PrivateKey: v.GetString("private_key")},
		GasLimit:       v.GetUint64("gas_limit"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		FoundryConfig:  foundryConfig,
	}

	return cfg, nil
}

// artifactDirs splits comma separated entries and anchors relative paths at the project root
func artifactDirs(projectRoot string, entries []string) []string {
	dirs := lo.FlatMap(entries, func(entry string, _ int) []string {
		return strings.Split(entry, ",")
	})
	dirs = lo.FilterMap(dirs, func(dir string, _ int) (string, bool) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return "", false
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(projectRoot, dir)
		}
		return dir, true
	})
	return lo.Uniq(dirs)
}

// FindProjectRoot walks up from the current directory to the nearest
// project marker. Falls back to the current directory.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findProjectRootFrom(cwd), nil
}

func findProjectRootFrom(start string) string {
	dir := start
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Optional project config file
	v.SetConfigName("rt-deploy")
	v.SetConfigType("toml")
	v.AddConfigPath(projectRoot)

	// Set up environment variables
	v.SetEnvPrefix("RT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Common unprefixed names used by hardhat projects
	_ = v.BindEnv("rpc_url", "RT_RPC_URL", "RPC_URL")
	_ = v.BindEnv("private_key", "RT_PRIVATE_KEY", "PRIVATE_KEY")

	// Set defaults
	v.SetDefault("contract", DefaultBlueprint)
	v.SetDefault("network", LocalhostNetwork)
	v.SetDefault("artifacts", []string{"artifacts", "out"})
	v.SetDefault("gas_limit", 0)
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
			if err != nil {
				panic(err)
			}
		})
	}

	return v
}
