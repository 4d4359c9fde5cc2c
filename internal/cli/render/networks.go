package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render lists each network with its chain ID or the error it returned
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in foundry.toml [rpc_endpoints]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		marker := "  "
		if network.Active {
			marker = color.New(color.FgCyan, color.Bold).Sprint("* ")
		}
		if network.Error != nil {
			fmt.Fprintf(r.out, "%s❌ %s - Error: %v\n", marker, network.Name, network.Error)
		} else {
			fmt.Fprintf(r.out, "%s✅ %s - Chain ID: %d (%s)\n", marker, network.Name, network.ChainID, network.RPCURL)
		}
	}

	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
