package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// DeployedLinePrefix starts the single stdout line of a successful deployment
const DeployedLinePrefix = "RT Contract is deployed to: "

// DeployRenderer writes the deployment result. Scripts parse stdout, so the
// address line is the only thing written there.
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render writes "RT Contract is deployed to: <address>"
func (r *DeployRenderer) Render(result *usecase.DeployContractResult) error {
	_, err := fmt.Fprintf(r.out, "%s%s\n", DeployedLinePrefix, result.Address())
	return err
}

var _ Renderer[*usecase.DeployContractResult] = (*DeployRenderer)(nil)
