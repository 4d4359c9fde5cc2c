package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BlueprintsRenderer renders the deployable contracts as a table
type BlueprintsRenderer struct {
	out io.Writer
}

// NewBlueprintsRenderer creates a new blueprints renderer
func NewBlueprintsRenderer(out io.Writer) *BlueprintsRenderer {
	return &BlueprintsRenderer{out: out}
}

// Render writes one row per blueprint
func (r *BlueprintsRenderer) Render(result *usecase.ListBlueprintsResult) error {
	if len(result.Blueprints) == 0 {
		fmt.Fprintln(r.out, "No compiled contracts found. Run your compiler (npx hardhat compile, forge build) first.")
		return nil
	}

	title := cases.Title(language.English)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box.PaddingRight = "   "
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})

	t.AppendHeader(table.Row{"CONTRACT", "SOURCE", "FORMAT", "SIZE"})
	for _, bp := range result.Blueprints {
		var size string
		if code, err := bp.CreationCode(); err == nil {
			size = fmt.Sprintf("%d B", len(code))
		} else {
			size = color.New(color.FgYellow).Sprint("unlinked")
		}
		t.AppendRow(table.Row{
			color.New(color.FgGreen, color.Bold).Sprint(bp.Name),
			bp.Path,
			title.String(string(bp.Format)),
			size,
		})
	}

	t.Render()
	return nil
}

var _ Renderer[*usecase.ListBlueprintsResult] = (*BlueprintsRenderer)(nil)
