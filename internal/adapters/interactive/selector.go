package interactive

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// Selector prompts on the terminal to disambiguate blueprints
type Selector struct {
	config *config.RuntimeConfig
}

// NewSelector creates a new selector
func NewSelector(cfg *config.RuntimeConfig) *Selector {
	return &Selector{config: cfg}
}

// SelectBlueprint asks the user to pick one of the fully qualified names
func (s *Selector) SelectBlueprint(ctx context.Context, options []string, prompt string) (string, error) {
	if s.config.NonInteractive || !isatty.IsTerminal(os.Stdin.Fd()) {
		return "", usecase.ErrSelectionUnavailable
	}

	if len(options) == 0 {
		return "", fmt.Errorf("no contracts provided for selection")
	}
	if len(options) == 1 {
		return options[0], nil
	}

	labels := formatOptions(options)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             labels,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          fuzzySearcher(options),
		Stdout:            noBellStderr{},
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return options[index], nil
}

// formatOptions renders "path/to/Source.sol:Name" as "Name (path/to/Source.sol)"
func formatOptions(options []string) []string {
	labels := make([]string, len(options))
	for i, fqn := range options {
		path, name := fqn, fqn
		if idx := strings.LastIndex(fqn, ":"); idx != -1 {
			path, name = fqn[:idx], fqn[idx+1:]
		}
		labels[i] = fmt.Sprintf("%s (%s)",
			color.New(color.FgWhite, color.Bold).Sprint(name),
			color.New(color.FgBlue).Sprint(path))
	}
	return labels
}

// fuzzySearcher matches the search input against the plain option text
func fuzzySearcher(options []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(options[index])

		if strings.Contains(item, input) {
			return true
		}
		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// noBellStderr keeps the prompt off stdout and drops the terminal bell
// readline emits on every keystroke
type noBellStderr struct{}

func (noBellStderr) Write(b []byte) (int, error) {
	if len(b) == 1 && b[0] == '\a' {
		return 0, nil
	}
	return os.Stderr.Write(b)
}

func (noBellStderr) Close() error {
	return nil
}

var _ usecase.BlueprintSelector = (*Selector)(nil)
