package render

import (
	"strings"

	"github.com/fatih/color"
)

// FormatError formats an error for stderr. The full chain is kept so the
// cause (RPC URL, tx hash, suggestions) stays visible.
func FormatError(message string) string {
	msg := strings.TrimSpace(message)
	return color.New(color.FgRed).Sprintf("❌ Error: %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}
