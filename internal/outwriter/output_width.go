package outwriter

import (
	"os"

	"github.com/huangsam/cruxaudit/internal/contract"
	"golang.org/x/term"
)

// getTerminalWidth returns the width override when set, the detected terminal
// width otherwise, and 80 when stdout is not a terminal.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return width
}

// getMaxTableDomainWidth calculates the room left for the domain column of
// the scoreboard once the fixed columns are accounted for.
func getMaxTableDomainWidth(cfg *contract.Config) int {
	// Rank + Score + Pass, six metric columns, borders and padding
	baseWidth := 20 + 6*10 + 20

	available := getTerminalWidth(cfg) - baseWidth
	if available < 15 {
		return 15
	}
	if available > 50 {
		return 50
	}
	return available
}
