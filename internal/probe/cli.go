package probe

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/okian/suwen/pkg/logger"
)

// SetupLogging initializes the text logger at info, or debug when verbose.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = cellStyle.Foreground(lipgloss.Color("42"))
	failStyle   = cellStyle.Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// outcomeColumn is the table column colored by outcome.
const outcomeColumn = 2

// WriteReport prints one row per endpoint followed by a summary line.
func WriteReport(w io.Writer, r *Report) error {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		detail := res.Message
		if res.Outcome == OutcomeEnvelopeError {
			detail = fmt.Sprintf("%d %s", res.Status, res.Message)
		}
		rows = append(rows, []string{res.Name, res.Path, res.Outcome, res.Duration.Round(time.Millisecond).String(), detail})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("ENDPOINT", "PATH", "OUTCOME", "DURATION", "DETAIL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col != outcomeColumn || row < 0 || row >= len(r.Results):
				return cellStyle
			case r.Results[row].OK():
				return okStyle
			default:
				return failStyle
			}
		})

	_, err := fmt.Fprintf(w, "%s\n\nrun %s against %s: %d endpoints, %d failed, took %s\n",
		t.Render(), r.RunID, r.BaseURL, len(r.Results), r.Failed(), r.Duration.Round(time.Millisecond))
	return err
}

// ShowHelp prints usage information for the probe tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Suwen Backend Probe
===================

Calls every read endpoint of the blog backend and reports which ones fail.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the backend API (default "http://localhost:3000")
  -workers int
        Maximum concurrent calls (default 4)
  -timeout duration
        Per-call HTTP timeout (default 10s)
  -lang string
        Language for language-aware endpoints (default "zh-CN")
  -verbose
        Log every call as it completes
  -help
        Show this help message

Exit status is 1 when any endpoint fails.

Examples:
  go run ./cmd/probe -url http://api.internal:3000
  go run ./cmd/probe -lang en -workers 8 -verbose
`)
}
