package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4D96FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// renderTable lays out rows under headers with a rounded border.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// printTable writes a titled table, or v as JSON when --output json is set.
func printTable(w io.Writer, title string, headers []string, rows [][]string, v any) error {
	if outputFormat == formatJSON {
		return printJSON(w, v)
	}
	if title != "" {
		fmt.Fprintln(w, titleStyle.Render(title))
	}
	fmt.Fprintln(w, renderTable(headers, rows))
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// num formats a table cell value.
func num(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
