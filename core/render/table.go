// Package render — terminal table renderer.
// Draws each report section as a bordered lipgloss table for stdout.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gaurav-prasanna/pagestat/core"
	"github.com/gaurav-prasanna/pagestat/core/count"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// TableRenderer renders the report as terminal tables.
type TableRenderer struct{}

// NewTableRenderer creates a TableRenderer.
func NewTableRenderer() *TableRenderer {
	return &TableRenderer{}
}

// Render builds the tables. The last column of every table holds numbers
// and is right-aligned.
func (r *TableRenderer) Render(report *core.Report) ([]byte, error) {
	var sb strings.Builder
	meta := report.Metadata

	sb.WriteString(titleStyle.Render(meta.Source))
	if meta.Title != "" {
		sb.WriteString(" " + mutedStyle.Render("· "+meta.Title))
	}
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("%s · %.2f ms", meta.Kind, meta.ElapsedMS)))
	sb.WriteString("\n")

	rows := make([][]string, 0, 12)
	for _, row := range statRows(report.Stats) {
		rows = append(rows, []string{row.label, strconv.Itoa(row.value)})
	}
	sb.WriteString(newTable([]string{"Metric", "Count"}, rows))
	sb.WriteString("\n")

	if len(report.TopWords) > 0 || len(report.TopCharacters) > 0 {
		sb.WriteString(newTable([]string{"Word", "Count"}, tableEntries(report.TopWords)))
		sb.WriteString("\n")
		sb.WriteString(newTable([]string{"Character", "Count"}, tableEntries(report.TopCharacters)))
		sb.WriteString("\n")
	}

	if len(report.Targets) > 0 {
		rows = rows[:0]
		for _, t := range report.Targets {
			rows = append(rows, []string{t.Kind, strconv.Quote(t.Target), strconv.Itoa(t.Count)})
		}
		sb.WriteString(newTable([]string{"Kind", "Target", "Count"}, rows))
		sb.WriteString("\n")
	}

	if len(report.Chunks) > 0 {
		rows = rows[:0]
		for _, c := range report.Chunks {
			rows = append(rows, []string{
				strconv.Itoa(c.Index), strconv.Itoa(c.Characters), strconv.Itoa(c.Sentences), strconv.Itoa(c.Words),
			})
		}
		sb.WriteString(newTable([]string{"Chunk", "Characters", "Sentences", "Words"}, rows))
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// Extension returns the file extension used when tables are written to disk.
func (r *TableRenderer) Extension() string {
	return ".txt"
}

func newTable(headers []string, rows [][]string) string {
	last := len(headers) - 1
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == last:
				return numberStyle
			default:
				return cellStyle
			}
		})
	return t.Render() + "\n"
}

func tableEntries(entries []count.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{displayKey(e.Key), strconv.Itoa(e.Count)})
	}
	return rows
}
