// Package render — PDF renderer.
// Lays the report out as a single A4 document using gofpdf: a header block
// with the source, then one bordered table per report section.
// Core fonts only cover Latin-1, so keys outside it are transliterated.
package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/pagestat/core"
	"github.com/gaurav-prasanna/pagestat/core/count"
)

const (
	pdfRowHeight = 6.0
	pdfLabelW    = 120.0
	pdfValueW    = 50.0
)

// PDFRenderer renders a report as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the report into PDF bytes.
func (r *PDFRenderer) Render(report *core.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle("Text statistics", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	meta := report.Metadata
	title := meta.Title
	if title == "" {
		title = meta.Source
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Source: %s (%s)", meta.Source, meta.Kind)), "", "L", false)
	pdf.MultiCell(0, 5, fmt.Sprintf("Analyzed %s in %.2f ms, run %s", meta.AnalyzedAt, meta.ElapsedMS, meta.RunID), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	rows := make([][2]string, 0, 12)
	for _, row := range statRows(report.Stats) {
		rows = append(rows, [2]string{row.label, strconv.Itoa(row.value)})
	}
	pdfTable(pdf, "Counts", "Metric", rows)

	pdfTable(pdf, "Top words", "Word", entryRows(tr, report.TopWords))
	pdfTable(pdf, "Top characters", "Character", entryRows(tr, report.TopCharacters))

	if len(report.Targets) > 0 {
		rows = rows[:0]
		for _, t := range report.Targets {
			rows = append(rows, [2]string{tr(fmt.Sprintf("%s %q", t.Kind, t.Target)), strconv.Itoa(t.Count)})
		}
		pdfTable(pdf, "Targeted counts", "Target", rows)
	}

	if len(report.Chunks) > 0 {
		rows = rows[:0]
		for _, c := range report.Chunks {
			rows = append(rows, [2]string{
				fmt.Sprintf("Chunk %d: %d characters, %d sentences", c.Index, c.Characters, c.Sentences),
				strconv.Itoa(c.Words),
			})
		}
		pdfTable(pdf, "Chunks", "Chunk (words)", rows)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// pdfTable writes a heading followed by a two-column label/count table.
func pdfTable(pdf *gofpdf.Fpdf, heading, column string, rows [][2]string) {
	if len(rows) == 0 {
		return
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, heading, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(pdfLabelW, pdfRowHeight, column, "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfValueW, pdfRowHeight, "Count", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(pdfLabelW, pdfRowHeight, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfValueW, pdfRowHeight, row[1], "1", 1, "R", false, 0, "")
	}
}

func entryRows(tr func(string) string, entries []count.Entry) [][2]string {
	rows := make([][2]string, 0, len(entries))
	for _, e := range entries {
		key := displayKey(e.Key)
		if e.Key == " " {
			key = "(space)"
		}
		rows = append(rows, [2]string{tr(key), strconv.Itoa(e.Count)})
	}
	return rows
}
