package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title, free-form summary
// lines, and a table body.
func (e *PDFExporter) Render(data Dataset, title string, lines []string) ([]byte, error) {
	if len(data.Headers) == 0 && len(lines) == 0 {
		return nil, fmt.Errorf("pdf requires headers or summary lines")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	if len(lines) > 0 {
		pdf.SetFont("Arial", "", 10)
		for _, line := range lines {
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(data.Headers) > 0 {
		pdf.SetFont("Arial", "B", 10)
		colWidth := 190.0 / float64(len(data.Headers))
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, row := range data.Rows {
			for i := range data.Headers {
				value := ""
				if i < len(row) {
					value = row[i]
				}
				pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
