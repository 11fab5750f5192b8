package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/studiodesk/studiodesk/internal/core/calendar"
)

// WriteCalendarPDF renders a calendar as an A4 PDF
func WriteCalendarPDF(w io.Writer, cal *calendar.Calendar, studioName string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate names with accents
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(studioName+" calendar", true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("%s: %s to %s", studioName, cal.Range.From, cal.Range.To)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%d sessions (%s)", cal.Total, countsLine(cal)))
	pdf.Ln(10)

	if len(cal.Days) == 0 {
		pdf.Cell(0, 8, "No sessions scheduled.")
		pdf.Ln(8)
	}

	for _, day := range cal.Days {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 9, dayHeading(day.Date))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 11)
		for _, s := range day.Sessions {
			pdf.MultiCell(0, 6, tr("  "+sessionLine(s)), "", "", false)
			if s.Notes != "" {
				pdf.SetFont("Arial", "I", 9)
				pdf.MultiCell(0, 5, tr("      "+s.Notes), "", "", false)
				pdf.SetFont("Arial", "", 11)
			}
		}
		pdf.Ln(4)
	}

	if cal.Hidden > 0 {
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 8, fmt.Sprintf("%d cancelled sessions hidden", cal.Hidden))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}
