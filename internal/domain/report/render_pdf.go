package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF produces the structured-document artifact for the aggregate.
// It is a pure function of the report, including the zero-execution case.
func RenderPDF(rep *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Test Plan Report: "+rep.Plan.Name, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeHeading(pdf, "Test Plan Information")
	writeKVTable(pdf, [][2]string{
		{"Plan ID:", fmt.Sprintf("%d", rep.Plan.ID)},
		{"Name:", rep.Plan.Name},
		{"Description:", orNone(rep.Plan.Description)},
		{"Start Date:", formatDate(rep.Plan.StartDate)},
		{"End Date:", formatDate(rep.Plan.EndDate)},
		{"Created At:", rep.Plan.CreatedAt.Format(dateTimeLayout)},
	})
	pdf.Ln(4)

	writeHeading(pdf, "Execution Summary")
	writeKVTable(pdf, [][2]string{
		{"Total Executions:", fmt.Sprintf("%d", rep.Summary.Total)},
		{"Passed:", fmt.Sprintf("%d", rep.Summary.Passed)},
		{"Failed:", fmt.Sprintf("%d", rep.Summary.Failed)},
		{"Skipped:", fmt.Sprintf("%d", rep.Summary.Skipped)},
		{"Pending:", fmt.Sprintf("%d", rep.Summary.Pending)},
		{"Blocked:", fmt.Sprintf("%d", rep.Summary.Blocked)},
		{"Completion Rate:", formatRate(rep.Summary.CompletionRate)},
		{"Pass Rate:", formatRate(rep.Summary.PassRate)},
	})
	pdf.Ln(4)

	if len(rep.Details) > 0 {
		writeHeading(pdf, "Detailed Results")
		for _, detail := range rep.Details {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 8, "Test Case: "+detail.Case.Title, "", 1, "L", false, 0, "")

			writeKVTable(pdf, [][2]string{
				{"Case ID:", fmt.Sprintf("%d", detail.Case.ID)},
				{"Priority:", string(detail.Case.Priority)},
				{"Type:", string(detail.Case.TestType)},
				{"Status:", string(detail.Execution.Status)},
				{"Executed By:", orUnrecorded(detail.Execution.ExecutedBy)},
				{"Executed At:", formatDateTime(detail.Execution.ExecutedAt)},
				{"Duration:", formatDuration(detail.Execution.Duration)},
			})
			pdf.Ln(2)

			if len(detail.Results) > 0 {
				pdf.SetFont("Helvetica", "", 10)
				pdf.CellFormat(0, 6, "Step Results:", "", 1, "L", false, 0, "")
				writeResultsTable(pdf, detail)
			}
			pdf.Ln(4)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func writeKVTable(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(40, 7, row[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(140, 7, row[1], "1", 1, "L", false, 0, "")
	}
}

func writeResultsTable(pdf *gofpdf.Fpdf, detail ExecutionDetail) {
	widths := []float64{15, 95, 25, 45}
	headers := []string{"Step#", "Description", "Status", "Notes"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(120, 120, 120)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, result := range sortedResults(detail.Results) {
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", result.StepNumber), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, result.StepDescription, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, string(result.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, result.Notes, "1", 1, "L", false, 0, "")
	}
}
