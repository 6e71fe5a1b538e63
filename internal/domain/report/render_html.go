package report

import (
	"bytes"
	"html/template"
	"math"
)

// RenderHTML produces the self-contained markup artifact for the aggregate.
// Like RenderPDF it is a pure function of the report.
func RenderHTML(rep *Report) ([]byte, error) {
	view := htmlView{
		PlanID:          rep.Plan.ID,
		PlanName:        rep.Plan.Name,
		Description:     orNone(rep.Plan.Description),
		StartDate:       formatDate(rep.Plan.StartDate),
		EndDate:         formatDate(rep.Plan.EndDate),
		CreatedAt:       rep.Plan.CreatedAt.Format(dateTimeLayout),
		Summary:         rep.Summary,
		CompletionLabel: formatRate(rep.Summary.CompletionRate),
		CompletionWidth: int(math.Round(rep.Summary.CompletionRate)),
		PassLabel:       formatRate(rep.Summary.PassRate),
		PassWidth:       int(math.Round(rep.Summary.PassRate)),
		PassColor:       passRateColor(rep.Summary.PassRate),
	}

	for _, detail := range rep.Details {
		view.Rows = append(view.Rows, htmlRow{
			CaseID:     detail.Case.ID,
			Title:      detail.Case.Title,
			Priority:   string(detail.Case.Priority),
			TestType:   string(detail.Case.TestType),
			Status:     string(detail.Execution.Status),
			ExecutedBy: orUnrecorded(detail.Execution.ExecutedBy),
			ExecutedAt: formatDateTime(detail.Execution.ExecutedAt),
		})
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// passRateColor applies the three-tier color policy for the pass rate bar.
func passRateColor(rate float64) template.CSS {
	switch {
	case rate >= 80:
		return "#28a745"
	case rate >= 60:
		return "#fd7e14"
	default:
		return "#dc3545"
	}
}

type htmlView struct {
	PlanID          uint
	PlanName        string
	Description     string
	StartDate       string
	EndDate         string
	CreatedAt       string
	Summary         Summary
	CompletionLabel string
	CompletionWidth int
	PassLabel       string
	PassWidth       int
	PassColor       template.CSS
	Rows            []htmlRow
}

type htmlRow struct {
	CaseID     uint
	Title      string
	Priority   string
	TestType   string
	Status     string
	ExecutedBy string
	ExecutedAt string
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Test Plan Report: {{.PlanName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; margin: 0; padding: 20px; color: #333; }
        .container { max-width: 1200px; margin: 0 auto; }
        h1, h2, h3 { color: #2c3e50; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
        th, td { padding: 12px 15px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background-color: #34495e; color: white; }
        tr:hover { background-color: #f5f5f5; }
        .summary-box { display: inline-block; padding: 20px; margin: 10px; background-color: #f8f9fa; border-radius: 5px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); text-align: center; width: 150px; }
        .passed { color: #28a745; }
        .failed { color: #dc3545; }
        .skipped { color: #fd7e14; }
        .pending { color: #6c757d; }
        .blocked { color: #6f42c1; }
        .progress-bar { background-color: #e9ecef; border-radius: 5px; height: 20px; margin-bottom: 10px; }
        .progress { background-color: #28a745; height: 100%; border-radius: 5px; text-align: center; color: white; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Test Plan Report: {{.PlanName}}</h1>

        <h2>Test Plan Information</h2>
        <table>
            <tr><th>Plan ID:</th><td>{{.PlanID}}</td></tr>
            <tr><th>Name:</th><td>{{.PlanName}}</td></tr>
            <tr><th>Description:</th><td>{{.Description}}</td></tr>
            <tr><th>Start Date:</th><td>{{.StartDate}}</td></tr>
            <tr><th>End Date:</th><td>{{.EndDate}}</td></tr>
            <tr><th>Created At:</th><td>{{.CreatedAt}}</td></tr>
        </table>

        <h2>Execution Summary</h2>
        <div>
            <div class="summary-box">
                <h3>Total</h3>
                <div style="font-size: 24px;">{{.Summary.Total}}</div>
            </div>
            <div class="summary-box">
                <h3 class="passed">Passed</h3>
                <div style="font-size: 24px;" class="passed">{{.Summary.Passed}}</div>
            </div>
            <div class="summary-box">
                <h3 class="failed">Failed</h3>
                <div style="font-size: 24px;" class="failed">{{.Summary.Failed}}</div>
            </div>
            <div class="summary-box">
                <h3 class="skipped">Skipped</h3>
                <div style="font-size: 24px;" class="skipped">{{.Summary.Skipped}}</div>
            </div>
            <div class="summary-box">
                <h3 class="pending">Pending</h3>
                <div style="font-size: 24px;" class="pending">{{.Summary.Pending}}</div>
            </div>
        </div>

        <h3>Completion Rate: {{.CompletionLabel}}</h3>
        <div class="progress-bar">
            <div class="progress" style="width: {{.CompletionWidth}}%;">{{.CompletionWidth}}%</div>
        </div>

        <h3>Pass Rate: {{.PassLabel}}</h3>
        <div class="progress-bar">
            <div class="progress" style="width: {{.PassWidth}}%; background-color: {{.PassColor}};">{{.PassWidth}}%</div>
        </div>
{{if .Rows}}
        <h2>Detailed Results</h2>
        <table>
            <tr>
                <th>ID</th>
                <th>Test Case</th>
                <th>Priority</th>
                <th>Type</th>
                <th>Status</th>
                <th>Executed By</th>
                <th>Executed At</th>
            </tr>
{{range .Rows}}            <tr>
                <td>{{.CaseID}}</td>
                <td>{{.Title}}</td>
                <td>{{.Priority}}</td>
                <td>{{.TestType}}</td>
                <td class="{{.Status}}">{{.Status}}</td>
                <td>{{.ExecutedBy}}</td>
                <td>{{.ExecutedAt}}</td>
            </tr>
{{end}}        </table>
{{end}}    </div>
</body>
</html>
`))
