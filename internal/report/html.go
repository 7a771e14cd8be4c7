package report

import (
	"fmt"
	"html/template"
	"os"

	"github.com/farcloser/casparian/internal/types"
)

// Static page: gate-status badges plus a findings table. Styling is
// intentionally self-contained so the file can be attached to CI runs.
const htmlPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>Casparian Report</title>
<style>
body { font-family: system-ui, sans-serif; margin: 24px; }
.badge { display: inline-block; padding: 2px 8px; border-radius: 12px; font-size: 12px; }
.badge.pass { background: #e6ffed; color: #05631f; border: 1px solid #b6f7c6; }
.badge.fail { background: #ffecec; color: #8a1111; border: 1px solid #ffc1c1; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { text-align: left; padding: 8px; border-bottom: 1px solid #eee; }
code { background: #f6f8fa; padding: 2px 4px; border-radius: 4px; }
.finding-error { color: #8a1111; }
.finding-warning { color: #8a6a11; }
.finding-note { color: #555; }
</style></head>
<body>
<h1>Casparian Report</h1>
<p>{{if .Passed}}<span class="badge pass">ALL GATES PASSED</span>{{else}}<span class="badge fail">GATES FAILED</span>{{end}}</p>

<h2>Gates</h2>
<table>
  <thead><tr><th>Gate</th><th>Status</th><th>Details</th></tr></thead>
  <tbody>
  {{range .Gates}}<tr><td>{{.Name}}</td><td>{{if .Passed}}<span class="badge pass">PASS</span>{{else}}<span class="badge fail">FAIL</span>{{end}}</td><td>{{.Details}}</td></tr>
  {{end}}</tbody>
</table>

<h2>Findings</h2>
<table>
  <thead><tr><th>Location</th><th>Level</th><th>Rule</th><th>Message</th></tr></thead>
  <tbody>
  {{if not .Findings}}<tr><td colspan="4">No findings</td></tr>{{end}}
  {{range .Findings}}<tr>
    <td><code>{{range .Locations}}{{.Path}}{{if .Line}}:{{.Line}}{{end}}{{end}}</code></td>
    <td class="finding-{{.Level}}">{{.Level}}</td>
    <td><code>{{.RuleID}}</code></td>
    <td>{{.Message}}</td>
  </tr>
  {{end}}</tbody>
</table>
</body></html>
`

//nolint:gochecknoglobals // parsed once, read-only afterwards
var htmlTemplate = template.Must(template.New("report").Parse(htmlPage))

type htmlData struct {
	Passed   bool
	Gates    []types.GateResult
	Findings []types.Finding
}

// WriteHTML writes the human-readable gate report.
func WriteHTML(path string, gates []types.GateResult, findings []types.Finding) error {
	file, err := os.Create(path) //nolint:gosec // report path is user-chosen
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	data := htmlData{Passed: allPassed(gates), Gates: gates, Findings: findings}

	if err := htmlTemplate.Execute(file, data); err != nil {
		return fmt.Errorf("rendering html report: %w", err)
	}

	return nil
}
