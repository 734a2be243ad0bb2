package apihttp

import (
	"html/template"
	"strconv"

	productivity "mailsort-dashboard/internal/productivity/domain"
)

var funcMap = template.FuncMap{
	"cellClass": func(c productivity.GridCell) string {
		if c.Class == productivity.Unclassified {
			return "total-cell"
		}
		return string(c.Class)
	},
	"rowClass": func(kind productivity.RowKind) string {
		switch kind {
		case productivity.RowManualSubtotal:
			return "subtotals-row"
		case productivity.RowGrandTotal:
			return "totals-row"
		default:
			return ""
		}
	},
	"fmtWeight": func(w float64) string { return strconv.FormatFloat(w, 'f', 2, 64) },
	"isRollup":  func(kind productivity.RowKind) bool { return kind != productivity.RowStation },
}

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(funcMap).Parse(tmplDashboard))

const tmplDashboard = `<!DOCTYPE html>
<html lang="nl">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
{{if gt .RefreshSeconds 0}}<meta http-equiv="refresh" content="{{.RefreshSeconds}}">{{end}}
<title>Mail Processing Dashboard</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:Arial,sans-serif;background:#1a1a2e;color:#eee;font-size:13px}
header{display:flex;justify-content:space-between;align-items:center;padding:12px 16px;background:#16213e}
header h1{font-size:18px;color:#ff6b6b}
header form{display:flex;gap:6px}
header input,header button{padding:4px 8px;border-radius:4px;border:1px solid #444;background:#0f3460;color:#eee}
main{display:grid;grid-template-columns:1fr 1fr;gap:16px;padding:16px}
.section{background:#16213e;border-radius:6px;padding:12px}
.wide{grid-column:1 / -1;overflow-x:auto}
h2{font-size:14px;margin-bottom:8px;color:#ccc}
table{width:100%;border-collapse:collapse}
th,td{padding:4px 6px;border-bottom:1px solid #2a2a4a;text-align:right}
th:first-child,td:first-child{text-align:left}
.total-row td,.totals-row td,.subtotals-row td{font-weight:700}
.error{color:#ff6b6b}
.no-data{color:#888;font-style:italic}
.above-average{background:#2e7d32;color:#fff}
.below-average{background:#ef6c00;color:#000}
.way-below-average{background:#c62828;color:#fff}
.no-value{color:#555}
.productivity-legend{display:flex;gap:16px;flex-wrap:wrap;margin-top:8px;font-size:12px}
.color-box{display:inline-block;width:12px;height:12px;margin-right:4px;vertical-align:middle}
.exports a{color:#4fc3f7;margin-right:12px}
</style>
</head>
<body>
<header>
  <h1>Mail Processing Dashboard</h1>
  <form method="GET">
    <input type="date" name="date" value="{{.Date}}">
    <button type="submit">Toon</button>
  </form>
</header>
<main>
<div class="section">
  <h2>Totalen per BIN</h2>
  {{if .TotalsErr}}<div class="error">Fout: {{.TotalsErr}}</div>{{else}}
  <table>
    <thead><tr><th>Naam</th><th>Bin</th><th>Aantal</th><th>Gewicht</th><th>Gem.</th></tr></thead>
    <tbody>
    {{range .Totals.Rows}}<tr><td>{{.Name}}</td><td>{{.Bin}}</td><td>{{.Count}}</td><td>{{fmtWeight .Weight}}</td><td>{{.Average}}</td></tr>
    {{end}}<tr class="total-row"><td colspan="2">Totaal</td><td>{{.Totals.Totals.Count}}</td><td>{{fmtWeight .Totals.Totals.Weight}}</td><td></td></tr>
    </tbody>
  </table>{{end}}
</div>
<div class="section">
  <h2>Andere vervoerders</h2>
  {{if .CarriersErr}}<div class="error">Fout: {{.CarriersErr}}</div>{{else}}
  <table>
    <thead><tr><th>Naam</th><th>Bin</th><th>Aantal</th><th>Gewicht</th></tr></thead>
    <tbody>
    {{range .Carriers}}<tr><td>{{.Name}}</td><td>{{.Bin}}</td><td>{{.Count}}</td><td>{{fmtWeight .Weight}}</td></tr>
    {{end}}</tbody>
  </table>{{end}}
</div>
<div class="section wide">
  <h2>BusinessPost Detail</h2>
  <div class="exports">
    <a href="/api/v1/exports/bp-prealert.csv?date={{.Date}}">Voormelding CSV</a>
    <a href="/api/v1/exports/bp-prealert.xlsx?date={{.Date}}">Voormelding Excel</a>
  </div>
  {{if .BPDetailErr}}<div class="error">Fout: {{.BPDetailErr}}</div>{{else if not .BPDetail}}<div class="no-data">Geen BusinessPost data voor deze datum</div>{{else}}
  <table>
    <thead><tr><th>BP Code</th><th>Locatie</th><th>Prealert Code</th><th>Aantal</th><th>Gewicht</th></tr></thead>
    <tbody>
    {{range .BPDetail}}<tr><td>{{.BPCode}}</td><td>{{.Location}}</td><td>{{.PrealertCode}}</td><td>{{.Count}}</td><td>{{fmtWeight .Weight}}</td></tr>
    {{end}}</tbody>
  </table>{{end}}
</div>
<div class="section wide">
  <h2>Productiviteit per Station (15 min intervallen)</h2>
  <div class="exports">
    <a href="/api/v1/exports/productivity.xlsx?date={{.Date}}">Excel</a>
    <a href="/api/v1/exports/productivity.pdf?date={{.Date}}">PDF</a>
  </div>
  {{if .ProductivityErr}}<div class="error">Fout: {{.ProductivityErr}}</div>{{else if .Grid.Empty}}<div class="no-data">Geen productiviteit data voor deze datum</div>{{else}}
  <table class="productivity-table">
    <thead><tr><th>Station</th>{{range .Grid.Header}}<th>{{.}}</th>{{end}}<th>Totaal</th></tr></thead>
    <tbody>
    {{range .Grid.Rows}}<tr class="{{rowClass .Kind}}"><td class="station-name">{{if isRollup .Kind}}<strong>{{.Label}}</strong>{{else}}{{.Label}}{{end}}</td>{{range .Cells}}<td class="{{cellClass .}}">{{.Value}}</td>{{end}}<td class="{{cellClass .Total}}">{{.Total.Value}}</td></tr>
    {{end}}</tbody>
  </table>
  {{with .Grid.Legend}}<div class="productivity-legend">
    <span>Legenda:</span>
    <span>Machine (Station 0):
      <span class="color-box above-average"></span>&ge;{{.Machine.Average}}
      <span class="color-box below-average"></span>{{.Machine.Threshold50}}-{{.Machine.Average}}
      <span class="color-box way-below-average"></span>&lt;{{.Machine.Threshold50}}</span>
    <span>Handmatig (Station 1-5):
      <span class="color-box above-average"></span>&ge;{{.Manual.Average}}
      <span class="color-box below-average"></span>{{.Manual.Threshold50}}-{{.Manual.Average}}
      <span class="color-box way-below-average"></span>&lt;{{.Manual.Threshold50}}</span>
    <span><span class="color-box no-value"></span>Geen activiteit (0)</span>
  </div>{{end}}
  {{if .Dropped}}<div class="no-data">{{.Dropped}} registraties zonder geldige tijd overgeslagen</div>{{end}}{{end}}
</div>
</main>
</body>
</html>
`
