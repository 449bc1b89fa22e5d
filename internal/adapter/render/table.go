// Package render turns an assembled exchange table into an HTML document.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"exchange-chat-service/internal/domain/model"
)

const tableTemplate = `<table border="1">
<tr>
<th rowspan="2">Date</th>
{{- range .Currencies}}
<th colspan="3">{{.}}</th>
{{- end}}
</tr>
<tr>
{{- range .Currencies}}{{range $.Subheads}}
<th>{{.}}</th>
{{- end}}{{end}}
</tr>
{{- range .Days}}
<tr>
<td>{{.Date}}</td>
{{- $rates := .Rates}}
{{- range $.Currencies}}
{{- with index $rates .}}
<td>{{.Buy}}</td>
<td>{{.Sell}}</td>
<td>{{.NBU}}</td>
{{- end}}
{{- end}}
</tr>
{{- end}}
</table>`

type tableData struct {
	Currencies []model.Currency
	Subheads   []string
	Days       []model.DailyRateRecord
}

// Table renders exchange tables from a template parsed once at construction.
type Table struct {
	tmpl *template.Template
}

func NewTable() *Table {
	return &Table{
		tmpl: template.Must(template.New("table").Parse(tableTemplate)),
	}
}

// Render is a pure function of the table: headers are the tracked
// currencies, each with buy/sell/NBU columns, one row per day.
func (t *Table) Render(table model.ExchangeTable) (string, error) {
	data := tableData{
		Currencies: table.Currencies,
		Subheads:   []string{"buy", "sell", "NBU"},
		Days:       table.Days,
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render exchange table: %w", err)
	}
	return buf.String(), nil
}
