package rendering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementData is the data bound to the customer statement template.
type StatementData struct {
	StatementID  uuid.UUID
	AgencyName   string
	CustomerName string
	CustomerCode string
	AsOfDate     time.Time
	GeneratedAt  time.Time

	TotalInvoiced             decimal.Decimal
	TotalCollected            decimal.Decimal
	UnrealizedPayments        decimal.Decimal
	TotalReturns              decimal.Decimal
	ReturnedChequesAmount     decimal.Decimal
	ReturnedChequesCount      int
	OutstandingAmount         decimal.Decimal
	OutstandingWithUnrealized decimal.Decimal
	Degraded                  bool

	Invoices []StatementInvoiceRow
}

// StatementInvoiceRow is one invoice line on the statement.
type StatementInvoiceRow struct {
	InvoiceNumber     string
	Total             decimal.Decimal
	CollectedAmount   decimal.Decimal
	ReturnAmount      decimal.Decimal
	OutstandingAmount decimal.Decimal
	Status            string
	Degraded          bool
}

// RenderStatement renders the built-in customer statement template.
func (e *TemplateEngine) RenderStatement(ctx context.Context, data *StatementData) (string, error) {
	if data == nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "statement data is nil", nil)
	}
	return e.RenderString(ctx, "customer_statement", customerStatementTemplate, data)
}

// customerStatementTemplate is the A4 portrait statement layout. Statement
// documents are fixed-format, so the template ships with the binary instead
// of living in a per-agency template store.
const customerStatementTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Customer Statement - {{ .CustomerName }}</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 12px; color: #1a1a1a; margin: 0; }
  .header { display: flex; justify-content: space-between; align-items: flex-start; border-bottom: 2px solid #1a1a1a; padding-bottom: 12px; }
  .header h1 { font-size: 20px; margin: 0 0 4px 0; }
  .header .doc-title { font-size: 16px; text-align: right; }
  .meta { margin: 14px 0; line-height: 1.6; }
  .meta .label { color: #666; display: inline-block; min-width: 110px; }
  table.summary { width: 100%; border-collapse: collapse; margin: 10px 0 18px 0; }
  table.summary td { padding: 5px 8px; border-bottom: 1px solid #ddd; }
  table.summary td.amount { text-align: right; font-variant-numeric: tabular-nums; }
  table.summary tr.total td { border-top: 2px solid #1a1a1a; border-bottom: none; font-weight: bold; font-size: 13px; }
  table.invoices { width: 100%; border-collapse: collapse; }
  table.invoices th { background: #f2f2f2; text-align: left; padding: 6px 8px; border-bottom: 1px solid #999; font-size: 11px; }
  table.invoices th.amount, table.invoices td.amount { text-align: right; font-variant-numeric: tabular-nums; }
  table.invoices td { padding: 5px 8px; border-bottom: 1px solid #e0e0e0; }
  .status { font-size: 10px; padding: 1px 6px; border-radius: 8px; background: #eee; white-space: nowrap; }
  .status.paid { background: #d9efd9; }
  .status.partial { background: #fdeeca; }
  .degraded-note { margin-top: 14px; padding: 8px 10px; background: #fdf2f2; border: 1px solid #e3b7b7; font-size: 11px; }
  .in-words { margin-top: 16px; font-size: 11px; color: #444; }
  .footer { margin-top: 24px; font-size: 10px; color: #888; border-top: 1px solid #ccc; padding-top: 6px; }
</style>
</head>
<body>

<div class="header">
  <div>
    <h1>{{ .AgencyName }}</h1>
    <div>Statement of Account</div>
  </div>
  <div class="doc-title">
    <div><strong>Statement {{ shortUUID .StatementID }}</strong></div>
    <div>As at {{ formatDate .AsOfDate }}</div>
  </div>
</div>

<div class="meta">
  <div><span class="label">Customer</span> {{ .CustomerName }}{{ if .CustomerCode }} ({{ .CustomerCode }}){{ end }}</div>
  <div><span class="label">Generated</span> {{ formatDateTime .GeneratedAt }}</div>
</div>

<table class="summary">
  <tr><td>Total invoiced</td><td class="amount">{{ formatMoney .TotalInvoiced }}</td></tr>
  <tr><td>Payments received</td><td class="amount">{{ formatMoney .TotalCollected }}</td></tr>
  {{ if not .UnrealizedPayments.IsZero }}<tr><td>Cheques pending realization</td><td class="amount">{{ formatMoney .UnrealizedPayments }}</td></tr>{{ end }}
  {{ if not .TotalReturns.IsZero }}<tr><td>Returns credited</td><td class="amount">{{ formatMoney .TotalReturns }}</td></tr>{{ end }}
  {{ if gt .ReturnedChequesCount 0 }}<tr><td>Returned cheques ({{ .ReturnedChequesCount }})</td><td class="amount">{{ formatMoney .ReturnedChequesAmount }}</td></tr>{{ end }}
  <tr class="total"><td>Outstanding balance</td><td class="amount">{{ formatMoney .OutstandingAmount }}</td></tr>
  {{ if not .UnrealizedPayments.IsZero }}<tr><td>Outstanding if pending cheques realize</td><td class="amount">{{ formatMoney .OutstandingWithUnrealized }}</td></tr>{{ end }}
</table>

<table class="invoices">
  <thead>
    <tr>
      <th>Invoice</th>
      <th class="amount">Invoiced</th>
      <th class="amount">Collected</th>
      <th class="amount">Returns</th>
      <th class="amount">Outstanding</th>
      <th>Status</th>
    </tr>
  </thead>
  <tbody>
    {{ range .Invoices }}
    <tr>
      <td>{{ .InvoiceNumber }}</td>
      <td class="amount">{{ formatMoneyRaw .Total }}</td>
      <td class="amount">{{ formatMoneyRaw .CollectedAmount }}</td>
      <td class="amount">{{ formatMoneyRaw .ReturnAmount }}</td>
      <td class="amount">{{ formatMoneyRaw .OutstandingAmount }}</td>
      <td><span class="status{{ if eq .Status "paid" }} paid{{ else if eq .Status "partially_paid" }} partial{{ end }}">{{ statusText .Status }}</span>{{ if .Degraded }}*{{ end }}</td>
    </tr>
    {{ else }}
    <tr><td colspan="6">No invoices on record.</td></tr>
    {{ end }}
  </tbody>
</table>

<div class="in-words">Outstanding balance in words: {{ amountInWords .OutstandingAmount }}</div>

{{ if .Degraded }}
<div class="degraded-note">* Allocation details could not be read for one or more invoices when this
statement was prepared. Collected amounts for those invoices are shown as zero; the true balance may
be lower. Please request a fresh statement or contact the agency office.</div>
{{ end }}

<div class="footer">This statement reflects transactions recorded up to {{ formatDate .AsOfDate }}.
Cheques are counted as payments only once realized. Please report discrepancies within 14 days.</div>

</body>
</html>`
