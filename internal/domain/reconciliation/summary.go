package reconciliation

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceSummary is the derived payment state of a single invoice.
type InvoiceSummary struct {
	InvoiceID         uuid.UUID       `json:"invoiceId"`
	InvoiceNumber     string          `json:"invoiceNumber"`
	Total             decimal.Decimal `json:"total"`
	CollectedAmount   decimal.Decimal `json:"collectedAmount"`
	ReturnAmount      decimal.Decimal `json:"returnAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	Status            InvoiceStatus   `json:"status"`
	Degraded          bool            `json:"degraded,omitempty"`
}

// CustomerInvoiceSummary is the full receivable picture for one customer
// as of a reference date. It is derived on demand from snapshot rows and
// never persisted or cached.
//
// Two outstanding figures are reported side by side: OutstandingAmount
// counts only realized payments, OutstandingWithUnrealized additionally
// treats future-dated cheques as collected. Returned cheque amounts are
// added back into both, which can push outstanding above the invoiced
// total — the payment was reversed.
type CustomerInvoiceSummary struct {
	CustomerID                uuid.UUID        `json:"customerId"`
	CustomerName              string           `json:"customerName"`
	ReferenceDate             time.Time        `json:"referenceDate"`
	TotalInvoiced             decimal.Decimal  `json:"totalInvoiced"`
	TotalCollected            decimal.Decimal  `json:"totalCollected"`
	UnrealizedPayments        decimal.Decimal  `json:"unrealizedPayments"`
	OutstandingAmount         decimal.Decimal  `json:"outstandingAmount"`
	OutstandingWithUnrealized decimal.Decimal  `json:"outstandingWithUnrealized"`
	ReturnedChequesAmount     decimal.Decimal  `json:"returnedChequesAmount"`
	ReturnedChequesCount      int              `json:"returnedChequesCount"`
	TotalReturns              decimal.Decimal  `json:"totalReturns"`
	Payments                  PaymentTotals    `json:"payments"`
	Degraded                  bool             `json:"degraded,omitempty"`
	Invoices                  []InvoiceSummary `json:"invoices"`
}

// SummaryInput is the snapshot a summary is computed from. All rows must
// be fetched before calling ComputeCustomerSummary; the computation itself
// performs no I/O.
//
// AllocationsByInvoice holds the allocation rows fetched per invoice; a
// missing key means no allocations. DegradedInvoices lists invoices whose
// allocation fetch failed — their collected amount is reported as zero with
// the degraded flag set, so a fetch failure is never mistaken for a truly
// unpaid invoice. ReturnItemsByInvoiceItem carries item-level return
// credits (creditable returns only) keyed by invoice item id.
type SummaryInput struct {
	Customer                 CustomerRef
	Invoices                 []Invoice
	Collections              []Collection
	Returns                  []Return
	AllocationsByInvoice     map[uuid.UUID][]Allocation
	DegradedInvoices         map[uuid.UUID]bool
	ReturnItemsByInvoiceItem map[uuid.UUID]decimal.Decimal
	ReferenceDate            time.Time
}

// ComputeCustomerSummary builds the customer's receivable summary:
//
//	outstanding               = invoiced - realized payments - returns + returned cheques
//	outstandingWithUnrealized = invoiced - all payments      - returns + returned cheques
//
// The per-invoice list is ordered by invoice creation time (ties broken by
// invoice number) so identical snapshots always produce identical output.
func ComputeCustomerSummary(input SummaryInput) CustomerInvoiceSummary {
	payments := AggregatePayments(input.Collections, input.ReferenceDate)

	totalInvoiced := decimal.Zero
	for _, invoice := range input.Invoices {
		totalInvoiced = totalInvoiced.Add(invoice.Total)
	}

	totalReturns := CustomerReturnTotal(input.Returns)

	realized := payments.TotalRealizedPayments()
	all := payments.TotalAllPayments()

	outstanding := totalInvoiced.
		Sub(realized).
		Sub(totalReturns).
		Add(payments.ReturnedChequeAmount)
	outstandingWithUnrealized := totalInvoiced.
		Sub(all).
		Sub(totalReturns).
		Add(payments.ReturnedChequeAmount)

	invoices := make([]Invoice, len(input.Invoices))
	copy(invoices, input.Invoices)
	sort.Slice(invoices, func(i, j int) bool {
		if !invoices[i].CreatedAt.Equal(invoices[j].CreatedAt) {
			return invoices[i].CreatedAt.Before(invoices[j].CreatedAt)
		}
		return invoices[i].InvoiceNumber < invoices[j].InvoiceNumber
	})

	degraded := false
	invoiceSummaries := make([]InvoiceSummary, 0, len(invoices))
	for _, invoice := range invoices {
		invoiceReturns := InvoiceReturnTotal(invoice, input.Returns, input.ReturnItemsByInvoiceItem)
		summary := ResolveInvoice(
			invoice,
			input.AllocationsByInvoice[invoice.ID],
			invoiceReturns,
			input.DegradedInvoices[invoice.ID],
		)
		if summary.Degraded {
			degraded = true
		}
		invoiceSummaries = append(invoiceSummaries, summary)
	}

	return CustomerInvoiceSummary{
		CustomerID:                input.Customer.ID,
		CustomerName:              input.Customer.Name,
		ReferenceDate:             input.ReferenceDate,
		TotalInvoiced:             totalInvoiced,
		TotalCollected:            realized,
		UnrealizedPayments:        payments.TotalUnrealizedCheque,
		OutstandingAmount:         outstanding,
		OutstandingWithUnrealized: outstandingWithUnrealized,
		ReturnedChequesAmount:     payments.ReturnedChequeAmount,
		ReturnedChequesCount:      payments.ReturnedChequeCount,
		TotalReturns:              totalReturns,
		Payments:                  payments,
		Degraded:                  degraded,
		Invoices:                  invoiceSummaries,
	}
}
