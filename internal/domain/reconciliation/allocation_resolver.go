package reconciliation

import (
	"github.com/shopspring/decimal"
)

// CollectedAmount sums the allocated amounts of a set of allocations. No
// clamping takes place: when allocations exceed the invoice total (a data
// integrity violation) the raw sum is returned and the caller decides how
// to flag it.
func CollectedAmount(allocations []Allocation) decimal.Decimal {
	sum := decimal.Zero
	for _, allocation := range allocations {
		sum = sum.Add(allocation.AllocatedAmount)
	}
	return sum
}

// ResolveInvoice builds the per-invoice summary from the invoice's
// allocations and its return credits:
//
//	outstanding = invoice.total - collected - invoiceReturns
//
// Status derivation is exact at minor-unit precision: paid when
// outstanding is exactly zero, partially_paid when something was collected
// and something is still outstanding, pending otherwise. An over-allocated
// invoice (negative outstanding) therefore reports pending with the raw
// negative amount intact.
//
// degraded marks an invoice whose allocation rows could not be fetched;
// its collected amount is a best-effort zero and the flag distinguishes
// that from a true zero.
func ResolveInvoice(invoice Invoice, allocations []Allocation, invoiceReturns decimal.Decimal, degraded bool) InvoiceSummary {
	collected := decimal.Zero
	if !degraded {
		collected = CollectedAmount(allocations)
	}

	outstanding := invoice.Total.Sub(collected).Sub(invoiceReturns)

	var status InvoiceStatus
	switch {
	case outstanding.IsZero():
		status = InvoiceStatusPaid
	case collected.IsPositive() && outstanding.IsPositive():
		status = InvoiceStatusPartiallyPaid
	default:
		status = InvoiceStatusPending
	}

	return InvoiceSummary{
		InvoiceID:         invoice.ID,
		InvoiceNumber:     invoice.InvoiceNumber,
		Total:             invoice.Total,
		CollectedAmount:   collected,
		ReturnAmount:      invoiceReturns,
		OutstandingAmount: outstanding,
		Status:            status,
		Degraded:          degraded,
	}
}
