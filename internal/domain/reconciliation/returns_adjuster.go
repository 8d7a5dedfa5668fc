package reconciliation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditableReturns filters a set of returns down to those that count as
// credits against outstanding: approved or processed. Pending and rejected
// returns are ignored everywhere in reconciliation.
func CreditableReturns(returns []Return) []Return {
	creditable := make([]Return, 0, len(returns))
	for _, ret := range returns {
		if ret.Status.IsCreditable() {
			creditable = append(creditable, ret)
		}
	}
	return creditable
}

// CustomerReturnTotal sums the header totals of a customer's creditable
// returns. Item-level amounts are not added here — header and item figures
// are non-overlapping sources for the same return, and the customer-level
// credit is the header total alone.
func CustomerReturnTotal(returns []Return) decimal.Decimal {
	total := decimal.Zero
	for _, ret := range CreditableReturns(returns) {
		total = total.Add(ret.Total)
	}
	return total
}

// InvoiceReturnTotal computes the return credit attributable to one
// invoice through both recording paths: header-level returns that name the
// invoice directly, plus item-level credits whose invoice item belongs to
// the invoice. Some returns are recorded only against a line item with no
// header invoice id, and some only at the header — summing both paths
// keeps either kind from being dropped.
//
// itemCredits maps invoice item id to the creditable amount recorded
// against that item; the caller builds it from approved/processed returns
// only.
func InvoiceReturnTotal(invoice Invoice, returns []Return, itemCredits map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero

	for _, ret := range CreditableReturns(returns) {
		if ret.InvoiceID != nil && *ret.InvoiceID == invoice.ID {
			total = total.Add(ret.Total)
		}
	}

	for _, itemID := range invoice.ItemIDs {
		if credit, ok := itemCredits[itemID]; ok {
			total = total.Add(credit)
		}
	}

	return total
}
