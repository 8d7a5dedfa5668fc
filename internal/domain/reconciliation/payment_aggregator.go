package reconciliation

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTotals is the aggregate of all payment components across a set of
// collections, split by realization. Returned cheques are carried apart:
// their amount belongs in no collected bucket and is instead re-added to
// outstanding by the summary builder.
type PaymentTotals struct {
	TotalCashCollected    decimal.Decimal `json:"totalCashCollected"`
	TotalCashDiscounts    decimal.Decimal `json:"totalCashDiscounts"`
	TotalRealizedCheque   decimal.Decimal `json:"totalRealizedCheque"`
	TotalUnrealizedCheque decimal.Decimal `json:"totalUnrealizedCheque"`
	ReturnedChequeAmount  decimal.Decimal `json:"returnedChequeAmount"`
	ReturnedChequeCount   int             `json:"returnedChequeCount"`
}

// AggregatePayments folds a set of collections into payment totals. Cash
// and cash discount always count as realized regardless of the cash date;
// each collection's cheques are classified against the reference date and
// accumulated into the matching bucket.
func AggregatePayments(collections []Collection, referenceDate time.Time) PaymentTotals {
	totals := PaymentTotals{
		TotalCashCollected:    decimal.Zero,
		TotalCashDiscounts:    decimal.Zero,
		TotalRealizedCheque:   decimal.Zero,
		TotalUnrealizedCheque: decimal.Zero,
		ReturnedChequeAmount:  decimal.Zero,
	}

	for _, collection := range collections {
		totals.TotalCashCollected = totals.TotalCashCollected.Add(collection.CashAmount)
		totals.TotalCashDiscounts = totals.TotalCashDiscounts.Add(collection.CashDiscount)

		classified := ClassifyCheques(collection.Cheques, referenceDate)
		totals.TotalRealizedCheque = totals.TotalRealizedCheque.Add(classified.RealizedAmount())
		totals.TotalUnrealizedCheque = totals.TotalUnrealizedCheque.Add(classified.UnrealizedAmount())
		totals.ReturnedChequeAmount = totals.ReturnedChequeAmount.Add(classified.ReturnedAmount())
		totals.ReturnedChequeCount += classified.ReturnedCount()
	}

	return totals
}

// TotalRealizedPayments is everything counted as actually collected as of
// the reference date: cash, cash discounts, and realized cheques.
func (t PaymentTotals) TotalRealizedPayments() decimal.Decimal {
	return t.TotalCashCollected.Add(t.TotalCashDiscounts).Add(t.TotalRealizedCheque)
}

// TotalAllPayments additionally counts future-dated cheques, for the
// outstanding-with-unrealized policy.
func (t PaymentTotals) TotalAllPayments() decimal.Decimal {
	return t.TotalRealizedPayments().Add(t.TotalUnrealizedCheque)
}
