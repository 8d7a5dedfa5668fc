package reconciliation

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChequeClassification partitions a set of cheques against a reference
// date. Every input cheque lands in exactly one partition.
type ChequeClassification struct {
	Realized   []ChequeDetail `json:"realized"`
	Unrealized []ChequeDetail `json:"unrealized"`
	Returned   []ChequeDetail `json:"returned"`
}

// ClassifyCheques partitions cheques into realized, unrealized, and
// returned buckets. The returned status wins over any date: a returned
// cheque is never realized, no matter how old it is. For the rest the
// cheque date decides — on or before the reference date is realized,
// after it is unrealized. A cleared cheque with a future cheque date is
// still unrealized; cleared only matters for display.
func ClassifyCheques(cheques []ChequeDetail, referenceDate time.Time) ChequeClassification {
	result := ChequeClassification{
		Realized:   make([]ChequeDetail, 0, len(cheques)),
		Unrealized: make([]ChequeDetail, 0),
		Returned:   make([]ChequeDetail, 0),
	}

	for _, cheque := range cheques {
		switch {
		case cheque.Status.IsReturned():
			result.Returned = append(result.Returned, cheque)
		case !cheque.ChequeDate.After(referenceDate):
			result.Realized = append(result.Realized, cheque)
		default:
			result.Unrealized = append(result.Unrealized, cheque)
		}
	}

	return result
}

// RealizedAmount returns the sum of realized cheque amounts.
func (c ChequeClassification) RealizedAmount() decimal.Decimal {
	return sumChequeAmounts(c.Realized)
}

// UnrealizedAmount returns the sum of unrealized cheque amounts.
func (c ChequeClassification) UnrealizedAmount() decimal.Decimal {
	return sumChequeAmounts(c.Unrealized)
}

// ReturnedAmount returns the sum of returned cheque amounts.
func (c ChequeClassification) ReturnedAmount() decimal.Decimal {
	return sumChequeAmounts(c.Returned)
}

// ReturnedCount returns the number of returned cheques.
func (c ChequeClassification) ReturnedCount() int {
	return len(c.Returned)
}

func sumChequeAmounts(cheques []ChequeDetail) decimal.Decimal {
	sum := decimal.Zero
	for _, cheque := range cheques {
		sum = sum.Add(cheque.Amount)
	}
	return sum
}

// EndOfDay normalizes a timestamp to the last nanosecond of its calendar
// day. Callers apply it to the reference date before classification so a
// cheque dated any time on that day counts as realized.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
