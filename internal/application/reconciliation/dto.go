package reconciliation

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/reconciliation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SummaryRequest carries the optional reference date for a summary
// computation. AsOf defaults to today; either way the date is widened to
// end-of-day so cheques dated any time that day count as realized.
type SummaryRequest struct {
	AsOf *time.Time `form:"as_of" time_format:"2006-01-02"`
}

// PaymentTotalsResponse represents aggregated payment figures in API responses
type PaymentTotalsResponse struct {
	TotalCashCollected    decimal.Decimal `json:"total_cash_collected"`
	TotalCashDiscounts    decimal.Decimal `json:"total_cash_discounts"`
	TotalRealizedCheque   decimal.Decimal `json:"total_realized_cheque"`
	TotalUnrealizedCheque decimal.Decimal `json:"total_unrealized_cheque"`
	ReturnedChequeAmount  decimal.Decimal `json:"returned_cheque_amount"`
	ReturnedChequeCount   int             `json:"returned_cheque_count"`
}

// InvoiceSummaryResponse represents one invoice's payment state in API responses
type InvoiceSummaryResponse struct {
	InvoiceID         uuid.UUID       `json:"invoice_id"`
	InvoiceNumber     string          `json:"invoice_number"`
	Total             decimal.Decimal `json:"total"`
	CollectedAmount   decimal.Decimal `json:"collected_amount"`
	ReturnAmount      decimal.Decimal `json:"return_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Status            string          `json:"status"`
	Degraded          bool            `json:"degraded,omitempty"`
}

// CustomerSummaryResponse represents the full receivable picture for one
// customer in API responses
type CustomerSummaryResponse struct {
	CustomerID                uuid.UUID                `json:"customer_id"`
	CustomerName              string                   `json:"customer_name"`
	ReferenceDate             time.Time                `json:"reference_date"`
	TotalInvoiced             decimal.Decimal          `json:"total_invoiced"`
	TotalCollected            decimal.Decimal          `json:"total_collected"`
	UnrealizedPayments        decimal.Decimal          `json:"unrealized_payments"`
	OutstandingAmount         decimal.Decimal          `json:"outstanding_amount"`
	OutstandingWithUnrealized decimal.Decimal          `json:"outstanding_with_unrealized"`
	ReturnedChequesAmount     decimal.Decimal          `json:"returned_cheques_amount"`
	ReturnedChequesCount      int                      `json:"returned_cheques_count"`
	TotalReturns              decimal.Decimal          `json:"total_returns"`
	Payments                  PaymentTotalsResponse    `json:"payments"`
	Degraded                  bool                     `json:"degraded,omitempty"`
	Invoices                  []InvoiceSummaryResponse `json:"invoices"`
}

// ToCustomerSummaryResponse converts a computed summary to its response DTO
func ToCustomerSummaryResponse(summary reconciliation.CustomerInvoiceSummary) CustomerSummaryResponse {
	invoices := make([]InvoiceSummaryResponse, len(summary.Invoices))
	for i, inv := range summary.Invoices {
		invoices[i] = InvoiceSummaryResponse{
			InvoiceID:         inv.InvoiceID,
			InvoiceNumber:     inv.InvoiceNumber,
			Total:             inv.Total,
			CollectedAmount:   inv.CollectedAmount,
			ReturnAmount:      inv.ReturnAmount,
			OutstandingAmount: inv.OutstandingAmount,
			Status:            inv.Status.String(),
			Degraded:          inv.Degraded,
		}
	}

	return CustomerSummaryResponse{
		CustomerID:                summary.CustomerID,
		CustomerName:              summary.CustomerName,
		ReferenceDate:             summary.ReferenceDate,
		TotalInvoiced:             summary.TotalInvoiced,
		TotalCollected:            summary.TotalCollected,
		UnrealizedPayments:        summary.UnrealizedPayments,
		OutstandingAmount:         summary.OutstandingAmount,
		OutstandingWithUnrealized: summary.OutstandingWithUnrealized,
		ReturnedChequesAmount:     summary.ReturnedChequesAmount,
		ReturnedChequesCount:      summary.ReturnedChequesCount,
		TotalReturns:              summary.TotalReturns,
		Payments: PaymentTotalsResponse{
			TotalCashCollected:    summary.Payments.TotalCashCollected,
			TotalCashDiscounts:    summary.Payments.TotalCashDiscounts,
			TotalRealizedCheque:   summary.Payments.TotalRealizedCheque,
			TotalUnrealizedCheque: summary.Payments.TotalUnrealizedCheque,
			ReturnedChequeAmount:  summary.Payments.ReturnedChequeAmount,
			ReturnedChequeCount:   summary.Payments.ReturnedChequeCount,
		},
		Degraded: summary.Degraded,
		Invoices: invoices,
	}
}
