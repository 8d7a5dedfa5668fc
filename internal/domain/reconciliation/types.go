// Package reconciliation computes customer receivable summaries from a
// consistent snapshot of invoices, collections (cash and cheques), invoice
// allocations, and sales return credits.
//
// The package is deliberately pure: every function is a deterministic
// mapping from snapshot rows plus an explicit reference date to derived
// figures. No clock, store, or goroutine is consulted internally; callers
// fetch all rows first and pass them in. Missing or zero-valued amounts are
// treated as zero rather than errors, and integrity violations (such as
// allocations exceeding an invoice total) are surfaced raw instead of being
// clamped, so callers can flag them.
package reconciliation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChequeStatus is the banking state of a cheque within a collection.
type ChequeStatus string

const (
	ChequeStatusPending  ChequeStatus = "pending"
	ChequeStatusCleared  ChequeStatus = "cleared"
	ChequeStatusReturned ChequeStatus = "returned"
)

// String returns the string representation of the cheque status
func (s ChequeStatus) String() string {
	return string(s)
}

// IsReturned reports whether the cheque bounced. Returned cheques are
// excluded from every collected total and re-added to outstanding.
func (s ChequeStatus) IsReturned() bool {
	return s == ChequeStatusReturned
}

// ReturnStatus is the approval state of a sales return.
type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "pending"
	ReturnStatusApproved  ReturnStatus = "approved"
	ReturnStatusRejected  ReturnStatus = "rejected"
	ReturnStatusProcessed ReturnStatus = "processed"
)

// String returns the string representation of the return status
func (s ReturnStatus) String() string {
	return string(s)
}

// IsCreditable reports whether the return counts as a credit against
// outstanding. Only approved and processed returns do.
func (s ReturnStatus) IsCreditable() bool {
	return s == ReturnStatusApproved || s == ReturnStatusProcessed
}

// InvoiceStatus is the derived payment state of an invoice, computed from
// collected and outstanding amounts. It is never stored.
type InvoiceStatus string

const (
	InvoiceStatusPending       InvoiceStatus = "pending"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
)

// String returns the string representation of the invoice status
func (s InvoiceStatus) String() string {
	return string(s)
}

// CustomerRef identifies the customer a summary is computed for.
type CustomerRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Invoice is the snapshot view of a billed invoice. Totals are immutable
// once the invoice exists; ItemIDs carries the invoice's line-item ids so
// item-level return credits can be joined back to their parent invoice.
type Invoice struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerID    uuid.UUID       `json:"customerId"`
	Total         decimal.Decimal `json:"total"`
	ItemIDs       []uuid.UUID     `json:"itemIds,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ChequeDetail is the snapshot view of a single cheque recorded on a
// collection. ChequeDate is the date the cheque becomes presentable; a
// cheque is realized only when it has not been returned and its date is on
// or before the reference date.
type ChequeDetail struct {
	ID           uuid.UUID       `json:"id"`
	ChequeNumber string          `json:"chequeNumber"`
	BankName     string          `json:"bankName"`
	Amount       decimal.Decimal `json:"amount"`
	ChequeDate   time.Time       `json:"chequeDate"`
	Status       ChequeStatus    `json:"status"`
	ClearedAt    *time.Time      `json:"clearedAt,omitempty"`
	ReturnedAt   *time.Time      `json:"returnedAt,omitempty"`
	ReturnReason string          `json:"returnReason,omitempty"`
}

// Collection is the snapshot view of one payment event: cash, cash
// discount, and zero or more cheques collected from a customer on a date.
type Collection struct {
	ID               uuid.UUID       `json:"id"`
	CollectionNumber string          `json:"collectionNumber"`
	CustomerID       uuid.UUID       `json:"customerId"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	CashAmount       decimal.Decimal `json:"cashAmount"`
	CashDiscount     decimal.Decimal `json:"cashDiscount"`
	ChequeAmount     decimal.Decimal `json:"chequeAmount"`
	CashDate         time.Time       `json:"cashDate"`
	Cheques          []ChequeDetail  `json:"cheques,omitempty"`
}

// Allocation assigns a portion of a collection's payment to one invoice.
type Allocation struct {
	InvoiceID       uuid.UUID       `json:"invoiceId"`
	CollectionID    uuid.UUID       `json:"collectionId"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
}

// Return is the snapshot view of a sales return header. InvoiceID is set
// for header-level returns; item-level credits arrive separately keyed by
// invoice item id (see SummaryInput.ReturnItemsByInvoiceItem).
type Return struct {
	ID           uuid.UUID       `json:"id"`
	ReturnNumber string          `json:"returnNumber"`
	CustomerID   uuid.UUID       `json:"customerId"`
	InvoiceID    *uuid.UUID      `json:"invoiceId,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Status       ReturnStatus    `json:"status"`
}
