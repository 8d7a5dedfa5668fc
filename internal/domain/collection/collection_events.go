package collection

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeCollection = "Collection"

// Event type constants
const (
	EventTypeCollectionRecorded  = "CollectionRecorded"
	EventTypeCollectionAllocated = "CollectionAllocated"
	EventTypeChequeCleared       = "CollectionChequeCleared"
	EventTypeChequeReturned      = "CollectionChequeReturned"
)

// CollectionRecordedEvent is published when a collection is recorded
type CollectionRecordedEvent struct {
	shared.BaseDomainEvent
	CollectionID     uuid.UUID       `json:"collection_id"`
	CollectionNumber string          `json:"collection_number"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	CashAmount       decimal.Decimal `json:"cash_amount"`
	CashDiscount     decimal.Decimal `json:"cash_discount"`
	ChequeAmount     decimal.Decimal `json:"cheque_amount"`
	ChequeCount      int             `json:"cheque_count"`
}

// NewCollectionRecordedEvent creates a new CollectionRecordedEvent
func NewCollectionRecordedEvent(c *Collection) *CollectionRecordedEvent {
	return &CollectionRecordedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCollectionRecorded, AggregateTypeCollection, c.ID, c.AgencyID),
		CollectionID:     c.ID,
		CollectionNumber: c.CollectionNumber,
		CustomerID:       c.CustomerID,
		TotalAmount:      c.TotalAmount,
		CashAmount:       c.CashAmount,
		CashDiscount:     c.CashDiscount,
		ChequeAmount:     c.ChequeAmount,
		ChequeCount:      c.ChequeCount(),
	}
}

// CollectionAllocatedEvent is published when collection money is allocated to an invoice
type CollectionAllocatedEvent struct {
	shared.BaseDomainEvent
	CollectionID      uuid.UUID       `json:"collection_id"`
	CollectionNumber  string          `json:"collection_number"`
	InvoiceID         uuid.UUID       `json:"invoice_id"`
	InvoiceNumber     string          `json:"invoice_number"`
	Amount            decimal.Decimal `json:"amount"`
	UnallocatedAmount decimal.Decimal `json:"unallocated_amount"`
}

// NewCollectionAllocatedEvent creates a new CollectionAllocatedEvent
func NewCollectionAllocatedEvent(c *Collection, allocation *InvoiceAllocation) *CollectionAllocatedEvent {
	return &CollectionAllocatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeCollectionAllocated, AggregateTypeCollection, c.ID, c.AgencyID),
		CollectionID:      c.ID,
		CollectionNumber:  c.CollectionNumber,
		InvoiceID:         allocation.InvoiceID,
		InvoiceNumber:     allocation.InvoiceNumber,
		Amount:            allocation.Amount,
		UnallocatedAmount: c.UnallocatedAmount,
	}
}

// ChequeClearedEvent is published when a cheque is honoured by the bank
type ChequeClearedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID       `json:"collection_id"`
	ChequeID     uuid.UUID       `json:"cheque_id"`
	ChequeNumber string          `json:"cheque_number"`
	Amount       decimal.Decimal `json:"amount"`
	ClearedAt    time.Time       `json:"cleared_at"`
}

// NewChequeClearedEvent creates a new ChequeClearedEvent
func NewChequeClearedEvent(c *Collection, cheque *ChequeDetail) *ChequeClearedEvent {
	return &ChequeClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChequeCleared, AggregateTypeCollection, c.ID, c.AgencyID),
		CollectionID:    c.ID,
		ChequeID:        cheque.ID,
		ChequeNumber:    cheque.ChequeNumber,
		Amount:          cheque.Amount,
		ClearedAt:       *cheque.ClearedAt,
	}
}

// ChequeReturnedEvent is published when a cheque bounces
type ChequeReturnedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID       `json:"collection_id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	ChequeID     uuid.UUID       `json:"cheque_id"`
	ChequeNumber string          `json:"cheque_number"`
	Amount       decimal.Decimal `json:"amount"`
	ReturnedAt   time.Time       `json:"returned_at"`
	ReturnReason string          `json:"return_reason"`
}

// NewChequeReturnedEvent creates a new ChequeReturnedEvent
func NewChequeReturnedEvent(c *Collection, cheque *ChequeDetail) *ChequeReturnedEvent {
	return &ChequeReturnedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChequeReturned, AggregateTypeCollection, c.ID, c.AgencyID),
		CollectionID:    c.ID,
		CustomerID:      c.CustomerID,
		ChequeID:        cheque.ID,
		ChequeNumber:    cheque.ChequeNumber,
		Amount:          cheque.Amount,
		ReturnedAt:      *cheque.ReturnedAt,
		ReturnReason:    cheque.ReturnReason,
	}
}
