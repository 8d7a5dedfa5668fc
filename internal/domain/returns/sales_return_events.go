package returns

import (
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeSalesReturn = "SalesReturn"

// Event type constants
const (
	EventTypeSalesReturnCreated   = "SalesReturnCreated"
	EventTypeSalesReturnApproved  = "SalesReturnApproved"
	EventTypeSalesReturnRejected  = "SalesReturnRejected"
	EventTypeSalesReturnProcessed = "SalesReturnProcessed"
)

// SalesReturnCreatedEvent is published when a return is recorded
type SalesReturnCreatedEvent struct {
	shared.BaseDomainEvent
	ReturnID     uuid.UUID       `json:"return_id"`
	ReturnNumber string          `json:"return_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	InvoiceID    *uuid.UUID      `json:"invoice_id,omitempty"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
}

// NewSalesReturnCreatedEvent creates a new SalesReturnCreatedEvent
func NewSalesReturnCreatedEvent(r *SalesReturn) *SalesReturnCreatedEvent {
	return &SalesReturnCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesReturnCreated, AggregateTypeSalesReturn, r.ID, r.AgencyID),
		ReturnID:        r.ID,
		ReturnNumber:    r.ReturnNumber,
		CustomerID:      r.CustomerID,
		InvoiceID:       r.InvoiceID,
		Total:           r.Total,
		ItemCount:       r.ItemCount(),
	}
}

// SalesReturnApprovedEvent is published when a return is approved
type SalesReturnApprovedEvent struct {
	shared.BaseDomainEvent
	ReturnID     uuid.UUID       `json:"return_id"`
	ReturnNumber string          `json:"return_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	Total        decimal.Decimal `json:"total"`
	ApprovedBy   uuid.UUID       `json:"approved_by"`
}

// NewSalesReturnApprovedEvent creates a new SalesReturnApprovedEvent
func NewSalesReturnApprovedEvent(r *SalesReturn) *SalesReturnApprovedEvent {
	return &SalesReturnApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesReturnApproved, AggregateTypeSalesReturn, r.ID, r.AgencyID),
		ReturnID:        r.ID,
		ReturnNumber:    r.ReturnNumber,
		CustomerID:      r.CustomerID,
		Total:           r.Total,
		ApprovedBy:      *r.ApprovedBy,
	}
}

// SalesReturnRejectedEvent is published when a return is rejected
type SalesReturnRejectedEvent struct {
	shared.BaseDomainEvent
	ReturnID        uuid.UUID `json:"return_id"`
	ReturnNumber    string    `json:"return_number"`
	CustomerID      uuid.UUID `json:"customer_id"`
	RejectedBy      uuid.UUID `json:"rejected_by"`
	RejectionReason string    `json:"rejection_reason"`
}

// NewSalesReturnRejectedEvent creates a new SalesReturnRejectedEvent
func NewSalesReturnRejectedEvent(r *SalesReturn) *SalesReturnRejectedEvent {
	return &SalesReturnRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesReturnRejected, AggregateTypeSalesReturn, r.ID, r.AgencyID),
		ReturnID:        r.ID,
		ReturnNumber:    r.ReturnNumber,
		CustomerID:      r.CustomerID,
		RejectedBy:      *r.RejectedBy,
		RejectionReason: r.RejectionReason,
	}
}

// SalesReturnProcessedEvent is published when a return is processed
type SalesReturnProcessedEvent struct {
	shared.BaseDomainEvent
	ReturnID     uuid.UUID       `json:"return_id"`
	ReturnNumber string          `json:"return_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	Total        decimal.Decimal `json:"total"`
}

// NewSalesReturnProcessedEvent creates a new SalesReturnProcessedEvent
func NewSalesReturnProcessedEvent(r *SalesReturn) *SalesReturnProcessedEvent {
	return &SalesReturnProcessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesReturnProcessed, AggregateTypeSalesReturn, r.ID, r.AgencyID),
		ReturnID:        r.ID,
		ReturnNumber:    r.ReturnNumber,
		CustomerID:      r.CustomerID,
		Total:           r.Total,
	}
}
