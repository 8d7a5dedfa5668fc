package statement

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeStatement = "Statement"

// Event type constants
const (
	EventTypeStatementRequested = "StatementRequested"
	EventTypeStatementArchived  = "StatementArchived"
	EventTypeStatementFailed    = "StatementFailed"
)

// StatementRequestedEvent is published when a statement is requested
type StatementRequestedEvent struct {
	shared.BaseDomainEvent
	StatementID       uuid.UUID       `json:"statement_id"`
	CustomerID        uuid.UUID       `json:"customer_id"`
	AsOfDate          time.Time       `json:"as_of_date"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// NewStatementRequestedEvent creates a new StatementRequestedEvent
func NewStatementRequestedEvent(s *Statement) *StatementRequestedEvent {
	return &StatementRequestedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeStatementRequested, AggregateTypeStatement, s.ID, s.AgencyID),
		StatementID:       s.ID,
		CustomerID:        s.CustomerID,
		AsOfDate:          s.AsOfDate,
		OutstandingAmount: s.OutstandingAmount,
	}
}

// StatementArchivedEvent is published when a statement PDF lands in the object store
type StatementArchivedEvent struct {
	shared.BaseDomainEvent
	StatementID   uuid.UUID `json:"statement_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	StorageKey    string    `json:"storage_key"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	PageCount     int       `json:"page_count"`
}

// NewStatementArchivedEvent creates a new StatementArchivedEvent
func NewStatementArchivedEvent(s *Statement) *StatementArchivedEvent {
	return &StatementArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStatementArchived, AggregateTypeStatement, s.ID, s.AgencyID),
		StatementID:     s.ID,
		CustomerID:      s.CustomerID,
		StorageKey:      s.StorageKey,
		FileSizeBytes:   s.FileSizeBytes,
		PageCount:       s.PageCount,
	}
}

// StatementFailedEvent is published when statement generation fails
type StatementFailedEvent struct {
	shared.BaseDomainEvent
	StatementID  uuid.UUID `json:"statement_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	ErrorMessage string    `json:"error_message"`
}

// NewStatementFailedEvent creates a new StatementFailedEvent
func NewStatementFailedEvent(s *Statement) *StatementFailedEvent {
	return &StatementFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStatementFailed, AggregateTypeStatement, s.ID, s.AgencyID),
		StatementID:     s.ID,
		CustomerID:      s.CustomerID,
		ErrorMessage:    s.ErrorMessage,
	}
}
