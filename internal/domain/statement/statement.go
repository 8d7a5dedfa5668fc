package statement

import (
	"fmt"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementStatus represents the status of a statement document
type StatementStatus string

const (
	StatementStatusPending   StatementStatus = "pending"   // Requested, not rendered yet
	StatementStatusRendering StatementStatus = "rendering" // PDF generation in progress
	StatementStatusCompleted StatementStatus = "completed" // Archived in the object store
	StatementStatusFailed    StatementStatus = "failed"    // Rendering or archiving failed
)

// IsValid checks if the status is a valid StatementStatus
func (s StatementStatus) IsValid() bool {
	switch s {
	case StatementStatusPending, StatementStatusRendering, StatementStatusCompleted, StatementStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of StatementStatus
func (s StatementStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s StatementStatus) CanTransitionTo(target StatementStatus) bool {
	switch s {
	case StatementStatusPending:
		return target == StatementStatusRendering || target == StatementStatusFailed
	case StatementStatusRendering:
		return target == StatementStatusCompleted || target == StatementStatusFailed
	case StatementStatusCompleted, StatementStatusFailed:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true if the status is terminal
func (s StatementStatus) IsTerminal() bool {
	return s == StatementStatusCompleted || s == StatementStatusFailed
}

// Statement represents a customer account statement rendered to PDF and
// archived in the object store. The record tracks the document through
// rendering so a failed generation stays visible, and keeps the storage
// key that download URLs are signed from.
type Statement struct {
	shared.AgencyAggregateRoot
	CustomerID        uuid.UUID       `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	AsOfDate          time.Time       `json:"as_of_date"` // Reporting cut-off the figures were computed for
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Status            StatementStatus `json:"status"`
	StorageKey        string          `json:"storage_key,omitempty"` // Object store key of the archived PDF
	FileSizeBytes     int64           `json:"file_size_bytes"`
	PageCount         int             `json:"page_count"`
	ErrorMessage      string          `json:"error_message,omitempty"`
	GeneratedAt       *time.Time      `json:"generated_at,omitempty"`
}

// NewStatement records a statement request for a customer in pending status.
// The outstanding amount is the headline figure of the underlying summary;
// it may be negative when the customer is in credit.
func NewStatement(
	agencyID uuid.UUID,
	customerID uuid.UUID,
	customerName string,
	asOfDate time.Time,
	outstandingAmount decimal.Decimal,
) (*Statement, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if asOfDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_AS_OF_DATE", "Statement as-of date cannot be empty")
	}

	st := &Statement{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		CustomerID:          customerID,
		CustomerName:        customerName,
		AsOfDate:            asOfDate,
		OutstandingAmount:   outstandingAmount,
		Status:              StatementStatusPending,
	}

	st.AddDomainEvent(NewStatementRequestedEvent(st))

	return st, nil
}

// StartRendering marks the statement as rendering
func (s *Statement) StartRendering() error {
	if !s.Status.CanTransitionTo(StatementStatusRendering) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot start rendering statement in %s status", s.Status))
	}

	s.Status = StatementStatusRendering
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Complete marks the statement as archived under the given storage key
func (s *Statement) Complete(storageKey string, fileSizeBytes int64, pageCount int) error {
	if !s.Status.CanTransitionTo(StatementStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot complete statement in %s status", s.Status))
	}
	if storageKey == "" {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if fileSizeBytes <= 0 {
		return shared.NewDomainError("INVALID_FILE_SIZE", "File size must be positive")
	}

	now := time.Now()
	s.Status = StatementStatusCompleted
	s.StorageKey = storageKey
	s.FileSizeBytes = fileSizeBytes
	s.PageCount = pageCount
	s.ErrorMessage = ""
	s.GeneratedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewStatementArchivedEvent(s))

	return nil
}

// Fail marks the statement generation as failed
func (s *Statement) Fail(errorMessage string) error {
	if !s.Status.CanTransitionTo(StatementStatusFailed) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot fail statement in %s status", s.Status))
	}
	if errorMessage == "" {
		errorMessage = "Statement generation failed"
	}

	s.Status = StatementStatusFailed
	s.ErrorMessage = errorMessage
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStatementFailedEvent(s))

	return nil
}

// GetOutstandingMoney returns the outstanding amount as Money
func (s *Statement) GetOutstandingMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(s.OutstandingAmount)
}

// IsPending returns true if the statement has not started rendering yet
func (s *Statement) IsPending() bool {
	return s.Status == StatementStatusPending
}

// IsRendering returns true if the statement is being rendered
func (s *Statement) IsRendering() bool {
	return s.Status == StatementStatusRendering
}

// IsCompleted returns true if the statement was archived
func (s *Statement) IsCompleted() bool {
	return s.Status == StatementStatusCompleted
}

// IsFailed returns true if generation failed
func (s *Statement) IsFailed() bool {
	return s.Status == StatementStatusFailed
}

// IsTerminal returns true if the statement is in a terminal state
func (s *Statement) IsTerminal() bool {
	return s.Status.IsTerminal()
}

// HasDocument returns true if an archived PDF exists for this statement
func (s *Statement) HasDocument() bool {
	return s.Status == StatementStatusCompleted && s.StorageKey != ""
}
