package returns

import (
	"fmt"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnStatus represents the status of a sales return
type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "pending"   // Waiting for approval
	ReturnStatusApproved  ReturnStatus = "approved"  // Approved, credit counts against the customer
	ReturnStatusRejected  ReturnStatus = "rejected"  // Rejected by approver
	ReturnStatusProcessed ReturnStatus = "processed" // Goods taken back, credit settled
)

// IsValid checks if the status is a valid ReturnStatus
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected, ReturnStatusProcessed:
		return true
	}
	return false
}

// String returns the string representation of ReturnStatus
func (s ReturnStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	switch s {
	case ReturnStatusPending:
		return target == ReturnStatusApproved || target == ReturnStatusRejected
	case ReturnStatusApproved:
		return target == ReturnStatusProcessed
	case ReturnStatusRejected, ReturnStatusProcessed:
		return false // Terminal states
	}
	return false
}

// IsCreditable returns true if the return counts against the customer's balance
func (s ReturnStatus) IsCreditable() bool {
	return s == ReturnStatusApproved || s == ReturnStatusProcessed
}

// SalesReturnItem represents a credited line in a sales return,
// pointing back at the invoice line the goods came from
type SalesReturnItem struct {
	ID            uuid.UUID       `json:"id"`
	ReturnID      uuid.UUID       `json:"return_id"`
	InvoiceItemID uuid.UUID       `json:"invoice_item_id"` // Original invoice line
	Quantity      int             `json:"quantity"`        // Pieces returned
	Amount        decimal.Decimal `json:"amount"`          // Credit for this line
	CreatedAt     time.Time       `json:"created_at"`
}

// NewSalesReturnItem creates a new sales return item
func NewSalesReturnItem(returnID, invoiceItemID uuid.UUID, quantity int, amount decimal.Decimal) (*SalesReturnItem, error) {
	if invoiceItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE_ITEM", "Invoice item ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Return amount must be positive")
	}

	return &SalesReturnItem{
		ID:            uuid.New(),
		ReturnID:      returnID,
		InvoiceItemID: invoiceItemID,
		Quantity:      quantity,
		Amount:        amount,
		CreatedAt:     time.Now(),
	}, nil
}

// GetAmountMoney returns the credit amount as Money value object
func (i *SalesReturnItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(i.Amount)
}

// ReturnItemInput is the input for one return line at creation time
type ReturnItemInput struct {
	InvoiceItemID uuid.UUID
	Quantity      int
	Amount        decimal.Decimal
}

// SalesReturn represents goods coming back from a customer.
// A return may reference the invoice it reverses, itemize the invoice lines
// being credited, or both; its content is fixed at creation and only the
// approval state moves afterwards.
type SalesReturn struct {
	shared.AgencyAggregateRoot
	ReturnNumber    string            `json:"return_number"`
	CustomerID      uuid.UUID         `json:"customer_id"`
	CustomerName    string            `json:"customer_name"`
	InvoiceID       *uuid.UUID        `json:"invoice_id,omitempty"` // Invoice being reversed, if known
	InvoiceNumber   string            `json:"invoice_number,omitempty"`
	Items           []SalesReturnItem `json:"items"`
	Total           decimal.Decimal   `json:"total"`
	Reason          string            `json:"reason"`
	Status          ReturnStatus      `json:"status"`
	ApprovedAt      *time.Time        `json:"approved_at,omitempty"`
	ApprovedBy      *uuid.UUID        `json:"approved_by,omitempty"`
	ApprovalNote    string            `json:"approval_note,omitempty"`
	RejectedAt      *time.Time        `json:"rejected_at,omitempty"`
	RejectedBy      *uuid.UUID        `json:"rejected_by,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	ProcessedAt     *time.Time        `json:"processed_at,omitempty"`
}

// NewSalesReturn records a new sales return in pending status.
// When lines are itemized the declared total must equal their sum; a
// header-only return just needs a positive total.
func NewSalesReturn(
	agencyID uuid.UUID,
	returnNumber string,
	customerID uuid.UUID,
	customerName string,
	invoiceID *uuid.UUID,
	invoiceNumber string,
	items []ReturnItemInput,
	total decimal.Decimal,
	reason string,
) (*SalesReturn, error) {
	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot be empty")
	}
	if len(returnNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if invoiceID != nil && *invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be the nil UUID")
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Return total must be positive")
	}

	sr := &SalesReturn{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		ReturnNumber:        returnNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		InvoiceID:           invoiceID,
		InvoiceNumber:       invoiceNumber,
		Items:               make([]SalesReturnItem, 0, len(items)),
		Reason:              reason,
		Status:              ReturnStatusPending,
	}

	sum := decimal.Zero
	for _, input := range items {
		item, err := NewSalesReturnItem(sr.ID, input.InvoiceItemID, input.Quantity, input.Amount)
		if err != nil {
			return nil, err
		}
		sr.Items = append(sr.Items, *item)
		sum = sum.Add(item.Amount)
	}

	if len(sr.Items) > 0 && !sum.Equal(total) {
		return nil, shared.ErrAmountMismatch
	}
	sr.Total = total

	sr.AddDomainEvent(NewSalesReturnCreatedEvent(sr))

	return sr, nil
}

// Approve approves the return, making its credit count against the customer
func (r *SalesReturn) Approve(approverID uuid.UUID, note string) error {
	if !r.Status.CanTransitionTo(ReturnStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve return in %s status", r.Status))
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}

	now := time.Now()
	r.Status = ReturnStatusApproved
	r.ApprovedAt = &now
	r.ApprovedBy = &approverID
	r.ApprovalNote = note
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewSalesReturnApprovedEvent(r))

	return nil
}

// Reject rejects the return
func (r *SalesReturn) Reject(rejecterID uuid.UUID, reason string) error {
	if !r.Status.CanTransitionTo(ReturnStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject return in %s status", r.Status))
	}
	if rejecterID == uuid.Nil {
		return shared.NewDomainError("INVALID_REJECTER", "Rejecter ID cannot be empty")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}

	now := time.Now()
	r.Status = ReturnStatusRejected
	r.RejectedAt = &now
	r.RejectedBy = &rejecterID
	r.RejectionReason = reason
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewSalesReturnRejectedEvent(r))

	return nil
}

// Process marks the return as processed once the goods are back in stock
func (r *SalesReturn) Process() error {
	if !r.Status.CanTransitionTo(ReturnStatusProcessed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot process return in %s status", r.Status))
	}

	now := time.Now()
	r.Status = ReturnStatusProcessed
	r.ProcessedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewSalesReturnProcessedEvent(r))

	return nil
}

// GetTotalMoney returns the return total as Money
func (r *SalesReturn) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(r.Total)
}

// ItemCount returns the number of credited lines
func (r *SalesReturn) ItemCount() int {
	return len(r.Items)
}

// TotalQuantity returns the total pieces coming back
func (r *SalesReturn) TotalQuantity() int {
	total := 0
	for _, item := range r.Items {
		total += item.Quantity
	}
	return total
}

// HasInvoice returns true if the return references a specific invoice
func (r *SalesReturn) HasInvoice() bool {
	return r.InvoiceID != nil
}

// IsPending returns true if the return awaits approval
func (r *SalesReturn) IsPending() bool {
	return r.Status == ReturnStatusPending
}

// IsApproved returns true if the return is approved
func (r *SalesReturn) IsApproved() bool {
	return r.Status == ReturnStatusApproved
}

// IsRejected returns true if the return is rejected
func (r *SalesReturn) IsRejected() bool {
	return r.Status == ReturnStatusRejected
}

// IsProcessed returns true if the return is processed
func (r *SalesReturn) IsProcessed() bool {
	return r.Status == ReturnStatusProcessed
}

// IsTerminal returns true if the return is in a terminal state
func (r *SalesReturn) IsTerminal() bool {
	return r.IsRejected() || r.IsProcessed()
}

// IsCreditable returns true if the return counts against the customer
func (r *SalesReturn) IsCreditable() bool {
	return r.Status.IsCreditable()
}

// GetItem returns a credited line by its ID
func (r *SalesReturn) GetItem(itemID uuid.UUID) *SalesReturnItem {
	for idx := range r.Items {
		if r.Items[idx].ID == itemID {
			return &r.Items[idx]
		}
	}
	return nil
}
