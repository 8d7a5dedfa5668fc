package collection

import (
	"fmt"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CollectionStatus represents the allocation state of a collection
type CollectionStatus string

const (
	CollectionStatusPending   CollectionStatus = "pending"   // Nothing allocated yet
	CollectionStatusAllocated CollectionStatus = "allocated" // Partially allocated to invoices
	CollectionStatusCompleted CollectionStatus = "completed" // Fully allocated
)

// IsValid checks if the status is a valid CollectionStatus
func (s CollectionStatus) IsValid() bool {
	switch s {
	case CollectionStatusPending, CollectionStatusAllocated, CollectionStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of CollectionStatus
func (s CollectionStatus) String() string {
	return string(s)
}

// ChequeStatus represents the lifecycle state of a cheque
type ChequeStatus string

const (
	ChequeStatusPending  ChequeStatus = "pending"  // Deposited, awaiting clearance
	ChequeStatusCleared  ChequeStatus = "cleared"  // Honoured by the bank
	ChequeStatusReturned ChequeStatus = "returned" // Bounced
)

// IsValid checks if the status is a valid ChequeStatus
func (s ChequeStatus) IsValid() bool {
	switch s {
	case ChequeStatusPending, ChequeStatusCleared, ChequeStatusReturned:
		return true
	}
	return false
}

// String returns the string representation of ChequeStatus
func (s ChequeStatus) String() string {
	return string(s)
}

// IsTerminal returns true once the bank has decided the cheque's fate
func (s ChequeStatus) IsTerminal() bool {
	return s == ChequeStatusCleared || s == ChequeStatusReturned
}

// ChequeDetail represents a post-dated cheque handed over as part of a collection
type ChequeDetail struct {
	ID           uuid.UUID       `json:"id"`
	CollectionID uuid.UUID       `json:"collection_id"`
	ChequeNumber string          `json:"cheque_number"`
	BankName     string          `json:"bank_name"`
	Amount       decimal.Decimal `json:"amount"`
	ChequeDate   time.Time       `json:"cheque_date"` // Date written on the cheque
	Status       ChequeStatus    `json:"status"`
	ClearedAt    *time.Time      `json:"cleared_at,omitempty"`
	ReturnedAt   *time.Time      `json:"returned_at,omitempty"`
	ReturnReason string          `json:"return_reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewChequeDetail creates a new cheque detail in pending status
func NewChequeDetail(collectionID uuid.UUID, chequeNumber, bankName string, amount decimal.Decimal, chequeDate time.Time) (*ChequeDetail, error) {
	if chequeNumber == "" {
		return nil, shared.NewDomainError("INVALID_CHEQUE_NUMBER", "Cheque number cannot be empty")
	}
	if len(chequeNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_CHEQUE_NUMBER", "Cheque number cannot exceed 50 characters")
	}
	if len(bankName) > 200 {
		return nil, shared.NewDomainError("INVALID_BANK_NAME", "Bank name cannot exceed 200 characters")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Cheque amount must be positive")
	}
	if chequeDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_CHEQUE_DATE", "Cheque date is required")
	}

	now := time.Now()
	return &ChequeDetail{
		ID:           uuid.New(),
		CollectionID: collectionID,
		ChequeNumber: chequeNumber,
		BankName:     bankName,
		Amount:       amount,
		ChequeDate:   chequeDate,
		Status:       ChequeStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// MarkCleared records the bank honouring the cheque
func (cd *ChequeDetail) MarkCleared(clearedAt time.Time) error {
	if cd.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cheque is already %s", cd.Status))
	}
	if clearedAt.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Cleared date is required")
	}

	cd.Status = ChequeStatusCleared
	cd.ClearedAt = &clearedAt
	cd.UpdatedAt = time.Now()

	return nil
}

// MarkReturned records the cheque bouncing
func (cd *ChequeDetail) MarkReturned(returnedAt time.Time, reason string) error {
	if cd.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cheque is already %s", cd.Status))
	}
	if returnedAt.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Returned date is required")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Return reason is required")
	}

	cd.Status = ChequeStatusReturned
	cd.ReturnedAt = &returnedAt
	cd.ReturnReason = reason
	cd.UpdatedAt = time.Now()

	return nil
}

// IsPending returns true if the cheque is awaiting clearance
func (cd *ChequeDetail) IsPending() bool {
	return cd.Status == ChequeStatusPending
}

// IsCleared returns true if the cheque was honoured
func (cd *ChequeDetail) IsCleared() bool {
	return cd.Status == ChequeStatusCleared
}

// IsReturned returns true if the cheque bounced
func (cd *ChequeDetail) IsReturned() bool {
	return cd.Status == ChequeStatusReturned
}

// GetAmountMoney returns the cheque amount as Money value object
func (cd *ChequeDetail) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(cd.Amount)
}

// InvoiceAllocation represents the allocation of collection money to an invoice
type InvoiceAllocation struct {
	ID            uuid.UUID       `json:"id"`
	CollectionID  uuid.UUID       `json:"collection_id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"` // Denormalized for display
	Amount        decimal.Decimal `json:"amount"`
	AllocatedAt   time.Time       `json:"allocated_at"`
}

// NewInvoiceAllocation creates a new invoice allocation
func NewInvoiceAllocation(collectionID, invoiceID uuid.UUID, invoiceNumber string, amount decimal.Decimal) *InvoiceAllocation {
	return &InvoiceAllocation{
		ID:            uuid.New(),
		CollectionID:  collectionID,
		InvoiceID:     invoiceID,
		InvoiceNumber: invoiceNumber,
		Amount:        amount,
		AllocatedAt:   time.Now(),
	}
}

// GetAmountMoney returns the allocation amount as Money value object
func (a *InvoiceAllocation) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(a.Amount)
}

// ChequeInput is the input for one cheque at collection recording time
type ChequeInput struct {
	ChequeNumber string
	BankName     string
	Amount       decimal.Decimal
	ChequeDate   time.Time
}

// Collection represents money collected from a customer on a field visit.
// It is the aggregate root for the collection context: the cash, discount
// and cheque components are fixed at recording time, while cheques clear or
// bounce later and the total is allocated against open invoices over time.
type Collection struct {
	shared.AgencyAggregateRoot
	CollectionNumber  string              `json:"collection_number"`
	CustomerID        uuid.UUID           `json:"customer_id"`
	CustomerName      string              `json:"customer_name"`
	TotalAmount       decimal.Decimal     `json:"total_amount"`       // cash + discount + cheques
	CashAmount        decimal.Decimal     `json:"cash_amount"`        // Physical cash handed over
	CashDiscount      decimal.Decimal     `json:"cash_discount"`      // Settlement discount granted
	ChequeAmount      decimal.Decimal     `json:"cheque_amount"`      // Sum of cheque amounts
	AllocatedAmount   decimal.Decimal     `json:"allocated_amount"`   // Amount allocated to invoices
	UnallocatedAmount decimal.Decimal     `json:"unallocated_amount"` // Remaining unallocated amount
	CashDate          time.Time           `json:"cash_date"`          // When the money was received
	Status            CollectionStatus    `json:"status"`
	Cheques           []ChequeDetail      `json:"cheques"`
	Allocations       []InvoiceAllocation `json:"allocations"`
}

// NewCollection records a new collection.
// The declared cheque amount must equal the sum of the cheque inputs, and the
// declared total must equal cash + discount + cheques; mismatches are rejected
// rather than silently recomputed.
func NewCollection(
	agencyID uuid.UUID,
	collectionNumber string,
	customerID uuid.UUID,
	customerName string,
	cashAmount, cashDiscount, chequeAmount, totalAmount decimal.Decimal,
	cashDate time.Time,
	cheques []ChequeInput,
) (*Collection, error) {
	if collectionNumber == "" {
		return nil, shared.NewDomainError("INVALID_COLLECTION_NUMBER", "Collection number cannot be empty")
	}
	if len(collectionNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_COLLECTION_NUMBER", "Collection number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if cashAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Cash amount cannot be negative")
	}
	if cashDiscount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Cash discount cannot be negative")
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	if cashDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_CASH_DATE", "Cash date is required")
	}

	c := &Collection{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		CollectionNumber:    collectionNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		TotalAmount:         totalAmount,
		CashAmount:          cashAmount,
		CashDiscount:        cashDiscount,
		ChequeAmount:        chequeAmount,
		AllocatedAmount:     decimal.Zero,
		UnallocatedAmount:   totalAmount,
		CashDate:            cashDate,
		Status:              CollectionStatusPending,
		Cheques:             make([]ChequeDetail, 0, len(cheques)),
		Allocations:         make([]InvoiceAllocation, 0),
	}

	chequeSum := decimal.Zero
	for _, input := range cheques {
		cheque, err := NewChequeDetail(c.ID, input.ChequeNumber, input.BankName, input.Amount, input.ChequeDate)
		if err != nil {
			return nil, err
		}
		c.Cheques = append(c.Cheques, *cheque)
		chequeSum = chequeSum.Add(cheque.Amount)
	}

	if !chequeSum.Equal(chequeAmount) {
		return nil, shared.ErrAmountMismatch
	}
	if !cashAmount.Add(cashDiscount).Add(chequeAmount).Equal(totalAmount) {
		return nil, shared.ErrAmountMismatch
	}

	c.AddDomainEvent(NewCollectionRecordedEvent(c))

	return c, nil
}

// AllocateToInvoice allocates part of the collection to an invoice.
// The sum of allocations can never exceed the collection total; whether the
// amount fits the invoice's own balance is the caller's concern.
func (c *Collection) AllocateToInvoice(invoiceID uuid.UUID, invoiceNumber string, amount decimal.Decimal) (*InvoiceAllocation, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	if amount.GreaterThan(c.UnallocatedAmount) {
		return nil, shared.ErrOverAllocated
	}

	for _, alloc := range c.Allocations {
		if alloc.InvoiceID == invoiceID {
			return nil, shared.NewDomainError("ALREADY_ALLOCATED", fmt.Sprintf("Already allocated to invoice %s", invoiceNumber))
		}
	}

	allocation := NewInvoiceAllocation(c.ID, invoiceID, invoiceNumber, amount)
	c.Allocations = append(c.Allocations, *allocation)

	c.AllocatedAmount = c.AllocatedAmount.Add(amount)
	c.UnallocatedAmount = c.TotalAmount.Sub(c.AllocatedAmount)

	if c.UnallocatedAmount.IsZero() {
		c.Status = CollectionStatusCompleted
	} else {
		c.Status = CollectionStatusAllocated
	}

	// Version is advanced by the repository's locked save, not here.
	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewCollectionAllocatedEvent(c, allocation))

	return allocation, nil
}

// MarkChequeCleared records the bank honouring one of the collection's cheques
func (c *Collection) MarkChequeCleared(chequeID uuid.UUID, clearedAt time.Time) error {
	cheque := c.GetCheque(chequeID)
	if cheque == nil {
		return shared.NewDomainError("CHEQUE_NOT_FOUND", "Cheque not found in collection")
	}

	if err := cheque.MarkCleared(clearedAt); err != nil {
		return err
	}

	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewChequeClearedEvent(c, cheque))

	return nil
}

// MarkChequeReturned records one of the collection's cheques bouncing
func (c *Collection) MarkChequeReturned(chequeID uuid.UUID, returnedAt time.Time, reason string) error {
	cheque := c.GetCheque(chequeID)
	if cheque == nil {
		return shared.NewDomainError("CHEQUE_NOT_FOUND", "Cheque not found in collection")
	}

	if err := cheque.MarkReturned(returnedAt, reason); err != nil {
		return err
	}

	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewChequeReturnedEvent(c, cheque))

	return nil
}

// Helper methods

// GetCheque returns a cheque by its ID
func (c *Collection) GetCheque(chequeID uuid.UUID) *ChequeDetail {
	for i := range c.Cheques {
		if c.Cheques[i].ID == chequeID {
			return &c.Cheques[i]
		}
	}
	return nil
}

// GetAllocationByInvoiceID returns the allocation for a specific invoice
func (c *Collection) GetAllocationByInvoiceID(invoiceID uuid.UUID) *InvoiceAllocation {
	for i := range c.Allocations {
		if c.Allocations[i].InvoiceID == invoiceID {
			return &c.Allocations[i]
		}
	}
	return nil
}

// GetTotalAmountMoney returns the total amount as Money
func (c *Collection) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(c.TotalAmount)
}

// GetCashAmountMoney returns the cash amount as Money
func (c *Collection) GetCashAmountMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(c.CashAmount)
}

// GetChequeAmountMoney returns the cheque amount as Money
func (c *Collection) GetChequeAmountMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(c.ChequeAmount)
}

// IsPending returns true if nothing has been allocated yet
func (c *Collection) IsPending() bool {
	return c.Status == CollectionStatusPending
}

// IsAllocated returns true if partially allocated
func (c *Collection) IsAllocated() bool {
	return c.Status == CollectionStatusAllocated
}

// IsCompleted returns true if fully allocated
func (c *Collection) IsCompleted() bool {
	return c.Status == CollectionStatusCompleted
}

// IsFullyAllocated returns true if all money has been allocated
func (c *Collection) IsFullyAllocated() bool {
	return c.UnallocatedAmount.IsZero()
}

// AllocationCount returns the number of allocations
func (c *Collection) AllocationCount() int {
	return len(c.Allocations)
}

// ChequeCount returns the number of cheques
func (c *Collection) ChequeCount() int {
	return len(c.Cheques)
}

// PendingChequeAmount returns the sum of cheques still awaiting clearance
func (c *Collection) PendingChequeAmount() decimal.Decimal {
	total := decimal.Zero
	for _, cheque := range c.Cheques {
		if cheque.IsPending() {
			total = total.Add(cheque.Amount)
		}
	}
	return total
}

// ReturnedChequeAmount returns the sum of bounced cheques
func (c *Collection) ReturnedChequeAmount() decimal.Decimal {
	total := decimal.Zero
	for _, cheque := range c.Cheques {
		if cheque.IsReturned() {
			total = total.Add(cheque.Amount)
		}
	}
	return total
}

// AllocatedPercentage returns the percentage of total that has been allocated (0-100)
func (c *Collection) AllocatedPercentage() decimal.Decimal {
	if c.TotalAmount.IsZero() {
		return decimal.NewFromInt(100)
	}
	return c.AllocatedAmount.Div(c.TotalAmount).Mul(decimal.NewFromInt(100)).Round(2)
}
