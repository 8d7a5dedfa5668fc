package collection

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/collection"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChequeRequest is one cheque on a collection recording request
type ChequeRequest struct {
	ChequeNumber string          `json:"cheque_number" binding:"required,min=1,max=50"`
	BankName     string          `json:"bank_name" binding:"max=200"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	ChequeDate   time.Time       `json:"cheque_date" binding:"required"`
}

// RecordCollectionRequest is the request to record a collection.
// IdempotencyKey is not part of the body; the handler fills it from the
// Idempotency-Key header when the client sends one.
type RecordCollectionRequest struct {
	CollectionNumber string          `json:"collection_number" binding:"required,min=1,max=50"`
	CustomerID       uuid.UUID       `json:"customer_id" binding:"required"`
	CashAmount       decimal.Decimal `json:"cash_amount"`
	CashDiscount     decimal.Decimal `json:"cash_discount"`
	ChequeAmount     decimal.Decimal `json:"cheque_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount" binding:"required"`
	CashDate         time.Time       `json:"cash_date" binding:"required"`
	Cheques          []ChequeRequest `json:"cheques" binding:"omitempty,dive"`
	IdempotencyKey   string          `json:"-"`
}

// AllocateRequest allocates part of a collection to one invoice
type AllocateRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// AutoAllocateRequest spreads the unallocated amount across open invoices.
// Strategy defaults to the service-wide default when empty.
type AutoAllocateRequest struct {
	Strategy string `json:"strategy" binding:"omitempty,oneof=oldest_first proportional"`
}

// ClearChequeRequest marks a cheque as honoured by the bank.
// ClearedAt defaults to now when omitted.
type ClearChequeRequest struct {
	ClearedAt *time.Time `json:"cleared_at"`
}

// ReturnChequeRequest marks a cheque as bounced.
// ReturnedAt defaults to now when omitted.
type ReturnChequeRequest struct {
	ReturnedAt *time.Time `json:"returned_at"`
	Reason     string     `json:"reason" binding:"required,max=500"`
}

// ChequeResponse is one cheque in a collection response
type ChequeResponse struct {
	ID           uuid.UUID       `json:"id"`
	ChequeNumber string          `json:"cheque_number"`
	BankName     string          `json:"bank_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	ChequeDate   time.Time       `json:"cheque_date"`
	Status       string          `json:"status"`
	ClearedAt    *time.Time      `json:"cleared_at,omitempty"`
	ReturnedAt   *time.Time      `json:"returned_at,omitempty"`
	ReturnReason string          `json:"return_reason,omitempty"`
}

// AllocationResponse is one invoice allocation in a collection response
type AllocationResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	AllocatedAt   time.Time       `json:"allocated_at"`
}

// CollectionResponse is the full collection representation
type CollectionResponse struct {
	ID                uuid.UUID            `json:"id"`
	AgencyID          uuid.UUID            `json:"agency_id"`
	CollectionNumber  string               `json:"collection_number"`
	CustomerID        uuid.UUID            `json:"customer_id"`
	CustomerName      string               `json:"customer_name"`
	TotalAmount       decimal.Decimal      `json:"total_amount"`
	CashAmount        decimal.Decimal      `json:"cash_amount"`
	CashDiscount      decimal.Decimal      `json:"cash_discount"`
	ChequeAmount      decimal.Decimal      `json:"cheque_amount"`
	AllocatedAmount   decimal.Decimal      `json:"allocated_amount"`
	UnallocatedAmount decimal.Decimal      `json:"unallocated_amount"`
	CashDate          time.Time            `json:"cash_date"`
	Status            string               `json:"status"`
	Cheques           []ChequeResponse     `json:"cheques"`
	Allocations       []AllocationResponse `json:"allocations"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	Version           int                  `json:"version"`
}

// CollectionListResponse is the compact collection representation for list views
type CollectionListResponse struct {
	ID                uuid.UUID       `json:"id"`
	CollectionNumber  string          `json:"collection_number"`
	CustomerID        uuid.UUID       `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	AllocatedAmount   decimal.Decimal `json:"allocated_amount"`
	UnallocatedAmount decimal.Decimal `json:"unallocated_amount"`
	CashDate          time.Time       `json:"cash_date"`
	Status            string          `json:"status"`
	ChequeCount       int             `json:"cheque_count"`
	CreatedAt         time.Time       `json:"created_at"`
}

// CollectionListFilter carries list query parameters
type CollectionListFilter struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending allocated completed"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PlannedAllocationResponse is one planned allocation from auto-allocate
type PlannedAllocationResponse struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// AllocationPlanResponse describes what auto-allocate did
type AllocationPlanResponse struct {
	Strategy              string                      `json:"strategy"`
	Allocations           []PlannedAllocationResponse `json:"allocations"`
	TotalAllocated        decimal.Decimal             `json:"total_allocated"`
	RemainingAmount       decimal.Decimal             `json:"remaining_amount"`
	FullyAllocated        bool                        `json:"fully_allocated"`
	InvoicesFullyPaid     int                         `json:"invoices_fully_paid"`
	InvoicesPartiallyPaid int                         `json:"invoices_partially_paid"`
}

// AutoAllocateResponse is the result of an auto-allocate run
type AutoAllocateResponse struct {
	Collection CollectionResponse     `json:"collection"`
	Plan       AllocationPlanResponse `json:"plan"`
}

// ToChequeResponse converts a domain cheque to its response DTO
func ToChequeResponse(cd *collection.ChequeDetail) ChequeResponse {
	return ChequeResponse{
		ID:           cd.ID,
		ChequeNumber: cd.ChequeNumber,
		BankName:     cd.BankName,
		Amount:       cd.Amount,
		ChequeDate:   cd.ChequeDate,
		Status:       string(cd.Status),
		ClearedAt:    cd.ClearedAt,
		ReturnedAt:   cd.ReturnedAt,
		ReturnReason: cd.ReturnReason,
	}
}

// ToAllocationResponse converts a domain allocation to its response DTO
func ToAllocationResponse(a *collection.InvoiceAllocation) AllocationResponse {
	return AllocationResponse{
		ID:            a.ID,
		InvoiceID:     a.InvoiceID,
		InvoiceNumber: a.InvoiceNumber,
		Amount:        a.Amount,
		AllocatedAt:   a.AllocatedAt,
	}
}

// ToCollectionResponse converts a domain collection to its response DTO
func ToCollectionResponse(c *collection.Collection) CollectionResponse {
	cheques := make([]ChequeResponse, len(c.Cheques))
	for i := range c.Cheques {
		cheques[i] = ToChequeResponse(&c.Cheques[i])
	}
	allocations := make([]AllocationResponse, len(c.Allocations))
	for i := range c.Allocations {
		allocations[i] = ToAllocationResponse(&c.Allocations[i])
	}

	return CollectionResponse{
		ID:                c.ID,
		AgencyID:          c.AgencyID,
		CollectionNumber:  c.CollectionNumber,
		CustomerID:        c.CustomerID,
		CustomerName:      c.CustomerName,
		TotalAmount:       c.TotalAmount,
		CashAmount:        c.CashAmount,
		CashDiscount:      c.CashDiscount,
		ChequeAmount:      c.ChequeAmount,
		AllocatedAmount:   c.AllocatedAmount,
		UnallocatedAmount: c.UnallocatedAmount,
		CashDate:          c.CashDate,
		Status:            string(c.Status),
		Cheques:           cheques,
		Allocations:       allocations,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
		Version:           c.Version,
	}
}

// ToCollectionListResponse converts a domain collection to its list item DTO
func ToCollectionListResponse(c *collection.Collection) CollectionListResponse {
	return CollectionListResponse{
		ID:                c.ID,
		CollectionNumber:  c.CollectionNumber,
		CustomerID:        c.CustomerID,
		CustomerName:      c.CustomerName,
		TotalAmount:       c.TotalAmount,
		AllocatedAmount:   c.AllocatedAmount,
		UnallocatedAmount: c.UnallocatedAmount,
		CashDate:          c.CashDate,
		Status:            string(c.Status),
		ChequeCount:       c.ChequeCount(),
		CreatedAt:         c.CreatedAt,
	}
}

// ToCollectionListResponses converts a slice of domain collections to list item DTOs
func ToCollectionListResponses(collections []collection.Collection) []CollectionListResponse {
	responses := make([]CollectionListResponse, len(collections))
	for i := range collections {
		responses[i] = ToCollectionListResponse(&collections[i])
	}
	return responses
}

// ToAllocationPlanResponse converts a domain allocation plan to its response DTO
func ToAllocationPlanResponse(strategy collection.AllocationStrategyType, plan *collection.AllocationPlan) AllocationPlanResponse {
	planned := make([]PlannedAllocationResponse, len(plan.Allocations))
	for i, pa := range plan.Allocations {
		planned[i] = PlannedAllocationResponse{
			InvoiceID:     pa.InvoiceID,
			InvoiceNumber: pa.InvoiceNumber,
			Amount:        pa.Amount,
		}
	}

	return AllocationPlanResponse{
		Strategy:              string(strategy),
		Allocations:           planned,
		TotalAllocated:        plan.TotalAllocated,
		RemainingAmount:       plan.RemainingAmount,
		FullyAllocated:        plan.FullyAllocated,
		InvoicesFullyPaid:     len(plan.InvoicesFullyPaid),
		InvoicesPartiallyPaid: len(plan.InvoicesPartiallyPaid),
	}
}
