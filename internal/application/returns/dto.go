package returns

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/returns"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnItemRequest is one item on a return creation request.
// InvoiceItemID ties the returned goods back to the invoiced line.
type ReturnItemRequest struct {
	InvoiceItemID uuid.UUID       `json:"invoice_item_id" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// CreateReturnRequest is the request to record a sales return.
// InvoiceID and Items are optional: a return without them is a
// customer-level credit, one with them is an invoice-level return.
type CreateReturnRequest struct {
	ReturnNumber string              `json:"return_number" binding:"required,min=1,max=50"`
	CustomerID   uuid.UUID           `json:"customer_id" binding:"required"`
	InvoiceID    *uuid.UUID          `json:"invoice_id"`
	Items        []ReturnItemRequest `json:"items" binding:"omitempty,dive"`
	Total        decimal.Decimal     `json:"total" binding:"required"`
	Reason       string              `json:"reason" binding:"max=500"`
}

// ApproveReturnRequest approves a pending return
type ApproveReturnRequest struct {
	ApprovedBy uuid.UUID `json:"approved_by" binding:"required"`
	Note       string    `json:"note" binding:"max=500"`
}

// RejectReturnRequest rejects a pending return
type RejectReturnRequest struct {
	RejectedBy uuid.UUID `json:"rejected_by" binding:"required"`
	Reason     string    `json:"reason" binding:"required,max=500"`
}

// ReturnItemResponse is one item in a return response
type ReturnItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceItemID uuid.UUID       `json:"invoice_item_id"`
	Quantity      int             `json:"quantity"`
	Amount        decimal.Decimal `json:"amount"`
}

// ReturnResponse is the full sales return representation
type ReturnResponse struct {
	ID              uuid.UUID            `json:"id"`
	AgencyID        uuid.UUID            `json:"agency_id"`
	ReturnNumber    string               `json:"return_number"`
	CustomerID      uuid.UUID            `json:"customer_id"`
	CustomerName    string               `json:"customer_name"`
	InvoiceID       *uuid.UUID           `json:"invoice_id,omitempty"`
	InvoiceNumber   string               `json:"invoice_number,omitempty"`
	Items           []ReturnItemResponse `json:"items"`
	Total           decimal.Decimal      `json:"total"`
	Reason          string               `json:"reason,omitempty"`
	Status          string               `json:"status"`
	ApprovedAt      *time.Time           `json:"approved_at,omitempty"`
	ApprovedBy      *uuid.UUID           `json:"approved_by,omitempty"`
	ApprovalNote    string               `json:"approval_note,omitempty"`
	RejectedAt      *time.Time           `json:"rejected_at,omitempty"`
	RejectedBy      *uuid.UUID           `json:"rejected_by,omitempty"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	ProcessedAt     *time.Time           `json:"processed_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	Version         int                  `json:"version"`
}

// ReturnListResponse is the compact return representation for list views
type ReturnListResponse struct {
	ID            uuid.UUID       `json:"id"`
	ReturnNumber  string          `json:"return_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReturnListFilter carries list query parameters
type ReturnListFilter struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending approved rejected processed"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToReturnResponse converts a domain sales return to its response DTO
func ToReturnResponse(r *returns.SalesReturn) ReturnResponse {
	items := make([]ReturnItemResponse, len(r.Items))
	for i := range r.Items {
		items[i] = ReturnItemResponse{
			ID:            r.Items[i].ID,
			InvoiceItemID: r.Items[i].InvoiceItemID,
			Quantity:      r.Items[i].Quantity,
			Amount:        r.Items[i].Amount,
		}
	}

	return ReturnResponse{
		ID:              r.ID,
		AgencyID:        r.AgencyID,
		ReturnNumber:    r.ReturnNumber,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		InvoiceID:       r.InvoiceID,
		InvoiceNumber:   r.InvoiceNumber,
		Items:           items,
		Total:           r.Total,
		Reason:          r.Reason,
		Status:          string(r.Status),
		ApprovedAt:      r.ApprovedAt,
		ApprovedBy:      r.ApprovedBy,
		ApprovalNote:    r.ApprovalNote,
		RejectedAt:      r.RejectedAt,
		RejectedBy:      r.RejectedBy,
		RejectionReason: r.RejectionReason,
		ProcessedAt:     r.ProcessedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Version:         r.Version,
	}
}

// ToReturnListResponse converts a domain sales return to its list item DTO
func ToReturnListResponse(r *returns.SalesReturn) ReturnListResponse {
	return ReturnListResponse{
		ID:            r.ID,
		ReturnNumber:  r.ReturnNumber,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		InvoiceNumber: r.InvoiceNumber,
		Total:         r.Total,
		Status:        string(r.Status),
		ItemCount:     r.ItemCount(),
		CreatedAt:     r.CreatedAt,
	}
}

// ToReturnListResponses converts a slice of domain sales returns to list item DTOs
func ToReturnListResponses(salesReturns []returns.SalesReturn) []ReturnListResponse {
	responses := make([]ReturnListResponse, len(salesReturns))
	for i := range salesReturns {
		responses[i] = ToReturnListResponse(&salesReturns[i])
	}
	return responses
}
