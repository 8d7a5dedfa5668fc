package billing

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is one line item on an invoice creation request
type InvoiceLineRequest struct {
	ProductName string          `json:"product_name" binding:"required,max=200"`
	Quantity    int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest is the request to record a new invoice
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number" binding:"required,min=1,max=50"`
	CustomerID    uuid.UUID            `json:"customer_id" binding:"required"`
	Items         []InvoiceLineRequest `json:"items" binding:"required,min=1,dive"`
	Total         decimal.Decimal      `json:"total" binding:"required"`
}

// InvoiceItemResponse is one line item in an invoice response
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse is the full invoice representation
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	AgencyID      uuid.UUID             `json:"agency_id"`
	InvoiceNumber string                `json:"invoice_number"`
	CustomerID    uuid.UUID             `json:"customer_id"`
	CustomerName  string                `json:"customer_name"`
	Items         []InvoiceItemResponse `json:"items"`
	Total         decimal.Decimal       `json:"total"`
	ItemCount     int                   `json:"item_count"`
	TotalQuantity int                   `json:"total_quantity"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// InvoiceListResponse is the compact invoice representation for list views
type InvoiceListResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceListFilter carries list query parameters
type InvoiceListFilter struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	Search     string     `form:"search"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToInvoiceResponse converts a domain invoice to its response DTO
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          inv.Items[i].ID,
			ProductName: inv.Items[i].ProductName,
			Quantity:    inv.Items[i].Quantity,
			UnitPrice:   inv.Items[i].UnitPrice,
			LineTotal:   inv.Items[i].LineTotal,
		}
	}

	return InvoiceResponse{
		ID:            inv.ID,
		AgencyID:      inv.AgencyID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		Items:         items,
		Total:         inv.Total,
		ItemCount:     inv.ItemCount(),
		TotalQuantity: inv.TotalQuantity(),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToInvoiceListResponse converts a domain invoice to its list item DTO
func ToInvoiceListResponse(inv *billing.Invoice) InvoiceListResponse {
	return InvoiceListResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		Total:         inv.Total,
		ItemCount:     inv.ItemCount(),
		CreatedAt:     inv.CreatedAt,
	}
}

// ToInvoiceListResponses converts a slice of domain invoices to list item DTOs
func ToInvoiceListResponses(invoices []billing.Invoice) []InvoiceListResponse {
	responses := make([]InvoiceListResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceListResponse(&invoices[i])
	}
	return responses
}
