package partner

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
	"github.com/google/uuid"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Code    string `json:"code" binding:"required,min=1,max=50"`
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
	Route   string `json:"route" binding:"max=100"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Route   *string `json:"route" binding:"omitempty,min=1,max=100"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	AgencyID  uuid.UUID `json:"agency_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Route     string    `json:"route"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// CustomerListResponse represents a list item for customers
type CustomerListResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Route     string    `json:"route"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Route    string `form:"route"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		AgencyID:  c.AgencyID,
		Code:      c.Code,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Route:     c.Route,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
}

// ToCustomerListResponses converts domain Customers to list responses
func ToCustomerListResponses(customers []partner.Customer) []CustomerListResponse {
	responses := make([]CustomerListResponse, len(customers))
	for i, c := range customers {
		responses[i] = CustomerListResponse{
			ID:        c.ID,
			Code:      c.Code,
			Name:      c.Name,
			Phone:     c.Phone,
			Route:     c.Route,
			Status:    string(c.Status),
			CreatedAt: c.CreatedAt,
		}
	}
	return responses
}
