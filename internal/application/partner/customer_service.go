package partner

import (
	"context"
	"fmt"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/billing"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	invoiceRepo  billing.InvoiceRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

// SetInvoiceRepo sets the invoice repository used for delete validation.
// When set, customers with invoices on record cannot be deleted.
func (s *CustomerService) SetInvoiceRepo(repo billing.InvoiceRepository) {
	s.invoiceRepo = repo
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, agencyID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByCode(ctx, agencyID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this code already exists")
	}

	customer, err := partner.NewCustomer(agencyID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" || req.Address != "" {
		if err := customer.UpdateContact(req.Phone, req.Address); err != nil {
			return nil, err
		}
	}
	if req.Route != "" {
		if err := customer.AssignRoute(req.Route); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, agencyID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByCode retrieves a customer by code
func (s *CustomerService) GetByCode(ctx context.Context, agencyID uuid.UUID, code string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCode(ctx, agencyID, code)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a list of customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, agencyID uuid.UUID, filter CustomerListFilter) ([]CustomerListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Route != "" {
		domainFilter.Filters["route"] = filter.Route
	}

	customers, err := s.customerRepo.FindAllForAgency(ctx, agencyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.CountForAgency(ctx, agencyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerListResponses(customers), total, nil
}

// ListByRoute retrieves the customers on a delivery route
func (s *CustomerService) ListByRoute(ctx context.Context, agencyID uuid.UUID, route string, filter CustomerListFilter) ([]CustomerListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
	}

	customers, err := s.customerRepo.FindByRoute(ctx, agencyID, route, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToCustomerListResponses(customers), nil
}

// Update updates a customer
func (s *CustomerService) Update(ctx context.Context, agencyID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	if req.Name != nil {
		if err := customer.Update(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Phone != nil || req.Address != nil {
		phone := customer.Phone
		address := customer.Address
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := customer.UpdateContact(phone, address); err != nil {
			return nil, err
		}
	}

	if req.Route != nil {
		if err := customer.AssignRoute(*req.Route); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Activate activates a customer
func (s *CustomerService) Activate(ctx context.Context, agencyID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	if err := customer.Activate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Deactivate deactivates a customer
func (s *CustomerService) Deactivate(ctx context.Context, agencyID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	if err := customer.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete deletes a customer. Customers with invoices on record are kept for
// the audit trail and cannot be deleted; deactivate them instead.
func (s *CustomerService) Delete(ctx context.Context, agencyID, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	if s.invoiceRepo != nil {
		count, err := s.invoiceRepo.CountByCustomer(ctx, agencyID, customerID)
		if err != nil {
			return shared.NewDomainError("INVOICE_CHECK_FAILED", "Failed to check customer invoices")
		}
		if count > 0 {
			return shared.NewDomainError("HAS_INVOICES",
				fmt.Sprintf("Cannot delete customer with %d invoice(s) on record", count))
		}
	}

	return s.customerRepo.Delete(ctx, customerID)
}

// CountByStatus returns customer counts by status for an agency
func (s *CustomerService) CountByStatus(ctx context.Context, agencyID uuid.UUID) (map[string]int64, error) {
	counts := make(map[string]int64)

	var total int64
	for _, status := range []partner.CustomerStatus{partner.CustomerStatusActive, partner.CustomerStatusInactive} {
		filter := shared.Filter{Filters: map[string]any{"status": string(status)}}
		count, err := s.customerRepo.CountForAgency(ctx, agencyID, filter)
		if err != nil {
			return nil, err
		}
		counts[string(status)] = count
		total += count
	}
	counts["total"] = total

	return counts, nil
}
