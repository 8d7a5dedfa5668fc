package billing

import (
	"context"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/billing"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceService handles invoice recording and queries.
// Invoices are write-once: there is no update or delete path, and
// corrections flow through sales returns.
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, customerRepo partner.CustomerRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
	}
}

// Create records a new invoice for a customer
func (s *InvoiceService) Create(ctx context.Context, agencyID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	exists, err := s.invoiceRepo.ExistsByNumber(ctx, agencyID, req.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An invoice with this number already exists")
	}

	lines := make([]billing.InvoiceLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = billing.InvoiceLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	invoice, err := billing.NewInvoice(agencyID, req.InvoiceNumber, customer.ID, customer.Name, lines, req.Total)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, agencyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForAgency(ctx, agencyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByNumber retrieves an invoice by its invoice number
func (s *InvoiceService) GetByNumber(ctx context.Context, agencyID uuid.UUID, invoiceNumber string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumber(ctx, agencyID, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, agencyID uuid.UUID, filter InvoiceListFilter) ([]InvoiceListResponse, int64, error) {
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
		Filters:  make(map[string]interface{}),
	}

	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	invoices, err := s.invoiceRepo.FindAllForAgency(ctx, agencyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.CountForAgency(ctx, agencyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceListResponses(invoices), total, nil
}

// ListByCustomer retrieves invoices for a specific customer
func (s *InvoiceService) ListByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter InvoiceListFilter) ([]InvoiceListResponse, int64, error) {
	filter.CustomerID = &customerID
	return s.List(ctx, agencyID, filter)
}
