package returns

import (
	"context"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/billing"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/returns"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// ReturnService handles sales return recording and the approval lifecycle
type ReturnService struct {
	returnRepo   returns.SalesReturnRepository
	customerRepo partner.CustomerRepository
	invoiceRepo  billing.InvoiceRepository
}

// NewReturnService creates a new ReturnService
func NewReturnService(returnRepo returns.SalesReturnRepository, customerRepo partner.CustomerRepository, invoiceRepo billing.InvoiceRepository) *ReturnService {
	return &ReturnService{
		returnRepo:   returnRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Create records a new sales return. When the request carries an invoice
// reference, every item must point at a line of that invoice and the
// invoice must belong to the named customer.
func (s *ReturnService) Create(ctx context.Context, agencyID uuid.UUID, req CreateReturnRequest) (*ReturnResponse, error) {
	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	exists, err := s.returnRepo.ExistsByNumber(ctx, agencyID, req.ReturnNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A return with this number already exists")
	}

	invoiceNumber := ""
	if req.InvoiceID != nil {
		invoice, err := s.invoiceRepo.FindByIDForAgency(ctx, agencyID, *req.InvoiceID)
		if err != nil {
			return nil, err
		}
		if invoice == nil {
			return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
		}
		if invoice.CustomerID != req.CustomerID {
			return nil, shared.NewDomainError("INVOICE_CUSTOMER_MISMATCH", "Invoice belongs to a different customer")
		}
		for _, item := range req.Items {
			if invoice.GetItem(item.InvoiceItemID) == nil {
				return nil, shared.NewDomainError("INVALID_INVOICE_ITEM", "Return item does not reference a line of the invoice")
			}
		}
		invoiceNumber = invoice.InvoiceNumber
	} else if len(req.Items) > 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Item-level returns require an invoice reference")
	}

	items := make([]returns.ReturnItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = returns.ReturnItemInput{
			InvoiceItemID: item.InvoiceItemID,
			Quantity:      item.Quantity,
			Amount:        item.Amount,
		}
	}

	salesReturn, err := returns.NewSalesReturn(agencyID, req.ReturnNumber, customer.ID, customer.Name, req.InvoiceID, invoiceNumber, items, req.Total, req.Reason)
	if err != nil {
		return nil, err
	}

	if err := s.returnRepo.Save(ctx, salesReturn); err != nil {
		return nil, err
	}

	response := ToReturnResponse(salesReturn)
	return &response, nil
}

// GetByID retrieves a sales return by ID
func (s *ReturnService) GetByID(ctx context.Context, agencyID, returnID uuid.UUID) (*ReturnResponse, error) {
	salesReturn, err := s.findReturn(ctx, agencyID, returnID)
	if err != nil {
		return nil, err
	}
	response := ToReturnResponse(salesReturn)
	return &response, nil
}

// GetByNumber retrieves a sales return by its return number
func (s *ReturnService) GetByNumber(ctx context.Context, agencyID uuid.UUID, returnNumber string) (*ReturnResponse, error) {
	salesReturn, err := s.returnRepo.FindByNumber(ctx, agencyID, returnNumber)
	if err != nil {
		return nil, err
	}
	if salesReturn == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sales return not found")
	}
	response := ToReturnResponse(salesReturn)
	return &response, nil
}

// List retrieves sales returns with filtering and pagination
func (s *ReturnService) List(ctx context.Context, agencyID uuid.UUID, filter ReturnListFilter) ([]ReturnListResponse, int64, error) {
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
		Filters:  make(map[string]interface{}),
	}

	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	salesReturns, err := s.returnRepo.FindAllForAgency(ctx, agencyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.returnRepo.CountForAgency(ctx, agencyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToReturnListResponses(salesReturns), total, nil
}

// ListByCustomer retrieves sales returns for a specific customer
func (s *ReturnService) ListByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter ReturnListFilter) ([]ReturnListResponse, int64, error) {
	filter.CustomerID = &customerID
	return s.List(ctx, agencyID, filter)
}

// Approve approves a pending return
func (s *ReturnService) Approve(ctx context.Context, agencyID, returnID uuid.UUID, req ApproveReturnRequest) (*ReturnResponse, error) {
	salesReturn, err := s.findReturn(ctx, agencyID, returnID)
	if err != nil {
		return nil, err
	}

	if err := salesReturn.Approve(req.ApprovedBy, req.Note); err != nil {
		return nil, err
	}

	if err := s.returnRepo.Save(ctx, salesReturn); err != nil {
		return nil, err
	}

	response := ToReturnResponse(salesReturn)
	return &response, nil
}

// Reject rejects a pending return
func (s *ReturnService) Reject(ctx context.Context, agencyID, returnID uuid.UUID, req RejectReturnRequest) (*ReturnResponse, error) {
	salesReturn, err := s.findReturn(ctx, agencyID, returnID)
	if err != nil {
		return nil, err
	}

	if err := salesReturn.Reject(req.RejectedBy, req.Reason); err != nil {
		return nil, err
	}

	if err := s.returnRepo.Save(ctx, salesReturn); err != nil {
		return nil, err
	}

	response := ToReturnResponse(salesReturn)
	return &response, nil
}

// Process marks an approved return as processed, meaning the goods came
// back and the credit is settled
func (s *ReturnService) Process(ctx context.Context, agencyID, returnID uuid.UUID) (*ReturnResponse, error) {
	salesReturn, err := s.findReturn(ctx, agencyID, returnID)
	if err != nil {
		return nil, err
	}

	if err := salesReturn.Process(); err != nil {
		return nil, err
	}

	if err := s.returnRepo.Save(ctx, salesReturn); err != nil {
		return nil, err
	}

	response := ToReturnResponse(salesReturn)
	return &response, nil
}

func (s *ReturnService) findReturn(ctx context.Context, agencyID, returnID uuid.UUID) (*returns.SalesReturn, error) {
	salesReturn, err := s.returnRepo.FindByIDForAgency(ctx, agencyID, returnID)
	if err != nil {
		return nil, err
	}
	if salesReturn == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sales return not found")
	}
	return salesReturn, nil
}
