package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/billing"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/collection"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CollectionService handles collection recording, invoice allocation and
// the cheque lifecycle
type CollectionService struct {
	collectionRepo  collection.CollectionRepository
	customerRepo    partner.CustomerRepository
	invoiceRepo     billing.InvoiceRepository
	idempotency     shared.IdempotencyStore
	idempotencyCfg  shared.IdempotencyConfig
	strategyFactory *collection.AllocationStrategyFactory
	defaultStrategy collection.AllocationStrategyType
	metrics         *telemetry.ReceivablesMetrics
	logger          *zap.Logger
}

// CollectionServiceOption is a functional option for configuring CollectionService
type CollectionServiceOption func(*CollectionService)

// WithIdempotencyStore enables idempotent recording via the given store
func WithIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) CollectionServiceOption {
	return func(s *CollectionService) {
		s.idempotency = store
		s.idempotencyCfg = cfg
	}
}

// WithDefaultAllocationStrategy sets the strategy auto-allocate uses when the
// request does not name one
func WithDefaultAllocationStrategy(strategyType collection.AllocationStrategyType) CollectionServiceOption {
	return func(s *CollectionService) {
		s.defaultStrategy = strategyType
	}
}

// WithMetrics enables receivables metrics recording
func WithMetrics(metrics *telemetry.ReceivablesMetrics) CollectionServiceOption {
	return func(s *CollectionService) {
		s.metrics = metrics
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) CollectionServiceOption {
	return func(s *CollectionService) {
		s.logger = logger
	}
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(
	collectionRepo collection.CollectionRepository,
	customerRepo partner.CustomerRepository,
	invoiceRepo billing.InvoiceRepository,
	opts ...CollectionServiceOption,
) *CollectionService {
	s := &CollectionService{
		collectionRepo:  collectionRepo,
		customerRepo:    customerRepo,
		invoiceRepo:     invoiceRepo,
		idempotencyCfg:  shared.DefaultIdempotencyConfig(),
		strategyFactory: collection.NewAllocationStrategyFactory(),
		defaultStrategy: collection.AllocationStrategyTypeOldestFirst,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record records a new collection. When the request carries an idempotency
// key and a retry arrives within the key's TTL, the previously recorded
// collection is returned instead of a duplicate being created.
func (s *CollectionService) Record(ctx context.Context, agencyID uuid.UUID, req RecordCollectionRequest) (*CollectionResponse, error) {
	if req.IdempotencyKey != "" && s.idempotency != nil && s.idempotencyCfg.Enabled {
		newly, err := s.idempotency.MarkProcessed(ctx, idempotencyKey(agencyID, req.IdempotencyKey), s.idempotencyCfg.TTL)
		if err != nil {
			// An unreachable store must not block money being recorded;
			// the collection number uniqueness check below still catches
			// straight duplicates.
			s.logger.Warn("idempotency store unavailable, proceeding without replay protection",
				zap.Error(err),
				zap.String("collection_number", req.CollectionNumber))
		} else if !newly {
			existing, err := s.collectionRepo.FindByNumber(ctx, agencyID, req.CollectionNumber)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				response := ToCollectionResponse(existing)
				return &response, nil
			}
			return nil, shared.NewDomainError("DUPLICATE_REQUEST", "This request was already processed")
		}
	}

	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	exists, err := s.collectionRepo.ExistsByNumber(ctx, agencyID, req.CollectionNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A collection with this number already exists")
	}

	cheques := make([]collection.ChequeInput, len(req.Cheques))
	for i, cheque := range req.Cheques {
		cheques[i] = collection.ChequeInput{
			ChequeNumber: cheque.ChequeNumber,
			BankName:     cheque.BankName,
			Amount:       cheque.Amount,
			ChequeDate:   cheque.ChequeDate,
		}
	}

	c, err := collection.NewCollection(
		agencyID,
		req.CollectionNumber,
		customer.ID,
		customer.Name,
		req.CashAmount,
		req.CashDiscount,
		req.ChequeAmount,
		req.TotalAmount,
		req.CashDate,
		cheques,
	)
	if err != nil {
		return nil, err
	}

	if err := s.collectionRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordCollectionWithAmount(ctx, agencyID, c.TotalAmount)
	}

	response := ToCollectionResponse(c)
	return &response, nil
}

// GetByID retrieves a collection by ID
func (s *CollectionService) GetByID(ctx context.Context, agencyID, collectionID uuid.UUID) (*CollectionResponse, error) {
	c, err := s.findCollection(ctx, agencyID, collectionID)
	if err != nil {
		return nil, err
	}
	response := ToCollectionResponse(c)
	return &response, nil
}

// GetByNumber retrieves a collection by its collection number
func (s *CollectionService) GetByNumber(ctx context.Context, agencyID uuid.UUID, collectionNumber string) (*CollectionResponse, error) {
	c, err := s.collectionRepo.FindByNumber(ctx, agencyID, collectionNumber)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Collection not found")
	}
	response := ToCollectionResponse(c)
	return &response, nil
}

// List retrieves collections with filtering and pagination
func (s *CollectionService) List(ctx context.Context, agencyID uuid.UUID, filter CollectionListFilter) ([]CollectionListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "cash_date"
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

	collections, err := s.collectionRepo.FindAllForAgency(ctx, agencyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.collectionRepo.CountForAgency(ctx, agencyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCollectionListResponses(collections), total, nil
}

// ListByCustomer retrieves collections for a specific customer
func (s *CollectionService) ListByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter CollectionListFilter) ([]CollectionListResponse, int64, error) {
	filter.CustomerID = &customerID
	return s.List(ctx, agencyID, filter)
}

// Allocate allocates part of a collection's total to one invoice.
// The aggregate enforces the collection-side cap (allocations never exceed
// the collection total); this method additionally enforces the invoice-side
// cap: across all collections, allocations never exceed the invoice total.
func (s *CollectionService) Allocate(ctx context.Context, agencyID, collectionID uuid.UUID, req AllocateRequest) (*CollectionResponse, error) {
	c, err := s.findCollection(ctx, agencyID, collectionID)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindByIDForAgency(ctx, agencyID, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
	}
	if invoice.CustomerID != c.CustomerID {
		return nil, shared.NewDomainError("INVOICE_CUSTOMER_MISMATCH", "Invoice belongs to a different customer")
	}

	allocated, err := s.collectionRepo.SumAllocationsByInvoice(ctx, agencyID, invoice.ID)
	if err != nil {
		return nil, err
	}
	headroom := invoice.Total.Sub(allocated)
	if req.Amount.GreaterThan(headroom) {
		return nil, shared.NewDomainError("EXCEEDS_INVOICE_TOTAL",
			fmt.Sprintf("Allocation of %s exceeds the remaining %s on invoice %s", req.Amount, headroom, invoice.InvoiceNumber))
	}

	if _, err := c.AllocateToInvoice(invoice.ID, invoice.InvoiceNumber, req.Amount); err != nil {
		return nil, err
	}

	if err := s.collectionRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	response := ToCollectionResponse(c)
	return &response, nil
}

// AutoAllocate spreads the collection's unallocated amount across the
// customer's invoices that still have allocation headroom
func (s *CollectionService) AutoAllocate(ctx context.Context, agencyID, collectionID uuid.UUID, req AutoAllocateRequest) (*AutoAllocateResponse, error) {
	var result *AutoAllocateResponse
	var operationErr error

	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels("auto_allocate", nil), func(c context.Context) {
		result, operationErr = s.autoAllocate(c, agencyID, collectionID, req)
	})

	return result, operationErr
}

func (s *CollectionService) autoAllocate(ctx context.Context, agencyID, collectionID uuid.UUID, req AutoAllocateRequest) (*AutoAllocateResponse, error) {
	c, err := s.findCollection(ctx, agencyID, collectionID)
	if err != nil {
		return nil, err
	}

	if !c.UnallocatedAmount.IsPositive() {
		return nil, shared.NewDomainError("NOTHING_TO_ALLOCATE", "The collection is already fully allocated")
	}

	strategyType := s.defaultStrategy
	if req.Strategy != "" {
		strategyType = collection.AllocationStrategyType(req.Strategy)
	}
	strategy, err := s.strategyFactory.GetStrategy(strategyType)
	if err != nil {
		return nil, err
	}

	targets, err := s.buildAllocationTargets(ctx, agencyID, c)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, shared.NewDomainError("NO_OPEN_INVOICES", "Customer has no invoices with allocation headroom")
	}

	plan, err := strategy.Allocate(c.UnallocatedAmount, targets)
	if err != nil {
		return nil, err
	}

	for _, planned := range plan.Allocations {
		if _, err := c.AllocateToInvoice(planned.InvoiceID, planned.InvoiceNumber, planned.Amount); err != nil {
			return nil, err
		}
	}

	if err := s.collectionRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("auto-allocated collection",
		zap.String("collection_number", c.CollectionNumber),
		zap.String("strategy", string(strategyType)),
		zap.String("total_allocated", plan.TotalAllocated.String()),
		zap.Int("invoices", len(plan.Allocations)))

	return &AutoAllocateResponse{
		Collection: ToCollectionResponse(c),
		Plan:       ToAllocationPlanResponse(strategyType, plan),
	}, nil
}

// buildAllocationTargets collects the customer's invoices that can still
// take allocations from this collection. Invoices this collection already
// allocated to are skipped; the aggregate allows one allocation per invoice.
func (s *CollectionService) buildAllocationTargets(ctx context.Context, agencyID uuid.UUID, c *collection.Collection) ([]collection.InvoiceTarget, error) {
	invoices, err := s.invoiceRepo.FindAllByCustomer(ctx, agencyID, c.CustomerID)
	if err != nil {
		return nil, err
	}

	targets := make([]collection.InvoiceTarget, 0, len(invoices))
	for i := range invoices {
		invoice := &invoices[i]
		if c.GetAllocationByInvoiceID(invoice.ID) != nil {
			continue
		}

		allocated, err := s.collectionRepo.SumAllocationsByInvoice(ctx, agencyID, invoice.ID)
		if err != nil {
			return nil, err
		}
		headroom := invoice.Total.Sub(allocated)
		if !headroom.IsPositive() {
			continue
		}

		targets = append(targets, collection.InvoiceTarget{
			InvoiceID:         invoice.ID,
			InvoiceNumber:     invoice.InvoiceNumber,
			OutstandingAmount: headroom,
			CreatedAt:         invoice.CreatedAt,
		})
	}

	return targets, nil
}

// ClearCheque marks one of the collection's cheques as honoured.
// ClearedAt defaults to now when the request does not carry one.
func (s *CollectionService) ClearCheque(ctx context.Context, agencyID, collectionID, chequeID uuid.UUID, req ClearChequeRequest) (*CollectionResponse, error) {
	c, err := s.findCollection(ctx, agencyID, collectionID)
	if err != nil {
		return nil, err
	}

	clearedAt := time.Now()
	if req.ClearedAt != nil {
		clearedAt = *req.ClearedAt
	}

	if err := c.MarkChequeCleared(chequeID, clearedAt); err != nil {
		return nil, err
	}

	if err := s.collectionRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordChequeTransition(ctx, agencyID, telemetry.ChequeTransitionCleared)
	}

	response := ToCollectionResponse(c)
	return &response, nil
}

// ReturnCheque marks one of the collection's cheques as bounced.
// ReturnedAt defaults to now when the request does not carry one.
func (s *CollectionService) ReturnCheque(ctx context.Context, agencyID, collectionID, chequeID uuid.UUID, req ReturnChequeRequest) (*CollectionResponse, error) {
	c, err := s.findCollection(ctx, agencyID, collectionID)
	if err != nil {
		return nil, err
	}

	returnedAt := time.Now()
	if req.ReturnedAt != nil {
		returnedAt = *req.ReturnedAt
	}

	if err := c.MarkChequeReturned(chequeID, returnedAt, req.Reason); err != nil {
		return nil, err
	}

	if err := s.collectionRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordChequeTransition(ctx, agencyID, telemetry.ChequeTransitionReturned)
	}

	response := ToCollectionResponse(c)
	return &response, nil
}

func (s *CollectionService) findCollection(ctx context.Context, agencyID, collectionID uuid.UUID) (*collection.Collection, error) {
	c, err := s.collectionRepo.FindByIDForAgency(ctx, agencyID, collectionID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Collection not found")
	}
	return c, nil
}

func idempotencyKey(agencyID uuid.UUID, key string) string {
	return fmt.Sprintf("collection:%s:%s", agencyID, key)
}
