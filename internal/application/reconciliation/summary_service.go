package reconciliation

import (
	"context"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/billing"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/collection"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/reconciliation"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/returns"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SummaryService computes customer receivable summaries on demand. It
// fetches the snapshot rows for one customer, hands them to the pure
// reconciliation core, and returns the derived summary without persisting
// anything.
type SummaryService struct {
	customerRepo   partner.CustomerRepository
	invoiceRepo    billing.InvoiceRepository
	collectionRepo collection.CollectionRepository
	returnRepo     returns.SalesReturnRepository
	metrics        *telemetry.ReceivablesMetrics
	logger         *zap.Logger
}

// SummaryServiceOption configures a SummaryService
type SummaryServiceOption func(*SummaryService)

// WithMetrics wires receivables metrics into the service
func WithMetrics(metrics *telemetry.ReceivablesMetrics) SummaryServiceOption {
	return func(s *SummaryService) {
		s.metrics = metrics
	}
}

// WithLogger sets the logger used for degraded-fetch warnings
func WithLogger(logger *zap.Logger) SummaryServiceOption {
	return func(s *SummaryService) {
		s.logger = logger
	}
}

// NewSummaryService creates a new summary service
func NewSummaryService(
	customerRepo partner.CustomerRepository,
	invoiceRepo billing.InvoiceRepository,
	collectionRepo collection.CollectionRepository,
	returnRepo returns.SalesReturnRepository,
	opts ...SummaryServiceOption,
) *SummaryService {
	s := &SummaryService{
		customerRepo:   customerRepo,
		invoiceRepo:    invoiceRepo,
		collectionRepo: collectionRepo,
		returnRepo:     returnRepo,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeCustomerSummary builds the receivable summary for one customer as
// of the requested date. The reference date is widened to end-of-day before
// classification, so a cheque dated any time on that calendar day counts as
// realized. Identical snapshots and reference dates always produce the same
// summary.
func (s *SummaryService) ComputeCustomerSummary(ctx context.Context, agencyID, customerID uuid.UUID, req SummaryRequest) (*CustomerSummaryResponse, error) {
	var result *CustomerSummaryResponse
	var err error
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels("customer_summary", nil), func(c context.Context) {
		result, err = s.computeCustomerSummary(c, agencyID, customerID, req)
	})
	return result, err
}

func (s *SummaryService) computeCustomerSummary(ctx context.Context, agencyID, customerID uuid.UUID, req SummaryRequest) (*CustomerSummaryResponse, error) {
	start := time.Now()

	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	invoices, err := s.invoiceRepo.FindAllByCustomer(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}

	collections, err := s.collectionRepo.FindAllByCustomer(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}

	salesReturns, err := s.returnRepo.FindAllByCustomer(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}

	allocationsByInvoice, degradedInvoices := s.fetchAllocations(ctx, agencyID, invoices)

	asOf := time.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	summary := reconciliation.ComputeCustomerSummary(reconciliation.SummaryInput{
		Customer:                 reconciliation.CustomerRef{ID: customer.ID, Name: customer.Name},
		Invoices:                 toSnapshotInvoices(invoices),
		Collections:              toSnapshotCollections(collections),
		Returns:                  toSnapshotReturns(salesReturns),
		AllocationsByInvoice:     allocationsByInvoice,
		DegradedInvoices:         degradedInvoices,
		ReturnItemsByInvoiceItem: itemCredits(salesReturns),
		ReferenceDate:            reconciliation.EndOfDay(asOf),
	})

	if s.metrics != nil {
		s.metrics.RecordSummaryComputeDuration(ctx, agencyID, time.Since(start), summary.Degraded)
	}
	if summary.Degraded {
		s.logger.Warn("customer summary computed with degraded invoices",
			zap.String("customer_id", customerID.String()),
			zap.Int("degraded_invoices", len(degradedInvoices)))
	}

	response := ToCustomerSummaryResponse(summary)
	return &response, nil
}

// fetchAllocations loads allocation rows invoice by invoice. A failed fetch
// marks that invoice degraded instead of failing the whole summary, so one
// bad read never blanks the customer's receivable picture — the invoice is
// reported with zero collected and the degraded flag set.
func (s *SummaryService) fetchAllocations(ctx context.Context, agencyID uuid.UUID, invoices []billing.Invoice) (map[uuid.UUID][]reconciliation.Allocation, map[uuid.UUID]bool) {
	allocations := make(map[uuid.UUID][]reconciliation.Allocation, len(invoices))
	degraded := make(map[uuid.UUID]bool)

	for _, invoice := range invoices {
		rows, err := s.collectionRepo.FindAllocationsByInvoice(ctx, agencyID, invoice.ID)
		if err != nil {
			s.logger.Warn("allocation fetch failed, marking invoice degraded",
				zap.Error(err),
				zap.String("invoice_id", invoice.ID.String()),
				zap.String("invoice_number", invoice.InvoiceNumber))
			degraded[invoice.ID] = true
			continue
		}

		mapped := make([]reconciliation.Allocation, len(rows))
		for i, row := range rows {
			mapped[i] = reconciliation.Allocation{
				InvoiceID:       row.InvoiceID,
				CollectionID:    row.CollectionID,
				AllocatedAmount: row.Amount,
			}
		}
		allocations[invoice.ID] = mapped
	}

	return allocations, degraded
}

func toSnapshotInvoices(invoices []billing.Invoice) []reconciliation.Invoice {
	snapshot := make([]reconciliation.Invoice, len(invoices))
	for i, invoice := range invoices {
		snapshot[i] = reconciliation.Invoice{
			ID:            invoice.ID,
			InvoiceNumber: invoice.InvoiceNumber,
			CustomerID:    invoice.CustomerID,
			Total:         invoice.Total,
			ItemIDs:       invoice.ItemIDs(),
			CreatedAt:     invoice.CreatedAt,
		}
	}
	return snapshot
}

func toSnapshotCollections(collections []collection.Collection) []reconciliation.Collection {
	snapshot := make([]reconciliation.Collection, len(collections))
	for i, col := range collections {
		cheques := make([]reconciliation.ChequeDetail, len(col.Cheques))
		for j, cheque := range col.Cheques {
			cheques[j] = reconciliation.ChequeDetail{
				ID:           cheque.ID,
				ChequeNumber: cheque.ChequeNumber,
				BankName:     cheque.BankName,
				Amount:       cheque.Amount,
				ChequeDate:   cheque.ChequeDate,
				Status:       reconciliation.ChequeStatus(cheque.Status),
				ClearedAt:    cheque.ClearedAt,
				ReturnedAt:   cheque.ReturnedAt,
				ReturnReason: cheque.ReturnReason,
			}
		}
		snapshot[i] = reconciliation.Collection{
			ID:               col.ID,
			CollectionNumber: col.CollectionNumber,
			CustomerID:       col.CustomerID,
			TotalAmount:      col.TotalAmount,
			CashAmount:       col.CashAmount,
			CashDiscount:     col.CashDiscount,
			ChequeAmount:     col.ChequeAmount,
			CashDate:         col.CashDate,
			Cheques:          cheques,
		}
	}
	return snapshot
}

func toSnapshotReturns(salesReturns []returns.SalesReturn) []reconciliation.Return {
	snapshot := make([]reconciliation.Return, len(salesReturns))
	for i, ret := range salesReturns {
		snapshot[i] = reconciliation.Return{
			ID:           ret.ID,
			ReturnNumber: ret.ReturnNumber,
			CustomerID:   ret.CustomerID,
			InvoiceID:    ret.InvoiceID,
			Total:        ret.Total,
			Status:       reconciliation.ReturnStatus(ret.Status),
		}
	}
	return snapshot
}

// itemCredits folds the item lines of creditable returns into a credit per
// invoice item id. A return that names its invoice credits through the
// header path instead, so its items are skipped here — the two paths stay
// non-overlapping and no return is counted twice against an invoice.
// Pending and rejected returns contribute nothing.
func itemCredits(salesReturns []returns.SalesReturn) map[uuid.UUID]decimal.Decimal {
	credits := make(map[uuid.UUID]decimal.Decimal)
	for _, ret := range salesReturns {
		if !ret.IsCreditable() || ret.InvoiceID != nil {
			continue
		}
		for _, item := range ret.Items {
			credits[item.InvoiceItemID] = credits[item.InvoiceItemID].Add(item.Amount)
		}
	}
	return credits
}
