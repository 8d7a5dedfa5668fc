package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/reconciliation"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/statement"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/rendering"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorageService archives rendered statement PDFs and signs download
// URLs for them. Implemented by the S3 object storage in the infrastructure
// layer.
type ObjectStorageService interface {
	// Upload stores a rendered document under the given key
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL returns a presigned URL for the stored document
	// together with its expiry time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// ObjectExists checks whether the stored document is still present
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// CustomerSummaryProvider computes the receivable figures a statement is
// rendered from. Satisfied by the reconciliation summary service.
type CustomerSummaryProvider interface {
	ComputeCustomerSummary(ctx context.Context, agencyID, customerID uuid.UUID, req reconciliation.SummaryRequest) (*reconciliation.CustomerSummaryResponse, error)
}

// Verify the summary service satisfies the provider interface
var _ CustomerSummaryProvider = (*reconciliation.SummaryService)(nil)

// StatementServiceConfig holds configuration for the statement service
type StatementServiceConfig struct {
	// AgencyName is the letterhead name printed on statements
	AgencyName string
	// RenderTimeout is the per-statement PDF render budget
	RenderTimeout time.Duration
	// DownloadURLExpiry is the lifetime of presigned download URLs
	DownloadURLExpiry time.Duration
}

// DefaultStatementServiceConfig returns the default configuration
func DefaultStatementServiceConfig() StatementServiceConfig {
	return StatementServiceConfig{
		AgencyName:        "Apparel Agency",
		RenderTimeout:     30 * time.Second,
		DownloadURLExpiry: 24 * time.Hour,
	}
}

// StatementService generates customer account statements. A statement is a
// point-in-time PDF of the receivable summary: the service computes the
// figures, renders them through headless Chrome, archives the document in
// the object store, and tracks the whole attempt as a statement record so
// failed generations stay visible.
type StatementService struct {
	statementRepo  statement.StatementRepository
	customerRepo   partner.CustomerRepository
	summaries      CustomerSummaryProvider
	templateEngine *rendering.TemplateEngine
	renderer       rendering.PDFRenderer
	storage        ObjectStorageService
	config         StatementServiceConfig
	metrics        *telemetry.ReceivablesMetrics
	logger         *zap.Logger
}

// StatementServiceOption configures a StatementService
type StatementServiceOption func(*StatementService)

// WithConfig overrides the default service configuration
func WithConfig(config StatementServiceConfig) StatementServiceOption {
	return func(s *StatementService) {
		s.config = config
	}
}

// WithMetrics wires receivables metrics into the service
func WithMetrics(metrics *telemetry.ReceivablesMetrics) StatementServiceOption {
	return func(s *StatementService) {
		s.metrics = metrics
	}
}

// WithLogger sets the logger used for generation progress and failures
func WithLogger(logger *zap.Logger) StatementServiceOption {
	return func(s *StatementService) {
		s.logger = logger
	}
}

// NewStatementService creates a new statement service
func NewStatementService(
	statementRepo statement.StatementRepository,
	customerRepo partner.CustomerRepository,
	summaries CustomerSummaryProvider,
	templateEngine *rendering.TemplateEngine,
	renderer rendering.PDFRenderer,
	storage ObjectStorageService,
	opts ...StatementServiceOption,
) *StatementService {
	s := &StatementService{
		statementRepo:  statementRepo,
		customerRepo:   customerRepo,
		summaries:      summaries,
		templateEngine: templateEngine,
		renderer:       renderer,
		storage:        storage,
		config:         DefaultStatementServiceConfig(),
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate computes the customer's receivable summary as of the requested
// date, renders it to PDF, and archives the document. The statement record
// is persisted at every lifecycle step, so a crash or render failure leaves
// a visible failed record instead of losing the attempt. Generation is
// synchronous: the response carries a presigned download URL for the
// finished document.
func (s *StatementService) Generate(ctx context.Context, agencyID, customerID uuid.UUID, req GenerateStatementRequest) (*StatementResponse, error) {
	var result *StatementResponse
	var err error
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels("statement_generate", nil), func(c context.Context) {
		result, err = s.generate(c, agencyID, customerID, req)
	})
	return result, err
}

func (s *StatementService) generate(ctx context.Context, agencyID, customerID uuid.UUID, req GenerateStatementRequest) (*StatementResponse, error) {
	customer, err := s.customerRepo.FindByIDForAgency(ctx, agencyID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	summary, err := s.summaries.ComputeCustomerSummary(ctx, agencyID, customerID, reconciliation.SummaryRequest{AsOf: req.AsOf})
	if err != nil {
		return nil, err
	}

	st, err := statement.NewStatement(agencyID, customerID, customer.Name, summary.ReferenceDate, summary.OutstandingAmount)
	if err != nil {
		return nil, err
	}

	// Save in pending state so the attempt is visible before rendering starts
	if err := s.statementRepo.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to save statement: %w", err)
	}

	if err := st.StartRendering(); err != nil {
		return nil, err
	}
	if err := s.statementRepo.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to update statement status: %w", err)
	}

	html, err := s.templateEngine.RenderStatement(ctx, buildStatementData(st, customer, summary, s.config.AgencyName))
	if err != nil {
		s.logger.Error("statement layout rendering failed",
			zap.Error(err),
			zap.String("statement_id", st.ID.String()))
		s.failStatement(ctx, st, "Statement layout rendering failed")
		return nil, fmt.Errorf("failed to render statement layout: %w", err)
	}

	pdfResult, err := s.renderer.Render(ctx, &rendering.RenderRequest{
		HTML:    html,
		Title:   fmt.Sprintf("Customer Statement - %s", customer.Name),
		Margins: rendering.DefaultStatementMargins(),
		Timeout: s.config.RenderTimeout,
	})
	if err != nil {
		s.logger.Error("statement PDF rendering failed",
			zap.Error(err),
			zap.String("statement_id", st.ID.String()))
		s.failStatement(ctx, st, "PDF generation failed. Please try again later.")
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	storageKey := fmt.Sprintf("statements/%s/%s/%s.pdf", agencyID, customerID, st.ID)
	if err := s.storage.Upload(ctx, storageKey, pdfResult.PDFData, "application/pdf"); err != nil {
		s.logger.Error("statement PDF archiving failed",
			zap.Error(err),
			zap.String("statement_id", st.ID.String()),
			zap.String("storage_key", storageKey))
		s.failStatement(ctx, st, "Failed to archive statement PDF. Please try again later.")
		return nil, fmt.Errorf("failed to archive statement PDF: %w", err)
	}

	if err := st.Complete(storageKey, int64(len(pdfResult.PDFData)), pdfResult.PageCount); err != nil {
		return nil, err
	}
	if err := s.statementRepo.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to update statement status: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordStatementGenerated(ctx, agencyID, telemetry.StatementResultCompleted)
	}
	s.logger.Info("customer statement generated",
		zap.String("statement_id", st.ID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("storage_key", storageKey),
		zap.Int("page_count", pdfResult.PageCount),
		zap.Int64("file_size_bytes", st.FileSizeBytes),
		zap.Duration("render_duration", pdfResult.RenderDuration))

	response := ToStatementResponse(st)
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, st.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		// The document is archived; the client can still fetch a URL
		// through the download endpoint.
		s.logger.Warn("statement archived but download URL signing failed",
			zap.Error(err),
			zap.String("statement_id", st.ID.String()))
	} else {
		response.DownloadURL = url
		response.DownloadExpiresAt = &expiresAt
	}

	return &response, nil
}

// GetByID retrieves a statement by ID
func (s *StatementService) GetByID(ctx context.Context, agencyID, statementID uuid.UUID) (*StatementResponse, error) {
	st, err := s.findStatement(ctx, agencyID, statementID)
	if err != nil {
		return nil, err
	}
	response := ToStatementResponse(st)
	return &response, nil
}

// GetDownloadURL signs a fresh download URL for an archived statement.
// Regenerating the link does not touch the statement record, so the
// operation is safe to repeat after URLs expire.
func (s *StatementService) GetDownloadURL(ctx context.Context, agencyID, statementID uuid.UUID) (*StatementDownloadResponse, error) {
	st, err := s.findStatement(ctx, agencyID, statementID)
	if err != nil {
		return nil, err
	}

	if !st.HasDocument() {
		return nil, shared.NewDomainError("INVALID_STATE", "Statement has no archived document")
	}

	exists, err := s.storage.ObjectExists(ctx, st.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check statement document: %w", err)
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Statement document is no longer available")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, st.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download URL: %w", err)
	}

	return &StatementDownloadResponse{
		StatementID:   st.ID,
		DownloadURL:   url,
		ExpiresAt:     expiresAt,
		FileSizeBytes: st.FileSizeBytes,
		PageCount:     st.PageCount,
	}, nil
}

// List retrieves statements with filtering and pagination
func (s *StatementService) List(ctx context.Context, agencyID uuid.UUID, filter StatementListFilter) ([]StatementListResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	statements, err := s.statementRepo.FindAllForAgency(ctx, agencyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.statementRepo.CountForAgency(ctx, agencyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStatementListResponses(statements), total, nil
}

// ListByCustomer retrieves statements for a specific customer
func (s *StatementService) ListByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter StatementListFilter) ([]StatementListResponse, int64, error) {
	filter.CustomerID = &customerID
	domainFilter := toDomainFilter(filter)

	statements, err := s.statementRepo.FindByCustomer(ctx, agencyID, customerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.statementRepo.CountForAgency(ctx, agencyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStatementListResponses(statements), total, nil
}

func (s *StatementService) findStatement(ctx context.Context, agencyID, statementID uuid.UUID) (*statement.Statement, error) {
	st, err := s.statementRepo.FindByIDForAgency(ctx, agencyID, statementID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Statement not found")
	}
	return st, nil
}

// failStatement records the failed attempt. Persisting the failure is best
// effort: the caller is already returning the render error, so a save error
// here is only logged.
func (s *StatementService) failStatement(ctx context.Context, st *statement.Statement, reason string) {
	_ = st.Fail(reason)
	if err := s.statementRepo.Save(ctx, st); err != nil {
		s.logger.Error("failed to persist failed statement",
			zap.Error(err),
			zap.String("statement_id", st.ID.String()))
	}
	if s.metrics != nil {
		s.metrics.RecordStatementGenerated(ctx, st.AgencyID, telemetry.StatementResultFailed)
	}
}

func toDomainFilter(filter StatementListFilter) shared.Filter {
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

	return domainFilter
}

func buildStatementData(st *statement.Statement, customer *partner.Customer, summary *reconciliation.CustomerSummaryResponse, agencyName string) *rendering.StatementData {
	rows := make([]rendering.StatementInvoiceRow, len(summary.Invoices))
	for i, inv := range summary.Invoices {
		rows[i] = rendering.StatementInvoiceRow{
			InvoiceNumber:     inv.InvoiceNumber,
			Total:             inv.Total,
			CollectedAmount:   inv.CollectedAmount,
			ReturnAmount:      inv.ReturnAmount,
			OutstandingAmount: inv.OutstandingAmount,
			Status:            inv.Status,
			Degraded:          inv.Degraded,
		}
	}

	return &rendering.StatementData{
		StatementID:               st.ID,
		AgencyName:                agencyName,
		CustomerName:              customer.Name,
		CustomerCode:              customer.Code,
		AsOfDate:                  st.AsOfDate,
		GeneratedAt:               time.Now(),
		TotalInvoiced:             summary.TotalInvoiced,
		TotalCollected:            summary.TotalCollected,
		UnrealizedPayments:        summary.UnrealizedPayments,
		TotalReturns:              summary.TotalReturns,
		ReturnedChequesAmount:     summary.ReturnedChequesAmount,
		ReturnedChequesCount:      summary.ReturnedChequesCount,
		OutstandingAmount:         summary.OutstandingAmount,
		OutstandingWithUnrealized: summary.OutstandingWithUnrealized,
		Degraded:                  summary.Degraded,
		Invoices:                  rows,
	}
}
