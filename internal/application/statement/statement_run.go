package statement

import (
	"context"
	"fmt"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/scheduler"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatementGenerator produces a single customer statement. Implemented by
// StatementService; narrowed to an interface so the run executor can be
// tested without rendering or storage.
type StatementGenerator interface {
	Generate(ctx context.Context, agencyID, customerID uuid.UUID, req GenerateStatementRequest) (*StatementResponse, error)
}

// Verify the statement service satisfies the generator interface
var _ StatementGenerator = (*StatementService)(nil)

// StatementRunExecutor generates statements for every active customer of an
// agency. It implements scheduler.JobExecutor so monthly runs can be driven
// by the statement scheduler.
type StatementRunExecutor struct {
	customerRepo partner.CustomerRepository
	statements   StatementGenerator
	batchSize    int
	logger       *zap.Logger
}

// Verify the executor satisfies the scheduler contract
var _ scheduler.JobExecutor = (*StatementRunExecutor)(nil)

// StatementRunExecutorOption configures a StatementRunExecutor
type StatementRunExecutorOption func(*StatementRunExecutor)

// WithRunBatchSize sets how many customers are fetched per page during a run
func WithRunBatchSize(size int) StatementRunExecutorOption {
	return func(e *StatementRunExecutor) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// WithRunLogger sets the logger used for run progress and failures
func WithRunLogger(logger *zap.Logger) StatementRunExecutorOption {
	return func(e *StatementRunExecutor) {
		e.logger = logger
	}
}

// NewStatementRunExecutor creates a new statement run executor
func NewStatementRunExecutor(
	customerRepo partner.CustomerRepository,
	statements StatementGenerator,
	opts ...StatementRunExecutorOption,
) *StatementRunExecutor {
	e := &StatementRunExecutor{
		customerRepo: customerRepo,
		statements:   statements,
		batchSize:    100,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute generates a statement for every active customer of the job's
// agency, cut off at the job's reference date. A customer whose statement
// fails is logged and skipped so one bad render does not abort the whole
// run; the job itself only fails (and is retried) when no statement could
// be produced at all, since a retry would duplicate the statements that
// did succeed.
func (e *StatementRunExecutor) Execute(ctx context.Context, job *scheduler.Job) error {
	asOf := job.AsOf
	filter := shared.DefaultFilter()
	filter.PageSize = e.batchSize
	filter.OrderBy = "code"
	filter.OrderDir = "asc"

	var generated, failed int
	for page := 1; ; page++ {
		filter.Page = page
		customers, err := e.customerRepo.FindByStatus(ctx, job.AgencyID, partner.CustomerStatusActive, filter)
		if err != nil {
			return fmt.Errorf("failed to list active customers: %w", err)
		}

		for i := range customers {
			customer := &customers[i]
			if _, err := e.statements.Generate(ctx, job.AgencyID, customer.ID, GenerateStatementRequest{AsOf: &asOf}); err != nil {
				failed++
				e.logger.Warn("Statement generation failed during run",
					zap.String("agency_id", job.AgencyID.String()),
					zap.String("customer_id", customer.ID.String()),
					zap.String("customer_code", customer.Code),
					zap.Error(err),
				)
				continue
			}
			generated++
		}

		if len(customers) < e.batchSize {
			break
		}
	}

	e.logger.Info("Statement run finished",
		zap.String("agency_id", job.AgencyID.String()),
		zap.Time("as_of", asOf),
		zap.Int("generated", generated),
		zap.Int("failed", failed),
	)

	if generated == 0 && failed > 0 {
		return fmt.Errorf("statement run produced no statements: all %d customers failed", failed)
	}
	return nil
}
