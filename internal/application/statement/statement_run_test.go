package statement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/scheduler"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStatementGenerator is a mock implementation of StatementGenerator
type MockStatementGenerator struct {
	mock.Mock
}

func (m *MockStatementGenerator) Generate(ctx context.Context, agencyID, customerID uuid.UUID, req GenerateStatementRequest) (*StatementResponse, error) {
	args := m.Called(ctx, agencyID, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StatementResponse), args.Error(1)
}

// Verify interface compliance
var _ StatementGenerator = (*MockStatementGenerator)(nil)

func newActiveCustomer(agencyID uuid.UUID, code string) partner.Customer {
	customer, _ := partner.NewCustomer(agencyID, code, "Shop "+code)
	return *customer
}

func runJob(agencyID uuid.UUID) *scheduler.Job {
	asOf := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	return scheduler.NewJob(agencyID, asOf, 0)
}

func TestStatementRunExecutor_GeneratesForEveryActiveCustomer(t *testing.T) {
	agencyID := newTestAgencyID()
	customerRepo := new(MockCustomerRepository)
	generator := new(MockStatementGenerator)
	executor := NewStatementRunExecutor(customerRepo, generator)

	shopA := newActiveCustomer(agencyID, "SHOP-001")
	shopB := newActiveCustomer(agencyID, "SHOP-002")
	customerRepo.On("FindByStatus", mock.Anything, agencyID, partner.CustomerStatusActive, mock.AnythingOfType("shared.Filter")).
		Return([]partner.Customer{shopA, shopB}, nil).Once()

	job := runJob(agencyID)
	generator.On("Generate", mock.Anything, agencyID, shopA.ID, GenerateStatementRequest{AsOf: &job.AsOf}).
		Return(&StatementResponse{}, nil).Once()
	generator.On("Generate", mock.Anything, agencyID, shopB.ID, GenerateStatementRequest{AsOf: &job.AsOf}).
		Return(&StatementResponse{}, nil).Once()

	err := executor.Execute(context.Background(), job)

	require.NoError(t, err)
	customerRepo.AssertExpectations(t)
	generator.AssertExpectations(t)
}

func TestStatementRunExecutor_SkipsFailedCustomer(t *testing.T) {
	agencyID := newTestAgencyID()
	customerRepo := new(MockCustomerRepository)
	generator := new(MockStatementGenerator)
	executor := NewStatementRunExecutor(customerRepo, generator)

	shopA := newActiveCustomer(agencyID, "SHOP-001")
	shopB := newActiveCustomer(agencyID, "SHOP-002")
	customerRepo.On("FindByStatus", mock.Anything, agencyID, partner.CustomerStatusActive, mock.AnythingOfType("shared.Filter")).
		Return([]partner.Customer{shopA, shopB}, nil).Once()

	generator.On("Generate", mock.Anything, agencyID, shopA.ID, mock.Anything).
		Return(nil, errors.New("render timeout")).Once()
	generator.On("Generate", mock.Anything, agencyID, shopB.ID, mock.Anything).
		Return(&StatementResponse{}, nil).Once()

	err := executor.Execute(context.Background(), runJob(agencyID))

	// One failure does not abort the run
	require.NoError(t, err)
	generator.AssertExpectations(t)
}

func TestStatementRunExecutor_FailsWhenNoStatementProduced(t *testing.T) {
	agencyID := newTestAgencyID()
	customerRepo := new(MockCustomerRepository)
	generator := new(MockStatementGenerator)
	executor := NewStatementRunExecutor(customerRepo, generator)

	shopA := newActiveCustomer(agencyID, "SHOP-001")
	customerRepo.On("FindByStatus", mock.Anything, agencyID, partner.CustomerStatusActive, mock.AnythingOfType("shared.Filter")).
		Return([]partner.Customer{shopA}, nil).Once()

	generator.On("Generate", mock.Anything, agencyID, shopA.ID, mock.Anything).
		Return(nil, errors.New("storage unavailable")).Once()

	err := executor.Execute(context.Background(), runJob(agencyID))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no statements")
}

func TestStatementRunExecutor_ListErrorIsRetryable(t *testing.T) {
	agencyID := newTestAgencyID()
	customerRepo := new(MockCustomerRepository)
	generator := new(MockStatementGenerator)
	executor := NewStatementRunExecutor(customerRepo, generator)

	customerRepo.On("FindByStatus", mock.Anything, agencyID, partner.CustomerStatusActive, mock.AnythingOfType("shared.Filter")).
		Return(nil, errors.New("connection refused")).Once()

	err := executor.Execute(context.Background(), runJob(agencyID))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list active customers")
}

func TestStatementRunExecutor_PagesThroughCustomers(t *testing.T) {
	agencyID := newTestAgencyID()
	customerRepo := new(MockCustomerRepository)
	generator := new(MockStatementGenerator)
	executor := NewStatementRunExecutor(customerRepo, generator, WithRunBatchSize(1))

	shopA := newActiveCustomer(agencyID, "SHOP-001")
	shopB := newActiveCustomer(agencyID, "SHOP-002")

	pageFilter := func(page int) interface{} {
		return mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == page && f.PageSize == 1
		})
	}
	customerRepo.On("FindByStatus", mock.Anything, agencyID, partner.CustomerStatusActive, pageFilter(1)).
		Return([]partner.Customer{shopA}, nil).Once()
	customerRepo.On("FindByStatus", mock.Anything, agencyID, partner.CustomerStatusActive, pageFilter(2)).
		Return([]partner.Customer{shopB}, nil).Once()
	customerRepo.On("FindByStatus", mock.Anything, agencyID, partner.CustomerStatusActive, pageFilter(3)).
		Return([]partner.Customer{}, nil).Once()

	generator.On("Generate", mock.Anything, agencyID, mock.Anything, mock.Anything).
		Return(&StatementResponse{}, nil).Twice()

	err := executor.Execute(context.Background(), runJob(agencyID))

	require.NoError(t, err)
	customerRepo.AssertExpectations(t)
	generator.AssertExpectations(t)
}
