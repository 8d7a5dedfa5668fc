package collection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/billing"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/collection"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCollectionRepository is a mock implementation of CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*collection.Collection, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindByNumber(ctx context.Context, agencyID uuid.UUID, collectionNumber string) (*collection.Collection, error) {
	args := m.Called(ctx, agencyID, collectionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter shared.Filter) ([]collection.Collection, error) {
	args := m.Called(ctx, agencyID, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindAllByCustomer(ctx context.Context, agencyID, customerID uuid.UUID) ([]collection.Collection, error) {
	args := m.Called(ctx, agencyID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]collection.Collection, error) {
	args := m.Called(ctx, agencyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindAllocationsByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) ([]collection.InvoiceAllocation, error) {
	args := m.Called(ctx, agencyID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.InvoiceAllocation), args.Error(1)
}

func (m *MockCollectionRepository) SumAllocationsByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, agencyID, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCollectionRepository) Save(ctx context.Context, c *collection.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCollectionRepository) SaveWithLock(ctx context.Context, c *collection.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCollectionRepository) CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, agencyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollectionRepository) ExistsByNumber(ctx context.Context, agencyID uuid.UUID, collectionNumber string) (bool, error) {
	args := m.Called(ctx, agencyID, collectionNumber)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ collection.CollectionRepository = (*MockCollectionRepository)(nil)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, agencyID uuid.UUID, code string) (*partner.Customer, error) {
	args := m.Called(ctx, agencyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, agencyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByRoute(ctx context.Context, agencyID uuid.UUID, route string, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, agencyID, route, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByStatus(ctx context.Context, agencyID uuid.UUID, status partner.CustomerStatus, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, agencyID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, agencyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByCode(ctx context.Context, agencyID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, agencyID, code)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ partner.CustomerRepository = (*MockCustomerRepository)(nil)

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, agencyID uuid.UUID, invoiceNumber string) (*billing.Invoice, error) {
	args := m.Called(ctx, agencyID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, agencyID, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllByCustomer(ctx context.Context, agencyID, customerID uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, agencyID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, agencyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, agencyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CountByCustomer(ctx context.Context, agencyID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, agencyID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsByNumber(ctx context.Context, agencyID uuid.UUID, invoiceNumber string) (bool, error) {
	args := m.Called(ctx, agencyID, invoiceNumber)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ billing.InvoiceRepository = (*MockInvoiceRepository)(nil)

// MockIdempotencyStore is a mock implementation of IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Verify interface compliance
var _ shared.IdempotencyStore = (*MockIdempotencyStore)(nil)

// =============================================================================
// Test Helper Functions
// =============================================================================

func newTestAgencyID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestCustomerID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func createTestCustomer(agencyID uuid.UUID) *partner.Customer {
	customer, _ := partner.NewCustomer(agencyID, "SHOP-001", "Kandy Textiles")
	return customer
}

func createTestInvoice(agencyID, customerID uuid.UUID, number string, total int64, createdAt time.Time) *billing.Invoice {
	lines := []billing.InvoiceLine{
		{ProductName: "Mens Shirt - L", Quantity: 1, UnitPrice: decimal.NewFromInt(total)},
	}
	invoice, _ := billing.NewInvoice(agencyID, number, customerID, "Kandy Textiles", lines, decimal.NewFromInt(total))
	invoice.CreatedAt = createdAt
	return invoice
}

// createTestCollection builds a collection of 15000: 5000 cash and a single
// post-dated cheque of 10000.
func createTestCollection(agencyID, customerID uuid.UUID) *collection.Collection {
	cashDate := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	c, _ := collection.NewCollection(
		agencyID,
		"COL-2025-001",
		customerID,
		"Kandy Textiles",
		decimal.NewFromInt(5000),
		decimal.Zero,
		decimal.NewFromInt(10000),
		decimal.NewFromInt(15000),
		cashDate,
		[]collection.ChequeInput{
			{ChequeNumber: "123456", BankName: "Commercial Bank", Amount: decimal.NewFromInt(10000), ChequeDate: cashDate.AddDate(0, 0, 30)},
		},
	)
	return c
}

// =============================================================================
// Record Tests
// =============================================================================

func TestCollectionService_Record_Success(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customer := createTestCustomer(agencyID)

	req := RecordCollectionRequest{
		CollectionNumber: "COL-2025-010",
		CustomerID:       customer.ID,
		CashAmount:       decimal.NewFromInt(5000),
		CashDiscount:     decimal.NewFromInt(500),
		ChequeAmount:     decimal.Zero,
		TotalAmount:      decimal.NewFromInt(5500),
		CashDate:         time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
	}

	mockCustomerRepo.On("FindByIDForAgency", ctx, agencyID, customer.ID).Return(customer, nil)
	mockRepo.On("ExistsByNumber", ctx, agencyID, "COL-2025-010").Return(false, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*collection.Collection")).Return(nil)

	result, err := service.Record(ctx, agencyID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "COL-2025-010", result.CollectionNumber)
	assert.Equal(t, "pending", result.Status)
	assert.True(t, result.TotalAmount.Equal(decimal.NewFromInt(5500)))
	assert.True(t, result.UnallocatedAmount.Equal(decimal.NewFromInt(5500)))
	assert.Empty(t, result.Cheques)
	mockCustomerRepo.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCollectionService_Record_WithCheques(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customer := createTestCustomer(agencyID)
	cashDate := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)

	req := RecordCollectionRequest{
		CollectionNumber: "COL-2025-011",
		CustomerID:       customer.ID,
		CashAmount:       decimal.NewFromInt(2000),
		CashDiscount:     decimal.Zero,
		ChequeAmount:     decimal.NewFromInt(8000),
		TotalAmount:      decimal.NewFromInt(10000),
		CashDate:         cashDate,
		Cheques: []ChequeRequest{
			{ChequeNumber: "700101", BankName: "Sampath Bank", Amount: decimal.NewFromInt(3000), ChequeDate: cashDate.AddDate(0, 0, 15)},
			{ChequeNumber: "700102", BankName: "Sampath Bank", Amount: decimal.NewFromInt(5000), ChequeDate: cashDate.AddDate(0, 1, 0)},
		},
	}

	mockCustomerRepo.On("FindByIDForAgency", ctx, agencyID, customer.ID).Return(customer, nil)
	mockRepo.On("ExistsByNumber", ctx, agencyID, "COL-2025-011").Return(false, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*collection.Collection")).Return(nil)

	result, err := service.Record(ctx, agencyID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Len(t, result.Cheques, 2)
	assert.Equal(t, "pending", result.Cheques[0].Status)
	assert.Equal(t, "pending", result.Cheques[1].Status)
	mockRepo.AssertExpectations(t)
}

func TestCollectionService_Record_AmountMismatch(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customer := createTestCustomer(agencyID)

	req := RecordCollectionRequest{
		CollectionNumber: "COL-2025-012",
		CustomerID:       customer.ID,
		CashAmount:       decimal.NewFromInt(1000),
		TotalAmount:      decimal.NewFromInt(2000), // cash + discount + cheques = 1000
		CashDate:         time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
	}

	mockCustomerRepo.On("FindByIDForAgency", ctx, agencyID, customer.ID).Return(customer, nil)
	mockRepo.On("ExistsByNumber", ctx, agencyID, "COL-2025-012").Return(false, nil)

	result, err := service.Record(ctx, agencyID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AMOUNT_MISMATCH", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCollectionService_Record_CustomerNotFound(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()

	req := RecordCollectionRequest{
		CollectionNumber: "COL-2025-013",
		CustomerID:       customerID,
		CashAmount:       decimal.NewFromInt(1000),
		TotalAmount:      decimal.NewFromInt(1000),
		CashDate:         time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
	}

	mockCustomerRepo.On("FindByIDForAgency", ctx, agencyID, customerID).Return(nil, nil)

	result, err := service.Record(ctx, agencyID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", domainErr.Code)
}

func TestCollectionService_Record_DuplicateNumber(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customer := createTestCustomer(agencyID)

	req := RecordCollectionRequest{
		CollectionNumber: "COL-2025-001",
		CustomerID:       customer.ID,
		CashAmount:       decimal.NewFromInt(1000),
		TotalAmount:      decimal.NewFromInt(1000),
		CashDate:         time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
	}

	mockCustomerRepo.On("FindByIDForAgency", ctx, agencyID, customer.ID).Return(customer, nil)
	mockRepo.On("ExistsByNumber", ctx, agencyID, "COL-2025-001").Return(true, nil)

	result, err := service.Record(ctx, agencyID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestCollectionService_Record_IdempotentReplay(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockStore := new(MockIdempotencyStore)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo,
		WithIdempotencyStore(mockStore, shared.DefaultIdempotencyConfig()))

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	existing := createTestCollection(agencyID, customerID)

	req := RecordCollectionRequest{
		CollectionNumber: "COL-2025-001",
		CustomerID:       customerID,
		CashAmount:       decimal.NewFromInt(5000),
		ChequeAmount:     decimal.NewFromInt(10000),
		TotalAmount:      decimal.NewFromInt(15000),
		CashDate:         time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
		IdempotencyKey:   "req-abc-123",
	}

	mockStore.On("MarkProcessed", ctx, "collection:11111111-1111-1111-1111-111111111111:req-abc-123", 24*time.Hour).Return(false, nil)
	mockRepo.On("FindByNumber", ctx, agencyID, "COL-2025-001").Return(existing, nil)

	result, err := service.Record(ctx, agencyID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, existing.ID, result.ID)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockStore.AssertExpectations(t)
}

func TestCollectionService_Record_DuplicateRequestWithoutRecord(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockStore := new(MockIdempotencyStore)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo,
		WithIdempotencyStore(mockStore, shared.DefaultIdempotencyConfig()))

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()

	req := RecordCollectionRequest{
		CollectionNumber: "COL-2025-014",
		CustomerID:       customerID,
		CashAmount:       decimal.NewFromInt(1000),
		TotalAmount:      decimal.NewFromInt(1000),
		CashDate:         time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		IdempotencyKey:   "req-def-456",
	}

	mockStore.On("MarkProcessed", ctx, mock.AnythingOfType("string"), 24*time.Hour).Return(false, nil)
	mockRepo.On("FindByNumber", ctx, agencyID, "COL-2025-014").Return(nil, nil)

	result, err := service.Record(ctx, agencyID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_REQUEST", domainErr.Code)
	mockStore.AssertExpectations(t)
}

func TestCollectionService_Record_IdempotencyStoreDown(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockStore := new(MockIdempotencyStore)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo,
		WithIdempotencyStore(mockStore, shared.DefaultIdempotencyConfig()))

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customer := createTestCustomer(agencyID)

	req := RecordCollectionRequest{
		CollectionNumber: "COL-2025-015",
		CustomerID:       customer.ID,
		CashAmount:       decimal.NewFromInt(1000),
		TotalAmount:      decimal.NewFromInt(1000),
		CashDate:         time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		IdempotencyKey:   "req-ghi-789",
	}

	mockStore.On("MarkProcessed", ctx, mock.AnythingOfType("string"), 24*time.Hour).Return(false, errors.New("redis: connection refused"))
	mockCustomerRepo.On("FindByIDForAgency", ctx, agencyID, customer.ID).Return(customer, nil)
	mockRepo.On("ExistsByNumber", ctx, agencyID, "COL-2025-015").Return(false, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*collection.Collection")).Return(nil)

	result, err := service.Record(ctx, agencyID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	mockRepo.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

// =============================================================================
// Allocate Tests
// =============================================================================

func TestCollectionService_Allocate_Success(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)
	invoice := createTestInvoice(agencyID, customerID, "INV-2025-001", 20000, time.Now())

	mockRepo.On("FindByIDForAgency", ctx, agencyID, c.ID).Return(c, nil)
	mockInvoiceRepo.On("FindByIDForAgency", ctx, agencyID, invoice.ID).Return(invoice, nil)
	mockRepo.On("SumAllocationsByInvoice", ctx, agencyID, invoice.ID).Return(decimal.NewFromInt(8000), nil)
	mockRepo.On("SaveWithLock", ctx, c).Return(nil)

	result, err := service.Allocate(ctx, agencyID, c.ID, AllocateRequest{
		InvoiceID: invoice.ID,
		Amount:    decimal.NewFromInt(12000),
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Len(t, result.Allocations, 1)
	assert.True(t, result.AllocatedAmount.Equal(decimal.NewFromInt(12000)))
	assert.True(t, result.UnallocatedAmount.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "allocated", result.Status)
	mockRepo.AssertExpectations(t)
	mockInvoiceRepo.AssertExpectations(t)
}

func TestCollectionService_Allocate_ExceedsInvoiceTotal(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)
	invoice := createTestInvoice(agencyID, customerID, "INV-2025-001", 10000, time.Now())

	mockRepo.On("FindByIDForAgency", ctx, agencyID, c.ID).Return(c, nil)
	mockInvoiceRepo.On("FindByIDForAgency", ctx, agencyID, invoice.ID).Return(invoice, nil)
	mockRepo.On("SumAllocationsByInvoice", ctx, agencyID, invoice.ID).Return(decimal.NewFromInt(9000), nil)

	result, err := service.Allocate(ctx, agencyID, c.ID, AllocateRequest{
		InvoiceID: invoice.ID,
		Amount:    decimal.NewFromInt(2000), // headroom is only 1000
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXCEEDS_INVOICE_TOTAL", domainErr.Code)
	mockRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestCollectionService_Allocate_InvoiceCustomerMismatch(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)
	invoice := createTestInvoice(agencyID, uuid.New(), "INV-2025-002", 10000, time.Now())

	mockRepo.On("FindByIDForAgency", ctx, agencyID, c.ID).Return(c, nil)
	mockInvoiceRepo.On("FindByIDForAgency", ctx, agencyID, invoice.ID).Return(invoice, nil)

	result, err := service.Allocate(ctx, agencyID, c.ID, AllocateRequest{
		InvoiceID: invoice.ID,
		Amount:    decimal.NewFromInt(1000),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVOICE_CUSTOMER_MISMATCH", domainErr.Code)
}

func TestCollectionService_Allocate_OverCollectionTotal(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID) // total 15000
	invoice := createTestInvoice(agencyID, customerID, "INV-2025-001", 50000, time.Now())

	mockRepo.On("FindByIDForAgency", ctx, agencyID, c.ID).Return(c, nil)
	mockInvoiceRepo.On("FindByIDForAgency", ctx, agencyID, invoice.ID).Return(invoice, nil)
	mockRepo.On("SumAllocationsByInvoice", ctx, agencyID, invoice.ID).Return(decimal.Zero, nil)

	result, err := service.Allocate(ctx, agencyID, c.ID, AllocateRequest{
		InvoiceID: invoice.ID,
		Amount:    decimal.NewFromInt(20000), // collection only holds 15000
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OVER_ALLOCATED", domainErr.Code)
}

// =============================================================================
// AutoAllocate Tests
// =============================================================================

func TestCollectionService_AutoAllocate_OldestFirst(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID) // 15000 unallocated

	now := time.Now()
	older := createTestInvoice(agencyID, customerID, "INV-2025-001", 10000, now.Add(-48*time.Hour))
	newer := createTestInvoice(agencyID, customerID, "INV-2025-002", 8000, now.Add(-24*time.Hour))

	// Auto-allocate runs under profiling labels, so the context the repos see
	// is a child of the caller's.
	mockRepo.On("FindByIDForAgency", mock.Anything, agencyID, c.ID).Return(c, nil)
	mockInvoiceRepo.On("FindAllByCustomer", mock.Anything, agencyID, customerID).Return([]billing.Invoice{*older, *newer}, nil)
	mockRepo.On("SumAllocationsByInvoice", mock.Anything, agencyID, older.ID).Return(decimal.Zero, nil)
	mockRepo.On("SumAllocationsByInvoice", mock.Anything, agencyID, newer.ID).Return(decimal.Zero, nil)
	mockRepo.On("SaveWithLock", mock.Anything, c).Return(nil)

	result, err := service.AutoAllocate(ctx, agencyID, c.ID, AutoAllocateRequest{})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "oldest_first", result.Plan.Strategy)
	assert.Len(t, result.Plan.Allocations, 2)
	assert.Equal(t, "INV-2025-001", result.Plan.Allocations[0].InvoiceNumber)
	assert.True(t, result.Plan.Allocations[0].Amount.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, "INV-2025-002", result.Plan.Allocations[1].InvoiceNumber)
	assert.True(t, result.Plan.Allocations[1].Amount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, result.Plan.FullyAllocated)
	assert.Equal(t, 1, result.Plan.InvoicesFullyPaid)
	assert.Equal(t, 1, result.Plan.InvoicesPartiallyPaid)
	assert.Equal(t, "completed", result.Collection.Status)
	assert.True(t, result.Collection.UnallocatedAmount.IsZero())
	mockRepo.AssertExpectations(t)
	mockInvoiceRepo.AssertExpectations(t)
}

func TestCollectionService_AutoAllocate_SkipsFullyAllocatedInvoices(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)

	now := time.Now()
	settled := createTestInvoice(agencyID, customerID, "INV-2025-001", 10000, now.Add(-48*time.Hour))
	open := createTestInvoice(agencyID, customerID, "INV-2025-002", 8000, now.Add(-24*time.Hour))

	mockRepo.On("FindByIDForAgency", mock.Anything, agencyID, c.ID).Return(c, nil)
	mockInvoiceRepo.On("FindAllByCustomer", mock.Anything, agencyID, customerID).Return([]billing.Invoice{*settled, *open}, nil)
	mockRepo.On("SumAllocationsByInvoice", mock.Anything, agencyID, settled.ID).Return(decimal.NewFromInt(10000), nil)
	mockRepo.On("SumAllocationsByInvoice", mock.Anything, agencyID, open.ID).Return(decimal.Zero, nil)
	mockRepo.On("SaveWithLock", mock.Anything, c).Return(nil)

	result, err := service.AutoAllocate(ctx, agencyID, c.ID, AutoAllocateRequest{})

	assert.NoError(t, err)
	assert.Len(t, result.Plan.Allocations, 1)
	assert.Equal(t, "INV-2025-002", result.Plan.Allocations[0].InvoiceNumber)
	assert.True(t, result.Plan.Allocations[0].Amount.Equal(decimal.NewFromInt(8000)))
	assert.False(t, result.Plan.FullyAllocated)
	assert.True(t, result.Plan.RemainingAmount.Equal(decimal.NewFromInt(7000)))
	mockRepo.AssertExpectations(t)
}

func TestCollectionService_AutoAllocate_Proportional(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID) // 15000 unallocated

	now := time.Now()
	first := createTestInvoice(agencyID, customerID, "INV-2025-001", 20000, now.Add(-48*time.Hour))
	second := createTestInvoice(agencyID, customerID, "INV-2025-002", 10000, now.Add(-24*time.Hour))

	mockRepo.On("FindByIDForAgency", mock.Anything, agencyID, c.ID).Return(c, nil)
	mockInvoiceRepo.On("FindAllByCustomer", mock.Anything, agencyID, customerID).Return([]billing.Invoice{*first, *second}, nil)
	mockRepo.On("SumAllocationsByInvoice", mock.Anything, agencyID, first.ID).Return(decimal.Zero, nil)
	mockRepo.On("SumAllocationsByInvoice", mock.Anything, agencyID, second.ID).Return(decimal.Zero, nil)
	mockRepo.On("SaveWithLock", mock.Anything, c).Return(nil)

	result, err := service.AutoAllocate(ctx, agencyID, c.ID, AutoAllocateRequest{Strategy: "proportional"})

	assert.NoError(t, err)
	assert.Equal(t, "proportional", result.Plan.Strategy)
	assert.Len(t, result.Plan.Allocations, 2)
	// 15000 spread over 20000:10000 outstanding → 10000 and 5000
	assert.True(t, result.Plan.Allocations[0].Amount.Equal(decimal.NewFromInt(10000)))
	assert.True(t, result.Plan.Allocations[1].Amount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, result.Plan.FullyAllocated)
	mockRepo.AssertExpectations(t)
}

func TestCollectionService_AutoAllocate_NothingToAllocate(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)
	invoice := createTestInvoice(agencyID, customerID, "INV-2025-001", 15000, time.Now())
	_, _ = c.AllocateToInvoice(invoice.ID, invoice.InvoiceNumber, decimal.NewFromInt(15000))

	mockRepo.On("FindByIDForAgency", mock.Anything, agencyID, c.ID).Return(c, nil)

	result, err := service.AutoAllocate(ctx, agencyID, c.ID, AutoAllocateRequest{})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOTHING_TO_ALLOCATE", domainErr.Code)
}

func TestCollectionService_AutoAllocate_NoOpenInvoices(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)

	mockRepo.On("FindByIDForAgency", mock.Anything, agencyID, c.ID).Return(c, nil)
	mockInvoiceRepo.On("FindAllByCustomer", mock.Anything, agencyID, customerID).Return([]billing.Invoice{}, nil)

	result, err := service.AutoAllocate(ctx, agencyID, c.ID, AutoAllocateRequest{})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_OPEN_INVOICES", domainErr.Code)
}

// =============================================================================
// Cheque Lifecycle Tests
// =============================================================================

func TestCollectionService_ClearCheque_Success(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)
	chequeID := c.Cheques[0].ID

	mockRepo.On("FindByIDForAgency", ctx, agencyID, c.ID).Return(c, nil)
	mockRepo.On("SaveWithLock", ctx, c).Return(nil)

	clearedAt := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	result, err := service.ClearCheque(ctx, agencyID, c.ID, chequeID, ClearChequeRequest{ClearedAt: &clearedAt})

	assert.NoError(t, err)
	assert.Equal(t, "cleared", result.Cheques[0].Status)
	assert.NotNil(t, result.Cheques[0].ClearedAt)
	assert.Equal(t, clearedAt, *result.Cheques[0].ClearedAt)
	mockRepo.AssertExpectations(t)
}

func TestCollectionService_ClearCheque_DefaultsToNow(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)
	chequeID := c.Cheques[0].ID

	mockRepo.On("FindByIDForAgency", ctx, agencyID, c.ID).Return(c, nil)
	mockRepo.On("SaveWithLock", ctx, c).Return(nil)

	result, err := service.ClearCheque(ctx, agencyID, c.ID, chequeID, ClearChequeRequest{})

	assert.NoError(t, err)
	assert.NotNil(t, result.Cheques[0].ClearedAt)
	assert.WithinDuration(t, time.Now(), *result.Cheques[0].ClearedAt, time.Minute)
	mockRepo.AssertExpectations(t)
}

func TestCollectionService_ClearCheque_AlreadyCleared(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)
	chequeID := c.Cheques[0].ID
	_ = c.MarkChequeCleared(chequeID, time.Now())

	mockRepo.On("FindByIDForAgency", ctx, agencyID, c.ID).Return(c, nil)

	result, err := service.ClearCheque(ctx, agencyID, c.ID, chequeID, ClearChequeRequest{})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	mockRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestCollectionService_ReturnCheque_Success(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)
	chequeID := c.Cheques[0].ID

	mockRepo.On("FindByIDForAgency", ctx, agencyID, c.ID).Return(c, nil)
	mockRepo.On("SaveWithLock", ctx, c).Return(nil)

	result, err := service.ReturnCheque(ctx, agencyID, c.ID, chequeID, ReturnChequeRequest{
		Reason: "Insufficient funds",
	})

	assert.NoError(t, err)
	assert.Equal(t, "returned", result.Cheques[0].Status)
	assert.NotNil(t, result.Cheques[0].ReturnedAt)
	assert.Equal(t, "Insufficient funds", result.Cheques[0].ReturnReason)
	mockRepo.AssertExpectations(t)
}

func TestCollectionService_ReturnCheque_NotFound(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)

	mockRepo.On("FindByIDForAgency", ctx, agencyID, c.ID).Return(c, nil)

	result, err := service.ReturnCheque(ctx, agencyID, c.ID, uuid.New(), ReturnChequeRequest{
		Reason: "Insufficient funds",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CHEQUE_NOT_FOUND", domainErr.Code)
}

// =============================================================================
// Query Tests
// =============================================================================

func TestCollectionService_GetByID_NotFound(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	collectionID := uuid.New()

	mockRepo.On("FindByIDForAgency", ctx, agencyID, collectionID).Return(nil, nil)

	result, err := service.GetByID(ctx, agencyID, collectionID)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestCollectionService_List_Success(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	collections := []collection.Collection{*createTestCollection(agencyID, customerID)}

	mockRepo.On("FindAllForAgency", ctx, agencyID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "cash_date" && f.OrderDir == "desc"
	})).Return(collections, nil)
	mockRepo.On("CountForAgency", ctx, agencyID, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	result, total, err := service.List(ctx, agencyID, CollectionListFilter{})

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "COL-2025-001", result[0].CollectionNumber)
	assert.Equal(t, 1, result[0].ChequeCount)
	mockRepo.AssertExpectations(t)
}

func TestCollectionService_ListByCustomer_AppliesCustomerFilter(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCollectionService(mockRepo, mockCustomerRepo, mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()

	mockRepo.On("FindAllForAgency", ctx, agencyID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["customer_id"] == customerID
	})).Return([]collection.Collection{}, nil)
	mockRepo.On("CountForAgency", ctx, agencyID, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

	result, total, err := service.ListByCustomer(ctx, agencyID, customerID, CollectionListFilter{})

	assert.NoError(t, err)
	assert.Empty(t, result)
	assert.Equal(t, int64(0), total)
	mockRepo.AssertExpectations(t)
}

// =============================================================================
// DTO Conversion Tests
// =============================================================================

func TestToCollectionResponse(t *testing.T) {
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	c := createTestCollection(agencyID, customerID)

	result := ToCollectionResponse(c)

	assert.Equal(t, c.ID, result.ID)
	assert.Equal(t, "COL-2025-001", result.CollectionNumber)
	assert.True(t, result.CashAmount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, result.ChequeAmount.Equal(decimal.NewFromInt(10000)))
	assert.Len(t, result.Cheques, 1)
	assert.Equal(t, "123456", result.Cheques[0].ChequeNumber)
	assert.Equal(t, "Commercial Bank", result.Cheques[0].BankName)
	assert.Empty(t, result.Allocations)
	assert.Equal(t, 1, result.Version)
}

func TestToCollectionListResponses(t *testing.T) {
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	collections := []collection.Collection{*createTestCollection(agencyID, customerID)}

	results := ToCollectionListResponses(collections)

	assert.Len(t, results, 1)
	assert.Equal(t, "COL-2025-001", results[0].CollectionNumber)
	assert.Equal(t, 1, results[0].ChequeCount)
	assert.Equal(t, "pending", results[0].Status)
}
