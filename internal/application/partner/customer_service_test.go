package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/billing"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

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

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
// Only the methods needed for customer delete validation are exercised.
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

// =============================================================================
// CustomerService Tests
// =============================================================================

func TestCustomerService_Create_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	req := CreateCustomerRequest{
		Code:  "shop-002",
		Name:  "Galle Fashion Corner",
		Phone: "+94 77 123 4567",
		Route: "Galle Road South",
	}

	mockRepo.On("ExistsByCode", ctx, agencyID, req.Code).Return(false, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

	result, err := service.Create(ctx, agencyID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "SHOP-002", result.Code)
	assert.Equal(t, "Galle Fashion Corner", result.Name)
	assert.Equal(t, "+94 77 123 4567", result.Phone)
	assert.Equal(t, "Galle Road South", result.Route)
	assert.Equal(t, "active", result.Status)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_Create_DuplicateCode(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	req := CreateCustomerRequest{
		Code: "SHOP-001",
		Name: "Another Shop",
	}

	mockRepo.On("ExistsByCode", ctx, agencyID, req.Code).Return(true, nil)

	result, err := service.Create(ctx, agencyID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_Create_InvalidName(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	req := CreateCustomerRequest{
		Code: "SHOP-003",
		Name: "",
	}

	mockRepo.On("ExistsByCode", ctx, agencyID, req.Code).Return(false, nil)

	result, err := service.Create(ctx, agencyID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_NAME", domainErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_GetByID_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	customer := createTestCustomer(agencyID)

	mockRepo.On("FindByIDForAgency", ctx, agencyID, customerID).Return(customer, nil)

	result, err := service.GetByID(ctx, agencyID, customerID)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, customer.Code, result.Code)
	assert.Equal(t, agencyID, result.AgencyID)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()

	mockRepo.On("FindByIDForAgency", ctx, agencyID, customerID).Return(nil, nil)

	result, err := service.GetByID(ctx, agencyID, customerID)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_GetByCode_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customer := createTestCustomer(agencyID)

	mockRepo.On("FindByCode", ctx, agencyID, "SHOP-001").Return(customer, nil)

	result, err := service.GetByCode(ctx, agencyID, "SHOP-001")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "SHOP-001", result.Code)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_List_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	filter := CustomerListFilter{
		Page:     1,
		PageSize: 10,
		Status:   "active",
	}

	customers := []partner.Customer{
		*createTestCustomer(agencyID),
	}

	mockRepo.On("FindAllForAgency", ctx, agencyID, mock.AnythingOfType("shared.Filter")).Return(customers, nil)
	mockRepo.On("CountForAgency", ctx, agencyID, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	result, total, err := service.List(ctx, agencyID, filter)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, int64(1), total)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_List_AppliesDefaults(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()

	mockRepo.On("FindAllForAgency", ctx, agencyID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "created_at" && f.OrderDir == "desc"
	})).Return([]partner.Customer{}, nil)
	mockRepo.On("CountForAgency", ctx, agencyID, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

	result, total, err := service.List(ctx, agencyID, CustomerListFilter{})

	assert.NoError(t, err)
	assert.Empty(t, result)
	assert.Equal(t, int64(0), total)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_ListByRoute_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customers := []partner.Customer{*createTestCustomer(agencyID)}

	mockRepo.On("FindByRoute", ctx, agencyID, "Galle Road South", mock.AnythingOfType("shared.Filter")).Return(customers, nil)

	result, err := service.ListByRoute(ctx, agencyID, "Galle Road South", CustomerListFilter{})

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_Update_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	customer := createTestCustomer(agencyID)

	newName := "Kandy Textiles & Sons"
	newRoute := "Kandy Central"
	req := UpdateCustomerRequest{
		Name:  &newName,
		Route: &newRoute,
	}

	mockRepo.On("FindByIDForAgency", ctx, agencyID, customerID).Return(customer, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

	result, err := service.Update(ctx, agencyID, customerID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, newName, result.Name)
	assert.Equal(t, newRoute, result.Route)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_Update_KeepsUnsetContactFields(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	customer := createTestCustomer(agencyID)
	_ = customer.UpdateContact("+94 77 000 1111", "12 Temple Street, Kandy")

	newPhone := "+94 71 222 3333"
	req := UpdateCustomerRequest{Phone: &newPhone}

	mockRepo.On("FindByIDForAgency", ctx, agencyID, customerID).Return(customer, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

	result, err := service.Update(ctx, agencyID, customerID, req)

	assert.NoError(t, err)
	assert.Equal(t, newPhone, result.Phone)
	assert.Equal(t, "12 Temple Street, Kandy", result.Address)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_Activate_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	customer := createTestCustomer(agencyID)
	_ = customer.Deactivate()

	mockRepo.On("FindByIDForAgency", ctx, agencyID, customerID).Return(customer, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

	result, err := service.Activate(ctx, agencyID, customerID)

	assert.NoError(t, err)
	assert.Equal(t, "active", result.Status)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_Deactivate_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	customer := createTestCustomer(agencyID)

	mockRepo.On("FindByIDForAgency", ctx, agencyID, customerID).Return(customer, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

	result, err := service.Deactivate(ctx, agencyID, customerID)

	assert.NoError(t, err)
	assert.Equal(t, "inactive", result.Status)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_Deactivate_AlreadyInactive(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	customer := createTestCustomer(agencyID)
	_ = customer.Deactivate()

	mockRepo.On("FindByIDForAgency", ctx, agencyID, customerID).Return(customer, nil)

	result, err := service.Deactivate(ctx, agencyID, customerID)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_INACTIVE", domainErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_Delete_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	customer := createTestCustomer(agencyID)

	mockRepo.On("FindByIDForAgency", ctx, agencyID, customerID).Return(customer, nil)
	mockRepo.On("Delete", ctx, customerID).Return(nil)

	err := service.Delete(ctx, agencyID, customerID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_Delete_HasInvoices(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCustomerService(mockRepo)
	service.SetInvoiceRepo(mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	customer := createTestCustomer(agencyID)

	mockRepo.On("FindByIDForAgency", ctx, agencyID, customerID).Return(customer, nil)
	mockInvoiceRepo.On("CountByCustomer", ctx, agencyID, customerID).Return(int64(4), nil)

	err := service.Delete(ctx, agencyID, customerID)

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "HAS_INVOICES", domainErr.Code)
	assert.Contains(t, domainErr.Message, "4 invoice(s)")
	mockRepo.AssertExpectations(t)
	mockInvoiceRepo.AssertExpectations(t)
}

func TestCustomerService_Delete_InvoiceCheckFailed(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockInvoiceRepo := new(MockInvoiceRepository)
	service := NewCustomerService(mockRepo)
	service.SetInvoiceRepo(mockInvoiceRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()
	customerID := newTestCustomerID()
	customer := createTestCustomer(agencyID)

	mockRepo.On("FindByIDForAgency", ctx, agencyID, customerID).Return(customer, nil)
	mockInvoiceRepo.On("CountByCustomer", ctx, agencyID, customerID).Return(int64(0), errors.New("db error"))

	err := service.Delete(ctx, agencyID, customerID)

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVOICE_CHECK_FAILED", domainErr.Code)
	mockRepo.AssertExpectations(t)
	mockInvoiceRepo.AssertExpectations(t)
}

func TestCustomerService_CountByStatus_Success(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo)

	ctx := context.Background()
	agencyID := newTestAgencyID()

	mockRepo.On("CountForAgency", ctx, agencyID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "active"
	})).Return(int64(12), nil)
	mockRepo.On("CountForAgency", ctx, agencyID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "inactive"
	})).Return(int64(3), nil)

	counts, err := service.CountByStatus(ctx, agencyID)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), counts["active"])
	assert.Equal(t, int64(3), counts["inactive"])
	assert.Equal(t, int64(15), counts["total"])
	mockRepo.AssertExpectations(t)
}

// =============================================================================
// DTO Conversion Tests
// =============================================================================

func TestToCustomerResponse(t *testing.T) {
	agencyID := newTestAgencyID()
	customer := createTestCustomer(agencyID)

	result := ToCustomerResponse(customer)

	assert.Equal(t, customer.ID, result.ID)
	assert.Equal(t, customer.AgencyID, result.AgencyID)
	assert.Equal(t, customer.Code, result.Code)
	assert.Equal(t, customer.Name, result.Name)
	assert.Equal(t, string(customer.Status), result.Status)
	assert.Equal(t, customer.Version, result.Version)
}

func TestToCustomerListResponses(t *testing.T) {
	agencyID := newTestAgencyID()
	customers := []partner.Customer{
		*createTestCustomer(agencyID),
		*createTestCustomer(agencyID),
	}

	results := ToCustomerListResponses(customers)

	assert.Len(t, results, 2)
	assert.Equal(t, customers[0].Code, results[0].Code)
	assert.Equal(t, customers[1].Code, results[1].Code)
}
