package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	billingapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/billing"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/billing"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Test helpers

type invoiceTestMocks struct {
	invoices  *MockInvoiceRepository
	customers *MockCustomerRepository
}

func setupInvoiceTestRouter() (*gin.Engine, *invoiceTestMocks, *InvoiceHandler) {
	gin.SetMode(gin.TestMode)

	mocks := &invoiceTestMocks{
		invoices:  new(MockInvoiceRepository),
		customers: new(MockCustomerRepository),
	}
	service := billingapp.NewInvoiceService(mocks.invoices, mocks.customers)
	handler := NewInvoiceHandler(service)

	router := gin.New()

	return router, mocks, handler
}

// createTestInvoiceWithItems builds an invoice of 49000 with two lines
func createTestInvoiceWithItems(agencyID, customerID uuid.UUID, number string) *billing.Invoice {
	invoice, err := billing.NewInvoice(
		agencyID, number, customerID, "Kandy Fashion Corner",
		[]billing.InvoiceLine{
			{ProductName: "Denim Jacket", Quantity: 10, UnitPrice: decimal.NewFromInt(2500)},
			{ProductName: "Cotton Shirt", Quantity: 20, UnitPrice: decimal.NewFromInt(1200)},
		},
		decimal.NewFromInt(49000),
	)
	if err != nil {
		panic(err)
	}
	return invoice
}

// Tests

func TestInvoiceHandler_Create(t *testing.T) {
	t.Run("should create invoice successfully", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()

		agencyID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		customerID := uuid.New()
		testCustomer := createTestCustomer(agencyID, "SHOP-001", "Kandy Fashion Corner")
		testCustomer.ID = customerID

		router.POST("/invoices", handler.Create)

		mocks.customers.On("FindByIDForAgency", mock.Anything, agencyID, customerID).
			Return(testCustomer, nil)
		mocks.invoices.On("ExistsByNumber", mock.Anything, agencyID, "INV-2026-00042").
			Return(false, nil)
		mocks.invoices.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).
			Return(nil)

		reqBody := billingapp.CreateInvoiceRequest{
			InvoiceNumber: "INV-2026-00042",
			CustomerID:    customerID,
			Items: []billingapp.InvoiceLineRequest{
				{ProductName: "Denim Jacket", Quantity: 10, UnitPrice: decimal.NewFromInt(2500)},
				{ProductName: "Cotton Shirt", Quantity: 20, UnitPrice: decimal.NewFromInt(1200)},
			},
			Total: decimal.NewFromInt(49000),
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/invoices", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Agency-ID", agencyID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.True(t, response["success"].(bool))

		data := response["data"].(map[string]interface{})
		assert.Equal(t, "INV-2026-00042", data["invoice_number"])
		assert.Equal(t, "Kandy Fashion Corner", data["customer_name"])
		assert.Equal(t, "49000", data["total"])
		assert.Equal(t, float64(2), data["item_count"])
		assert.Equal(t, float64(30), data["total_quantity"])

		mocks.invoices.AssertExpectations(t)
		mocks.customers.AssertExpectations(t)
	})

	t.Run("should return 404 for unknown customer", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()

		agencyID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		customerID := uuid.New()

		router.POST("/invoices", handler.Create)

		mocks.customers.On("FindByIDForAgency", mock.Anything, agencyID, customerID).
			Return(nil, nil)

		reqBody := billingapp.CreateInvoiceRequest{
			InvoiceNumber: "INV-2026-00042",
			CustomerID:    customerID,
			Items: []billingapp.InvoiceLineRequest{
				{ProductName: "Denim Jacket", Quantity: 1, UnitPrice: decimal.NewFromInt(2500)},
			},
			Total: decimal.NewFromInt(2500),
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/invoices", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Agency-ID", agencyID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		mocks.customers.AssertExpectations(t)
	})

	t.Run("should return conflict for duplicate invoice number", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()

		agencyID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		customerID := uuid.New()
		testCustomer := createTestCustomer(agencyID, "SHOP-001", "Kandy Fashion Corner")
		testCustomer.ID = customerID

		router.POST("/invoices", handler.Create)

		mocks.customers.On("FindByIDForAgency", mock.Anything, agencyID, customerID).
			Return(testCustomer, nil)
		mocks.invoices.On("ExistsByNumber", mock.Anything, agencyID, "INV-2026-00042").
			Return(true, nil)

		reqBody := billingapp.CreateInvoiceRequest{
			InvoiceNumber: "INV-2026-00042",
			CustomerID:    customerID,
			Items: []billingapp.InvoiceLineRequest{
				{ProductName: "Denim Jacket", Quantity: 1, UnitPrice: decimal.NewFromInt(2500)},
			},
			Total: decimal.NewFromInt(2500),
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/invoices", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Agency-ID", agencyID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errorInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "ERR_ALREADY_EXISTS", errorInfo["code"])

		mocks.invoices.AssertExpectations(t)
	})

	t.Run("should return 422 when line totals do not add up", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()

		agencyID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		customerID := uuid.New()
		testCustomer := createTestCustomer(agencyID, "SHOP-001", "Kandy Fashion Corner")
		testCustomer.ID = customerID

		router.POST("/invoices", handler.Create)

		mocks.customers.On("FindByIDForAgency", mock.Anything, agencyID, customerID).
			Return(testCustomer, nil)
		mocks.invoices.On("ExistsByNumber", mock.Anything, agencyID, "INV-2026-00043").
			Return(false, nil)

		reqBody := billingapp.CreateInvoiceRequest{
			InvoiceNumber: "INV-2026-00043",
			CustomerID:    customerID,
			Items: []billingapp.InvoiceLineRequest{
				{ProductName: "Denim Jacket", Quantity: 10, UnitPrice: decimal.NewFromInt(2500)},
			},
			Total: decimal.NewFromInt(99999),
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/invoices", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Agency-ID", agencyID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errorInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "ERR_AMOUNT_MISMATCH", errorInfo["code"])
	})

	t.Run("should return 400 for missing items", func(t *testing.T) {
		router, _, handler := setupInvoiceTestRouter()

		agencyID := uuid.MustParse("00000000-0000-0000-0000-000000000001")

		router.POST("/invoices", handler.Create)

		body, _ := json.Marshal(map[string]interface{}{
			"invoice_number": "INV-2026-00044",
			"customer_id":    uuid.New().String(),
			"total":          1000,
		})

		req, _ := http.NewRequest(http.MethodPost, "/invoices", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Agency-ID", agencyID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInvoiceHandler_GetByID(t *testing.T) {
	t.Run("should return invoice with items", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()

		agencyID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		invoice := createTestInvoiceWithItems(agencyID, uuid.New(), "INV-2026-00042")

		router.GET("/invoices/:id", handler.GetByID)

		mocks.invoices.On("FindByIDForAgency", mock.Anything, agencyID, invoice.ID).
			Return(invoice, nil)

		req, _ := http.NewRequest(http.MethodGet, "/invoices/"+invoice.ID.String(), nil)
		req.Header.Set("X-Agency-ID", agencyID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		items := data["items"].([]interface{})
		assert.Len(t, items, 2)

		mocks.invoices.AssertExpectations(t)
	})

	t.Run("should return 404 for unknown invoice", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()

		agencyID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		invoiceID := uuid.New()

		router.GET("/invoices/:id", handler.GetByID)

		mocks.invoices.On("FindByIDForAgency", mock.Anything, agencyID, invoiceID).
			Return(nil, nil)

		req, _ := http.NewRequest(http.MethodGet, "/invoices/"+invoiceID.String(), nil)
		req.Header.Set("X-Agency-ID", agencyID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should return 400 for malformed id", func(t *testing.T) {
		router, _, handler := setupInvoiceTestRouter()

		router.GET("/invoices/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/invoices/not-a-uuid", nil)
		req.Header.Set("X-Agency-ID", uuid.New().String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInvoiceHandler_GetByNumber(t *testing.T) {
	t.Run("should return invoice by number", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()

		agencyID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		invoice := createTestInvoiceWithItems(agencyID, uuid.New(), "INV-2026-00042")

		router.GET("/invoices/number/:number", handler.GetByNumber)

		mocks.invoices.On("FindByNumber", mock.Anything, agencyID, "INV-2026-00042").
			Return(invoice, nil)

		req, _ := http.NewRequest(http.MethodGet, "/invoices/number/INV-2026-00042", nil)
		req.Header.Set("X-Agency-ID", agencyID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "INV-2026-00042", data["invoice_number"])

		mocks.invoices.AssertExpectations(t)
	})

	t.Run("should return 404 for unknown number", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()

		agencyID := uuid.MustParse("00000000-0000-0000-0000-000000000001")

		router.GET("/invoices/number/:number", handler.GetByNumber)

		mocks.invoices.On("FindByNumber", mock.Anything, agencyID, "INV-9999").
			Return(nil, nil)

		req, _ := http.NewRequest(http.MethodGet, "/invoices/number/INV-9999", nil)
		req.Header.Set("X-Agency-ID", agencyID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestInvoiceHandler_List(t *testing.T) {
	t.Run("should list invoices with pagination meta", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()

		agencyID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		customerID := uuid.New()
		invoices := []billing.Invoice{
			*createTestInvoiceWithItems(agencyID, customerID, "INV-2026-00001"),
			*createTestInvoiceWithItems(agencyID, customerID, "INV-2026-00002"),
		}

		router.GET("/invoices", handler.List)

		mocks.invoices.On("FindAllForAgency", mock.Anything, agencyID, mock.AnythingOfType("shared.Filter")).
			Return(invoices, nil)
		mocks.invoices.On("CountForAgency", mock.Anything, agencyID, mock.AnythingOfType("shared.Filter")).
			Return(int64(2), nil)

		req, _ := http.NewRequest(http.MethodGet, "/invoices?page=1&page_size=20", nil)
		req.Header.Set("X-Agency-ID", agencyID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response["success"].(bool))

		data := response["data"].([]interface{})
		assert.Len(t, data, 2)

		meta := response["meta"].(map[string]interface{})
		assert.Equal(t, float64(2), meta["total"])
		assert.Equal(t, float64(1), meta["page"])

		mocks.invoices.AssertExpectations(t)
	})

	t.Run("should reject invalid order direction", func(t *testing.T) {
		router, _, handler := setupInvoiceTestRouter()

		router.GET("/invoices", handler.List)

		req, _ := http.NewRequest(http.MethodGet, "/invoices?order_dir=sideways", nil)
		req.Header.Set("X-Agency-ID", uuid.New().String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInvoiceHandler_ListByCustomer(t *testing.T) {
	t.Run("should scope the list to the customer", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()

		agencyID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		customerID := uuid.New()
		invoices := []billing.Invoice{
			*createTestInvoiceWithItems(agencyID, customerID, "INV-2026-00001"),
		}

		router.GET("/customers/:customer_id/invoices", handler.ListByCustomer)

		mocks.invoices.On("FindAllForAgency", mock.Anything, agencyID, mock.MatchedBy(func(f shared.Filter) bool {
			id, ok := f.Filters["customer_id"].(uuid.UUID)
			return ok && id == customerID
		})).Return(invoices, nil)
		mocks.invoices.On("CountForAgency", mock.Anything, agencyID, mock.AnythingOfType("shared.Filter")).
			Return(int64(1), nil)

		req, _ := http.NewRequest(http.MethodGet, "/customers/"+customerID.String()+"/invoices", nil)
		req.Header.Set("X-Agency-ID", agencyID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		mocks.invoices.AssertExpectations(t)
	})

	t.Run("should return 400 for malformed customer id", func(t *testing.T) {
		router, _, handler := setupInvoiceTestRouter()

		router.GET("/customers/:customer_id/invoices", handler.ListByCustomer)

		req, _ := http.NewRequest(http.MethodGet, "/customers/nope/invoices", nil)
		req.Header.Set("X-Agency-ID", uuid.New().String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
