package handler

import (
	billingapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// Create godoc
// @Summary      Create a new invoice
// @Description  Record an invoice for goods delivered to a customer. The line
// @Description  totals must add up to the invoice total.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        request body billing.CreateInvoiceRequest true "Invoice creation request"
// @Success      201 {object} APIResponse[billing.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /billing/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID godoc
// @Summary      Get invoice by ID
// @Description  Retrieve an invoice with its items by ID
// @Tags         invoices
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[billing.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /billing/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), agencyID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// GetByNumber godoc
// @Summary      Get invoice by number
// @Description  Retrieve an invoice by its agency-unique invoice number
// @Tags         invoices
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        number path string true "Invoice number" example(INV-2026-00042)
// @Success      200 {object} APIResponse[billing.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /billing/invoices/number/{number} [get]
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Invoice number is required")
		return
	}

	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), agencyID, number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List godoc
// @Summary      List invoices
// @Description  Retrieve a paginated list of invoices with optional filtering
// @Tags         invoices
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        search query string false "Search term (invoice number)"
// @Param        start_date query string false "Start date" format(date)
// @Param        end_date query string false "End date" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]billing.InvoiceListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /billing/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// ListByCustomer godoc
// @Summary      List invoices for a customer
// @Description  Retrieve a paginated list of one customer's invoices
// @Tags         invoices
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]billing.InvoiceListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /billing/customers/{customer_id}/invoices [get]
func (h *InvoiceHandler) ListByCustomer(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	invoices, total, err := h.invoiceService.ListByCustomer(c.Request.Context(), agencyID, customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}
