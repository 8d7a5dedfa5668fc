package handler

import (
	partnerapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/partner"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// Create godoc
// @Summary      Create a new customer
// @Description  Register a customer shop under the calling agency
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        request body partner.CreateCustomerRequest true "Customer creation request"
// @Success      201 {object} APIResponse[partner.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, customer)
}

// GetByID godoc
// @Summary      Get customer by ID
// @Description  Retrieve a customer by its ID
// @Tags         customers
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[partner.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), agencyID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// GetByCode godoc
// @Summary      Get customer by code
// @Description  Retrieve a customer by its agency-unique code
// @Tags         customers
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        code path string true "Customer code" example(SHOP-001)
// @Success      200 {object} APIResponse[partner.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers/code/{code} [get]
func (h *CustomerHandler) GetByCode(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Customer code is required")
		return
	}

	customer, err := h.customerService.GetByCode(c.Request.Context(), agencyID, code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// List godoc
// @Summary      List customers
// @Description  Retrieve a paginated list of customers with optional filtering
// @Tags         customers
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        search query string false "Search term (code, name, phone)"
// @Param        status query string false "Customer status" Enums(active, inactive)
// @Param        route query string false "Delivery route"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]partner.CustomerListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	var filter partnerapp.CustomerListFilter
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

	customers, total, err := h.customerService.List(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// ListByRoute godoc
// @Summary      List customers on a route
// @Description  Retrieve all customers on a delivery route for visit planning
// @Tags         customers
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        route path string true "Delivery route" example(Kandy Road)
// @Success      200 {object} APIResponse[[]partner.CustomerListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers/route/{route} [get]
func (h *CustomerHandler) ListByRoute(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	route := c.Param("route")
	if route == "" {
		h.BadRequest(c, "Route is required")
		return
	}

	var filter partnerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customers, err := h.customerService.ListByRoute(c.Request.Context(), agencyID, route, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customers)
}

// Update godoc
// @Summary      Update a customer
// @Description  Update customer contact and route details
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body partner.UpdateCustomerRequest true "Customer update request"
// @Success      200 {object} APIResponse[partner.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req partnerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), agencyID, customerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// Activate godoc
// @Summary      Activate a customer
// @Description  Re-activate a previously deactivated customer
// @Tags         customers
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[partner.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers/{id}/activate [post]
func (h *CustomerHandler) Activate(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.Activate(c.Request.Context(), agencyID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// Deactivate godoc
// @Summary      Deactivate a customer
// @Description  Deactivate a customer so no new invoices can be raised for it
// @Tags         customers
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[partner.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers/{id}/deactivate [post]
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.Deactivate(c.Request.Context(), agencyID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// Delete godoc
// @Summary      Delete a customer
// @Description  Delete a customer that has no invoices
// @Tags         customers
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Customer ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), agencyID, customerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CountByStatus godoc
// @Summary      Get customer counts by status
// @Description  Get count of customers grouped by status for dashboard
// @Tags         customers
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Success      200 {object} APIResponse[StatusCountData]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers/stats/by-status [get]
func (h *CustomerHandler) CountByStatus(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	counts, err := h.customerService.CountByStatus(c.Request.Context(), agencyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, StatusCountData{Counts: counts})
}
