package handler

import (
	returnsapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/returns"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesReturnHandler handles sales return-related API endpoints
type SalesReturnHandler struct {
	BaseHandler
	returnService *returnsapp.ReturnService
}

// NewSalesReturnHandler creates a new SalesReturnHandler
func NewSalesReturnHandler(returnService *returnsapp.ReturnService) *SalesReturnHandler {
	return &SalesReturnHandler{
		returnService: returnService,
	}
}

// Create godoc
// @Summary      Create a sales return
// @Description  Record goods a customer sent back. Line items may reference the
// @Description  original invoice lines; their amounts must add up to the total.
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        request body returns.CreateReturnRequest true "Return creation request"
// @Success      201 {object} APIResponse[returns.ReturnResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /returns [post]
func (h *SalesReturnHandler) Create(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	var req returnsapp.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ret, err := h.returnService.Create(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, ret)
}

// GetByID godoc
// @Summary      Get sales return by ID
// @Description  Retrieve a sales return with its items by ID
// @Tags         returns
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Return ID" format(uuid)
// @Success      200 {object} APIResponse[returns.ReturnResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /returns/{id} [get]
func (h *SalesReturnHandler) GetByID(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	ret, err := h.returnService.GetByID(c.Request.Context(), agencyID, returnID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ret)
}

// GetByNumber godoc
// @Summary      Get sales return by number
// @Description  Retrieve a sales return by its agency-unique return number
// @Tags         returns
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        number path string true "Return number" example(RET-2026-00003)
// @Success      200 {object} APIResponse[returns.ReturnResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /returns/number/{number} [get]
func (h *SalesReturnHandler) GetByNumber(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Return number is required")
		return
	}

	ret, err := h.returnService.GetByNumber(c.Request.Context(), agencyID, number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ret)
}

// List godoc
// @Summary      List sales returns
// @Description  Retrieve a paginated list of sales returns with optional filtering
// @Tags         returns
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        status query string false "Return status" Enums(pending, approved, rejected, processed)
// @Param        start_date query string false "Start date" format(date)
// @Param        end_date query string false "End date" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]returns.ReturnListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /returns [get]
func (h *SalesReturnHandler) List(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	var filter returnsapp.ReturnListFilter
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

	rets, total, err := h.returnService.List(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, rets, total, filter.Page, filter.PageSize)
}

// ListByCustomer godoc
// @Summary      List sales returns for a customer
// @Description  Retrieve a paginated list of one customer's sales returns
// @Tags         returns
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]returns.ReturnListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /returns/customers/{customer_id} [get]
func (h *SalesReturnHandler) ListByCustomer(c *gin.Context) {
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

	var filter returnsapp.ReturnListFilter
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

	rets, total, err := h.returnService.ListByCustomer(c.Request.Context(), agencyID, customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, rets, total, filter.Page, filter.PageSize)
}

// Approve godoc
// @Summary      Approve a sales return
// @Description  Approve a pending return so it can reduce the customer's balance
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Return ID" format(uuid)
// @Param        request body returns.ApproveReturnRequest true "Approval request"
// @Success      200 {object} APIResponse[returns.ReturnResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /returns/{id}/approve [post]
func (h *SalesReturnHandler) Approve(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	var req returnsapp.ApproveReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ret, err := h.returnService.Approve(c.Request.Context(), agencyID, returnID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ret)
}

// Reject godoc
// @Summary      Reject a sales return
// @Description  Reject a pending return with a reason
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Return ID" format(uuid)
// @Param        request body returns.RejectReturnRequest true "Rejection request"
// @Success      200 {object} APIResponse[returns.ReturnResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /returns/{id}/reject [post]
func (h *SalesReturnHandler) Reject(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	var req returnsapp.RejectReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ret, err := h.returnService.Reject(c.Request.Context(), agencyID, returnID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ret)
}

// Process godoc
// @Summary      Process a sales return
// @Description  Mark an approved return as processed once the stock is back in
// @Tags         returns
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Return ID" format(uuid)
// @Success      200 {object} APIResponse[returns.ReturnResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /returns/{id}/process [post]
func (h *SalesReturnHandler) Process(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	ret, err := h.returnService.Process(c.Request.Context(), agencyID, returnID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ret)
}
