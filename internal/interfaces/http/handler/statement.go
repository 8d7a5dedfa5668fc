package handler

import (
	statementapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/statement"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StatementHandler handles PDF statement API endpoints
type StatementHandler struct {
	BaseHandler
	statementService *statementapp.StatementService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService *statementapp.StatementService) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
	}
}

// Generate godoc
// @Summary      Generate a customer statement
// @Description  Render the customer's receivables summary into a PDF statement
// @Description  and store it. Rendering can take a few seconds.
// @Tags         statements
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Param        as_of query string false "Statement cut-off date" format(date)
// @Success      201 {object} APIResponse[statement.StatementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /statements/customers/{customer_id} [post]
func (h *StatementHandler) Generate(c *gin.Context) {
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

	var req statementapp.GenerateStatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	st, err := h.statementService.Generate(c.Request.Context(), agencyID, customerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, st)
}

// GetByID godoc
// @Summary      Get statement by ID
// @Description  Retrieve a statement's metadata and render status
// @Tags         statements
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Statement ID" format(uuid)
// @Success      200 {object} APIResponse[statement.StatementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /statements/{id} [get]
func (h *StatementHandler) GetByID(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	statementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid statement ID format")
		return
	}

	st, err := h.statementService.GetByID(c.Request.Context(), agencyID, statementID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, st)
}

// GetDownloadURL godoc
// @Summary      Get statement download URL
// @Description  Return a time-limited presigned URL for the rendered PDF
// @Tags         statements
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Statement ID" format(uuid)
// @Success      200 {object} APIResponse[statement.StatementDownloadResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /statements/{id}/download [get]
func (h *StatementHandler) GetDownloadURL(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	statementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid statement ID format")
		return
	}

	download, err := h.statementService.GetDownloadURL(c.Request.Context(), agencyID, statementID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, download)
}

// List godoc
// @Summary      List statements
// @Description  Retrieve a paginated list of generated statements
// @Tags         statements
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        status query string false "Statement status" Enums(pending, rendering, completed, failed)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]statement.StatementListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /statements [get]
func (h *StatementHandler) List(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	var filter statementapp.StatementListFilter
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

	statements, total, err := h.statementService.List(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, statements, total, filter.Page, filter.PageSize)
}

// ListByCustomer godoc
// @Summary      List statements for a customer
// @Description  Retrieve a paginated list of one customer's statements
// @Tags         statements
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]statement.StatementListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /statements/customers/{customer_id} [get]
func (h *StatementHandler) ListByCustomer(c *gin.Context) {
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

	var filter statementapp.StatementListFilter
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

	statements, total, err := h.statementService.ListByCustomer(c.Request.Context(), agencyID, customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, statements, total, filter.Page, filter.PageSize)
}
