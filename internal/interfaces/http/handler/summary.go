package handler

import (
	reconciliationapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/reconciliation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SummaryHandler handles customer receivables summary endpoints
type SummaryHandler struct {
	BaseHandler
	summaryService *reconciliationapp.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *reconciliationapp.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

// GetCustomerSummary godoc
// @Summary      Get customer receivables summary
// @Description  Reconcile a customer's invoices, collections and returns into a
// @Description  per-invoice payment breakdown and an outstanding balance. An
// @Description  as_of date reconstructs the position on that day.
// @Tags         reconciliation
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Param        as_of query string false "Compute the position as of this date" format(date)
// @Success      200 {object} APIResponse[reconciliation.CustomerSummaryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reconciliation/customers/{customer_id}/summary [get]
func (h *SummaryHandler) GetCustomerSummary(c *gin.Context) {
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

	var req reconciliationapp.SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.summaryService.ComputeCustomerSummary(c.Request.Context(), agencyID, customerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
