package handler

import (
	collectionapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/collection"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdempotencyKeyHeader carries the client-chosen key that makes a
// collection recording retry-safe
const IdempotencyKeyHeader = "Idempotency-Key"

// CollectionHandler handles collection-related API endpoints
type CollectionHandler struct {
	BaseHandler
	collectionService *collectionapp.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collectionService *collectionapp.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
	}
}

// Record godoc
// @Summary      Record a collection
// @Description  Record a payment collected from a customer. Cash, discount and
// @Description  cheque components must add up to the total. Retries carrying
// @Description  the same Idempotency-Key return the original collection.
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        Idempotency-Key header string false "Idempotency key for safe retries"
// @Param        request body collection.RecordCollectionRequest true "Collection recording request"
// @Success      201 {object} APIResponse[collection.CollectionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /collections [post]
func (h *CollectionHandler) Record(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	var req collectionapp.RecordCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	col, err := h.collectionService.Record(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, col)
}

// GetByID godoc
// @Summary      Get collection by ID
// @Description  Retrieve a collection with its cheques and allocations by ID
// @Tags         collections
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Collection ID" format(uuid)
// @Success      200 {object} APIResponse[collection.CollectionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /collections/{id} [get]
func (h *CollectionHandler) GetByID(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	col, err := h.collectionService.GetByID(c.Request.Context(), agencyID, collectionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, col)
}

// GetByNumber godoc
// @Summary      Get collection by number
// @Description  Retrieve a collection by its agency-unique collection number
// @Tags         collections
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        number path string true "Collection number" example(COL-2026-00017)
// @Success      200 {object} APIResponse[collection.CollectionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /collections/number/{number} [get]
func (h *CollectionHandler) GetByNumber(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Collection number is required")
		return
	}

	col, err := h.collectionService.GetByNumber(c.Request.Context(), agencyID, number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, col)
}

// List godoc
// @Summary      List collections
// @Description  Retrieve a paginated list of collections with optional filtering
// @Tags         collections
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        status query string false "Collection status" Enums(pending, allocated, completed)
// @Param        start_date query string false "Start date" format(date)
// @Param        end_date query string false "End date" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]collection.CollectionListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /collections [get]
func (h *CollectionHandler) List(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	var filter collectionapp.CollectionListFilter
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

	collections, total, err := h.collectionService.List(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, collections, total, filter.Page, filter.PageSize)
}

// ListByCustomer godoc
// @Summary      List collections for a customer
// @Description  Retrieve a paginated list of one customer's collections
// @Tags         collections
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]collection.CollectionListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /collections/customers/{customer_id} [get]
func (h *CollectionHandler) ListByCustomer(c *gin.Context) {
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

	var filter collectionapp.CollectionListFilter
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

	collections, total, err := h.collectionService.ListByCustomer(c.Request.Context(), agencyID, customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, collections, total, filter.Page, filter.PageSize)
}

// Allocate godoc
// @Summary      Allocate a collection to an invoice
// @Description  Apply part of a collection's unallocated amount against one of
// @Description  the customer's invoices
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Collection ID" format(uuid)
// @Param        request body collection.AllocateRequest true "Allocation request"
// @Success      200 {object} APIResponse[collection.CollectionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /collections/{id}/allocations [post]
func (h *CollectionHandler) Allocate(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	var req collectionapp.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	col, err := h.collectionService.Allocate(c.Request.Context(), agencyID, collectionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, col)
}

// AutoAllocate godoc
// @Summary      Auto-allocate a collection
// @Description  Spread the collection's unallocated amount across the customer's
// @Description  open invoices using the requested strategy
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Collection ID" format(uuid)
// @Param        request body collection.AutoAllocateRequest false "Auto-allocation request"
// @Success      200 {object} APIResponse[collection.AutoAllocateResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /collections/{id}/auto-allocate [post]
func (h *CollectionHandler) AutoAllocate(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	var req collectionapp.AutoAllocateRequest
	// Allow empty body; the service falls back to the default strategy
	_ = c.ShouldBindJSON(&req)

	result, err := h.collectionService.AutoAllocate(c.Request.Context(), agencyID, collectionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ClearCheque godoc
// @Summary      Clear a cheque
// @Description  Mark a pending cheque as honoured by the bank
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Collection ID" format(uuid)
// @Param        cheque_id path string true "Cheque ID" format(uuid)
// @Param        request body collection.ClearChequeRequest false "Cheque clearing request"
// @Success      200 {object} APIResponse[collection.CollectionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /collections/{id}/cheques/{cheque_id}/clear [post]
func (h *CollectionHandler) ClearCheque(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	chequeID, err := uuid.Parse(c.Param("cheque_id"))
	if err != nil {
		h.BadRequest(c, "Invalid cheque ID format")
		return
	}

	var req collectionapp.ClearChequeRequest
	// Allow empty body; cleared-at defaults to now
	_ = c.ShouldBindJSON(&req)

	col, err := h.collectionService.ClearCheque(c.Request.Context(), agencyID, collectionID, chequeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, col)
}

// ReturnCheque godoc
// @Summary      Return a cheque
// @Description  Mark a pending cheque as bounced. The cheque amount drops out of
// @Description  the customer's paid total.
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        X-Agency-ID header string false "Agency ID (optional for dev)"
// @Param        id path string true "Collection ID" format(uuid)
// @Param        cheque_id path string true "Cheque ID" format(uuid)
// @Param        request body collection.ReturnChequeRequest true "Cheque return request"
// @Success      200 {object} APIResponse[collection.CollectionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /collections/{id}/cheques/{cheque_id}/return [post]
func (h *CollectionHandler) ReturnCheque(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid agency ID")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	chequeID, err := uuid.Parse(c.Param("cheque_id"))
	if err != nil {
		h.BadRequest(c, "Invalid cheque ID format")
		return
	}

	var req collectionapp.ReturnChequeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	col, err := h.collectionService.ReturnCheque(c.Request.Context(), agencyID, collectionID, chequeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, col)
}
