package statement

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/statement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GenerateStatementRequest carries the optional reporting cut-off for a
// statement. AsOf defaults to today; either way the figures are computed
// as of end-of-day, so cheques dated any time that day count as realized.
type GenerateStatementRequest struct {
	AsOf *time.Time `form:"as_of" time_format:"2006-01-02"`
}

// StatementResponse is the full statement representation. DownloadURL is
// a presigned link to the archived PDF and is only populated when the
// document was just generated; older statements are fetched through the
// download endpoint instead.
type StatementResponse struct {
	ID                uuid.UUID       `json:"id"`
	AgencyID          uuid.UUID       `json:"agency_id"`
	CustomerID        uuid.UUID       `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	AsOfDate          time.Time       `json:"as_of_date"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Status            string          `json:"status"`
	StorageKey        string          `json:"storage_key,omitempty"`
	FileSizeBytes     int64           `json:"file_size_bytes,omitempty"`
	PageCount         int             `json:"page_count,omitempty"`
	ErrorMessage      string          `json:"error_message,omitempty"`
	GeneratedAt       *time.Time      `json:"generated_at,omitempty"`
	DownloadURL       string          `json:"download_url,omitempty"`
	DownloadExpiresAt *time.Time      `json:"download_expires_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// StatementListResponse is the compact statement representation for list views
type StatementListResponse struct {
	ID                uuid.UUID       `json:"id"`
	CustomerID        uuid.UUID       `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	AsOfDate          time.Time       `json:"as_of_date"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Status            string          `json:"status"`
	PageCount         int             `json:"page_count,omitempty"`
	GeneratedAt       *time.Time      `json:"generated_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// StatementDownloadResponse carries a presigned download link for an
// archived statement PDF
type StatementDownloadResponse struct {
	StatementID   uuid.UUID `json:"statement_id"`
	DownloadURL   string    `json:"download_url"`
	ExpiresAt     time.Time `json:"expires_at"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	PageCount     int       `json:"page_count"`
}

// StatementListFilter carries list query parameters
type StatementListFilter struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending rendering completed failed"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToStatementResponse converts a domain statement to its response DTO
func ToStatementResponse(st *statement.Statement) StatementResponse {
	return StatementResponse{
		ID:                st.ID,
		AgencyID:          st.AgencyID,
		CustomerID:        st.CustomerID,
		CustomerName:      st.CustomerName,
		AsOfDate:          st.AsOfDate,
		OutstandingAmount: st.OutstandingAmount,
		Status:            string(st.Status),
		StorageKey:        st.StorageKey,
		FileSizeBytes:     st.FileSizeBytes,
		PageCount:         st.PageCount,
		ErrorMessage:      st.ErrorMessage,
		GeneratedAt:       st.GeneratedAt,
		CreatedAt:         st.CreatedAt,
		UpdatedAt:         st.UpdatedAt,
		Version:           st.Version,
	}
}

// ToStatementListResponse converts a domain statement to its list item DTO
func ToStatementListResponse(st *statement.Statement) StatementListResponse {
	return StatementListResponse{
		ID:                st.ID,
		CustomerID:        st.CustomerID,
		CustomerName:      st.CustomerName,
		AsOfDate:          st.AsOfDate,
		OutstandingAmount: st.OutstandingAmount,
		Status:            string(st.Status),
		PageCount:         st.PageCount,
		GeneratedAt:       st.GeneratedAt,
		CreatedAt:         st.CreatedAt,
	}
}

// ToStatementListResponses converts a slice of domain statements to list item DTOs
func ToStatementListResponses(statements []statement.Statement) []StatementListResponse {
	responses := make([]StatementListResponse, len(statements))
	for i := range statements {
		responses[i] = ToStatementListResponse(&statements[i])
	}
	return responses
}
