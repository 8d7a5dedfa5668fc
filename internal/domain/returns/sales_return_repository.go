package returns

import (
	"context"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// SalesReturnRepository defines the interface for sales return persistence
type SalesReturnRepository interface {
	// FindByID finds a return with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SalesReturn, error)

	// FindByIDForAgency finds a return by ID within an agency
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*SalesReturn, error)

	// FindByNumber finds a return by its number within an agency
	FindByNumber(ctx context.Context, agencyID uuid.UUID, returnNumber string) (*SalesReturn, error)

	// FindByCustomer finds returns for a customer with pagination
	FindByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter shared.Filter) ([]SalesReturn, error)

	// FindAllByCustomer finds every return for a customer, items included
	FindAllByCustomer(ctx context.Context, agencyID, customerID uuid.UUID) ([]SalesReturn, error)

	// FindByStatus finds returns by status for an agency
	FindByStatus(ctx context.Context, agencyID uuid.UUID, status ReturnStatus, filter shared.Filter) ([]SalesReturn, error)

	// FindAllForAgency finds all returns for an agency
	FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]SalesReturn, error)

	// Save persists a return and its items
	Save(ctx context.Context, r *SalesReturn) error

	// CountForAgency counts returns for an agency
	CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByNumber checks if a return with the given number exists in the agency
	ExistsByNumber(ctx context.Context, agencyID uuid.UUID, returnNumber string) (bool, error)
}
