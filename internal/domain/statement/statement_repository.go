package statement

import (
	"context"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// StatementRepository defines the persistence interface for statements
type StatementRepository interface {
	// FindByIDForAgency finds a statement by ID within an agency
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*Statement, error)

	// FindByCustomer finds statements for a customer with pagination
	FindByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter shared.Filter) ([]Statement, error)

	// FindAllForAgency finds all statements for an agency
	FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]Statement, error)

	// Save persists a statement
	Save(ctx context.Context, s *Statement) error

	// CountForAgency counts statements for an agency
	CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error)
}
