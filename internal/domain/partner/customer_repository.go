package partner

import (
	"context"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByIDForAgency finds a customer by ID within an agency
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*Customer, error)

	// FindByCode finds a customer by its code within an agency
	FindByCode(ctx context.Context, agencyID uuid.UUID, code string) (*Customer, error)

	// FindAllForAgency finds all customers for an agency
	FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// FindByRoute finds customers on a delivery route
	FindByRoute(ctx context.Context, agencyID uuid.UUID, route string, filter shared.Filter) ([]Customer, error)

	// FindByStatus finds customers by status for an agency
	FindByStatus(ctx context.Context, agencyID uuid.UUID, status CustomerStatus, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// CountForAgency counts customers for an agency
	CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a customer with the given code exists in the agency
	ExistsByCode(ctx context.Context, agencyID uuid.UUID, code string) (bool, error)
}
