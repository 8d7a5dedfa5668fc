package collection

import (
	"context"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CollectionRepository defines the interface for collection persistence
type CollectionRepository interface {
	// FindByID finds a collection with its cheques and allocations by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Collection, error)

	// FindByIDForAgency finds a collection by ID within an agency
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*Collection, error)

	// FindByNumber finds a collection by its number within an agency
	FindByNumber(ctx context.Context, agencyID uuid.UUID, collectionNumber string) (*Collection, error)

	// FindByCustomer finds collections for a customer with pagination
	FindByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter shared.Filter) ([]Collection, error)

	// FindAllByCustomer finds every collection for a customer, children included.
	// Used when the full payment history is needed, not a page of it.
	FindAllByCustomer(ctx context.Context, agencyID, customerID uuid.UUID) ([]Collection, error)

	// FindAllForAgency finds all collections for an agency
	FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]Collection, error)

	// FindAllocationsByInvoice finds every allocation made against an invoice,
	// across all of the customer's collections
	FindAllocationsByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) ([]InvoiceAllocation, error)

	// SumAllocationsByInvoice returns the total amount allocated to an invoice
	SumAllocationsByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) (decimal.Decimal, error)

	// Save persists a collection and its children
	Save(ctx context.Context, c *Collection) error

	// SaveWithLock saves a collection with optimistic locking (version check).
	// Returns an error if the version has changed (concurrent modification).
	SaveWithLock(ctx context.Context, c *Collection) error

	// CountForAgency counts collections for an agency
	CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByNumber checks if a collection with the given number exists in the agency
	ExistsByNumber(ctx context.Context, agencyID uuid.UUID, collectionNumber string) (bool, error)
}
