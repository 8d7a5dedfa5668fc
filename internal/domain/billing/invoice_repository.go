package billing

import (
	"context"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDForAgency finds an invoice by ID within an agency
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its number within an agency
	FindByNumber(ctx context.Context, agencyID uuid.UUID, invoiceNumber string) (*Invoice, error)

	// FindByCustomer finds invoices for a customer with pagination
	FindByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindAllByCustomer finds every invoice for a customer, items included.
	// Used when the full billing history is needed, not a page of it.
	FindAllByCustomer(ctx context.Context, agencyID, customerID uuid.UUID) ([]Invoice, error)

	// FindAllForAgency finds all invoices for an agency
	FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// Save persists an invoice and its items
	Save(ctx context.Context, invoice *Invoice) error

	// CountForAgency counts invoices for an agency
	CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByCustomer counts invoices for a customer
	CountByCustomer(ctx context.Context, agencyID, customerID uuid.UUID) (int64, error)

	// ExistsByNumber checks if an invoice with the given number exists in the agency
	ExistsByNumber(ctx context.Context, agencyID uuid.UUID, invoiceNumber string) (bool, error)
}
