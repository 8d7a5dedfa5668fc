package billing

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItem represents a line item on an invoice
type InvoiceItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	ProductName string
	Quantity    int             // Pieces sold
	UnitPrice   decimal.Decimal // Price per piece
	LineTotal   decimal.Decimal // Quantity * UnitPrice
	CreatedAt   time.Time
}

// NewInvoiceItem creates a new invoice line item
func NewInvoiceItem(invoiceID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*InvoiceItem, error) {
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   time.Now(),
	}, nil
}

// GetLineTotalMoney returns the line total as Money value object
func (i *InvoiceItem) GetLineTotalMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(i.LineTotal)
}

// InvoiceLine is the input for one invoice line at creation time
type InvoiceLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Invoice represents a billed sale to a customer.
// Invoices are immutable once recorded: corrections happen through
// sales returns, never by editing the invoice.
type Invoice struct {
	shared.AgencyAggregateRoot
	InvoiceNumber string
	CustomerID    uuid.UUID
	CustomerName  string
	Items         []InvoiceItem
	Total         decimal.Decimal // Must equal the sum of line totals
}

// NewInvoice creates a new invoice from its lines.
// The declared total is cross-checked against the sum of line totals;
// a mismatch is rejected rather than silently recomputed.
func NewInvoice(agencyID uuid.UUID, invoiceNumber string, customerID uuid.UUID, customerName string, lines []InvoiceLine, total decimal.Decimal) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Invoice must have at least one item")
	}

	invoice := &Invoice{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		InvoiceNumber:       invoiceNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		Items:               make([]InvoiceItem, 0, len(lines)),
	}

	sum := decimal.Zero
	for _, line := range lines {
		item, err := NewInvoiceItem(invoice.ID, line.ProductName, line.Quantity, line.UnitPrice)
		if err != nil {
			return nil, err
		}
		invoice.Items = append(invoice.Items, *item)
		sum = sum.Add(item.LineTotal)
	}

	if !sum.Equal(total) {
		return nil, shared.ErrAmountMismatch
	}
	invoice.Total = total

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// GetTotalMoney returns the invoice total as Money
func (inv *Invoice) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(inv.Total)
}

// ItemCount returns the number of line items
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

// TotalQuantity returns the total pieces across all lines
func (inv *Invoice) TotalQuantity() int {
	total := 0
	for _, item := range inv.Items {
		total += item.Quantity
	}
	return total
}

// GetItem returns a line item by its ID
func (inv *Invoice) GetItem(itemID uuid.UUID) *InvoiceItem {
	for idx := range inv.Items {
		if inv.Items[idx].ID == itemID {
			return &inv.Items[idx]
		}
	}
	return nil
}

// ItemIDs returns the IDs of all line items
func (inv *Invoice) ItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(inv.Items))
	for _, item := range inv.Items {
		ids = append(ids, item.ID)
	}
	return ids
}
