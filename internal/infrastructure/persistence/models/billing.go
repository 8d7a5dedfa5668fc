package models

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	AgencyAggregateModel
	InvoiceNumber string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_agency_number,priority:2"`
	CustomerID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	CustomerName  string             `gorm:"type:varchar(200);not null"`
	Items         []InvoiceItemModel `gorm:"foreignKey:InvoiceID;references:ID"`
	Total         decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		InvoiceNumber:       m.InvoiceNumber,
		CustomerID:          m.CustomerID,
		CustomerName:        m.CustomerName,
		Total:               m.Total,
		Items:               make([]billing.InvoiceItem, len(m.Items)),
	}
	for i, item := range m.Items {
		inv.Items[i] = *item.ToDomain()
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAgencyAggregateRoot(inv.AgencyAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.CustomerID = inv.CustomerID
	m.CustomerName = inv.CustomerName
	m.Total = inv.Total
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = *InvoiceItemModelFromDomain(&item)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for the InvoiceItem entity.
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem entity.
func (m *InvoiceItemModel) ToDomain() *billing.InvoiceItem {
	return &billing.InvoiceItem{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		LineTotal:   m.LineTotal,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain InvoiceItem entity.
func (m *InvoiceItemModel) FromDomain(i *billing.InvoiceItem) {
	m.ID = i.ID
	m.InvoiceID = i.InvoiceID
	m.ProductName = i.ProductName
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.LineTotal = i.LineTotal
	m.CreatedAt = i.CreatedAt
}

// InvoiceItemModelFromDomain creates a new persistence model from a domain InvoiceItem entity.
func InvoiceItemModelFromDomain(i *billing.InvoiceItem) *InvoiceItemModel {
	m := &InvoiceItemModel{}
	m.FromDomain(i)
	return m
}
