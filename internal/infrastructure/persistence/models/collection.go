package models

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/collection"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CollectionModel is the persistence model for the Collection aggregate root.
type CollectionModel struct {
	AgencyAggregateModel
	CollectionNumber  string                      `gorm:"type:varchar(50);not null;uniqueIndex:idx_collection_agency_number,priority:2"`
	CustomerID        uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CustomerName      string                      `gorm:"type:varchar(200);not null"`
	TotalAmount       decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0"`
	CashAmount        decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0"`
	CashDiscount      decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0"`
	ChequeAmount      decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0"`
	AllocatedAmount   decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0"`
	UnallocatedAmount decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0"`
	CashDate          time.Time                   `gorm:"not null;index"`
	Status            collection.CollectionStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Cheques           []CollectionChequeModel     `gorm:"foreignKey:CollectionID;references:ID"`
	Allocations       []CollectionAllocationModel `gorm:"foreignKey:CollectionID;references:ID"`
}

// TableName returns the table name for GORM
func (CollectionModel) TableName() string {
	return "collections"
}

// ToDomain converts the persistence model to a domain Collection entity.
func (m *CollectionModel) ToDomain() *collection.Collection {
	c := &collection.Collection{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		CollectionNumber:    m.CollectionNumber,
		CustomerID:          m.CustomerID,
		CustomerName:        m.CustomerName,
		TotalAmount:         m.TotalAmount,
		CashAmount:          m.CashAmount,
		CashDiscount:        m.CashDiscount,
		ChequeAmount:        m.ChequeAmount,
		AllocatedAmount:     m.AllocatedAmount,
		UnallocatedAmount:   m.UnallocatedAmount,
		CashDate:            m.CashDate,
		Status:              m.Status,
		Cheques:             make([]collection.ChequeDetail, len(m.Cheques)),
		Allocations:         make([]collection.InvoiceAllocation, len(m.Allocations)),
	}
	for i, cheque := range m.Cheques {
		c.Cheques[i] = *cheque.ToDomain()
	}
	for i, alloc := range m.Allocations {
		c.Allocations[i] = *alloc.ToDomain()
	}
	return c
}

// FromDomain populates the persistence model from a domain Collection entity.
func (m *CollectionModel) FromDomain(c *collection.Collection) {
	m.FromDomainAgencyAggregateRoot(c.AgencyAggregateRoot)
	m.CollectionNumber = c.CollectionNumber
	m.CustomerID = c.CustomerID
	m.CustomerName = c.CustomerName
	m.TotalAmount = c.TotalAmount
	m.CashAmount = c.CashAmount
	m.CashDiscount = c.CashDiscount
	m.ChequeAmount = c.ChequeAmount
	m.AllocatedAmount = c.AllocatedAmount
	m.UnallocatedAmount = c.UnallocatedAmount
	m.CashDate = c.CashDate
	m.Status = c.Status
	m.Cheques = make([]CollectionChequeModel, len(c.Cheques))
	for i, cheque := range c.Cheques {
		m.Cheques[i] = *CollectionChequeModelFromDomain(&cheque)
	}
	m.Allocations = make([]CollectionAllocationModel, len(c.Allocations))
	for i, alloc := range c.Allocations {
		m.Allocations[i] = *CollectionAllocationModelFromDomain(&alloc)
	}
}

// CollectionModelFromDomain creates a new persistence model from a domain Collection entity.
func CollectionModelFromDomain(c *collection.Collection) *CollectionModel {
	m := &CollectionModel{}
	m.FromDomain(c)
	return m
}

// CollectionChequeModel is the persistence model for the ChequeDetail entity.
type CollectionChequeModel struct {
	ID           uuid.UUID               `gorm:"type:uuid;primary_key"`
	CollectionID uuid.UUID               `gorm:"type:uuid;not null;index"`
	ChequeNumber string                  `gorm:"type:varchar(50);not null"`
	BankName     string                  `gorm:"type:varchar(200)"`
	Amount       decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	ChequeDate   time.Time               `gorm:"not null;index"`
	Status       collection.ChequeStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ClearedAt    *time.Time
	ReturnedAt   *time.Time
	ReturnReason string    `gorm:"type:varchar(500)"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CollectionChequeModel) TableName() string {
	return "collection_cheques"
}

// ToDomain converts the persistence model to a domain ChequeDetail entity.
func (m *CollectionChequeModel) ToDomain() *collection.ChequeDetail {
	return &collection.ChequeDetail{
		ID:           m.ID,
		CollectionID: m.CollectionID,
		ChequeNumber: m.ChequeNumber,
		BankName:     m.BankName,
		Amount:       m.Amount,
		ChequeDate:   m.ChequeDate,
		Status:       m.Status,
		ClearedAt:    m.ClearedAt,
		ReturnedAt:   m.ReturnedAt,
		ReturnReason: m.ReturnReason,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain ChequeDetail entity.
func (m *CollectionChequeModel) FromDomain(cd *collection.ChequeDetail) {
	m.ID = cd.ID
	m.CollectionID = cd.CollectionID
	m.ChequeNumber = cd.ChequeNumber
	m.BankName = cd.BankName
	m.Amount = cd.Amount
	m.ChequeDate = cd.ChequeDate
	m.Status = cd.Status
	m.ClearedAt = cd.ClearedAt
	m.ReturnedAt = cd.ReturnedAt
	m.ReturnReason = cd.ReturnReason
	m.CreatedAt = cd.CreatedAt
	m.UpdatedAt = cd.UpdatedAt
}

// CollectionChequeModelFromDomain creates a new persistence model from a domain ChequeDetail entity.
func CollectionChequeModelFromDomain(cd *collection.ChequeDetail) *CollectionChequeModel {
	m := &CollectionChequeModel{}
	m.FromDomain(cd)
	return m
}

// CollectionAllocationModel is the persistence model for the InvoiceAllocation entity.
type CollectionAllocationModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	CollectionID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceNumber string          `gorm:"type:varchar(50);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AllocatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CollectionAllocationModel) TableName() string {
	return "collection_allocations"
}

// ToDomain converts the persistence model to a domain InvoiceAllocation entity.
func (m *CollectionAllocationModel) ToDomain() *collection.InvoiceAllocation {
	return &collection.InvoiceAllocation{
		ID:            m.ID,
		CollectionID:  m.CollectionID,
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		Amount:        m.Amount,
		AllocatedAt:   m.AllocatedAt,
	}
}

// FromDomain populates the persistence model from a domain InvoiceAllocation entity.
func (m *CollectionAllocationModel) FromDomain(a *collection.InvoiceAllocation) {
	m.ID = a.ID
	m.CollectionID = a.CollectionID
	m.InvoiceID = a.InvoiceID
	m.InvoiceNumber = a.InvoiceNumber
	m.Amount = a.Amount
	m.AllocatedAt = a.AllocatedAt
}

// CollectionAllocationModelFromDomain creates a new persistence model from a domain InvoiceAllocation entity.
func CollectionAllocationModelFromDomain(a *collection.InvoiceAllocation) *CollectionAllocationModel {
	m := &CollectionAllocationModel{}
	m.FromDomain(a)
	return m
}
