package models

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/returns"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesReturnModel is the persistence model for the SalesReturn aggregate root.
type SalesReturnModel struct {
	AgencyAggregateModel
	ReturnNumber    string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_return_agency_number,priority:2"`
	CustomerID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	CustomerName    string                 `gorm:"type:varchar(200);not null"`
	InvoiceID       *uuid.UUID             `gorm:"type:uuid;index"`
	InvoiceNumber   string                 `gorm:"type:varchar(50)"`
	Items           []SalesReturnItemModel `gorm:"foreignKey:ReturnID;references:ID"`
	Total           decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	Reason          string                 `gorm:"type:text"`
	Status          returns.ReturnStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`
	ApprovedAt      *time.Time             `gorm:"index"`
	ApprovedBy      *uuid.UUID             `gorm:"type:uuid"`
	ApprovalNote    string                 `gorm:"type:varchar(500)"`
	RejectedAt      *time.Time
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason string     `gorm:"type:varchar(500)"`
	ProcessedAt     *time.Time
}

// TableName returns the table name for GORM
func (SalesReturnModel) TableName() string {
	return "sales_returns"
}

// ToDomain converts the persistence model to a domain SalesReturn entity.
func (m *SalesReturnModel) ToDomain() *returns.SalesReturn {
	sr := &returns.SalesReturn{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		ReturnNumber:        m.ReturnNumber,
		CustomerID:          m.CustomerID,
		CustomerName:        m.CustomerName,
		InvoiceID:           m.InvoiceID,
		InvoiceNumber:       m.InvoiceNumber,
		Total:               m.Total,
		Reason:              m.Reason,
		Status:              m.Status,
		ApprovedAt:          m.ApprovedAt,
		ApprovedBy:          m.ApprovedBy,
		ApprovalNote:        m.ApprovalNote,
		RejectedAt:          m.RejectedAt,
		RejectedBy:          m.RejectedBy,
		RejectionReason:     m.RejectionReason,
		ProcessedAt:         m.ProcessedAt,
		Items:               make([]returns.SalesReturnItem, len(m.Items)),
	}
	for i, item := range m.Items {
		sr.Items[i] = *item.ToDomain()
	}
	return sr
}

// FromDomain populates the persistence model from a domain SalesReturn entity.
func (m *SalesReturnModel) FromDomain(sr *returns.SalesReturn) {
	m.FromDomainAgencyAggregateRoot(sr.AgencyAggregateRoot)
	m.ReturnNumber = sr.ReturnNumber
	m.CustomerID = sr.CustomerID
	m.CustomerName = sr.CustomerName
	m.InvoiceID = sr.InvoiceID
	m.InvoiceNumber = sr.InvoiceNumber
	m.Total = sr.Total
	m.Reason = sr.Reason
	m.Status = sr.Status
	m.ApprovedAt = sr.ApprovedAt
	m.ApprovedBy = sr.ApprovedBy
	m.ApprovalNote = sr.ApprovalNote
	m.RejectedAt = sr.RejectedAt
	m.RejectedBy = sr.RejectedBy
	m.RejectionReason = sr.RejectionReason
	m.ProcessedAt = sr.ProcessedAt
	m.Items = make([]SalesReturnItemModel, len(sr.Items))
	for i, item := range sr.Items {
		m.Items[i] = *SalesReturnItemModelFromDomain(&item)
	}
}

// SalesReturnModelFromDomain creates a new persistence model from a domain SalesReturn entity.
func SalesReturnModelFromDomain(sr *returns.SalesReturn) *SalesReturnModel {
	m := &SalesReturnModel{}
	m.FromDomain(sr)
	return m
}

// SalesReturnItemModel is the persistence model for the SalesReturnItem entity.
type SalesReturnItemModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity      int             `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesReturnItemModel) TableName() string {
	return "sales_return_items"
}

// ToDomain converts the persistence model to a domain SalesReturnItem entity.
func (m *SalesReturnItemModel) ToDomain() *returns.SalesReturnItem {
	return &returns.SalesReturnItem{
		ID:            m.ID,
		ReturnID:      m.ReturnID,
		InvoiceItemID: m.InvoiceItemID,
		Quantity:      m.Quantity,
		Amount:        m.Amount,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain SalesReturnItem entity.
func (m *SalesReturnItemModel) FromDomain(i *returns.SalesReturnItem) {
	m.ID = i.ID
	m.ReturnID = i.ReturnID
	m.InvoiceItemID = i.InvoiceItemID
	m.Quantity = i.Quantity
	m.Amount = i.Amount
	m.CreatedAt = i.CreatedAt
}

// SalesReturnItemModelFromDomain creates a new persistence model from a domain SalesReturnItem entity.
func SalesReturnItemModelFromDomain(i *returns.SalesReturnItem) *SalesReturnItemModel {
	m := &SalesReturnItemModel{}
	m.FromDomain(i)
	return m
}
