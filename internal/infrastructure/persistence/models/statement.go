package models

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/statement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementModel is the persistence model for the Statement aggregate root.
// The rendered PDF lives in the object store; this row only tracks the
// generation attempt and the storage key of the archived document.
type StatementModel struct {
	AgencyAggregateModel
	CustomerID        uuid.UUID                 `gorm:"type:uuid;not null;index"`
	CustomerName      string                    `gorm:"type:varchar(200);not null"`
	AsOfDate          time.Time                 `gorm:"not null"`
	OutstandingAmount decimal.Decimal           `gorm:"type:decimal(18,2);not null;default:0"`
	Status            statement.StatementStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	StorageKey        string                    `gorm:"type:varchar(500)"`
	FileSizeBytes     int64                     `gorm:"not null;default:0"`
	PageCount         int                       `gorm:"not null;default:0"`
	ErrorMessage      string                    `gorm:"type:text"`
	GeneratedAt       *time.Time                `gorm:"index"`
}

// TableName returns the table name for GORM
func (StatementModel) TableName() string {
	return "statements"
}

// ToDomain converts the persistence model to a domain Statement entity.
func (m *StatementModel) ToDomain() *statement.Statement {
	return &statement.Statement{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		CustomerID:          m.CustomerID,
		CustomerName:        m.CustomerName,
		AsOfDate:            m.AsOfDate,
		OutstandingAmount:   m.OutstandingAmount,
		Status:              m.Status,
		StorageKey:          m.StorageKey,
		FileSizeBytes:       m.FileSizeBytes,
		PageCount:           m.PageCount,
		ErrorMessage:        m.ErrorMessage,
		GeneratedAt:         m.GeneratedAt,
	}
}

// FromDomain populates the persistence model from a domain Statement entity.
func (m *StatementModel) FromDomain(st *statement.Statement) {
	m.FromDomainAgencyAggregateRoot(st.AgencyAggregateRoot)
	m.CustomerID = st.CustomerID
	m.CustomerName = st.CustomerName
	m.AsOfDate = st.AsOfDate
	m.OutstandingAmount = st.OutstandingAmount
	m.Status = st.Status
	m.StorageKey = st.StorageKey
	m.FileSizeBytes = st.FileSizeBytes
	m.PageCount = st.PageCount
	m.ErrorMessage = st.ErrorMessage
	m.GeneratedAt = st.GeneratedAt
}

// StatementModelFromDomain creates a new persistence model from a domain Statement entity.
func StatementModelFromDomain(st *statement.Statement) *StatementModel {
	m := &StatementModel{}
	m.FromDomain(st)
	return m
}
