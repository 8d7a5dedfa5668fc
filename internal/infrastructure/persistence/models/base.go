package models

import (
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// AgencyAggregateModel provides common persistence fields for agency-scoped
// aggregate roots. It extends AggregateModel with the agency ID and creator info.
type AgencyAggregateModel struct {
	AggregateModel
	AgencyID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// FromDomainAgencyAggregateRoot populates AgencyAggregateModel from domain AgencyAggregateRoot
func (m *AgencyAggregateModel) FromDomainAgencyAggregateRoot(a shared.AgencyAggregateRoot) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.AgencyID = a.AgencyID
	m.CreatedBy = a.CreatedBy
}

// PopulateAgencyAggregateRoot populates a domain AgencyAggregateRoot from persistence model
func (m *AgencyAggregateModel) PopulateAgencyAggregateRoot(a *shared.AgencyAggregateRoot) {
	a.BaseAggregateRoot.BaseEntity.ID = m.ID
	a.BaseAggregateRoot.BaseEntity.CreatedAt = m.CreatedAt
	a.BaseAggregateRoot.BaseEntity.UpdatedAt = m.UpdatedAt
	a.BaseAggregateRoot.Version = m.Version
	a.AgencyID = m.AgencyID
	a.CreatedBy = m.CreatedBy
}

// agencyAggregateRoot rebuilds a domain AgencyAggregateRoot from persistence
// fields. Shared by the ToDomain conversions in this package.
func (m *AgencyAggregateModel) agencyAggregateRoot() shared.AgencyAggregateRoot {
	return shared.AgencyAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		AgencyID:  m.AgencyID,
		CreatedBy: m.CreatedBy,
	}
}
