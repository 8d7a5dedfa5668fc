package models

import (
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer aggregate root.
type CustomerModel struct {
	AgencyAggregateModel
	Code    string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_agency_code,priority:2"`
	Name    string                 `gorm:"type:varchar(200);not null"`
	Phone   string                 `gorm:"type:varchar(50);index"`
	Address string                 `gorm:"type:text"`
	Route   string                 `gorm:"type:varchar(100);index"`
	Status  partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Phone:               m.Phone,
		Address:             m.Address,
		Route:               m.Route,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAgencyAggregateRoot(c.AgencyAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Phone = c.Phone
	m.Address = c.Address
	m.Route = c.Route
	m.Status = c.Status
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
