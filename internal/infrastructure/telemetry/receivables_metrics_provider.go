// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceivablesMetricsProvider implements ReceivablesMetricsProvider using GORM.
// It queries the billing and collection tables directly for aggregated metrics.
// The outstanding figure here is a monitoring approximation: invoiced minus
// allocated minus creditable returns, without the cheque realization cutoff
// applied by the reconciliation summary.
type GormReceivablesMetricsProvider struct {
	db *gorm.DB
}

// NewGormReceivablesMetricsProvider creates a new GormReceivablesMetricsProvider.
func NewGormReceivablesMetricsProvider(db *gorm.DB) *GormReceivablesMetricsProvider {
	return &GormReceivablesMetricsProvider{db: db}
}

// GetOutstandingTotal returns the approximate outstanding receivables for an agency, in cents.
func (p *GormReceivablesMetricsProvider) GetOutstandingTotal(ctx context.Context, agencyID uuid.UUID) (int64, error) {
	type result struct {
		OutstandingCents int64 `gorm:"column:outstanding_cents"`
	}

	var r result
	err := p.db.WithContext(ctx).Raw(`
		SELECT CAST(ROUND((
			COALESCE((SELECT SUM(total) FROM invoices WHERE agency_id = @agency), 0)
			- COALESCE((SELECT SUM(allocated_amount) FROM collections WHERE agency_id = @agency), 0)
			- COALESCE((SELECT SUM(total) FROM sales_returns WHERE agency_id = @agency AND status IN ('approved', 'processed')), 0)
		) * 100) AS bigint) AS outstanding_cents`,
		map[string]interface{}{"agency": agencyID},
	).Scan(&r).Error

	if err != nil {
		return 0, err
	}

	return r.OutstandingCents, nil
}

// GetPendingChequeCount returns the number of cheques still awaiting clearance for an agency.
func (p *GormReceivablesMetricsProvider) GetPendingChequeCount(ctx context.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("collection_cheques").
		Joins("JOIN collections ON collections.id = collection_cheques.collection_id").
		Where("collections.agency_id = ? AND collection_cheques.status = ?", agencyID, "pending").
		Count(&count).Error

	return count, err
}

// GormAgencyProvider implements AgencyProvider using GORM.
// Agencies exist implicitly through the customers they serve.
type GormAgencyProvider struct {
	db *gorm.DB
}

// NewGormAgencyProvider creates a new GormAgencyProvider.
func NewGormAgencyProvider(db *gorm.DB) *GormAgencyProvider {
	return &GormAgencyProvider{db: db}
}

// GetActiveAgencyIDs returns the distinct agency IDs that have customers on file.
func (p *GormAgencyProvider) GetActiveAgencyIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Table("customers").
		Distinct("agency_id").
		Find(&ids).Error

	return ids, err
}
