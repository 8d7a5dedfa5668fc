// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ReceivablesMetrics provides business metrics for the receivables system.
// It tracks collection activity, cheque transitions and outstanding balances.
type ReceivablesMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	collectionRecordedTotal *Counter
	collectionAmountTotal   *Counter
	chequeTransitionTotal   *Counter
	statementGeneratedTotal *Counter

	// Histogram metrics (distributions)
	summaryComputeDuration *Histogram

	// Gauge metrics (point-in-time values)
	outstandingAmount  *Gauge
	pendingChequeCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	receivablesProvider ReceivablesMetricsProvider
}

// ReceivablesMetricsProvider provides receivables data for periodic metrics
// collection. This interface allows the telemetry layer to query balances
// without depending on the billing or collection domains directly.
type ReceivablesMetricsProvider interface {
	// GetOutstandingTotal returns the approximate outstanding receivables for an agency, in cents.
	GetOutstandingTotal(ctx context.Context, agencyID uuid.UUID) (int64, error)

	// GetPendingChequeCount returns the number of cheques still awaiting clearance for an agency.
	GetPendingChequeCount(ctx context.Context, agencyID uuid.UUID) (int64, error)
}

// ReceivablesMetricsConfig holds configuration for receivables metrics.
type ReceivablesMetricsConfig struct {
	Meter               metric.Meter
	Logger              *zap.Logger
	CollectInterval     time.Duration // Default: 5 minutes
	ReceivablesProvider ReceivablesMetricsProvider
}

// NewReceivablesMetrics creates a new ReceivablesMetrics instance.
func NewReceivablesMetrics(cfg ReceivablesMetricsConfig) (*ReceivablesMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rm := &ReceivablesMetrics{
		meter:               cfg.Meter,
		logger:              logger,
		stopChan:            make(chan struct{}),
		receivablesProvider: cfg.ReceivablesProvider,
	}

	// Initialize counter metrics
	var err error

	// Collection metrics
	rm.collectionRecordedTotal, err = NewCounter(
		cfg.Meter,
		"receivables_collection_recorded_total",
		"Total number of collections recorded",
		"{collections}",
	)
	if err != nil {
		return nil, err
	}

	rm.collectionAmountTotal, err = NewCounter(
		cfg.Meter,
		"receivables_collection_amount_total",
		"Total collected amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	// Cheque lifecycle metrics
	rm.chequeTransitionTotal, err = NewCounter(
		cfg.Meter,
		"receivables_cheque_transition_total",
		"Total number of cheque clear/return transitions",
		"{transitions}",
	)
	if err != nil {
		return nil, err
	}

	// Statement metrics
	rm.statementGeneratedTotal, err = NewCounter(
		cfg.Meter,
		"receivables_statement_generated_total",
		"Total number of statement generation attempts",
		"{statements}",
	)
	if err != nil {
		return nil, err
	}

	// Reconciliation metrics
	rm.summaryComputeDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "receivables_summary_compute_duration_seconds",
		Description: "Time spent computing customer receivables summaries",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	// Outstanding balance gauge metrics
	rm.outstandingAmount, err = NewGauge(
		cfg.Meter,
		"receivables_outstanding_amount",
		"Approximate outstanding receivables in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	rm.pendingChequeCount, err = NewGauge(
		cfg.Meter,
		"receivables_pending_cheque_count",
		"Number of cheques awaiting clearance",
		"{cheques}",
	)
	if err != nil {
		return nil, err
	}

	return rm, nil
}

// =============================================================================
// Collection Metrics
// =============================================================================

// RecordCollectionRecorded records a collection creation event.
// This should be called from the application layer when a collection is recorded.
func (rm *ReceivablesMetrics) RecordCollectionRecorded(ctx context.Context, agencyID uuid.UUID) {
	rm.collectionRecordedTotal.Inc(ctx,
		AttrAgencyID.String(agencyID.String()),
	)
}

// RecordCollectionAmount records the collected amount.
// Amount should be in the smallest currency unit (cents).
func (rm *ReceivablesMetrics) RecordCollectionAmount(ctx context.Context, agencyID uuid.UUID, amountCents int64) {
	rm.collectionAmountTotal.Add(ctx, amountCents,
		AttrAgencyID.String(agencyID.String()),
	)
}

// RecordCollectionWithAmount is a convenience method that records both collection count and amount.
func (rm *ReceivablesMetrics) RecordCollectionWithAmount(ctx context.Context, agencyID uuid.UUID, amount decimal.Decimal) {
	rm.RecordCollectionRecorded(ctx, agencyID)

	// Convert to cents (multiply by 100)
	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	rm.RecordCollectionAmount(ctx, agencyID, amountCents)
}

// =============================================================================
// Cheque Metrics
// =============================================================================

// ChequeTransition represents a cheque lifecycle transition for metrics labeling.
type ChequeTransition string

const (
	ChequeTransitionCleared  ChequeTransition = "cleared"
	ChequeTransitionReturned ChequeTransition = "returned"
)

// RecordChequeTransition records a cheque clear or return event.
func (rm *ReceivablesMetrics) RecordChequeTransition(ctx context.Context, agencyID uuid.UUID, transition ChequeTransition) {
	rm.chequeTransitionTotal.Inc(ctx,
		AttrAgencyID.String(agencyID.String()),
		AttrChequeTransition.String(string(transition)),
	)
}

// =============================================================================
// Statement Metrics
// =============================================================================

// StatementResult labels the outcome of a statement generation attempt.
type StatementResult string

const (
	StatementResultCompleted StatementResult = "completed"
	StatementResultFailed    StatementResult = "failed"
)

// RecordStatementGenerated records a statement generation attempt and its outcome.
func (rm *ReceivablesMetrics) RecordStatementGenerated(ctx context.Context, agencyID uuid.UUID, result StatementResult) {
	rm.statementGeneratedTotal.Inc(ctx,
		AttrAgencyID.String(agencyID.String()),
		AttrStatementResult.String(string(result)),
	)
}

// =============================================================================
// Reconciliation Metrics
// =============================================================================

// RecordSummaryComputeDuration records how long a customer summary computation took.
// Degraded summaries (where allocation data could not be fetched for some
// invoices) are labeled so the failure mode is visible in dashboards.
func (rm *ReceivablesMetrics) RecordSummaryComputeDuration(ctx context.Context, agencyID uuid.UUID, d time.Duration, degraded bool) {
	rm.summaryComputeDuration.RecordDuration(ctx, d,
		AttrAgencyID.String(agencyID.String()),
		AttrDegraded.Bool(degraded),
	)
}

// =============================================================================
// Outstanding Balance Metrics
// =============================================================================

// RecordOutstandingAmount records the current outstanding receivables for an agency.
// This is a gauge metric that should be updated periodically.
func (rm *ReceivablesMetrics) RecordOutstandingAmount(ctx context.Context, agencyID uuid.UUID, amountCents int64) {
	rm.outstandingAmount.Record(ctx, amountCents,
		AttrAgencyID.String(agencyID.String()),
	)
}

// RecordPendingChequeCount records the number of uncleared cheques for an agency.
// This is a gauge metric that should be updated periodically.
func (rm *ReceivablesMetrics) RecordPendingChequeCount(ctx context.Context, agencyID uuid.UUID, count int64) {
	rm.pendingChequeCount.Record(ctx, count,
		AttrAgencyID.String(agencyID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// AgencyProvider provides agency IDs for periodic metrics collection.
type AgencyProvider interface {
	GetActiveAgencyIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects outstanding balances every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (rm *ReceivablesMetrics) StartPeriodicCollection(ctx context.Context, agencyProvider AgencyProvider, interval time.Duration) {
	rm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go rm.runPeriodicCollection(ctx, agencyProvider, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (rm *ReceivablesMetrics) runPeriodicCollection(ctx context.Context, agencyProvider AgencyProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	rm.collectOutstandingMetrics(ctx, agencyProvider)

	for {
		select {
		case <-rm.stopChan:
			rm.logger.Info("Stopping periodic receivables metrics collection")
			return
		case <-ctx.Done():
			rm.logger.Info("Context cancelled, stopping periodic receivables metrics collection")
			return
		case <-ticker.C:
			rm.collectOutstandingMetrics(ctx, agencyProvider)
		}
	}
}

// collectOutstandingMetrics collects outstanding gauge metrics for all agencies.
func (rm *ReceivablesMetrics) collectOutstandingMetrics(ctx context.Context, agencyProvider AgencyProvider) {
	if rm.receivablesProvider == nil {
		rm.logger.Debug("No receivables provider configured, skipping outstanding metrics collection")
		return
	}

	agencyIDs, err := agencyProvider.GetActiveAgencyIDs(ctx)
	if err != nil {
		rm.logger.Error("Failed to get agency IDs for metrics collection", zap.Error(err))
		return
	}

	for _, agencyID := range agencyIDs {
		rm.collectAgencyOutstandingMetrics(ctx, agencyID)
	}
}

// collectAgencyOutstandingMetrics collects outstanding metrics for a single agency.
func (rm *ReceivablesMetrics) collectAgencyOutstandingMetrics(ctx context.Context, agencyID uuid.UUID) {
	// Collect outstanding receivables total
	outstanding, err := rm.receivablesProvider.GetOutstandingTotal(ctx, agencyID)
	if err != nil {
		rm.logger.Warn("Failed to get outstanding total for agency",
			zap.String("agency_id", agencyID.String()),
			zap.Error(err),
		)
	} else {
		rm.RecordOutstandingAmount(ctx, agencyID, outstanding)
	}

	// Collect pending cheque count
	pendingCheques, err := rm.receivablesProvider.GetPendingChequeCount(ctx, agencyID)
	if err != nil {
		rm.logger.Warn("Failed to get pending cheque count for agency",
			zap.String("agency_id", agencyID.String()),
			zap.Error(err),
		)
	} else {
		rm.RecordPendingChequeCount(ctx, agencyID, pendingCheques)
	}
}

// Stop stops the periodic collection.
func (rm *ReceivablesMetrics) Stop() {
	rm.stopOnce.Do(func() {
		close(rm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewReceivablesMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
