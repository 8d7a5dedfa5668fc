// Package telemetry provides OpenTelemetry integration for distributed tracing.
package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database query tracing.
type DBTracingConfig struct {
	Enabled          bool          // Enable database tracing
	LogFullSQL       bool          // Include full SQL statements in spans (dev only)
	SlowQueryThresh  time.Duration // Queries slower than this get a slow_query_warning event
	DBSystem         string        // Database system name reported on spans (default: "postgresql")
	WithoutVariables bool          // Exclude bound query variables from the recorded SQL
}

// DefaultDBTracingConfig returns the secure defaults: tracing off, SQL and
// bound variables never recorded, 200ms slow-query threshold.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:          false,
		LogFullSQL:       false,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "postgresql",
		WithoutVariables: true,
	}
}

// DBTracingPlugin registers otelgorm on a GORM instance and layers the
// repository-level span enrichment on top: rows affected, table name,
// error status, and slow-query events for the collection and summary
// query paths.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a database tracing plugin with the given configuration.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{
		config: cfg,
		logger: logger,
	}
}

// RegisterOtelGorm installs the otelgorm plugin plus the timing and
// enrichment callbacks on db. Registering twice on the same instance
// returns an error from GORM's duplicate callback check.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(p.config.DBSystem),
	}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := p.registerTimingCallbacks(db); err != nil {
		return err
	}
	if err := p.registerEnrichmentCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)

	return nil
}

// registerTimingCallbacks stamps the query start time into the statement
// context before every operation so the after-callback can measure elapsed
// time without relying on otelgorm internals.
func (p *DBTracingPlugin) registerTimingCallbacks(db *gorm.DB) error {
	before := func(db *gorm.DB) {
		if db.Statement.Context != nil {
			db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
		}
	}

	cb := db.Callback()
	for _, r := range []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("agency_timing:before_create", before) },
		func() error { return cb.Query().Before("gorm:query").Register("agency_timing:before_query", before) },
		func() error { return cb.Update().Before("gorm:update").Register("agency_timing:before_update", before) },
		func() error { return cb.Delete().Before("gorm:delete").Register("agency_timing:before_delete", before) },
		func() error { return cb.Row().Before("gorm:row").Register("agency_timing:before_row", before) },
		func() error { return cb.Raw().Before("gorm:raw").Register("agency_timing:before_raw", before) },
	} {
		if err := r(); err != nil {
			return err
		}
	}
	return nil
}

// registerEnrichmentCallbacks runs the span enrichment after each operation,
// once otelgorm has finished the span for it.
func (p *DBTracingPlugin) registerEnrichmentCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	for _, r := range []func() error{
		func() error { return cb.Create().After("gorm:create").Register("agency_tracing:after_create", p.slowQueryCallback) },
		func() error { return cb.Query().After("gorm:query").Register("agency_tracing:after_query", p.slowQueryCallback) },
		func() error { return cb.Update().After("gorm:update").Register("agency_tracing:after_update", p.slowQueryCallback) },
		func() error { return cb.Delete().After("gorm:delete").Register("agency_tracing:after_delete", p.slowQueryCallback) },
		func() error { return cb.Row().After("gorm:row").Register("agency_tracing:after_row", p.slowQueryCallback) },
		func() error { return cb.Raw().After("gorm:raw").Register("agency_tracing:after_raw", p.slowQueryCallback) },
	} {
		if err := r(); err != nil {
			return err
		}
	}
	return nil
}

// slowQueryCallback enriches the active span with row counts, the table
// touched, error status, and a slow_query_warning event when the elapsed
// time crosses the threshold. ErrRecordNotFound is an expected outcome for
// the repositories' nil,nil reads and is never marked as a span error.
func (p *DBTracingPlugin) slowQueryCallback(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if startTime, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		elapsed := time.Since(startTime)
		if elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
			))
		}
	}
}

type contextKey string

// queryStartTimeKey carries the query start time between the before and
// after callbacks.
const queryStartTimeKey contextKey = "agency_query_start_time"

// WithQueryStartTime returns a context with the query start time set.
// Exposed for tests that drive the after-callback directly.
func WithQueryStartTime(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryStartTimeKey, time.Now())
}
