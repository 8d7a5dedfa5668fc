package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func TestNewReceivablesMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})

	require.NoError(t, err)
	require.NotNil(t, rm)
}

func TestNewReceivablesMetrics_NilMeter(t *testing.T) {
	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter:  nil,
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, rm)
	assert.Equal(t, "NewReceivablesMetrics: meter cannot be nil", err.Error())
}

func TestReceivablesMetrics_RecordCollectionRecorded(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()
	agencyID := uuid.New()

	// Should not panic
	rm.RecordCollectionRecorded(ctx, agencyID)
	rm.RecordCollectionRecorded(ctx, agencyID)
}

func TestReceivablesMetrics_RecordCollectionAmount(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()
	agencyID := uuid.New()

	// Should not panic
	rm.RecordCollectionAmount(ctx, agencyID, 100000) // 1000.00 LKR
	rm.RecordCollectionAmount(ctx, agencyID, 250050)
}

func TestReceivablesMetrics_RecordCollectionWithAmount(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()
	agencyID := uuid.New()
	amount := decimal.NewFromFloat(1999.99)

	// Should not panic and record both count and amount
	rm.RecordCollectionWithAmount(ctx, agencyID, amount)
}

func TestReceivablesMetrics_RecordChequeTransition(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()
	agencyID := uuid.New()

	// Should not panic
	rm.RecordChequeTransition(ctx, agencyID, telemetry.ChequeTransitionCleared)
	rm.RecordChequeTransition(ctx, agencyID, telemetry.ChequeTransitionReturned)
}

func TestReceivablesMetrics_RecordSummaryComputeDuration(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()
	agencyID := uuid.New()

	// Should not panic
	rm.RecordSummaryComputeDuration(ctx, agencyID, 42*time.Millisecond, false)
	rm.RecordSummaryComputeDuration(ctx, agencyID, 180*time.Millisecond, true)
}

func TestReceivablesMetrics_RecordOutstandingAmount(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()
	agencyID := uuid.New()

	// Should not panic
	rm.RecordOutstandingAmount(ctx, agencyID, 500000)
	rm.RecordOutstandingAmount(ctx, agencyID, 250000)
}

func TestReceivablesMetrics_RecordPendingChequeCount(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()
	agencyID := uuid.New()

	// Should not panic
	rm.RecordPendingChequeCount(ctx, agencyID, 5)
	rm.RecordPendingChequeCount(ctx, agencyID, 2)
}

func TestReceivablesMetrics_RecordStatementGenerated(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()
	agencyID := uuid.New()

	// Should not panic
	rm.RecordStatementGenerated(ctx, agencyID, telemetry.StatementResultCompleted)
	rm.RecordStatementGenerated(ctx, agencyID, telemetry.StatementResultFailed)
}

// Mock implementations for testing periodic collection

type mockAgencyProvider struct {
	agencyIDs []uuid.UUID
	err       error
}

func (m *mockAgencyProvider) GetActiveAgencyIDs(ctx context.Context) ([]uuid.UUID, error) {
	return m.agencyIDs, m.err
}

type mockReceivablesProvider struct {
	outstandingCents int64
	pendingCheques   int64
	err              error
}

func (m *mockReceivablesProvider) GetOutstandingTotal(ctx context.Context, agencyID uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.outstandingCents, nil
}

func (m *mockReceivablesProvider) GetPendingChequeCount(ctx context.Context, agencyID uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.pendingCheques, nil
}

func TestReceivablesMetrics_PeriodicCollection(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	agencyID := uuid.New()

	receivablesProvider := &mockReceivablesProvider{
		outstandingCents: 750000,
		pendingCheques:   3,
	}

	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter:               meter,
		Logger:              zap.NewNop(),
		ReceivablesProvider: receivablesProvider,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agencyProvider := &mockAgencyProvider{
		agencyIDs: []uuid.UUID{agencyID},
	}

	// Start periodic collection with short interval for testing
	rm.StartPeriodicCollection(ctx, agencyProvider, 100*time.Millisecond)

	// Wait for at least one collection cycle
	time.Sleep(150 * time.Millisecond)

	// Stop collection
	rm.Stop()

	// Should complete without error
}

func TestReceivablesMetrics_PeriodicCollection_NoProvider(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
		// No receivables provider
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agencyProvider := &mockAgencyProvider{
		agencyIDs: []uuid.UUID{uuid.New()},
	}

	// Should not panic with no receivables provider
	rm.StartPeriodicCollection(ctx, agencyProvider, 50*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	rm.Stop()
}

func TestReceivablesMetrics_Stop_Idempotent(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	// Calling Stop multiple times should not panic
	rm.Stop()
	rm.Stop()
	rm.Stop()
}

func TestReceivablesMetrics_StartPeriodicCollection_OnlyOnce(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rm, err := telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agencyProvider := &mockAgencyProvider{
		agencyIDs: []uuid.UUID{},
	}

	// Calling StartPeriodicCollection multiple times should only start once
	rm.StartPeriodicCollection(ctx, agencyProvider, time.Hour)
	rm.StartPeriodicCollection(ctx, agencyProvider, time.Minute)
	rm.StartPeriodicCollection(ctx, agencyProvider, time.Second)

	rm.Stop()
}

func TestChequeTransition_Values(t *testing.T) {
	assert.Equal(t, telemetry.ChequeTransition("cleared"), telemetry.ChequeTransitionCleared)
	assert.Equal(t, telemetry.ChequeTransition("returned"), telemetry.ChequeTransitionReturned)
}

func TestStatementResult_Values(t *testing.T) {
	assert.Equal(t, telemetry.StatementResult("completed"), telemetry.StatementResultCompleted)
	assert.Equal(t, telemetry.StatementResult("failed"), telemetry.StatementResultFailed)
}

func TestMetricsError_Error(t *testing.T) {
	err := &telemetry.MetricsError{
		Op:  "TestOperation",
		Err: "test error message",
	}

	assert.Equal(t, "TestOperation: test error message", err.Error())
}
