package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
)

// EventTypes extracts the event type names from a slice of domain events,
// preserving order.
func EventTypes(events []shared.DomainEvent) []string {
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.EventType()
	}
	return types
}

// FindEvent returns the first recorded event of the given type, or nil.
func FindEvent(events []shared.DomainEvent, eventType string) shared.DomainEvent {
	for _, e := range events {
		if e.EventType() == eventType {
			return e
		}
	}
	return nil
}

// AssertEventRecorded asserts that the aggregate holds a pending event of
// the given type and returns it for further inspection.
func AssertEventRecorded(t *testing.T, agg shared.AggregateRoot, eventType string) shared.DomainEvent {
	t.Helper()

	event := FindEvent(agg.GetDomainEvents(), eventType)
	require.NotNilf(t, event, "Expected event %q, recorded: %v", eventType, EventTypes(agg.GetDomainEvents()))
	return event
}

// AssertNoEventRecorded asserts that the aggregate holds no pending event of
// the given type.
func AssertNoEventRecorded(t *testing.T, agg shared.AggregateRoot, eventType string) {
	t.Helper()

	event := FindEvent(agg.GetDomainEvents(), eventType)
	assert.Nilf(t, event, "Did not expect event %q to be recorded", eventType)
}

// AssertEventCount asserts the number of pending events on the aggregate.
func AssertEventCount(t *testing.T, agg shared.AggregateRoot, count int) {
	t.Helper()

	events := agg.GetDomainEvents()
	assert.Lenf(t, events, count, "Unexpected event count, recorded: %v", EventTypes(events))
}

// TestEvent is a simple domain event for testing.
type TestEvent struct {
	shared.BaseDomainEvent
	Data string
}

// NewTestEvent creates a new test event scoped to the given agency.
func NewTestEvent(eventType string, agencyID uuid.UUID) *TestEvent {
	return &TestEvent{
		BaseDomainEvent: shared.BaseDomainEvent{
			ID:            uuid.New(),
			Type:          eventType,
			AgencyIDValue: agencyID,
			Timestamp:     time.Now(),
			AggID:         uuid.New(),
			AggType:       "TestAggregate",
		},
		Data: "test-data",
	}
}

// NewTestEventWithID creates a test event with a specific event ID.
func NewTestEventWithID(eventID uuid.UUID, eventType string, agencyID uuid.UUID) *TestEvent {
	return &TestEvent{
		BaseDomainEvent: shared.BaseDomainEvent{
			ID:            eventID,
			Type:          eventType,
			AgencyIDValue: agencyID,
			Timestamp:     time.Now(),
			AggID:         uuid.New(),
			AggType:       "TestAggregate",
		},
		Data: "test-data",
	}
}
