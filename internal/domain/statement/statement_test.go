package statement

import (
	"testing"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingStatement(t *testing.T) *Statement {
	t.Helper()
	asOf := time.Date(2025, 8, 1, 23, 59, 59, 0, time.UTC)
	s, err := NewStatement(uuid.New(), uuid.New(), "Kandy Textiles", asOf, decimal.NewFromInt(13000))
	require.NoError(t, err)
	s.ClearDomainEvents()
	return s
}

func TestNewStatement(t *testing.T) {
	agencyID := uuid.New()
	customerID := uuid.New()
	asOf := time.Date(2025, 8, 1, 23, 59, 59, 0, time.UTC)

	t.Run("creates pending statement", func(t *testing.T) {
		s, err := NewStatement(agencyID, customerID, "Kandy Textiles", asOf, decimal.NewFromInt(13000))

		require.NoError(t, err)
		assert.Equal(t, StatementStatusPending, s.Status)
		assert.Equal(t, customerID, s.CustomerID)
		assert.Equal(t, asOf, s.AsOfDate)
		assert.True(t, s.OutstandingAmount.Equal(decimal.NewFromInt(13000)))
		assert.Equal(t, 1, s.Version)
		assert.False(t, s.HasDocument())
		assert.Len(t, s.GetDomainEvents(), 1)
	})

	t.Run("allows negative outstanding for customers in credit", func(t *testing.T) {
		s, err := NewStatement(agencyID, customerID, "Kandy Textiles", asOf, decimal.NewFromInt(-500))

		require.NoError(t, err)
		assert.True(t, s.OutstandingAmount.IsNegative())
	})

	t.Run("rejects empty customer", func(t *testing.T) {
		s, err := NewStatement(agencyID, uuid.Nil, "Kandy Textiles", asOf, decimal.Zero)

		assert.Nil(t, s)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CUSTOMER", domainErr.Code)
	})

	t.Run("rejects empty customer name", func(t *testing.T) {
		s, err := NewStatement(agencyID, customerID, "", asOf, decimal.Zero)

		assert.Nil(t, s)
		assert.Error(t, err)
	})

	t.Run("rejects zero as-of date", func(t *testing.T) {
		s, err := NewStatement(agencyID, customerID, "Kandy Textiles", time.Time{}, decimal.Zero)

		assert.Nil(t, s)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AS_OF_DATE", domainErr.Code)
	})
}

func TestStatement_Lifecycle(t *testing.T) {
	t.Run("completes through rendering", func(t *testing.T) {
		s := newPendingStatement(t)

		require.NoError(t, s.StartRendering())
		assert.True(t, s.IsRendering())

		err := s.Complete("statements/ag/cust/st.pdf", 48210, 2)

		require.NoError(t, err)
		assert.True(t, s.IsCompleted())
		assert.True(t, s.HasDocument())
		assert.Equal(t, "statements/ag/cust/st.pdf", s.StorageKey)
		assert.Equal(t, int64(48210), s.FileSizeBytes)
		assert.Equal(t, 2, s.PageCount)
		require.NotNil(t, s.GeneratedAt)
		assert.Equal(t, 3, s.Version)
		assert.Len(t, s.GetDomainEvents(), 1)
	})

	t.Run("cannot complete without rendering first", func(t *testing.T) {
		s := newPendingStatement(t)

		err := s.Complete("statements/ag/cust/st.pdf", 48210, 2)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("cannot complete without storage key", func(t *testing.T) {
		s := newPendingStatement(t)
		require.NoError(t, s.StartRendering())

		err := s.Complete("", 48210, 2)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STORAGE_KEY", domainErr.Code)
	})

	t.Run("cannot complete with empty document", func(t *testing.T) {
		s := newPendingStatement(t)
		require.NoError(t, s.StartRendering())

		err := s.Complete("statements/ag/cust/st.pdf", 0, 0)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_FILE_SIZE", domainErr.Code)
	})

	t.Run("fails from rendering with message", func(t *testing.T) {
		s := newPendingStatement(t)
		require.NoError(t, s.StartRendering())

		err := s.Fail("chrome rendering timed out")

		require.NoError(t, err)
		assert.True(t, s.IsFailed())
		assert.True(t, s.IsTerminal())
		assert.Equal(t, "chrome rendering timed out", s.ErrorMessage)
		assert.Len(t, s.GetDomainEvents(), 1)
	})

	t.Run("fails from pending with default message", func(t *testing.T) {
		s := newPendingStatement(t)

		require.NoError(t, s.Fail(""))
		assert.Equal(t, "Statement generation failed", s.ErrorMessage)
	})

	t.Run("terminal statement rejects further transitions", func(t *testing.T) {
		s := newPendingStatement(t)
		require.NoError(t, s.StartRendering())
		require.NoError(t, s.Complete("statements/ag/cust/st.pdf", 100, 1))

		assert.Error(t, s.StartRendering())
		assert.Error(t, s.Fail("too late"))
	})
}

func TestStatementStatus_Transitions(t *testing.T) {
	cases := []struct {
		from    StatementStatus
		to      StatementStatus
		allowed bool
	}{
		{StatementStatusPending, StatementStatusRendering, true},
		{StatementStatusPending, StatementStatusFailed, true},
		{StatementStatusPending, StatementStatusCompleted, false},
		{StatementStatusRendering, StatementStatusCompleted, true},
		{StatementStatusRendering, StatementStatusFailed, true},
		{StatementStatusRendering, StatementStatusPending, false},
		{StatementStatusCompleted, StatementStatusFailed, false},
		{StatementStatusFailed, StatementStatusRendering, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
