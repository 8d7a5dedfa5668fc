package collection

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func target(number string, outstanding int64, createdAt time.Time) InvoiceTarget {
	return InvoiceTarget{
		InvoiceID:         uuid.New(),
		InvoiceNumber:     number,
		OutstandingAmount: decimal.NewFromInt(outstanding),
		CreatedAt:         createdAt,
	}
}

func TestOldestFirstStrategy(t *testing.T) {
	strategy := NewOldestFirstStrategy()
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("settles oldest invoice before newer ones", func(t *testing.T) {
		newest := target("INV-003", 500, base.AddDate(0, 2, 0))
		oldest := target("INV-001", 300, base)
		middle := target("INV-002", 400, base.AddDate(0, 1, 0))

		plan, err := strategy.Allocate(decimal.NewFromInt(600), []InvoiceTarget{newest, oldest, middle})

		require.NoError(t, err)
		require.Len(t, plan.Allocations, 2)
		assert.Equal(t, "INV-001", plan.Allocations[0].InvoiceNumber)
		assert.True(t, plan.Allocations[0].Amount.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, "INV-002", plan.Allocations[1].InvoiceNumber)
		assert.True(t, plan.Allocations[1].Amount.Equal(decimal.NewFromInt(300)))
		assert.True(t, plan.FullyAllocated)
		assert.Contains(t, plan.InvoicesFullyPaid, oldest.InvoiceID)
		assert.Contains(t, plan.InvoicesPartiallyPaid, middle.InvoiceID)
	})

	t.Run("breaks date ties by invoice number", func(t *testing.T) {
		second := target("INV-B", 100, base)
		first := target("INV-A", 100, base)

		plan, err := strategy.Allocate(decimal.NewFromInt(150), []InvoiceTarget{second, first})

		require.NoError(t, err)
		require.Len(t, plan.Allocations, 2)
		assert.Equal(t, "INV-A", plan.Allocations[0].InvoiceNumber)
		assert.Equal(t, "INV-B", plan.Allocations[1].InvoiceNumber)
	})

	t.Run("skips invoices with nothing outstanding", func(t *testing.T) {
		settled := target("INV-001", 0, base)
		open := target("INV-002", 200, base.AddDate(0, 1, 0))

		plan, err := strategy.Allocate(decimal.NewFromInt(100), []InvoiceTarget{settled, open})

		require.NoError(t, err)
		require.Len(t, plan.Allocations, 1)
		assert.Equal(t, open.InvoiceID, plan.Allocations[0].InvoiceID)
	})

	t.Run("leaves remainder when all invoices are settled", func(t *testing.T) {
		only := target("INV-001", 300, base)

		plan, err := strategy.Allocate(decimal.NewFromInt(500), []InvoiceTarget{only})

		require.NoError(t, err)
		assert.True(t, plan.TotalAllocated.Equal(decimal.NewFromInt(300)))
		assert.True(t, plan.RemainingAmount.Equal(decimal.NewFromInt(200)))
		assert.False(t, plan.FullyAllocated)
	})

	t.Run("returns empty plan for no targets", func(t *testing.T) {
		plan, err := strategy.Allocate(decimal.NewFromInt(500), nil)

		require.NoError(t, err)
		assert.Empty(t, plan.Allocations)
		assert.True(t, plan.RemainingAmount.Equal(decimal.NewFromInt(500)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := strategy.Allocate(decimal.Zero, []InvoiceTarget{target("INV-001", 100, base)})

		assert.Error(t, err)
	})
}

func TestProportionalStrategy(t *testing.T) {
	strategy := NewProportionalStrategy()
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("splits pro-rata by outstanding balance", func(t *testing.T) {
		big := target("INV-001", 600, base)
		small := target("INV-002", 400, base)

		plan, err := strategy.Allocate(decimal.NewFromInt(500), []InvoiceTarget{big, small})

		require.NoError(t, err)
		require.Len(t, plan.Allocations, 2)
		assert.True(t, plan.Allocations[0].Amount.Equal(decimal.NewFromInt(300)))
		assert.True(t, plan.Allocations[1].Amount.Equal(decimal.NewFromInt(200)))
		assert.True(t, plan.FullyAllocated)
	})

	t.Run("hands out truncated cents so the plan sums exactly", func(t *testing.T) {
		targets := []InvoiceTarget{
			target("INV-001", 1000, base),
			target("INV-002", 1000, base),
			target("INV-003", 1000, base),
		}

		plan, err := strategy.Allocate(decimal.NewFromInt(100), targets)

		require.NoError(t, err)
		require.Len(t, plan.Allocations, 3)

		sum := decimal.Zero
		for _, alloc := range plan.Allocations {
			sum = sum.Add(alloc.Amount)
		}
		assert.True(t, sum.Equal(decimal.NewFromInt(100)))
		assert.True(t, plan.Allocations[0].Amount.Equal(decimal.RequireFromString("33.34")))
		assert.True(t, plan.Allocations[1].Amount.Equal(decimal.RequireFromString("33.33")))
		assert.True(t, plan.Allocations[2].Amount.Equal(decimal.RequireFromString("33.33")))
	})

	t.Run("never exceeds an invoice's outstanding balance", func(t *testing.T) {
		targets := []InvoiceTarget{
			target("INV-001", 10, base),
			target("INV-002", 990, base),
		}

		plan, err := strategy.Allocate(decimal.NewFromInt(500), targets)

		require.NoError(t, err)
		for _, alloc := range plan.Allocations {
			idx := 0
			if alloc.InvoiceNumber == "INV-002" {
				idx = 1
			}
			assert.True(t, alloc.Amount.LessThanOrEqual(targets[idx].OutstandingAmount))
		}
	})

	t.Run("settles everything when amount covers all outstanding", func(t *testing.T) {
		first := target("INV-001", 300, base)
		second := target("INV-002", 200, base)

		plan, err := strategy.Allocate(decimal.NewFromInt(600), []InvoiceTarget{first, second})

		require.NoError(t, err)
		assert.True(t, plan.TotalAllocated.Equal(decimal.NewFromInt(500)))
		assert.True(t, plan.RemainingAmount.Equal(decimal.NewFromInt(100)))
		assert.Len(t, plan.InvoicesFullyPaid, 2)
		assert.Empty(t, plan.InvoicesPartiallyPaid)
	})

	t.Run("returns empty plan for no targets", func(t *testing.T) {
		plan, err := strategy.Allocate(decimal.NewFromInt(500), nil)

		require.NoError(t, err)
		assert.Empty(t, plan.Allocations)
		assert.True(t, plan.RemainingAmount.Equal(decimal.NewFromInt(500)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := strategy.Allocate(decimal.NewFromInt(-1), []InvoiceTarget{target("INV-001", 100, base)})

		assert.Error(t, err)
	})
}

func TestAllocationStrategyFactory(t *testing.T) {
	factory := NewAllocationStrategyFactory()

	t.Run("resolves oldest first", func(t *testing.T) {
		strategy, err := factory.GetStrategy(AllocationStrategyTypeOldestFirst)

		require.NoError(t, err)
		assert.Equal(t, AllocationStrategyTypeOldestFirst, strategy.StrategyType())
	})

	t.Run("resolves proportional", func(t *testing.T) {
		strategy, err := factory.GetStrategy(AllocationStrategyTypeProportional)

		require.NoError(t, err)
		assert.Equal(t, AllocationStrategyTypeProportional, strategy.StrategyType())
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := factory.GetStrategy(AllocationStrategyType("newest_first"))

		assert.Error(t, err)
	})
}

func TestAllocationStrategyTypes(t *testing.T) {
	assert.True(t, AllocationStrategyTypeOldestFirst.IsValid())
	assert.True(t, AllocationStrategyTypeProportional.IsValid())
	assert.False(t, AllocationStrategyType("fifo").IsValid())
	assert.Len(t, AllAllocationStrategyTypes(), 2)
}
