package collection

import (
	"sort"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationStrategyType defines how unallocated collection money is spread
// across a customer's open invoices
type AllocationStrategyType string

const (
	AllocationStrategyTypeOldestFirst  AllocationStrategyType = "oldest_first" // Settle oldest invoices first
	AllocationStrategyTypeProportional AllocationStrategyType = "proportional" // Spread pro-rata by outstanding balance
)

// IsValid checks if the strategy type is valid
func (t AllocationStrategyType) IsValid() bool {
	switch t {
	case AllocationStrategyTypeOldestFirst, AllocationStrategyTypeProportional:
		return true
	}
	return false
}

// String returns the string representation
func (t AllocationStrategyType) String() string {
	return string(t)
}

// AllAllocationStrategyTypes returns all valid allocation strategy types
func AllAllocationStrategyTypes() []AllocationStrategyType {
	return []AllocationStrategyType{
		AllocationStrategyTypeOldestFirst,
		AllocationStrategyTypeProportional,
	}
}

// InvoiceTarget represents an open invoice that can receive an allocation
type InvoiceTarget struct {
	InvoiceID         uuid.UUID       // ID of the invoice
	InvoiceNumber     string          // Number for display purposes
	OutstandingAmount decimal.Decimal // Amount still unsettled on the invoice
	CreatedAt         time.Time       // Billing date, drives oldest-first ordering
}

// PlannedAllocation represents one allocation the strategy decided on
type PlannedAllocation struct {
	InvoiceID     uuid.UUID       // ID of the invoice
	InvoiceNumber string          // Number of the invoice
	Amount        decimal.Decimal // Amount to allocate
}

// AllocationPlan represents the complete result of an allocation strategy
type AllocationPlan struct {
	Allocations           []PlannedAllocation // Allocations to make, in order
	TotalAllocated        decimal.Decimal     // Total amount allocated
	RemainingAmount       decimal.Decimal     // Amount left unallocated
	FullyAllocated        bool                // True if all money was placed
	InvoicesFullyPaid     []uuid.UUID         // Invoices that will be fully settled
	InvoicesPartiallyPaid []uuid.UUID         // Invoices that will be partially settled
}

// AllocationStrategy decides how to spread an amount across open invoices.
// Strategies only plan; applying the plan to the Collection aggregate and
// persisting it is the caller's job.
type AllocationStrategy interface {
	// StrategyType returns the allocation strategy type
	StrategyType() AllocationStrategyType
	// Allocate calculates how to allocate the given amount across targets
	Allocate(amount decimal.Decimal, targets []InvoiceTarget) (*AllocationPlan, error)
}

func emptyPlan(amount decimal.Decimal) *AllocationPlan {
	return &AllocationPlan{
		Allocations:           make([]PlannedAllocation, 0),
		TotalAllocated:        decimal.Zero,
		RemainingAmount:       amount,
		FullyAllocated:        false,
		InvoicesFullyPaid:     make([]uuid.UUID, 0),
		InvoicesPartiallyPaid: make([]uuid.UUID, 0),
	}
}

// openTargets filters out targets with nothing outstanding
func openTargets(targets []InvoiceTarget) []InvoiceTarget {
	open := make([]InvoiceTarget, 0, len(targets))
	for _, t := range targets {
		if t.OutstandingAmount.GreaterThan(decimal.Zero) {
			open = append(open, t)
		}
	}
	return open
}

// OldestFirstStrategy settles invoices in billing order: the longest-open
// invoice is paid off before any money reaches a newer one
type OldestFirstStrategy struct{}

// NewOldestFirstStrategy creates a new oldest-first allocation strategy
func NewOldestFirstStrategy() *OldestFirstStrategy {
	return &OldestFirstStrategy{}
}

// StrategyType returns the allocation strategy type
func (s *OldestFirstStrategy) StrategyType() AllocationStrategyType {
	return AllocationStrategyTypeOldestFirst
}

// Allocate allocates the amount to targets oldest first
func (s *OldestFirstStrategy) Allocate(amount decimal.Decimal, targets []InvoiceTarget) (*AllocationPlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}

	open := openTargets(targets)
	if len(open) == 0 {
		return emptyPlan(amount), nil
	}

	sorted := make([]InvoiceTarget, len(open))
	copy(sorted, open)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].InvoiceNumber < sorted[j].InvoiceNumber
	})

	allocations := make([]PlannedAllocation, 0)
	fullyPaid := make([]uuid.UUID, 0)
	partiallyPaid := make([]uuid.UUID, 0)
	remaining := amount
	totalAllocated := decimal.Zero

	for _, target := range sorted {
		if remaining.IsZero() {
			break
		}

		allocAmount := decimal.Min(remaining, target.OutstandingAmount)

		allocations = append(allocations, PlannedAllocation{
			InvoiceID:     target.InvoiceID,
			InvoiceNumber: target.InvoiceNumber,
			Amount:        allocAmount,
		})

		totalAllocated = totalAllocated.Add(allocAmount)
		remaining = remaining.Sub(allocAmount)

		if allocAmount.GreaterThanOrEqual(target.OutstandingAmount) {
			fullyPaid = append(fullyPaid, target.InvoiceID)
		} else {
			partiallyPaid = append(partiallyPaid, target.InvoiceID)
		}
	}

	return &AllocationPlan{
		Allocations:           allocations,
		TotalAllocated:        totalAllocated,
		RemainingAmount:       remaining,
		FullyAllocated:        remaining.IsZero(),
		InvoicesFullyPaid:     fullyPaid,
		InvoicesPartiallyPaid: partiallyPaid,
	}, nil
}

// ProportionalStrategy spreads the amount across all open invoices pro-rata
// by outstanding balance, so each invoice's age of debt shrinks evenly
type ProportionalStrategy struct{}

// NewProportionalStrategy creates a new proportional allocation strategy
func NewProportionalStrategy() *ProportionalStrategy {
	return &ProportionalStrategy{}
}

// StrategyType returns the allocation strategy type
func (s *ProportionalStrategy) StrategyType() AllocationStrategyType {
	return AllocationStrategyTypeProportional
}

// Allocate allocates the amount to targets pro-rata by outstanding balance.
// Shares are truncated to cents and the truncation remainder is handed out
// cent by cent in target order, so the plan always sums to the exact amount
// placed and never exceeds any invoice's outstanding balance.
func (s *ProportionalStrategy) Allocate(amount decimal.Decimal, targets []InvoiceTarget) (*AllocationPlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}

	open := openTargets(targets)
	if len(open) == 0 {
		return emptyPlan(amount), nil
	}

	totalOutstanding := decimal.Zero
	for _, target := range open {
		totalOutstanding = totalOutstanding.Add(target.OutstandingAmount)
	}

	allocations := make([]PlannedAllocation, 0, len(open))
	fullyPaid := make([]uuid.UUID, 0)
	partiallyPaid := make([]uuid.UUID, 0)

	// Enough to settle everything: no proportions needed
	if amount.GreaterThanOrEqual(totalOutstanding) {
		for _, target := range open {
			allocations = append(allocations, PlannedAllocation{
				InvoiceID:     target.InvoiceID,
				InvoiceNumber: target.InvoiceNumber,
				Amount:        target.OutstandingAmount,
			})
			fullyPaid = append(fullyPaid, target.InvoiceID)
		}
		return &AllocationPlan{
			Allocations:           allocations,
			TotalAllocated:        totalOutstanding,
			RemainingAmount:       amount.Sub(totalOutstanding),
			FullyAllocated:        amount.Equal(totalOutstanding),
			InvoicesFullyPaid:     fullyPaid,
			InvoicesPartiallyPaid: partiallyPaid,
		}, nil
	}

	shares := make([]decimal.Decimal, len(open))
	allocated := decimal.Zero
	for i, target := range open {
		shares[i] = amount.Mul(target.OutstandingAmount).Div(totalOutstanding).Truncate(2)
		allocated = allocated.Add(shares[i])
	}

	// Hand out the truncation remainder one cent at a time
	cent := decimal.New(1, -2)
	leftover := amount.Sub(allocated)
	for leftover.IsPositive() {
		progressed := false
		for i, target := range open {
			if !leftover.IsPositive() {
				break
			}
			headroom := target.OutstandingAmount.Sub(shares[i])
			if !headroom.IsPositive() {
				continue
			}
			step := decimal.Min(cent, leftover, headroom)
			shares[i] = shares[i].Add(step)
			leftover = leftover.Sub(step)
			progressed = true
		}
		if !progressed {
			break
		}
	}

	totalAllocated := decimal.Zero
	for i, target := range open {
		if shares[i].LessThanOrEqual(decimal.Zero) {
			continue
		}
		allocations = append(allocations, PlannedAllocation{
			InvoiceID:     target.InvoiceID,
			InvoiceNumber: target.InvoiceNumber,
			Amount:        shares[i],
		})
		totalAllocated = totalAllocated.Add(shares[i])
		if shares[i].GreaterThanOrEqual(target.OutstandingAmount) {
			fullyPaid = append(fullyPaid, target.InvoiceID)
		} else {
			partiallyPaid = append(partiallyPaid, target.InvoiceID)
		}
	}

	remaining := amount.Sub(totalAllocated)
	return &AllocationPlan{
		Allocations:           allocations,
		TotalAllocated:        totalAllocated,
		RemainingAmount:       remaining,
		FullyAllocated:        remaining.IsZero(),
		InvoicesFullyPaid:     fullyPaid,
		InvoicesPartiallyPaid: partiallyPaid,
	}, nil
}

// AllocationStrategyFactory creates allocation strategies
type AllocationStrategyFactory struct{}

// NewAllocationStrategyFactory creates a new factory
func NewAllocationStrategyFactory() *AllocationStrategyFactory {
	return &AllocationStrategyFactory{}
}

// GetStrategy returns a strategy by type
func (f *AllocationStrategyFactory) GetStrategy(strategyType AllocationStrategyType) (AllocationStrategy, error) {
	switch strategyType {
	case AllocationStrategyTypeOldestFirst:
		return NewOldestFirstStrategy(), nil
	case AllocationStrategyTypeProportional:
		return NewProportionalStrategy(), nil
	default:
		return nil, shared.NewDomainError("INVALID_STRATEGY", "Unknown allocation strategy type")
	}
}
