package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AgencyProvider provides the agencies to run scheduled statements for
type AgencyProvider interface {
	GetActiveAgencyIDs(ctx context.Context) ([]uuid.UUID, error)
}

// CronTriggerConfig holds configuration for the monthly statement trigger
type CronTriggerConfig struct {
	// RunDayOfMonth is the calendar day the monthly run fires on (1-28)
	RunDayOfMonth int
	// RunHour and RunMinute give the local time of day for the run
	RunHour   int
	RunMinute int

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration
}

// DefaultCronTriggerConfig returns default trigger configuration: the 1st
// of each month at 2am, producing statements cut off at the end of the
// previous month.
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		RunDayOfMonth: 1,
		RunHour:       2,
		RunMinute:     0,
		CheckInterval: time.Minute,
	}
}

// CronTrigger fires the monthly statement run for every active agency
type CronTrigger struct {
	config         CronTriggerConfig
	scheduler      *Scheduler
	agencyProvider AgencyProvider
	logger         *zap.Logger

	cancel       context.CancelFunc
	wg           sync.WaitGroup
	mu           sync.Mutex
	isRunning    bool
	lastRunMonth string // Track which month we last ran for
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(
	config CronTriggerConfig,
	scheduler *Scheduler,
	agencyProvider AgencyProvider,
	logger *zap.Logger,
) *CronTrigger {
	return &CronTrigger{
		config:         config,
		scheduler:      scheduler,
		agencyProvider: agencyProvider,
		logger:         logger,
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Statement cron trigger started",
		zap.Int("run_day", c.config.RunDayOfMonth),
		zap.Int("run_hour", c.config.RunHour),
		zap.Int("run_minute", c.config.RunMinute),
		zap.Duration("check_interval", c.config.CheckInterval),
	)

	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Statement cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop checks periodically if it's time to run the monthly statements
func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger checks if it's time to run and triggers the statement run
func (c *CronTrigger) checkAndTrigger(ctx context.Context) {
	now := time.Now()
	currentMonth := now.Format("2006-01")

	// Skip if we already ran this month
	c.mu.Lock()
	if c.lastRunMonth == currentMonth {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	// Check if it's the right day and time
	if now.Day() != c.config.RunDayOfMonth {
		return
	}
	if now.Hour() != c.config.RunHour || now.Minute() != c.config.RunMinute {
		return
	}

	// It's time to run!
	c.mu.Lock()
	c.lastRunMonth = currentMonth
	c.mu.Unlock()

	c.logger.Info("Triggering monthly statement run")
	c.triggerMonthlyRun(ctx, now)
}

// triggerMonthlyRun schedules a statement run for all active agencies.
// Statements are cut off at the last day of the previous month, so a run
// on the 1st covers the full calendar month that just ended.
func (c *CronTrigger) triggerMonthlyRun(ctx context.Context, now time.Time) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	asOf := firstOfMonth.AddDate(0, 0, -1)

	agencyIDs, err := c.agencyProvider.GetActiveAgencyIDs(ctx)
	if err != nil {
		c.logger.Error("Failed to get agency IDs for statement run", zap.Error(err))
		return
	}

	c.logger.Info("Scheduling statement runs",
		zap.Int("agency_count", len(agencyIDs)),
		zap.Time("as_of", asOf),
	)

	for _, agencyID := range agencyIDs {
		if err := c.scheduler.ScheduleStatementRun(agencyID, asOf); err != nil {
			c.logger.Error("Failed to schedule statement run for agency",
				zap.String("agency_id", agencyID.String()),
				zap.Error(err),
			)
		}
	}
}

// TriggerManualRun schedules an out-of-cycle statement run for one agency
func (c *CronTrigger) TriggerManualRun(agencyID uuid.UUID, asOf time.Time) error {
	return c.scheduler.ScheduleStatementRun(agencyID, asOf)
}
