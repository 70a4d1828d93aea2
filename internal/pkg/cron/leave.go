package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/config"
	"github.com/aurora-group/payroll-backend-go/internal/domain/leave"
)

type LeaveJobs struct {
	leaveService leave.Service
	cfg          config.LeaveConfig
}

func NewLeaveJobs(leaveService leave.Service, cfg config.LeaveConfig) *LeaveJobs {
	return &LeaveJobs{
		leaveService: leaveService,
		cfg:          cfg,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("leave_rollover", j.cfg.RolloverInterval, j.RolloverBalances)
}

// RolloverBalances seeds the current calendar year's balances at the turn of
// the year, carrying forward unused paid leave. The underlying service skips
// employees already seeded, so running every interval is harmless.
func (j *LeaveJobs) RolloverBalances(ctx context.Context) error {
	// Only meaningful in January; earlier months of the prior year are
	// already closed.
	now := time.Now().UTC()
	if now.Month() != time.January {
		return nil
	}

	fromYear := now.Year() - 1
	toYear := now.Year()

	slog.Info("Cron: Starting leave rollover job", "from_year", fromYear, "to_year", toYear)
	if err := j.leaveService.Rollover(ctx, fromYear, toYear); err != nil {
		return err
	}
	slog.Info("Cron: Leave rollover completed", "to_year", toYear)
	return nil
}
