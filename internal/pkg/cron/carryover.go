package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aburakt/staffy/internal/domain/staff"
)

const CarryoverJobName = "year_end_leave_carryover"

// CarryoverJobs moves unused leave into the new year. The job is safe to run
// repeatedly; staff already processed for the year are skipped.
type CarryoverJobs struct {
	staffService staff.StaffService
	now          func() time.Time
}

func NewCarryoverJobs(staffService staff.StaffService, clock func() time.Time) *CarryoverJobs {
	if clock == nil {
		clock = time.Now
	}
	return &CarryoverJobs{staffService: staffService, now: clock}
}

func (j *CarryoverJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(CarryoverJobName, interval, j.ProcessYearEnd)
}

// ProcessYearEnd only acts during January.
func (j *CarryoverJobs) ProcessYearEnd(ctx context.Context) error {
	if j.now().Month() != time.January {
		return nil
	}

	result, err := j.staffService.ProcessYearEndCarryoverForAllStaff(ctx)
	if err != nil {
		return fmt.Errorf("failed to process year-end carryover: %w", err)
	}

	if result.Processed > 0 || result.Failed > 0 {
		slog.Info("Cron: year-end carryover finished",
			"year", result.Year,
			"processed", result.Processed,
			"skipped", result.Skipped,
			"failed", result.Failed,
		)
	}
	return nil
}
