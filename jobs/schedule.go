package jobs

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ScheduleDaily wires the birthday engine to a midnight cron tick in the
// configured timezone and starts it. Stopping the returned cron stops the
// schedule; a sweep already in flight runs to completion.
func ScheduleDaily(engine *BirthdayEngine) *cron.Cron {
	tz := os.Getenv("BIRTHDAY_TIMEZONE")
	if tz == "" {
		tz = "Africa/Lagos"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		engine.Logger.Warn("unknown timezone, scheduling sweeps in UTC", zap.String("tz", tz))
		loc = time.UTC
	}

	// The sweep reads "today" in the same zone the tick fires in.
	engine.Now = func() time.Time { return time.Now().In(loc) }

	c := cron.New(cron.WithLocation(loc))
	c.AddFunc("0 0 * * *", func() {
		if err := engine.Run(context.Background()); err != nil {
			engine.Logger.Error("birthday sweep aborted", zap.Error(err))
		}
	})
	c.Start()
	return c
}
