package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Benjaminlucky/pcrl/metrics"
	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

// Broadcaster pushes a payload to every live admin connection.
type Broadcaster interface {
	HasAdmins() bool
	BroadcastToAdmins(payload interface{}) int
}

// BirthdayEngine runs the daily birthday sweep. All collaborators are
// injected so the sweep can be driven directly in tests with a fixed
// clock and fake delivery channels.
type BirthdayEngine struct {
	DB          *gorm.DB
	Mailer      utils.Mailer
	Broadcaster Broadcaster
	Logger      *zap.Logger
	WindowDays  int
	Now         func() time.Time
}

func NewBirthdayEngine(db *gorm.DB, mailer utils.Mailer, broadcaster Broadcaster, logger *zap.Logger) *BirthdayEngine {
	return &BirthdayEngine{
		DB:          db,
		Mailer:      mailer,
		Broadcaster: broadcaster,
		Logger:      logger,
		WindowDays:  7,
		Now:         time.Now,
	}
}

// Run executes one sweep: for every realtor whose next birthday falls
// inside the alert window it creates the countdown notification (at most
// once per checkpoint, enforced by the store's unique index) and attempts
// delivery. Undelivered notifications from earlier sweeps are retried.
//
// Errors on individual realtors are logged and skipped so one bad record
// cannot abort the rest of the batch.
func (e *BirthdayEngine) Run(ctx context.Context) error {
	metrics.SweepRunsTotal.Inc()

	today := utils.Midnight(e.Now())
	e.Logger.Info("running birthday sweep", zap.Time("today", today))

	var realtors []models.Realtor
	if err := e.DB.WithContext(ctx).Find(&realtors).Error; err != nil {
		e.Logger.Error("birthday sweep could not load realtors", zap.Error(err))
		return fmt.Errorf("load realtors: %w", err)
	}

	processed := 0
	for _, r := range realtors {
		if r.BirthDate.IsZero() {
			continue
		}

		info := utils.NextBirthday(r.BirthDate, today)
		if info.DaysUntil < 0 || info.DaysUntil > e.WindowDays {
			continue
		}

		if err := e.processCheckpoint(ctx, r, info); err != nil {
			e.Logger.Error("birthday checkpoint failed",
				zap.Error(err),
				zap.Uint("realtor_id", r.ID),
				zap.Int("days_until", info.DaysUntil))
			continue
		}
		processed++
	}

	e.Logger.Info("birthday sweep completed",
		zap.Int("realtors", len(realtors)),
		zap.Int("in_window", processed))
	return nil
}

// processCheckpoint creates or retries the notification for one realtor's
// one countdown checkpoint.
func (e *BirthdayEngine) processCheckpoint(ctx context.Context, r models.Realtor, info utils.BirthdayInfo) error {
	var existing models.Notification
	err := e.DB.WithContext(ctx).
		Where("type = ? AND realtor_id = ? AND target_date = ? AND days_before = ?",
			models.NotificationBirthdayCountdown, r.ID, info.NextBirthday, info.DaysUntil).
		First(&existing).Error

	if err == nil {
		if existing.Delivered {
			return nil
		}
		return e.deliver(ctx, &existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	notif := models.Notification{
		Type:          models.NotificationBirthdayCountdown,
		RealtorID:     r.ID,
		TargetDate:    info.NextBirthday,
		DaysBefore:    info.DaysUntil,
		Message:       utils.BirthdayMessage(r.FullName(), info.DaysUntil),
		MetaFirstName: r.FirstName,
		MetaLastName:  r.LastName,
		MetaEmail:     r.Email,
	}
	notif.SetChannels([]string{models.ChannelDatabase})

	if err := e.DB.WithContext(ctx).Create(&notif).Error; err != nil {
		// A concurrent sweep won the insert; the checkpoint exists, so
		// there is nothing left to create.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	metrics.NotificationsCreatedTotal.Inc()

	return e.deliver(ctx, &notif)
}
