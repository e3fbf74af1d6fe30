package jobs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Benjaminlucky/pcrl/metrics"
	"github.com/Benjaminlucky/pcrl/models"
)

// deliver pushes a notification through the live socket channel and the
// admin email list. A failing channel is logged and does not stop the
// others, but the record is only marked delivered once the email step
// has nothing left to do; anything short of that leaves delivered=false
// so the next sweep retries.
func (e *BirthdayEngine) deliver(ctx context.Context, notif *models.Notification) error {
	channels := map[string]bool{models.ChannelDatabase: true}
	for _, ch := range notif.ChannelList() {
		channels[ch] = true
	}

	payload := map[string]interface{}{
		"id":         notif.ID,
		"type":       notif.Type,
		"realtorId":  notif.RealtorID,
		"name":       notif.SubjectName(),
		"daysBefore": notif.DaysBefore,
		"targetDate": notif.TargetDate,
		"message":    notif.Message,
		"createdAt":  notif.CreatedAt,
	}

	if e.Broadcaster != nil && e.Broadcaster.HasAdmins() {
		if sent := e.Broadcaster.BroadcastToAdmins(payload); sent > 0 {
			channels[models.ChannelSocket] = true
		}
	}

	emailDone := false
	recipients, err := e.adminEmails(ctx)
	if err != nil {
		e.Logger.Error("could not resolve admin distribution list", zap.Error(err))
	} else if len(recipients) == 0 {
		// Nobody to notify; the in-app record is all there is.
		emailDone = true
	} else {
		subject := fmt.Sprintf("Upcoming birthday: %s in %d days", notif.SubjectName(), notif.DaysBefore)
		if notif.DaysBefore == 0 {
			subject = fmt.Sprintf("Birthday today: %s", notif.SubjectName())
		}
		body := fmt.Sprintf("%s\n\nDate: %s\nVisit the dashboard to view details.",
			notif.Message, notif.TargetDate.Format("Mon, 02 Jan 2006"))

		if err := e.Mailer.Send(recipients, subject, body); err != nil {
			e.Logger.Error("birthday email delivery failed",
				zap.Error(err),
				zap.Uint("notification_id", notif.ID))
		} else {
			emailDone = true
			channels[models.ChannelEmail] = true
		}
	}

	list := make([]string, 0, len(channels))
	for _, ch := range []string{models.ChannelDatabase, models.ChannelSocket, models.ChannelEmail} {
		if channels[ch] {
			list = append(list, ch)
		}
	}
	notif.SetChannels(list)

	if emailDone {
		notif.Delivered = true
		now := e.Now()
		notif.DeliveredAt = &now
		metrics.NotificationsDeliveredTotal.Inc()
	} else {
		metrics.DeliveryFailuresTotal.Inc()
	}

	if err := e.DB.WithContext(ctx).Save(notif).Error; err != nil {
		return fmt.Errorf("save delivery state: %w", err)
	}
	return nil
}

// adminEmails resolves the current distribution list: every back-office
// admin plus any realtor carrying the admin role.
func (e *BirthdayEngine) adminEmails(ctx context.Context) ([]string, error) {
	var admins []models.Admin
	if err := e.DB.WithContext(ctx).Find(&admins).Error; err != nil {
		return nil, err
	}

	var adminRealtors []models.Realtor
	if err := e.DB.WithContext(ctx).
		Where("role = ?", models.RoleAdmin).
		Find(&adminRealtors).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	emails := make([]string, 0, len(admins)+len(adminRealtors))
	for _, a := range admins {
		if a.Email != "" && !seen[a.Email] {
			seen[a.Email] = true
			emails = append(emails, a.Email)
		}
	}
	for _, r := range adminRealtors {
		if r.Email != "" && !seen[r.Email] {
			seen[r.Email] = true
			emails = append(emails, r.Email)
		}
	}
	return emails, nil
}
