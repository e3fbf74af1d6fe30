package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationBirthdayCountdown = "birthday_countdown"

	ChannelDatabase = "database"
	ChannelSocket   = "socket"
	ChannelEmail    = "email"
)

// Notification is one scheduled birthday reminder for one realtor's one
// upcoming birthday. The composite unique index is what makes the daily
// sweep idempotent: a second insert for the same countdown checkpoint is
// rejected by the store.
type Notification struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Type       string     `gorm:"not null;uniqueIndex:idx_notifications_checkpoint" json:"type"`
	RealtorID  uint       `gorm:"not null;uniqueIndex:idx_notifications_checkpoint" json:"realtorId"`
	TargetDate time.Time  `gorm:"not null;uniqueIndex:idx_notifications_checkpoint" json:"targetDate"`
	DaysBefore int        `gorm:"not null;uniqueIndex:idx_notifications_checkpoint" json:"daysBefore"`

	Delivered   bool       `gorm:"not null;default:false" json:"delivered"`
	DeliveredAt *time.Time `json:"deliveredAt"`
	Message     string     `gorm:"not null" json:"message"`

	// Snapshot of the subject at creation time, kept for audit even if
	// the realtor record is later edited or deleted.
	MetaFirstName string `json:"metaFirstName"`
	MetaLastName  string `json:"metaLastName"`
	MetaEmail     string `json:"metaEmail"`

	Channels  datatypes.JSON `json:"channels"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (n *Notification) SubjectName() string {
	return n.MetaFirstName + " " + n.MetaLastName
}

// ChannelList decodes the channels column; a null column reads as empty.
func (n *Notification) ChannelList() []string {
	if len(n.Channels) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(n.Channels, &out); err != nil {
		return nil
	}
	return out
}

func (n *Notification) SetChannels(channels []string) {
	raw, err := json.Marshal(channels)
	if err != nil {
		return
	}
	n.Channels = datatypes.JSON(raw)
}
