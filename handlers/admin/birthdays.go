package admin

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

const defaultWindowDays = 7

// UpcomingBirthdays computes the live countdown list from realtor birth
// dates. It reads nothing from the notification store, so it reflects
// profile edits immediately.
func UpcomingBirthdays(c *gin.Context) {
	window, _ := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(defaultWindowDays)))
	if window < 0 {
		window = 0
	}
	if window > 30 {
		window = 30
	}

	var realtors []models.Realtor
	if err := utils.DB.Find(&realtors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load birthdays"})
		return
	}

	today := time.Now()
	upcoming := make([]gin.H, 0)

	for _, r := range realtors {
		if r.BirthDate.IsZero() {
			continue
		}
		info := utils.NextBirthday(r.BirthDate, today)
		if info.DaysUntil > window {
			continue
		}
		upcoming = append(upcoming, gin.H{
			"id":           r.ID,
			"firstName":    r.FirstName,
			"lastName":     r.LastName,
			"email":        r.Email,
			"avatar":       r.Avatar,
			"nextBirthday": info.NextBirthday,
			"daysBefore":   info.DaysUntil,
			"message":      utils.BirthdayMessage(r.FullName(), info.DaysUntil),
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i]["daysBefore"].(int) < upcoming[j]["daysBefore"].(int)
	})

	c.JSON(http.StatusOK, gin.H{
		"total":     len(upcoming),
		"birthdays": upcoming,
	})
}

// BirthdayNotifications returns the persisted notification log, oldest
// target date first.
func BirthdayNotifications(c *gin.Context) {
	var notifs []models.Notification
	err := utils.DB.
		Where("type = ?", models.NotificationBirthdayCountdown).
		Order("target_date ASC, days_before ASC").
		Find(&notifs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		return
	}

	rows := make([]gin.H, 0, len(notifs))
	for _, n := range notifs {
		rows = append(rows, gin.H{
			"message":    n.Message,
			"firstName":  n.MetaFirstName,
			"lastName":   n.MetaLastName,
			"daysBefore": n.DaysBefore,
			"targetDate": n.TargetDate,
			"delivered":  n.Delivered,
			"channels":   n.ChannelList(),
			"createdAt":  n.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":         len(rows),
		"notifications": rows,
	})
}
