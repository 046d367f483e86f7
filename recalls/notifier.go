// SPDX-License-Identifier: GPL-3.0-only

package recalls

import (
	"recallguard-server/commons"
	"recallguard-server/models"
	"recallguard-server/notifications"

	"gorm.io/gorm"
)

// EmailNotifier delivers tick outcomes to every user who opted into
// FDA notifications, falling back to RECALL_NOTIFY_EMAIL when nobody
// has.
type EmailNotifier struct {
	Conn *gorm.DB
}

func NewEmailNotifier(conn *gorm.DB) *EmailNotifier {
	return &EmailNotifier{Conn: conn}
}

func (n *EmailNotifier) recipients() []notifications.NotificationData {
	var users []models.User
	if err := n.Conn.Where("notify_fda = ?", true).Find(&users).Error; err != nil {
		commons.Logger.Errorf("Failed to load digest recipients: %v", err)
	}

	recipients := make([]notifications.NotificationData, 0, len(users))
	for _, user := range users {
		name := user.FirstName
		recipients = append(recipients, notifications.NotificationData{
			To:     user.Email,
			ToName: &name,
		})
	}

	if len(recipients) == 0 {
		if fallback := commons.GetEnv("RECALL_NOTIFY_EMAIL"); fallback != "" {
			recipients = append(recipients, notifications.NotificationData{To: fallback})
		}
	}
	return recipients
}

func (n *EmailNotifier) SendDigest(entries []Entry) error {
	var lastErr error
	for _, recipient := range n.recipients() {
		data := recipient
		data.Subject = "Recalls as reported by the FDA for the past 24 hours"
		data.Template = "fda-recalls"
		data.Variables = map[string]any{"data": entries}
		if err := notifications.DispatchNotification(notifications.Email, notifications.SMTP, data); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (n *EmailNotifier) SendNoRecalls() error {
	var lastErr error
	for _, recipient := range n.recipients() {
		data := recipient
		data.Subject = "No FDA recalls reported for the past 24 hours"
		data.Template = "no-recalls"
		if err := notifications.DispatchNotification(notifications.Email, notifications.SMTP, data); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
