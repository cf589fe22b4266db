package services

import (
	"context"
	"fmt"
	"os"

	"github.com/civic-pulse/api-go/config"
	"github.com/civic-pulse/api-go/models"
	"github.com/resend/resend-go/v2"
	"gorm.io/gorm"
)

// Notifier delivers a message to a user. Delivery is best-effort: the
// lifecycle and verification services never fail an operation because a
// notification could not be sent.
type Notifier interface {
	Notify(ctx context.Context, userID uint, title, message string, reportID *string, priority string) error
}

// notifier writes an in-app notification row and, when the user opted in,
// sends an email through Resend.
type notifier struct {
	db     *gorm.DB
	resend *resend.Client
	from   string
	appURL string
}

func NewNotifier(db *gorm.DB) Notifier {
	n := &notifier{
		db:     db,
		from:   os.Getenv("EMAIL_FROM"),
		appURL: os.Getenv("APP_URL"),
	}
	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		n.resend = resend.NewClient(apiKey)
	}
	return n
}

func (n *notifier) Notify(ctx context.Context, userID uint, title, message string, reportID *string, priority string) error {
	var user models.User
	if err := n.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	notification := models.Notification{
		UserID:   userID,
		Type:     "IN_APP",
		Title:    title,
		Message:  message,
		ReportID: reportID,
	}
	if err := n.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	if user.EmailNotifications && user.Email != "" {
		if err := n.sendEmail(user.Email, title, message, reportID); err != nil {
			// Email is the secondary channel; the in-app row already exists.
			config.Logger.Warnw("email notification failed",
				"user", userID,
				"error", err,
			)
		}
	}

	return nil
}

func (n *notifier) sendEmail(to, subject, message string, reportID *string) error {
	if n.resend == nil || n.from == "" {
		return nil // email channel not configured
	}

	link := ""
	if reportID != nil {
		link = fmt.Sprintf(`<p><a href="%s/report/%s">View Report</a></p>`, n.appURL, *reportID)
	}
	html := fmt.Sprintf(`<h2>%s</h2><p>%s</p>%s`, subject, message, link)

	_, err := n.resend.Emails.Send(&resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	return err
}
