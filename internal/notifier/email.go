package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/config"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
)

// EmailNotifier mails a per-event summary over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	to     string
	log    *zap.Logger
}

// NewEmailNotifier builds the SMTP notifier from config. Callers should gate
// construction on cfg.Enabled().
func NewEmailNotifier(cfg config.SMTP, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		to:     cfg.To,
		log:    log,
	}
}

// Notify sends one email describing the event. The raw event fields are
// included in the body for operator visibility.
func (n *EmailNotifier) Notify(_ context.Context, event *domain.LifecycleEvent) error {
	subject, intro := subjectAndIntro(event.Kind)

	payload, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode event for notification: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", fmt.Sprintf("%s\n%s", intro, payload))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	n.log.Info("Notification email sent",
		zap.String("subject", subject),
		zap.String("account_id", event.AccountID))

	return nil
}

func subjectAndIntro(kind domain.EventKind) (string, string) {
	switch kind {
	case domain.KindInstall:
		return "New App Installation", "A new user has installed your app:"
	case domain.KindUninstall:
		return "App Uninstalled", "The app has been uninstalled:"
	case domain.KindSubscriptionCreated:
		return "New App Subscription Created", "A new subscription has been created:"
	case domain.KindSubscriptionCancelled:
		return "App Subscription Cancelled", "A subscription has been cancelled:"
	case domain.KindSubscriptionRenewed:
		return "App Subscription Renewed", "A subscription has been renewed:"
	default:
		return "App Lifecycle Event", "A lifecycle event was received:"
	}
}
