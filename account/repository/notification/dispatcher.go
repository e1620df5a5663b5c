package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/authogonal/account-service/domain"
	loggerKit "github.com/authogonal/account-service/kit/logger"
	"github.com/authogonal/account-service/kit/mq"
)

const (
	senderAddress = "segundah.usah@gmail.com"
	senderName    = "Authogonal"
)

// Dispatcher drains the notification outbox and delivers mail. A failed
// delivery is retried up to maxAttempts times before the message is dropped
// with an error log, so one broken address never wedges the queue.
type Dispatcher struct {
	notificationMQTopic mq.MQTopic
	mailSender          domain.MailSender
	logger              *loggerKit.Logger

	maxAttempts int
	retryDelay  time.Duration

	observer mq.Observer
}

func CreateDispatcher(
	notificationMQTopic mq.MQTopic,
	mailSender domain.MailSender,
	logger *loggerKit.Logger,
	maxAttempts int,
	retryDelay time.Duration,
) *Dispatcher {
	d := &Dispatcher{
		notificationMQTopic: notificationMQTopic,
		mailSender:          mailSender,
		logger:              logger,
		maxAttempts:         maxAttempts,
		retryDelay:          retryDelay,
	}

	d.observer = notificationMQTopic.Subscribe("notification-dispatcher", d.notify)

	return d
}

func (d *Dispatcher) Shutdown() {
	d.notificationMQTopic.UnSubscribe(d.observer)
}

func (d *Dispatcher) notify(message []byte) error {
	var notification domain.Notification
	if err := json.Unmarshal(message, &notification); err != nil {
		d.logger.Error("unmarshal notification failed", loggerKit.Error(err))
		return nil
	}

	mail, err := renderMail(&notification)
	if err != nil {
		d.logger.Error("render mail failed",
			loggerKit.String("notification_id", notification.ID),
			loggerKit.Error(err))
		return nil
	}

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = d.mailSender.Send(ctx, mail)
		cancel()
		if err == nil {
			d.logger.Info("mail delivered",
				loggerKit.String("notification_id", notification.ID),
				loggerKit.String("kind", string(notification.Kind)),
				loggerKit.Int("attempt", attempt))
			return nil
		}
		d.logger.Warn("mail delivery failed",
			loggerKit.String("notification_id", notification.ID),
			loggerKit.Int("attempt", attempt),
			loggerKit.Error(err))
		if attempt < d.maxAttempts {
			time.Sleep(d.retryDelay)
		}
	}

	d.logger.Error("mail dropped after max attempts",
		loggerKit.String("notification_id", notification.ID),
		loggerKit.String("kind", string(notification.Kind)),
		loggerKit.Error(err))
	return nil
}

func renderMail(notification *domain.Notification) (*domain.Mail, error) {
	switch notification.Kind {
	case domain.VerificationNotification:
		return &domain.Mail{
			To:      notification.To,
			From:    senderAddress,
			Subject: "Let's verify your email",
			Text: fmt.Sprintf("Welcome aboard! To verify your email, click here: %s/verify-email/%s",
				notification.Origin, notification.Code),
		}, nil
	case domain.PasswordResetNotification:
		return &domain.Mail{
			To:       notification.To,
			From:     senderAddress,
			FromName: senderName,
			Subject:  "Choose a new password",
			Text: fmt.Sprintf("To reset your password, click here: %s/password-reset/%s",
				notification.Origin, notification.Code),
		}, nil
	default:
		return nil, errors.New("unknown notification kind: " + string(notification.Kind))
	}
}
