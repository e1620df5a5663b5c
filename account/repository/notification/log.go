package notification

import (
	"context"

	"github.com/authogonal/account-service/domain"
	loggerKit "github.com/authogonal/account-service/kit/logger"
)

type logMailSender struct {
	logger *loggerKit.Logger
}

// CreateLogMailSender logs mail instead of sending it. For local runs
// without a SendGrid key.
func CreateLogMailSender(logger *loggerKit.Logger) domain.MailSender {
	return &logMailSender{
		logger: logger,
	}
}

func (l *logMailSender) Send(ctx context.Context, mail *domain.Mail) error {
	l.logger.Info("mail (not sent)",
		loggerKit.String("to", mail.To),
		loggerKit.String("subject", mail.Subject),
		loggerKit.String("text", mail.Text))
	return nil
}
