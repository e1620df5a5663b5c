package notification

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authogonal/account-service/domain"
	loggerKit "github.com/authogonal/account-service/kit/logger"
	memoryMQKit "github.com/authogonal/account-service/kit/mq/memory"
)

type captureMailSender struct {
	lock     sync.Mutex
	failures int
	attempts int
	mails    []*domain.Mail
}

func (c *captureMailSender) Send(ctx context.Context, mail *domain.Mail) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.attempts++
	if c.attempts <= c.failures {
		return errors.New("mail provider unavailable")
	}
	c.mails = append(c.mails, mail)
	return nil
}

func (c *captureMailSender) snapshot() (int, []*domain.Mail) {
	c.lock.Lock()
	defer c.lock.Unlock()

	mails := make([]*domain.Mail, len(c.mails))
	copy(mails, c.mails)
	return c.attempts, mails
}

func createTestLogger(t *testing.T) *loggerKit.Logger {
	logger, err := loggerKit.NewLogger(filepath.Join(t.TempDir(), "test.log"), loggerKit.InfoLevel, loggerKit.NoStdout)
	require.Nil(t, err)
	return logger
}

func TestDispatcherDeliversVerificationMail(t *testing.T) {
	ctx := context.Background()
	notificationMQTopic := memoryMQKit.CreateMemoryMQ(ctx, 100, 10*time.Millisecond)
	defer notificationMQTopic.Shutdown()

	mailSender := new(captureMailSender)
	dispatcher := CreateDispatcher(notificationMQTopic, mailSender, createTestLogger(t), 3, time.Millisecond)
	defer dispatcher.Shutdown()

	notificationRepo := CreateNotificationRepo(notificationMQTopic)
	notification := &domain.Notification{
		Kind:   domain.VerificationNotification,
		To:     "a@b.com",
		Origin: "https://example.com",
		Code:   "code-1",
	}
	assert.Nil(t, notificationRepo.Produce(ctx, notification))
	assert.NotEmpty(t, notification.ID)

	assert.Eventually(t, func() bool {
		_, mails := mailSender.snapshot()
		return len(mails) == 1
	}, time.Second, 10*time.Millisecond)

	_, mails := mailSender.snapshot()
	assert.Equal(t, "a@b.com", mails[0].To)
	assert.Equal(t, senderAddress, mails[0].From)
	assert.Equal(t, "Let's verify your email", mails[0].Subject)
	assert.Equal(t, "Welcome aboard! To verify your email, click here: https://example.com/verify-email/code-1", mails[0].Text)
}

func TestDispatcherRetriesThenDelivers(t *testing.T) {
	ctx := context.Background()
	notificationMQTopic := memoryMQKit.CreateMemoryMQ(ctx, 100, 10*time.Millisecond)
	defer notificationMQTopic.Shutdown()

	mailSender := &captureMailSender{failures: 2}
	dispatcher := CreateDispatcher(notificationMQTopic, mailSender, createTestLogger(t), 3, time.Millisecond)
	defer dispatcher.Shutdown()

	notificationRepo := CreateNotificationRepo(notificationMQTopic)
	assert.Nil(t, notificationRepo.Produce(ctx, &domain.Notification{
		Kind:   domain.PasswordResetNotification,
		To:     "a@b.com",
		Origin: "https://example.com",
		Code:   "code-1",
	}))

	assert.Eventually(t, func() bool {
		_, mails := mailSender.snapshot()
		return len(mails) == 1
	}, time.Second, 10*time.Millisecond)

	attempts, mails := mailSender.snapshot()
	assert.Equal(t, 3, attempts)
	assert.Equal(t, senderName, mails[0].FromName)
	assert.Equal(t, "Choose a new password", mails[0].Subject)
	assert.Equal(t, "To reset your password, click here: https://example.com/password-reset/code-1", mails[0].Text)
}

func TestDispatcherDropsAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	notificationMQTopic := memoryMQKit.CreateMemoryMQ(ctx, 100, 10*time.Millisecond)
	defer notificationMQTopic.Shutdown()

	mailSender := &captureMailSender{failures: 100}
	dispatcher := CreateDispatcher(notificationMQTopic, mailSender, createTestLogger(t), 3, time.Millisecond)
	defer dispatcher.Shutdown()

	notificationRepo := CreateNotificationRepo(notificationMQTopic)
	assert.Nil(t, notificationRepo.Produce(ctx, &domain.Notification{
		Kind:   domain.VerificationNotification,
		To:     "a@b.com",
		Origin: "https://example.com",
		Code:   "code-1",
	}))

	assert.Eventually(t, func() bool {
		attempts, _ := mailSender.snapshot()
		return attempts == 3
	}, time.Second, 10*time.Millisecond)

	// dropped, not redelivered
	time.Sleep(50 * time.Millisecond)
	attempts, mails := mailSender.snapshot()
	assert.Equal(t, 3, attempts)
	assert.Empty(t, mails)
}
