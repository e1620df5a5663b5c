package account

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountMemoryRepo "github.com/authogonal/account-service/account/repository/account/memory"
	authRepo "github.com/authogonal/account-service/account/repository/auth"
	"github.com/authogonal/account-service/domain"
	"github.com/authogonal/account-service/kit/code"
	loggerKit "github.com/authogonal/account-service/kit/logger"
)

type captureNotificationRepo struct {
	notifications []*domain.Notification
}

func (c *captureNotificationRepo) Produce(ctx context.Context, notification *domain.Notification) error {
	c.notifications = append(c.notifications, notification)
	return nil
}

type fixture struct {
	accountRepo      domain.AccountRepo
	authRepo         domain.AuthRepo
	notificationRepo *captureNotificationRepo
	accountUseCase   domain.AccountUseCase
}

func createFixture(t *testing.T) *fixture {
	logger, err := loggerKit.NewLogger(filepath.Join(t.TempDir(), "test.log"), loggerKit.InfoLevel, loggerKit.NoStdout)
	require.Nil(t, err)

	f := &fixture{
		accountRepo:      accountMemoryRepo.CreateAccountRepo(),
		authRepo:         authRepo.CreateAuthRepo([]byte("test-secret")),
		notificationRepo: new(captureNotificationRepo),
	}
	f.accountUseCase, err = CreateAccountUseCase(f.accountRepo, f.authRepo, f.notificationRepo, logger)
	require.Nil(t, err)
	return f
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)

	account := &domain.Account{Email: "a@b.com", FirstName: "Ada", LastName: "Lovelace"}
	token, err := f.accountUseCase.Register(ctx, "https://example.com", account, "secret1", "secret1")
	assert.Nil(t, err)
	assert.NotEmpty(t, account.VerificationString)

	claims, err := f.authRepo.VerifyToken(token)
	assert.Nil(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.False(t, claims.IsVerified)

	require.Len(t, f.notificationRepo.notifications, 1)
	notification := f.notificationRepo.notifications[0]
	assert.Equal(t, domain.VerificationNotification, notification.Kind)
	assert.Equal(t, "a@b.com", notification.To)
	assert.Equal(t, "https://example.com", notification.Origin)
	assert.Equal(t, account.VerificationString, notification.Code)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)

	_, err := f.accountUseCase.Register(ctx, "https://example.com", &domain.Account{Email: "a@b.com"}, "secret1", "secret2")
	require.Error(t, err)
	errorCode := code.ParseErrorCode(err)
	assert.Equal(t, http.StatusBadRequest, errorCode.GeneralCode)
	assert.Equal(t, code.ValidationFailed, errorCode.Code)
	assert.Equal(t, "Passwords do not match", errorCode.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)

	_, err := f.accountUseCase.Register(ctx, "https://example.com", &domain.Account{Email: "a@b.com"}, "secret1", "secret1")
	require.Nil(t, err)

	_, err = f.accountUseCase.Register(ctx, "https://example.com", &domain.Account{Email: "a@b.com"}, "secret1", "secret1")
	require.Error(t, err)
	errorCode := code.ParseErrorCode(err)
	assert.Equal(t, http.StatusBadRequest, errorCode.GeneralCode)
	assert.Equal(t, code.DuplicateAccount, errorCode.Code)
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)

	account := &domain.Account{Email: "a@b.com"}
	_, err := f.accountUseCase.Register(ctx, "https://example.com", account, "secret1", "secret1")
	require.Nil(t, err)

	token, err := f.accountUseCase.VerifyEmail(ctx, account.VerificationString)
	assert.Nil(t, err)

	claims, err := f.authRepo.VerifyToken(token)
	assert.Nil(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.True(t, claims.IsVerified)

	stored, err := f.accountRepo.Get(ctx, "a@b.com")
	assert.Nil(t, err)
	assert.True(t, stored.IsVerified)

	// verifying the same code again is a no-op, not an error
	_, err = f.accountUseCase.VerifyEmail(ctx, account.VerificationString)
	assert.Nil(t, err)
}

func TestVerifyEmailUnknownCode(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)

	_, err := f.accountUseCase.VerifyEmail(ctx, "no-such-code")
	require.Error(t, err)
	errorCode := code.ParseErrorCode(err)
	assert.Equal(t, http.StatusUnauthorized, errorCode.GeneralCode)
	assert.Equal(t, code.VerificationInvalid, errorCode.Code)
}

func TestListUserNames(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)

	_, err := f.accountUseCase.Register(ctx, "https://example.com",
		&domain.Account{Email: "ada@b.com", FirstName: "Ada", LastName: "Lovelace"}, "secret1", "secret1")
	require.Nil(t, err)
	_, err = f.accountUseCase.Register(ctx, "https://example.com",
		&domain.Account{Email: "alan@b.com", FirstName: "Alan", LastName: "Turing"}, "secret2", "secret2")
	require.Nil(t, err)

	names, err := f.accountUseCase.ListUserNames(ctx)
	assert.Nil(t, err)
	assert.Len(t, names, 2)
	for _, name := range names {
		assert.NotEmpty(t, name.FirstName)
		assert.NotEmpty(t, name.LastName)
	}
}
