package auth

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountMemoryRepo "github.com/authogonal/account-service/account/repository/account/memory"
	authRepo "github.com/authogonal/account-service/account/repository/auth"
	accountUseCaseLib "github.com/authogonal/account-service/account/usecase/account"
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
	authUseCase      domain.AuthUseCase
}

func createFixture(t *testing.T) *fixture {
	logger, err := loggerKit.NewLogger(filepath.Join(t.TempDir(), "test.log"), loggerKit.InfoLevel, loggerKit.NoStdout)
	require.Nil(t, err)

	f := &fixture{
		accountRepo:      accountMemoryRepo.CreateAccountRepo(),
		authRepo:         authRepo.CreateAuthRepo([]byte("test-secret")),
		notificationRepo: new(captureNotificationRepo),
	}
	f.accountUseCase, err = accountUseCaseLib.CreateAccountUseCase(f.accountRepo, f.authRepo, f.notificationRepo, logger)
	require.Nil(t, err)
	f.authUseCase, err = CreateAuthUseCase(f.accountRepo, f.authRepo, f.notificationRepo, logger)
	require.Nil(t, err)
	return f
}

func (f *fixture) register(t *testing.T, account *domain.Account, password string) {
	_, err := f.accountUseCase.Register(context.Background(), "https://example.com", account, password, password)
	require.Nil(t, err)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)
	f.register(t, &domain.Account{Email: "a@b.com", FirstName: "Ada", LastName: "Lovelace"}, "secret1")

	result, err := f.authUseCase.Login(ctx, "a@b.com", "secret1")
	assert.Nil(t, err)
	assert.Equal(t, "Ada", result.FirstName)
	assert.Equal(t, "Lovelace", result.LastName)

	claims, err := f.authRepo.VerifyToken(result.Token)
	assert.Nil(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.False(t, claims.IsVerified)
}

func TestLoginSignsActualVerificationStatus(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)
	account := &domain.Account{Email: "a@b.com"}
	f.register(t, account, "secret1")

	_, err := f.accountUseCase.VerifyEmail(ctx, account.VerificationString)
	require.Nil(t, err)

	result, err := f.authUseCase.Login(ctx, "a@b.com", "secret1")
	assert.Nil(t, err)
	claims, err := f.authRepo.VerifyToken(result.Token)
	assert.Nil(t, err)
	assert.True(t, claims.IsVerified)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)
	f.register(t, &domain.Account{Email: "a@b.com"}, "secret1")

	_, err := f.authUseCase.Login(ctx, "a@b.com", "wrong")
	require.Error(t, err)
	errorCode := code.ParseErrorCode(err)
	assert.Equal(t, http.StatusUnauthorized, errorCode.GeneralCode)
	assert.Equal(t, code.PasswordInvalid, errorCode.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)

	_, err := f.authUseCase.Login(ctx, "missing@b.com", "secret1")
	require.Error(t, err)
	errorCode := code.ParseErrorCode(err)
	assert.Equal(t, http.StatusUnauthorized, errorCode.GeneralCode)
}

func TestCheckCurrentPassword(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)
	f.register(t, &domain.Account{Email: "a@b.com"}, "secret1")

	assert.Nil(t, f.authUseCase.CheckCurrentPassword(ctx, "a@b.com", "secret1"))

	err := f.authUseCase.CheckCurrentPassword(ctx, "a@b.com", "wrong")
	require.Error(t, err)
	errorCode := code.ParseErrorCode(err)
	assert.Equal(t, http.StatusUnauthorized, errorCode.GeneralCode)
	assert.Equal(t, code.PasswordInvalid, errorCode.Code)
}

func TestRequestPasswordReset(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)
	account := &domain.Account{Email: "a@b.com"}
	f.register(t, account, "secret1")

	assert.Nil(t, f.authUseCase.RequestPasswordReset(ctx, "https://example.com", "a@b.com"))

	require.Len(t, f.notificationRepo.notifications, 2) // verification + reset
	notification := f.notificationRepo.notifications[1]
	assert.Equal(t, domain.PasswordResetNotification, notification.Kind)
	assert.Equal(t, "a@b.com", notification.To)
	assert.Equal(t, account.VerificationString, notification.Code)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)

	err := f.authUseCase.RequestPasswordReset(ctx, "https://example.com", "missing@b.com")
	require.Error(t, err)
	errorCode := code.ParseErrorCode(err)
	assert.Equal(t, http.StatusBadRequest, errorCode.GeneralCode)
	assert.Equal(t, code.AccountNotFound, errorCode.Code)
}

func TestCommitPasswordReset(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)
	account := &domain.Account{Email: "a@b.com"}
	f.register(t, account, "secret1")

	err := f.authUseCase.CommitPasswordReset(ctx, "a@b.com", account.VerificationString, "secret2", "secret2")
	assert.Nil(t, err)

	_, err = f.authUseCase.Login(ctx, "a@b.com", "secret2")
	assert.Nil(t, err)
	_, err = f.authUseCase.Login(ctx, "a@b.com", "secret1")
	assert.Error(t, err)
}

func TestCommitPasswordResetWrongCode(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)
	f.register(t, &domain.Account{Email: "a@b.com"}, "secret1")

	err := f.authUseCase.CommitPasswordReset(ctx, "a@b.com", "wrong-code", "secret2", "secret2")
	require.Error(t, err)
	errorCode := code.ParseErrorCode(err)
	assert.Equal(t, http.StatusUnauthorized, errorCode.GeneralCode)
	assert.Equal(t, code.VerificationInvalid, errorCode.Code)

	_, err = f.authUseCase.Login(ctx, "a@b.com", "secret1")
	assert.Nil(t, err)
}

func TestCommitPasswordResetMismatch(t *testing.T) {
	ctx := context.Background()
	f := createFixture(t)
	f.register(t, &domain.Account{Email: "a@b.com"}, "secret1")

	err := f.authUseCase.CommitPasswordReset(ctx, "a@b.com", "whatever", "secret2", "secret3")
	require.Error(t, err)
	errorCode := code.ParseErrorCode(err)
	assert.Equal(t, http.StatusBadRequest, errorCode.GeneralCode)
	assert.Equal(t, code.ValidationFailed, errorCode.Code)
	assert.Equal(t, "Passwords do not match", errorCode.Message)
}
