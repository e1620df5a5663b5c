package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/authogonal/account-service/domain"
	"github.com/authogonal/account-service/kit/code"
	loggerKit "github.com/authogonal/account-service/kit/logger"
	utilKit "github.com/authogonal/account-service/kit/util"
)

const tokenDuration = 48 * time.Hour

type authUseCase struct {
	accountRepo      domain.AccountRepo
	authRepo         domain.AuthRepo
	notificationRepo domain.NotificationRepo
	logger           *loggerKit.Logger
}

func CreateAuthUseCase(
	accountRepo domain.AccountRepo,
	authRepo domain.AuthRepo,
	notificationRepo domain.NotificationRepo,
	logger *loggerKit.Logger,
) (domain.AuthUseCase, error) {
	if logger == nil {
		return nil, errors.New("create use case failed")
	}
	return &authUseCase{
		accountRepo:      accountRepo,
		authRepo:         authRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}, nil
}

func (a *authUseCase) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	account, err := a.accountRepo.Get(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, code.CreateErrorCode(http.StatusUnauthorized).AddErrorMetaData(err)
	} else if err != nil {
		return nil, errors.Wrap(err, "get account failed")
	}

	if err := utilKit.CompareBcrypt([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.PasswordInvalid)
	}

	now := time.Now()
	token, err := a.authRepo.GenerateToken(account.Email, account.IsVerified, now, now.Add(tokenDuration))
	if err != nil {
		return nil, errors.Wrap(err, "signed token failed")
	}

	return &domain.LoginResult{
		Token:     token,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}, nil
}

func (a *authUseCase) CheckCurrentPassword(ctx context.Context, email, currentPassword string) error {
	account, err := a.accountRepo.Get(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return code.CreateErrorCode(http.StatusUnauthorized).AddErrorMetaData(err)
	} else if err != nil {
		return errors.Wrap(err, "get account failed")
	}

	if err := utilKit.CompareBcrypt([]byte(account.PasswordHash), []byte(currentPassword)); err != nil {
		return code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.PasswordInvalid)
	}

	return nil
}

func (a *authUseCase) RequestPasswordReset(ctx context.Context, origin, email string) error {
	account, err := a.accountRepo.Get(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.AccountNotFound).AddErrorMetaData(err)
	} else if err != nil {
		return errors.Wrap(err, "get account failed")
	}

	if err := a.notificationRepo.Produce(ctx, &domain.Notification{
		Kind:   domain.PasswordResetNotification,
		To:     account.Email,
		Origin: origin,
		Code:   account.VerificationString,
	}); err != nil {
		return errors.Wrap(err, "produce notification failed")
	}

	return nil
}

func (a *authUseCase) CommitPasswordReset(ctx context.Context, email, resetCode, newPassword, confirmNewPassword string) error {
	if newPassword != confirmNewPassword {
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.ValidationFailed, "Passwords do not match")
	}

	account, err := a.accountRepo.Get(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.AccountNotFound).AddErrorMetaData(err)
	} else if err != nil {
		return errors.Wrap(err, "get account failed")
	}

	// the reset code mailed to the account must match before anything changes
	if resetCode == "" || resetCode != account.VerificationString {
		return code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.VerificationInvalid)
	}

	hash, err := utilKit.GetBcrypt(newPassword)
	if err != nil {
		return errors.Wrap(err, "get bcrypt failed")
	}

	if err := a.accountRepo.UpdateAttribute(ctx, email, domain.AccountAttributePassword, hash); err != nil {
		return errors.Wrap(err, "update attribute failed")
	}

	return nil
}
