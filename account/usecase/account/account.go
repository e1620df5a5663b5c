package account

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/authogonal/account-service/domain"
	"github.com/authogonal/account-service/kit/code"
	loggerKit "github.com/authogonal/account-service/kit/logger"
)

const tokenDuration = 48 * time.Hour

type accountUseCase struct {
	accountRepo      domain.AccountRepo
	authRepo         domain.AuthRepo
	notificationRepo domain.NotificationRepo
	logger           *loggerKit.Logger
}

func CreateAccountUseCase(
	accountRepo domain.AccountRepo,
	authRepo domain.AuthRepo,
	notificationRepo domain.NotificationRepo,
	logger *loggerKit.Logger,
) (domain.AccountUseCase, error) {
	if logger == nil {
		return nil, errors.New("create use case failed")
	}
	return &accountUseCase{
		accountRepo:      accountRepo,
		authRepo:         authRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}, nil
}

func (a *accountUseCase) Register(ctx context.Context, origin string, account *domain.Account, password, confirmPassword string) (string, error) {
	if password != confirmPassword {
		return "", code.CreateErrorCode(http.StatusBadRequest).AddCode(code.ValidationFailed, "Passwords do not match")
	}

	account.IsVerified = false
	account.VerificationString = uuid.NewString()

	createdAccount, err := a.accountRepo.Create(ctx, account, password)
	if errors.Is(err, domain.ErrAccountExists) {
		return "", code.CreateErrorCode(http.StatusBadRequest).AddCode(code.DuplicateAccount).AddErrorMetaData(err)
	} else if err != nil {
		return "", errors.Wrap(err, "create account failed")
	}

	// registration already took effect, so an enqueue failure must not
	// surface. the account stays unverified until the mail goes out.
	if err := a.notificationRepo.Produce(ctx, &domain.Notification{
		Kind:   domain.VerificationNotification,
		To:     createdAccount.Email,
		Origin: origin,
		Code:   createdAccount.VerificationString,
	}); err != nil {
		a.logger.Error("enqueue verification mail failed",
			loggerKit.String("email", createdAccount.Email),
			loggerKit.Error(err))
	}

	now := time.Now()
	token, err := a.authRepo.GenerateToken(createdAccount.Email, false, now, now.Add(tokenDuration))
	if err != nil {
		return "", errors.Wrap(err, "signed token failed")
	}

	return token, nil
}

func (a *accountUseCase) VerifyEmail(ctx context.Context, verificationString string) (string, error) {
	accounts, err := a.accountRepo.Scan(ctx,
		[]string{domain.AccountAttributeEmail},
		&domain.ScanFilter{
			Attribute: domain.AccountAttributeVerificationString,
			Value:     verificationString,
		})
	if err != nil {
		return "", errors.Wrap(err, "scan accounts failed")
	}
	if len(accounts) == 0 {
		return "", code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.VerificationInvalid)
	}
	email := accounts[0].Email

	if err := a.accountRepo.UpdateAttribute(ctx, email, domain.AccountAttributeIsVerified, true); err != nil {
		return "", errors.Wrap(err, "update attribute failed")
	}

	now := time.Now()
	token, err := a.authRepo.GenerateToken(email, true, now, now.Add(tokenDuration))
	if err != nil {
		return "", errors.Wrap(err, "signed token failed")
	}

	return token, nil
}

func (a *accountUseCase) ListUserNames(ctx context.Context) ([]*domain.AccountName, error) {
	accounts, err := a.accountRepo.Scan(ctx,
		[]string{domain.AccountAttributeFirstName, domain.AccountAttributeLastName},
		nil)
	if err != nil {
		return nil, errors.Wrap(err, "scan accounts failed")
	}

	names := make([]*domain.AccountName, 0, len(accounts))
	for _, account := range accounts {
		names = append(names, &domain.AccountName{
			FirstName: account.FirstName,
			LastName:  account.LastName,
		})
	}

	return names, nil
}
