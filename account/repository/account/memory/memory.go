package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/authogonal/account-service/domain"
	memoryCacheKit "github.com/authogonal/account-service/kit/cache/memory"
	utilKit "github.com/authogonal/account-service/kit/util"
)

type record struct {
	account   domain.Account
	visibleAt time.Time
}

// accountRepo keeps accounts in memory. A configurable visibility delay
// imitates the backing store's eventual consistency so the cache fallback
// path is exercised the same way as in production.
type accountRepo struct {
	lock            sync.Mutex
	records         map[string]*record
	visibilityDelay time.Duration

	cache *memoryCacheKit.Cache[domain.Account]
}

func CreateAccountRepo() domain.AccountRepo {
	return CreateAccountRepoWithVisibilityDelay(0)
}

func CreateAccountRepoWithVisibilityDelay(visibilityDelay time.Duration) domain.AccountRepo {
	return &accountRepo{
		records:         make(map[string]*record),
		visibilityDelay: visibilityDelay,
		cache:           memoryCacheKit.CreateCache[domain.Account](),
	}
}

func (a *accountRepo) Get(ctx context.Context, email string) (*domain.Account, error) {
	a.lock.Lock()
	stored, ok := a.records[email]
	var account domain.Account
	var visible bool
	if ok {
		account = stored.account
		visible = !time.Now().Before(stored.visibleAt)
	}
	a.lock.Unlock()

	if ok && visible {
		return &account, nil
	}

	if cached, cacheOK := a.cache.Get(email); cacheOK {
		return &cached, nil
	}

	return nil, errors.Wrap(domain.ErrAccountNotFound, "account absent from store and cache")
}

func (a *accountRepo) Create(ctx context.Context, account *domain.Account, plainPassword string) (*domain.Account, error) {
	hash, err := utilKit.GetBcrypt(plainPassword)
	if err != nil {
		return nil, errors.Wrap(err, "get bcrypt failed")
	}

	stored := *account
	stored.PasswordHash = hash

	a.lock.Lock()
	if _, ok := a.records[stored.Email]; ok {
		a.lock.Unlock()
		return nil, errors.Wrap(domain.ErrAccountExists, "conditional put failed")
	}
	a.records[stored.Email] = &record{
		account:   stored,
		visibleAt: time.Now().Add(a.visibilityDelay),
	}
	a.lock.Unlock()

	a.cache.Set(stored.Email, stored)

	return &stored, nil
}

func (a *accountRepo) UpdateAttribute(ctx context.Context, email, attribute string, value any) error {
	a.lock.Lock()
	stored, ok := a.records[email]
	if !ok {
		a.lock.Unlock()
		return errors.Wrap(domain.ErrAccountNotFound, "conditional update failed")
	}
	applyAttribute(&stored.account, attribute, value)
	account := stored.account
	a.lock.Unlock()

	if _, cacheOK := a.cache.Get(email); cacheOK {
		a.cache.Set(email, account)
	}

	return nil
}

func (a *accountRepo) Scan(ctx context.Context, projection []string, filter *domain.ScanFilter) ([]*domain.Account, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	var accounts []*domain.Account
	for _, stored := range a.records {
		if filter != nil && attributeString(&stored.account, filter.Attribute) != filter.Value {
			continue
		}
		accounts = append(accounts, project(&stored.account, projection))
	}

	return accounts, nil
}

func applyAttribute(account *domain.Account, attribute string, value any) {
	switch attribute {
	case domain.AccountAttributePassword:
		if hash, ok := value.(string); ok {
			account.PasswordHash = hash
		}
	case domain.AccountAttributeIsVerified:
		if verified, ok := value.(bool); ok {
			account.IsVerified = verified
		}
	case domain.AccountAttributeVerificationString:
		if code, ok := value.(string); ok {
			account.VerificationString = code
		}
	case domain.AccountAttributeFirstName:
		if name, ok := value.(string); ok {
			account.FirstName = name
		}
	case domain.AccountAttributeLastName:
		if name, ok := value.(string); ok {
			account.LastName = name
		}
	}
}

func attributeString(account *domain.Account, attribute string) string {
	switch attribute {
	case domain.AccountAttributeEmail:
		return account.Email
	case domain.AccountAttributeVerificationString:
		return account.VerificationString
	case domain.AccountAttributeFirstName:
		return account.FirstName
	case domain.AccountAttributeLastName:
		return account.LastName
	}
	return ""
}

func project(account *domain.Account, projection []string) *domain.Account {
	if len(projection) == 0 {
		copied := *account
		return &copied
	}

	var projected domain.Account
	for _, attribute := range projection {
		switch attribute {
		case domain.AccountAttributeEmail:
			projected.Email = account.Email
		case domain.AccountAttributeIsVerified:
			projected.IsVerified = account.IsVerified
		case domain.AccountAttributeVerificationString:
			projected.VerificationString = account.VerificationString
		case domain.AccountAttributeFirstName:
			projected.FirstName = account.FirstName
		case domain.AccountAttributeLastName:
			projected.LastName = account.LastName
		case domain.AccountAttributePassword:
			projected.PasswordHash = account.PasswordHash
		}
	}
	return &projected
}
