package domain

import "context"

// Attribute names as stored in the accts table. First/last name carry a
// space because the original table was written with form field names as keys.
const (
	AccountAttributeEmail              = "Email"
	AccountAttributePassword           = "Password"
	AccountAttributeIsVerified         = "IsVerified"
	AccountAttributeVerificationString = "VerificationString"
	AccountAttributeFirstName          = "First name"
	AccountAttributeLastName           = "Last name"
)

type Account struct {
	Email              string `dynamodbav:"Email"`
	PasswordHash       string `dynamodbav:"Password"`
	IsVerified         bool   `dynamodbav:"IsVerified"`
	VerificationString string `dynamodbav:"VerificationString"`
	FirstName          string `dynamodbav:"First name,omitempty"`
	LastName           string `dynamodbav:"Last name,omitempty"`
}

type AccountName struct {
	FirstName string `json:"First name,omitempty"`
	LastName  string `json:"Last name,omitempty"`
}

// ScanFilter is an equality filter on a single attribute.
type ScanFilter struct {
	Attribute string
	Value     string
}

type AccountRepo interface {
	// Get returns ErrAccountNotFound when the email is absent from both the
	// backing store and the local cache.
	Get(ctx context.Context, email string) (*Account, error)
	// Create is an atomic insert-if-absent. The plain password is hashed
	// before the write; the cache entry holds the hashed record only.
	// Returns ErrAccountExists when the email is already taken.
	Create(ctx context.Context, account *Account, plainPassword string) (*Account, error)
	// UpdateAttribute sets exactly one attribute on an existing record.
	// Returns ErrAccountNotFound when the record does not exist.
	UpdateAttribute(ctx context.Context, email, attribute string, value any) error
	// Scan returns all records matching filter (nil for all), with only the
	// projected attributes populated.
	Scan(ctx context.Context, projection []string, filter *ScanFilter) ([]*Account, error)
}

type AccountUseCase interface {
	Register(ctx context.Context, origin string, account *Account, password, confirmPassword string) (token string, err error)
	VerifyEmail(ctx context.Context, verificationString string) (token string, err error)
	ListUserNames(ctx context.Context) ([]*AccountName, error)
}
