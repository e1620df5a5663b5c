package domain

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

type NotificationKind string

const (
	VerificationNotification  NotificationKind = "verification"
	PasswordResetNotification NotificationKind = "password-reset"
)

// Notification is the outbox message produced by the account use cases and
// consumed by the notification dispatcher. Code is the account's
// verification string; Origin is the request origin used as the link base.
type Notification struct {
	ID     string           `json:"id"`
	Kind   NotificationKind `json:"kind"`
	To     string           `json:"to"`
	Origin string           `json:"origin"`
	Code   string           `json:"code"`
}

func (n *Notification) GetKey() string {
	return n.To
}

func (n *Notification) Marshal() ([]byte, error) {
	marshalData, err := json.Marshal(*n)
	if err != nil {
		return nil, errors.Wrap(err, "marshal failed")
	}
	return marshalData, nil
}

// NotificationRepo enqueues a notification without blocking on delivery.
type NotificationRepo interface {
	Produce(ctx context.Context, notification *Notification) error
}

type Mail struct {
	To       string
	From     string
	FromName string
	Subject  string
	Text     string
}

type MailSender interface {
	Send(ctx context.Context, mail *Mail) error
}
