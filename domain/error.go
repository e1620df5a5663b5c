package domain

import "github.com/pkg/errors"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrInvalidData     = errors.New("invalid data")
	ErrExpired         = errors.New("expired")
)
