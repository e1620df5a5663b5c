package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/authogonal/account-service/domain"
)

type authRepo struct {
	signingSecret []byte
}

func CreateAuthRepo(signingSecret []byte) domain.AuthRepo {
	return &authRepo{
		signingSecret: signingSecret,
	}
}

func (a *authRepo) GenerateToken(email string, isVerified bool, iat, exp time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            email,
		"email_verified": isVerified,
		"iat":            iat.Unix(),
		"exp":            exp.Unix(),
	})
	signedToken, err := token.SignedString(a.signingSecret)
	if err != nil {
		return "", errors.Wrap(err, "signed token failed")
	}
	return signedToken, nil
}

func (a *authRepo) VerifyToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(fmt.Sprintf("unexpected signing %s", token.Header["alg"]))
		}
		return a.signingSecret, nil
	})
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenMalformed) {
		return nil, errors.Wrap(domain.ErrInvalidData, fmt.Sprintf("%+v", err))
	} else if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, errors.Wrap(domain.ErrExpired, fmt.Sprintf("%+v", err))
	} else if err != nil {
		return nil, errors.Wrap(err, "parse token get error")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.Wrap(domain.ErrInvalidData, "get claims failed")
	}
	email, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, errors.Wrap(domain.ErrInvalidData, "get sub claim failed")
	}
	isVerified, ok := mapClaims["email_verified"].(bool)
	if !ok {
		return nil, errors.Wrap(domain.ErrInvalidData, "get email_verified claim failed")
	}

	return &domain.TokenClaims{
		Email:      email,
		IsVerified: isVerified,
	}, nil
}
