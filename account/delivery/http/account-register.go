package http

import (
	"context"
	"strings"

	"github.com/go-kit/kit/endpoint"

	"github.com/authogonal/account-service/domain"
	httpKit "github.com/authogonal/account-service/kit/http"
	httpTransportKit "github.com/authogonal/account-service/kit/http/transport"
)

var (
	DecodeAccountRegisterRequest  = httpTransportKit.DecodeJsonRequest[accountRegisterRequest]
	EncodeAccountRegisterResponse = httpTransportKit.EncodeJsonResponse
)

// field names mirror the registration form.
type accountRegisterRequest struct {
	Email           string `json:"Email"`
	Password        string `json:"Password"`
	ConfirmPassword string `json:"Confirm password"`
	FirstName       string `json:"First name"`
	LastName        string `json:"Last name"`
}

type accountRegisterResponse struct {
	Token string `json:"token"`
}

func MakeAccountRegisterEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(accountRegisterRequest)
		if err := validateEmail(req.Email); err != nil {
			return nil, err
		}
		if err := validatePassword(req.Password); err != nil {
			return nil, err
		}
		if err := validateOptionalName(req.FirstName,
			"First name should not be left empty, unless you want to opt out of providing a first name"); err != nil {
			return nil, err
		}
		if err := validateOptionalName(req.LastName,
			"Last name should not be left empty, unless you want to opt out of providing a last name"); err != nil {
			return nil, err
		}

		token, err := svc.Register(ctx, httpKit.GetOrigin(ctx), &domain.Account{
			Email:     req.Email,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
		}, strings.TrimSpace(req.Password), strings.TrimSpace(req.ConfirmPassword))
		if err != nil {
			return nil, err
		}
		return &accountRegisterResponse{Token: token}, nil
	}
}
