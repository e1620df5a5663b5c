package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/authogonal/account-service/domain"
	httpTransportKit "github.com/authogonal/account-service/kit/http/transport"
)

var (
	DecodeAccountVerifyEmailRequest  = httpTransportKit.DecodeJsonRequest[accountVerifyEmailRequest]
	EncodeAccountVerifyEmailResponse = httpTransportKit.EncodeJsonResponse
)

type accountVerifyEmailRequest struct {
	VerificationString string `json:"VerificationString"`
}

type accountVerifyEmailResponse struct {
	Token string `json:"token"`
}

func MakeAccountVerifyEmailEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(accountVerifyEmailRequest)
		token, err := svc.VerifyEmail(ctx, req.VerificationString)
		if err != nil {
			return nil, err
		}
		return &accountVerifyEmailResponse{Token: token}, nil
	}
}
