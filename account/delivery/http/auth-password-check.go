package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"

	"github.com/authogonal/account-service/domain"
	httpTransportKit "github.com/authogonal/account-service/kit/http/transport"
)

var EncodeAuthPasswordCheckResponse = httpTransportKit.EncodeEmptyResponse

type authPasswordCheckRequest struct {
	Email           string
	CurrentPassword string
}

func DecodeAuthPasswordCheckRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	return authPasswordCheckRequest{
		Email:           vars["Email"],
		CurrentPassword: vars["CurrentPassword"],
	}, nil
}

func MakeAuthPasswordCheckEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(authPasswordCheckRequest)
		if err := svc.CheckCurrentPassword(ctx, req.Email, req.CurrentPassword); err != nil {
			return nil, err
		}
		return nil, nil
	}
}
