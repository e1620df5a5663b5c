package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"

	"github.com/authogonal/account-service/domain"
	httpKit "github.com/authogonal/account-service/kit/http"
	httpTransportKit "github.com/authogonal/account-service/kit/http/transport"
)

var EncodeAccountResetRequestResponse = httpTransportKit.EncodeEmptyResponse

type accountResetRequestRequest struct {
	Email string
}

func DecodeAccountResetRequestRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	return accountResetRequestRequest{
		Email: mux.Vars(r)["Email"],
	}, nil
}

func MakeAccountResetRequestEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(accountResetRequestRequest)
		if err := svc.RequestPasswordReset(ctx, httpKit.GetOrigin(ctx), req.Email); err != nil {
			return nil, err
		}
		return nil, nil
	}
}
