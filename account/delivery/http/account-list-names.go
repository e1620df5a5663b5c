package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/authogonal/account-service/domain"
	httpTransportKit "github.com/authogonal/account-service/kit/http/transport"
)

var (
	DecodeAccountListNamesRequest  = httpTransportKit.DecodeEmptyRequest
	EncodeAccountListNamesResponse = httpTransportKit.EncodeJsonResponse
)

func MakeAccountListNamesEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		names, err := svc.ListUserNames(ctx)
		if err != nil {
			return nil, err
		}
		return names, nil
	}
}
