package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"

	"github.com/authogonal/account-service/domain"
	httpTransportKit "github.com/authogonal/account-service/kit/http/transport"
)

var EncodeAuthLoginResponse = httpTransportKit.EncodeJsonResponse

type authLoginRequest struct {
	Email    string
	Password string
}

type authLoginResponse struct {
	Token     string `json:"Token"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
}

func DecodeAuthLoginRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	return authLoginRequest{
		Email:    vars["Email"],
		Password: vars["Password"],
	}, nil
}

func MakeAuthLoginEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(authLoginRequest)
		result, err := svc.Login(ctx, req.Email, req.Password)
		if err != nil {
			return nil, err
		}
		return &authLoginResponse{
			Token:     result.Token,
			FirstName: result.FirstName,
			LastName:  result.LastName,
		}, nil
	}
}
