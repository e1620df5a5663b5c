package http

import (
	"context"
	"strings"

	"github.com/go-kit/kit/endpoint"

	"github.com/authogonal/account-service/domain"
	httpTransportKit "github.com/authogonal/account-service/kit/http/transport"
)

var (
	DecodeAccountResetCommitRequest  = httpTransportKit.DecodeJsonRequest[accountResetCommitRequest]
	EncodeAccountResetCommitResponse = httpTransportKit.EncodeEmptyResponse
)

type accountResetCommitRequest struct {
	Email              string `json:"Email"`
	ResetCode          string `json:"Reset code"`
	NewPassword        string `json:"New password"`
	ConfirmNewPassword string `json:"Confirm new password"`
}

func MakeAccountResetCommitEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(accountResetCommitRequest)
		if err := validatePassword(req.NewPassword); err != nil {
			return nil, err
		}
		if err := svc.CommitPasswordReset(ctx, req.Email, req.ResetCode,
			strings.TrimSpace(req.NewPassword), strings.TrimSpace(req.ConfirmNewPassword)); err != nil {
			return nil, err
		}
		return nil, nil
	}
}
