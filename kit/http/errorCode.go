package http

import (
	"encoding/json"
	"fmt"
	httpPKG "net/http"
)

type ErrorCode struct {
	HTTPCode  int    `json:"http_code"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	CallStack string `json:"-"`
}

func (e ErrorCode) Error() string {
	errorStr, err := json.Marshal(e)
	if err != nil {
		panic(err)
	}
	return string(errorStr)
}

func DecodeErrorCode(err error) *ErrorCode {
	errorCode := new(ErrorCode)
	if jsonErr := json.Unmarshal([]byte(err.Error()), errorCode); jsonErr != nil {
		errorCode = &ErrorCode{
			HTTPCode: httpPKG.StatusInternalServerError,
			Message:  "internal error",
		}
	}
	if errorCode.HTTPCode == 0 {
		errorCode.HTTPCode = httpPKG.StatusInternalServerError
	}

	errorCode.CallStack = fmt.Sprintf("%+v", err)

	return errorCode
}
