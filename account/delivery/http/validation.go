package http

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/authogonal/account-service/kit/code"
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validationError(message string) error {
	return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.ValidationFailed, message)
}

func validateEmail(email string) error {
	if !emailRegexp.MatchString(email) {
		return validationError("This is not a valid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(strings.TrimSpace(password)) < 6 {
		return validationError("Password needs to be 6 or more characters long")
	}
	return nil
}

// optional names may be omitted entirely but must not be blank when present.
func validateOptionalName(name, message string) error {
	if name != "" && strings.TrimSpace(name) == "" {
		return validationError(message)
	}
	return nil
}
