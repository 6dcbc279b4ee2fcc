package httpapi

import (
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/server/validation"
)

func (r *registerRequest) validate() error {
	return validation.Account(r.Name, r.Email, r.Password)
}

// Login only checks presence.
func (r *loginRequest) validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return &validation.Error{Field: "email", Message: "must not be empty"}
	}
	if r.Password == "" {
		return &validation.Error{Field: "password", Message: "must not be empty"}
	}
	return nil
}
