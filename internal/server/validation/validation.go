// Package validation checks the shape of account fields before they reach
// the users service.
package validation

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLen     = 100
	MinPasswordLen = 8
	MaxPasswordLen = 1024
)

// Error reports a malformed field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

func Name(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return &Error{Field: "name", Message: "must not be empty"}
	case utf8.RuneCountInString(name) > MaxNameLen:
		return &Error{Field: "name", Message: "must be at most 100 characters"}
	}
	return nil
}

// Email accepts a bare addr-spec; "Alice <a@b.c>" is rejected.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &Error{Field: "email", Message: "must not be empty"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return &Error{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

// Password enforces the length bounds: at least 8 characters, at most
// 1024 bytes.
func Password(password string) error {
	switch {
	case utf8.RuneCountInString(password) < MinPasswordLen:
		return &Error{Field: "password", Message: "must be at least 8 characters"}
	case len(password) > MaxPasswordLen:
		return &Error{Field: "password", Message: "must be at most 1024 bytes"}
	}
	return nil
}

// Account runs Name, Email and Password in that order and returns the
// first failure.
func Account(name, email, password string) error {
	if err := Name(name); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return Password(password)
}
