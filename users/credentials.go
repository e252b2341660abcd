package users

import (
	"fmt"
	"strings"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/internal/validation"
)

const (
	MsgLoginRequired  = "Email and password are required"
	MsgFillAllFields  = "Please fill in all fields"
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgNotOwner       = "Not authorized as owner"
	MsgLoginFailed    = "Login failed"
	MsgRegisterFailed = "Registration failed"
)

// LoginInput is the login form
type LoginInput struct {
	Email    string `form:"email" json:"email" validate:"notblank"`
	Password string `form:"password" json:"password" validate:"required"`
}

// RegisterInput is the registration form; Role is always owner on the wire
type RegisterInput struct {
	Name     string   `form:"name" json:"name" validate:"notblank"`
	Email    string   `form:"email" json:"email" validate:"notblank,email"`
	Password string   `form:"password" json:"password" validate:"required"`
	Role     RoleType `form:"-" json:"role"`
}

// Validate returns a user-facing message wrapped in ErrValidation
func (in LoginInput) Validate() error {
	tags, err := validation.FieldTags(in)
	if err != nil {
		return err
	}
	if len(tags) > 0 {
		return fmt.Errorf("%s: %w", MsgLoginRequired, apperrors.ErrValidation)
	}
	return nil
}

// Validate mirrors the registration page: any blank field is reported as a
// single message before the email format is considered.
func (in RegisterInput) Validate() error {
	tags, err := validation.FieldTags(in)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	for _, tag := range tags {
		if tag != "email" {
			return fmt.Errorf("%s: %w", MsgFillAllFields, apperrors.ErrValidation)
		}
	}
	return fmt.Errorf("%s: %w", MsgInvalidEmail, apperrors.ErrValidation)
}

// Normalise trims the fields the backend matches on and pins the owner role
func (in RegisterInput) Normalise() RegisterInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = RoleOwner
	return in
}

// Message strips the error category suffix for display
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{apperrors.ErrValidation, apperrors.ErrAuthorization} {
		msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
	}
	return msg
}
