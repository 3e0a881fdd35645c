package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/retailpos-api/pkg/apperror"
)

var validate = validator.New()

func validateEmail(field, email string) *apperror.FieldError {
	if err := validate.Var(email, "required,email"); err != nil {
		return &apperror.FieldError{Field: field, Message: "must be a valid email address"}
	}
	return nil
}
