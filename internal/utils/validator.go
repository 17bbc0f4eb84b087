package utils

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate after binding a DTO.
// Validation runs at the HTTP boundary; anything past a handler has
// already satisfied its struct tags.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a validator with struct-tag validation.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Tag violations surface as a 400
// with the validator's message, which echo renders as the error body.
func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
