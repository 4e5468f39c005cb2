package internal

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

// CustomerValidator checks that the caller supplied a name and at least one
// contact channel. It has no side effects beyond a diagnostic log line.
type CustomerValidator struct {
	validate *validator.Validate
}

func NewCustomerValidator() *CustomerValidator {
	return &CustomerValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *CustomerValidator) Validate(customer CustomerData) error {
	err := v.validate.Struct(customer)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}

	for _, fe := range fields {
		if fe.Field() == "Name" {
			slog.Warn("invalid customer data", "reason", "missing name")
			return ErrMissingName
		}
	}

	slog.Warn("invalid customer data", "reason", "missing contact info")
	return ErrMissingContactInfo
}

// PaymentDataValidator checks that a payment-method token is present. The
// amount is intentionally left unchecked.
type PaymentDataValidator struct {
	validate *validator.Validate
}

func NewPaymentDataValidator() *PaymentDataValidator {
	return &PaymentDataValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *PaymentDataValidator) Validate(payment PaymentData) error {
	err := v.validate.Struct(payment)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}

	slog.Warn("invalid payment data", "reason", "missing source token")
	return ErrInvalidPaymentData
}
