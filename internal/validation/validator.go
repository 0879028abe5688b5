package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"simplebanking/internal/cardnumber"
	"simplebanking/internal/models"
)

// Validator wraps the go-playground validator with the card domain's rules
type Validator struct {
	validate *validator.Validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("card_number", validateCardNumber)
	_ = v.RegisterValidation("pin_code", validatePINCode)

	return &Validator{validate: v}
}

// Struct validates a struct and returns a single human-readable error
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, describeFieldError(fieldErr))
	}

	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "card_number":
		return fmt.Sprintf("%s must be a valid 16-digit card number", fieldErr.Field())
	case "pin_code":
		return fmt.Sprintf("%s must be 4 digits", fieldErr.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}

// validateCardNumber requires a 16-digit number with a correct Luhn check digit
func validateCardNumber(fl validator.FieldLevel) bool {
	return cardnumber.Validate(fl.Field().String())
}

// validatePINCode requires exactly 4 decimal digits
func validatePINCode(fl validator.FieldLevel) bool {
	pin := fl.Field().String()
	if len(pin) != models.PINLength {
		return false
	}
	if _, err := strconv.Atoi(pin); err != nil {
		return false
	}
	return !strings.ContainsAny(pin, "+-")
}
