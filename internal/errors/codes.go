package errors

import (
	"errors"

	"simplebanking/internal/services"
)

// ErrorCode represents a standardized error code reported to the presentation layer
type ErrorCode string

// Card error codes (CARD_*)
const (
	CardNotFound         ErrorCode = "CARD_001"
	CardPINMismatch      ErrorCode = "CARD_002"
	CardBalanceRemaining ErrorCode = "CARD_003"
)

// Transfer error codes (TRANSFER_*)
const (
	TransferInvalidDestination ErrorCode = "TRANSFER_001"
	TransferSameAccount        ErrorCode = "TRANSFER_002"
	TransferDestinationMissing ErrorCode = "TRANSFER_003"
	TransferInsufficientFunds  ErrorCode = "TRANSFER_004"
	TransferInvalidAmount      ErrorCode = "TRANSFER_005"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError ErrorCode = "SYSTEM_001"
	SystemStoreError    ErrorCode = "SYSTEM_002"
)

// errorMessages maps error codes to the user-facing messages, kept close to the
// original console system's wording
var errorMessages = map[ErrorCode]string{
	CardNotFound:         "Wrong card number or PIN!",
	CardPINMismatch:      "Wrong card number or PIN!",
	CardBalanceRemaining: "Your account still has money in it. Transfer it out or confirm a write-off first.",

	TransferInvalidDestination: "Probably you made a mistake in the card number. Please try again!",
	TransferSameAccount:        "You can't transfer money to the same account!",
	TransferDestinationMissing: "Such a card does not exist.",
	TransferInsufficientFunds:  "Not enough money!",
	TransferInvalidAmount:      "The amount must be a positive whole number.",

	SystemInternalError: "An unexpected error occurred. Please try again.",
	SystemStoreError:    "The card store is unavailable. Please try again.",
}

// GetErrorMessage returns the default message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}

// FromError maps a ledger service error to its stable code. Unrecognized
// errors are store or internal failures and must not leak their raw text.
func FromError(err error) ErrorCode {
	switch {
	case errors.Is(err, services.ErrCardNotFound):
		return CardNotFound
	case errors.Is(err, services.ErrPINMismatch):
		return CardPINMismatch
	case errors.Is(err, services.ErrBalanceRemaining):
		return CardBalanceRemaining
	case errors.Is(err, services.ErrInvalidDestination):
		return TransferInvalidDestination
	case errors.Is(err, services.ErrSameAccountTransfer):
		return TransferSameAccount
	case errors.Is(err, services.ErrDestinationNotFound):
		return TransferDestinationMissing
	case errors.Is(err, services.ErrInsufficientFunds):
		return TransferInsufficientFunds
	case errors.Is(err, services.ErrInvalidAmount):
		return TransferInvalidAmount
	default:
		return SystemStoreError
	}
}
