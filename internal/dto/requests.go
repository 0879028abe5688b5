// Package dto holds the typed inputs the menu layer collects before calling
// the ledger.
package dto

type LoginRequest struct {
	CardNumber string `validate:"required,card_number"`
	PIN        string `validate:"required,pin_code"`
}

type DepositRequest struct {
	Amount int64 `validate:"min=0"`
}

type TransferRequest struct {
	DestinationNumber string `validate:"required"`
	Amount            int64  `validate:"required,min=1"`
}
