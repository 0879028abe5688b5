package services

import (
	"simplebanking/internal/models"
)

// LedgerServiceInterface is the card ledger exposed to the presentation layer.
// Every operation takes typed parameters and returns typed results or errors;
// no operation reads input or terminates the process.
type LedgerServiceInterface interface {
	OpenAccount() (*models.Card, error)
	Authenticate(number, pin string) (*models.Card, error)
	Deposit(card *models.Card, amount int64) (int64, error)
	Transfer(card *models.Card, destinationNumber string, amount int64) error
	CloseAccount(card *models.Card, writeOffBalance bool) error
}

// MetricsRecorderInterface abstracts the metrics backend for services
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordAmount(name string, value float64)
}
