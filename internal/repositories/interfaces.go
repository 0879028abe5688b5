package repositories

import (
	"simplebanking/internal/models"
)

// CardRepositoryInterface defines the record store contract for card accounts.
// Records are keyed by card number.
type CardRepositoryInterface interface {
	Create(card *models.Card) error
	GetByNumber(number string) (*models.Card, error)
	ExistsByNumber(number string) (bool, error)
	Deposit(number string, amount int64) (int64, error)
	Delete(number string) error
	GenerateUniqueCardNumber(issuerPrefix string) (string, error)
	ExecuteAtomicTransfer(fromNumber, toNumber string, amount int64) error
}
