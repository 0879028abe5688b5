package repositories

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"simplebanking/internal/cardnumber"
	"simplebanking/internal/models"
)

var (
	ErrCardNotFound      = errors.New("card not found")
	ErrCardNumberExists  = errors.New("card number already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// cardRepository implements CardRepositoryInterface
type cardRepository struct {
	db *gorm.DB
	mu sync.Mutex // For card number generation
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *gorm.DB) CardRepositoryInterface {
	return &cardRepository{
		db: db,
	}
}

// Create inserts a new card record
func (r *cardRepository) Create(card *models.Card) error {
	if err := r.db.Create(card).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCardNumberExists
		}
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// GetByNumber retrieves a card by its number. A missing record maps to
// ErrCardNotFound; any other failure is a store error.
func (r *cardRepository) GetByNumber(number string) (*models.Card, error) {
	var card models.Card
	if err := r.db.Where("number = ?", number).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card by number: %w", err)
	}
	return &card, nil
}

// ExistsByNumber checks if a card number already exists
func (r *cardRepository) ExistsByNumber(number string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Card{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check card number existence: %w", err)
	}
	return count > 0, nil
}

// Deposit adds amount to the stored balance and returns the new balance.
func (r *cardRepository) Deposit(number string, amount int64) (int64, error) {
	var newBalance int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var card models.Card
		if err := tx.Where("number = ?", number).First(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card for deposit: %w", err)
		}

		if err := card.Credit(amount); err != nil {
			return err
		}

		if err := tx.Model(&models.Card{}).
			Where("number = ?", number).
			Update("balance", card.Balance).Error; err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		newBalance = card.Balance
		return nil
	})

	return newBalance, err
}

// Delete removes a card record. There is no soft delete; closure is terminal.
func (r *cardRepository) Delete(number string) error {
	result := r.db.Where("number = ?", number).Delete(&models.Card{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// GenerateUniqueCardNumber generates a card number that does not collide with
// any stored record, retrying the random body on collision.
func (r *cardRepository) GenerateUniqueCardNumber(issuerPrefix string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		number, err := cardnumber.Generate(issuerPrefix)
		if err != nil {
			return "", fmt.Errorf("failed to generate card number: %w", err)
		}

		exists, err := r.ExistsByNumber(number)
		if err != nil {
			return "", err
		}

		if !exists {
			return number, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique card number after %d attempts", maxAttempts)
}

// ExecuteAtomicTransfer moves amount between two cards inside one store
// transaction. Existence and funds are re-checked under the transaction so
// either both balance writes persist or neither does.
func (r *cardRepository) ExecuteAtomicTransfer(fromNumber, toNumber string, amount int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var fromCard models.Card
		if err := tx.Where("number = ?", fromNumber).First(&fromCard).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get source card: %w", err)
		}

		var toCard models.Card
		if err := tx.Where("number = ?", toNumber).First(&toCard).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get destination card: %w", err)
		}

		if fromCard.Balance < amount {
			return ErrInsufficientFunds
		}

		if err := tx.Model(&models.Card{}).
			Where("number = ?", fromNumber).
			Update("balance", fromCard.Balance-amount).Error; err != nil {
			return fmt.Errorf("failed to debit source card: %w", err)
		}

		if err := tx.Model(&models.Card{}).
			Where("number = ?", toNumber).
			Update("balance", toCard.Balance+amount).Error; err != nil {
			return fmt.Errorf("failed to credit destination card: %w", err)
		}

		return nil
	})
}
