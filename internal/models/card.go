package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"simplebanking/internal/cardnumber"
)

const PINLength = 4

var (
	ErrInvalidCardNumber = errors.New("card number is not a valid 16-digit Luhn number")
	ErrInvalidPIN        = errors.New("pin must be 4 digits")
	ErrInvalidBalance    = errors.New("balance cannot be negative")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Card is the sole persisted record: a card number keyed account. The PIN is
// stored in clear and checked by equality only.
type Card struct {
	Number    string    `gorm:"type:varchar(16);primaryKey" json:"number"`
	PIN       string    `gorm:"type:varchar(4);column:pin;not null" json:"-"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Card
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// BeforeUpdate hook for Card
func (c *Card) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}

// Validate validates the card fields
func (c *Card) Validate() error {
	if !cardnumber.Validate(c.Number) {
		return ErrInvalidCardNumber
	}

	if len(c.PIN) != PINLength {
		return ErrInvalidPIN
	}
	for i := 0; i < len(c.PIN); i++ {
		if c.PIN[i] < '0' || c.PIN[i] > '9' {
			return ErrInvalidPIN
		}
	}

	if c.Balance < 0 {
		return ErrInvalidBalance
	}

	return nil
}

// CanDebit checks whether the amount can be taken from the balance.
func (c *Card) CanDebit(amount int64) bool {
	return amount > 0 && c.Balance >= amount
}

// Debit removes amount from the balance, refusing an overdraw.
func (c *Card) Debit(amount int64) error {
	if amount <= 0 {
		return errors.New("debit amount must be positive")
	}
	if c.Balance < amount {
		return ErrInsufficientFunds
	}

	c.Balance -= amount
	return nil
}

// Credit adds amount to the balance.
func (c *Card) Credit(amount int64) error {
	if amount < 0 {
		return errors.New("credit amount cannot be negative")
	}

	c.Balance += amount
	return nil
}

// TableName returns the table name for Card
func (c *Card) TableName() string {
	return "cards"
}
