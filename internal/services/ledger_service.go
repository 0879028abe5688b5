package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"simplebanking/internal/cardnumber"
	"simplebanking/internal/models"
	"simplebanking/internal/repositories"
)

var (
	ErrCardNotFound        = errors.New("card not found")
	ErrPINMismatch         = errors.New("wrong pin")
	ErrInvalidDestination  = errors.New("destination card number fails checksum")
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
	ErrDestinationNotFound = errors.New("destination card does not exist")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrBalanceRemaining    = errors.New("account balance must be zero to close")
)

const openAccountMaxAttempts = 3

// ledgerService implements LedgerServiceInterface
type ledgerService struct {
	cardRepo     repositories.CardRepositoryInterface
	issuerPrefix string
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewLedgerService creates the card ledger service
func NewLedgerService(
	cardRepo repositories.CardRepositoryInterface,
	issuerPrefix string,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) LedgerServiceInterface {
	return &ledgerService{
		cardRepo:     cardRepo,
		issuerPrefix: issuerPrefix,
		metrics:      metrics,
		logger:       logger,
	}
}

// OpenAccount issues a new card with a unique checksummed number, a random
// 4-digit PIN and a zero balance. A number collision lost between the
// uniqueness check and the insert triggers a fresh generation.
func (s *ledgerService) OpenAccount() (*models.Card, error) {
	for attempt := 0; attempt < openAccountMaxAttempts; attempt++ {
		number, err := s.cardRepo.GenerateUniqueCardNumber(s.issuerPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to generate card number: %w", err)
		}

		card := &models.Card{
			Number:  number,
			PIN:     generatePIN(),
			Balance: 0,
		}

		if err := s.cardRepo.Create(card); err != nil {
			if errors.Is(err, repositories.ErrCardNumberExists) {
				continue
			}
			return nil, fmt.Errorf("failed to create card: %w", err)
		}

		s.metrics.IncrementCounter("account_opened", nil)
		s.logger.Info("account opened", "card", cardnumber.Mask(card.Number))

		return card, nil
	}

	return nil, fmt.Errorf("failed to open account after %d attempts", openAccountMaxAttempts)
}

// Authenticate looks up a card and checks the PIN by exact equality. A missing
// record and a wrong PIN are distinct failures; store errors are surfaced
// wrapped, never silently mapped to a login refusal.
func (s *ledgerService) Authenticate(number, pin string) (*models.Card, error) {
	card, err := s.cardRepo.GetByNumber(number)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			s.metrics.IncrementCounter("authentication_event", map[string]string{"outcome": "not_found"})
			return nil, ErrCardNotFound
		}
		s.logger.Error("store lookup failed during authentication", "error", err, "card", cardnumber.Mask(number))
		s.metrics.IncrementCounter("authentication_event", map[string]string{"outcome": "store_error"})
		return nil, fmt.Errorf("failed to look up card: %w", err)
	}

	if card.PIN != pin {
		s.metrics.IncrementCounter("authentication_event", map[string]string{"outcome": "pin_mismatch"})
		return nil, ErrPINMismatch
	}

	s.metrics.IncrementCounter("authentication_event", map[string]string{"outcome": "success"})
	return card, nil
}

// Deposit credits the card and returns the new persisted balance. The caller's
// in-memory card is updated to match; on a write failure it is left untouched
// and the persisted value stays authoritative.
func (s *ledgerService) Deposit(card *models.Card, amount int64) (int64, error) {
	if amount < 0 {
		return card.Balance, ErrInvalidAmount
	}

	newBalance, err := s.cardRepo.Deposit(card.Number, amount)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return card.Balance, ErrCardNotFound
		}
		return card.Balance, fmt.Errorf("failed to deposit: %w", err)
	}

	card.Balance = newBalance
	s.metrics.IncrementCounter("deposit_completed", nil)
	s.logger.Info("deposit completed", "card", cardnumber.Mask(card.Number), "amount", amount)

	return newBalance, nil
}

// Transfer moves amount to the destination card. Validation short-circuits in
// order: checksum, self-transfer, destination existence, amount against funds.
// Nothing is mutated before every check passes; both balance writes happen in
// one store transaction.
func (s *ledgerService) Transfer(card *models.Card, destinationNumber string, amount int64) error {
	if err := s.validateTransfer(card, destinationNumber, amount); err != nil {
		s.metrics.IncrementCounter("transfers_total", map[string]string{"status": "rejected"})
		return err
	}

	if err := s.cardRepo.ExecuteAtomicTransfer(card.Number, destinationNumber, amount); err != nil {
		switch {
		case errors.Is(err, repositories.ErrInsufficientFunds):
			s.metrics.IncrementCounter("transfers_total", map[string]string{"status": "rejected"})
			return ErrInsufficientFunds
		case errors.Is(err, repositories.ErrCardNotFound):
			s.metrics.IncrementCounter("transfers_total", map[string]string{"status": "rejected"})
			return ErrDestinationNotFound
		}
		s.metrics.IncrementCounter("transfers_total", map[string]string{"status": "failed"})
		return fmt.Errorf("failed to execute transfer: %w", err)
	}

	card.Balance -= amount

	s.metrics.IncrementCounter("transfers_total", map[string]string{"status": "completed"})
	s.metrics.RecordAmount("transfer_amount", float64(amount))
	s.logger.Info("transfer completed",
		"from", cardnumber.Mask(card.Number),
		"to", cardnumber.Mask(destinationNumber),
		"amount", amount)

	return nil
}

func (s *ledgerService) validateTransfer(card *models.Card, destinationNumber string, amount int64) error {
	if !cardnumber.Validate(destinationNumber) {
		return ErrInvalidDestination
	}

	if destinationNumber == card.Number {
		return ErrSameAccountTransfer
	}

	exists, err := s.cardRepo.ExistsByNumber(destinationNumber)
	if err != nil {
		return fmt.Errorf("failed to check destination card: %w", err)
	}
	if !exists {
		return ErrDestinationNotFound
	}

	if amount <= 0 {
		return ErrInvalidAmount
	}

	if amount > card.Balance {
		return ErrInsufficientFunds
	}

	return nil
}

// CloseAccount deletes the card record. A non-zero balance is refused unless
// the caller explicitly writes it off, so closure never silently discards
// funds.
func (s *ledgerService) CloseAccount(card *models.Card, writeOffBalance bool) error {
	if card.Balance != 0 && !writeOffBalance {
		return ErrBalanceRemaining
	}

	if err := s.cardRepo.Delete(card.Number); err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to close account: %w", err)
	}

	if card.Balance != 0 {
		s.logger.Warn("account closed with balance written off",
			"card", cardnumber.Mask(card.Number), "balance", card.Balance)
	}

	s.metrics.IncrementCounter("account_closed", nil)
	s.logger.Info("account closed", "card", cardnumber.Mask(card.Number))

	return nil
}

func generatePIN() string {
	return fmt.Sprintf("%04d", rand.Intn(10_000))
}
