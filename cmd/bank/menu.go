package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"simplebanking/internal/dto"
	apperrors "simplebanking/internal/errors"
	"simplebanking/internal/models"
	"simplebanking/internal/services"
	"simplebanking/internal/validation"
)

// menu drives the interactive console loops. All business rules live in the
// ledger service; this layer only prompts, validates input shape, and prints.
type menu struct {
	ledger    services.LedgerServiceInterface
	validator *validation.Validator
	logger    *slog.Logger
	in        *bufio.Scanner
	out       io.Writer
}

func newMenu(ledger services.LedgerServiceInterface, logger *slog.Logger, in io.Reader, out io.Writer) *menu {
	return &menu{
		ledger:    ledger,
		validator: validation.GetValidator(),
		logger:    logger,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run executes the main loop until the user exits or input ends.
func (m *menu) Run() {
	for {
		fmt.Fprint(m.out, "\n1. Create an account\n2. Log into account\n0. Exit\n")

		selection, ok := m.readLine()
		if !ok {
			m.sayBye()
			return
		}

		switch selection {
		case "1":
			m.createAccount()
		case "2":
			card := m.login()
			if card == nil {
				continue
			}
			if quit := m.accountMenu(card); quit {
				m.sayBye()
				return
			}
		case "0":
			m.sayBye()
			return
		}
	}
}

// accountMenu serves a logged-in session. Returns true when the user chose to
// exit the program rather than just log out.
func (m *menu) accountMenu(card *models.Card) bool {
	for {
		fmt.Fprint(m.out, "\n1. Balance\n2. Add income\n3. Do transfer\n4. Close Account\n5. Log out\n0. Exit\n")

		selection, ok := m.readLine()
		if !ok {
			return true
		}

		switch selection {
		case "1":
			fmt.Fprintf(m.out, "\nBalance: $%d\n", card.Balance)
		case "2":
			m.addIncome(card)
		case "3":
			m.doTransfer(card)
		case "4":
			if m.closeAccount(card) {
				return false
			}
		case "5":
			return false
		case "0":
			return true
		}
	}
}

func (m *menu) createAccount() {
	card, err := m.ledger.OpenAccount()
	if err != nil {
		m.reportError(err)
		return
	}

	fmt.Fprintf(m.out, "\nYour card has been created\nYour card number:\n%s\nYour card PIN:\n%s\n",
		card.Number, card.PIN)
}

func (m *menu) login() *models.Card {
	fmt.Fprint(m.out, "\nEnter your card number:\n")
	number, ok := m.readLine()
	if !ok {
		return nil
	}

	fmt.Fprint(m.out, "Enter your PIN:\n")
	pin, ok := m.readLine()
	if !ok {
		return nil
	}

	request := dto.LoginRequest{CardNumber: number, PIN: pin}
	if err := m.validator.Struct(request); err != nil {
		// A malformed number can't belong to any account; same message as a
		// failed lookup so login probing learns nothing extra
		fmt.Fprintf(m.out, "\n%s\n", apperrors.GetErrorMessage(apperrors.CardNotFound))
		return nil
	}

	card, err := m.ledger.Authenticate(request.CardNumber, request.PIN)
	if err != nil {
		m.reportError(err)
		return nil
	}

	fmt.Fprint(m.out, "\nYou have successfully logged in!\n")
	return card
}

func (m *menu) addIncome(card *models.Card) {
	fmt.Fprint(m.out, "\nHow Much Would You Like To Deposit:   ")
	amount, ok := m.readAmount()
	if !ok {
		return
	}

	if err := m.validator.Struct(dto.DepositRequest{Amount: amount}); err != nil {
		fmt.Fprintf(m.out, "\n%s\n", apperrors.GetErrorMessage(apperrors.TransferInvalidAmount))
		return
	}

	if _, err := m.ledger.Deposit(card, amount); err != nil {
		m.reportError(err)
	}
}

func (m *menu) doTransfer(card *models.Card) {
	fmt.Fprint(m.out, "\nWhich Account Would You Like To Transfer to?   ")
	destination, ok := m.readLine()
	if !ok {
		return
	}

	fmt.Fprint(m.out, "\nHow Much Would You Like To Transfer?   ")
	amount, ok := m.readAmount()
	if !ok {
		return
	}

	if err := m.ledger.Transfer(card, destination, amount); err != nil {
		m.reportError(err)
		return
	}

	fmt.Fprint(m.out, "\nSuccess!\n")
}

// closeAccount returns true when the record was removed and the session ends.
func (m *menu) closeAccount(card *models.Card) bool {
	err := m.ledger.CloseAccount(card, false)
	if err == nil {
		fmt.Fprint(m.out, "Your Account is Closed\n")
		return true
	}

	if apperrors.FromError(err) != apperrors.CardBalanceRemaining {
		m.reportError(err)
		return false
	}

	fmt.Fprintf(m.out, "\nYour balance is $%d. Close anyway and write it off? (y/N)   ", card.Balance)
	answer, ok := m.readLine()
	if !ok || strings.ToLower(answer) != "y" {
		fmt.Fprintf(m.out, "\n%s\n", apperrors.GetErrorMessage(apperrors.CardBalanceRemaining))
		return false
	}

	if err := m.ledger.CloseAccount(card, true); err != nil {
		m.reportError(err)
		return false
	}

	fmt.Fprint(m.out, "Your Account is Closed\n")
	return true
}

func (m *menu) reportError(err error) {
	code := apperrors.FromError(err)
	if code == apperrors.SystemStoreError || code == apperrors.SystemInternalError {
		m.logger.Error("operation failed", "error", err, "code", code)
	}
	fmt.Fprintf(m.out, "\n%s\n", apperrors.GetErrorMessage(code))
}

func (m *menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) readAmount() (int64, bool) {
	line, ok := m.readLine()
	if !ok {
		return 0, false
	}

	amount, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		fmt.Fprintf(m.out, "\n%s\n", apperrors.GetErrorMessage(apperrors.TransferInvalidAmount))
		return 0, false
	}

	return amount, true
}

func (m *menu) sayBye() {
	fmt.Fprint(m.out, "\nBye!\n")
}
