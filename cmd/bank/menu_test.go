package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplebanking/internal/cardnumber"
	"simplebanking/internal/database"
	"simplebanking/internal/repositories"
	"simplebanking/internal/services"
)

type discardRecorder struct{}

func (discardRecorder) IncrementCounter(string, map[string]string) {}
func (discardRecorder) RecordAmount(string, float64)               {}

func runSession(t *testing.T, db *database.DB, script string) string {
	t.Helper()

	repo := repositories.NewCardRepository(db.DB)
	ledger := services.NewLedgerService(repo, cardnumber.DefaultIssuerPrefix, discardRecorder{}, slog.Default())

	var out bytes.Buffer
	newMenu(ledger, slog.Default(), strings.NewReader(script), &out).Run()
	return out.String()
}

func TestMenuCreateAccount(t *testing.T) {
	db := database.SetupTestDB(t)

	out := runSession(t, db, "1\n0\n")

	assert.Contains(t, out, "Your card has been created")
	assert.Contains(t, out, "Your card number:")
	assert.Contains(t, out, "Your card PIN:")
	assert.Contains(t, out, "Bye!")
}

func TestMenuLoginWrongPIN(t *testing.T) {
	db := database.SetupTestDB(t)
	database.CreateTestCard(t, db, "4000001234567899", "1234", 0)

	out := runSession(t, db, "2\n4000001234567899\n4321\n0\n")

	assert.Contains(t, out, "Wrong card number or PIN!")
	assert.NotContains(t, out, "successfully logged in")
}

func TestMenuLoginMalformedNumber(t *testing.T) {
	db := database.SetupTestDB(t)

	out := runSession(t, db, "2\nnot-a-card\n1234\n0\n")

	assert.Contains(t, out, "Wrong card number or PIN!")
}

func TestMenuBalanceDepositTransfer(t *testing.T) {
	db := database.SetupTestDB(t)
	database.CreateTestCard(t, db, "4000001234567899", "1234", 100)
	database.CreateTestCard(t, db, "4000009876543813", "5678", 0)

	script := strings.Join([]string{
		"2", "4000001234567899", "1234", // log in
		"1",                            // balance
		"2", "400",                     // add income
		"3", "4000009876543813", "250", // transfer
		"1",      // balance again
		"5", "0", // log out, exit
	}, "\n") + "\n"

	out := runSession(t, db, script)

	assert.Contains(t, out, "You have successfully logged in!")
	assert.Contains(t, out, "Balance: $100")
	assert.Contains(t, out, "Success!")
	assert.Contains(t, out, "Balance: $250")

	repo := repositories.NewCardRepository(db.DB)
	dest, err := repo.GetByNumber("4000009876543813")
	require.NoError(t, err)
	assert.Equal(t, int64(250), dest.Balance)
}

func TestMenuTransferRejections(t *testing.T) {
	db := database.SetupTestDB(t)
	database.CreateTestCard(t, db, "4000001234567899", "1234", 100)

	script := strings.Join([]string{
		"2", "4000001234567899", "1234",
		"3", "4000009876543812", "10", // bad check digit
		"3", "4000001234567899", "10", // self transfer
		"3", "4000009876543813", "10", // no such record
		"5", "0",
	}, "\n") + "\n"

	out := runSession(t, db, script)

	assert.Contains(t, out, "Probably you made a mistake in the card number. Please try again!")
	assert.Contains(t, out, "You can't transfer money to the same account!")
	assert.Contains(t, out, "Such a card does not exist.")
}

func TestMenuCloseAccountWithWriteOff(t *testing.T) {
	db := database.SetupTestDB(t)
	database.CreateTestCard(t, db, "4000001234567899", "1234", 50)

	script := strings.Join([]string{
		"2", "4000001234567899", "1234",
		"4", "y", // close, confirm write-off
		"0",
	}, "\n") + "\n"

	out := runSession(t, db, script)

	assert.Contains(t, out, "write it off?")
	assert.Contains(t, out, "Your Account is Closed")

	repo := repositories.NewCardRepository(db.DB)
	_, err := repo.GetByNumber("4000001234567899")
	assert.ErrorIs(t, err, repositories.ErrCardNotFound)
}

func TestMenuCloseAccountDeclinedWriteOff(t *testing.T) {
	db := database.SetupTestDB(t)
	database.CreateTestCard(t, db, "4000001234567899", "1234", 50)

	script := strings.Join([]string{
		"2", "4000001234567899", "1234",
		"4", "n",
		"5", "0",
	}, "\n") + "\n"

	out := runSession(t, db, script)

	assert.NotContains(t, out, "Your Account is Closed")

	repo := repositories.NewCardRepository(db.DB)
	card, err := repo.GetByNumber("4000001234567899")
	require.NoError(t, err)
	assert.Equal(t, int64(50), card.Balance)
}
