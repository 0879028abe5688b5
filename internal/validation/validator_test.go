package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"simplebanking/internal/dto"
)

func TestLoginRequestValidation(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		request dto.LoginRequest
		wantErr bool
	}{
		{"valid", dto.LoginRequest{CardNumber: "4000001234567899", PIN: "1234"}, false},
		{"bad checksum", dto.LoginRequest{CardNumber: "4000001234567890", PIN: "1234"}, true},
		{"short number", dto.LoginRequest{CardNumber: "40000012", PIN: "1234"}, true},
		{"missing number", dto.LoginRequest{PIN: "1234"}, true},
		{"short pin", dto.LoginRequest{CardNumber: "4000001234567899", PIN: "123"}, true},
		{"alpha pin", dto.LoginRequest{CardNumber: "4000001234567899", PIN: "12ab"}, true},
		{"signed pin", dto.LoginRequest{CardNumber: "4000001234567899", PIN: "+123"}, true},
		{"missing pin", dto.LoginRequest{CardNumber: "4000001234567899"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.request)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransferRequestValidation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(dto.TransferRequest{DestinationNumber: "4000009876543813", Amount: 1}))
	assert.Error(t, v.Struct(dto.TransferRequest{DestinationNumber: "", Amount: 10}))
	assert.Error(t, v.Struct(dto.TransferRequest{DestinationNumber: "4000009876543813", Amount: 0}))
}

func TestDepositRequestValidation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(dto.DepositRequest{Amount: 0}))
	assert.NoError(t, v.Struct(dto.DepositRequest{Amount: 500}))
	assert.Error(t, v.Struct(dto.DepositRequest{Amount: -5}))
}

func TestGetValidatorSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
