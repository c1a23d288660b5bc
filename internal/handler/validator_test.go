package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_PaymentMode(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		mode  string
		valid bool
	}{
		{"internal_debit", true},
		{"external_invoice", true},
		{"INTERNAL_DEBIT", false},
		{"stars", false},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			err := v.ValidateStruct(SpinRequest{PaymentMode: tt.mode})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, map[string]string{"payment_mode": "Invalid payment mode"}, FormatValidationError(err))
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	err := GetValidator().ValidateStruct(PaymentRequest{SessionID: "not-a-uuid"})
	require.Error(t, err)

	errs := FormatValidationError(err)
	assert.Equal(t, "Must be a valid id", errs["session_id"])
	assert.Equal(t, "This field is required", errs["status"])

	assert.Nil(t, FormatValidationError(nil))
}
