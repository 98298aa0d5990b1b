package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentCash))
	assert.True(t, ValidPaymentMethod(PaymentMpesa))
	assert.True(t, ValidPaymentMethod(PaymentCredit))

	assert.False(t, ValidPaymentMethod(""))
	assert.False(t, ValidPaymentMethod("cheque"))
	assert.False(t, ValidPaymentMethod("CASH"))
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleCashier}).IsAdmin())
	// No identity-based override: the email alone grants nothing.
	assert.False(t, (&User{Email: "admin@kipkarenhardware.com", Role: RoleCashier}).IsAdmin())
}
