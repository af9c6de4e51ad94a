package validation

import (
	"testing"

	"crediwallet/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name      string
		input     models.CreateUserInput
		valid     bool
		badFields []string
	}{
		{
			name:  "valid",
			input: models.CreateUserInput{Name: "Alice", Email: "alice@example.com", Password: "Sup3rSecret"},
			valid: true,
		},
		{
			name:      "missing everything",
			input:     models.CreateUserInput{},
			badFields: []string{"name", "email", "password"},
		},
		{
			name:      "bad email",
			input:     models.CreateUserInput{Name: "Alice", Email: "not-an-email", Password: "Sup3rSecret"},
			badFields: []string{"email"},
		},
		{
			name:      "weak password",
			input:     models.CreateUserInput{Name: "Alice", Email: "alice@example.com", Password: "short"},
			badFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateRegistration(tt.input)
			assert.Equal(t, tt.valid, v.Valid())
			for _, field := range tt.badFields {
				assert.Contains(t, v.Errors, field)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.True(t, ValidateLogin("alice@example.com", "whatever").Valid())
	assert.False(t, ValidateLogin("", "whatever").Valid())
	assert.False(t, ValidateLogin("alice@example.com", "").Valid())
	assert.False(t, ValidateLogin("nope", "whatever").Valid())
}

func TestAccountNumber(t *testing.T) {
	v := New()
	v.AccountNumber("account_number", "1234567890")
	assert.True(t, v.Valid())

	v = New()
	v.AccountNumber("account_number", "2234567890")
	assert.False(t, v.Valid())

	v = New()
	v.AccountNumber("account_number", "123")
	assert.False(t, v.Valid())
}
