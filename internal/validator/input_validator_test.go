package validator_test

import (
	"testing"

	"github.com/Yash24242424/cloneverse-express/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		want     error
	}{
		{"ok", "Jane", "jane@example.com", "secret1", nil},
		{"min length", "Jane", "jane@example.com", "123456", nil},
		{"blank name", "  ", "jane@example.com", "secret1", validator.ErrNameRequired},
		{"no at", "Jane", "jane.example.com", "secret1", validator.ErrInvalidEmailFormat},
		{"no domain dot", "Jane", "jane@localhost", "secret1", validator.ErrInvalidEmailFormat},
		{"display name", "Jane", "jane <jane@example.com>", "secret1", validator.ErrInvalidEmailFormat},
		{"short password", "Jane", "jane@example.com", "12345", validator.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSignup(tt.userName, tt.email, tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", validator.NormalizeEmail("  Jane@Example.COM "))
}

func TestRequired(t *testing.T) {
	assert.True(t, validator.Required("a", "b"))
	assert.True(t, validator.Required())
	assert.False(t, validator.Required("a", " "))
	assert.False(t, validator.Required(""))
}

func TestValidateLogin(t *testing.T) {
	assert.True(t, validator.ValidateLogin("a@example.com", "x"))
	assert.False(t, validator.ValidateLogin("", "x"))
	assert.False(t, validator.ValidateLogin("a@example.com", ""))
}
