package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		email    string
		password string
		field    string
	}{
		{"ok", "Alice", "alice@example.com", "Secr3t!23", ""},
		{"padded email", "Alice", "  alice@example.com ", "Secr3t!23", ""},
		{"unicode name", "Zoë", "zoe@example.com", "Secr3t!23", ""},
		{"empty name", "", "alice@example.com", "Secr3t!23", "name"},
		{"blank name", "   ", "alice@example.com", "Secr3t!23", "name"},
		{"long name", strings.Repeat("a", 101), "alice@example.com", "Secr3t!23", "name"},
		{"empty email", "Alice", "", "Secr3t!23", "email"},
		{"no at", "Alice", "alice.example.com", "Secr3t!23", "email"},
		{"display name", "Alice", "Alice <alice@example.com>", "Secr3t!23", "email"},
		{"two addresses", "Alice", "a@example.com, b@example.com", "Secr3t!23", "email"},
		{"seven chars", "Alice", "alice@example.com", "1234567", "password"},
		{"eight runes", "Alice", "alice@example.com", "пароль12", ""},
		{"too long", "Alice", "alice@example.com", strings.Repeat("p", 1025), "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Account(tt.user, tt.email, tt.password)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Contains(t, verr.Error(), tt.field+": ")
		})
	}
}
