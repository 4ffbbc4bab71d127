package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
	}{
		{name: "lowercase", username: "alice"},
		{name: "mixed with digits and underscore", username: "Alice_2024"},
		{name: "min length", username: "bob"},
		{name: "max length", username: strings.Repeat("a", MaxUsernameLen)},
		{name: "empty", username: "", errMsg: "cannot be empty"},
		{name: "too short", username: "ab", errMsg: "at least 3"},
		{name: "too long", username: strings.Repeat("a", MaxUsernameLen+1), errMsg: "must not exceed 32"},
		{name: "hyphen", username: "alice-smith", errMsg: "can only contain"},
		{name: "space", username: "alice smith", errMsg: "can only contain"},
		// кириллица проходит проверку длины в байтах, но не шаблон
		{name: "cyrillic", username: "иван", errMsg: "can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
	}{
		{name: "exactly min length", password: "12345678"},
		{name: "passphrase", password: "correct horse battery staple"},
		// 8 символов кириллицы = 16 байт, 7 символов не проходят независимо от байтов
		{name: "multibyte min length", password: "пароль12"},
		{name: "multibyte too short", password: "пароль1", errMsg: "at least 8"},
		{name: "too short", password: "short", errMsg: "at least 8"},
		{name: "empty", password: "", errMsg: "cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
