package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		name      string
		expiry    string
		expected  time.Duration
		expectErr bool
	}{
		{name: "One hour", expiry: "1H", expected: time.Hour},
		{name: "One day", expiry: "1D", expected: 24 * time.Hour},
		{name: "One month", expiry: "1M", expected: 30 * 24 * time.Hour},
		{name: "One year", expiry: "1Y", expected: 365 * 24 * time.Hour},
		{name: "Lowercase accepted", expiry: "1d", expected: 24 * time.Hour},
		{name: "Whitespace trimmed", expiry: " 1H ", expected: time.Hour},
		{name: "Unknown format rejected", expiry: "2W", expectErr: true},
		{name: "Empty rejected", expiry: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expiresAt, err := ParseExpiry(tt.expiry)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidExpiry)
				return
			}
			assert.NoError(t, err)
			assert.WithinDuration(t, time.Now().UTC().Add(tt.expected), expiresAt, 5*time.Second)
		})
	}
}

func TestGenerateAPIKey(t *testing.T) {
	key, err := GenerateAPIKey()
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "sk_live__"))

	other, err := GenerateAPIKey()
	assert.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestHashAPIKey(t *testing.T) {
	key := "sk_live__testkey"

	// Deterministic: the stored hash must match the presented key's hash.
	assert.Equal(t, HashAPIKey(key), HashAPIKey(key))
	assert.Len(t, HashAPIKey(key), 64)
	assert.NotEqual(t, HashAPIKey(key), HashAPIKey("sk_live__otherkey"))
}
