package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

const keyPrefix = "sk_live__"

var ErrInvalidExpiry = errors.New("invalid expiry format")

var expiryMap = map[string]time.Duration{
	"1H": time.Hour,
	"1D": 24 * time.Hour,
	"1M": 30 * 24 * time.Hour,
	"1Y": 365 * 24 * time.Hour,
}

// ParseExpiry converts an expiry string (1H, 1D, 1M, 1Y) to an absolute
// expiration time.
func ParseExpiry(expiry string) (time.Time, error) {
	delta, ok := expiryMap[strings.ToUpper(strings.TrimSpace(expiry))]
	if !ok {
		return time.Time{}, ErrInvalidExpiry
	}
	return time.Now().UTC().Add(delta), nil
}

func GenerateAPIKey() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return keyPrefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashAPIKey hashes a key for storage. SHA-256 keeps the hash
// deterministic, so a presented key resolves with a single indexed
// lookup instead of a scan.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
