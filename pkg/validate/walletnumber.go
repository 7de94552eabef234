package validate

import (
	"github.com/ShiraazMoollatjie/goluhn"
)

// Wallet numbers are 16-digit strings with a Luhn check digit, so a
// mistyped recipient number is caught before any store lookup.
func IsWalletNumber(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}
