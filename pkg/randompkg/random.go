// Package randompkg provides functionality for generating random application common items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// AccountNumberWidth is the fixed width of externally visible account numbers.
const AccountNumberWidth = 10

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// AccountNumber generates a 10-digit zero-padded account number drawn
// uniformly from [0, 10^10) using crypto/rand. Low-entropy or sequential
// generators enable account enumeration and must not be used here.
func AccountNumber() string {
	upper := new(big.Int).Exp(big.NewInt(10), big.NewInt(AccountNumberWidth), nil)

	nBig, err := rand.Int(rand.Reader, upper)
	if err != nil {
		panic(err)
	}

	return fmt.Sprintf("%0*d", AccountNumberWidth, nBig)
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// FloatBetween generates a random decimal number between min and max rounded to 2 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*100) / 100
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Owner generates a random owner name.
func Owner() string {
	return String(6)
}

// MoneyAmountBetween generates a random amount of money between min and max rounded to 2 decimals.
func MoneyAmountBetween(min, max float64) string {
	return decimal.NewFromFloat(FloatBetween(min, max)).String()
}

// AccountType generates a random supported account type.
func AccountType() string {
	accountTypes := []string{"checking", "savings"}
	return accountTypes[Intn(len(accountTypes))]
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}
