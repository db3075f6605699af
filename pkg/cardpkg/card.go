// Package cardpkg validates funding instrument numbers.
package cardpkg

// Card number lengths covering the major card schemes.
const (
	MinCardLength = 13
	MaxCardLength = 19
)

// RoutingNumberLength is the fixed length of US ABA routing numbers.
const RoutingNumberLength = 9

func allDigits(s string) bool {
	if len(s) == 0 {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// Luhn reports whether the number passes the mod-10 weighted-digit check,
// doubling every second digit from the rightmost and subtracting 9 when a
// doubled digit exceeds 9. Any non-digit character fails the check.
func Luhn(number string) bool {
	if len(number) == 0 {
		return false
	}

	sum := 0
	double := false

	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}

		digit := int(c - '0')

		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		double = !double
	}

	return sum%10 == 0
}

// ValidCardNumber reports whether the number has a major-scheme length and
// passes the Luhn checksum.
func ValidCardNumber(number string) bool {
	if len(number) < MinCardLength || len(number) > MaxCardLength {
		return false
	}

	return Luhn(number)
}

// ValidBankAccountNumber reports whether the number is a non-empty all-digit string.
func ValidBankAccountNumber(number string) bool {
	return allDigits(number)
}

// ValidRoutingNumber reports whether the number is exactly 9 digits.
func ValidRoutingNumber(number string) bool {
	return len(number) == RoutingNumberLength && allDigits(number)
}
