package validation

import (
	"regexp"
	"time"
	"unicode"
)

// Username: letters, digits, underscores, dots and hyphens, 3-32 chars.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9._-]{3,32}$`)

// UPI handle: name@provider, e.g. ravi@okaxis.
var upiRe = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9]+$`)

const minListingYear = 1950

func IsValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

func IsValidUpiID(upi string) bool {
	return upiRe.MatchString(upi)
}

// IsValidPassword requires at least 8 characters with a letter, a number
// and a special character.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

// IsValidListingYear accepts model years from 1950 through next year.
func IsValidListingYear(year int) bool {
	return year >= minListingYear && year <= time.Now().Year()+1
}

func IsValidPrice(price float64) bool {
	return price > 0
}
