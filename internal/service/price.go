package service

import (
	"strings"

	domainerrors "github.com/platefulapp/plateful-server/internal/errors"
)

// NormalizePrice validates a decimal price string and returns its canonical
// two-decimal form ("5.2" -> "5.20"). Prices are non-negative, carry at
// most two fractional digits and at most five digits overall, so the
// largest representable price is 999.99.
func NormalizePrice(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domainerrors.Validation("price is required")
	}

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) {
		return "", domainerrors.Validationf("invalid price %q", s)
	}
	if hasDot {
		if len(fracPart) == 0 || len(fracPart) > 2 || !isDigits(fracPart) {
			return "", domainerrors.Validationf("invalid price %q: at most two decimal places", s)
		}
	}

	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	if len(intPart) > 3 {
		return "", domainerrors.Validationf("invalid price %q: must not exceed 999.99", s)
	}

	for len(fracPart) < 2 {
		fracPart += "0"
	}

	return intPart + "." + fracPart, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
