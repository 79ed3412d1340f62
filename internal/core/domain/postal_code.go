package domain

import "strings"

// PostalCodeAddress - адрес, найденный по CEP
type PostalCodeAddress struct {
	PostalCode   string
	Street       string
	Complement   string
	Neighborhood string
	City         string
	State        string
}

// NormalizePostalCode оставляет только цифры; CEP должен состоять ровно из 8 цифр.
// "80.240-000" -> "80240000"
func NormalizePostalCode(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '.' || r == ' ':
		default:
			return "", ErrInvalidPostalCode
		}
	}
	if b.Len() != 8 {
		return "", ErrInvalidPostalCode
	}
	return b.String(), nil
}
