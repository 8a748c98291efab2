package customer

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidPhone = errors.New("invalid phone number")

var phoneDigits = regexp.MustCompile(`^[0-9]{7,15}$`)

// ContactIdentity is the normalized phone number that groups guest customer
// records. Promo reuse checks span every customer id carrying the same
// identity.
type ContactIdentity struct {
	phone string
}

func NewContactIdentity(phone string) (ContactIdentity, error) {
	normalized := normalizePhone(phone)
	if !phoneDigits.MatchString(normalized) {
		return ContactIdentity{}, ErrInvalidPhone
	}
	return ContactIdentity{phone: normalized}, nil
}

func (c ContactIdentity) Phone() string {
	return c.phone
}

func (c ContactIdentity) IsZero() bool {
	return c.phone == ""
}

func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	// Saudi numbers arrive as 05XXXXXXXX, 9665XXXXXXXX or 5XXXXXXXX; store
	// the international form without the plus.
	if strings.HasPrefix(s, "05") && len(s) == 10 {
		return "966" + s[1:]
	}
	if strings.HasPrefix(s, "5") && len(s) == 9 {
		return "966" + s
	}
	return s
}
