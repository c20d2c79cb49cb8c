package valueobject

import (
	"errors"
	"regexp"
	"strings"
)

// phonePattern accepts an optional leading + followed by 7 to 15 digits (E.164)
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Phone is a value object for a WhatsApp-capable phone number.
// The zero value represents "no phone on file".
type Phone struct {
	value string
}

// NewPhone normalizes and validates a phone number.
// Spaces, dashes and parentheses are stripped before validation.
func NewPhone(raw string) (Phone, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return Phone{}, nil
	}
	if !phonePattern.MatchString(cleaned) {
		return Phone{}, errors.New("invalid phone number")
	}
	return Phone{value: cleaned}, nil
}

// IsEmpty returns true when no phone number is set
func (p Phone) IsEmpty() bool {
	return p.value == ""
}

// String returns the normalized phone number
func (p Phone) String() string {
	return p.value
}
