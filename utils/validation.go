// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// Allows + prefix followed by 7-15 digits.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// ValidatePhone checks if a phone number is in a valid international
// format, ignoring common separators.
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phonePattern.MatchString(cleaned)
}
