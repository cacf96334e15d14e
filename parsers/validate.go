package parsers

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateName checks a command, option or choice name as written.
func ValidateName(name string) (string, error) {
	if n := utf8.RuneCountInString(name); n < 1 || n > 32 {
		return "", errors.New("name must be between 1 and 32 characters")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '_' {
			return "", errors.New("name must only contain word characters")
		}
		if unicode.ToLower(r) != r {
			return "", errors.New("name must be in lowercase")
		}
	}
	return name, nil
}

// ValidateDescription checks a description and returns it trimmed.
func ValidateDescription(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	if n := utf8.RuneCountInString(desc); n < 1 || n > 100 {
		return "", errors.New("description must be between 1 and 100 characters")
	}
	return desc, nil
}

// ValidateLength checks that s has between min and max characters.
func ValidateLength(s string, min, max int) error {
	if n := utf8.RuneCountInString(s); n < min || n > max {
		return fmt.Errorf("must be between %d and %d characters", min, max)
	}
	return nil
}
