package validator

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var receiptRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-/]{0,31}$`)

// ValidateReceipt accepts cash-register receipt numbers such as "R-000123" or "A/2024/17".
func ValidateReceipt(receipt string) bool {
	return receiptRegex.MatchString(strings.TrimSpace(receipt))
}

func ValidatePersonName(name string) bool {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && r != '-' && r != ' ' && r != '\'' && r != '.' {
			return false
		}
	}

	return true
}

func FormatName(name string) string {
	parts := strings.Fields(name)
	for i, part := range parts {
		subparts := strings.Split(part, "-")
		for j, subpart := range subparts {
			subparts[j] = capitalize(subpart)
		}
		parts[i] = strings.Join(subparts, "-")
	}

	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func SanitizeString(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '&' || r == '"' || r == '`' || r == ';' {
			return -1
		}
		return r
	}, s))
}

// Register adds the clinic-specific tags to a go-playground validator,
// typically gin's binding engine.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("receipt", func(fl validator.FieldLevel) bool {
		return ValidateReceipt(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return ValidatePersonName(fl.Field().String())
	})
}

// ValidationDetails maps each failing field to the tag it failed on.
// It returns nil when err is not a validation error.
func ValidationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		details[ve.Field()] = ve.Tag()
	}
	return details
}
