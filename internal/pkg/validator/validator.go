package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// OrNil returns nil when no errors were collected, so DTO Validate methods
// never return a non-nil error interface wrapping an empty slice.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidPhone accepts Brazilian numbers with area code, 10 or 11 digits,
// optionally prefixed by +55. Spaces, dashes and parentheses are ignored.
func IsValidPhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	cleaned = strings.TrimPrefix(cleaned, "+55")
	if !IsNumeric(cleaned) {
		return false
	}
	return len(cleaned) == 10 || len(cleaned) == 11
}

// IsValidCPF checks the length and both check digits of a CPF number.
func IsValidCPF(cpf string) bool {
	cleaned := strings.NewReplacer(".", "", "-", "").Replace(cpf)
	if len(cleaned) != 11 || !IsNumeric(cleaned) {
		return false
	}
	if strings.Count(cleaned, cleaned[:1]) == 11 {
		return false
	}

	digit := func(n int) byte {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(cleaned[i]-'0') * (n + 1 - i)
		}
		rest := (sum * 10) % 11
		if rest == 10 {
			rest = 0
		}
		return byte(rest) + '0'
	}

	return digit(9) == cleaned[9] && digit(10) == cleaned[10]
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00-03:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}
