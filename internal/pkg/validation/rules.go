package validation

import (
	"regexp"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// UsernamePattern allows letters, digits and @/./+/-/_ only
	UsernamePattern = `^[\w.@+-]+$`

	// SlugPattern allows latin letters, digits, hyphens and underscores
	SlugPattern = `^[-a-zA-Z0-9_]+$`

	UsernameMaxLength   = 150
	PasswordMinLength   = 8
	GroupTitleMaxLength = 200
	CommentMaxLength    = 200
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Username *regexp.Regexp
	Slug     *regexp.Regexp
}{
	Username: regexp.MustCompile(UsernamePattern),
	Slug:     regexp.MustCompile(SlugPattern),
}

// StringValidation checks one string value. Lengths are counted in runes.
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// IsValidUsername applies the username rules
func IsValidUsername(username string) bool {
	return NewStringValidation(username).
		WithMaxLength(UsernameMaxLength).
		WithPattern(CompiledPatterns.Username).
		Validate()
}

// IsValidSlug applies the group slug rules
func IsValidSlug(slug string) bool {
	return NewStringValidation(slug).
		WithPattern(CompiledPatterns.Slug).
		Validate()
}
