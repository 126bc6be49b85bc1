package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringValidation(t *testing.T) {
	t.Run("required empty fails", func(t *testing.T) {
		assert.False(t, NewStringValidation("").Validate())
	})

	t.Run("optional empty passes", func(t *testing.T) {
		assert.True(t, NewStringValidation("").WithRequired(false).WithMinLength(3).Validate())
	})

	t.Run("length counts runes", func(t *testing.T) {
		text := strings.Repeat("ж", CommentMaxLength)
		assert.True(t, NewStringValidation(text).WithMaxLength(CommentMaxLength).Validate())
		assert.False(t, NewStringValidation(text+"ж").WithMaxLength(CommentMaxLength).Validate())
	})

	t.Run("min length", func(t *testing.T) {
		assert.False(t, NewStringValidation("short").WithMinLength(PasswordMinLength).Validate())
	})
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("test_author_1"))
	assert.True(t, IsValidUsername("a.b@c+d-e"))
	assert.False(t, IsValidUsername("with space"))
	assert.False(t, IsValidUsername("slash/name"))
	assert.False(t, IsValidUsername(strings.Repeat("a", UsernameMaxLength+1)))
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("test-slug_1"))
	assert.False(t, IsValidSlug("Тестовый слаг"))
	assert.False(t, IsValidSlug(""))
}
