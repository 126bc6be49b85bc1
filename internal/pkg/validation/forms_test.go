package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/yatube/internal/pkg/apperrors"
)

type sampleForm struct {
	Text      string `form:"text" validate:"required,max=5"`
	Username  string `form:"username" validate:"omitempty,username"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2" validate:"eqfield=Password1"`
	Group     string `form:"group" validate:"omitempty,numeric"`
}

func TestForm(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Form(&sampleForm{Text: "hi", Username: "leo.t"}))
	})

	t.Run("errors keyed by form tag", func(t *testing.T) {
		err := Form(&sampleForm{Username: "bad name", Password1: "a", Password2: "b", Group: "x"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		fields, ok := apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{MsgRequired}, fields["text"])
		assert.Equal(t, []string{MsgInvalidName}, fields["username"])
		assert.Equal(t, []string{MsgPasswordsDiffer}, fields["password2"])
		assert.Equal(t, []string{MsgInvalidChoice}, fields["group"])
	})

	t.Run("length counted in characters", func(t *testing.T) {
		assert.NoError(t, Form(&sampleForm{Text: "пятьб"}))

		err := Form(&sampleForm{Text: strings.Repeat("я", 6)})
		fields, ok := apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"Ensure this value has at most 5 characters (it has 6)."}, fields["text"])
	})
}
