package util

import (
	"testing"

	"learning_center_backend/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Phone string          `json:"phone" binding:"required,phone"`
	Title model.Localized `json:"title"`
	Role  string          `json:"role" binding:"omitempty,role"`
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+37369123456", "069 123 456", "+373-22-123-456"}
	invalid := []string{"", "12", "abc1234567", "+1234567890123456789"}

	for _, p := range valid {
		assert.True(t, IsValidPhone(p), p)
	}
	for _, p := range invalid {
		assert.False(t, IsValidPhone(p), p)
	}
}

func TestCustomTagsAreTranslated(t *testing.T) {
	InitValidator()

	err := binding.Validator.ValidateStruct(&contactForm{
		Phone: "nope",
		Title: model.Localized{En: "only english"},
		Role:  "root",
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	msgs := TranslateValidationErrors(verrs)
	assert.Contains(t, msgs, "phone must be a valid phone number")
	assert.Contains(t, msgs, "ro is a required field")
	assert.Contains(t, msgs, "role must be one of user, client, teacher, journalist, assistant, admin")
}

func TestValidStructPasses(t *testing.T) {
	InitValidator()

	err := binding.Validator.ValidateStruct(&contactForm{
		Phone: "+37369123456",
		Title: model.Localized{Ro: "Salut"},
	})
	assert.NoError(t, err)
}
