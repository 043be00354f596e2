package util

import (
	"learning_center_backend/internal/model"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/nyaruka/phonenumbers"
)

const DefaultPhoneRegion = "MD"

var (
	Translator ut.Translator

	validatorOnce sync.Once

	phoneTag   = "phone"
	phoneText  = "{0} must be a valid phone number"
	phoneRegex = regexp.MustCompile(`^\+?[0-9\s\-]{7,15}$`)

	roleTag  = "role"
	roleText = "{0} must be one of user, client, teacher, journalist, assistant, admin"
)

// InitValidator hooks translations and custom tags into the validator that
// gin uses for binding. It is safe to call more than once.
func InitValidator() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_en := en.New()
		uni := ut.New(_en, _en)
		Translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, Translator)

		// Use JSON tag names for errors instead of Go struct names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation(phoneTag, phoneValidation)
		registerCustomTranslation(v, phoneTag, phoneText)

		_ = v.RegisterValidation(roleTag, roleValidation)
		registerCustomTranslation(v, roleTag, roleText)
	})
}

func registerCustomTranslation(v *validator.Validate, tag, text string) {
	_ = v.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// TranslateValidationErrors renders every field error as an English sentence.
func TranslateValidationErrors(errs validator.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		if Translator != nil {
			out = append(out, fe.Translate(Translator))
		} else {
			out = append(out, fe.Error())
		}
	}
	if len(out) == 0 {
		out = append(out, "Invalid request body")
	}
	return out
}

// IsValidPhone accepts digits with optional leading plus, spaces and dashes,
// and requires the number to be plausible for the default region.
func IsValidPhone(s string) bool {
	if !phoneRegex.MatchString(s) {
		return false
	}
	num, err := phonenumbers.Parse(s, DefaultPhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}

func phoneValidation(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func roleValidation(fl validator.FieldLevel) bool {
	return model.IsValidRole(fl.Field().String())
}
