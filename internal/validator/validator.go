package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/campusgrid/timetable-backend/internal/model"
)

var (
	// trans is the singleton English translator for validation errors.
	trans     ut.Translator
	setupOnce sync.Once
)

// customTags are the domain tags registered on top of the built-in ones,
// with their English messages.
var customTags = map[string]struct {
	fn      govalidator.Func
	message string
}{
	"clock": {
		fn: func(fl govalidator.FieldLevel) bool {
			_, err := model.ParseClock(fl.Field().String())
			return err == nil
		},
		message: "{0} must be a time of day in HH:MM or HH:MM:SS format",
	},
	"roomtype": {
		fn: func(fl govalidator.FieldLevel) bool {
			return model.RoomType(fl.Field().String()).Valid()
		},
		message: "{0} must be one of Lecture, Lab, Seminar",
	},
}

// Setup registers the validator with English translations and the custom
// tags on Gin's binding engine. Safe to call more than once.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			return
		}

		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		for tag, custom := range customTags {
			_ = v.RegisterValidation(tag, custom.fn)
			message := custom.message
			_ = v.RegisterTranslation(tag, trans,
				func(u ut.Translator) error { return u.Add(tag, message, true) },
				func(u ut.Translator, fe govalidator.FieldError) string {
					t, _ := u.T(fe.Tag(), fe.Field())
					return t
				},
			)
		}
	})
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				fields[fe.Field()] = fe.Translate(trans)
			} else {
				fields[fe.Field()] = fe.Error()
			}
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
