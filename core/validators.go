package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"

	emailShapeTag   = "emailshape"
	emailShapeText  = "email is invalid"
	emailShapeRegex = regexp.MustCompile(`\S+@\S+\.\S+`)

	requiredTag  = "required"
	requiredText = "this field is required"

	gtTag  = "gt"
	gtText = "must be a positive number"
)

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)

	_ = validate.RegisterValidation(emailShapeTag, emailShapeValidation)
	RegisterCustomTranslation(validate, translator, emailShapeTag, emailShapeText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, gtTag, gtText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// FieldErrors validates `s` and returns translated messages keyed by field name.
// The map is empty when `s` is valid. Non-validation failures (eg. a nil struct)
// are reported under the "_" key so callers never get a panic or an error.
func FieldErrors(validate *validator.Validate, translator ut.Translator, s interface{}) map[string]string {
	fields := make(map[string]string)
	err := validate.Struct(s)
	if err == nil {
		return fields
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = err.Error()
		return fields
	}
	for _, fe := range vErrs {
		if _, seen := fields[fe.Field()]; !seen { // first failing rule wins
			fields[fe.Field()] = fe.Translate(translator)
		}
	}
	return fields
}

// Custom Global Validators

// notBlankValidation rejects strings made only of whitespace.
func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// emailShapeValidation only checks for a basic local@domain.tld shape.
func emailShapeValidation(fl validator.FieldLevel) bool {
	return emailShapeRegex.MatchString(fl.Field().String())
}
