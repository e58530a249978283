package http

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// Validator wraps go-playground/validator with english field messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator builds the shared request validator.
func NewValidator() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	return &Validator{validate: validate, translator: trans}, nil
}

// Struct validates a request DTO and converts failures into a field-level
// ValidationError.
func (v *Validator) Struct(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := make(map[string]any, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fieldErr.Translate(v.translator)
	}
	return apperrors.NewValidationError("validation failed", details)
}
