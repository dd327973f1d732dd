package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"content-analytics-api/models"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

// SubmissionValidator checks ingest items and renders English messages keyed
// by JSON field path.
type SubmissionValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewSubmissionValidator() *SubmissionValidator {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(fmt.Errorf("register validator translations: %w", err))
	}

	return &SubmissionValidator{validate: validate, translator: trans}
}

// Decode parses one raw item. Type mismatches are reported by field path.
func (v *SubmissionValidator) Decode(raw json.RawMessage) (models.ContentSubmission, []string) {
	var sub models.ContentSubmission
	if err := json.Unmarshal(raw, &sub); err != nil {
		var typeErr *json.UnmarshalTypeError
		var timeErr *time.ParseError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return sub, []string{fmt.Sprintf("%s: expected %s", typeErr.Field, typeErr.Type)}
		case errors.As(err, &typeErr):
			return sub, []string{fmt.Sprintf("submission must be an object, got %s", typeErr.Value)}
		case errors.As(err, &timeErr):
			return sub, []string{"content.timestamp: must be an RFC 3339 timestamp"}
		default:
			return sub, []string{"malformed submission"}
		}
	}
	return sub, nil
}

func (v *SubmissionValidator) Validate(sub models.ContentSubmission) []string {
	err := v.validate.Struct(sub)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{"invalid submission"}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fmt.Sprintf("%s: %s", fieldPath(fe.Namespace()), fe.Translate(v.translator)))
	}
	return messages
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
