package app_errors

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

func ParseValidationError(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	var out []FieldError
	for _, fe := range ve {
		msgKey, params := validationMessageKey(fe)

		out = append(out, FieldError{
			Field:      toSnakeCase(fe.Field()),
			Reason:     fe.Tag(),
			MessageKey: msgKey,
			Params:     params,
		})
	}

	return out
}

// toSnakeCase: AssignedUsers -> assigned_users, ID -> id, Stages[0] -> stages[0].
func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(b.String(), " ", "_")
}

func validationMessageKey(fe validator.FieldError) (string, map[string]any) {
	switch fe.Tag() {
	case "required":
		return "validation.required", nil
	case "min":
		return "validation.min", map[string]any{
			"min": fe.Param(),
		}
	case "max":
		return "validation.max", map[string]any{
			"max": fe.Param(),
		}
	case "email":
		return "validation.email", nil
	case "uuid":
		return "validation.uuid", nil
	case "unique":
		return "validation.unique", nil
	case "requestState":
		return "validation.request_state", nil
	case "eqfield":
		return "validation.eqfield", map[string]any{
			"field": toSnakeCase(fe.Param()),
		}
	default:
		return "validation.invalid", nil
	}
}
