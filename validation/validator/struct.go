package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultLang is the language used when none is requested.
const DefaultLang = "pt"

var (
	validate *validator.Validate

	cpfPattern   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	phonePattern = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return cpfPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// errorMessages is a nested map of languages to validation tags to custom error messages.
var errorMessages = map[string]map[string]string{
	"en": {
		"required": "The field '%s' is required.",
		"email":    "The field '%s' must be a valid email address.",
		"min":      "The field '%s' must be at least %s characters long.",
		"max":      "The field '%s' must be no longer than %s characters.",
		"lte":      "The field '%s' must be less than or equal to %s.",
		"gte":      "The field '%s' must be greater than or equal to %s.",
		"gt":       "The field '%s' must be greater than %s.",
		"lt":       "The field '%s' must be less than %s.",
		"oneof":    "The field '%s' must be one of %s.",
		"cpf":      "The field '%s' must be a CPF in the format 000.000.000-00.",
		"phone":    "The field '%s' must be a phone in the format (00) 00000-0000.",
	},
	"pt": {
		"required": "O campo '%s' é obrigatório.",
		"email":    "O campo '%s' deve ser um email válido.",
		"min":      "O campo '%s' deve ter no mínimo %s caracteres.",
		"max":      "O campo '%s' deve ter no máximo %s caracteres.",
		"lte":      "O campo '%s' deve ser menor ou igual a %s.",
		"gte":      "O campo '%s' deve ser maior ou igual a %s.",
		"gt":       "O campo '%s' deve ser maior que %s.",
		"lt":       "O campo '%s' deve ser menor que %s.",
		"oneof":    "O campo '%s' deve ser um de: %s.",
		"cpf":      "CPF inválido",
		"phone":    "Telefone inválido",
	},
}

// Errors maps JSON field names to a human message. It is returned by Validate.
type Errors map[string]string

// Error joins the messages in field order.
func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e[k])
	}
	return strings.Join(parts, "; ")
}

// parseMessage constructs a friendly error message based on the validation tag and custom messages.
func parseMessage(jsonTag string, e validator.FieldError, lang ...string) string {
	msgLang := DefaultLang
	if len(lang) > 0 && lang[0] != "" {
		msgLang = lang[0]
	}
	if msgs, exists := errorMessages[msgLang]; exists {
		if msg, exists := msgs[e.Tag()]; exists {
			switch strings.Count(msg, "%s") {
			case 0:
				return msg
			case 1:
				return fmt.Sprintf(msg, jsonTag)
			case 2:
				return fmt.Sprintf(msg, jsonTag, e.Param())
			}
		}
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", jsonTag, e.Tag())
}

// fieldMessage returns the message declared on the struct field for a failed tag.
// The msg tag is either a single message or "tag=message|tag=message".
func fieldMessage(field reflect.StructField, tag string) string {
	raw := field.Tag.Get("msg")
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "=") {
		return raw
	}
	for _, part := range strings.Split(raw, "|") {
		k, v, ok := strings.Cut(part, "=")
		if ok && strings.TrimSpace(k) == tag {
			return v
		}
	}
	return ""
}

// ValidateStruct validates a struct and returns a map of JSON field names to friendly error messages.
func ValidateStruct(s any, lang ...string) map[string]string {
	validationErrors := make(map[string]string)

	err := validate.Struct(s)
	if err == nil {
		return validationErrors
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		validationErrors[""] = err.Error()
		return validationErrors
	}

	structType := reflect.TypeOf(s)
	for structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	for _, e := range validationErrs {
		field, found := structType.FieldByName(e.StructField())
		jsonTag := e.StructField()
		if found {
			if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
				jsonTag = strings.Split(tag, ",")[0]
			}
		}
		if _, dup := validationErrors[jsonTag]; dup {
			continue
		}
		if found {
			if msg := fieldMessage(field, e.Tag()); msg != "" {
				validationErrors[jsonTag] = msg
				continue
			}
		}
		validationErrors[jsonTag] = parseMessage(jsonTag, e, lang...)
	}

	return validationErrors
}

// Validate is ValidateStruct returning an error, nil when the struct is valid.
func Validate(s any, lang ...string) error {
	if errs := ValidateStruct(s, lang...); len(errs) > 0 {
		return Errors(errs)
	}
	return nil
}

// IsCPF reports whether s is formatted as 000.000.000-00.
func IsCPF(s string) bool { return cpfPattern.MatchString(s) }

// IsPhone reports whether s is formatted as (00) 0000-0000 or (00) 00000-0000.
func IsPhone(s string) bool { return phonePattern.MatchString(s) }
