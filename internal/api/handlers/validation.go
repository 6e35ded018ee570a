package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// в ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	return v
}

// Validate проверяет DTO по тегам validate.
// Возвращает ошибку первого не прошедшего проверку поля (в порядке полей структуры) или nil.
func Validate(v interface{}) map[string][]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return map[string][]string{"request": {err.Error()}}
	}

	first := validationErrors[0]
	return map[string][]string{
		first.Field(): {validationMessage(first)},
	}
}

func validationMessage(fieldError validator.FieldError) string {
	field := strings.ReplaceAll(fieldError.Field(), "_", " ")

	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "gt", "gte", "min":
		return fmt.Sprintf("The %s must be at least %s.", field, fieldError.Param())
	case "datetime":
		return fmt.Sprintf("The %s does not match the format Y-m-d.", field)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}
