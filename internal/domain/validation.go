package domain

import "fmt"

// ValidationError отказ, привязанный к конкретному полю запроса.
// Err - вид ошибки (sentinel пакета, который её вернул), доступен через errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func NewValidationError(field, message string, kind error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: kind}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v (%s: %s)", e.Err, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
