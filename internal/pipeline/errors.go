package pipeline

import (
	"errors"
	"fmt"

	"picdesc/internal/domain"
)

// ConversionError reports why a source could not be converted. It matches
// domain.ErrConversionFailed and its cause through errors.Is.
type ConversionError struct {
	Source string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting %s: %v", e.Source, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports every ConversionError as a domain.ErrConversionFailed.
func (e *ConversionError) Is(target error) bool {
	return target == domain.ErrConversionFailed
}

func conversionErr(source string, cause, detail error) *ConversionError {
	if detail == nil {
		return &ConversionError{Source: source, Err: cause}
	}
	return &ConversionError{Source: source, Err: fmt.Errorf("%w: %w", cause, detail)}
}

// IsConversionError reports whether err is a conversion failure.
func IsConversionError(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}
