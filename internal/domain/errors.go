package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrConversionFailed        = errors.New("document conversion failed")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrTooManyPages            = errors.New("document exceeds maximum allowed pages")
	ErrInvalidPDF              = errors.New("input is not a valid PDF")
	ErrBackend                 = errors.New("conversion backend error")
	ErrConverterBusy           = errors.New("converter is busy")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrOutputUnavailable       = errors.New("conversion has no output")
)
