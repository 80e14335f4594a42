package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"picdesc/internal/domain"
)

// LimitReport is what CheckLimits learned about a source file.
type LimitReport struct {
	SizeBytes int64
	Pages     int
}

// CheckLimits verifies the source is a PDF within the byte and page ceilings.
// The size is checked first so oversized files are never parsed.
func CheckLimits(source string, maxPages int, maxFileSizeBytes int64) (*LimitReport, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, conversionErr(source, domain.ErrInvalidPDF, withoutPath(err))
	}
	if info.IsDir() {
		return nil, conversionErr(source, domain.ErrInvalidPDF, fmt.Errorf("is a directory"))
	}

	report := &LimitReport{SizeBytes: info.Size()}
	if maxFileSizeBytes > 0 && info.Size() > maxFileSizeBytes {
		return report, conversionErr(source, domain.ErrFileTooLarge,
			fmt.Errorf("%d bytes, limit is %d", info.Size(), maxFileSizeBytes))
	}

	pages, err := pageCount(source)
	if err != nil {
		return report, conversionErr(source, domain.ErrInvalidPDF, withoutPath(err))
	}
	report.Pages = pages

	if maxPages > 0 && pages > maxPages {
		return report, conversionErr(source, domain.ErrTooManyPages,
			fmt.Errorf("%d pages, limit is %d", pages, maxPages))
	}
	return report, nil
}

func pageCount(source string) (int, error) {
	f, err := os.Open(source)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(f, conf)
}

// withoutPath drops the file path from os errors; the source is already named by
// the ConversionError and may be a temporary file.
func withoutPath(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return fmt.Errorf("%s: %w", pe.Op, pe.Err)
	}
	return err
}
