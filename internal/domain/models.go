package domain

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ConversionStatus is the outcome of a conversion attempt.
type ConversionStatus string

const (
	ConversionStatusCompleted ConversionStatus = "completed"
	ConversionStatusFailed    ConversionStatus = "failed"
)

// ExportFormat is a download format for an Output.
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps each ExportFormat to its MIME type.
var ExportContentTypes = map[ExportFormat]string{
	ExportFormatJSON: "application/json",
	ExportFormatCSV:  "text/csv; charset=utf-8",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Conversion records one conversion attempt.
// Document is only kept in memory for the UI preview and is never persisted.
type Conversion struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	FileName      string           `db:"file_name" json:"file_name"`
	FileSizeBytes int64            `db:"file_size_bytes" json:"file_size_bytes"`
	NumPages      int              `db:"num_pages" json:"num_pages"`
	NumPictures   int              `db:"num_pictures" json:"num_pictures"`
	DurationS     float64          `db:"duration_s" json:"duration_s"`
	Status        ConversionStatus `db:"status" json:"status"`
	Error         string           `db:"error" json:"error,omitempty"`
	Output        *Output          `db:"-" json:"output,omitempty"`
	ArchiveKey    string           `db:"archive_key" json:"archive_key,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	Document      *Document        `db:"-" json:"-"`
}

// FileSizeMB returns the uploaded file size in MiB.
func (c *Conversion) FileSizeMB() float64 {
	return float64(c.FileSizeBytes) / (1024 * 1024)
}

// ExportFileName names a download after the uploaded file, e.g.
// "report.pdf" -> "report_annotations.json".
func ExportFileName(uploadName string, format ExportFormat) string {
	base := filepath.Base(uploadName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "document"
	}
	return base + "_annotations." + string(format)
}
