// Package export renders an Output as a downloadable file.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"picdesc/internal/domain"
)

// ParseFormat resolves a format query value. An empty value selects JSON.
func ParseFormat(s string) (domain.ExportFormat, error) {
	f := domain.ExportFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return domain.ExportFormatJSON, nil
	}
	if _, ok := domain.ExportContentTypes[f]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, s)
	}
	return f, nil
}

// Render writes out to w in the given format.
func Render(w io.Writer, out *domain.Output, format domain.ExportFormat) error {
	switch format {
	case domain.ExportFormatJSON:
		return WriteJSON(w, out)
	case domain.ExportFormatCSV:
		return WriteCSV(w, out)
	case domain.ExportFormatXLSX:
		return WriteXLSX(w, out)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, format)
	}
}

// WriteJSON writes out as indented JSON.
func WriteJSON(w io.Writer, out *domain.Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// columns is the header row shared by the tabular formats.
var columns = []string{
	"Picture Number",
	"Reference",
	"Caption",
	"Description",
	"Created By",
}

func pictureRow(p *domain.PictureOutput) []string {
	row := make([]string, len(columns))
	row[0] = fmt.Sprintf("%d", p.PictureNumber)
	row[1] = p.Reference
	row[2] = p.Caption
	if p.Description != nil {
		row[3] = p.Description.Text
		row[4] = p.Description.CreatedBy
	}
	return row
}
