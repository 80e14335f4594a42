package pipeline_test

import (
	"testing"

	"picdesc/internal/pdftest"
)

func minimalPDF(pages int) []byte {
	return pdftest.Minimal(pages)
}

func writeFile(t *testing.T, name string, data []byte) string {
	return pdftest.WriteFile(t, name, data)
}
