// Package web holds the HTML templates of the upload UI.
package web

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"seconds": func(v float64) string { return fmt.Sprintf("%.2fs", v) },
	"mb":      func(v float64) string { return fmt.Sprintf("%.2f MB", v) },
}

// Templates parses the embedded UI templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
