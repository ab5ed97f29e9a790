// internal/view/view.go

// Package view holds the embedded page templates. Styling is out of scope;
// the templates are structural.
package view

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"formatFileSize": FormatFileSize,
}

// Templates parses every embedded page template, keyed by base filename.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/*.html"))
}

// FormatFileSize renders a byte count for display.
func FormatFileSize(bytes int64) string {
	const k = 1024
	switch {
	case bytes <= 0:
		return "0 Bytes"
	case bytes < k:
		return fmt.Sprintf("%d Bytes", bytes)
	case bytes < k*k:
		return fmt.Sprintf("%.2f KB", float64(bytes)/k)
	case bytes < k*k*k:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(k*k))
	default:
		return fmt.Sprintf("%.2f GB", float64(bytes)/(k*k*k))
	}
}
