// Package templates holds the HTML mail bodies.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

func Parse() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
