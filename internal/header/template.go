package header

import (
	"embed"
	"html/template"
	"io"

	"github.com/bornholm/courtside/internal/ui"
	"github.com/pkg/errors"
)

// FS holds the "header" template, for pages embedding the header in their
// own layouts.
//
//go:embed templates/**
var FS embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, FS)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

func Render(w io.Writer, view View) error {
	if err := templates.ExecuteTemplate(w, "header", view); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
