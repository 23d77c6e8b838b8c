package site

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/bornholm/courtside/internal/header"
	"github.com/bornholm/courtside/internal/ui"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

//go:embed static/*
var staticFs embed.FS

var (
	templates *template.Template
	static    fs.FS
)

func init() {
	tmpl, err := ui.Templates(nil, header.FS, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl

	sub, err := fs.Sub(staticFs, "static")
	if err != nil {
		panic(errors.WithStack(err))
	}

	static = sub
}
