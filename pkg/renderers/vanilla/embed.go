package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the embedded default stylesheet.
const StylesheetName = "coilform.css"

// Template names inside TemplatesFS, also used as theme partial keys.
const (
	FormTemplate    = "templates/form.tmpl"
	ResultsTemplate = "templates/results.tmpl"

	PartialForm    = "coil.form"
	PartialResults = "coil.results"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded CSS so callers can serve it over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// DefaultPartials maps theme partial keys to the embedded templates.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialForm:    FormTemplate,
		PartialResults: ResultsTemplate,
	}
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
