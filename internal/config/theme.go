package config

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-coilform/pkg/render"
)

// Enabled reports whether a theme is configured.
func (c ThemeConfig) Enabled() bool {
	return c.Name != ""
}

// Manifest converts the section into a go-theme manifest. Nil when no
// theme is configured.
func (c ThemeConfig) Manifest() *theme.Manifest {
	if !c.Enabled() {
		return nil
	}
	manifest := &theme.Manifest{
		Name:    c.Name,
		Version: "1.0.0",
		Tokens:  copyTokens(c.Tokens),
		Assets: theme.Assets{
			Prefix: c.AssetPrefix,
			Files:  stylesheetFiles(c.Stylesheet),
		},
	}
	if len(c.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(c.Variants))
		for name, variant := range c.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens: copyTokens(variant.Tokens),
				Assets: theme.Assets{Files: stylesheetFiles(variant.Stylesheet)},
			}
		}
	}
	return manifest
}

func stylesheetFiles(file string) map[string]string {
	if file == "" {
		return nil
	}
	return map[string]string{render.AssetStylesheet: file}
}

func copyTokens(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out[key] = value
	}
	return out
}
