package render

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Theme asset keys understood by the HTML renderer.
const (
	AssetStylesheet = "vanilla.stylesheet"
	AssetLogo       = "vanilla.logo"
)

// ManifestSelector resolves theme selections from a fixed set of manifests.
// Unknown names fall back to the default theme; unknown variants to the base
// manifest.
type ManifestSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector validates manifests through a go-theme registry and
// returns a selector over them. The first manifest is the default unless
// defaultTheme names another.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*ManifestSelector, error) {
	registry := theme.NewRegistry()
	selector := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
		}
		selector.manifests[manifest.Name] = manifest
		if selector.defaultTheme == "" {
			selector.defaultTheme = manifest.Name
		}
	}
	if len(selector.manifests) == 0 {
		return nil, fmt.Errorf("render: at least one theme manifest is required")
	}
	if _, ok := selector.manifests[selector.defaultTheme]; !ok {
		return nil, fmt.Errorf("render: default theme %q not registered", selector.defaultTheme)
	}
	return selector, nil
}

// Select implements theme.ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	manifest, ok := s.manifests[name]
	if !ok {
		name = s.defaultTheme
		manifest = s.manifests[name]
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}
	if _, ok := manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Themes lists the registered theme names.
func (s *ManifestSelector) Themes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeTokens merges the manifest tokens with the selected variant's tokens.
func ThemeTokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	out := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		out[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			out[key] = value
		}
	}
	return out
}

// CSSVars derives "--name" custom properties from tokens.
func CSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := strings.TrimPrefix(strings.TrimSpace(key), "--")
		name = strings.NewReplacer(".", "-", " ", "-").Replace(name)
		out["--"+name] = strings.TrimSpace(value)
	}
	return out
}

// ThemePartials merges fallbacks, manifest templates and variant templates,
// later sources winning.
func ThemePartials(selection *theme.Selection, fallbacks map[string]string) map[string]string {
	out := make(map[string]string, len(fallbacks))
	for key, value := range fallbacks {
		out[key] = value
	}
	if selection == nil || selection.Manifest == nil {
		return out
	}
	for key, value := range selection.Manifest.Templates {
		out[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Templates {
			out[key] = value
		}
	}
	return out
}

// RendererConfig derives the renderer-facing theme configuration from a
// selection. A nil selection yields nil.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	tokens := ThemeTokens(selection)
	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: ThemePartials(selection, fallbacks),
		Tokens:   tokens,
		CSSVars:  CSSVars(tokens),
		AssetURL: func(key string) string {
			return ThemeAsset(selection, key)
		},
	}
}

// SortedCSSVars renders custom properties as sorted "name: value" lines.
func SortedCSSVars(vars map[string]string) []string {
	if len(vars) == 0 {
		return nil
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, fmt.Sprintf("%s: %s", name, vars[name]))
	}
	return out
}

// ThemeAsset resolves an asset key to a URL, preferring the variant's file
// and prefix over the manifest's. Empty when the key is unknown.
func ThemeAsset(selection *theme.Selection, key string) string {
	if selection == nil || selection.Manifest == nil {
		return ""
	}
	prefix := selection.Manifest.Assets.Prefix
	file := selection.Manifest.Assets.Files[key]
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		if override := variant.Assets.Files[key]; override != "" {
			file = override
		}
	}
	if file == "" {
		return ""
	}
	if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
		return file
	}
	if strings.Contains(prefix, "://") {
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return path.Join(prefix, file)
}
