package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-coilform/pkg/engine"
	"github.com/goliatone/go-coilform/pkg/orchestrator"
	"github.com/goliatone/go-coilform/pkg/render"
	"github.com/goliatone/go-coilform/pkg/renderers/vanilla"
)

const stylesheetPath = "/assets/" + vanilla.StylesheetName

func (a *app) engine() *engine.Client {
	cfg := a.cfg.Engine
	return engine.New(
		engine.WithBaseURL(cfg.BaseURL),
		engine.WithAPIKey(cfg.APIKey),
		engine.WithTimeout(cfg.Timeout),
		engine.WithUserAgent(cfg.UserAgent),
		engine.WithLogger(a.logger),
	)
}

func (a *app) orchestrator(service engine.Service) (*orchestrator.Orchestrator, error) {
	html, err := vanilla.New(
		vanilla.WithStylesheet(stylesheetPath),
		vanilla.WithTitle(a.cfg.Form.Title),
	)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(a.cfg.Form.Renderer),
		orchestrator.WithEngine(service),
		orchestrator.WithLogger(a.logger),
		orchestrator.WithOptionsData(a.cfg.Engine.OptionsData),
		orchestrator.WithResultsPath(a.cfg.Server.ResultsPath),
		orchestrator.WithFixedValues(a.cfg.Form.Fixed),
	}

	if manifest := a.cfg.Theme.Manifest(); manifest != nil {
		selector, err := render.NewManifestSelector(a.cfg.Theme.Name, a.cfg.Theme.Variant, manifest)
		if err != nil {
			return nil, fmt.Errorf("theme: %w", err)
		}
		options = append(options, orchestrator.WithThemeSelector(selector))
	}

	if path := a.cfg.Form.Preset; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("form preset: %w", err)
		}
		preset, err := orchestrator.ParsePreset(path, data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(preset))
	}

	return orchestrator.New(options...), nil
}
