package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/ifacereg/internal/ctxlog"
	"github.com/vk/ifacereg/manifest"
	"github.com/vk/ifacereg/probe"
	"github.com/vk/ifacereg/registry"
)

// App holds the demo binary's dependencies and fully bootstrapped registry.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	registrar *registry.Registrar
	probes    *registry.View[probe.Probe]
	reporters *registry.View[probe.Reporter]
}

// NewApp constructs a fully initialized App: every module registered, the
// registry bootstrapped and, when a manifest path is configured, validated.
// Startup failures are programmer or deployment errors and panic; the CLI
// boundary recovers them into a clean exit.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.NewRegistrar()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All modules registered.", "count", len(modules))

	probes := registry.NewView[probe.Probe](reg)
	reporters := registry.NewView[probe.Reporter](reg)
	reg.Bootstrap()
	logger.Debug("Registry bootstrapped.",
		"probes", probes.Len(), "reporters", reporters.Len())

	if cfg.ManifestPath != "" {
		m, err := manifest.Load(ctx, cfg.ManifestPath)
		if err != nil {
			panic(fmt.Errorf("failed to load manifests: %w", err))
		}
		if err := manifest.Validate(ctx, m, reg.Entries()); err != nil {
			// Code and manifests out of sync is a build defect, not a
			// runtime condition to limp through.
			panic(err)
		}
		logger.Debug("Manifest validation passed.")
	}

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		registrar: reg,
		probes:    probes,
		reporters: reporters,
	}
}

// Registrar returns the application's registrar. This is primarily for testing.
func (a *App) Registrar() *registry.Registrar {
	return a.registrar
}
