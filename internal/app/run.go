package app

import (
	"context"
	"fmt"

	"github.com/vk/ifacereg/probe"
)

// Run executes every registered probe and hands the results to every
// registered reporter. It returns an error when any probe reports unhealthy,
// so the process exit code reflects the outcome.
func (a *App) Run(ctx context.Context) error {
	if a.config.ListOnly {
		return a.list()
	}

	var results []probe.Result
	unhealthy := 0
	for it := a.probes.InstantiateAll(); ; {
		p, ok := it.Next()
		if !ok {
			break
		}
		a.logger.Debug("Running probe.", "probe", p.Name())
		result := p.Check(ctx)
		if !result.Healthy {
			unhealthy++
		}
		results = append(results, result)
	}

	for it := a.reporters.InstantiateAll(); ; {
		r, ok := it.Next()
		if !ok {
			break
		}
		r.Report(ctx, results)
	}

	a.logger.Info("Probe run complete.", "total", len(results), "unhealthy", unhealthy)
	if unhealthy > 0 {
		return fmt.Errorf("%d of %d probes unhealthy", unhealthy, len(results))
	}
	return nil
}

// list dumps every registration in the bootstrapped registry.
func (a *App) list() error {
	entries := a.registrar.Entries()
	for _, e := range entries {
		ctor := " "
		if e.HasConstructor {
			ctor = "*"
		}
		fmt.Fprintf(a.outW, "%s %-12s %-40s %s\n", ctor, e.Interface, e.Path, e.ModulePath)
	}
	fmt.Fprintf(a.outW, "%d registrations (* = has constructor)\n", len(entries))
	return nil
}
