// Package probe defines the contracts implemented by the plugin modules that
// ship with the demo binary: health probes and result reporters. The package
// deliberately depends on nothing so both the registry core and every plugin
// can import it freely.
package probe

import (
	"context"
	"time"
)

// Result is the outcome of a single probe execution.
type Result struct {
	Probe   string
	Healthy bool
	Detail  string
	Elapsed time.Duration
}

// Probe is a named, self-contained health check.
type Probe interface {
	// Name identifies the probe in reports.
	Name() string
	// Check runs the probe. It must honor ctx cancellation and never panic;
	// failures are reported through the Result, not an error.
	Check(ctx context.Context) Result
}

// Reporter consumes the results of a probe run.
type Reporter interface {
	Report(ctx context.Context, results []Result)
}
