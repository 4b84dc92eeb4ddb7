// Package envcheck provides a probe verifying that required environment
// variables are set. The variable list comes from IFACEREG_REQUIRED_ENV, a
// comma-separated list read at construction time, since registered
// constructors take no arguments.
package envcheck

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vk/ifacereg/probe"
	"github.com/vk/ifacereg/registry"
)

// VarsEnv names the environment variable holding the comma-separated list of
// required variables.
const VarsEnv = "IFACEREG_REQUIRED_ENV"

// Module wires this package's implementations into a Registrar.
type Module struct{}

// EnvCheck probes for the presence of a fixed set of environment variables.
type EnvCheck struct {
	vars []string
}

// New builds an EnvCheck from IFACEREG_REQUIRED_ENV.
func New() *EnvCheck {
	var vars []string
	for _, name := range strings.Split(os.Getenv(VarsEnv), ",") {
		if name = strings.TrimSpace(name); name != "" {
			vars = append(vars, name)
		}
	}
	return &EnvCheck{vars: vars}
}

// Name implements probe.Probe.
func (c *EnvCheck) Name() string { return "envcheck" }

// Check reports healthy when every required variable is present and non-empty.
func (c *EnvCheck) Check(ctx context.Context) probe.Result {
	start := time.Now()
	var missing []string
	for _, name := range c.vars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}

	result := probe.Result{Probe: c.Name(), Elapsed: time.Since(start)}
	if len(missing) > 0 {
		result.Detail = fmt.Sprintf("missing: %s", strings.Join(missing, ", "))
		return result
	}
	result.Healthy = true
	result.Detail = fmt.Sprintf("%d variables present", len(c.vars))
	return result
}

// NullReporter discards results. It is registered without a constructor, so a
// view lists it but InstantiateAll skips it; it exists for callers that want
// to inspect the registration rather than run it.
type NullReporter struct{}

// Report implements probe.Reporter.
func (NullReporter) Report(context.Context, []probe.Result) {}

// Register registers this package's implementations.
func (m *Module) Register(r *registry.Registrar) {
	registry.RegisterConstructor[probe.Probe, EnvCheck](r, func() probe.Probe { return New() })
	registry.Register[probe.Reporter, NullReporter](r)
}
