// Package httpprobe provides a probe issuing a GET against a configured URL.
// The target comes from IFACEREG_HTTP_URL, read at construction time, since
// registered constructors take no arguments.
package httpprobe

import (
	"context"
	"fmt"
	"os"
	"time"

	"resty.dev/v3"

	"github.com/vk/ifacereg/probe"
	"github.com/vk/ifacereg/registry"
)

// URLEnv names the environment variable holding the probe target.
const URLEnv = "IFACEREG_HTTP_URL"

const defaultTimeout = 10 * time.Second

// Module wires this package's implementations into a Registrar.
type Module struct{}

// HTTPProbe checks that a GET against its target returns a 2xx status.
type HTTPProbe struct {
	url    string
	client *resty.Client
}

// New builds an HTTPProbe targeting IFACEREG_HTTP_URL.
func New() *HTTPProbe {
	return &HTTPProbe{
		url:    os.Getenv(URLEnv),
		client: resty.New().SetTimeout(defaultTimeout),
	}
}

// Name implements probe.Probe.
func (p *HTTPProbe) Name() string { return "httpprobe" }

// Check implements probe.Probe.
func (p *HTTPProbe) Check(ctx context.Context) probe.Result {
	start := time.Now()
	result := probe.Result{Probe: p.Name()}

	if p.url == "" {
		result.Detail = fmt.Sprintf("no target configured; set %s", URLEnv)
		result.Elapsed = time.Since(start)
		return result
	}

	resp, err := p.client.R().SetContext(ctx).Get(p.url)
	result.Elapsed = time.Since(start)
	if err != nil {
		result.Detail = fmt.Sprintf("GET %s: %v", p.url, err)
		return result
	}

	result.Healthy = resp.IsSuccess()
	result.Detail = fmt.Sprintf("GET %s: %s", p.url, resp.Status())
	return result
}

// Register registers this package's implementations.
func (m *Module) Register(r *registry.Registrar) {
	registry.RegisterConstructor[probe.Probe, HTTPProbe](r, func() probe.Probe { return New() })
}
