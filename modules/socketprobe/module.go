// Package socketprobe provides a probe opening a Socket.IO connection against
// a configured endpoint. The target comes from IFACEREG_SOCKETIO_URL, read at
// construction time, since registered constructors take no arguments.
package socketprobe

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/ifacereg/probe"
	"github.com/vk/ifacereg/registry"
)

// URLEnv names the environment variable holding the probe target.
const URLEnv = "IFACEREG_SOCKETIO_URL"

const defaultTimeout = 10 * time.Second

// Module wires this package's implementations into a Registrar.
type Module struct{}

// SocketProbe checks that a Socket.IO handshake against its target succeeds.
type SocketProbe struct {
	url string
}

// New builds a SocketProbe targeting IFACEREG_SOCKETIO_URL.
func New() *SocketProbe {
	return &SocketProbe{url: os.Getenv(URLEnv)}
}

// Name implements probe.Probe.
func (p *SocketProbe) Name() string { return "socketprobe" }

// Check implements probe.Probe.
func (p *SocketProbe) Check(ctx context.Context) probe.Result {
	start := time.Now()
	result := probe.Result{Probe: p.Name()}

	if p.url == "" {
		result.Detail = fmt.Sprintf("no target configured; set %s", URLEnv)
		result.Elapsed = time.Since(start)
		return result
	}

	parsed, err := url.Parse(p.url)
	if err != nil {
		result.Detail = fmt.Sprintf("invalid target %q: %v", p.url, err)
		result.Elapsed = time.Since(start)
		return result
	}

	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := socket.DefaultOptions()
	if parsed.Path != "" {
		opts.SetPath(parsed.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)
	defer io.Disconnect()

	done := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		done <- nil
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				done <- err
				return
			}
		}
		done <- fmt.Errorf("connection refused")
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		result.Detail = fmt.Sprintf("connect %s: timed out waiting for handshake", p.url)
	case err := <-done:
		if err != nil {
			result.Detail = fmt.Sprintf("connect %s: %v", p.url, err)
		} else {
			result.Healthy = true
			result.Detail = fmt.Sprintf("connect %s: handshake ok, sid %s", p.url, io.Id())
		}
	}
	result.Elapsed = time.Since(start)
	return result
}

// Register registers this package's implementations.
func (m *Module) Register(r *registry.Registrar) {
	registry.RegisterConstructor[probe.Probe, SocketProbe](r, func() probe.Probe { return New() })
}
