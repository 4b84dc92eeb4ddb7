// Package testutil provides a standardized harness for application-level
// tests: manifest fixtures on disk, captured log output, and recovered
// startup panics.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/ifacereg/internal/app"
	"github.com/vk/ifacereg/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements io.Writer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements fmt.Stringer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an application test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunApp builds and runs an App with the given manifest files (written to a
// temporary directory) and modules. Startup panics are recovered into Err so
// failure cases are assertable.
func RunApp(t *testing.T, manifests map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	cfg := app.Config{LogLevel: "debug", LogFormat: "text"}
	if len(manifests) > 0 {
		dir := t.TempDir()
		for name, content := range manifests {
			path := filepath.Join(dir, name)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		}
		cfg.ManifestPath = dir
	}

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	result := &HarnessResult{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		result.App = app.NewApp(out, appConfig, modules...)
	}()

	if result.App != nil {
		result.Err = result.App.Run(context.Background())
	}
	result.Output = out.String()
	return result
}
