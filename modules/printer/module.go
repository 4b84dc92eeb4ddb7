// Package printer provides a reporter writing probe results as a plain text
// table to standard output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/vk/ifacereg/probe"
	"github.com/vk/ifacereg/registry"
)

// Module wires this package's implementations into a Registrar.
type Module struct{}

// Printer renders probe results to a writer.
type Printer struct {
	out io.Writer
}

// New builds a Printer writing to standard output.
func New() *Printer {
	return &Printer{out: os.Stdout}
}

// NewWriter builds a Printer writing to the given writer.
func NewWriter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Report implements probe.Reporter. Results are printed sorted by probe name
// for consistent output.
func (p *Printer) Report(ctx context.Context, results []probe.Result) {
	sorted := make([]probe.Result, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Probe < sorted[j].Probe })

	for _, res := range sorted {
		status := "FAIL"
		if res.Healthy {
			status = "OK"
		}
		fmt.Fprintf(p.out, "%-4s %-16s %12s  %s\n", status, res.Probe, res.Elapsed.Round(time.Millisecond), res.Detail)
	}
}

// Register registers this package's implementations.
func (m *Module) Register(r *registry.Registrar) {
	registry.RegisterConstructor[probe.Reporter, Printer](r, func() probe.Reporter { return New() })
}
