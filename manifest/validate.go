package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/ifacereg/internal/ctxlog"
	"github.com/vk/ifacereg/registry"
)

// Validate performs a strict two-way parity check between the manifest and a
// bootstrapped registry's entries. Every registration must be declared, every
// declaration must be registered, and constructor flags (and pinned paths)
// must agree. All mismatches are collected and reported in one error.
func Validate(ctx context.Context, m *Manifest, entries []registry.Entry) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	matched := make(map[string]int)
	for _, entry := range entries {
		iface, ok := m.Interfaces[entry.Interface]
		if !ok {
			errs = append(errs, fmt.Sprintf("interface %q: registered by %s but not declared in any manifest", entry.Interface, entry.ModulePath))
			continue
		}
		impl, ok := iface.Implementations[entry.Name]
		if !ok {
			errs = append(errs, fmt.Sprintf("interface %q: type %q registered but not declared in the manifest", entry.Interface, entry.Name))
			continue
		}
		matched[entry.Interface+"\x00"+entry.Name]++

		if impl.Constructor != entry.HasConstructor {
			errs = append(errs, fmt.Sprintf("interface %q, implementation %q: manifest declares constructor=%t but registration has constructor=%t",
				entry.Interface, entry.Name, impl.Constructor, entry.HasConstructor))
		}
		if impl.Path != "" && impl.Path != entry.Path {
			errs = append(errs, fmt.Sprintf("interface %q, implementation %q: manifest pins path %q but registration came from %q",
				entry.Interface, entry.Name, impl.Path, entry.Path))
		}
	}

	for _, iface := range m.Interfaces {
		for _, impl := range iface.Implementations {
			if matched[iface.Name+"\x00"+impl.Type] == 0 {
				errs = append(errs, fmt.Sprintf("interface %q: manifest %s declares implementation %q but nothing registered it",
					iface.Name, impl.SourceFile, impl.Type))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("manifest validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Manifest validation passed.", "registrations", len(entries))
	return nil
}
