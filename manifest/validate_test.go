package manifest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ifacereg/registry"
)

func declaredManifest() *Manifest {
	m := New()
	m.Interfaces["Probe"] = &Interface{
		Name: "Probe",
		Implementations: map[string]*Implementation{
			"EnvCheck": {Type: "EnvCheck", Constructor: true, SourceFile: "probes.hcl"},
			"NoopProbe": {
				Type:       "NoopProbe",
				Path:       "github.com/vk/ifacereg/modules/envcheck.NoopProbe",
				SourceFile: "probes.hcl",
			},
		},
	}
	return m
}

func TestValidatePasses(t *testing.T) {
	entries := []registry.Entry{
		{Name: "EnvCheck", Path: "EnvCheck", Interface: "Probe", HasConstructor: true, ModulePath: "github.com/vk/ifacereg/modules/envcheck"},
		{Name: "NoopProbe", Path: "github.com/vk/ifacereg/modules/envcheck.NoopProbe", Interface: "Probe", ModulePath: "github.com/vk/ifacereg/registry"},
	}
	require.NoError(t, Validate(context.Background(), declaredManifest(), entries))
}

func TestValidateFailures(t *testing.T) {
	t.Run("undeclared interface", func(t *testing.T) {
		entries := []registry.Entry{
			{Name: "X", Interface: "Mystery", ModulePath: "example.com/x"},
		}
		err := Validate(context.Background(), New(), entries)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `interface "Mystery"`)
		assert.Contains(t, err.Error(), "not declared in any manifest")
	})

	t.Run("undeclared implementation", func(t *testing.T) {
		entries := []registry.Entry{
			{Name: "Rogue", Interface: "Probe", HasConstructor: true},
		}
		err := Validate(context.Background(), declaredManifest(), entries)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `type "Rogue" registered but not declared`)
	})

	t.Run("constructor mismatch", func(t *testing.T) {
		entries := []registry.Entry{
			{Name: "EnvCheck", Path: "EnvCheck", Interface: "Probe", HasConstructor: false},
			{Name: "NoopProbe", Path: "github.com/vk/ifacereg/modules/envcheck.NoopProbe", Interface: "Probe"},
		}
		err := Validate(context.Background(), declaredManifest(), entries)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "constructor=true but registration has constructor=false")
	})

	t.Run("path mismatch", func(t *testing.T) {
		entries := []registry.Entry{
			{Name: "EnvCheck", Path: "EnvCheck", Interface: "Probe", HasConstructor: true},
			{Name: "NoopProbe", Path: "example.com/elsewhere.NoopProbe", Interface: "Probe"},
		}
		err := Validate(context.Background(), declaredManifest(), entries)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pins path")
	})

	t.Run("missing registration", func(t *testing.T) {
		entries := []registry.Entry{
			{Name: "EnvCheck", Path: "EnvCheck", Interface: "Probe", HasConstructor: true},
		}
		err := Validate(context.Background(), declaredManifest(), entries)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `declares implementation "NoopProbe" but nothing registered it`)
	})

	t.Run("all mismatches reported together", func(t *testing.T) {
		err := Validate(context.Background(), declaredManifest(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"EnvCheck"`)
		assert.Contains(t, err.Error(), `"NoopProbe"`)
	})
}
