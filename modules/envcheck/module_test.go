package envcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ifacereg/probe"
	"github.com/vk/ifacereg/registry"
)

func TestCheckHealthy(t *testing.T) {
	t.Setenv("ENVCHECK_TEST_A", "1")
	t.Setenv("ENVCHECK_TEST_B", "2")
	t.Setenv(VarsEnv, "ENVCHECK_TEST_A, ENVCHECK_TEST_B")

	result := New().Check(context.Background())
	assert.True(t, result.Healthy)
	assert.Equal(t, "envcheck", result.Probe)
	assert.Contains(t, result.Detail, "2 variables present")
}

func TestCheckMissingVariable(t *testing.T) {
	t.Setenv("ENVCHECK_TEST_A", "1")
	t.Setenv(VarsEnv, "ENVCHECK_TEST_A,ENVCHECK_TEST_ABSENT")

	result := New().Check(context.Background())
	assert.False(t, result.Healthy)
	assert.Contains(t, result.Detail, "missing: ENVCHECK_TEST_ABSENT")
}

func TestCheckNoVariablesConfigured(t *testing.T) {
	t.Setenv(VarsEnv, "")
	result := New().Check(context.Background())
	assert.True(t, result.Healthy, "an empty requirement list is trivially satisfied")
}

func TestRegister(t *testing.T) {
	r := registry.NewRegistrar()
	(&Module{}).Register(r)

	probes := registry.NewView[probe.Probe](r)
	reporters := registry.NewView[probe.Reporter](r)
	r.Bootstrap()

	require.Equal(t, 1, probes.Len())
	im, ok := probes.Iterate().Next()
	require.True(t, ok)
	assert.Equal(t, "EnvCheck", im.Name())
	assert.True(t, im.HasConstructor())

	require.Equal(t, 1, reporters.Len())
	rep, ok := reporters.Iterate().Next()
	require.True(t, ok)
	assert.Equal(t, "NullReporter", rep.Name())
	assert.False(t, rep.HasConstructor())
	assert.Equal(t, 0, reporters.InstantiateAll().Count())
}
