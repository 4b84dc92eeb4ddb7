package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, []string{"-list", "-log-level", "error"})
	require.NoError(t, err)

	listing := out.String()
	assert.Contains(t, listing, "Probe")
	assert.Contains(t, listing, "Reporter")
	assert.Contains(t, listing, "github.com/vk/ifacereg/modules/envcheck")
	assert.Contains(t, listing, "registrations (* = has constructor)")
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"-h"}))
	assert.Contains(t, out.String(), "Usage:")
}

func TestRunRejectsBadFlags(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, []string{"-log-level", "loud"})
	require.Error(t, err)
}
