package registry

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtImpl(t *testing.T, withCtor bool) Impl[widget] {
	t.Helper()
	r := NewRegistrar()
	if withCtor {
		RegisterConstructor[widget, boxWidget](r, func() widget { return boxWidget{} })
	} else {
		Register[widget, boxWidget](r)
	}
	view := NewView[widget](r)
	r.Bootstrap()
	im, ok := view.Iterate().Next()
	require.True(t, ok)
	return im
}

func TestImplString(t *testing.T) {
	im := builtImpl(t, true)
	rendered := im.String()
	assert.Contains(t, rendered, `Type Name: "boxWidget"`)
	assert.Contains(t, rendered, `Interface: "widget"`)
	assert.Contains(t, rendered, "Has Constructor: true")
	assert.Contains(t, rendered, `Module Path: "github.com/vk/ifacereg/registry"`)
}

func TestImplStringWithoutConstructor(t *testing.T) {
	im := builtImpl(t, false)
	assert.Contains(t, im.String(), "Has Constructor: false")
}

func TestImplLogValue(t *testing.T) {
	im := builtImpl(t, true)
	val := im.LogValue()
	require.Equal(t, slog.KindGroup, val.Kind())

	attrs := map[string]slog.Value{}
	for _, attr := range val.Group() {
		attrs[attr.Key] = attr.Value
	}
	assert.Equal(t, "boxWidget", attrs["name"].String())
	assert.Equal(t, "widget", attrs["interface"].String())
	assert.True(t, attrs["has_constructor"].Bool())
}

func TestInstantiateReturnsFreshValues(t *testing.T) {
	calls := 0
	r := NewRegistrar()
	RegisterConstructor[widget, boxWidget](r, func() widget {
		calls++
		return boxWidget{}
	})
	view := NewView[widget](r)
	r.Bootstrap()

	im, ok := view.Iterate().Next()
	require.True(t, ok)

	_, _ = im.Instantiate()
	_, _ = im.Instantiate()
	assert.Equal(t, 2, calls, "each Instantiate call must invoke the constructor")

	// Count never invokes constructors; only iteration does.
	calls = 0
	assert.Equal(t, 1, view.InstantiateAll().Count())
	assert.Equal(t, 0, calls)
}
