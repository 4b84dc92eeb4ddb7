package registry

import (
	"fmt"
	"log/slog"
)

// record is the erased form of a single (type, interface) registration. Its
// shape is identical for every interface: the constructor is held as an opaque
// `any` carrying a `func() I`, and everything else is plain strings and a
// boolean. A record is created once during phase one and never mutated.
type record struct {
	construct  any
	hasCtor    bool
	name       string
	path       string
	file       string
	modulePath string
	iface      string
}

// Impl is one registered implementation, reified to interface I. Values are
// immutable and safe to copy.
type Impl[I any] struct {
	construct  func() I
	hasCtor    bool
	name       string
	path       string
	file       string
	modulePath string
	iface      string
}

// reify restores an erased record under interface I. The caller must have
// matched the interface tag first; the assertion below is the checked
// counterpart of that filter, so a record is never read back under the wrong
// constructor type. A failed assertion after a tag match means two distinct
// interfaces share a name, which the store cannot tell apart.
func reify[I any](rec record) Impl[I] {
	impl := Impl[I]{
		hasCtor:    rec.hasCtor,
		name:       rec.name,
		path:       rec.path,
		file:       rec.file,
		modulePath: rec.modulePath,
		iface:      rec.iface,
	}
	if rec.hasCtor {
		ctor, ok := rec.construct.(func() I)
		if !ok {
			panic(fmt.Sprintf(
				"registry: record for type %q is tagged %q but its constructor does not produce that interface (two interfaces sharing one name?)",
				rec.path, rec.iface,
			))
		}
		impl.construct = ctor
	}
	return impl
}

// Instantiate invokes the registered constructor, if any. The second return
// value reports whether a value was produced; implementations registered
// without a constructor yield the zero value and false.
func (im Impl[I]) Instantiate() (I, bool) {
	if !im.hasCtor {
		var zero I
		return zero, false
	}
	return im.construct(), true
}

// HasConstructor reports whether a constructor was supplied at registration.
// This is a cached boolean; the constructor is never invoked to answer it.
func (im Impl[I]) HasConstructor() bool { return im.hasCtor }

// Name returns the implementing type's name, e.g. "HTTPProbe".
func (im Impl[I]) Name() string { return im.name }

// Path returns the implementing type's package-qualified path. It differs from
// Name only when the registration site lives outside the type's own package.
func (im Impl[I]) Path() string { return im.path }

// File returns the source file containing the registration.
func (im Impl[I]) File() string { return im.file }

// ModulePath returns the import path of the package that performed the
// registration.
func (im Impl[I]) ModulePath() string { return im.modulePath }

// InterfaceName returns the interface tag the record was registered under.
func (im Impl[I]) InterfaceName() string { return im.iface }

// String renders the record for debugging.
func (im Impl[I]) String() string {
	return fmt.Sprintf(
		"Impl{Type Name: %q, Type Path: %q, Interface: %q, Has Constructor: %t, Module Path: %q, File: %q}",
		im.name, im.path, im.iface, im.hasCtor, im.modulePath, im.file,
	)
}

// LogValue renders the record as a structured slog group.
func (im Impl[I]) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", im.name),
		slog.String("path", im.path),
		slog.String("interface", im.iface),
		slog.Bool("has_constructor", im.hasCtor),
		slog.String("module_path", im.modulePath),
		slog.String("file", im.file),
	)
}
