package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
)

// Module is the hook implementation packages expose so the entry point can
// run their registrations without a hand-maintained central list of types.
type Module interface {
	Register(r *Registrar)
}

// Registrar owns the untyped record store and drives the two-phase startup
// protocol. Construct exactly one per program (or per test) at the entry
// point and pass it to every registration site; do not reach for hidden
// globals. Phase one is the set of Register calls, phase two is Bootstrap,
// which seals the store and builds every declared view. Only then may
// application code read anything.
type Registrar struct {
	store store

	mu       sync.Mutex
	pending  []func(snapshot []record)
	snapshot []record

	done atomic.Bool
}

// NewRegistrar returns an empty Registrar, ready for phase-one registrations.
func NewRegistrar() *Registrar {
	return &Registrar{}
}

// Register records that named type T implements interface I, without a
// constructor. Instantiate on the resulting record always reports empty.
func Register[I, T any](r *Registrar) {
	registerImpl[I, T](r, nil)
}

// RegisterConstructor records that named type T implements interface I,
// along with a zero-argument constructor producing an owned I. The registry
// does not discover constructors; the call site binds one explicitly,
// typically forwarding to the type's New function.
func RegisterConstructor[I, T any](r *Registrar, ctor func() I) {
	if ctor == nil {
		panic("registry: RegisterConstructor requires a non-nil constructor; use Register for constructor-less records")
	}
	registerImpl[I, T](r, ctor)
}

func registerImpl[I, T any](r *Registrar, ctor func() I) {
	ifaceType := reflect.TypeOf((*I)(nil)).Elem()
	if ifaceType.Kind() != reflect.Interface {
		panic(fmt.Sprintf("registry: registration target %s is not an interface type", ifaceType))
	}
	implType := reflect.TypeOf((*T)(nil)).Elem()
	if implType.Kind() == reflect.Interface {
		panic(fmt.Sprintf("registry: implementing type %s must be concrete, not an interface", implType))
	}
	if implType.Name() == "" {
		panic(fmt.Sprintf("registry: implementing type %s has no identifiable name; register a named type, not %s", implType, implType.Kind()))
	}
	if !implType.Implements(ifaceType) && !reflect.PointerTo(implType).Implements(ifaceType) {
		panic(fmt.Sprintf("registry: %s does not implement %s", implType, ifaceType))
	}

	file, modulePath := callSite(3)

	path := implType.Name()
	if implType.PkgPath() != "" && implType.PkgPath() != modulePath {
		path = implType.PkgPath() + "." + implType.Name()
	}

	rec := record{
		hasCtor:    ctor != nil,
		name:       implType.Name(),
		path:       path,
		file:       file,
		modulePath: modulePath,
		iface:      ifaceType.Name(),
	}
	if ctor != nil {
		rec.construct = any(ctor)
	}

	r.store.append(rec)
	slog.Debug("Registered implementation.",
		"type", rec.path, "interface", rec.iface, "has_constructor", rec.hasCtor)
}

// callSite resolves the source file and package import path of the
// registration site, skip frames above this function.
func callSite(skip int) (file, pkg string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return file, "unknown"
	}
	return file, packageOf(fn.Name())
}

// packageOf extracts the package import path from a runtime function name
// such as "github.com/vk/ifacereg/modules/envcheck.(*Module).Register".
func packageOf(funcName string) string {
	slash := strings.LastIndex(funcName, "/")
	dot := strings.Index(funcName[slash+1:], ".")
	if dot < 0 {
		return funcName
	}
	return funcName[:slash+1+dot]
}

// enqueue schedules a view build for phase two, or runs it immediately when
// bootstrap has already completed.
func (r *Registrar) enqueue(build func(snapshot []record)) {
	r.mu.Lock()
	if !r.done.Load() {
		r.pending = append(r.pending, build)
		r.mu.Unlock()
		return
	}
	snapshot := r.snapshot
	r.mu.Unlock()
	build(snapshot)
}

// Bootstrap ends phase one and runs phase two: the store is sealed, then every
// view declared so far is built from the sealed snapshot, in declaration
// order. Calling Bootstrap twice is fatal, as is any registration afterwards.
// Implementations linked into the process after Bootstrap are never
// discovered; that is a documented limitation, not a silent one.
func (r *Registrar) Bootstrap() {
	r.mu.Lock()
	if r.done.Load() {
		r.mu.Unlock()
		panic("registry: Bootstrap called twice on the same Registrar")
	}
	snapshot := r.store.seal()
	r.snapshot = snapshot
	pending := r.pending
	r.pending = nil
	// The flag flips under the same lock that publishes the snapshot, so a
	// concurrently declared view never sees done without a snapshot.
	r.done.Store(true)
	r.mu.Unlock()

	for _, build := range pending {
		build(snapshot)
	}
	slog.Debug("Registry bootstrap complete.", "records", len(snapshot), "views", len(pending))
}

// Bootstrapped reports whether Bootstrap has run.
func (r *Registrar) Bootstrapped() bool {
	return r.done.Load()
}

// Entry is the erased, read-only description of one registration, for
// inspection and manifest validation. It carries no constructor; instantiation
// goes through a typed View.
type Entry struct {
	Name           string
	Path           string
	File           string
	ModulePath     string
	Interface      string
	HasConstructor bool
}

// Entries returns every registration in append order. It is only legal after
// Bootstrap; earlier the store is still growing and any answer would be a lie.
func (r *Registrar) Entries() []Entry {
	if !r.done.Load() {
		panic("registry: Entries read before Bootstrap completed")
	}
	r.mu.Lock()
	snapshot := r.snapshot
	r.mu.Unlock()

	entries := make([]Entry, len(snapshot))
	for i, rec := range snapshot {
		entries[i] = Entry{
			Name:           rec.name,
			Path:           rec.path,
			File:           rec.file,
			ModulePath:     rec.modulePath,
			Interface:      rec.iface,
			HasConstructor: rec.hasCtor,
		}
	}
	return entries
}
