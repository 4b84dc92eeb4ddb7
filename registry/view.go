package registry

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// View is the read-only, per-interface collection of registered
// implementations. It is declared before bootstrap with NewView, built exactly
// once during Bootstrap, and immutable afterwards, which makes it safe for
// unsynchronized concurrent reads. Reading an unbuilt view panics.
type View[I any] struct {
	iface string
	built atomic.Bool
	impls []Impl[I]
}

// NewView declares a view over every registration tagged with interface I.
// Declared before Bootstrap, the view is built during Bootstrap; declared
// after, it is built immediately from the sealed store. Two views declared for
// the same interface each independently re-filter the store and hold duplicate
// records, not shared ones.
func NewView[I any](r *Registrar) *View[I] {
	ifaceType := reflect.TypeOf((*I)(nil)).Elem()
	if ifaceType.Kind() != reflect.Interface {
		panic(fmt.Sprintf("registry: view target %s is not an interface type", ifaceType))
	}
	v := &View[I]{iface: ifaceType.Name()}
	r.enqueue(v.build)
	return v
}

// build filters the sealed snapshot by interface tag and reifies each match.
// Runs exactly once, before the view is handed to any reader.
func (v *View[I]) build(snapshot []record) {
	for _, rec := range snapshot {
		if rec.iface != v.iface {
			continue
		}
		v.impls = append(v.impls, reify[I](rec))
	}
	v.built.Store(true)
}

func (v *View[I]) checkBuilt() {
	if !v.built.Load() {
		panic(fmt.Sprintf("registry: view for %q read before Bootstrap completed", v.iface))
	}
}

// InterfaceName returns the interface tag this view filters on.
func (v *View[I]) InterfaceName() string { return v.iface }

// Len returns the number of registered implementations in the view.
func (v *View[I]) Len() int {
	v.checkBuilt()
	return len(v.impls)
}

// Iterate returns a fresh iterator over the view's records in registration
// order. Iteration is deterministic; every call starts over from the first
// record.
func (v *View[I]) Iterate() *Iter[I] {
	v.checkBuilt()
	return &Iter[I]{impls: v.impls}
}

// InstantiateAll returns a lazy iterator over freshly constructed instances,
// one per record that was registered with a constructor, in registration
// order. Records without a constructor are skipped. Constructors run as the
// iterator advances, not up front.
func (v *View[I]) InstantiateAll() *InstanceIter[I] {
	v.checkBuilt()
	return &InstanceIter[I]{impls: v.impls}
}

// Iter walks a built view's records.
type Iter[I any] struct {
	impls []Impl[I]
	next  int
}

// Next returns the following record. The second return value is false once
// the iterator is exhausted.
func (it *Iter[I]) Next() (Impl[I], bool) {
	if it.next >= len(it.impls) {
		var zero Impl[I]
		return zero, false
	}
	im := it.impls[it.next]
	it.next++
	return im, true
}

// Count consumes the iterator and returns the number of remaining records.
func (it *Iter[I]) Count() int {
	n := len(it.impls) - it.next
	it.next = len(it.impls)
	return n
}

// InstanceIter walks a built view, instantiating each record that has a
// constructor.
type InstanceIter[I any] struct {
	impls []Impl[I]
	next  int
}

// Next constructs and returns the following instance. The second return value
// is false once the iterator is exhausted.
func (it *InstanceIter[I]) Next() (I, bool) {
	for it.next < len(it.impls) {
		im := it.impls[it.next]
		it.next++
		if instance, ok := im.Instantiate(); ok {
			return instance, true
		}
	}
	var zero I
	return zero, false
}

// Count consumes the iterator and returns the number of remaining
// constructible records. No constructors are invoked.
func (it *InstanceIter[I]) Count() int {
	n := 0
	for it.next < len(it.impls) {
		if it.impls[it.next].HasConstructor() {
			n++
		}
		it.next++
	}
	return n
}
