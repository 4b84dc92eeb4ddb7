// Package registry collects interface implementations declared across
// independently written packages and exposes them as typed, iterable views.
//
// Every implementation package registers itself against a shared Registrar
// during phase one of startup, typically from a Module.Register hook wired in
// at the entry point. Once all registrations have run, a single Bootstrap call
// seals the underlying store and materializes one View per declared interface
// (phase two). Application code only ever observes fully built views; reading
// a view earlier, or registering later, is a programmer error and panics.
//
// Records for unrelated interfaces share one untyped store. A record's
// constructor is erased to an opaque value at registration time and restored
// with a runtime-checked assertion during view construction, after the record's
// interface tag has been matched. Interface tags are bare interface names; two
// distinct interfaces sharing a name are indistinguishable to the filter. That
// is a known limitation, as is the absence of any deduplication of repeated
// (type, interface) registrations.
package registry
