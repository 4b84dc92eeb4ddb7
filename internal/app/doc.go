// Package app encapsulates the demo binary's lifecycle: building an isolated
// logger and registrar, running every module's registration hook, declaring
// the typed views, bootstrapping, optionally validating the result against a
// manifest directory, and finally executing the registered probes.
package app
