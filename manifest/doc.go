// Package manifest loads declarative HCL manifests describing which
// implementations are expected to be registered for which interfaces, and
// validates a bootstrapped registry against them.
//
// A manifest is the public, reviewable face of the registration contract: the
// Go code self-registers at startup, and the manifest states what that
// population is supposed to look like. Validation is a strict two-way parity
// check, so drift in either direction fails fast at startup instead of
// surfacing as a mysteriously incomplete registry later.
//
//	interface "Probe" {
//	  description = "named health checks"
//
//	  implementation "HTTPProbe" {
//	    path        = "github.com/vk/ifacereg/modules/httpprobe.HTTPProbe"
//	    constructor = true
//	  }
//	}
package manifest
