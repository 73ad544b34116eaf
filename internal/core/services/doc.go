// Package services implements the driving port interfaces.
// The Reconciler here is the diff-and-apply engine: it classifies local
// nodes against their sidecar identities, applies the minimal set of
// remote operations in dependency order, and collects per-node failures
// into the run report.
//
// Services contain the core business logic and orchestrate calls to
// driven ports (adapters).
package services
