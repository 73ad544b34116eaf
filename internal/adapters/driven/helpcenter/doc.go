// Package helpcenter is the HTTP adapter for the remote help-center
// hierarchy. It speaks the service's JSON API with basic auth, throttles
// proactively and attaches an idempotency key to every create so a
// crash between a create and its sidecar write risks at most one
// remote duplicate.
//
// Transport and authorization failures are returned wrapped in
// domain.ErrRemoteOperation; the reconciler treats both identically.
package helpcenter
