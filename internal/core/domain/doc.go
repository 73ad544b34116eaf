// Package domain defines the core business entities for helpsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - Node: A category, section or article in the content tree
//   - Variant: One locale's content for a node
//   - Identity: The persisted link between a local node and its remote copy
//   - RunReport: The per-node outcome summary of a reconciliation run
//   - Settings: Read-only run configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library (plus golang.org/x/text for slug folding).
// All other packages depend on domain, never the reverse.
package domain
