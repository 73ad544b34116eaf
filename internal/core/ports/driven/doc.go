// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TreeStore: Loads and writes the local content tree
//   - IdentityStore: Sidecar persistence of remote linkage
//   - RemoteStore: Help-center hierarchy operations
//
// # Optional Interfaces
//
//   - TranslationUploader: Translation-service source registration.
//     Can be nil; translate-related steps are then skipped.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
