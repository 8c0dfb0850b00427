// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the messaging kernel. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - Resolver: A domain service that walks the node arena to turn symbolic
//     paths into concrete addresses, following aliases and detecting cycles
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
