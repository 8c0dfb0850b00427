// Package kernel provides core domain primitives shared by the messaging
// kernel's aggregates. It implements fundamental building blocks following
// Domain-Driven Design principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Address: A chain-qualified module address (local or remote)
//   - Path: A slash-delimited symbolic name resolved through the namespace tree
//   - Coin / Coins: Denominated funds with checked arithmetic for escrow accounting
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
