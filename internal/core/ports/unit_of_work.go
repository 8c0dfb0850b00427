package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// DeliveryRepository returns a DeliveryRepository bound to the current transaction.
	DeliveryRepository() DeliveryRepository

	// NodeRepository returns a NodeRepository bound to the current transaction.
	NodeRepository() NodeRepository

	// RegistryRepository returns a RegistryRepository bound to the current transaction.
	RegistryRepository() RegistryRepository

	// PermissionRepository returns a PermissionRepository bound to the current transaction.
	PermissionRepository() PermissionRepository

	// AccountRepository returns an AccountRepository bound to the current transaction.
	AccountRepository() AccountRepository

	// KeyAddressRepository returns a KeyAddressRepository bound to the current transaction.
	KeyAddressRepository() KeyAddressRepository

	// OutboxRepository returns an OutboxRepository bound to the current transaction.
	OutboxRepository() OutboxRepository

	// ChannelSequences returns the sequence allocator bound to the current transaction.
	ChannelSequences() ChannelSequences
}
