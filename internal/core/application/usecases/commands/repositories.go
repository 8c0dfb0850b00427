// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"aos/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each command declares the narrowest repository set it touches, so tests
// only mock what the handler actually uses.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// NodeRepoFactory provides access to the resolver tree repository within a transaction.
	NodeRepoFactory interface {
		NodeRepository() ports.NodeRepository
	}

	// RegistryRepoFactory provides access to the code catalog repository within a transaction.
	RegistryRepoFactory interface {
		RegistryRepository() ports.RegistryRepository
	}

	// PermissionRepoFactory provides access to the permission repository within a transaction.
	PermissionRepoFactory interface {
		PermissionRepository() ports.PermissionRepository
	}

	// AccountRepoFactory provides access to the balance ledger repository within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// KeyAddressRepoFactory provides access to the key-address table within a transaction.
	KeyAddressRepoFactory interface {
		KeyAddressRepository() ports.KeyAddressRepository
	}

	// OutboxRepoFactory provides access to the transport outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// SequenceFactory provides access to the per-channel sequence allocator within a transaction.
	SequenceFactory interface {
		ChannelSequences() ports.ChannelSequences
	}

	// SendUoW manages the send transaction: resolution, escrow, outbox and
	// the delivery record all commit or abort together.
	SendUoW interface {
		TxManager
		DeliveryRepoFactory
		NodeRepoFactory
		AccountRepoFactory
		KeyAddressRepoFactory
		OutboxRepoFactory
		SequenceFactory
	}

	// SendUoWFactory creates new send unit of work instances.
	SendUoWFactory interface {
		Create() SendUoW
	}

	// FinalizeUoW manages acknowledgement and timeout transactions: the
	// delivery record and the escrow movement commit together.
	FinalizeUoW interface {
		TxManager
		DeliveryRepoFactory
		AccountRepoFactory
	}

	// FinalizeUoWFactory creates new finalization unit of work instances.
	FinalizeUoWFactory interface {
		Create() FinalizeUoW
	}

	// RetryUoW manages re-dispatch of a timed-out delivery: the new record,
	// its escrow and its outbox row commit together.
	RetryUoW interface {
		TxManager
		DeliveryRepoFactory
		AccountRepoFactory
		OutboxRepoFactory
		SequenceFactory
	}

	// RetryUoWFactory creates new retry unit of work instances.
	RetryUoWFactory interface {
		Create() RetryUoW
	}

	// KeyAddressUoW manages transactions touching only the key-address table.
	KeyAddressUoW interface {
		TxManager
		KeyAddressRepoFactory
	}

	// KeyAddressUoWFactory creates new key-address unit of work instances.
	KeyAddressUoWFactory interface {
		Create() KeyAddressUoW
	}

	// NodeUoW manages transactions touching only the resolver tree.
	NodeUoW interface {
		TxManager
		NodeRepoFactory
	}

	// NodeUoWFactory creates new resolver tree unit of work instances.
	NodeUoWFactory interface {
		Create() NodeUoW
	}

	// RegistryUoW manages transactions touching only the code catalog.
	RegistryUoW interface {
		TxManager
		RegistryRepoFactory
	}

	// RegistryUoWFactory creates new catalog unit of work instances.
	RegistryUoWFactory interface {
		Create() RegistryUoW
	}

	// PermissionUoW manages transactions touching only permission records.
	PermissionUoW interface {
		TxManager
		PermissionRepoFactory
	}

	// PermissionUoWFactory creates new permission unit of work instances.
	PermissionUoWFactory interface {
		Create() PermissionUoW
	}

	// FeeUoW manages action-fee transactions: the catalog lookup and both
	// account movements commit together.
	FeeUoW interface {
		TxManager
		RegistryRepoFactory
		AccountRepoFactory
	}

	// FeeUoWFactory creates new fee unit of work instances.
	FeeUoWFactory interface {
		Create() FeeUoW
	}
)
