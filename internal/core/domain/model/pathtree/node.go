package pathtree

import (
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
)

var (
	// ErrNodeIsNotConstructed is returned when a Node instance was not created
	// through one of the NewX or RestoreNode constructors.
	ErrNodeIsNotConstructed = errors.New("Node must be created via its constructors")

	// ErrNodeIsNotAlias is returned when reading the alias target of a
	// non-alias node.
	ErrNodeIsNotAlias = errors.New("node is not an alias")

	// ErrNodeHasNoAddress is returned when reading the address of a node
	// that does not bind one.
	ErrNodeHasNoAddress = errors.New("node does not bind an address")
)

// Node is one entry of the resolver tree. A node is one of three shapes:
//
//   - a directory, grouping children under its name
//   - an address binding, terminating resolution at a module address
//   - an alias, redirecting resolution to another symbolic path
//
// Names are unique under a parent; the repository enforces that with a
// unique index. The tree structure itself lives in the parent links, so a
// walk only ever follows ids.
type Node struct {
	// id is the unique identifier for the node
	id kernel.UUID

	// parentID links to the parent node. Nil for top-level nodes.
	parentID *kernel.UUID

	// name is the path segment the node occupies under its parent
	name string

	// address terminates resolution when set
	address *kernel.Address

	// aliasTarget redirects resolution when set
	aliasTarget *kernel.Path

	// isConstructed ensures the Node was created via a constructor
	isConstructed bool
}

// NewDirectoryNode creates a grouping node without an address binding.
func NewDirectoryNode(id kernel.UUID, parentID *kernel.UUID, name string) (*Node, error) {
	return newNode(id, parentID, name, nil, nil)
}

// NewAddressNode creates a node resolving to the given module address.
func NewAddressNode(id kernel.UUID, parentID *kernel.UUID, name string, address kernel.Address) (*Node, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}
	return newNode(id, parentID, name, &address, nil)
}

// NewAliasNode creates a node redirecting resolution to the target path.
func NewAliasNode(id kernel.UUID, parentID *kernel.UUID, name string, target kernel.Path) (*Node, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	return newNode(id, parentID, name, nil, &target)
}

// RestoreNode reconstructs a Node from persistence. Used by repositories
// only.
func RestoreNode(
	id kernel.UUID,
	parentID *kernel.UUID,
	name string,
	address *kernel.Address,
	aliasTarget *kernel.Path,
) (*Node, error) {
	if address != nil {
		if err := address.Validate(); err != nil {
			return nil, err
		}
	}
	if aliasTarget != nil {
		if err := aliasTarget.Validate(); err != nil {
			return nil, err
		}
	}
	return newNode(id, parentID, name, address, aliasTarget)
}

func newNode(
	id kernel.UUID,
	parentID *kernel.UUID,
	name string,
	address *kernel.Address,
	aliasTarget *kernel.Path,
) (*Node, error) {
	if address != nil && aliasTarget != nil {
		return nil, errs.NewValueIsInvalidError("node cannot bind an address and an alias at once")
	}

	n := &Node{
		address:       address,
		aliasTarget:   aliasTarget,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setParentID(parentID),
		n.setName(name),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate ensures the Node was properly constructed.
func (n *Node) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNodeIsNotConstructed
	}
	return nil
}

// ID returns the node's unique identifier.
func (n *Node) ID() kernel.UUID {
	return n.id
}

// ParentID returns the parent link. Nil for top-level nodes.
func (n *Node) ParentID() *kernel.UUID {
	if n.parentID == nil {
		return nil
	}
	parent := *n.parentID
	return &parent
}

// Name returns the path segment the node occupies.
func (n *Node) Name() string {
	return n.name
}

// IsAlias reports whether the node redirects to another path.
func (n *Node) IsAlias() bool {
	return n.aliasTarget != nil
}

// HasAddress reports whether the node binds a module address.
func (n *Node) HasAddress() bool {
	return n.address != nil
}

// Address returns the bound module address.
func (n *Node) Address() (kernel.Address, error) {
	if n.address == nil {
		return kernel.Address{}, ErrNodeHasNoAddress
	}
	return *n.address, nil
}

// AliasTarget returns the redirect path of an alias node.
func (n *Node) AliasTarget() (kernel.Path, error) {
	if n.aliasTarget == nil {
		return kernel.Path{}, ErrNodeIsNotAlias
	}
	return *n.aliasTarget, nil
}

// BindAddress sets or replaces the node's module address. Alias nodes
// cannot bind an address.
func (n *Node) BindAddress(address kernel.Address) error {
	if n.aliasTarget != nil {
		return errs.NewValueIsInvalidError("node cannot bind an address and an alias at once")
	}
	if err := address.Validate(); err != nil {
		return err
	}
	n.address = &address
	return nil
}

// setID validates and sets the node's unique identifier.
func (n *Node) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

// setParentID validates and sets the parent link.
func (n *Node) setParentID(parentID *kernel.UUID) error {
	if parentID == nil {
		return nil
	}
	if err := parentID.Validate(); err != nil {
		return err
	}
	parent := *parentID
	n.parentID = &parent
	return nil
}

// setName validates and sets the node's path segment.
func (n *Node) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if err := kernel.ValidatePathSegment(name); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("name", err)
	}
	n.name = name
	return nil
}
