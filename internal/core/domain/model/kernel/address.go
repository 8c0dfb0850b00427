package kernel

import (
	"errors"
	"fmt"
	"strings"

	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly initialized Address.
// Addresses must be created using NewAddress or AddressFromString to ensure validity.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress or AddressFromString constructors")

// Address identifies a deployed module on a specific chain. It is an
// immutable value object carrying an explicit chain qualifier: an empty
// qualifier means the module lives on the local chain, any other value names
// a remote chain.
//
// The canonical string form is "chain:identifier" for remote addresses and
// the bare identifier for local ones.
//
// Example:
//
//	local, err := kernel.NewAddress("", "module1abc")
//	remote, err := kernel.NewAddress("chain-b", "module1abc")
//	fmt.Println(remote) // Output: chain-b:module1abc
type Address struct { //nolint:recvcheck //using for validation
	chain string
	id    string
	guard guard.ConstructorGuard
}

// NewAddress creates an Address from a chain qualifier and a module
// identifier. An empty chain qualifier denotes the local chain. The
// identifier must be non-empty and must not contain separators or
// whitespace.
func NewAddress(chain string, id string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(addr.setChain(chain), addr.setID(id)); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// AddressFromString parses the canonical string form of an address:
// "identifier" for local modules or "chain:identifier" for remote ones.
func AddressFromString(s string) (Address, error) {
	if s == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}

	chain, id, found := strings.Cut(s, ":")
	if !found {
		return NewAddress("", s)
	}
	return NewAddress(chain, id)
}

// Validate checks if the Address was properly constructed using a constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Chain returns the chain qualifier. Empty for local addresses.
func (a Address) Chain() string {
	return a.chain
}

// ID returns the module identifier without its chain qualifier.
func (a Address) ID() string {
	return a.id
}

// IsLocal reports whether the address lives on the given host chain. An
// address with an empty qualifier is local to every host.
func (a Address) IsLocal(hostChain string) bool {
	return a.chain == "" || a.chain == hostChain
}

// IsEqual compares two addresses by chain qualifier and identifier.
func (a Address) IsEqual(other Address) bool {
	return a.chain == other.chain && a.id == other.id
}

// String returns the canonical string form of the address.
func (a Address) String() string {
	if a.chain == "" {
		return a.id
	}
	return fmt.Sprintf("%s:%s", a.chain, a.id)
}

func (a *Address) setChain(chain string) error {
	if strings.ContainsAny(chain, ":/ \t\n") {
		return errs.NewValueIsInvalidErrorWithCause("chain",
			fmt.Errorf("%q contains a separator or whitespace", chain))
	}
	a.chain = chain
	return nil
}

func (a *Address) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("address identifier")
	}
	if strings.ContainsAny(id, ":/ \t\n") {
		return errs.NewValueIsInvalidErrorWithCause("address identifier",
			fmt.Errorf("%q contains a separator or whitespace", id))
	}
	a.id = id
	return nil
}
