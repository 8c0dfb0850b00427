package economics

import (
	"errors"
	"math"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
)

// ErrAccountIsNotConstructed is returned when an Account instance was not
// created through the NewAccount or RestoreAccount constructors.
var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount")

// Account is one actor's balance ledger. Balances only move through
// checked Credit and Debit calls, so the sum over all accounts plus
// outstanding escrow is conserved.
//
// Account follows these invariants:
//   - Balances never go negative: a debit exceeding the balance fails
//     and changes nothing
//   - A credit that would overflow fails and changes nothing
type Account struct {
	// id is the unique identifier for the account row
	id kernel.UUID

	// owner is the actor the balances belong to
	owner string

	// balances maps denom to held amount
	balances map[string]uint64

	// isConstructed ensures the Account was created via a constructor
	isConstructed bool
}

// NewAccount creates an empty ledger for the owner.
func NewAccount(id kernel.UUID, owner string) (*Account, error) {
	a := &Account{
		balances:      make(map[string]uint64),
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOwner(owner),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAccount reconstructs an Account from persistence. Used by
// repositories only.
func RestoreAccount(id kernel.UUID, owner string, balances map[string]uint64) (*Account, error) {
	a, err := NewAccount(id, owner)
	if err != nil {
		return nil, err
	}

	for denom, amount := range balances {
		if denom == "" {
			return nil, errs.NewValueIsRequiredError("denom")
		}
		if amount > 0 {
			a.balances[denom] = amount
		}
	}

	return a, nil
}

// Validate ensures the Account was properly constructed.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// ID returns the account row's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Owner returns the actor the balances belong to.
func (a *Account) Owner() string {
	return a.owner
}

// BalanceOf returns the held amount for the denom. Zero for denoms the
// account never held.
func (a *Account) BalanceOf(denom string) uint64 {
	return a.balances[denom]
}

// Balances returns a copy of all non-zero balances.
func (a *Account) Balances() map[string]uint64 {
	out := make(map[string]uint64, len(a.balances))
	for denom, amount := range a.balances {
		out[denom] = amount
	}
	return out
}

// Credit adds the coin to the account.
func (a *Account) Credit(coin kernel.Coin) error {
	if err := coin.Validate(); err != nil {
		return err
	}

	current := a.balances[coin.Denom()]
	next := current + coin.Amount()
	if next < current {
		return errs.NewValueIsOutOfRangeError("balance", next, 0, uint64(math.MaxUint64))
	}

	a.balances[coin.Denom()] = next
	return nil
}

// CreditAll adds every coin of the set to the account. Fails atomically:
// when any single credit would overflow, no balance changes.
func (a *Account) CreditAll(coins kernel.Coins) error {
	if err := coins.Validate(); err != nil {
		return err
	}

	for _, denom := range coins.Denoms() {
		current := a.balances[denom]
		if current+coins.AmountOf(denom) < current {
			return errs.NewValueIsOutOfRangeError("balance", coins.AmountOf(denom), 0, uint64(math.MaxUint64))
		}
	}

	for _, denom := range coins.Denoms() {
		a.balances[denom] += coins.AmountOf(denom)
	}
	return nil
}

// Debit removes the coin from the account. Fails with
// InsufficientFundsError when the balance does not cover it.
func (a *Account) Debit(coin kernel.Coin) error {
	if err := coin.Validate(); err != nil {
		return err
	}

	current := a.balances[coin.Denom()]
	if current < coin.Amount() {
		return errs.NewInsufficientFundsError(a.owner, coin.Denom())
	}

	if current == coin.Amount() {
		delete(a.balances, coin.Denom())
	} else {
		a.balances[coin.Denom()] = current - coin.Amount()
	}
	return nil
}

// DebitAll removes every coin of the set from the account. Fails
// atomically: when any single balance is short, no balance changes.
func (a *Account) DebitAll(coins kernel.Coins) error {
	if err := coins.Validate(); err != nil {
		return err
	}

	for _, denom := range coins.Denoms() {
		if a.balances[denom] < coins.AmountOf(denom) {
			return errs.NewInsufficientFundsError(a.owner, denom)
		}
	}

	for _, denom := range coins.Denoms() {
		remaining := a.balances[denom] - coins.AmountOf(denom)
		if remaining == 0 {
			delete(a.balances, denom)
		} else {
			a.balances[denom] = remaining
		}
	}
	return nil
}

// setID validates and sets the account row's unique identifier.
func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

// setOwner validates and sets the owner.
func (a *Account) setOwner(owner string) error {
	if owner == "" {
		return errs.NewValueIsRequiredError("owner")
	}
	a.owner = owner
	return nil
}
