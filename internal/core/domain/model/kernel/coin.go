package kernel

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

// ErrCoinIsNotConstructed is returned when attempting to use an improperly initialized Coin.
var ErrCoinIsNotConstructed = errs.NewValueIsRequiredError(
	"coin must be created via NewCoin constructor")

// Coin is an amount of a single denomination. It is an immutable value
// object with checked arithmetic: additions that would overflow and
// subtractions that would go negative fail instead of wrapping, because
// escrow accounting must never silently lose or mint funds.
type Coin struct { //nolint:recvcheck //using for validation
	denom  string
	amount uint64
	guard  guard.ConstructorGuard
}

// NewCoin creates a Coin of the given denomination and amount. The
// denomination must be non-empty and free of whitespace; a zero amount is
// valid (used for fee-less dispatches).
func NewCoin(denom string, amount uint64) (Coin, error) {
	c := Coin{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}

	if err := c.setDenom(denom); err != nil {
		return Coin{}, err
	}

	return c, nil
}

// Validate checks if the Coin was properly constructed using a constructor.
func (c Coin) Validate() error {
	return c.guard.Validate(ErrCoinIsNotConstructed)
}

// Denom returns the coin's denomination.
func (c Coin) Denom() string {
	return c.denom
}

// Amount returns the coin's amount.
func (c Coin) Amount() uint64 {
	return c.amount
}

// Add returns a coin holding the sum of both amounts. The denominations
// must match and the sum must not overflow.
func (c Coin) Add(other Coin) (Coin, error) {
	if c.denom != other.denom {
		return Coin{}, errs.NewValueIsInvalidErrorWithCause("coin denom",
			fmt.Errorf("cannot add %s to %s", other.denom, c.denom))
	}
	if c.amount > math.MaxUint64-other.amount {
		return Coin{}, errs.NewValueIsOutOfRangeError("coin amount", other.amount, 0, math.MaxUint64-c.amount)
	}
	return NewCoin(c.denom, c.amount+other.amount)
}

// Sub returns a coin holding the difference of both amounts. The
// denominations must match and the result must not go negative.
func (c Coin) Sub(other Coin) (Coin, error) {
	if c.denom != other.denom {
		return Coin{}, errs.NewValueIsInvalidErrorWithCause("coin denom",
			fmt.Errorf("cannot subtract %s from %s", other.denom, c.denom))
	}
	if other.amount > c.amount {
		return Coin{}, errs.NewInsufficientFundsErrorWithCause("", c.denom,
			fmt.Errorf("%d is less than %d", c.amount, other.amount))
	}
	return NewCoin(c.denom, c.amount-other.amount)
}

// IsZero reports whether the coin's amount is zero.
func (c Coin) IsZero() bool {
	return c.amount == 0
}

// String returns the coin in "amount denom" form, e.g. "100uandr".
func (c Coin) String() string {
	return fmt.Sprintf("%d%s", c.amount, c.denom)
}

func (c *Coin) setDenom(denom string) error {
	if denom == "" {
		return errs.NewValueIsRequiredError("coin denom")
	}
	if strings.ContainsAny(denom, " \t\n") {
		return errs.NewValueIsInvalidErrorWithCause("coin denom",
			fmt.Errorf("%q contains whitespace", denom))
	}
	c.denom = denom
	return nil
}

// Coins is a set of coins normalized by denomination: at most one coin per
// denom, sorted by denom, no zero amounts. An empty set means no attached
// funds.
type Coins []Coin

// NewCoins builds a normalized coin set from the given coins, merging
// duplicate denominations with checked addition and dropping zero amounts.
func NewCoins(coins ...Coin) (Coins, error) {
	byDenom := make(map[string]Coin, len(coins))
	for _, c := range coins {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if existing, ok := byDenom[c.denom]; ok {
			merged, err := existing.Add(c)
			if err != nil {
				return nil, err
			}
			byDenom[c.denom] = merged
			continue
		}
		byDenom[c.denom] = c
	}

	out := make(Coins, 0, len(byDenom))
	for _, c := range byDenom {
		if c.IsZero() {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].denom < out[j].denom })
	return out, nil
}

// Validate checks every coin in the set.
func (cs Coins) Validate() error {
	var errsJoined error
	for _, c := range cs {
		errsJoined = errors.Join(errsJoined, c.Validate())
	}
	return errsJoined
}

// IsZero reports whether the set carries no funds.
func (cs Coins) IsZero() bool {
	return len(cs) == 0
}

// AmountOf returns the amount held for the given denomination, zero if
// absent.
func (cs Coins) AmountOf(denom string) uint64 {
	for _, c := range cs {
		if c.denom == denom {
			return c.amount
		}
	}
	return 0
}

// Denoms returns the denominations of the set in sorted order.
func (cs Coins) Denoms() []string {
	denoms := make([]string, len(cs))
	for i, c := range cs {
		denoms[i] = c.denom
	}
	return denoms
}

// Sub returns the set with the given coin deducted. Fails with
// InsufficientFunds if the set does not cover the amount.
func (cs Coins) Sub(other Coin) (Coins, error) {
	if err := other.Validate(); err != nil {
		return nil, err
	}

	held := cs.AmountOf(other.denom)
	if held < other.amount {
		return nil, errs.NewInsufficientFundsErrorWithCause("", other.denom,
			fmt.Errorf("%d is less than %d", held, other.amount))
	}

	out := make([]Coin, 0, len(cs))
	for _, c := range cs {
		if c.denom != other.denom {
			out = append(out, c)
			continue
		}
		reduced, err := c.Sub(other)
		if err != nil {
			return nil, err
		}
		if !reduced.IsZero() {
			out = append(out, reduced)
		}
	}
	return out, nil
}

// String returns the set in comma-joined "amountdenom" form.
func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
