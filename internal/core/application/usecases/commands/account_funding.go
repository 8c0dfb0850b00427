package commands

import (
	"context"
	"errors"

	"aos/internal/core/domain/model/economics"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/ports"
	"aos/internal/pkg/errs"
)

// creditOwner credits the coin to the owner's ledger, creating the
// account on first contact.
func creditOwner(ctx context.Context, accountRepo ports.AccountRepository, owner string, coin kernel.Coin) error {
	coins, err := kernel.NewCoins(coin)
	if err != nil {
		return err
	}
	return creditOwnerAll(ctx, accountRepo, owner, coins)
}

// debitOwnerAll removes every coin of the set from the owner's ledger.
// An owner without an account fails with InsufficientFundsError like an
// empty one.
func debitOwnerAll(ctx context.Context, accountRepo ports.AccountRepository, owner string, coins kernel.Coins) error {
	if coins.IsZero() {
		return nil
	}

	account, err := accountRepo.GetByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewInsufficientFundsErrorWithCause(owner, coins.String(), err)
		}
		return err
	}

	if err := account.DebitAll(coins); err != nil {
		return err
	}
	return accountRepo.Update(ctx, account)
}

// creditOwnerAll credits every coin of the set to the owner's ledger,
// creating the account on first contact. Refund paths rely on this never
// failing for an existing, well-formed balance.
func creditOwnerAll(ctx context.Context, accountRepo ports.AccountRepository, owner string, coins kernel.Coins) error {
	if coins.IsZero() {
		return nil
	}

	account, err := accountRepo.GetByOwner(ctx, owner)
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}

		account, err = economics.NewAccount(kernel.NewUUID(), owner)
		if err != nil {
			return err
		}
		if err := account.CreditAll(coins); err != nil {
			return err
		}
		return accountRepo.Add(ctx, account)
	}

	if err := account.CreditAll(coins); err != nil {
		return err
	}
	return accountRepo.Update(ctx, account)
}
