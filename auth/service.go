package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jimiolaniyan/microboard/internal/logging"
)

type service struct {
	accounts Repository
	scheme   CredentialScheme
}

func NewService(accounts Repository, scheme CredentialScheme) Service {
	if scheme == nil {
		scheme = PlainText{}
	}
	return &service{accounts: accounts, scheme: scheme}
}

func (svc *service) Register(ctx context.Context, candidate Account) (Account, error) {
	acc, err := NewAccount(candidate.Username, candidate.Password)
	if err != nil {
		return Account{}, err
	}

	if err := svc.verifyNotInUse(ctx, acc.Username); err != nil {
		return Account{}, err
	}

	sealed, err := svc.scheme.Seal(acc.Password)
	if err != nil {
		return Account{}, err
	}
	acc.Password = sealed

	if err = svc.accounts.Store(ctx, acc); err != nil {
		if errors.Is(err, ErrExistingUsername) {
			return Account{}, err
		}
		return Account{}, fmt.Errorf("error saving account: %w", err)
	}

	logging.Infof("registered account %d (%s)", acc.ID, acc.Username)
	return *acc, nil
}

func (svc *service) Login(ctx context.Context, username, password string) (Account, error) {
	acc, err := svc.accounts.FindByName(ctx, username)
	if errors.Is(err, ErrNotFound) {
		logging.Debugf("login failed: no account %q", username)
		return Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return Account{}, fmt.Errorf("error finding account: %w", err)
	}

	if !svc.scheme.Verify(password, acc.Password) {
		logging.Debugf("login failed: bad password for account %d", acc.ID)
		return Account{}, ErrInvalidCredentials
	}

	return *acc, nil
}

func (svc *service) FindByID(ctx context.Context, id ID) (Account, bool, error) {
	acc, err := svc.accounts.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Account{}, false, nil
	}
	if err != nil {
		return Account{}, false, fmt.Errorf("error finding account: %w", err)
	}
	return *acc, true, nil
}

func (svc *service) FindAll(ctx context.Context) ([]Account, error) {
	return svc.accounts.FindAll(ctx)
}

// DeleteByID removes the account if present. Messages posted by it are
// left in place.
func (svc *service) DeleteByID(ctx context.Context, id ID) error {
	existed, err := svc.accounts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}
	logging.Debugf("delete account %d: existed=%t", id, existed)
	return nil
}

func (svc *service) verifyNotInUse(ctx context.Context, username string) error {
	acc, err := svc.accounts.FindByName(ctx, username)
	if acc != nil && err == nil {
		return ErrExistingUsername
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("error finding account: %w", err)
	}
	return nil
}
