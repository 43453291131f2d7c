package auth

import "context"

// Service is the account directory. FindByID reports absence through ok
// rather than an error.
type Service interface {
	Register(ctx context.Context, candidate Account) (Account, error)
	Login(ctx context.Context, username, password string) (Account, error)
	FindByID(ctx context.Context, id ID) (acc Account, ok bool, err error)
	FindAll(ctx context.Context) ([]Account, error)
	DeleteByID(ctx context.Context, id ID) error
}

// Repository persists accounts. FindByID and FindByName return ErrNotFound
// when nothing matches; Store assigns the ID and returns
// ErrExistingUsername when the username is taken.
type Repository interface {
	FindByID(ctx context.Context, id ID) (*Account, error)
	FindByName(ctx context.Context, username string) (*Account, error)
	FindAll(ctx context.Context) ([]Account, error)
	Store(ctx context.Context, acc *Account) error
	Delete(ctx context.Context, id ID) (bool, error)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
