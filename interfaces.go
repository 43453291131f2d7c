package microboard

import (
	"context"

	"github.com/jimiolaniyan/microboard/auth"
)

// Service is the message board. FindByID reports absence through ok rather
// than an error. UpdateText and DeleteByID only return an error when the
// store fails.
type Service interface {
	Create(ctx context.Context, candidate Message) (Message, error)
	FindByID(ctx context.Context, id MessageID) (m Message, ok bool, err error)
	FindAll(ctx context.Context) ([]Message, error)
	UpdateText(ctx context.Context, id MessageID, text string) (Outcome, error)
	DeleteByID(ctx context.Context, id MessageID) (Outcome, error)
	FindAllMessagesByUser(ctx context.Context, accountID auth.ID) ([]Message, error)
}

// Accounts is the part of the account directory the board depends on.
type Accounts interface {
	FindByID(ctx context.Context, id auth.ID) (acc auth.Account, ok bool, err error)
}

type updateTextRequest struct {
	Text string `json:"messageText"`
}
