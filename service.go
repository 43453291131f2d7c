package microboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/jimiolaniyan/microboard/auth"
	"github.com/jimiolaniyan/microboard/internal/logging"
)

type service struct {
	messages Repository
	accounts Accounts
}

func NewService(messages Repository, accounts Accounts) Service {
	return &service{messages: messages, accounts: accounts}
}

func (svc *service) Create(ctx context.Context, candidate Message) (Message, error) {
	m, err := NewMessage(candidate.PostedBy, candidate.Text, candidate.TimePosted)
	if err != nil {
		return Message{}, err
	}

	_, ok, err := svc.accounts.FindByID(ctx, m.PostedBy)
	if err != nil {
		return Message{}, err
	}
	if !ok {
		return Message{}, ErrInvalidAuthor
	}

	if err = svc.messages.Store(ctx, m); err != nil {
		return Message{}, fmt.Errorf("error saving message: %w", err)
	}

	logging.Debugf("account %d posted message %d", m.PostedBy, m.ID)
	return *m, nil
}

func (svc *service) FindByID(ctx context.Context, id MessageID) (Message, bool, error) {
	m, err := svc.messages.FindByID(ctx, id)
	if errors.Is(err, ErrMessageNotFound) {
		return Message{}, false, nil
	}
	if err != nil {
		return Message{}, false, fmt.Errorf("error finding message: %w", err)
	}
	return *m, true, nil
}

func (svc *service) FindAll(ctx context.Context) ([]Message, error) {
	return svc.messages.FindAll(ctx)
}

func (svc *service) UpdateText(ctx context.Context, id MessageID, text string) (Outcome, error) {
	if !validText(text) {
		return NotApplied, nil
	}

	m, err := svc.messages.FindByID(ctx, id)
	if errors.Is(err, ErrMessageNotFound) {
		return NotApplied, nil
	}
	if err != nil {
		return NotApplied, fmt.Errorf("error finding message: %w", err)
	}

	m.Text = text
	if err := svc.messages.Update(ctx, m); err != nil {
		// deleted between the lookup and the write
		if errors.Is(err, ErrMessageNotFound) {
			return NotApplied, nil
		}
		return NotApplied, fmt.Errorf("error updating message: %w", err)
	}

	logging.Debugf("updated message %d", id)
	return Applied, nil
}

func (svc *service) DeleteByID(ctx context.Context, id MessageID) (Outcome, error) {
	existed, err := svc.messages.Delete(ctx, id)
	if err != nil {
		return NotApplied, fmt.Errorf("error deleting message: %w", err)
	}
	if !existed {
		return NotApplied, nil
	}

	logging.Debugf("deleted message %d", id)
	return Applied, nil
}

func (svc *service) FindAllMessagesByUser(ctx context.Context, accountID auth.ID) ([]Message, error) {
	_, ok, err := svc.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccountNotFound
	}

	return svc.messages.FindByAuthor(ctx, accountID)
}
