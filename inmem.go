package microboard

import (
	"context"
	"sort"
	"sync"

	"github.com/jimiolaniyan/microboard/auth"
)

type messageRepository struct {
	mu       sync.RWMutex
	sequence MessageID
	messages map[MessageID]*Message
}

func NewMessageRepository() Repository {
	return &messageRepository{messages: map[MessageID]*Message{}}
}

func (repo *messageRepository) FindByID(_ context.Context, id MessageID) (*Message, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if m, ok := repo.messages[id]; ok {
		msg := *m
		return &msg, nil
	}
	return nil, ErrMessageNotFound
}

func (repo *messageRepository) FindAll(_ context.Context) ([]Message, error) {
	return repo.filter(func(*Message) bool { return true }), nil
}

func (repo *messageRepository) FindByAuthor(_ context.Context, author auth.ID) ([]Message, error) {
	return repo.filter(func(m *Message) bool { return m.PostedBy == author }), nil
}

func (repo *messageRepository) filter(keep func(*Message) bool) []Message {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	messages := []Message{}
	for _, m := range repo.messages {
		if keep(m) {
			messages = append(messages, *m)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })
	return messages
}

func (repo *messageRepository) Store(_ context.Context, m *Message) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.sequence++
	m.ID = repo.sequence
	stored := *m
	repo.messages[m.ID] = &stored
	return nil
}

func (repo *messageRepository) Update(_ context.Context, m *Message) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.messages[m.ID]; !ok {
		return ErrMessageNotFound
	}
	stored := *m
	repo.messages[m.ID] = &stored
	return nil
}

func (repo *messageRepository) Delete(_ context.Context, id MessageID) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.messages[id]; !ok {
		return false, nil
	}
	delete(repo.messages, id)
	return true, nil
}
