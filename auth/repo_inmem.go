package auth

import (
	"context"
	"sort"
	"sync"
)

type accountRepository struct {
	mu       sync.RWMutex
	sequence ID
	accounts map[ID]*Account
}

func NewAccountRepository() Repository {
	return &accountRepository{accounts: map[ID]*Account{}}
}

func (repo *accountRepository) Store(_ context.Context, acc *Account) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, v := range repo.accounts {
		if v.Username == acc.Username {
			return ErrExistingUsername
		}
	}

	repo.sequence++
	acc.ID = repo.sequence
	stored := *acc
	repo.accounts[acc.ID] = &stored
	return nil
}

func (repo *accountRepository) FindByID(_ context.Context, id ID) (*Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if a, ok := repo.accounts[id]; ok {
		acc := *a
		return &acc, nil
	}
	return nil, ErrNotFound
}

func (repo *accountRepository) FindByName(_ context.Context, username string) (*Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, v := range repo.accounts {
		if v.Username == username {
			acc := *v
			return &acc, nil
		}
	}
	return nil, ErrNotFound
}

func (repo *accountRepository) FindAll(_ context.Context) ([]Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	accounts := make([]Account, 0, len(repo.accounts))
	for _, v := range repo.accounts {
		accounts = append(accounts, *v)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (repo *accountRepository) Delete(_ context.Context, id ID) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.accounts[id]; !ok {
		return false, nil
	}
	delete(repo.accounts, id)
	return true, nil
}
