package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/jimiolaniyan/microboard/internal/sqldb"
)

type accountModel struct {
	bun.BaseModel `bun:"table:accounts"`
	ID            ID     `bun:"account_id,pk,autoincrement"`
	Username      string `bun:"username,unique,notnull"`
	Password      string `bun:"password,notnull"`
}

type sqlAccountRepository struct {
	db bun.IDB
}

// NewSQLAccountRepository stores accounts in the accounts table, creating
// it when missing.
func NewSQLAccountRepository(ctx context.Context, db bun.IDB) (Repository, error) {
	if err := sqldb.CreateTables(ctx, db, (*accountModel)(nil)); err != nil {
		return nil, err
	}
	return &sqlAccountRepository{db: db}, nil
}

func (r *sqlAccountRepository) FindByID(ctx context.Context, id ID) (*Account, error) {
	return r.findOne(ctx, "account_id = ?", id)
}

func (r *sqlAccountRepository) FindByName(ctx context.Context, username string) (*Account, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *sqlAccountRepository) findOne(ctx context.Context, where string, arg interface{}) (*Account, error) {
	var am accountModel
	err := r.db.NewSelect().Model(&am).Where(where, arg).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	acc := accountFromModel(am)
	return &acc, nil
}

func (r *sqlAccountRepository) FindAll(ctx context.Context) ([]Account, error) {
	var am []accountModel
	if err := r.db.NewSelect().Model(&am).Order("account_id").Scan(ctx); err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, len(am))
	for _, a := range am {
		accounts = append(accounts, accountFromModel(a))
	}
	return accounts, nil
}

func (r *sqlAccountRepository) Store(ctx context.Context, acc *Account) error {
	am := &accountModel{Username: acc.Username, Password: acc.Password}
	if _, err := r.db.NewInsert().Model(am).Exec(ctx); err != nil {
		err = sqldb.MapError(err)
		if errors.Is(err, sqldb.ErrDuplicate) {
			return ErrExistingUsername
		}
		return err
	}
	acc.ID = am.ID
	return nil
}

func (r *sqlAccountRepository) Delete(ctx context.Context, id ID) (bool, error) {
	res, err := r.db.NewDelete().Model((*accountModel)(nil)).Where("account_id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	return sqldb.RowsAffected(res) > 0, nil
}

func accountFromModel(am accountModel) Account {
	return Account{ID: am.ID, Credentials: Credentials{Username: am.Username, Password: am.Password}}
}
