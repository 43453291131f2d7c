package microboard

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/jimiolaniyan/microboard/auth"
	"github.com/jimiolaniyan/microboard/internal/sqldb"
)

// messageModel has no foreign key to accounts: deleting an account leaves
// its messages in place.
type messageModel struct {
	bun.BaseModel `bun:"table:messages"`
	ID            MessageID `bun:"message_id,pk,autoincrement"`
	PostedBy      auth.ID   `bun:"posted_by,notnull"`
	Text          string    `bun:"message_text,notnull"`
	TimePosted    int64     `bun:"time_posted_epoch,notnull"`
}

type sqlMessageRepository struct {
	db bun.IDB
}

// NewSQLMessageRepository stores messages in the messages table, creating
// it when missing.
func NewSQLMessageRepository(ctx context.Context, db bun.IDB) (Repository, error) {
	if err := sqldb.CreateTables(ctx, db, (*messageModel)(nil)); err != nil {
		return nil, err
	}
	return &sqlMessageRepository{db: db}, nil
}

func (r *sqlMessageRepository) FindByID(ctx context.Context, id MessageID) (*Message, error) {
	var mm messageModel
	err := r.db.NewSelect().Model(&mm).Where("message_id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	m := messageFromModel(mm)
	return &m, nil
}

func (r *sqlMessageRepository) FindAll(ctx context.Context) ([]Message, error) {
	return r.find(ctx, r.db.NewSelect())
}

func (r *sqlMessageRepository) FindByAuthor(ctx context.Context, author auth.ID) ([]Message, error) {
	return r.find(ctx, r.db.NewSelect().Where("posted_by = ?", author))
}

func (r *sqlMessageRepository) find(ctx context.Context, q *bun.SelectQuery) ([]Message, error) {
	var mm []messageModel
	if err := q.Model(&mm).Order("message_id").Scan(ctx); err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(mm))
	for _, m := range mm {
		messages = append(messages, messageFromModel(m))
	}
	return messages, nil
}

func (r *sqlMessageRepository) Store(ctx context.Context, m *Message) error {
	mm := modelFromMessage(m)
	if _, err := r.db.NewInsert().Model(&mm).Exec(ctx); err != nil {
		return sqldb.MapError(err)
	}
	m.ID = mm.ID
	return nil
}

// Update counts matched rows (mysql is opened with clientFoundRows), so an
// unchanged text still counts as found.
func (r *sqlMessageRepository) Update(ctx context.Context, m *Message) error {
	mm := modelFromMessage(m)
	res, err := r.db.NewUpdate().Model(&mm).Column("message_text").WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	if sqldb.RowsAffected(res) == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *sqlMessageRepository) Delete(ctx context.Context, id MessageID) (bool, error) {
	res, err := r.db.NewDelete().Model((*messageModel)(nil)).Where("message_id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	return sqldb.RowsAffected(res) > 0, nil
}

func modelFromMessage(m *Message) messageModel {
	return messageModel{ID: m.ID, PostedBy: m.PostedBy, Text: m.Text, TimePosted: m.TimePosted}
}

func messageFromModel(mm messageModel) Message {
	return Message{ID: mm.ID, PostedBy: mm.PostedBy, Text: mm.Text, TimePosted: mm.TimePosted}
}
