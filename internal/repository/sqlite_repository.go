package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nutricare/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateThread(ctx context.Context, thread *model.Thread) error {
	query := "INSERT INTO threads (id, user_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, thread.ID, thread.UserID, thread.Title, thread.CreatedAt, thread.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetThread(ctx context.Context, threadID string) (*model.Thread, error) {
	query := "SELECT id, user_id, title, created_at, updated_at FROM threads WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, threadID)
	var thread model.Thread
	err := row.Scan(&thread.ID, &thread.UserID, &thread.Title, &thread.CreatedAt, &thread.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &thread, nil
}

func (r *sqliteRepository) GetThreads(ctx context.Context, userID string) ([]*model.Thread, error) {
	query := "SELECT id, user_id, title, created_at, updated_at FROM threads WHERE user_id = ? ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []*model.Thread
	for rows.Next() {
		var thread model.Thread
		if err := rows.Scan(&thread.ID, &thread.UserID, &thread.Title, &thread.CreatedAt, &thread.UpdatedAt); err != nil {
			return nil, err
		}
		threads = append(threads, &thread)
	}
	return threads, rows.Err()
}

func (r *sqliteRepository) DeleteThread(ctx context.Context, threadID string) error {
	query := "DELETE FROM threads WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, threadID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddDisplayMessage inserts the message and bumps the thread's updated_at in
// one transaction, so thread ordering stays consistent with its content.
func (r *sqliteRepository) AddDisplayMessage(ctx context.Context, threadID string, message *model.DisplayMessage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := "INSERT INTO display_messages (id, thread_id, type, content, timestamp) VALUES (?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, insertQuery, message.ID, threadID, message.Type, message.Content, message.Timestamp); err != nil {
		return fmt.Errorf("could not insert display message: %w", err)
	}

	updateQuery := "UPDATE threads SET updated_at = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, updateQuery, time.Now().UTC(), threadID); err != nil {
		return fmt.Errorf("could not update thread timestamp: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetDisplayMessages(ctx context.Context, threadID string) ([]model.DisplayMessage, error) {
	query := "SELECT id, type, content, timestamp FROM display_messages WHERE thread_id = ? ORDER BY timestamp ASC, rowid ASC"
	rows, err := r.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.DisplayMessage
	for rows.Next() {
		var msg model.DisplayMessage
		if err := rows.Scan(&msg.ID, &msg.Type, &msg.Content, &msg.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *sqliteRepository) GetDisplayMessage(ctx context.Context, threadID, messageID string) (*model.DisplayMessage, error) {
	query := "SELECT id, type, content, timestamp FROM display_messages WHERE thread_id = ? AND id = ?"
	row := r.db.QueryRowContext(ctx, query, threadID, messageID)
	var msg model.DisplayMessage
	err := row.Scan(&msg.ID, &msg.Type, &msg.Content, &msg.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// UpdateDisplayMessageContent replaces a message's text in place. This is a
// pure transcript mutation: the assistant's conversation window keeps the
// original wording and no model call is triggered.
func (r *sqliteRepository) UpdateDisplayMessageContent(ctx context.Context, threadID, messageID, content string) error {
	query := "UPDATE display_messages SET content = ? WHERE thread_id = ? AND id = ?"
	res, err := r.db.ExecContext(ctx, query, content, threadID, messageID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
