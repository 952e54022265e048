package localdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/models"
)

// ListMemos возвращает записи владельца сессии с учётом границ и порядка.
// Семантика границ совпадает с hosted backend-ом: Before - строго "<",
// From/To - инклюзивный диапазон.
func (s *Store) ListMemos(ctx context.Context, session *backend.Session, opts backend.ListOptions) ([]models.Memo, error) {
	if session == nil {
		return nil, backend.ErrNoSession
	}

	query := `
		SELECT id, user_id, content, created_at
		FROM memos
		WHERE user_id = ?
	`
	args := []any{session.UserID}

	if opts.Before != nil {
		query += " AND created_at < ?"
		args = append(args, opts.Before.UTC())
	}
	if opts.From != nil {
		query += " AND created_at >= ?"
		args = append(args, opts.From.UTC())
	}
	if opts.To != nil {
		query += " AND created_at <= ?"
		args = append(args, opts.To.UTC())
	}

	// Вторичный порядок по id делает страницы детерминированными при
	// совпадающих created_at
	if opts.Ascending {
		query += " ORDER BY created_at ASC, id ASC"
	} else {
		query += " ORDER BY created_at DESC, id DESC"
	}

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query memos: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var memos []models.Memo
	for rows.Next() {
		var m models.Memo
		if err := rows.Scan(&m.ID, &m.UserID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memo: %w", err)
		}
		memos = append(memos, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memos: %w", err)
	}

	return memos, nil
}

// InsertMemo вставляет новую запись; id и created_at назначаются здесь,
// как это делал бы сервер. Активные подписки владельца получают
// уведомление о вставке.
func (s *Store) InsertMemo(ctx context.Context, session *backend.Session, content string) (models.Memo, error) {
	if session == nil {
		return models.Memo{}, backend.ErrNoSession
	}

	memo := models.Memo{
		ID:        uuid.New().String(),
		UserID:    session.UserID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO memos (id, user_id, content, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, memo.ID, memo.UserID, memo.Content, memo.CreatedAt)
	if err != nil {
		return models.Memo{}, fmt.Errorf("failed to insert memo: %w", err)
	}

	s.broadcast(memo)

	return memo, nil
}
