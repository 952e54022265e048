// Package archive собирает заметки в недельные текстовые выгрузки.
// Неделя начинается с понедельника; одна неделя выгружается отдельным
// .txt файлом, все недели сразу - zip-архивом.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/timeline"
)

// ErrNoMemos указывает, что выгружать нечего
var ErrNoMemos = errors.New("no memos to export")

// Service строит недельные выгрузки поверх способности чтения backend-а
type Service struct {
	query  backend.QueryCapability
	logger *slog.Logger
}

// NewService создает новый сервис выгрузки
func NewService(query backend.QueryCapability, logger *slog.Logger) *Service {
	return &Service{
		query:  query,
		logger: logger,
	}
}

// ListWeeks возвращает недельные корзины всех заметок владельца,
// от новых к старым
func (s *Service) ListWeeks(ctx context.Context, session *backend.Session) ([]timeline.WeekBucket, error) {
	memos, err := s.query.ListMemos(ctx, session, backend.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list memos: %w", err)
	}

	stamps := make([]time.Time, 0, len(memos))
	for _, m := range memos {
		stamps = append(stamps, m.CreatedAt)
	}

	return timeline.GroupByWeek(stamps), nil
}

// RenderWeek строит текстовое содержимое выгрузки одной недели.
// weekStart нормализуется к началу своей недели, так что передать можно
// любой момент внутри неё.
func (s *Service) RenderWeek(ctx context.Context, session *backend.Session, weekStart time.Time) (string, error) {
	start := timeline.WeekStart(weekStart)
	end := timeline.WeekEnd(start)

	memos, err := s.query.ListMemos(ctx, session, backend.ListOptions{
		From:      &start,
		To:        &end,
		Ascending: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to list memos for week: %w", err)
	}
	if len(memos) == 0 {
		return "", ErrNoMemos
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n\n", timeline.WeekLabel(start, end))
	for _, m := range memos {
		fmt.Fprintf(&b, "[%s] %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Content)
	}

	return b.String(), nil
}

// ExportWeek пишет выгрузку одной недели в w
func (s *Service) ExportWeek(ctx context.Context, session *backend.Session, weekStart time.Time, w io.Writer) error {
	content, err := s.RenderWeek(ctx, session, weekStart)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	s.logger.Info("week exported", "week", timeline.WeekStart(weekStart).Format("2006-01-02"))
	return nil
}

// ExportAll пишет zip-архив со всеми неделями в w и возвращает число
// выгруженных недель
func (s *Service) ExportAll(ctx context.Context, session *backend.Session, w io.Writer) (int, error) {
	weeks, err := s.ListWeeks(ctx, session)
	if err != nil {
		return 0, err
	}
	if len(weeks) == 0 {
		return 0, ErrNoMemos
	}

	zw := zip.NewWriter(w)
	for _, week := range weeks {
		content, err := s.RenderWeek(ctx, session, week.WeekStart)
		if err != nil {
			_ = zw.Close()
			return 0, err
		}

		f, err := zw.Create(WeekFileName(week.WeekStart))
		if err != nil {
			_ = zw.Close()
			return 0, fmt.Errorf("failed to create zip entry: %w", err)
		}
		if _, err := io.WriteString(f, content); err != nil {
			_ = zw.Close()
			return 0, fmt.Errorf("failed to write zip entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish zip: %w", err)
	}

	s.logger.Info("archive exported", "weeks", len(weeks))
	return len(weeks), nil
}

// WeekFileName возвращает имя файла выгрузки одной недели
func WeekFileName(weekStart time.Time) string {
	return "memos_" + timeline.WeekStart(weekStart).Format("2006-01-02") + ".txt"
}

// ZipFileName возвращает имя zip-архива полной выгрузки
func ZipFileName(now time.Time) string {
	return "memos_backup_" + now.Format("2006-01-02") + ".zip"
}
