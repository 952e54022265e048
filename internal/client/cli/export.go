package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iudanet/memochat/internal/archive"
	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/client/auth"
)

// runExport выгружает одну неделю (аргумент YYYY-MM-DD) в .txt или все
// недели в zip-архив
func (c *Cli) runExport(ctx context.Context, args []string) error {
	session, err := c.authService.Current(ctx)
	if err != nil {
		return errors.New(auth.FriendlyMessage(err))
	}

	if len(args) > 0 {
		weekStart, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("invalid week date %q, expected YYYY-MM-DD", args[0])
		}
		return c.exportWeek(ctx, session, weekStart)
	}

	return c.exportAll(ctx, session)
}

func (c *Cli) exportWeek(ctx context.Context, session *backend.Session, weekStart time.Time) error {
	path := filepath.Join(c.exportDir, archive.WeekFileName(weekStart))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := c.archiver.ExportWeek(ctx, session, weekStart, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		if errors.Is(err, archive.ErrNoMemos) {
			c.io.Println("No memos in that week.")
			return nil
		}
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finish export file: %w", err)
	}

	c.io.Printf("✓ Exported to %s\n", path)
	return nil
}

func (c *Cli) exportAll(ctx context.Context, session *backend.Session) error {
	path := filepath.Join(c.exportDir, archive.ZipFileName(time.Now()))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	count, err := c.archiver.ExportAll(ctx, session, f)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		if errors.Is(err, archive.ErrNoMemos) {
			c.io.Println("No memos to export.")
			return nil
		}
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finish export file: %w", err)
	}

	c.io.Printf("✓ Exported %d weeks to %s\n", count, path)
	return nil
}
