package cli

import (
	"context"
	"errors"

	"github.com/iudanet/memochat/internal/client/auth"
)

func (c *Cli) runWeeks(ctx context.Context) error {
	session, err := c.authService.Current(ctx)
	if err != nil {
		return errors.New(auth.FriendlyMessage(err))
	}

	weeks, err := c.archiver.ListWeeks(ctx, session)
	if err != nil {
		return err
	}
	if len(weeks) == 0 {
		c.io.Println("No memos yet.")
		return nil
	}

	c.io.Println("=== Weeks ===")
	c.io.Println()
	for _, w := range weeks {
		c.io.Printf("%s  %d memos\n", w.Label, w.MemoCount)
	}
	c.io.Println()
	c.io.Println("Use 'memochat export YYYY-MM-DD' to export a week.")

	return nil
}
