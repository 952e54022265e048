package cli

import (
	"context"
	"errors"
	"time"

	"github.com/iudanet/memochat/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	ok, err := c.authService.IsAuthenticated(ctx)
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Not logged in.")
		return nil
	}

	session, err := c.authService.Current(ctx)
	if err != nil {
		return errors.New(auth.FriendlyMessage(err))
	}

	c.io.Println("Logged in.")
	c.io.Printf("Email:   %s\n", session.Email)
	c.io.Printf("User ID: %s\n", session.UserID)
	if session.ExpiresAt.IsZero() {
		c.io.Println("Session: does not expire (local)")
	} else {
		c.io.Printf("Session expires: %s\n", session.ExpiresAt.Local().Format(time.RFC822))
	}

	return nil
}
