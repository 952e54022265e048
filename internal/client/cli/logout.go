package cli

import (
	"context"
	"errors"

	"github.com/iudanet/memochat/internal/client/auth"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		return errors.New(auth.FriendlyMessage(err))
	}

	c.io.Println("✓ Logged out.")
	return nil
}
