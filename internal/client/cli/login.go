package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/memochat/internal/client/auth"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	session, err := c.authService.Login(ctx, email, password)
	if err != nil {
		return errors.New(auth.FriendlyMessage(err))
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Email: %s\n", session.Email)
	if !session.ExpiresAt.IsZero() {
		c.io.Printf("Session expires: %s\n", session.ExpiresAt.Local().Format(time.RFC822))
	}

	return nil
}
