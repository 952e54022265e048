package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/memochat/internal/client/auth"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Register ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	c.io.Println()
	c.io.Println("Registering...")

	session, err := c.authService.Register(ctx, email, password)
	if err != nil {
		return errors.New(auth.FriendlyMessage(err))
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("Email: %s\n", session.Email)
	c.io.Println()
	c.io.Println("Run 'memochat chat' to start writing memos.")

	return nil
}
