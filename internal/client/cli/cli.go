// Package cli реализует команды клиента: авторизация, чат, недельные
// выгрузки.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/memochat/internal/archive"
	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/client/auth"
	"github.com/iudanet/memochat/internal/client/iocli"
)

type Cli struct {
	io          iocli.IO
	backend     backend.Backend
	authService auth.Service
	archiver    *archive.Service
	logger      *slog.Logger

	// каталог для файлов выгрузки, по умолчанию текущий
	exportDir string
}

func New(
	io iocli.IO,
	b backend.Backend,
	authService auth.Service,
	archiver *archive.Service,
	logger *slog.Logger,
) *Cli {
	return &Cli{
		io:          io,
		backend:     b,
		authService: authService,
		archiver:    archiver,
		logger:      logger,
		exportDir:   ".",
	}
}

// Run выполняет команду. Ошибку печатает вызывающий.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "chat":
		return c.runChat(ctx)
	case "weeks":
		return c.runWeeks(ctx)
	case "export":
		return c.runExport(ctx, args)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (c *Cli) PrintUsage() {
	c.io.Println("MemoChat Client")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  memochat [OPTIONS] COMMAND")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  --version          Show version information")
	c.io.Println("  --server URL       Server URL (or MEMOCHAT_SERVER_URL)")
	c.io.Println("  --anon-key KEY     Server public API key (or MEMOCHAT_ANON_KEY)")
	c.io.Println("  --db PATH          Path to local database (default: memochat-client.db)")
	c.io.Println("  --demo-db PATH     Path to demo mode database (default: memochat-demo.db)")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  register           Register new user")
	c.io.Println("  login              Login")
	c.io.Println("  logout             Logout")
	c.io.Println("  status             Show session status")
	c.io.Println("  chat               Open the memo chat")
	c.io.Println("  weeks              List weeks with memo counts")
	c.io.Println("  export [WEEK]      Export one week (YYYY-MM-DD) or all weeks as zip")
	c.io.Println()
	c.io.Println("Without --server and --anon-key the client runs in demo mode")
	c.io.Println("and keeps all data in a local database.")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  memochat register")
	c.io.Println("  memochat chat")
	c.io.Println("  memochat export 2024-03-04")
	c.io.Println("  memochat --server https://example.com --anon-key KEY login")
}
