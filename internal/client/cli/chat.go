package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/iudanet/memochat/internal/client/auth"
	"github.com/iudanet/memochat/internal/client/iocli"
	"github.com/iudanet/memochat/internal/models"
	"github.com/iudanet/memochat/internal/timeline"
)

// runChat открывает чат-ленту: история с разделителями дней, живые
// push-уведомления, Enter отправляет заметку.
func (c *Cli) runChat(ctx context.Context) error {
	session, err := c.authService.Current(ctx)
	if err != nil {
		return errors.New(auth.FriendlyMessage(err))
	}

	feed := timeline.NewFeed(c.backend, session, c.logger)
	if err := feed.Start(ctx); err != nil {
		return fmt.Errorf("failed to start feed: %w", err)
	}
	defer func() {
		_ = feed.Close()
	}()

	c.io.Println("=== Memo Chat ===")
	c.io.Println("Enter sends a memo. Commands: /more (older history), /all (reprint), /quit.")
	c.io.Println()

	printer := newChatPrinter(c.io)
	printer.printHistory(feed.Snapshot())

	// Обновления ленты печатаются параллельно с чтением ввода
	quit := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.consumeUpdates(feed, printer, quit)
	}()

	err = c.inputLoop(ctx, feed, printer)

	close(quit)
	wg.Wait()
	return err
}

// inputLoop читает ввод пользователя до /quit или конца потока
func (c *Cli) inputLoop(ctx context.Context, feed *timeline.Feed, printer *chatPrinter) error {
	for {
		line, err := c.io.ReadInput("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case "/quit":
			return nil
		case "/more":
			feed.LoadMore(ctx)
			continue
		case "/all":
			printer.reprint(feed.Snapshot())
			continue
		}

		if _, err := feed.Submit(ctx, line); err != nil {
			if errors.Is(err, timeline.ErrFeedClosed) {
				return err
			}
			printer.printError(err)
		}
	}
}

// consumeUpdates печатает уведомления ленты, пока чат открыт
func (c *Cli) consumeUpdates(feed *timeline.Feed, printer *chatPrinter, quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			return
		case u := <-feed.Updates():
			switch u.Kind {
			case timeline.UpdateInserted, timeline.UpdateConfirmed:
				printer.printMemo(u.Memo)
			case timeline.UpdateRejected:
				printer.printRejected(u.Restored, u.Err)
			case timeline.UpdatePageLoaded:
				printer.printPageLoaded(u.Added, u.Exhausted, u.Err)
			}
		}
	}
}

// chatPrinter печатает записи с разделителями дней и дедупликацией:
// подтверждение прямой записи и push-уведомление могут принести одну и
// ту же строку дважды.
type chatPrinter struct {
	io iocli.IO

	mu      sync.Mutex
	lastDay string
	seen    map[string]struct{}
}

func newChatPrinter(io iocli.IO) *chatPrinter {
	return &chatPrinter{
		io:   io,
		seen: make(map[string]struct{}),
	}
}

// printHistory печатает список по дневным группам
func (p *chatPrinter) printHistory(memos []models.Memo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, g := range timeline.GroupByDay(memos) {
		p.divider(g.Day)
		for _, m := range g.Items {
			p.seen[m.ID] = struct{}{}
			p.line(m)
		}
	}
}

// reprint заново печатает весь список (после догрузки истории)
func (p *chatPrinter) reprint(memos []models.Memo) {
	p.mu.Lock()
	p.lastDay = ""
	p.seen = make(map[string]struct{})
	p.mu.Unlock()

	p.io.Println()
	p.printHistory(memos)
}

// printMemo печатает одну запись, открывая новый день при необходимости
func (p *chatPrinter) printMemo(m models.Memo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.seen[m.ID]; ok {
		return
	}
	p.seen[m.ID] = struct{}{}

	day := timeline.DayKey(m.CreatedAt)
	if day != p.lastDay {
		p.divider(day)
	}
	p.line(m)
}

func (p *chatPrinter) printRejected(restored string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.io.Printf("✗ Failed to send: %v\n", err)
	p.io.Printf("  Your text: %s\n", restored)
}

func (p *chatPrinter) printPageLoaded(added int, exhausted bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case err != nil:
		p.io.Printf("✗ Failed to load history: %v\n", err)
	case added == 0 && exhausted:
		p.io.Println("(no more history)")
	default:
		p.io.Printf("(loaded %d older memos, /all to reprint)\n", added)
	}
}

func (p *chatPrinter) printError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.io.Printf("✗ %v\n", err)
}

// divider печатает разделитель дня; вызывать под mu
func (p *chatPrinter) divider(day string) {
	p.io.Printf("--- %s ---\n", day)
	p.lastDay = day
}

// line печатает строку записи; вызывать под mu
func (p *chatPrinter) line(m models.Memo) {
	p.io.Printf("[%s] %s\n", m.CreatedAt.Local().Format("15:04"), m.Content)
}
