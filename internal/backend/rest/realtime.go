package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/models"
)

const (
	// realtimeTopic - канал вставок таблицы memos
	realtimeTopic = "realtime:public:memos"

	// heartbeatInterval - период keepalive-кадров; сервер разрывает
	// соединение, не получив heartbeat в течение минуты
	heartbeatInterval = 30 * time.Second
)

// phoenixFrame - исходящий кадр протокола realtime-канала
type phoenixFrame struct {
	Topic   string `json:"topic"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
	Ref     string `json:"ref"`
}

// phoenixMessage - входящий кадр
type phoenixMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

// postgresChange описывает подписку на изменения таблицы
type postgresChange struct {
	Event  string `json:"event"`
	Schema string `json:"schema"`
	Table  string `json:"table"`
	Filter string `json:"filter,omitempty"`
}

// joinPayload - конфигурация канала при phx_join
type joinPayload struct {
	Config struct {
		PostgresChanges []postgresChange `json:"postgres_changes"`
	} `json:"config"`
	AccessToken string `json:"access_token"`
}

// changePayload - payload события postgres_changes
type changePayload struct {
	Data struct {
		Type   string          `json:"type"`
		Record json.RawMessage `json:"record"`
	} `json:"data"`
}

// realtimeRow - строка в уведомлении. created_at приходит строкой и не
// всегда содержит таймзону, поэтому разбирается отдельно.
type realtimeRow struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// realtimeSubscription - активная websocket-подписка на вставки строк
// владельца. Доставка at-least-once: дубликаты и гонка с ответом прямой
// записи разрешаются на стороне reconciler-а.
type realtimeSubscription struct {
	conn    *websocket.Conn
	inserts chan models.Memo
	done    chan struct{}
	closing sync.Once
	logger  *slog.Logger
}

// Compile-time check that realtimeSubscription implements backend.Subscription
var _ backend.Subscription = (*realtimeSubscription)(nil)

// newRealtimeSubscription подключается к realtime-каналу и подписывается на
// INSERT-события строк текущего владельца
func newRealtimeSubscription(
	ctx context.Context,
	wsURL string,
	session *backend.Session,
	logger *slog.Logger,
) (*realtimeSubscription, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("realtime dial failed: %w", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	s := &realtimeSubscription{
		conn:    conn,
		inserts: make(chan models.Memo, 16),
		done:    make(chan struct{}),
		logger:  logger,
	}

	join := joinPayload{AccessToken: session.AccessToken}
	join.Config.PostgresChanges = []postgresChange{{
		Event:  "INSERT",
		Schema: "public",
		Table:  "memos",
		Filter: "user_id=eq." + session.UserID,
	}}

	if err := conn.WriteJSON(phoenixFrame{
		Topic:   realtimeTopic,
		Event:   "phx_join",
		Payload: join,
		Ref:     "1",
	}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("realtime join failed: %w", err)
	}

	go s.readLoop()
	go s.heartbeat()

	return s, nil
}

// Inserts возвращает канал вставленных строк
func (s *realtimeSubscription) Inserts() <-chan models.Memo {
	return s.inserts
}

// Close останавливает подписку и закрывает соединение
func (s *realtimeSubscription) Close() error {
	var err error
	s.closing.Do(func() {
		close(s.done)
		err = s.conn.Close()
	})
	return err
}

// readLoop читает кадры канала и переносит INSERT-события в канал inserts.
// Закрывает inserts при потере соединения или Close.
func (s *realtimeSubscription) readLoop() {
	defer close(s.inserts)

	for {
		var msg phoenixMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			select {
			case <-s.done:
				// штатное закрытие
			default:
				s.logger.Warn("realtime connection lost", "error", err)
			}
			return
		}

		if msg.Event != "postgres_changes" {
			continue
		}

		memo, ok := s.decodeInsert(msg.Payload)
		if !ok {
			continue
		}

		select {
		case s.inserts <- memo:
		case <-s.done:
			return
		}
	}
}

// heartbeat шлёт keepalive-кадры, пока подписка активна
func (s *realtimeSubscription) heartbeat() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ref := 1
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			ref++
			frame := phoenixFrame{
				Topic:   "phoenix",
				Event:   "heartbeat",
				Payload: struct{}{},
				Ref:     strconv.Itoa(ref),
			}
			if err := s.conn.WriteJSON(frame); err != nil {
				s.logger.Warn("realtime heartbeat failed", "error", err)
				return
			}
		}
	}
}

// decodeInsert извлекает вставленную строку из payload события
func (s *realtimeSubscription) decodeInsert(payload json.RawMessage) (models.Memo, bool) {
	var change changePayload
	if err := json.Unmarshal(payload, &change); err != nil {
		s.logger.Warn("failed to decode realtime payload", "error", err)
		return models.Memo{}, false
	}
	if change.Data.Type != "INSERT" || len(change.Data.Record) == 0 {
		return models.Memo{}, false
	}

	var row realtimeRow
	if err := json.Unmarshal(change.Data.Record, &row); err != nil {
		s.logger.Warn("failed to decode realtime record", "error", err)
		return models.Memo{}, false
	}

	createdAt, err := parseRealtimeTime(row.CreatedAt)
	if err != nil {
		s.logger.Warn("failed to parse realtime timestamp",
			"value", row.CreatedAt, "error", err)
		return models.Memo{}, false
	}

	return models.Memo{
		ID:        row.ID,
		UserID:    row.UserID,
		Content:   row.Content,
		CreatedAt: createdAt,
	}, true
}

// parseRealtimeTime разбирает метку времени уведомления.
// Канал может отдавать и RFC3339, и timestamp без таймзоны (трактуется
// как UTC).
func parseRealtimeTime(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02 15:04:05.999999",
	}

	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}
