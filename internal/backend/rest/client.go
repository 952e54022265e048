// Package rest реализует backend-способности поверх hosted backend-а:
// auth-endpoints для сессий, REST-запросы строк таблицы memos и
// websocket-канал push-уведомлений.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/models"
	"github.com/iudanet/memochat/pkg/api"
)

// Client представляет HTTP клиент hosted backend-а
type Client struct {
	httpClient *http.Client
	baseURL    string
	anonKey    string
	logger     *slog.Logger
}

// Compile-time check that Client implements backend.Backend
var _ backend.Backend = (*Client)(nil)

// New создает новый клиент backend-а.
// baseURL - корень проекта (https://<project>.example.com), anonKey -
// публичный API-ключ, который идёт в заголовок apikey каждого запроса.
func New(baseURL, anonKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SignUp регистрирует нового пользователя и возвращает сессию
func (c *Client) SignUp(ctx context.Context, email, password string) (*backend.Session, error) {
	var resp api.TokenResponse
	req := api.CredentialsRequest{Email: email, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/v1/signup", nil, req, &resp, nil); err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	return sessionFromToken(&resp), nil
}

// SignIn выполняет вход по email и паролю
func (c *Client) SignIn(ctx context.Context, email, password string) (*backend.Session, error) {
	var resp api.TokenResponse
	req := api.CredentialsRequest{Email: email, Password: password}
	query := url.Values{"grant_type": {"password"}}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/v1/token", query, req, &resp, nil); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return sessionFromToken(&resp), nil
}

// Refresh обменивает refresh token на новую пару токенов
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*backend.Session, error) {
	var resp api.TokenResponse
	req := api.RefreshRequest{RefreshToken: refreshToken}
	query := url.Values{"grant_type": {"refresh_token"}}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/v1/token", query, req, &resp, nil); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return sessionFromToken(&resp), nil
}

// SignOut отзывает токены сессии на сервере
func (c *Client) SignOut(ctx context.Context, session *backend.Session) error {
	if session == nil {
		return backend.ErrNoSession
	}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, nil, session); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// ListMemos возвращает строки таблицы memos текущего владельца.
// Сервер ограничивает видимость строк владельцем токена (row level
// security), поэтому фильтр по user_id на клиенте не нужен.
func (c *Client) ListMemos(ctx context.Context, session *backend.Session, opts backend.ListOptions) ([]models.Memo, error) {
	if session == nil {
		return nil, backend.ErrNoSession
	}

	query := url.Values{}
	query.Set("select", "*")

	// Вторичный порядок по id делает страницы детерминированными при
	// совпадающих created_at
	if opts.Ascending {
		query.Set("order", "created_at.asc,id.asc")
	} else {
		query.Set("order", "created_at.desc,id.desc")
	}

	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Before != nil {
		// Эксклюзивная граница курсора догрузки: строго "<"
		query.Add("created_at", "lt."+opts.Before.UTC().Format(time.RFC3339Nano))
	}
	if opts.From != nil {
		query.Add("created_at", "gte."+opts.From.UTC().Format(time.RFC3339Nano))
	}
	if opts.To != nil {
		query.Add("created_at", "lte."+opts.To.UTC().Format(time.RFC3339Nano))
	}

	var rows []api.MemoRow
	if err := c.doRequest(ctx, http.MethodGet, "/rest/v1/memos", query, nil, &rows, session); err != nil {
		return nil, fmt.Errorf("list memos request failed: %w", err)
	}

	memos := make([]models.Memo, 0, len(rows))
	for _, row := range rows {
		memos = append(memos, memoFromRow(row))
	}
	return memos, nil
}

// InsertMemo вставляет новую строку; id и created_at назначает сервер
func (c *Client) InsertMemo(ctx context.Context, session *backend.Session, content string) (models.Memo, error) {
	if session == nil {
		return models.Memo{}, backend.ErrNoSession
	}

	var rows []api.MemoRow
	req := api.InsertMemoRequest{Content: content}
	if err := c.doRequest(ctx, http.MethodPost, "/rest/v1/memos", nil, req, &rows, session); err != nil {
		return models.Memo{}, fmt.Errorf("insert memo request failed: %w", err)
	}

	if len(rows) == 0 {
		return models.Memo{}, fmt.Errorf("insert memo: server returned no row")
	}
	return memoFromRow(rows[0]), nil
}

// Subscribe открывает websocket-подписку на вставки строк владельца сессии
func (c *Client) Subscribe(ctx context.Context, session *backend.Session) (backend.Subscription, error) {
	if session == nil {
		return nil, backend.ErrNoSession
	}
	return newRealtimeSubscription(ctx, c.websocketURL(), session, c.logger)
}

// websocketURL строит адрес realtime-канала из базового URL
func (c *Client) websocketURL() string {
	ws := c.baseURL
	switch {
	case strings.HasPrefix(ws, "https://"):
		ws = "wss://" + strings.TrimPrefix(ws, "https://")
	case strings.HasPrefix(ws, "http://"):
		ws = "ws://" + strings.TrimPrefix(ws, "http://")
	}
	return ws + "/realtime/v1/websocket?apikey=" + url.QueryEscape(c.anonKey) + "&vsn=1.0.0"
}

// doRequest выполняет HTTP запрос к backend-у.
// При наличии session токен сессии идёт в Authorization, иначе - anon key.
func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, result any,
	session *backend.Session,
) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	if session != nil {
		req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost && strings.HasPrefix(path, "/rest/") {
		// Просим сервер вернуть вставленную строку целиком
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// decodeError переводит ответ с ошибкой в типизированную ошибку, сохраняя
// исходное сообщение сервера: нераспознанные причины проходят как есть
func (c *Client) decodeError(status int, body []byte) error {
	cause := strings.TrimSpace(string(body))

	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if s := errResp.Cause(); s != "" {
			cause = s
		}
	}

	lower := strings.ToLower(cause)
	switch {
	case strings.Contains(lower, "invalid login credentials"):
		return fmt.Errorf("%w: %s", backend.ErrInvalidCredentials, cause)
	case strings.Contains(lower, "already registered"),
		strings.Contains(lower, "user_already_exists"):
		return fmt.Errorf("%w: %s", backend.ErrUserExists, cause)
	}

	return fmt.Errorf("server error (%d): %s", status, cause)
}

// sessionFromToken собирает сессию из ответа auth-сервиса
func sessionFromToken(resp *api.TokenResponse) *backend.Session {
	var expiresAt time.Time
	if resp.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return &backend.Session{
		UserID:       resp.User.ID,
		Email:        resp.User.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiresAt,
	}
}

func memoFromRow(row api.MemoRow) models.Memo {
	return models.Memo{
		ID:        row.ID,
		UserID:    row.UserID,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
	}
}
