package timeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSession() *backend.Session {
	return &backend.Session{UserID: "user-1", Email: "u@example.com"}
}

// fakeSubscription создает подписку поверх канала с безопасным повторным Close.
func fakeSubscription(ch chan models.Memo) *backend.SubscriptionMock {
	var once sync.Once
	return &backend.SubscriptionMock{
		InsertsFunc: func() <-chan models.Memo { return ch },
		CloseFunc: func() error {
			once.Do(func() { close(ch) })
			return nil
		},
	}
}

func waitUpdate(t *testing.T, f *Feed) Update {
	t.Helper()
	select {
	case u := <-f.Updates():
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for feed update")
		return Update{}
	}
}

func TestFeed_Start_InitialLoad(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	b := &backend.BackendMock{
		ListMemosFunc: func(ctx context.Context, session *backend.Session, opts backend.ListOptions) ([]models.Memo, error) {
			// Первая страница: от новых к старым, без курсора
			assert.Nil(t, opts.Before)
			assert.Equal(t, DefaultPageSize, opts.Limit)
			return []models.Memo{
				serverRow("r2", "second", base.Add(time.Minute)),
				serverRow("r1", "first", base),
			}, nil
		},
		SubscribeFunc: func(ctx context.Context, session *backend.Session) (backend.Subscription, error) {
			return nil, errors.New("realtime unavailable")
		},
	}

	f := NewFeed(b, testSession(), testLogger())
	require.NoError(t, f.Start(ctx))
	defer f.Close() //nolint:errcheck

	memos := f.Snapshot()
	require.Len(t, memos, 2)
	assert.Equal(t, "r1", memos[0].ID)
	assert.Equal(t, "r2", memos[1].ID)
}

// Ошибка начальной загрузки не фатальна: показывается пустой список.
func TestFeed_Start_LoadFailurePresentsEmptyList(t *testing.T) {
	b := &backend.BackendMock{
		ListMemosFunc: func(ctx context.Context, session *backend.Session, opts backend.ListOptions) ([]models.Memo, error) {
			return nil, errors.New("connection refused")
		},
		SubscribeFunc: func(ctx context.Context, session *backend.Session) (backend.Subscription, error) {
			return nil, errors.New("realtime unavailable")
		},
	}

	f := NewFeed(b, testSession(), testLogger())
	require.NoError(t, f.Start(context.Background()))
	defer f.Close() //nolint:errcheck

	assert.Empty(t, f.Snapshot())
}

// Сценарий: submit "hello" -> временная запись видна сразу -> сервер
// отвечает r1 -> в списке ровно одна запись с id r1.
func TestFeed_Submit_Confirmed(t *testing.T) {
	row := serverRow("r1", "hello", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))

	b := &backend.BackendMock{
		ListMemosFunc: func(ctx context.Context, session *backend.Session, opts backend.ListOptions) ([]models.Memo, error) {
			return nil, nil
		},
		SubscribeFunc: func(ctx context.Context, session *backend.Session) (backend.Subscription, error) {
			return nil, errors.New("realtime unavailable")
		},
		InsertMemoFunc: func(ctx context.Context, session *backend.Session, content string) (models.Memo, error) {
			assert.Equal(t, "hello", content)
			return row, nil
		},
	}

	f := NewFeed(b, testSession(), testLogger())
	require.NoError(t, f.Start(context.Background()))
	defer f.Close() //nolint:errcheck

	temp, err := f.Submit(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, temp.IsPending())

	u := waitUpdate(t, f)
	assert.Equal(t, UpdateConfirmed, u.Kind)
	assert.Equal(t, "r1", u.Memo.ID)

	memos := f.Snapshot()
	require.Len(t, memos, 1)
	assert.Equal(t, "r1", memos[0].ID)
}

func TestFeed_Submit_RejectedRestoresText(t *testing.T) {
	b := &backend.BackendMock{
		ListMemosFunc: func(ctx context.Context, session *backend.Session, opts backend.ListOptions) ([]models.Memo, error) {
			return nil, nil
		},
		SubscribeFunc: func(ctx context.Context, session *backend.Session) (backend.Subscription, error) {
			return nil, errors.New("realtime unavailable")
		},
		InsertMemoFunc: func(ctx context.Context, session *backend.Session, content string) (models.Memo, error) {
			return models.Memo{}, errors.New("row level security violation")
		},
	}

	f := NewFeed(b, testSession(), testLogger())
	require.NoError(t, f.Start(context.Background()))
	defer f.Close() //nolint:errcheck

	_, err := f.Submit(context.Background(), "doomed")
	require.NoError(t, err)

	u := waitUpdate(t, f)
	assert.Equal(t, UpdateRejected, u.Kind)
	assert.Equal(t, "doomed", u.Restored)
	require.Error(t, u.Err)

	// Откат вернул список в предыдущее валидное состояние
	assert.Empty(t, f.Snapshot())
}

func TestFeed_Submit_EmptyContent(t *testing.T) {
	b := &backend.BackendMock{
		ListMemosFunc: func(ctx context.Context, session *backend.Session, opts backend.ListOptions) ([]models.Memo, error) {
			return nil, nil
		},
		SubscribeFunc: func(ctx context.Context, session *backend.Session) (backend.Subscription, error) {
			return nil, errors.New("realtime unavailable")
		},
	}

	f := NewFeed(b, testSession(), testLogger())
	require.NoError(t, f.Start(context.Background()))
	defer f.Close() //nolint:errcheck

	_, err := f.Submit(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyContent)
}

// Push обогнал ответ прямой записи: итог - ровно одна запись r1.
func TestFeed_PushBeforeConfirm_ExactlyOneEntry(t *testing.T) {
	row := serverRow("r1", "hello", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	inserts := make(chan models.Memo, 1)
	release := make(chan struct{})

	b := &backend.BackendMock{
		ListMemosFunc: func(ctx context.Context, session *backend.Session, opts backend.ListOptions) ([]models.Memo, error) {
			return nil, nil
		},
		SubscribeFunc: func(ctx context.Context, session *backend.Session) (backend.Subscription, error) {
			return fakeSubscription(inserts), nil
		},
		InsertMemoFunc: func(ctx context.Context, session *backend.Session, content string) (models.Memo, error) {
			// Держим прямой ответ, пока push не будет обработан
			<-release
			return row, nil
		},
	}

	f := NewFeed(b, testSession(), testLogger())
	require.NoError(t, f.Start(context.Background()))
	defer f.Close() //nolint:errcheck

	_, err := f.Submit(context.Background(), "hello")
	require.NoError(t, err)

	// Push приходит первым
	inserts <- row
	u := waitUpdate(t, f)
	assert.Equal(t, UpdateInserted, u.Kind)
	assert.Equal(t, "r1", u.Memo.ID)

	// Затем завершается прямая запись
	close(release)
	u = waitUpdate(t, f)
	assert.Equal(t, UpdateConfirmed, u.Kind)

	memos := f.Snapshot()
	require.Len(t, memos, 1)
	assert.Equal(t, "r1", memos[0].ID)
}

// Повторная доставка push для уже подтверждённой записи - no-op.
func TestFeed_DuplicatePushIgnored(t *testing.T) {
	row := serverRow("r1", "hello", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	inserts := make(chan models.Memo, 2)

	b := &backend.BackendMock{
		ListMemosFunc: func(ctx context.Context, session *backend.Session, opts backend.ListOptions) ([]models.Memo, error) {
			return nil, nil
		},
		SubscribeFunc: func(ctx context.Context, session *backend.Session) (backend.Subscription, error) {
			return fakeSubscription(inserts), nil
		},
	}

	f := NewFeed(b, testSession(), testLogger())
	require.NoError(t, f.Start(context.Background()))
	defer f.Close() //nolint:errcheck

	inserts <- row
	inserts <- row

	u := waitUpdate(t, f)
	assert.Equal(t, UpdateInserted, u.Kind)

	// Второй push обработан (канал пуст), но список не изменился
	require.Eventually(t, func() bool {
		return len(inserts) == 0
	}, 2*time.Second, 10*time.Millisecond)

	memos := f.Snapshot()
	require.Len(t, memos, 1)
}

func TestFeed_LoadMore(t *testing.T) {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	// Полная первая страница, чтобы история считалась неисчерпанной
	full := make([]models.Memo, DefaultPageSize)
	for i := range full {
		full[i] = serverRow(fmt.Sprintf("r%03d", DefaultPageSize-i), "x",
			base.Add(time.Duration(DefaultPageSize-i)*time.Minute))
	}
	oldestLoaded := full[len(full)-1]

	older := []models.Memo{
		serverRow("r000", "oldest", base),
	}

	var calls int
	b := &backend.BackendMock{
		ListMemosFunc: func(ctx context.Context, session *backend.Session, opts backend.ListOptions) ([]models.Memo, error) {
			calls++
			if opts.Before == nil {
				return full, nil
			}
			// Курсор - эксклюзивная граница по самой старой видимой записи
			assert.Equal(t, oldestLoaded.CreatedAt, *opts.Before)
			return older, nil
		},
		SubscribeFunc: func(ctx context.Context, session *backend.Session) (backend.Subscription, error) {
			return nil, errors.New("realtime unavailable")
		},
	}

	f := NewFeed(b, testSession(), testLogger())
	require.NoError(t, f.Start(context.Background()))
	defer f.Close() //nolint:errcheck

	f.LoadMore(context.Background())

	u := waitUpdate(t, f)
	assert.Equal(t, UpdatePageLoaded, u.Kind)
	assert.Equal(t, 1, u.Added)
	// Короткая страница - терминальный сигнал
	assert.True(t, u.Exhausted)

	memos := f.Snapshot()
	require.Len(t, memos, DefaultPageSize+1)
	assert.Equal(t, "r000", memos[0].ID)

	// После исчерпания повторный loadMore не обращается к backend
	f.LoadMore(context.Background())
	assert.Len(t, f.Snapshot(), DefaultPageSize+1) // синхронизация с циклом
	assert.Equal(t, 2, calls)
}

func TestFeed_SubmitAfterClose(t *testing.T) {
	b := &backend.BackendMock{
		ListMemosFunc: func(ctx context.Context, session *backend.Session, opts backend.ListOptions) ([]models.Memo, error) {
			return nil, nil
		},
		SubscribeFunc: func(ctx context.Context, session *backend.Session) (backend.Subscription, error) {
			return nil, errors.New("realtime unavailable")
		},
	}

	f := NewFeed(b, testSession(), testLogger())
	require.NoError(t, f.Start(context.Background()))
	require.NoError(t, f.Close())

	_, err := f.Submit(context.Background(), "late")
	assert.ErrorIs(t, err, ErrFeedClosed)
}
