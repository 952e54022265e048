package timeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/models"
)

// ErrFeedClosed возвращается при обращении к остановленной ленте.
var ErrFeedClosed = errors.New("feed is closed")

// UpdateKind - тип уведомления ленты.
type UpdateKind int

const (
	// UpdateInserted - запись добавлена в список (push-уведомление).
	UpdateInserted UpdateKind = iota
	// UpdateConfirmed - optimistic запись подтверждена сервером.
	UpdateConfirmed
	// UpdateRejected - прямая запись не удалась, выполнен откат.
	UpdateRejected
	// UpdatePageLoaded - завершена догрузка страницы истории.
	UpdatePageLoaded
)

// Update - уведомление потребителю ленты об изменении списка.
type Update struct {
	Kind      UpdateKind
	Memo      models.Memo
	Restored  string // исходный текст для восстановления в поле ввода (UpdateRejected)
	Added     int    // количество добавленных записей (UpdatePageLoaded)
	Exhausted bool   // история исчерпана (UpdatePageLoaded)
	Err       error  // причина отказа (UpdateRejected, UpdatePageLoaded)
}

// Feed объединяет reconciler и cursor в единую ленту записей одного
// пользователя. Вся мутация списка происходит в одной горутине-цикле:
// внешние запросы (Submit, LoadMore, Snapshot) и push-уведомления
// доставляются в общий канал команд и обрабатываются строго по одному.
// Сетевые вызовы выполняются вне цикла и публикуют свои результаты
// обратно как команды, поэтому push может быть обработан, пока вставка
// ещё в полёте.
//
// Потребитель обязан вычитывать канал Updates, иначе цикл заблокируется.
type Feed struct {
	backend backend.Backend
	session *backend.Session
	logger  *slog.Logger

	rec    *Reconciler
	cursor *Cursor

	commands chan func()
	updates  chan Update
	done     chan struct{}
	closing  sync.Once
	sub      backend.Subscription
}

// NewFeed создает ленту для активной сессии. Лента не запущена до Start.
func NewFeed(b backend.Backend, session *backend.Session, logger *slog.Logger) *Feed {
	return &Feed{
		backend:  b,
		session:  session,
		logger:   logger,
		rec:      NewReconciler(),
		cursor:   NewCursor(DefaultPageSize),
		commands: make(chan func()),
		updates:  make(chan Update, 16),
		done:     make(chan struct{}),
	}
}

// Start загружает первую страницу истории, подписывается на push-уведомления
// и запускает цикл обработки событий. Ошибка начальной загрузки не фатальна:
// логируется, пользователю показывается пустой список.
func (f *Feed) Start(ctx context.Context) error {
	rows, err := f.backend.ListMemos(ctx, f.session, backend.ListOptions{
		Limit: f.cursor.PageSize(),
	})
	if err != nil {
		f.logger.Error("initial load failed, presenting empty list", "error", err)
		rows = nil
	}

	f.rec.Reset(Ascending(rows))
	if err == nil {
		// Короткая первая страница означает, что истории дальше нет
		f.cursor.Finish(len(rows))
	}

	sub, subErr := f.backend.Subscribe(ctx, f.session)
	if subErr != nil {
		// Сбои push-канала невидимы для ленты: прямой путь записи
		// и полная перезагрузка обеспечивают eventual consistency
		f.logger.Warn("push subscription unavailable", "error", subErr)
	} else {
		f.sub = sub
	}

	go f.loop()
	if f.sub != nil {
		go f.pump(f.sub)
	}

	return nil
}

// Updates возвращает канал уведомлений ленты.
// Канал не закрывается: потребитель завершает чтение по своему сигналу.
func (f *Feed) Updates() <-chan Update {
	return f.updates
}

// Submit выполняет optimistic append и запускает прямую запись на сервер.
// Возвращает временную запись, уже видимую в списке. При ошибке записи
// лента откатит запись и опубликует UpdateRejected с исходным текстом.
func (f *Feed) Submit(ctx context.Context, content string) (models.Memo, error) {
	type result struct {
		memo models.Memo
		err  error
	}

	res := make(chan result, 1)
	ok := f.do(func() {
		m, err := f.rec.Submit(content, time.Now())
		res <- result{memo: m, err: err}
	})
	if !ok {
		return models.Memo{}, ErrFeedClosed
	}

	r := <-res
	if r.err != nil {
		return models.Memo{}, r.err
	}

	go f.write(ctx, r.memo)

	return r.memo, nil
}

// write выполняет прямую запись и публикует результат обратно в цикл.
func (f *Feed) write(ctx context.Context, temp models.Memo) {
	row, err := f.backend.InsertMemo(ctx, f.session, temp.Content)

	f.do(func() {
		if err != nil {
			restored, ok := f.rec.Reject(temp.ID)
			if !ok {
				// Запись уже ушла из списка (например, Reset после смены
				// пользователя) - откатывать нечего
				return
			}
			f.notify(Update{Kind: UpdateRejected, Restored: restored, Err: err})
			return
		}

		f.rec.Confirm(temp.ID, row)
		f.notify(Update{Kind: UpdateConfirmed, Memo: row})
	})
}

// LoadMore запускает догрузку страницы истории. Повторные вызовы во время
// полёта и вызовы после исчерпания истории игнорируются.
func (f *Feed) LoadMore(ctx context.Context) {
	f.do(func() {
		if !f.cursor.Begin(f.rec.Len()) {
			return
		}

		oldest, _ := f.rec.Oldest()
		before := oldest.CreatedAt

		go func() {
			page, err := f.backend.ListMemos(ctx, f.session, backend.ListOptions{
				Before: &before,
				Limit:  f.cursor.PageSize(),
			})

			f.do(func() {
				if err != nil {
					f.cursor.Abort()
					f.logger.Error("backfill page failed", "error", err)
					f.notify(Update{Kind: UpdatePageLoaded, Err: err})
					return
				}

				added := f.rec.Prepend(Ascending(page))
				f.cursor.Finish(len(page))
				f.notify(Update{
					Kind:      UpdatePageLoaded,
					Added:     added,
					Exhausted: f.cursor.Exhausted(),
				})
			})
		}()
	})
}

// Snapshot возвращает копию текущего списка для read-only потребителей.
func (f *Feed) Snapshot() []models.Memo {
	res := make(chan []models.Memo, 1)
	if !f.do(func() { res <- f.rec.Snapshot() }) {
		return nil
	}
	return <-res
}

// Close останавливает цикл и подписку на push-уведомления.
func (f *Feed) Close() error {
	var err error
	f.closing.Do(func() {
		close(f.done)
		if f.sub != nil {
			err = f.sub.Close()
		}
	})
	return err
}

// loop - единственный владелец reconciler-а и cursor-а.
func (f *Feed) loop() {
	for {
		select {
		case fn := <-f.commands:
			fn()
		case <-f.done:
			return
		}
	}
}

// pump переносит push-уведомления из подписки в канал команд цикла.
func (f *Feed) pump(sub backend.Subscription) {
	for m := range sub.Inserts() {
		memo := m
		f.do(func() {
			if f.rec.ApplyInsert(memo) {
				f.notify(Update{Kind: UpdateInserted, Memo: memo})
			}
		})
	}
}

// do передаёт команду циклу. Возвращает false, если лента остановлена.
func (f *Feed) do(fn func()) bool {
	select {
	case f.commands <- fn:
		return true
	case <-f.done:
		return false
	}
}

func (f *Feed) notify(u Update) {
	select {
	case f.updates <- u:
	case <-f.done:
	}
}
