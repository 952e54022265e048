package localdb

import (
	"context"
	"sync"

	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/models"
)

// localSubscription - внутрипроцессная подписка на вставки записей владельца
type localSubscription struct {
	userID  string
	inserts chan models.Memo
	done    chan struct{}
	closing sync.Once

	unregister func()
}

// Compile-time check that localSubscription implements backend.Subscription
var _ backend.Subscription = (*localSubscription)(nil)

// Subscribe регистрирует подписку на вставки записей владельца сессии.
// Уведомления доставляются из InsertMemo того же процесса.
func (s *Store) Subscribe(ctx context.Context, session *backend.Session) (backend.Subscription, error) {
	if session == nil {
		return nil, backend.ErrNoSession
	}

	sub := &localSubscription{
		userID:  session.UserID,
		inserts: make(chan models.Memo, 16),
		done:    make(chan struct{}),
	}

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.subMu.Unlock()

	sub.unregister = func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}

	return sub, nil
}

// broadcast доставляет вставленную запись активным подпискам её владельца.
// Доставка неблокирующая: медленный потребитель теряет уведомление, но
// запись остаётся в базе и придёт при следующем чтении.
func (s *Store) broadcast(memo models.Memo) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, sub := range s.subs {
		if sub.userID != memo.UserID {
			continue
		}
		select {
		case sub.inserts <- memo:
		case <-sub.done:
		default:
			s.logger.Warn("push notification dropped, slow consumer",
				"memo_id", memo.ID)
		}
	}
}

// Inserts возвращает канал вставленных записей
func (sub *localSubscription) Inserts() <-chan models.Memo {
	return sub.inserts
}

// Close снимает подписку
func (sub *localSubscription) Close() error {
	if sub.unregister != nil {
		sub.unregister()
	}
	sub.stop()
	return nil
}

// stop закрывает каналы подписки ровно один раз
func (sub *localSubscription) stop() {
	sub.closing.Do(func() {
		close(sub.done)
		close(sub.inserts)
	})
}
