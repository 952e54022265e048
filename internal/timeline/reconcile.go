package timeline

import (
	"errors"
	"strings"
	"time"

	"github.com/iudanet/memochat/internal/models"
)

// ErrEmptyContent возвращается при попытке отправить пустую (после trim) запись.
var ErrEmptyContent = errors.New("memo content is empty")

// Reconciler владеет in-memory списком записей и сводит три несогласованных
// источника событий к одному консистентному списку:
//   - локальный optimistic append (Submit);
//   - ответ прямой записи (Confirm / Reject);
//   - push-уведомление о новой строке (ApplyInsert).
//
// Жизненный цикл одной логической записи: Submit -> AwaitingConfirmation ->
// Confirmed | Rejected. Push и прямой ответ могут приходить в любом порядке,
// итог всегда ровно одна запись с серверным id.
//
// Reconciler не потокобезопасен: единственный владелец - event loop (Feed),
// который обрабатывает события строго по одному.
type Reconciler struct {
	memos   []models.Memo
	pending map[string]string   // temp id -> исходный текст
	seen    map[string]struct{} // серверные id, уже присутствующие в списке
}

// NewReconciler создает пустой reconciler.
func NewReconciler() *Reconciler {
	r := &Reconciler{}
	r.Reset(nil)
	return r
}

// Reset заменяет список записей (полная перезагрузка или смена пользователя).
// Все незавершённые optimistic записи при этом отбрасываются.
func (r *Reconciler) Reset(memos []models.Memo) {
	r.memos = append([]models.Memo(nil), memos...)
	r.pending = make(map[string]string)
	r.seen = make(map[string]struct{}, len(memos))
	for _, m := range memos {
		r.seen[m.ID] = struct{}{}
	}
}

// Submit выполняет optimistic append: запись с временным id и клиентским
// временем добавляется в хвост списка до подтверждения сервером.
// Хвостовая вставка сохраняет сортировку, т.к. живые записи всегда новее
// уже загруженной истории.
func (r *Reconciler) Submit(content string, now time.Time) (models.Memo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Memo{}, ErrEmptyContent
	}

	memo := models.Memo{
		ID:        models.NewTempID(),
		Content:   content,
		CreatedAt: now,
	}

	r.memos = append(r.memos, memo)
	r.pending[memo.ID] = content
	r.seen[memo.ID] = struct{}{}

	return memo, nil
}

// Confirm обрабатывает успешный ответ прямой записи: временная запись
// удаляется, серверная строка вставляется в хвост - если только она уже не
// пришла раньше по push-каналу. Оба порядка прибытия сходятся к ровно одной
// записи. Возвращает true, если серверная строка была вставлена сейчас.
func (r *Reconciler) Confirm(tempID string, row models.Memo) bool {
	r.dropEntry(tempID)
	delete(r.pending, tempID)

	if _, dup := r.seen[row.ID]; dup {
		return false
	}

	r.memos = append(r.memos, row)
	r.seen[row.ID] = struct{}{}
	return true
}

// Reject откатывает неудавшуюся запись: временная запись удаляется целиком,
// исходный текст возвращается для восстановления в поле ввода.
// Состояние терминальное - повторная отправка требует нового Submit.
func (r *Reconciler) Reject(tempID string) (string, bool) {
	content, ok := r.pending[tempID]
	if !ok {
		return "", false
	}

	r.dropEntry(tempID)
	delete(r.pending, tempID)
	return content, true
}

// ApplyInsert обрабатывает push-уведомление о вставленной строке.
// Доставка at-least-once: повтор для уже известного id - no-op.
// Возвращает true, если запись была добавлена.
func (r *Reconciler) ApplyInsert(row models.Memo) bool {
	if _, dup := r.seen[row.ID]; dup {
		return false
	}

	r.memos = append(r.memos, row)
	r.seen[row.ID] = struct{}{}
	return true
}

// Prepend добавляет страницу более старой истории в начало списка.
// Страница должна быть уже отсортирована по возрастанию created_at.
// Записи с уже известными id пропускаются, чтобы сохранить уникальность id
// в материализованном списке. Возвращает количество добавленных записей.
func (r *Reconciler) Prepend(page []models.Memo) int {
	fresh := make([]models.Memo, 0, len(page))
	for _, m := range page {
		if _, dup := r.seen[m.ID]; dup {
			continue
		}
		fresh = append(fresh, m)
		r.seen[m.ID] = struct{}{}
	}

	if len(fresh) == 0 {
		return 0
	}

	r.memos = append(fresh, r.memos...)
	return len(fresh)
}

// Snapshot возвращает копию списка для read-only потребителей
// (рендеринг, группировка, экспорт).
func (r *Reconciler) Snapshot() []models.Memo {
	return append([]models.Memo(nil), r.memos...)
}

// Len возвращает текущую длину списка.
func (r *Reconciler) Len() int {
	return len(r.memos)
}

// Oldest возвращает самую старую видимую запись (голову списка).
func (r *Reconciler) Oldest() (models.Memo, bool) {
	if len(r.memos) == 0 {
		return models.Memo{}, false
	}
	return r.memos[0], true
}

// PendingCount возвращает количество записей, ожидающих подтверждения.
func (r *Reconciler) PendingCount() int {
	return len(r.pending)
}

// dropEntry удаляет запись по id с сохранением порядка остальных.
func (r *Reconciler) dropEntry(id string) {
	for i, m := range r.memos {
		if m.ID == id {
			r.memos = append(r.memos[:i], r.memos[i+1:]...)
			delete(r.seen, id)
			return
		}
	}
}
