package timeline

import "github.com/iudanet/memochat/internal/models"

// DefaultPageSize - размер страницы догрузки истории.
const DefaultPageSize = 50

// Cursor отслеживает состояние постраничной догрузки истории назад во
// времени. Сами данные он не хранит: Feed запрашивает у backend страницу
// "created_at строго меньше самой старой видимой записи" (DESC, limit =
// pageSize), разворачивает её по возрастанию и выполняет Prepend.
//
// Строгое "<" исключает повторную выборку граничной записи. Записи,
// делящие одну метку времени с граничной, при этом могут быть пропущены -
// backend обязан обеспечивать уникальность меток либо детерминированный
// вторичный порядок (см. DESIGN.md).
type Cursor struct {
	pageSize  int
	loading   bool
	exhausted bool
}

// NewCursor создает cursor с заданным размером страницы.
// Неположительный размер заменяется на DefaultPageSize.
func NewCursor(pageSize int) *Cursor {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Cursor{pageSize: pageSize}
}

// PageSize возвращает фиксированный размер страницы.
func (c *Cursor) PageSize() int {
	return c.pageSize
}

// CanLoad проверяет предусловия loadMore: запрос не в полёте, история не
// исчерпана и список не пуст (иначе нет граничной записи для курсора).
func (c *Cursor) CanLoad(listLen int) bool {
	return !c.loading && !c.exhausted && listLen > 0
}

// Begin помечает начало загрузки страницы. Возвращает false, если
// предусловия не выполнены - повторные вызовы во время полёта игнорируются.
func (c *Cursor) Begin(listLen int) bool {
	if !c.CanLoad(listLen) {
		return false
	}
	c.loading = true
	return true
}

// Finish завершает загрузку. Страница короче pageSize - терминальный сигнал:
// более старых записей нет, дальнейшие loadMore отключаются до Reset.
func (c *Cursor) Finish(pageLen int) {
	c.loading = false
	if pageLen < c.pageSize {
		c.exhausted = true
	}
}

// Abort завершает неудавшуюся загрузку без изменения признака исчерпания.
func (c *Cursor) Abort() {
	c.loading = false
}

// Loading сообщает, выполняется ли загрузка страницы.
func (c *Cursor) Loading() bool {
	return c.loading
}

// Exhausted сообщает, исчерпана ли история.
func (c *Cursor) Exhausted() bool {
	return c.exhausted
}

// Reset сбрасывает cursor (полная перезагрузка или смена пользователя).
func (c *Cursor) Reset() {
	c.loading = false
	c.exhausted = false
}

// Ascending возвращает копию страницы в порядке возрастания created_at.
// Backend отдаёт страницы по убыванию; перед Prepend их нужно развернуть.
func Ascending(page []models.Memo) []models.Memo {
	out := make([]models.Memo, len(page))
	for i, m := range page {
		out[len(page)-1-i] = m
	}
	return out
}
