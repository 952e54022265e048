package timeline

import (
	"sort"
	"time"

	"github.com/iudanet/memochat/internal/models"
)

const dayKeyLayout = "2006-01-02"

// DayGroup - записи одного календарного дня в порядке возрастания created_at.
type DayGroup struct {
	Day   string // ключ дня в формате YYYY-MM-DD (локальная таймзона)
	Items []models.Memo
}

// DayKey возвращает ключ календарного дня для метки времени.
func DayKey(t time.Time) string {
	return t.Local().Format(dayKeyLayout)
}

// GroupByDay группирует отсортированный по возрастанию created_at список
// записей в последовательность дневных групп. Один линейный проход, O(n).
// Функция не сортирует вход: порядок внутри групп и порядок самих групп
// полностью определяются порядком входа.
func GroupByDay(memos []models.Memo) []DayGroup {
	var groups []DayGroup

	for _, m := range memos {
		day := DayKey(m.CreatedAt)
		if len(groups) == 0 || groups[len(groups)-1].Day != day {
			groups = append(groups, DayGroup{Day: day})
		}
		last := &groups[len(groups)-1]
		last.Items = append(last.Items, m)
	}

	return groups
}

// WeekStart возвращает начало недели (понедельник, 00:00:00.000) для даты.
// Для воскресенья неделя началась 6 дней назад, для остальных дней -
// (weekday - 1) дней назад.
func WeekStart(t time.Time) time.Time {
	t = t.Local()

	back := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		back = 6
	}

	y, m, d := t.AddDate(0, 0, -back).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekEnd возвращает конец недели (воскресенье, 23:59:59.999) для даты.
func WeekEnd(t time.Time) time.Time {
	start := WeekStart(t)
	return start.AddDate(0, 0, 6).
		Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)
}

// InWeek проверяет принадлежность метки времени неделе по инклюзивному
// интервалу [start, end]. Обе границы включаются.
func InWeek(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// WeekBucket - агрегат по одной календарной неделе для архивного отчёта.
// Содержит только количество записей: содержимое недели выгружается
// отдельным запросом при экспорте.
type WeekBucket struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Label     string
	MemoCount int
}

// WeekLabel возвращает человекочитаемую подпись недели.
func WeekLabel(start, end time.Time) string {
	return start.Format(dayKeyLayout) + " ~ " + end.Format(dayKeyLayout)
}

// GroupByWeek агрегирует метки времени в недельные bucket-ы с количеством
// записей на неделю. Порядок входа не важен (аккумуляция по ключу начала
// недели); результат отсортирован от новых недель к старым.
func GroupByWeek(times []time.Time) []WeekBucket {
	byStart := make(map[string]*WeekBucket)

	for _, t := range times {
		start := WeekStart(t)
		key := DayKey(start)

		if b, ok := byStart[key]; ok {
			b.MemoCount++
			continue
		}

		end := WeekEnd(t)
		byStart[key] = &WeekBucket{
			WeekStart: start,
			WeekEnd:   end,
			Label:     WeekLabel(start, end),
			MemoCount: 1,
		}
	}

	buckets := make([]WeekBucket, 0, len(byStart))
	for _, b := range byStart {
		buckets = append(buckets, *b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].WeekStart.After(buckets[j].WeekStart)
	})

	return buckets
}
