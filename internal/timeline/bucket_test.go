package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/memochat/internal/models"
)

func memoAt(id string, t time.Time) models.Memo {
	return models.Memo{ID: id, Content: "memo " + id, CreatedAt: t}
}

func TestGroupByDay_Empty(t *testing.T) {
	groups := GroupByDay(nil)
	assert.Empty(t, groups)

	groups = GroupByDay([]models.Memo{})
	assert.Empty(t, groups)
}

func TestGroupByDay_SingleLinearPass(t *testing.T) {
	day1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	day2 := time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local)

	memos := []models.Memo{
		memoAt("a", day1),
		memoAt("b", day1.Add(time.Hour)),
		memoAt("c", day2),
	}

	groups := GroupByDay(memos)
	require.Len(t, groups, 2)

	assert.Equal(t, "2024-01-01", groups[0].Day)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "2024-01-02", groups[1].Day)
	assert.Len(t, groups[1].Items, 1)
}

// Регруппировка без потерь: склейка групп восстанавливает исходную
// последовательность без изменений.
func TestGroupByDay_LosslessRegrouping(t *testing.T) {
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)

	var memos []models.Memo
	for i := 0; i < 20; i++ {
		// Примерно по 3 записи на день
		memos = append(memos, memoAt(string(rune('a'+i)), base.Add(time.Duration(i)*8*time.Hour)))
	}

	groups := GroupByDay(memos)

	var flattened []models.Memo
	for _, g := range groups {
		flattened = append(flattened, g.Items...)
	}

	require.Equal(t, memos, flattened)
}

// Запись в 23:59:59.999 и запись в 00:00:00.000 следующего дня попадают
// в разные дневные группы.
func TestGroupByDay_MidnightBoundary(t *testing.T) {
	lastMs := time.Date(2024, 1, 1, 23, 59, 59, int(999*time.Millisecond), time.Local)
	midnight := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)

	groups := GroupByDay([]models.Memo{
		memoAt("a", lastMs),
		memoAt("b", midnight),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "2024-01-01", groups[0].Day)
	assert.Equal(t, "2024-01-02", groups[1].Day)
}

func TestWeekStart_AlwaysMondayMidnight(t *testing.T) {
	// 2024-01-01 - понедельник
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	for offset := 0; offset < 14; offset++ {
		d := monday.AddDate(0, 0, offset).Add(15 * time.Hour)

		start := WeekStart(d)
		end := WeekEnd(d)

		assert.Equal(t, time.Monday, start.Weekday(), "weekStart(%s)", d)
		assert.Equal(t, 0, start.Hour())
		assert.Equal(t, 0, start.Minute())
		assert.Equal(t, 0, start.Second())
		assert.Equal(t, 0, start.Nanosecond())

		// weekStart(d) <= d <= weekEnd(d)
		assert.True(t, InWeek(d, start, end), "date %s must be inside its own week", d)

		// Неделя длится ровно 6 дней 23:59:59.999
		assert.Equal(t, 6*24*time.Hour+23*time.Hour+59*time.Minute+59*time.Second+999*time.Millisecond,
			end.Sub(start))
	}
}

func TestWeekStart_SundayBelongsToPreviousMonday(t *testing.T) {
	// 2024-01-07 - воскресенье: неделя началась 6 дней раньше
	sunday := time.Date(2024, 1, 7, 12, 0, 0, 0, time.Local)

	start := WeekStart(sunday)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), start)
}

func TestGroupByWeek_Empty(t *testing.T) {
	assert.Empty(t, GroupByWeek(nil))
}

// Записи с пн 2024-01-01 по вс 2024-01-07 - один bucket с началом
// 2024-01-01; запись в пн 2024-01-08 открывает новый bucket.
func TestGroupByWeek_OneBucketPerCalendarWeek(t *testing.T) {
	var times []time.Time
	for day := 1; day <= 7; day++ {
		times = append(times, time.Date(2024, 1, day, 12, 0, 0, 0, time.Local))
	}
	times = append(times, time.Date(2024, 1, 8, 9, 0, 0, 0, time.Local))

	buckets := GroupByWeek(times)
	require.Len(t, buckets, 2)

	// Новые недели первыми
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.Local), buckets[0].WeekStart)
	assert.Equal(t, 1, buckets[0].MemoCount)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), buckets[1].WeekStart)
	assert.Equal(t, 7, buckets[1].MemoCount)
	assert.Equal(t, "2024-01-01 ~ 2024-01-07", buckets[1].Label)
}

// Порядок входа не влияет на результат группировки по неделям.
func TestGroupByWeek_OrderIndependent(t *testing.T) {
	asc := []time.Time{
		time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local),
		time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local),
		time.Date(2024, 1, 10, 8, 0, 0, 0, time.Local),
	}
	desc := []time.Time{asc[2], asc[1], asc[0]}

	assert.Equal(t, GroupByWeek(asc), GroupByWeek(desc))
}

func TestInWeek_InclusiveBounds(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	end := WeekEnd(start)

	assert.True(t, InWeek(start, start, end))
	assert.True(t, InWeek(end, start, end))
	assert.False(t, InWeek(start.Add(-time.Millisecond), start, end))
	assert.False(t, InWeek(end.Add(time.Millisecond), start, end))
}
