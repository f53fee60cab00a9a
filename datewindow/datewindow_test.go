package datewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Saturday
var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func TestTodayWindowEdges(t *testing.T) {
	w := For(Today, now)

	assert.True(t, w.Contains(time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 6, 16, 0, 0, 1, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 6, 14, 23, 59, 59, 0, time.UTC)))
}

func TestYesterdayWindow(t *testing.T) {
	w := For(Yesterday, now)

	assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), w.End)
	assert.False(t, w.Contains(now))
}

func TestWeekStartsMonday(t *testing.T) {
	w := For(ThisWeek, now)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Weekday(0), w.End.Weekday())
	assert.True(t, w.Contains(time.Date(2024, 6, 16, 23, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)))

	sunday := time.Date(2024, 6, 16, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))

	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, StartOfWeek(monday))

	assert.Equal(t, w, For(Week, now), "week is an alias of thisWeek")
}

func TestLastWeekWindow(t *testing.T) {
	w := For(LastWeek, now)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), w.Start)
	assert.True(t, w.Contains(time.Date(2024, 6, 9, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))
}

func TestOverdueIsStrictlyBeforeNow(t *testing.T) {
	w := For(Overdue, now)
	assert.True(t, w.Contains(now.Add(-time.Second)))
	assert.False(t, w.Contains(now))
	assert.False(t, w.Contains(now.Add(time.Second)))
}

func TestUnknownTokensAreUnbounded(t *testing.T) {
	for _, tok := range []Token{All, "", "fortnight"} {
		w := For(tok, now)
		assert.True(t, w.IsUnbounded(), "token %q", tok)
		assert.True(t, w.Contains(time.Time{}))
	}
}

func TestWindowFollowsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2024, 6, 15, 22, 0, 0, 0, loc)

	w := For(Today, local)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, loc), w.Start)
	// 02:00 UTC on the 16th is still the 15th in loc
	assert.True(t, w.Contains(time.Date(2024, 6, 16, 2, 0, 0, 0, time.UTC)))
}

func TestLabelPriority(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		text    string
		variant Variant
	}{
		{"earlier today is today not overdue", now.Add(-2 * time.Hour), "Today", VariantWarning},
		{"later today", now.Add(5 * time.Hour), "Today", VariantWarning},
		{"tomorrow", now.AddDate(0, 0, 1), "Tomorrow", VariantInfo},
		{"past", now.AddDate(0, 0, -3), "Overdue", VariantDanger},
		{"absolute", time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC), "Jul 4", VariantDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LabelFor(tt.date, now)
			assert.Equal(t, tt.text, got.Text)
			assert.Equal(t, tt.variant, got.Variant)
		})
	}
}

func TestLabelThisWeek(t *testing.T) {
	monday := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	thursday := time.Date(2024, 6, 13, 9, 0, 0, 0, time.UTC)

	got := LabelFor(thursday, monday)
	assert.Equal(t, "This week", got.Text)
}
