package quickadd

import (
	"testing"
	"time"

	"github.com/dori/bloc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday afternoon
var now = time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}

func TestParse(t *testing.T) {
	res := Parse("Review PR @work @Code !high due:tomorrow", now)

	assert.Equal(t, "Review PR", res.Title)
	assert.Equal(t, []string{"work", "Code"}, res.Tags)
	assert.Equal(t, model.PriorityHigh, res.Priority)
	require.NotNil(t, res.DueDate)
	assert.Equal(t, day(2024, 6, 13), *res.DueDate)
}

func TestParseDefaults(t *testing.T) {
	res := Parse("  Buy   groceries ", now)
	assert.Equal(t, "Buy groceries", res.Title)
	assert.Empty(t, res.Tags)
	assert.Equal(t, model.PriorityMedium, res.Priority)
	assert.Nil(t, res.DueDate)
}

func TestParseKeepsUnknownMarkers(t *testing.T) {
	res := Parse("Shout ! loudly !!! due:someday @ @home @home", now)
	assert.Equal(t, "Shout ! loudly !!! due:someday @", res.Title)
	assert.Equal(t, []string{"home"}, res.Tags)
	assert.Nil(t, res.DueDate)
}

func TestParsePriorityAliases(t *testing.T) {
	tests := map[string]model.Priority{
		"!l":      model.PriorityLow,
		"!LOW":    model.PriorityLow,
		"!med":    model.PriorityMedium,
		"!hi":     model.PriorityHigh,
		"!urgent": model.PriorityHigh,
	}
	for word, want := range tests {
		t.Run(word, func(t *testing.T) {
			assert.Equal(t, want, Parse("x "+word, now).Priority)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"today", day(2024, 6, 12)},
		{"Tomorrow", day(2024, 6, 13)},
		{"tom", day(2024, 6, 13)},
		{"nextweek", day(2024, 6, 19)},
		{"friday", day(2024, 6, 14)},
		{"wed", day(2024, 6, 19)}, // today is Wednesday, so the next one
		{"mon", day(2024, 6, 17)},
		{"2024-07-01", day(2024, 7, 1)},
		{"07/04/2024", day(2024, 7, 4)},
		{"Jan 2, 2025", day(2025, 1, 2)},
		{"Dec 25", day(2024, 12, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseDate(tt.in, now)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	assert.Nil(t, ParseDate("someday", now))
	assert.Nil(t, ParseDate("", now))
}

func TestInput(t *testing.T) {
	in := Parse("Ship it @release !low", now).Input("p1")
	assert.Equal(t, "Ship it", in.Title)
	assert.Equal(t, "p1", in.ProjectID)
	assert.Equal(t, model.PriorityLow, in.Priority)
	assert.Equal(t, []string{"release"}, in.Tags)
}
