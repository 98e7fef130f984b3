package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muralboard/mural/internal/domain"
)

// 2025-06-16 is a Monday.
func monday() domain.Date { return domain.NewDate(2025, time.June, 16) }

func standupTemplate() *domain.Reminder {
	return &domain.Reminder{
		ID:             "tmpl-standup",
		Title:          "Standup",
		Description:    "Prepare notes #team",
		Color:          "blue",
		CategoryID:     "cat-work",
		RecurrenceDays: []int{1}, // Mondays
	}
}

func TestGenerateOccurrencesSpawnsOnMatchingWeekday(t *testing.T) {
	t.Parallel()

	all := []*domain.Reminder{standupTemplate()}

	created := domain.GenerateOccurrences(all, monday())
	require.Len(t, created, 1)

	occ := created[0]
	assert.NotEmpty(t, occ.ID)
	assert.NotEqual(t, "tmpl-standup", occ.ID)
	assert.Equal(t, "Standup", occ.Title)
	assert.Equal(t, "Prepare notes #team", occ.Description)
	assert.Equal(t, "blue", occ.Color)
	assert.Equal(t, "cat-work", occ.CategoryID)
	assert.True(t, occ.GeneratedByRecurrence)
	assert.Equal(t, "tmpl-standup", occ.GeneratedFrom)
	require.NotNil(t, occ.Deadline)
	assert.True(t, occ.Deadline.Equal(monday()))
	assert.Empty(t, occ.Checklist)
	assert.Empty(t, occ.RecurrenceDays, "occurrences are not templates themselves")
}

func TestGenerateOccurrencesSkipsOtherWeekdays(t *testing.T) {
	t.Parallel()

	tmpl := standupTemplate()
	tmpl.RecurrenceDays = []int{1, 3} // Mon, Wed

	for offset := 0; offset < 7; offset++ {
		day := monday().AddDays(offset)
		created := domain.GenerateOccurrences([]*domain.Reminder{tmpl}, day)
		if day.Weekday() == 1 || day.Weekday() == 3 {
			assert.Len(t, created, 1, "expected a spawn on weekday %d", day.Weekday())
		} else {
			assert.Empty(t, created, "expected no spawn on weekday %d", day.Weekday())
		}
	}
}

func TestGenerateOccurrencesIdempotent(t *testing.T) {
	t.Parallel()

	all := []*domain.Reminder{standupTemplate()}

	first := domain.GenerateOccurrences(all, monday())
	require.Len(t, first, 1)

	// Merge the output back and run again with the same reference date.
	all = append(all, first...)
	second := domain.GenerateOccurrences(all, monday())
	assert.Empty(t, second)
}

func TestGenerateOccurrencesNewDayNewOccurrence(t *testing.T) {
	t.Parallel()

	all := []*domain.Reminder{standupTemplate()}
	first := domain.GenerateOccurrences(all, monday())
	require.Len(t, first, 1)
	all = append(all, first...)

	nextMonday := monday().AddDays(7)
	second := domain.GenerateOccurrences(all, nextMonday)
	require.Len(t, second, 1)
	assert.True(t, second[0].Deadline.Equal(nextMonday))
}

func TestGenerateOccurrencesIgnoresNonTemplates(t *testing.T) {
	t.Parallel()

	all := []*domain.Reminder{
		{ID: "plain", Title: "Buy milk"},
		{ID: "empty-days", Title: "No days", RecurrenceDays: []int{}},
	}
	assert.Empty(t, domain.GenerateOccurrences(all, monday()))
}

func TestGenerateOccurrencesMalformedWeekdaysProduceNothing(t *testing.T) {
	t.Parallel()

	tmpl := standupTemplate()
	tmpl.RecurrenceDays = []int{-1, 7, 42}

	for offset := 0; offset < 7; offset++ {
		created := domain.GenerateOccurrences([]*domain.Reminder{tmpl}, monday().AddDays(offset))
		assert.Empty(t, created)
	}
}

func TestGenerateOccurrencesMixedValidAndMalformedDays(t *testing.T) {
	t.Parallel()

	tmpl := standupTemplate()
	tmpl.RecurrenceDays = []int{9, 1, -3}

	created := domain.GenerateOccurrences([]*domain.Reminder{tmpl}, monday())
	assert.Len(t, created, 1, "valid entries still select among malformed ones")
}

func TestGenerateOccurrencesChecklistTemplate(t *testing.T) {
	t.Parallel()

	completedAt := time.Date(2025, time.June, 9, 10, 0, 0, 0, time.UTC)
	tmpl := standupTemplate()
	tmpl.ChecklistTemplate = true
	tmpl.Checklist = []domain.ChecklistItem{
		{ID: "c1", Text: "collect blockers", Done: true, CompletedAt: &completedAt},
		{ID: "c2", Text: "update board", Done: false},
	}

	created := domain.GenerateOccurrences([]*domain.Reminder{tmpl}, monday())
	require.Len(t, created, 1)

	checklist := created[0].Checklist
	require.Len(t, checklist, 2)
	for i, item := range checklist {
		assert.Equal(t, tmpl.Checklist[i].Text, item.Text)
		assert.False(t, item.Done, "done state resets on spawn")
		assert.Nil(t, item.CompletedAt)
		assert.NotEqual(t, tmpl.Checklist[i].ID, item.ID, "checklist items get fresh ids")
	}
}

func TestGenerateOccurrencesDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	tmpl := standupTemplate()
	all := []*domain.Reminder{tmpl, {ID: "plain", Title: "Buy milk"}}

	_ = domain.GenerateOccurrences(all, monday())

	assert.Len(t, all, 2)
	assert.Equal(t, "tmpl-standup", tmpl.ID)
	assert.False(t, tmpl.GeneratedByRecurrence)
	assert.Nil(t, tmpl.Deadline)
}

func TestGenerateOccurrencesMultipleTemplatesSameDay(t *testing.T) {
	t.Parallel()

	other := standupTemplate()
	other.ID = "tmpl-review"
	other.Title = "Review PRs"

	created := domain.GenerateOccurrences([]*domain.Reminder{standupTemplate(), other}, monday())
	require.Len(t, created, 2)
	assert.NotEqual(t, created[0].ID, created[1].ID)
}

// Dedup is keyed on (template, day): an occurrence of another template on
// the same day must not suppress this template's spawn.
func TestGenerateOccurrencesDedupKeyIsPerTemplate(t *testing.T) {
	t.Parallel()

	day := monday()
	foreign := &domain.Reminder{
		ID:            "occ-foreign",
		Title:         "Review PRs",
		GeneratedFrom: "tmpl-review",
		Deadline:      &day,
	}

	created := domain.GenerateOccurrences([]*domain.Reminder{standupTemplate(), foreign}, day)
	assert.Len(t, created, 1)
}
