package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/muralboard/mural/internal/domain"
)

func TestSweepUnarchive(t *testing.T) {
	t.Parallel()

	today := domain.NewDate(2025, time.June, 20)
	dueToday := today
	duePast := today.AddDays(-3)
	dueFuture := today.AddDays(2)

	incomplete := []domain.ChecklistItem{
		{ID: "a", Text: "step one", Done: true},
		{ID: "b", Text: "step two", Done: false},
	}
	complete := []domain.ChecklistItem{
		{ID: "a", Text: "step one", Done: true},
	}

	all := []*domain.Reminder{
		{ID: "due-incomplete", Archived: true, Deadline: &dueToday, Checklist: incomplete},
		{ID: "due-empty", Archived: true, Deadline: &duePast},
		{ID: "due-complete", Archived: true, Deadline: &dueToday, Checklist: complete},
		{ID: "future", Archived: true, Deadline: &dueFuture},
		{ID: "no-deadline", Archived: true},
		{ID: "not-archived", Archived: false, Deadline: &duePast},
	}

	ids := domain.SweepUnarchive(all, today)
	assert.ElementsMatch(t, []string{"due-incomplete", "due-empty"}, ids)
}

func TestSweepUnarchiveEmptyBoard(t *testing.T) {
	t.Parallel()

	assert.Empty(t, domain.SweepUnarchive(nil, domain.NewDate(2025, time.June, 20)))
}

// The sweep is stateless: re-archiving a swept reminder makes it eligible
// again on the next pass, with no "already seen" special case.
func TestSweepUnarchiveReevaluates(t *testing.T) {
	t.Parallel()

	today := domain.NewDate(2025, time.June, 20)
	due := today.AddDays(-1)
	r := &domain.Reminder{ID: "cycling", Archived: true, Deadline: &due}

	ids := domain.SweepUnarchive([]*domain.Reminder{r}, today)
	assert.Equal(t, []string{"cycling"}, ids)

	// User unarchives... then re-archives. Next sweep picks it up again.
	r.Archived = false
	assert.Empty(t, domain.SweepUnarchive([]*domain.Reminder{r}, today))

	r.Archived = true
	ids = domain.SweepUnarchive([]*domain.Reminder{r}, today.AddDays(1))
	assert.Equal(t, []string{"cycling"}, ids)
}

// A template is only swept when it matches the predicate itself; having
// recurrence days does not exempt it, nor does it make it eligible.
func TestSweepUnarchiveTemplates(t *testing.T) {
	t.Parallel()

	today := domain.NewDate(2025, time.June, 20)
	due := today.AddDays(-1)

	templateNoDeadline := &domain.Reminder{ID: "tmpl-a", Archived: true, RecurrenceDays: []int{1}}
	templateDue := &domain.Reminder{ID: "tmpl-b", Archived: true, RecurrenceDays: []int{1}, Deadline: &due}

	ids := domain.SweepUnarchive([]*domain.Reminder{templateNoDeadline, templateDue}, today)
	assert.Equal(t, []string{"tmpl-b"}, ids)
}
