package domain

import "github.com/google/uuid"

// GenerateOccurrences computes which templates must spawn a new occurrence
// on the reference day and returns only the newly created reminders.
// The input collection is never mutated.
//
// Idempotence: an occurrence is identified by (GeneratedFrom, Deadline).
// When the collection already holds one for (template, ref), the template
// is skipped, so feeding the output back in and calling again yields nil.
func GenerateOccurrences(all []*Reminder, ref Date) []*Reminder {
	weekday := ref.Weekday()

	var created []*Reminder
	for _, tmpl := range all {
		if !tmpl.IsTemplate() {
			continue
		}
		if !recursOn(tmpl.RecurrenceDays, weekday) {
			continue
		}
		if hasOccurrence(all, tmpl.ID, ref) {
			continue
		}
		created = append(created, spawnOccurrence(tmpl, ref))
	}
	return created
}

// recursOn reports whether weekday is in the template's day set.
// Entries outside 0..6 are ignored: a malformed set selects nothing,
// it is not an error.
func recursOn(days []int, weekday int) bool {
	for _, d := range days {
		if d < 0 || d > 6 {
			continue
		}
		if d == weekday {
			return true
		}
	}
	return false
}

func hasOccurrence(all []*Reminder, templateID string, day Date) bool {
	for _, r := range all {
		if r.GeneratedFrom != templateID {
			continue
		}
		if r.Deadline != nil && r.Deadline.Equal(day) {
			return true
		}
	}
	return false
}

func spawnOccurrence(tmpl *Reminder, day Date) *Reminder {
	deadline := day
	occ := &Reminder{
		ID:                    uuid.NewString(),
		Title:                 tmpl.Title,
		Description:           tmpl.Description,
		Color:                 tmpl.Color,
		CategoryID:            tmpl.CategoryID,
		Deadline:              &deadline,
		GeneratedByRecurrence: true,
		GeneratedFrom:         tmpl.ID,
		CreatedAt:             day.Time(),
		UpdatedAt:             day.Time(),
	}
	if tmpl.ChecklistTemplate && len(tmpl.Checklist) > 0 {
		occ.Checklist = make([]ChecklistItem, len(tmpl.Checklist))
		for i, item := range tmpl.Checklist {
			occ.Checklist[i] = ChecklistItem{
				ID:   uuid.NewString(),
				Text: item.Text,
			}
		}
	}
	return occ
}
