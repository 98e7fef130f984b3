package domain

// StatusKind is the derived temporal status of a reminder.
// It is never stored: "today" moves, so it must be recomputed on read.
type StatusKind string

const (
	// StatusFinished: checklist non-empty and fully done. Completion
	// overrides the deadline entirely; a finished reminder is never overdue.
	StatusFinished StatusKind = "finished"
	// StatusNone: no deadline, nothing to be on time for.
	StatusNone StatusKind = "none"
	// StatusOverdue: deadline is in the past.
	StatusOverdue StatusKind = "overdue"
	// StatusDueSoon: deadline is today or tomorrow.
	StatusDueSoon StatusKind = "dueSoon"
	// StatusOnTrack: deadline is two or more days away.
	StatusOnTrack StatusKind = "onTrack"
)

// ParseStatusKind validates a status filter value from the API.
func ParseStatusKind(s string) (StatusKind, bool) {
	switch StatusKind(s) {
	case StatusFinished, StatusNone, StatusOverdue, StatusDueSoon, StatusOnTrack:
		return StatusKind(s), true
	}
	return "", false
}

// Classify derives the status of a reminder from its deadline and
// checklist, relative to the given day. Precedence: finished beats any
// deadline; absent deadline means no temporal status.
func Classify(deadline *Date, checklist []ChecklistItem, today Date) StatusKind {
	if len(checklist) > 0 && allDone(checklist) {
		return StatusFinished
	}
	if deadline == nil || deadline.IsZero() {
		return StatusNone
	}
	switch days := DaysBetween(today, *deadline); {
	case days < 0:
		return StatusOverdue
	case days <= 1:
		return StatusDueSoon
	default:
		return StatusOnTrack
	}
}

// Status is Classify applied to a reminder record.
func (r *Reminder) Status(today Date) StatusKind {
	return Classify(r.Deadline, r.Checklist, today)
}

func allDone(checklist []ChecklistItem) bool {
	for _, item := range checklist {
		if !item.Done {
			return false
		}
	}
	return true
}
