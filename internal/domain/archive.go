package domain

// SweepUnarchive returns the IDs of archived reminders whose deadline has
// come due (deadline <= today) without their checklist being completed.
// A recurring task whose deadline cycled back should resurface; a fully
// completed archived reminder stays archived.
//
// The predicate is stateless: a reminder unarchived on one sweep and
// re-archived by the user is simply re-evaluated on the next one.
func SweepUnarchive(all []*Reminder, today Date) []string {
	var ids []string
	for _, r := range all {
		if !r.Archived {
			continue
		}
		if r.Deadline == nil || r.Deadline.IsZero() {
			continue
		}
		if r.Deadline.After(today) {
			continue
		}
		if r.ChecklistComplete() {
			continue
		}
		ids = append(ids, r.ID)
	}
	return ids
}
