package domain

import (
	"regexp"
	"time"
)

// Reminder is a single card on the board.
type Reminder struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is a uuid v4, assigned at creation.
	ID string `json:"id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	Title       string `json:"title"`
	Description string `json:"description"`

	// Deadline is the optional due date, day-granular.
	Deadline *Date `json:"deadline,omitempty"`

	// Color is the display accent, e.g. "blue". Carried verbatim.
	Color string `json:"color,omitempty"`

	// Checklist is ordered; the order itself is user data (drag-reorderable).
	Checklist []ChecklistItem `json:"checklist,omitempty"`

	Comments []Comment `json:"comments,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	Snippets []Snippet `json:"snippets,omitempty"`

	// CategoryID is a weak reference. Deleting the category unsets it.
	CategoryID string `json:"categoryId,omitempty"`

	// ─────────────────────────────
	// Flags (independent, any combination valid)
	// ─────────────────────────────

	Archived bool `json:"archived"`
	Pinned   bool `json:"pinned"`
	Favorite bool `json:"favorite"`

	// ─────────────────────────────
	// Recurrence
	// ─────────────────────────────

	// RecurrenceDays holds weekday indices 0=Sunday..6=Saturday.
	// Non-empty makes this reminder a template for generated occurrences.
	RecurrenceDays []int `json:"recurrenceDays,omitempty"`

	// ChecklistTemplate copies the checklist (with Done reset) onto
	// generated occurrences instead of starting them empty.
	ChecklistTemplate bool `json:"checklistTemplate,omitempty"`

	// GeneratedByRecurrence marks machine-spawned instances.
	GeneratedByRecurrence bool `json:"generatedByRecurrence,omitempty"`

	// GeneratedFrom is the spawning template's ID. Together with Deadline
	// it forms the dedupe key: at most one occurrence per (template, day).
	GeneratedFrom string `json:"generatedFrom,omitempty"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChecklistItem is one entry of a reminder's checklist.
type ChecklistItem struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Done        bool       `json:"done"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Comment is a dated note attached to a reminder.
type Comment struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
	Edited bool      `json:"edited,omitempty"`
}

// Snippet is a titled code fragment attached to a reminder.
type Snippet struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Category groups reminders for filtering. No ownership semantics.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// IsTemplate reports whether this reminder spawns recurring occurrences.
func (r *Reminder) IsTemplate() bool {
	return len(r.RecurrenceDays) > 0
}

// ChecklistProgress returns done/total, 0 when the checklist is empty.
func (r *Reminder) ChecklistProgress() float64 {
	if len(r.Checklist) == 0 {
		return 0
	}
	done := 0
	for _, item := range r.Checklist {
		if item.Done {
			done++
		}
	}
	return float64(done) / float64(len(r.Checklist))
}

// ChecklistComplete reports a non-empty checklist with every item done.
func (r *Reminder) ChecklistComplete() bool {
	if len(r.Checklist) == 0 {
		return false
	}
	for _, item := range r.Checklist {
		if !item.Done {
			return false
		}
	}
	return true
}

var hashtagRe = regexp.MustCompile(`#(\w+)`)

// Hashtags extracts #word tokens from the description, in order of
// appearance. Display tagging only; nothing is indexed on these.
func (r *Reminder) Hashtags() []string {
	matches := hashtagRe.FindAllStringSubmatch(r.Description, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// Clone returns a deep copy. Board reads hand out clones so that HTTP
// handlers and schedulers never share mutable state.
func (r *Reminder) Clone() *Reminder {
	c := *r
	if r.Deadline != nil {
		d := *r.Deadline
		c.Deadline = &d
	}
	if r.Checklist != nil {
		c.Checklist = make([]ChecklistItem, len(r.Checklist))
		copy(c.Checklist, r.Checklist)
		for i, item := range r.Checklist {
			if item.CompletedAt != nil {
				t := *item.CompletedAt
				c.Checklist[i].CompletedAt = &t
			}
		}
	}
	if r.Comments != nil {
		c.Comments = make([]Comment, len(r.Comments))
		copy(c.Comments, r.Comments)
	}
	if r.Snippets != nil {
		c.Snippets = make([]Snippet, len(r.Snippets))
		copy(c.Snippets, r.Snippets)
	}
	if r.RecurrenceDays != nil {
		c.RecurrenceDays = make([]int, len(r.RecurrenceDays))
		copy(c.RecurrenceDays, r.RecurrenceDays)
	}
	return &c
}
