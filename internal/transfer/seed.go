package transfer

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/muralboard/mural/internal/domain"
)

// Loader reads a YAML seed file describing an initial board. Applied at
// startup only when the persisted board is empty, so a seed never
// overwrites real data.
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

type seedDoc struct {
	ProjectName string         `yaml:"projectName"`
	Categories  []seedCategory `yaml:"categories"`
	Reminders   []seedReminder `yaml:"reminders"`
}

type seedCategory struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type seedReminder struct {
	Title             string   `yaml:"title"`
	Description       string   `yaml:"description"`
	Deadline          string   `yaml:"deadline"` // YYYY-MM-DD
	Color             string   `yaml:"color"`
	Category          string   `yaml:"category"` // by name
	Notes             string   `yaml:"notes"`
	Checklist         []string `yaml:"checklist"`
	ChecklistTemplate bool     `yaml:"checklistTemplate"`
	RecurrenceDays    []int    `yaml:"recurrenceDays"`
	Pinned            bool     `yaml:"pinned"`
	Favorite          bool     `yaml:"favorite"`
	Archived          bool     `yaml:"archived"`
}

// Load reads and maps the seed file to a bundle. Like import, a seed is
// all-or-nothing: any malformed entry rejects the whole file.
func (l *Loader) Load(now time.Time) (*Bundle, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var doc seedDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	b := &Bundle{ProjectName: doc.ProjectName}

	categoryIDs := make(map[string]string, len(doc.Categories))
	for _, sc := range doc.Categories {
		if sc.Name == "" {
			return nil, fmt.Errorf("seed category with empty name")
		}
		c := &domain.Category{
			ID:    uuid.NewString(),
			Name:  sc.Name,
			Color: sc.Color,
		}
		categoryIDs[sc.Name] = c.ID
		b.Categories = append(b.Categories, c)
	}

	for i, sr := range doc.Reminders {
		if sr.Title == "" {
			return nil, fmt.Errorf("seed reminder %d has no title", i)
		}

		r := &domain.Reminder{
			ID:                uuid.NewString(),
			Title:             sr.Title,
			Description:       sr.Description,
			Color:             sr.Color,
			Notes:             sr.Notes,
			RecurrenceDays:    sr.RecurrenceDays,
			ChecklistTemplate: sr.ChecklistTemplate,
			Pinned:            sr.Pinned,
			Favorite:          sr.Favorite,
			Archived:          sr.Archived,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if sr.Deadline != "" {
			d, err := domain.ParseDate(sr.Deadline)
			if err != nil {
				return nil, fmt.Errorf("seed reminder %q: %w", sr.Title, err)
			}
			r.Deadline = &d
		}

		if sr.Category != "" {
			id, ok := categoryIDs[sr.Category]
			if !ok {
				return nil, fmt.Errorf("seed reminder %q references unknown category %q", sr.Title, sr.Category)
			}
			r.CategoryID = id
		}

		for _, text := range sr.Checklist {
			r.Checklist = append(r.Checklist, domain.ChecklistItem{
				ID:   uuid.NewString(),
				Text: text,
			})
		}

		b.Reminders = append(b.Reminders, r)
	}

	return b, nil
}
