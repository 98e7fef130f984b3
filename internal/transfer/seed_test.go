package transfer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedLoaderLoad(t *testing.T) {
	t.Parallel()

	path := writeSeed(t, `---
projectName: home board
categories:
  - name: chores
    color: green
reminders:
  - title: Water plants
    description: "Balcony and kitchen #home"
    deadline: 2025-06-20
    category: chores
    recurrenceDays: [1, 4]
    checklist:
      - balcony
      - kitchen
    checklistTemplate: true
  - title: One-off errand
    favorite: true
`)

	now := time.Date(2025, time.June, 16, 8, 0, 0, 0, time.UTC)
	bundle, err := NewLoader(path).Load(now)
	require.NoError(t, err)

	assert.Equal(t, "home board", bundle.ProjectName)
	require.Len(t, bundle.Categories, 1)
	require.Len(t, bundle.Reminders, 2)

	plants := bundle.Reminders[0]
	assert.NotEmpty(t, plants.ID)
	assert.Equal(t, bundle.Categories[0].ID, plants.CategoryID, "category resolved by name")
	assert.Equal(t, []int{1, 4}, plants.RecurrenceDays)
	assert.True(t, plants.ChecklistTemplate)
	require.Len(t, plants.Checklist, 2)
	assert.Equal(t, "balcony", plants.Checklist[0].Text)
	assert.False(t, plants.Checklist[0].Done)
	require.NotNil(t, plants.Deadline)
	assert.Equal(t, "2025-06-20", plants.Deadline.String())
	assert.Equal(t, now, plants.CreatedAt)

	errand := bundle.Reminders[1]
	assert.True(t, errand.Favorite)
	assert.Nil(t, errand.Deadline)
}

func TestSeedLoaderRejectsBadFiles(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "reminders: [{"},
		{"reminder without title", "reminders:\n  - description: no title\n"},
		{"unknown category", "reminders:\n  - title: x\n    category: ghost\n"},
		{"bad deadline", "reminders:\n  - title: x\n    deadline: someday\n"},
		{"category without name", "categories:\n  - color: red\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSeed(t, tt.content)
			_, err := NewLoader(path).Load(now)
			assert.Error(t, err)
		})
	}
}

func TestSeedLoaderMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader("/does/not/exist.yaml").Load(time.Now())
	assert.Error(t, err)
}
