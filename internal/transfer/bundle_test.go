package transfer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muralboard/mural/internal/domain"
)

func TestDecodeLegacyBundle(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"nomeProjeto": "meu mural",
		"lembretes": [
			{"id": "r1", "title": "Pay rent", "deadline": "2025-06-20", "favorite": true}
		],
		"categorias": [
			{"id": "c1", "name": "casa"}
		]
	}`)

	b, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "meu mural", b.ProjectName)
	require.Len(t, b.Reminders, 1)
	assert.Equal(t, "r1", b.Reminders[0].ID)
	assert.Equal(t, "Pay rent", b.Reminders[0].Title)
	assert.True(t, b.Reminders[0].Favorite)
	require.NotNil(t, b.Reminders[0].Deadline)
	assert.Equal(t, "2025-06-20", b.Reminders[0].Deadline.String())
	require.Len(t, b.Categories, 1)
	assert.Equal(t, "casa", b.Categories[0].Name)
}

func TestDecodeCurrentBundle(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"projectName": "board",
		"reminders": [{"id": "r1", "title": "a"}],
		"categories": []
	}`)

	b, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "board", b.ProjectName)
	assert.Len(t, b.Reminders, 1)
}

func TestDecodeBareArray(t *testing.T) {
	t.Parallel()

	data := []byte(`[{"id": "r1", "title": "one"}, {"title": "two"}]`)

	b, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, b.ProjectName)
	require.Len(t, b.Reminders, 2)
	assert.Equal(t, "r1", b.Reminders[0].ID)
	assert.NotEmpty(t, b.Reminders[1].ID, "missing ids are filled in")
}

func TestDecodePermissiveDefaults(t *testing.T) {
	t.Parallel()

	// A minimal record: everything defaults, nothing is required but
	// the reminders field itself.
	data := []byte(`{"lembretes": [{"title": "bare"}]}`)

	b, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, b.Reminders, 1)

	r := b.Reminders[0]
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.Archived)
	assert.False(t, r.Favorite)
	assert.Empty(t, r.Checklist)
	assert.Nil(t, r.Deadline)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestDecodeFillsNestedIDs(t *testing.T) {
	t.Parallel()

	data := []byte(`{"lembretes": [{
		"title": "with checklist",
		"checklist": [{"text": "step"}],
		"comments": [{"text": "note"}],
		"snippets": [{"title": "s", "language": "go", "code": "x"}]
	}]}`)

	b, err := Decode(data)
	require.NoError(t, err)
	r := b.Reminders[0]
	assert.NotEmpty(t, r.Checklist[0].ID)
	assert.NotEmpty(t, r.Comments[0].ID)
	assert.NotEmpty(t, r.Snippets[0].ID)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"lembretes": [}`},
		{"empty file", ``},
		{"whitespace only", "  \n  "},
		{"no reminders field", `{"nomeProjeto": "x"}`},
		{"bad deadline", `{"lembretes": [{"title": "x", "deadline": "junk"}]}`},
		{"wrong array type", `[{"title": 42}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	deadline := domain.NewDate(2025, time.June, 20)
	in := &Bundle{
		ProjectName: "roundtrip",
		Reminders: []*domain.Reminder{
			{
				ID:             "r1",
				Title:          "Standup",
				Deadline:       &deadline,
				RecurrenceDays: []int{1, 3},
				Checklist:      []domain.ChecklistItem{{ID: "c1", Text: "notes", Done: true}},
			},
		},
		Categories: []*domain.Category{{ID: "cat1", Name: "work", Color: "blue"}},
	}

	data, err := Encode(in)
	require.NoError(t, err)

	// Export writes the legacy key spelling.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "nomeProjeto")
	assert.Contains(t, raw, "lembretes")

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in.ProjectName, out.ProjectName)
	require.Len(t, out.Reminders, 1)
	assert.Equal(t, in.Reminders[0].Title, out.Reminders[0].Title)
	assert.Equal(t, in.Reminders[0].RecurrenceDays, out.Reminders[0].RecurrenceDays)
	assert.True(t, out.Reminders[0].Deadline.Equal(deadline))
	require.Len(t, out.Categories, 1)
	assert.Equal(t, "work", out.Categories[0].Name)
}

func TestEncodeEmptyBoard(t *testing.T) {
	t.Parallel()

	data, err := Encode(&Bundle{ProjectName: "empty"})
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, out.Reminders)
}
