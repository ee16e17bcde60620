package seed_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/diary/pkg/adapters/seed"
	"github.com/aretw0/diary/pkg/core"
)

var now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func TestMockEntries(t *testing.T) {
	entries := seed.MockEntries(now)

	require.Len(t, entries, 2)
	assert.Equal(t, core.Entry{ID: "1", CreatedDate: now.UnixMilli(), EmotionID: 1, Content: "1번 일기 내용"}, entries[0])
	assert.Equal(t, core.Entry{ID: "2", CreatedDate: now.UnixMilli(), EmotionID: 2, Content: "2번 일기 내용"}, entries[1])

	// A store seeded with the mock entries hands out 3 next.
	assert.Equal(t, int64(3), core.SeedFrom(entries).Peek())
}

func TestParse_YAML(t *testing.T) {
	input := `
- id: 1
  createdDate: 1714554000000
  emotionId: 2
  content: first
- id: "07"
  createdDate: "2024-05-02T10:00:00Z"
  emotionId: 4
  content: second
- id: draft
  emotionId: 3
  content: undated
`
	entries, err := seed.Parse(strings.NewReader(input), ".yaml", now)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, core.Entry{ID: "1", CreatedDate: 1714554000000, EmotionID: 2, Content: "first"}, entries[0])
	assert.Equal(t, core.ID("7"), entries[1].ID)
	assert.Equal(t, time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC).UnixMilli(), entries[1].CreatedDate)
	assert.Equal(t, core.ID("draft"), entries[2].ID)
	assert.Equal(t, now.UnixMilli(), entries[2].CreatedDate)
}

func TestParse_JSON(t *testing.T) {
	input := `[{"id": 10, "createdDate": 1714554000000, "emotionId": 1, "content": "json"}]`

	entries, err := seed.Parse(strings.NewReader(input), "json", now)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, core.Entry{ID: "10", CreatedDate: 1714554000000, EmotionID: 1, Content: "json"}, entries[0])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ext   string
		want  error
	}{
		{"duplicate ids across representations", "- id: 1\n- id: \"1\"\n", ".yaml", seed.ErrDuplicateID},
		{"missing id", "- content: orphan\n", ".yaml", seed.ErrMissingID},
		{"unsupported format", "id,content\n", ".csv", seed.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Parse(strings.NewReader(tt.input), tt.ext, now)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := seed.Parse(strings.NewReader("- id: 1\n  createdDate: yesterday\n"), ".yaml", now)
	assert.ErrorContains(t, err, "invalid createdDate")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte("- id: 5\n  emotionId: 1\n  content: from disk\n"), 0644))

	entries, err := seed.Load(path, now)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, core.ID("5"), entries[0].ID)

	_, err = seed.Load(filepath.Join(dir, "missing.yaml"), now)
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	entries := append(seed.MockEntries(now), core.Entry{ID: "draft", CreatedDate: 5, EmotionID: 3, Content: "text id"})

	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			data, err := seed.Encode(entries, ext)
			require.NoError(t, err)

			back, err := seed.ParseBytes(data, now)
			require.NoError(t, err)
			assert.Equal(t, entries, back)
		})
	}
}
