package platform_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/diary/internal/platform"
	"github.com/aretw0/diary/pkg/core"
)

var fixed = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixed }

func TestNew_DefaultsToMockSeed(t *testing.T) {
	store, err := platform.New(platform.WithClock(clock))
	require.NoError(t, err)
	defer store.Close()

	snap := store.Snapshot()
	require.Equal(t, 2, snap.Len())
	assert.Equal(t, fixed.UnixMilli(), snap.Entries[0].CreatedDate)

	store.Create(0, 1, "Hello")
	assert.Equal(t, core.ID("3"), store.Snapshot().Entries[0].ID)
}

func TestNew_WithSeed(t *testing.T) {
	store, err := platform.New(platform.WithSeed([]core.Entry{{ID: "10", Content: "ten"}}))
	require.NoError(t, err)
	defer store.Close()

	store.Create(0, 1, "next")
	assert.Equal(t, []core.ID{"11", "10"}, []core.ID{
		store.Snapshot().Entries[0].ID,
		store.Snapshot().Entries[1].ID,
	})
}

func TestNew_EmptySeed(t *testing.T) {
	store, err := platform.New(platform.WithSeed([]core.Entry{}))
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, 0, store.Snapshot().Len())
}

func TestNew_WithSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 41, "emotionId": 2, "content": "from file"}]`), 0644))

	store, err := platform.New(
		platform.WithSeed([]core.Entry{{ID: "1"}}), // overridden by the file
		platform.WithSeedFile(path),
		platform.WithClock(clock),
	)
	require.NoError(t, err)
	defer store.Close()

	snap := store.Snapshot()
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, core.Entry{ID: "41", CreatedDate: fixed.UnixMilli(), EmotionID: 2, Content: "from file"}, snap.Entries[0])
}

func TestNew_BadSeedFile(t *testing.T) {
	_, err := platform.New(platform.WithSeedFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestNew_LoggerAndBuffer(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store, err := platform.New(platform.WithLogger(logger), platform.WithEventBuffer(7))
	require.NoError(t, err)
	defer store.Close()

	store.Delete("2")

	assert.Contains(t, buf.String(), "transition applied")
	assert.Equal(t, 7, store.State().(core.StoreState).EventBufferSize)
}
