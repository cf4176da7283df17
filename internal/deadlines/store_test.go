package deadlines

import (
	"testing"

	"github.com/chxlky/onelook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadAbsent(t *testing.T) {
	s := NewStore(mapKV{}, "")
	assert.Equal(t, DefaultKey, s.Key())

	items, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestStoreLoadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"object instead of array", `{"id":"x"}`},
		{"number", `42`},
		{"truncated", `[{"id":"x","title":"A"`},
		{"bad due", `[{"id":"x","title":"A","course":"B","source":"Canvas","dueISO":"soon"}]`},
		{"null", `null`},
		{"not json", `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(mapKV{DefaultKey: []byte(tt.raw)}, DefaultKey)
			items, err := s.Load()
			require.NoError(t, err, "corrupt data reads as empty, not as an error")
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestStoreLoadReadError(t *testing.T) {
	s := NewStore(brokenKV{err: errDiskFull}, DefaultKey)
	items, err := s.Load()
	assert.ErrorIs(t, err, errDiskFull)
	assert.Nil(t, items)
}

func TestStoreSaveThenLoad(t *testing.T) {
	kv := mapKV{}
	s := NewStore(kv, DefaultKey)

	saved := []models.Assignment{
		{ID: "a", Title: "HW1", Course: "CIS 519", Source: models.SourceCanvas, Due: mustDue("2025-01-03T10:00"), Link: "https://canvas.example/hw1"},
		{ID: "b", Title: "PA0", Course: "CIS 121", Source: models.SourceGradescope, Due: mustDue("2025-01-02T08:00:45")},
	}
	require.NoError(t, s.Save(saved))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for i := range saved {
		assert.Equal(t, saved[i].ID, loaded[i].ID)
		assert.Equal(t, saved[i].Title, loaded[i].Title)
		assert.Equal(t, saved[i].Course, loaded[i].Course)
		assert.Equal(t, saved[i].Source, loaded[i].Source)
		assert.Equal(t, saved[i].Link, loaded[i].Link)
		assert.True(t, saved[i].Due.Time().Equal(loaded[i].Due.Time()))
		assert.Equal(t, 0, loaded[i].Due.Time().Second())
	}
	assert.Equal(t, "2025-01-02T08:00", loaded[1].Due.String())
}

func TestStoreLoadTruncatesLegacyDue(t *testing.T) {
	raw := `[{"id":"x","title":"A","course":"B","source":"Piazza","dueISO":"2025-05-06T07:08:09.123Z"}]`
	s := NewStore(mapKV{DefaultKey: []byte(raw)}, DefaultKey)

	items, err := s.Load()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2025-05-06T07:08", items[0].Due.String())
}

func TestStoreSaveOverwrites(t *testing.T) {
	kv := mapKV{}
	s := NewStore(kv, "custom")

	require.NoError(t, s.Save([]models.Assignment{{ID: "a", Title: "A", Course: "C", Source: models.SourceOther, Due: mustDue("2025-01-01T00:00")}}))
	require.NoError(t, s.Save(nil))

	assert.Equal(t, "[]", string(kv["custom"]))
	items, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStoreSaveError(t *testing.T) {
	s := NewStore(brokenKV{err: errDiskFull}, DefaultKey)
	err := s.Save([]models.Assignment{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)
}
