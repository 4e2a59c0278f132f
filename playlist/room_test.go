package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roomYAML = `
id: 6b1f3c1e-0d4e-4c7a-9a55-2f3b1c9d8e01
name: weekly lobby
playlist:
  - id: 10
    beatmap:
      id: 1001
      title: Yomi yori
      artist: Kurokotei
      covers:
        cover: https://assets.example/beatmaps/1001/covers/cover.jpg
  - id: 11
    beatmap:
      id: 1002
      title: Blue Zenith
      artist: xi
`

func TestParseRoomSpec(t *testing.T) {
	spec, err := ParseRoomSpec([]byte(roomYAML))
	require.NoError(t, err)
	assert.Equal(t, "weekly lobby", spec.Name)
	require.Len(t, spec.Playlist, 2)

	cover, ok := spec.Playlist[0].Cover()
	assert.True(t, ok)
	assert.Equal(t, "https://assets.example/beatmaps/1001/covers/cover.jpg", cover)
	_, ok = spec.Playlist[1].Cover()
	assert.False(t, ok)

	room := NewRoomFromSpec(spec)
	assert.Equal(t, uuid.MustParse("6b1f3c1e-0d4e-4c7a-9a55-2f3b1c9d8e01"), room.ID)
	assert.Equal(t, 2, room.Playlist.Len())
}

func TestParseRoomSpecErrors(t *testing.T) {
	_, err := ParseRoomSpec(nil)
	assert.ErrorIs(t, err, ErrEmptyRoomFile)

	_, err = ParseRoomSpec([]byte("playlist: [: nope"))
	assert.Error(t, err)

	_, err = LoadRoomSpec(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewRoomFromSpecGeneratesID(t *testing.T) {
	room := NewRoomFromSpec(&RoomSpec{ID: "not-a-uuid", Playlist: []*Item{nil, mapItem(1, "a")}})
	assert.NotEqual(t, uuid.Nil, room.ID)
	assert.Equal(t, 1, room.Playlist.Len())

	assert.NotNil(t, NewRoomFromSpec(nil).Playlist)
}

func TestRoomApplyNotifiesOnce(t *testing.T) {
	room := NewRoom("before", mapItem(1, "a"))
	id := room.ID
	list := room.Playlist
	calls := 0
	list.Subscribe(func(*List) { calls++ })

	room.Apply(&RoomSpec{Name: "after", Playlist: []*Item{mapItem(2, "b"), nil, mapItem(3, "c")}})

	assert.Equal(t, 1, calls)
	assert.Same(t, list, room.Playlist, "observers keep their list")
	assert.Equal(t, id, room.ID)
	assert.Equal(t, "after", room.Name)
	assert.Equal(t, []int64{2, 3}, ids(room.Playlist))
}

func TestLoadRoomSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.yaml")
	require.NoError(t, os.WriteFile(path, []byte(roomYAML), 0o644))

	spec, err := LoadRoomSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "weekly lobby", spec.Name)
}
