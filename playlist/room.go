package playlist

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var ErrEmptyRoomFile = errors.New("playlist: empty room file")

// Room is a multiplayer room owning a playlist.
type Room struct {
	ID       uuid.UUID
	Name     string
	Playlist *List
}

func NewRoom(name string, items ...*Item) *Room {
	return &Room{
		ID:       uuid.New(),
		Name:     name,
		Playlist: NewList(items...),
	}
}

// RoomSpec is the on-disk form of a room.
type RoomSpec struct {
	ID       string  `yaml:"id,omitempty"`
	Name     string  `yaml:"name"`
	Playlist []*Item `yaml:"playlist"`
}

// ParseRoomSpec decodes a YAML room document.
func ParseRoomSpec(data []byte) (*RoomSpec, error) {
	if len(data) == 0 {
		return nil, ErrEmptyRoomFile
	}
	var spec RoomSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("playlist: unmarshal room: %w", err)
	}
	return &spec, nil
}

// LoadRoomSpec reads a YAML room document from disk.
func LoadRoomSpec(path string) (*RoomSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("playlist: load %s: %w", path, err)
	}
	spec, err := ParseRoomSpec(data)
	if err != nil {
		return nil, fmt.Errorf("playlist: load %s: %w", path, err)
	}
	return spec, nil
}

// NewRoomFromSpec builds a room. A missing or malformed id gets a fresh one.
func NewRoomFromSpec(spec *RoomSpec) *Room {
	if spec == nil {
		return NewRoom("")
	}
	room := NewRoom(spec.Name, compact(spec.Playlist)...)
	if id, err := uuid.Parse(spec.ID); err == nil {
		room.ID = id
	}
	return room
}

// Apply updates an existing room in place, replacing its playlist contents
// with a single mutation so observers see one change.
func (r *Room) Apply(spec *RoomSpec) {
	if r == nil || spec == nil {
		return
	}
	r.Name = spec.Name
	if r.Playlist == nil {
		r.Playlist = NewList()
	}
	r.Playlist.Replace(compact(spec.Playlist)...)
}

func compact(items []*Item) []*Item {
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}
