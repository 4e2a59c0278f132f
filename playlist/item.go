package playlist

// Covers holds the artwork references published for a beatmap set.
type Covers struct {
	Cover string `yaml:"cover"`
	Card  string `yaml:"card,omitempty"`
	List  string `yaml:"list,omitempty"`
}

// Beatmap is the playable map an item points at.
type Beatmap struct {
	ID     int64   `yaml:"id"`
	Title  string  `yaml:"title"`
	Artist string  `yaml:"artist"`
	Covers *Covers `yaml:"covers,omitempty"`
}

// Item is one entry of a room playlist.
type Item struct {
	ID      int64    `yaml:"id"`
	Beatmap *Beatmap `yaml:"beatmap,omitempty"`
}

// Cover returns the item's cover reference, if it has one.
func (it *Item) Cover() (string, bool) {
	if it == nil || it.Beatmap == nil || it.Beatmap.Covers == nil {
		return "", false
	}
	return it.Beatmap.Covers.Cover, true
}

// Title is a short human readable label for logs and overlays.
func (it *Item) Title() string {
	if it == nil || it.Beatmap == nil {
		return ""
	}
	if it.Beatmap.Artist == "" {
		return it.Beatmap.Title
	}
	return it.Beatmap.Artist + " - " + it.Beatmap.Title
}
