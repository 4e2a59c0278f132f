package background

import "github.com/milk9111/roombg/playlist"

// Identity decides whether a background swap is needed. Two identities are
// equal iff their cover references are equal; the zero value is the empty
// identity used when nothing is selected or the item has no cover.
type Identity struct {
	cover string
}

// Empty is the identity of "no selection".
var Empty = Identity{}

func CoverIdentity(cover string) Identity {
	return Identity{cover: cover}
}

// IsEmpty reports whether id carries no cover reference.
func (id Identity) IsEmpty() bool { return id.cover == "" }

// Cover returns the cover reference; empty for the empty identity.
func (id Identity) Cover() string { return id.cover }

func (id Identity) String() string {
	if id.IsEmpty() {
		return "<empty>"
	}
	return id.cover
}

// IdentityOf derives the identity of a single item. A blank cover reference
// counts as no cover.
func IdentityOf(item *playlist.Item) Identity {
	cover, _ := item.Cover()
	return CoverIdentity(cover)
}

// Resolve returns the identity of the first item, or Empty.
func Resolve(items []*playlist.Item) Identity {
	if len(items) == 0 {
		return Empty
	}
	return IdentityOf(items[0])
}
