package background

import "github.com/milk9111/roombg/playlist"

// Binding mirrors an externally owned playlist and reports mutations.
type Binding struct {
	source   *playlist.List
	sub      *playlist.Subscription
	items    []*playlist.Item
	onChange func()
}

func NewBinding(onChange func()) *Binding {
	return &Binding{onChange: onChange}
}

// SetSource hands ownership of the view over to l. The old list is
// unsubscribed before the new one is subscribed, and a change is reported
// even when l is empty or nil. Setting the current source again does nothing.
func (b *Binding) SetSource(l *playlist.List) {
	if b == nil || l == b.source {
		return
	}

	b.sub.Unsubscribe()
	b.sub = nil
	b.items = nil
	b.source = l

	if l != nil {
		b.items = l.Items()
		b.sub = l.Subscribe(b.changed)
	}
	b.fire()
}

// Source returns the bound list.
func (b *Binding) Source() *playlist.List {
	if b == nil {
		return nil
	}
	return b.source
}

// Items returns the local view.
func (b *Binding) Items() []*playlist.Item {
	if b == nil {
		return nil
	}
	return b.items
}

func (b *Binding) changed(l *playlist.List) {
	b.items = l.Items()
	b.fire()
}

func (b *Binding) fire() {
	if b.onChange != nil {
		b.onChange()
	}
}
