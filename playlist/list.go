package playlist

// ChangeFunc is called after every mutation of a List.
type ChangeFunc func(l *List)

// List is an ordered, observable collection of playlist items.
//
// A List is owned by the game goroutine: mutations and notifications happen
// synchronously on the caller's goroutine and it is not safe for concurrent
// use.
type List struct {
	items  []*Item
	subs   map[uint64]ChangeFunc
	order  []uint64
	nextID uint64
}

// Subscription detaches a ChangeFunc from its List.
type Subscription struct {
	list *List
	id   uint64
}

func NewList(items ...*Item) *List {
	return &List{items: append([]*Item(nil), items...)}
}

// Subscribe registers fn to be called after every mutation.
func (l *List) Subscribe(fn ChangeFunc) *Subscription {
	if l == nil || fn == nil {
		return nil
	}
	if l.subs == nil {
		l.subs = make(map[uint64]ChangeFunc)
	}
	l.nextID++
	l.subs[l.nextID] = fn
	l.order = append(l.order, l.nextID)
	return &Subscription{list: l, id: l.nextID}
}

// Unsubscribe stops notifications. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.list == nil {
		return
	}
	l := s.list
	delete(l.subs, s.id)
	for i, id := range l.order {
		if id == s.id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	s.list = nil
}

// Len returns the number of items.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Items returns a snapshot of the items in order.
func (l *List) Items() []*Item {
	if l == nil || len(l.items) == 0 {
		return nil
	}
	return append([]*Item(nil), l.items...)
}

// First returns the head item or nil.
func (l *List) First() *Item {
	if l == nil || len(l.items) == 0 {
		return nil
	}
	return l.items[0]
}

func (l *List) Add(items ...*Item) {
	if l == nil || len(items) == 0 {
		return
	}
	l.items = append(l.items, items...)
	l.notify()
}

// Insert places item at index, clamped to the list bounds.
func (l *List) Insert(index int, item *Item) {
	if l == nil {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(l.items) {
		index = len(l.items)
	}
	l.items = append(l.items, nil)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = item
	l.notify()
}

// RemoveAt removes the item at index and reports whether anything changed.
func (l *List) RemoveAt(index int) bool {
	if l == nil || index < 0 || index >= len(l.items) {
		return false
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	l.notify()
	return true
}

// Remove removes the first item with the given id.
func (l *List) Remove(id int64) bool {
	if l == nil {
		return false
	}
	for i, it := range l.items {
		if it != nil && it.ID == id {
			return l.RemoveAt(i)
		}
	}
	return false
}

// Replace swaps the whole contents in one mutation.
func (l *List) Replace(items ...*Item) {
	if l == nil {
		return
	}
	l.items = append([]*Item(nil), items...)
	l.notify()
}

// Rotate moves the head item to the tail.
func (l *List) Rotate() {
	if l == nil || len(l.items) < 2 {
		return
	}
	head := l.items[0]
	l.items = append(l.items[1:], head)
	l.notify()
}

func (l *List) Clear() {
	if l == nil || len(l.items) == 0 {
		return
	}
	l.items = nil
	l.notify()
}

func (l *List) notify() {
	// Subscribers may unsubscribe from inside a callback.
	ids := append([]uint64(nil), l.order...)
	for _, id := range ids {
		if fn, ok := l.subs[id]; ok {
			fn(l)
		}
	}
}
