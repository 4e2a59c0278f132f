package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapItem(id int64, cover string) *Item {
	return &Item{ID: id, Beatmap: &Beatmap{ID: id, Title: "map", Covers: &Covers{Cover: cover}}}
}

func ids(l *List) []int64 {
	var out []int64
	for _, it := range l.Items() {
		out = append(out, it.ID)
	}
	return out
}

func TestListMutationsNotify(t *testing.T) {
	l := NewList()
	calls := 0
	l.Subscribe(func(*List) { calls++ })

	l.Add(mapItem(1, "a"), mapItem(2, "b"))
	assert.Equal(t, []int64{1, 2}, ids(l))

	l.Insert(-5, mapItem(0, "z"))
	l.Insert(99, mapItem(3, "c"))
	assert.Equal(t, []int64{0, 1, 2, 3}, ids(l))

	assert.True(t, l.Remove(0))
	assert.False(t, l.Remove(42))
	assert.False(t, l.RemoveAt(10))

	l.Rotate()
	assert.Equal(t, []int64{2, 3, 1}, ids(l))
	assert.Equal(t, int64(2), l.First().ID)

	l.Replace(mapItem(9, "q"))
	assert.Equal(t, []int64{9}, ids(l))

	l.Clear()
	l.Clear()
	assert.Zero(t, l.Len())
	assert.Nil(t, l.First())

	// add, insert x2, remove, rotate, replace, clear
	assert.Equal(t, 7, calls)
}

func TestListNoopMutationsAreSilent(t *testing.T) {
	l := NewList(mapItem(1, "a"))
	calls := 0
	l.Subscribe(func(*List) { calls++ })

	l.Add()
	l.Rotate()
	l.RemoveAt(-1)
	assert.Zero(t, calls)
}

func TestListUnsubscribe(t *testing.T) {
	l := NewList()
	var order []string
	first := l.Subscribe(func(*List) { order = append(order, "first") })
	var second *Subscription
	second = l.Subscribe(func(*List) {
		order = append(order, "second")
		second.Unsubscribe()
	})
	l.Subscribe(func(*List) { order = append(order, "third") })

	l.Add(mapItem(1, "a"))
	assert.Equal(t, []string{"first", "second", "third"}, order)

	first.Unsubscribe()
	first.Unsubscribe()
	order = nil
	l.Add(mapItem(2, "b"))
	assert.Equal(t, []string{"third"}, order)

	var none *Subscription
	none.Unsubscribe()
	assert.Nil(t, l.Subscribe(nil))
}

func TestListItemsIsSnapshot(t *testing.T) {
	l := NewList(mapItem(1, "a"))
	snap := l.Items()
	snap[0] = nil
	require.NotNil(t, l.First())

	var nilList *List
	assert.Zero(t, nilList.Len())
	assert.Nil(t, nilList.Items())
	nilList.Add(mapItem(1, "a"))
}

func TestItemAccessors(t *testing.T) {
	it := mapItem(1, "a.jpg")
	it.Beatmap.Artist = "nekodex"
	cover, ok := it.Cover()
	assert.True(t, ok)
	assert.Equal(t, "a.jpg", cover)
	assert.Equal(t, "nekodex - map", it.Title())

	_, ok = (&Item{ID: 2}).Cover()
	assert.False(t, ok)
	var nilItem *Item
	assert.Empty(t, nilItem.Title())
}
