package store

import (
	"slices"
	"sync"

	"github.com/preston-bernstein/nba-tonight/internal/app/view"
)

// ViewStore keeps the most recently published view in memory.
type ViewStore struct {
	mu     sync.RWMutex
	latest view.View
	ok     bool
}

// NewViewStore constructs an empty ViewStore.
func NewViewStore() *ViewStore {
	return &ViewStore{}
}

// Latest returns a copy of the current view and whether one was published.
func (s *ViewStore) Latest() (view.View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ok {
		return view.View{}, false
	}
	return clone(s.latest), true
}

// Publish replaces the current view.
func (s *ViewStore) Publish(v view.View) {
	c := clone(v)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = c
	s.ok = true
}

func clone(v view.View) view.View {
	out := v
	out.Today = slices.Clone(v.Today)
	for i := range out.Today {
		out.Today[i].Times = slices.Clone(v.Today[i].Times)
		out.Today[i].Networks = slices.Clone(v.Today[i].Networks)
	}
	out.Last = slices.Clone(v.Last)
	out.Next = slices.Clone(v.Next)
	if v.Record != nil {
		r := *v.Record
		out.Record = &r
	}
	if v.TalkingPoint != nil {
		tp := *v.TalkingPoint
		out.TalkingPoint = &tp
	}
	return out
}
