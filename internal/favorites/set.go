package favorites

import "github.com/justchokingaround/anisearch/internal/catalog"

// Set is an insertion-ordered collection of anime keyed by MalID.
// It is not safe for concurrent use.
type Set struct {
	slots []slot
	index map[int]int
	live  int
}

// slot is one insertion; removed slots stay in place until compaction
type slot struct {
	anime   catalog.Anime
	removed bool
}

// NewSet builds a set from items, dropping repeated ids
func NewSet(items []catalog.Anime) *Set {
	s := &Set{index: make(map[int]int, len(items))}
	for _, item := range items {
		if _, ok := s.index[item.MalID]; ok {
			continue
		}
		s.add(item)
	}
	return s
}

func (s *Set) add(item catalog.Anime) {
	s.index[item.MalID] = len(s.slots)
	s.slots = append(s.slots, slot{anime: item})
	s.live++
}

// Contains reports whether id is in the set
func (s *Set) Contains(id int) bool {
	_, ok := s.index[id]
	return ok
}

// Toggle adds item when absent and removes it when present.
// It returns true if item is a favorite afterwards.
func (s *Set) Toggle(item catalog.Anime) bool {
	pos, ok := s.index[item.MalID]
	if !ok {
		s.add(item)
		return true
	}

	s.slots[pos] = slot{removed: true}
	delete(s.index, item.MalID)
	s.live--
	if len(s.slots) > 2*s.live+8 {
		s.compact()
	}
	return false
}

// compact drops removed slots once they outnumber the live ones
func (s *Set) compact() {
	kept := s.slots[:0]
	for _, sl := range s.slots {
		if sl.removed {
			continue
		}
		s.index[sl.anime.MalID] = len(kept)
		kept = append(kept, sl)
	}
	clear(s.slots[len(kept):])
	s.slots = kept
}

// Items returns a copy of the favorites in insertion order
func (s *Set) Items() []catalog.Anime {
	items := make([]catalog.Anime, 0, s.live)
	for _, sl := range s.slots {
		if !sl.removed {
			items = append(items, sl.anime)
		}
	}
	return items
}

func (s *Set) Len() int {
	return s.live
}
