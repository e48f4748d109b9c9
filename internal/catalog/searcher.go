package catalog

import (
	"context"
	"sync"
)

// Searcher keeps at most one search in flight. Starting a new search cancels
// the previous one, and a superseded search always resolves to ErrCanceled,
// even when its response had already arrived.
type Searcher struct {
	catalog Catalog

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

// NewSearcher wraps c with single-in-flight semantics
func NewSearcher(c Catalog) *Searcher {
	return &Searcher{catalog: c}
}

// Search cancels any in-flight search and then runs this one
func (s *Searcher) Search(ctx context.Context, query string, page int) (*SearchResponse, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	id := s.seq
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	resp, err := s.catalog.Search(reqCtx, query, page)

	s.mu.Lock()
	defer s.mu.Unlock()
	cancel()
	if id != s.seq {
		return nil, ErrCanceled
	}
	s.cancel = nil
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Cancel aborts the in-flight search, if any
func (s *Searcher) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
}

// GetByID passes through to the catalog; details are not cancel-coupled
func (s *Searcher) GetByID(ctx context.Context, id int) (*Anime, error) {
	return s.catalog.GetByID(ctx, id)
}
