package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingCatalog lets a test decide when each search returns
type blockingCatalog struct {
	mu       sync.Mutex
	started  chan string
	releases map[string]chan struct{}
	// ignoreCancel simulates a transport that cannot abort
	ignoreCancel bool
}

func newBlockingCatalog() *blockingCatalog {
	return &blockingCatalog{
		started:  make(chan string, 10),
		releases: make(map[string]chan struct{}),
	}
}

func (b *blockingCatalog) release(query string) {
	close(b.gate(query))
}

func (b *blockingCatalog) gate(query string) chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.releases[query]
	if !ok {
		ch = make(chan struct{})
		b.releases[query] = ch
	}
	return ch
}

func (b *blockingCatalog) Search(ctx context.Context, query string, page int) (*SearchResponse, error) {
	gate := b.gate(query)
	b.started <- query
	if b.ignoreCancel {
		<-gate
	} else {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ErrCanceled
		}
	}
	return &SearchResponse{
		Data:       []Anime{{MalID: len(query), Title: query}},
		Pagination: Pagination{CurrentPage: page, LastVisiblePage: 1},
	}, nil
}

func (b *blockingCatalog) GetByID(ctx context.Context, id int) (*Anime, error) {
	return &Anime{MalID: id}, nil
}

func waitStarted(t *testing.T, b *blockingCatalog, want string) {
	t.Helper()
	select {
	case got := <-b.started:
		require.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("search %q never started", want)
	}
}

func TestSearcher_NewSearchCancelsPrevious(t *testing.T) {
	fake := newBlockingCatalog()
	s := NewSearcher(fake)

	firstErr := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "nar", 1)
		firstErr <- err
	}()
	waitStarted(t, fake, "nar")

	secondDone := make(chan *SearchResponse, 1)
	go func() {
		resp, err := s.Search(context.Background(), "naruto", 1)
		assert.NoError(t, err)
		secondDone <- resp
	}()
	waitStarted(t, fake, "naruto")

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, ErrCanceled)
	case <-time.After(2 * time.Second):
		t.Fatal("first search was not canceled")
	}

	fake.release("naruto")
	resp := <-secondDone
	require.NotNil(t, resp)
	assert.Equal(t, "naruto", resp.Data[0].Title)
}

func TestSearcher_LateResponseOfSupersededSearchIsDiscarded(t *testing.T) {
	fake := newBlockingCatalog()
	fake.ignoreCancel = true
	s := NewSearcher(fake)

	firstErr := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "one", 1)
		firstErr <- err
	}()
	waitStarted(t, fake, "one")

	secondErr := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "two", 1)
		secondErr <- err
	}()
	waitStarted(t, fake, "two")

	// the stale response arrives even though its request was canceled
	fake.release("one")
	assert.ErrorIs(t, <-firstErr, ErrCanceled)

	fake.release("two")
	assert.NoError(t, <-secondErr)
}

func TestSearcher_Cancel(t *testing.T) {
	fake := newBlockingCatalog()
	s := NewSearcher(fake)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "bleach", 1)
		errCh <- err
	}()
	waitStarted(t, fake, "bleach")

	s.Cancel()
	assert.ErrorIs(t, <-errCh, ErrCanceled)

	// cancel with nothing in flight is a no-op
	s.Cancel()
}

func TestSearcher_Isolation(t *testing.T) {
	fake := newBlockingCatalog()
	a := NewSearcher(fake)
	b := NewSearcher(fake)

	errA := make(chan error, 1)
	go func() {
		_, err := a.Search(context.Background(), "alpha", 1)
		errA <- err
	}()
	waitStarted(t, fake, "alpha")

	errB := make(chan error, 1)
	go func() {
		_, err := b.Search(context.Background(), "beta", 1)
		errB <- err
	}()
	waitStarted(t, fake, "beta")

	fake.release("alpha")
	fake.release("beta")
	assert.NoError(t, <-errA, "a search on another searcher must not cancel this one")
	assert.NoError(t, <-errB)
}
