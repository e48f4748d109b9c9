package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/favorites"
)

// fakeCatalog answers searches from a table and can hold selected queries
// until released
type fakeCatalog struct {
	mu       sync.Mutex
	pages    map[string]*catalog.SearchResponse
	details  map[int]*catalog.Anime
	err      error
	gates    map[string]chan struct{}
	started  chan string
	searches atomic.Int32
	lookups  atomic.Int32
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		pages:   make(map[string]*catalog.SearchResponse),
		details: make(map[int]*catalog.Anime),
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 16),
	}
}

// hold makes searches for query block until release
func (f *fakeCatalog) hold(query string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gates[query] = make(chan struct{})
}

func (f *fakeCatalog) release(query string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	close(f.gates[query])
}

func (f *fakeCatalog) Search(ctx context.Context, query string, page int) (*catalog.SearchResponse, error) {
	f.searches.Add(1)
	if ctx.Err() != nil {
		return nil, catalog.ErrCanceled
	}
	f.mu.Lock()
	gate := f.gates[query]
	resp := f.pages[query]
	err := f.err
	f.mu.Unlock()

	f.started <- query
	if gate != nil {
		// the response arrives regardless of cancellation
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return &catalog.SearchResponse{Pagination: catalog.Pagination{CurrentPage: page, LastVisiblePage: 1}}, nil
	}
	out := *resp
	out.Pagination.CurrentPage = page
	return &out, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, id int) (*catalog.Anime, error) {
	f.lookups.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if item, ok := f.details[id]; ok {
		return item, nil
	}
	return nil, &catalog.NetworkError{StatusCode: 404, Message: "catalog error (404): not found"}
}

func ptr[T any](v T) *T { return &v }

func narutoPage() *catalog.SearchResponse {
	return &catalog.SearchResponse{
		Data: []catalog.Anime{
			{MalID: 20, Title: "Naruto", Year: ptr(2002)},
			{MalID: 1735, Title: "Naruto: Shippuuden", Year: ptr(2007)},
		},
		Pagination: catalog.Pagination{CurrentPage: 1, LastVisiblePage: 5, HasNextPage: true},
	}
}

func newTestStore(t *testing.T, fake *fakeCatalog, favs favorites.Store) *Store {
	t.Helper()
	if favs == nil {
		favs = favorites.NewMemoryStore()
	}
	store, err := NewStore(catalog.NewSearcher(fake), favs, nil)
	require.NoError(t, err)
	return store
}

func TestStore_SearchSuccess(t *testing.T) {
	fake := newFakeCatalog()
	fake.pages["naruto"] = narutoPage()
	store := newTestStore(t, fake, nil)

	require.NoError(t, store.Search(context.Background(), "naruto", 1))

	st := store.Snapshot()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Equal(t, "naruto", st.Query)
	assert.Len(t, st.Results, 2)
	assert.Equal(t, 1, st.CurrentPage)
	assert.Equal(t, 5, st.TotalPages)
	assert.True(t, st.HasNextPage)

	err := store.GoToPage(context.Background(), 6)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	var vErr *catalog.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, int32(1), fake.searches.Load(), "out of range page must not hit the catalog")

	require.NoError(t, store.GoToPage(context.Background(), 5))
	assert.Equal(t, 5, store.Snapshot().CurrentPage)
}

func TestStore_CallerCancelClearsLoading(t *testing.T) {
	fake := newFakeCatalog()
	fake.pages["naruto"] = narutoPage()
	store := newTestStore(t, fake, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, store.Search(ctx, "naruto", 1))

	st := store.Snapshot()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Empty(t, st.Results)

	require.NoError(t, store.Search(context.Background(), "naruto", 1))
	assert.Len(t, store.Snapshot().Results, 2)
}

func TestStore_BlankQueryIgnored(t *testing.T) {
	fake := newFakeCatalog()
	store := newTestStore(t, fake, nil)

	require.NoError(t, store.Search(context.Background(), "   ", 1))
	assert.Equal(t, int32(0), fake.searches.Load())
	assert.False(t, store.Snapshot().Loading)
}

func TestStore_ErrorKeepsPreviousResults(t *testing.T) {
	fake := newFakeCatalog()
	fake.pages["naruto"] = narutoPage()
	store := newTestStore(t, fake, nil)
	require.NoError(t, store.Search(context.Background(), "naruto", 1))

	fake.err = &catalog.NetworkError{StatusCode: 500, Message: "catalog error (500): boom"}
	err := store.Search(context.Background(), "bleach", 1)
	require.Error(t, err)

	st := store.Snapshot()
	assert.False(t, st.Loading)
	assert.Equal(t, "catalog error (500): boom", st.Error)
	assert.Len(t, st.Results, 2)

	fake.err = nil
	require.NoError(t, store.Search(context.Background(), "naruto", 1))
	assert.Empty(t, store.Snapshot().Error, "a new search clears the error")
}

func TestStore_SupersededResponseNeverOverwrites(t *testing.T) {
	fake := newFakeCatalog()
	fake.pages["nar"] = &catalog.SearchResponse{Data: []catalog.Anime{{MalID: 1, Title: "stale"}}}
	fake.pages["naruto"] = narutoPage()
	fake.hold("nar")
	store := newTestStore(t, fake, nil)

	first := make(chan error, 1)
	go func() { first <- store.Search(context.Background(), "nar", 1) }()
	require.Equal(t, "nar", <-fake.started)

	require.NoError(t, store.Search(context.Background(), "naruto", 1))
	<-fake.started

	// the stale response arrives after the newer one was applied
	fake.release("nar")
	require.NoError(t, <-first)

	st := store.Snapshot()
	assert.Equal(t, "naruto", st.Query)
	require.Len(t, st.Results, 2)
	assert.Equal(t, "Naruto", st.Results[0].Title)
	assert.False(t, st.Loading)
}

func TestStore_ClearSearchCancelsInFlight(t *testing.T) {
	fake := newFakeCatalog()
	fake.pages["naruto"] = narutoPage()
	fake.hold("naruto")
	store := newTestStore(t, fake, nil)

	done := make(chan error, 1)
	go func() { done <- store.Search(context.Background(), "naruto", 1) }()
	<-fake.started

	store.ClearSearch()
	fake.release("naruto")
	require.NoError(t, <-done)

	st := store.Snapshot()
	assert.Empty(t, st.Query)
	assert.Empty(t, st.Results)
	assert.False(t, st.Loading)
	assert.Equal(t, 1, st.CurrentPage)
}

func TestStore_PageNavigation(t *testing.T) {
	fake := newFakeCatalog()
	store := newTestStore(t, fake, nil)

	assert.ErrorIs(t, store.NextPage(context.Background()), ErrNoQuery)
	assert.ErrorIs(t, store.GoToPage(context.Background(), 1), ErrNoQuery)

	fake.pages["naruto"] = narutoPage()
	require.NoError(t, store.Search(context.Background(), "naruto", 1))
	assert.ErrorIs(t, store.PrevPage(context.Background()), ErrPageOutOfRange)

	require.NoError(t, store.NextPage(context.Background()))
	assert.Equal(t, 2, store.Snapshot().CurrentPage)
	require.NoError(t, store.PrevPage(context.Background()))
	assert.Equal(t, 1, store.Snapshot().CurrentPage)

	fake.pages["naruto"].Pagination.HasNextPage = false
	require.NoError(t, store.Search(context.Background(), "naruto", 1))
	assert.ErrorIs(t, store.NextPage(context.Background()), ErrPageOutOfRange)

	window := store.PageWindow(5)
	require.NotEmpty(t, window)
	assert.True(t, window[0].Current)
}

func TestStore_LoadDetail(t *testing.T) {
	t.Run("non-numeric id fails without a request", func(t *testing.T) {
		fake := newFakeCatalog()
		store := newTestStore(t, fake, nil)

		err := store.LoadDetail(context.Background(), "abc")
		var vErr *catalog.ValidationError
		require.True(t, errors.As(err, &vErr))

		st := store.Snapshot()
		assert.False(t, st.DetailLoading)
		assert.Contains(t, st.DetailError, "anime id")
		assert.Nil(t, st.Selected)
		assert.Equal(t, int32(0), fake.lookups.Load())
	})

	t.Run("loads the detail", func(t *testing.T) {
		fake := newFakeCatalog()
		fake.details[20] = &catalog.Anime{MalID: 20, Title: "Naruto"}
		store := newTestStore(t, fake, nil)

		require.NoError(t, store.LoadDetail(context.Background(), "20"))
		st := store.Snapshot()
		require.NotNil(t, st.Selected)
		assert.Equal(t, "Naruto", st.Selected.Title)
		assert.Empty(t, st.DetailError)
		assert.Empty(t, st.Error, "detail state is independent of search state")

		store.ClearSelected()
		assert.Nil(t, store.Snapshot().Selected)
	})

	t.Run("lookup failure sets the detail error", func(t *testing.T) {
		store := newTestStore(t, newFakeCatalog(), nil)

		require.Error(t, store.LoadDetail(context.Background(), "99"))
		st := store.Snapshot()
		assert.False(t, st.DetailLoading)
		assert.Equal(t, "catalog error (404): not found", st.DetailError)
	})
}

// slowDetails blocks GetByID until released
type slowDetails struct {
	*fakeCatalog
	gate chan struct{}
}

func (s *slowDetails) GetByID(ctx context.Context, id int) (*catalog.Anime, error) {
	<-s.gate
	return &catalog.Anime{MalID: id, Title: "late"}, nil
}

func TestStore_ClearSelectedDiscardsInFlightDetail(t *testing.T) {
	slow := &slowDetails{fakeCatalog: newFakeCatalog(), gate: make(chan struct{})}
	store, err := NewStore(catalog.NewSearcher(slow), favorites.NewMemoryStore(), nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- store.LoadDetail(context.Background(), "5") }()

	require.Eventually(t, func() bool {
		return store.Snapshot().DetailLoading
	}, time.Second, 5*time.Millisecond)

	store.ClearSelected()
	close(slow.gate)
	require.NoError(t, <-done)

	st := store.Snapshot()
	assert.Nil(t, st.Selected)
	assert.False(t, st.DetailLoading)
}

func TestStore_Filters(t *testing.T) {
	store := newTestStore(t, newFakeCatalog(), nil)

	store.ToggleGenre("Action")
	store.ToggleGenre("Comedy")
	store.SetYear("2002")
	store.SetSort(SortRating)
	assert.Equal(t, 4, store.ActiveFilterCount())

	store.ToggleGenre("Action")
	assert.Equal(t, []string{"Comedy"}, store.Snapshot().Filters.Genres)

	store.SetGenres([]string{"Drama", "Drama", "Horror"})
	assert.Equal(t, []string{"Drama", "Horror"}, store.Snapshot().Filters.Genres)

	store.ClearFilters()
	st := store.Snapshot()
	assert.Empty(t, st.Filters.Genres)
	assert.Empty(t, st.Filters.Year)
	assert.Equal(t, SortNone, st.Sort)
	assert.Equal(t, 0, store.ActiveFilterCount())
}

func TestStore_Displayed(t *testing.T) {
	fake := newFakeCatalog()
	fake.pages["naruto"] = narutoPage()
	store := newTestStore(t, fake, nil)
	require.NoError(t, store.Search(context.Background(), "naruto", 1))

	store.SetSort(SortNewest)
	displayed := store.Displayed()
	require.Len(t, displayed, 2)
	assert.Equal(t, 1735, displayed[0].MalID)

	assert.Equal(t, 20, store.Snapshot().Results[0].MalID, "fetched page keeps API order")

	store.SetYear("2002")
	assert.Len(t, store.Displayed(), 1)
}

func TestStore_Favorites(t *testing.T) {
	mem := favorites.NewMemoryStore(catalog.Anime{MalID: 1, Title: "Cowboy Bebop"})
	store := newTestStore(t, newFakeCatalog(), mem)

	assert.True(t, store.IsFavorite(1), "favorites are loaded at startup")

	naruto := catalog.Anime{MalID: 20, Title: "Naruto"}
	before := store.Favorites()

	added, err := store.ToggleFavorite(naruto)
	require.NoError(t, err)
	assert.True(t, added)
	persisted, _ := mem.Load()
	assert.Equal(t, store.Favorites(), persisted)

	added, err = store.ToggleFavorite(naruto)
	require.NoError(t, err)
	assert.False(t, added)
	persisted, _ = mem.Load()
	assert.Equal(t, store.Favorites(), persisted)
	assert.Equal(t, before, store.Favorites(), "toggling twice restores the set")
	assert.Equal(t, 2, mem.Saves())
}

func TestStore_FavoriteSaveFailureRollsBack(t *testing.T) {
	mem := favorites.NewMemoryStore(catalog.Anime{MalID: 1}, catalog.Anime{MalID: 2})
	store := newTestStore(t, newFakeCatalog(), mem)
	mem.Err = errors.New("disk full")

	_, err := store.ToggleFavorite(catalog.Anime{MalID: 1})
	require.Error(t, err)
	assert.True(t, store.IsFavorite(1))
	assert.Equal(t, 1, store.Favorites()[0].MalID, "order is preserved")
}
