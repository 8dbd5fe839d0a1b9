package seats

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfuentesr/butaca/cart"
	"github.com/jfuentesr/butaca/entities"
	"github.com/jfuentesr/butaca/observability"
)

type fakeCatalog struct {
	mu          sync.Mutex
	seatMaps    map[int64]entities.SeatMap
	seatMapErr  error
	showtime    entities.Showtime
	showtimeErr error
	seatCalls   int
	showCalls   int
	onSeatMap   func(showtimeID int64)
	onShowtime  func()
}

func (f *fakeCatalog) SeatMap(ctx context.Context, showtimeID int64) (entities.SeatMap, error) {
	f.mu.Lock()
	f.seatCalls++
	hook := f.onSeatMap
	f.mu.Unlock()
	if hook != nil {
		hook(showtimeID)
	}
	if f.seatMapErr != nil {
		return nil, f.seatMapErr
	}
	return f.seatMaps[showtimeID], nil
}

func (f *fakeCatalog) Showtime(ctx context.Context, id int64) (entities.Showtime, error) {
	f.mu.Lock()
	f.showCalls++
	hook := f.onShowtime
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.showtimeErr != nil {
		return entities.Showtime{}, f.showtimeErr
	}
	return f.showtime, nil
}

func smallMap() entities.SeatMap {
	return entities.SeatMap{
		{Numero: "A1", Ocupado: true},
		{Numero: "A2", Ocupado: false},
		{Numero: "B1", Ocupado: false},
		{Numero: "B2", Ocupado: false},
	}
}

func duneShowtime() entities.Showtime {
	return entities.Showtime{
		ID:             10,
		Precio:         85,
		PeliculaTitulo: "Dune",
		SalaNombre:     "Sala 1",
		Horario:        "2026-09-01T20:00:00",
	}
}

func newTestController(api *fakeCatalog) (*Controller, *cart.Store) {
	cartStore := cart.NewStore()
	return NewController(api, cartStore, observability.NewLogger("error")), cartStore
}

func TestOpenEntersSelecting(t *testing.T) {
	api := &fakeCatalog{seatMaps: map[int64]entities.SeatMap{10: smallMap()}}
	c, _ := newTestController(api)

	seatMap, err := c.Open(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, Selecting, c.State())
	assert.Equal(t, int64(10), c.ShowtimeID())
	assert.Equal(t, 3, seatMap.Available())
}

func TestOpenFailureStaysIdle(t *testing.T) {
	api := &fakeCatalog{seatMapErr: assert.AnError}
	c, _ := newTestController(api)

	_, err := c.Open(context.Background(), 10)

	require.Error(t, err)
	assert.Equal(t, Idle, c.State())
}

func TestToggleRejectsOccupiedAndUnknownSeats(t *testing.T) {
	api := &fakeCatalog{seatMaps: map[int64]entities.SeatMap{10: smallMap()}}
	c, _ := newTestController(api)
	_, err := c.Open(context.Background(), 10)
	require.NoError(t, err)

	assert.ErrorIs(t, c.Toggle("A1"), ErrSeatOccupied)
	assert.ErrorIs(t, c.Toggle("Z9"), ErrUnknownSeat)
	assert.Empty(t, c.Selected())
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	api := &fakeCatalog{seatMaps: map[int64]entities.SeatMap{10: smallMap()}}
	c, _ := newTestController(api)
	_, err := c.Open(context.Background(), 10)
	require.NoError(t, err)

	require.NoError(t, c.Toggle("A2"))
	assert.True(t, c.IsSelected("A2"))

	require.NoError(t, c.Toggle("A2"))
	assert.False(t, c.IsSelected("A2"))
	assert.Empty(t, c.Selected())
}

func TestToggleBeforeOpenFails(t *testing.T) {
	c, _ := newTestController(&fakeCatalog{})
	assert.ErrorIs(t, c.Toggle("A2"), ErrNotSelecting)
}

func TestSelectedIsSorted(t *testing.T) {
	api := &fakeCatalog{seatMaps: map[int64]entities.SeatMap{10: smallMap()}}
	c, _ := newTestController(api)
	_, err := c.Open(context.Background(), 10)
	require.NoError(t, err)

	require.NoError(t, c.Toggle("B2"))
	require.NoError(t, c.Toggle("A2"))
	require.NoError(t, c.Toggle("B1"))

	assert.Equal(t, []string{"A2", "B1", "B2"}, c.Selected())
}

func TestConfirmAddsTicketLinesAndResets(t *testing.T) {
	api := &fakeCatalog{
		seatMaps: map[int64]entities.SeatMap{10: smallMap()},
		showtime: duneShowtime(),
	}
	c, cartStore := newTestController(api)
	_, err := c.Open(context.Background(), 10)
	require.NoError(t, err)
	require.NoError(t, c.Toggle("B1"))
	require.NoError(t, c.Toggle("A2"))

	chosen, err := c.Confirm(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"A2", "B1"}, chosen)
	assert.Equal(t, Idle, c.State())

	items := cartStore.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Dune - A2", items[0].Name)
	assert.Equal(t, 85.0, items[0].UnitPrice)
	assert.Equal(t, "Sala 1", items[0].Sala)
	assert.Equal(t, "B1", items[1].Seat)
}

func TestConfirmEmptySelectionIsRejectedWithoutNetwork(t *testing.T) {
	api := &fakeCatalog{seatMaps: map[int64]entities.SeatMap{10: smallMap()}}
	c, cartStore := newTestController(api)
	_, err := c.Open(context.Background(), 10)
	require.NoError(t, err)

	_, err = c.Confirm(context.Background())

	assert.ErrorIs(t, err, ErrNothingSelected)
	assert.Equal(t, Selecting, c.State())
	assert.True(t, cartStore.Empty())
	assert.Equal(t, 0, api.showCalls)
}

func TestConfirmFailurePreservesSelection(t *testing.T) {
	api := &fakeCatalog{
		seatMaps:    map[int64]entities.SeatMap{10: smallMap()},
		showtimeErr: assert.AnError,
	}
	c, cartStore := newTestController(api)
	_, err := c.Open(context.Background(), 10)
	require.NoError(t, err)
	require.NoError(t, c.Toggle("A2"))

	_, err = c.Confirm(context.Background())

	require.Error(t, err)
	assert.Equal(t, Selecting, c.State())
	assert.Equal(t, []string{"A2"}, c.Selected())
	assert.True(t, cartStore.Empty())
}

func TestConfirmAfterCancelIsDropped(t *testing.T) {
	api := &fakeCatalog{
		seatMaps: map[int64]entities.SeatMap{10: smallMap()},
		showtime: duneShowtime(),
	}
	c, cartStore := newTestController(api)
	_, err := c.Open(context.Background(), 10)
	require.NoError(t, err)
	require.NoError(t, c.Toggle("A2"))

	// The shopper backs out while the confirm's showtime fetch is in
	// flight.
	api.onShowtime = func() { c.Cancel() }

	_, err = c.Confirm(context.Background())

	require.Error(t, err)
	assert.True(t, cartStore.Empty())
	assert.Equal(t, Idle, c.State())
}

func TestConfirmAfterCancelAndReopenIsDropped(t *testing.T) {
	api := &fakeCatalog{
		seatMaps: map[int64]entities.SeatMap{
			10: smallMap(),
			11: {{Numero: "C1", Ocupado: false}},
		},
		showtime: duneShowtime(),
	}
	c, cartStore := newTestController(api)
	_, err := c.Open(context.Background(), 10)
	require.NoError(t, err)
	require.NoError(t, c.Toggle("A2"))

	// Mid-confirm, the shopper cancels, opens another showtime and
	// starts a fresh selection. The stale confirm must not book the
	// abandoned showtime or disturb the new episode.
	api.onShowtime = func() {
		c.Cancel()
		_, err := c.Open(context.Background(), 11)
		require.NoError(t, err)
		require.NoError(t, c.Toggle("C1"))
	}

	_, err = c.Confirm(context.Background())

	require.Error(t, err)
	assert.True(t, cartStore.Empty())
	assert.Equal(t, Selecting, c.State())
	assert.Equal(t, int64(11), c.ShowtimeID())
	assert.Equal(t, []string{"C1"}, c.Selected())
}

func TestCancelDiscardsSelection(t *testing.T) {
	api := &fakeCatalog{seatMaps: map[int64]entities.SeatMap{10: smallMap()}}
	c, _ := newTestController(api)
	_, err := c.Open(context.Background(), 10)
	require.NoError(t, err)
	require.NoError(t, c.Toggle("A2"))

	c.Cancel()

	assert.Equal(t, Idle, c.State())
	assert.Empty(t, c.Selected())
	assert.ErrorIs(t, c.Toggle("A2"), ErrNotSelecting)
}

func TestSupersededSeatMapIsDropped(t *testing.T) {
	api := &fakeCatalog{seatMaps: map[int64]entities.SeatMap{
		10: smallMap(),
		11: {{Numero: "C1", Ocupado: false}},
	}}
	c, _ := newTestController(api)

	// While the fetch for showtime 10 is in flight, a newer Open for
	// showtime 11 lands and finishes first.
	api.onSeatMap = func(showtimeID int64) {
		if showtimeID == 10 {
			api.mu.Lock()
			api.onSeatMap = nil
			api.mu.Unlock()
			_, err := c.Open(context.Background(), 11)
			require.NoError(t, err)
		}
	}

	_, err := c.Open(context.Background(), 10)

	require.Error(t, err)
	assert.Equal(t, int64(11), c.ShowtimeID())
	assert.Len(t, c.SeatMap(), 1)
}

func TestRefreshDropsSeatsTakenMeanwhile(t *testing.T) {
	api := &fakeCatalog{seatMaps: map[int64]entities.SeatMap{10: smallMap()}}
	c, _ := newTestController(api)
	_, err := c.Open(context.Background(), 10)
	require.NoError(t, err)
	require.NoError(t, c.Toggle("A2"))
	require.NoError(t, c.Toggle("B1"))

	// Someone else takes A2 between the open and the refresh.
	api.mu.Lock()
	api.seatMaps[10] = entities.SeatMap{
		{Numero: "A1", Ocupado: true},
		{Numero: "A2", Ocupado: true},
		{Numero: "B1", Ocupado: false},
		{Numero: "B2", Ocupado: false},
	}
	api.mu.Unlock()

	_, err = c.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"B1"}, c.Selected())
}
