package seats

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/jfuentesr/butaca/cart"
	"github.com/jfuentesr/butaca/entities"
	"github.com/jfuentesr/butaca/observability"
)

var (
	ErrNotSelecting    = errors.New("no seat selection in progress")
	ErrSeatOccupied    = errors.New("seat is occupied")
	ErrUnknownSeat     = errors.New("seat not in seat map")
	ErrNothingSelected = errors.New("no seats selected")
)

type State int

const (
	Idle State = iota
	Selecting
)

// Catalog is the slice of the backend the seat selection needs.
type Catalog interface {
	SeatMap(ctx context.Context, showtimeID int64) (entities.SeatMap, error)
	Showtime(ctx context.Context, id int64) (entities.Showtime, error)
}

// Controller drives the seat selection for one showtime at a time.
// Every Open starts a new episode; a seat map that arrives after a
// newer Open belongs to a dead episode and is dropped, so a slow
// response for showtime A can never overwrite the map for showtime B.
type Controller struct {
	mu         sync.Mutex
	api        Catalog
	cart       *cart.Store
	log        observability.Logger
	state      State
	episode    uint64
	showtimeID int64
	seatMap    entities.SeatMap
	selection  mapset.Set[string]
}

func NewController(api Catalog, cartStore *cart.Store, log observability.Logger) *Controller {
	return &Controller{
		api:       api,
		cart:      cartStore,
		log:       log,
		selection: mapset.NewSet[string](),
	}
}

// Open starts selecting seats for the given showtime, fetching its
// occupancy snapshot. Any previous selection is discarded.
func (c *Controller) Open(ctx context.Context, showtimeID int64) (entities.SeatMap, error) {
	c.mu.Lock()
	c.episode++
	episode := c.episode
	c.mu.Unlock()

	seatMap, err := c.api.SeatMap(ctx, showtimeID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if episode != c.episode {
		c.log.WithField("episode", episode).Debug("dropping superseded seat map")
		return nil, errors.Newf("seat map superseded by a newer request")
	}
	if err != nil {
		c.state = Idle
		return nil, err
	}

	c.state = Selecting
	c.showtimeID = showtimeID
	c.seatMap = seatMap
	c.selection = mapset.NewSet[string]()
	return seatMap, nil
}

// Refresh re-fetches the current showtime's seat map, keeping whatever
// of the selection is still free.
func (c *Controller) Refresh(ctx context.Context) (entities.SeatMap, error) {
	c.mu.Lock()
	if c.state != Selecting {
		c.mu.Unlock()
		return nil, ErrNotSelecting
	}
	episode := c.episode
	showtimeID := c.showtimeID
	c.mu.Unlock()

	seatMap, err := c.api.SeatMap(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if episode != c.episode {
		return nil, errors.Newf("seat map superseded by a newer request")
	}
	c.seatMap = seatMap
	for _, numero := range c.selection.ToSlice() {
		if seatMap.IsOccupied(numero) {
			c.selection.Remove(numero)
		}
	}
	return seatMap, nil
}

// Toggle adds the seat to the selection, or removes it if already
// selected. Occupied and unknown seats are rejected.
func (c *Controller) Toggle(numero string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Selecting {
		return ErrNotSelecting
	}
	seat, ok := c.seatMap.Find(numero)
	if !ok {
		return errors.Wrapf(ErrUnknownSeat, "seat %s", numero)
	}
	if seat.Ocupado {
		return errors.Wrapf(ErrSeatOccupied, "seat %s", numero)
	}
	if c.selection.Contains(numero) {
		c.selection.Remove(numero)
	} else {
		c.selection.Add(numero)
	}
	return nil
}

func (c *Controller) IsSelected(numero string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Contains(numero)
}

// Selected returns the chosen seats in stable label order.
func (c *Controller) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked()
}

func (c *Controller) selectedLocked() []string {
	out := c.selection.ToSlice()
	sort.Strings(out)
	return out
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) ShowtimeID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showtimeID
}

func (c *Controller) SeatMap() entities.SeatMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seatMap
}

// Confirm turns the selection into cart ticket lines, one per seat,
// priced from the showtime. An empty selection is rejected before any
// network call. On a fetch failure the selection stays intact so the
// user can retry.
func (c *Controller) Confirm(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	if c.state != Selecting {
		c.mu.Unlock()
		return nil, ErrNotSelecting
	}
	chosen := c.selectedLocked()
	showtimeID := c.showtimeID
	episode := c.episode
	c.mu.Unlock()

	if len(chosen) == 0 {
		return nil, ErrNothingSelected
	}

	showtime, err := c.api.Showtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	// A cancel or a newer open while the fetch was in flight ends this
	// episode; committing now would book the abandoned showtime and
	// clobber the new selection.
	c.mu.Lock()
	if episode != c.episode {
		c.mu.Unlock()
		c.log.WithField("episode", episode).Debug("dropping superseded confirmation")
		return nil, errors.Newf("seat selection superseded by a newer request")
	}
	c.resetLocked()
	c.mu.Unlock()

	for _, numero := range chosen {
		name := fmt.Sprintf("%s - %s", showtime.PeliculaTitulo, numero)
		c.cart.AddTicket(showtime.ID, name, showtime.Precio, numero, showtime.Horario, showtime.SalaNombre)
	}
	c.log.WithField("showtimeId", showtimeID).Info("added ", len(chosen), " tickets to cart")
	return chosen, nil
}

// Cancel abandons the selection and returns to idle. It also ends the
// current episode, so in-flight fetches for it are dropped on arrival.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.episode++
	c.state = Idle
	c.showtimeID = 0
	c.seatMap = nil
	c.selection = mapset.NewSet[string]()
}
