package cart

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/jfuentesr/butaca/entities"
)

type Kind string

const (
	KindTicket  Kind = Kind(entities.ItemTypeTicket)
	KindProduct Kind = Kind(entities.ItemTypeProduct)
)

var ErrOutOfRange = errors.New("line item index out of range")

// LineItem is one cart line. Ticket lines carry a seat and showtime
// context and always have quantity 1; product lines merge on repeat
// adds and grow their quantity instead.
type LineItem struct {
	Kind        Kind
	ReferenceID int64
	Name        string
	UnitPrice   float64
	Quantity    int
	Seat        string
	Horario     string
	Sala        string
}

func (li LineItem) Subtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

type EventKind int

const (
	EventAdded EventKind = iota
	EventRemoved
	EventCleared
)

type Event struct {
	Kind EventKind
	Item LineItem
}

// Store holds the in-progress order. It is in-memory only: closing the
// client empties the cart, matching how the purchase flow treats an
// unfinished order as abandoned.
type Store struct {
	mu    sync.Mutex
	items []LineItem
	subs  []func(Event)
}

func NewStore() *Store {
	return &Store{}
}

// AddTicket appends a seat-bound ticket line. Each seat is its own
// line; seat uniqueness is the seat selection's job.
func (s *Store) AddTicket(showtimeID int64, name string, price float64, seat, horario, sala string) {
	s.mu.Lock()
	item := LineItem{
		Kind:        KindTicket,
		ReferenceID: showtimeID,
		Name:        name,
		UnitPrice:   price,
		Quantity:    1,
		Seat:        seat,
		Horario:     horario,
		Sala:        sala,
	}
	s.items = append(s.items, item)
	s.mu.Unlock()
	s.publish(Event{Kind: EventAdded, Item: item})
}

// AddProduct adds one unit of a product, merging into an existing line
// for the same product if present.
func (s *Store) AddProduct(product entities.Product) {
	s.mu.Lock()
	var item LineItem
	merged := false
	for i := range s.items {
		if s.items[i].Kind == KindProduct && s.items[i].ReferenceID == product.ID {
			s.items[i].Quantity++
			item = s.items[i]
			merged = true
			break
		}
	}
	if !merged {
		item = LineItem{
			Kind:        KindProduct,
			ReferenceID: product.ID,
			Name:        product.Nombre,
			UnitPrice:   product.Precio,
			Quantity:    1,
		}
		s.items = append(s.items, item)
	}
	s.mu.Unlock()
	s.publish(Event{Kind: EventAdded, Item: item})
}

// RemoveLineItem deletes the line at index i. Removing a merged product
// line drops the whole line, not one unit.
func (s *Store) RemoveLineItem(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.items) {
		s.mu.Unlock()
		return errors.Wrapf(ErrOutOfRange, "index %d, %d items", i, len(s.items))
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.mu.Unlock()
	s.publish(Event{Kind: EventRemoved, Item: removed})
	return nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	s.publish(Event{Kind: EventCleared})
}

// Items returns a copy; callers cannot mutate the cart through it.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount is the unit count across all lines, the number shown on
// the cart badge.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) publish(ev Event) {
	s.mu.Lock()
	subs := append([]func(Event){}, s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// PurchaseItems converts the cart lines into the backend's purchase
// item shape.
func (s *Store) PurchaseItems() []entities.PurchaseItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.PurchaseItem, 0, len(s.items))
	for _, item := range s.items {
		switch item.Kind {
		case KindTicket:
			out = append(out, entities.PurchaseItem{
				Type:       entities.ItemTypeTicket,
				ShowtimeID: item.ReferenceID,
				Asiento:    item.Seat,
			})
		case KindProduct:
			out = append(out, entities.PurchaseItem{
				Type:      entities.ItemTypeProduct,
				ProductID: item.ReferenceID,
				Cantidad:  item.Quantity,
			})
		}
	}
	return out
}
