package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfuentesr/butaca/cart"
	"github.com/jfuentesr/butaca/checkout"
	"github.com/jfuentesr/butaca/entities"
	"github.com/jfuentesr/butaca/localstore"
	"github.com/jfuentesr/butaca/notify"
	"github.com/jfuentesr/butaca/observability"
	"github.com/jfuentesr/butaca/seats"
	"github.com/jfuentesr/butaca/session"
)

type fakeAPI struct {
	movies        []entities.Movie
	showtimes     []entities.Showtime
	seatMap       entities.SeatMap
	products      []entities.Product
	tickets       []entities.Ticket
	receipt       entities.PurchaseReceipt
	login         entities.LoginResponse
	lastCategoria string
}

func (f *fakeAPI) Login(ctx context.Context, creds entities.Credentials) (entities.LoginResponse, error) {
	return f.login, nil
}

func (f *fakeAPI) Register(ctx context.Context, reg entities.Registration) error {
	return nil
}

func (f *fakeAPI) Movies(ctx context.Context) ([]entities.Movie, error) { return f.movies, nil }

func (f *fakeAPI) Movie(ctx context.Context, id int64) (entities.Movie, error) {
	return f.movies[0], nil
}

func (f *fakeAPI) Showtimes(ctx context.Context, movieID int64) ([]entities.Showtime, error) {
	return f.showtimes, nil
}

func (f *fakeAPI) Showtime(ctx context.Context, id int64) (entities.Showtime, error) {
	return f.showtimes[0], nil
}

func (f *fakeAPI) SeatMap(ctx context.Context, showtimeID int64) (entities.SeatMap, error) {
	return f.seatMap, nil
}

func (f *fakeAPI) Products(ctx context.Context, categoria string) ([]entities.Product, error) {
	f.lastCategoria = categoria
	if categoria == "" {
		return f.products, nil
	}
	var out []entities.Product
	for _, product := range f.products {
		if product.Categoria == categoria {
			out = append(out, product)
		}
	}
	return out, nil
}

func (f *fakeAPI) Purchase(ctx context.Context, req entities.PurchaseRequest) (entities.PurchaseReceipt, error) {
	return f.receipt, nil
}

func (f *fakeAPI) UserTickets(ctx context.Context, userID int64) ([]entities.Ticket, error) {
	return f.tickets, nil
}

func (f *fakeAPI) CancelTicket(ctx context.Context, ticketID int64) error { return nil }

func newTestModel(api *fakeAPI) Model {
	log := observability.NewLogger("error")
	sessionStore := session.NewStore(api, localstore.NewMemStore(), log)
	cartStore := cart.NewStore()
	return New(Stores{
		API:      api,
		Session:  sessionStore,
		Cart:     cartStore,
		Seats:    seats.NewController(api, cartStore, log),
		Checkout: checkout.NewFlow(api, sessionStore, cartStore, nil, log),
		Notices:  notify.NewCenter(),
		Log:      log,
	})
}

func billboard() []entities.Movie {
	return []entities.Movie{
		{ID: 3, Titulo: "Dune", Clasificacion: "B", Duracion: 155, Genero: "ciencia ficcion"},
		{ID: 4, Titulo: "Coco", Clasificacion: "A", Duracion: 105, Genero: "animación"},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model
}

func TestMoviesLoadedShowsBillboard(t *testing.T) {
	m := newTestModel(&fakeAPI{})

	m = update(t, m, moviesLoadedMsg{movies: billboard()})

	assert.Equal(t, SectionMovies, m.section)
	view := m.View()
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "Coco")
}

func TestMoviesLoadErrorPublishesNotice(t *testing.T) {
	m := newTestModel(&fakeAPI{})

	m = update(t, m, moviesLoadedMsg{err: assert.AnError})

	assert.Equal(t, SectionWelcome, m.section)
	select {
	case notice := <-m.noticeCh:
		assert.Equal(t, notify.Error, notice.Level)
	default:
		t.Fatal("expected an error notice")
	}
}

func TestEnterOnMovieOpensShowtimes(t *testing.T) {
	api := &fakeAPI{showtimes: []entities.Showtime{{ID: 10, PeliculaTitulo: "Dune", SalaNombre: "Sala 1", Precio: 85}}}
	m := newTestModel(api)
	m = update(t, m, moviesLoadedMsg{movies: billboard()})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)

	m = update(t, m, cmd().(showtimesLoadedMsg))
	assert.Equal(t, SectionShowtimes, m.section)
	assert.Contains(t, m.View(), "Sala 1")
}

func TestSeatSelectionRequiresLogin(t *testing.T) {
	api := &fakeAPI{showtimes: []entities.Showtime{{ID: 10}}}
	m := newTestModel(api)
	m = update(t, m, moviesLoadedMsg{movies: billboard()})
	m = update(t, m, showtimesLoadedMsg{movie: billboard()[0], showtimes: api.showtimes})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, SectionShowtimes, m.section)
}

func TestRefreshKeyReloadsSeatMap(t *testing.T) {
	api := &fakeAPI{seatMap: entities.SeatMap{
		{Numero: "A1", Ocupado: false},
		{Numero: "A2", Ocupado: false},
	}}
	m := newTestModel(api)
	seatMap, err := m.stores.Seats.Open(context.Background(), 10)
	require.NoError(t, err)
	m = update(t, m, seatMapLoadedMsg{seatMap: seatMap})
	require.Equal(t, SectionSeats, m.section)

	// A1 gets taken while the shopper hesitates.
	api.seatMap = entities.SeatMap{
		{Numero: "A1", Ocupado: true},
		{Numero: "A2", Ocupado: false},
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	m = updated.(Model)
	require.NotNil(t, cmd)
	m = update(t, m, cmd().(seatMapRefreshedMsg))

	assert.Equal(t, SectionSeats, m.section)
	require.Len(t, m.seatMap, 2)
	assert.True(t, m.seatMap[0].Ocupado)
	assert.False(t, m.busy)
}

func TestCartToggleAndProductAdd(t *testing.T) {
	api := &fakeAPI{products: []entities.Product{{ID: 3, Nombre: "Palomitas", Precio: 65, Stock: 5, Categoria: "alimentos"}}}
	m := newTestModel(api)
	m = update(t, m, productsLoadedMsg{products: api.products})
	require.Equal(t, SectionProducts, m.section)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.stores.Cart.ItemCount())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	assert.True(t, m.cartOpen)
	assert.Contains(t, m.View(), "Palomitas")
}

func TestCategoryKeyCyclesProductFilter(t *testing.T) {
	api := &fakeAPI{products: []entities.Product{
		{ID: 3, Nombre: "Palomitas", Precio: 65, Stock: 5, Categoria: "alimentos"},
		{ID: 4, Nombre: "Refresco", Precio: 40, Stock: 9, Categoria: "bebidas"},
	}}
	m := newTestModel(api)
	m = update(t, m, productsLoadedMsg{products: api.products})
	require.Equal(t, []string{"alimentos", "bebidas"}, m.categories)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = updated.(Model)
	require.NotNil(t, cmd)
	m = update(t, m, cmd().(productsLoadedMsg))

	assert.Equal(t, "alimentos", api.lastCategoria)
	assert.Equal(t, "alimentos", m.category)
	view := m.View()
	assert.Contains(t, view, "Palomitas")
	assert.NotContains(t, view, "Refresco")

	// Two more presses walk bebidas and then back to the full listing.
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = update(t, updated.(Model), cmd().(productsLoadedMsg))
	assert.Equal(t, "bebidas", api.lastCategoria)

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = update(t, updated.(Model), cmd().(productsLoadedMsg))
	assert.Equal(t, "", api.lastCategoria)
	assert.Contains(t, m.View(), "Refresco")
}

func TestSoldOutProductIsRejected(t *testing.T) {
	api := &fakeAPI{products: []entities.Product{{ID: 3, Nombre: "Palomitas", Precio: 65, Stock: 0}}}
	m := newTestModel(api)
	m = update(t, m, productsLoadedMsg{products: api.products})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 0, m.stores.Cart.ItemCount())
}

func TestPurchaseDoneShowsReceipt(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	receipt := entities.PurchaseReceipt{
		Message: "Compra realizada",
		Total:   215,
		Boletos: []entities.PurchasedTicket{{Codigo: "BOL-001", Pelicula: "Dune", Asiento: "A2", Precio: 85}},
	}

	m = update(t, m, purchaseDoneMsg{receipt: receipt})

	assert.Equal(t, SectionReceipt, m.section)
	view := m.View()
	assert.Contains(t, view, "BOL-001")
	assert.Contains(t, view, "$215.00")
}

func TestNoticeFadeOnlyClearsLatest(t *testing.T) {
	m := newTestModel(&fakeAPI{})

	m = update(t, m, noticeMsg{Level: notify.Info, Message: "primero"})
	firstSeq := m.noticeSeq
	m = update(t, m, noticeMsg{Level: notify.Info, Message: "segundo"})

	m = update(t, m, noticeFadeMsg{seq: firstSeq})
	assert.Equal(t, "segundo", m.notice)

	m = update(t, m, noticeFadeMsg{seq: m.noticeSeq})
	assert.Empty(t, m.notice)
}

func TestHelpLineFollowsSession(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	m = update(t, m, moviesLoadedMsg{movies: billboard()})

	assert.True(t, strings.Contains(m.View(), "l: entrar"))

	m = update(t, m, sessionMsg{user: entities.User{ID: 7, Nombre: "Ana"}})
	view := m.View()
	assert.Contains(t, view, "Ana")
	assert.Contains(t, view, "o: salir")
}
