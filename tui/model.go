package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jfuentesr/butaca/cart"
	"github.com/jfuentesr/butaca/checkout"
	"github.com/jfuentesr/butaca/client"
	"github.com/jfuentesr/butaca/entities"
	"github.com/jfuentesr/butaca/notify"
	"github.com/jfuentesr/butaca/observability"
	"github.com/jfuentesr/butaca/seats"
	"github.com/jfuentesr/butaca/session"
)

// Section identifies which screen is active.
type Section int

const (
	// SectionWelcome is the landing screen shown before any data loads.
	SectionWelcome Section = iota
	// SectionLogin shows the email/password form.
	SectionLogin
	// SectionRegister shows the signup form.
	SectionRegister
	// SectionMovies lists the billboard.
	SectionMovies
	// SectionShowtimes lists showtimes for the chosen movie.
	SectionShowtimes
	// SectionSeats shows the seat map for the chosen showtime.
	SectionSeats
	// SectionProducts lists the concession stand.
	SectionProducts
	// SectionTickets lists the user's purchased tickets.
	SectionTickets
	// SectionReceipt shows the confirmation after a purchase.
	SectionReceipt
)

const noticeFadeDelay = 3 * time.Second

// Typed messages delivered through the bubbletea loop. Each wraps the
// result of one asynchronous call.
type (
	moviesLoadedMsg struct {
		movies []entities.Movie
		err    error
	}

	showtimesLoadedMsg struct {
		movie     entities.Movie
		showtimes []entities.Showtime
		err       error
	}

	seatMapLoadedMsg struct {
		seatMap entities.SeatMap
		err     error
	}

	seatMapRefreshedMsg struct {
		seatMap entities.SeatMap
		err     error
	}

	productsLoadedMsg struct {
		categoria string
		products  []entities.Product
		err       error
	}

	sessionMsg struct {
		user entities.User
		err  error
	}

	registeredMsg struct {
		err error
	}

	seatsConfirmedMsg struct {
		chosen []string
		err    error
	}

	purchaseDoneMsg struct {
		receipt entities.PurchaseReceipt
		err     error
	}

	ticketsLoadedMsg struct {
		tickets []entities.Ticket
		err     error
	}

	ticketCancelledMsg struct {
		ticketID int64
		err      error
	}

	noticeMsg notify.Notice

	noticeFadeMsg struct{ seq int }
)

// Stores bundles everything the model drives.
type Stores struct {
	API      client.BoxOffice
	Session  *session.Store
	Cart     *cart.Store
	Seats    *seats.Controller
	Checkout *checkout.Flow
	Notices  *notify.Center
	Log      observability.Logger
}

type Model struct {
	stores Stores

	section  Section
	previous Section
	width    int
	height   int

	user       *entities.User
	movies     []entities.Movie
	movie      entities.Movie
	times      []entities.Showtime
	seatMap    entities.SeatMap
	products   []entities.Product
	category   string
	categories []string
	tickets    []entities.Ticket
	receipt    entities.PurchaseReceipt

	cursor    int
	cartOpen  bool
	busy      bool
	notice    string
	noticeLvl notify.Level
	noticeSeq int

	inputs     []textinput.Model
	inputFocus int

	noticeCh <-chan notify.Notice
}

func New(stores Stores) Model {
	m := Model{
		stores:   stores,
		section:  SectionWelcome,
		noticeCh: stores.Notices.Listen(),
	}
	if sess, ok := stores.Session.Current(); ok {
		user := sess.User
		m.user = &user
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadMovies(), m.awaitNotice())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case moviesLoadedMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail("No se pudieron cargar las películas", msg.err)
		}
		m.movies = msg.movies
		if m.section == SectionWelcome {
			m.section = SectionMovies
		}
		m.cursor = clamp(m.cursor, len(m.movies))
		return m, nil

	case showtimesLoadedMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail("No se pudieron cargar las funciones", msg.err)
		}
		m.movie = msg.movie
		m.times = msg.showtimes
		m.section = SectionShowtimes
		m.cursor = 0
		return m, nil

	case seatMapLoadedMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail("No se pudo cargar el mapa de asientos", msg.err)
		}
		m.seatMap = msg.seatMap
		m.section = SectionSeats
		m.cursor = 0
		return m, nil

	case seatMapRefreshedMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail("No se pudo actualizar el mapa de asientos", msg.err)
		}
		m.seatMap = msg.seatMap
		m.cursor = clamp(m.cursor, len(m.seatMap))
		return m, nil

	case productsLoadedMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail("No se pudo cargar la dulcería", msg.err)
		}
		m.products = msg.products
		m.category = msg.categoria
		// The unfiltered load defines the category cycle.
		if msg.categoria == "" {
			m.categories = distinctCategories(msg.products)
		}
		m.section = SectionProducts
		m.cursor = clamp(m.cursor, len(m.products))
		return m, nil

	case sessionMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail(client.Detail(msg.err, "Error de autenticación"), msg.err)
		}
		user := msg.user
		m.user = &user
		m.section = SectionMovies
		m.cursor = 0
		m.stores.Notices.Success("Bienvenido, " + user.Nombre)
		return m, nil

	case registeredMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail(client.Detail(msg.err, "No se pudo crear la cuenta"), msg.err)
		}
		m.stores.Notices.Success("Cuenta creada, inicia sesión")
		return m.openLoginForm()

	case seatsConfirmedMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail(client.Detail(msg.err, "No se pudieron agregar los boletos"), msg.err)
		}
		if len(msg.chosen) > 0 {
			m.stores.Notices.Success(fmt.Sprintf("%d boletos en el carrito", len(msg.chosen)))
		}
		m.section = SectionShowtimes
		m.cursor = 0
		return m, nil

	case purchaseDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail(client.Detail(msg.err, "La compra no pudo completarse"), msg.err)
		}
		m.receipt = msg.receipt
		m.section = SectionReceipt
		m.cartOpen = false
		return m, nil

	case ticketsLoadedMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail("No se pudieron cargar tus boletos", msg.err)
		}
		m.tickets = msg.tickets
		m.section = SectionTickets
		m.cursor = clamp(m.cursor, len(m.tickets))
		return m, nil

	case ticketCancelledMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail(client.Detail(msg.err, "No se pudo cancelar el boleto"), msg.err)
		}
		m.stores.Notices.Success("Boleto cancelado")
		return m, m.loadTickets()

	case noticeMsg:
		m.notice = msg.Message
		m.noticeLvl = msg.Level
		m.noticeSeq++
		seq := m.noticeSeq
		return m, tea.Batch(m.awaitNotice(), tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
			return noticeFadeMsg{seq: seq}
		}))

	case noticeFadeMsg:
		// Only the latest notice fades; a newer one supersedes the timer.
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) fail(message string, err error) (tea.Model, tea.Cmd) {
	m.stores.Log.Error(message, ": ", err)
	if client.IsConnectionError(err) {
		message = "No hay conexión con el servidor"
	}
	m.stores.Notices.Error(message)
	return m, nil
}

func distinctCategories(products []entities.Product) []string {
	var out []string
	seen := map[string]bool{}
	for _, product := range products {
		if product.Categoria == "" || seen[product.Categoria] {
			continue
		}
		seen[product.Categoria] = true
		out = append(out, product.Categoria)
	}
	return out
}

// nextCategory advances the filter cycle: all, then each category seen
// in the full listing, then back to all.
func (m Model) nextCategory() string {
	cycle := append([]string{""}, m.categories...)
	for i, categoria := range cycle {
		if categoria == m.category {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return ""
}

func clamp(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
