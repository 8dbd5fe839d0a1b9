package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jfuentesr/butaca/entities"
)

func (m Model) loadMovies() tea.Cmd {
	api := m.stores.API
	return func() tea.Msg {
		movies, err := api.Movies(context.Background())
		return moviesLoadedMsg{movies: movies, err: err}
	}
}

func (m Model) loadShowtimes(movie entities.Movie) tea.Cmd {
	api := m.stores.API
	return func() tea.Msg {
		showtimes, err := api.Showtimes(context.Background(), movie.ID)
		return showtimesLoadedMsg{movie: movie, showtimes: showtimes, err: err}
	}
}

func (m Model) openSeats(showtimeID int64) tea.Cmd {
	controller := m.stores.Seats
	return func() tea.Msg {
		seatMap, err := controller.Open(context.Background(), showtimeID)
		return seatMapLoadedMsg{seatMap: seatMap, err: err}
	}
}

func (m Model) refreshSeats() tea.Cmd {
	controller := m.stores.Seats
	return func() tea.Msg {
		seatMap, err := controller.Refresh(context.Background())
		return seatMapRefreshedMsg{seatMap: seatMap, err: err}
	}
}

func (m Model) confirmSeats() tea.Cmd {
	controller := m.stores.Seats
	return func() tea.Msg {
		chosen, err := controller.Confirm(context.Background())
		return seatsConfirmedMsg{chosen: chosen, err: err}
	}
}

func (m Model) loadProducts(categoria string) tea.Cmd {
	api := m.stores.API
	return func() tea.Msg {
		products, err := api.Products(context.Background(), categoria)
		return productsLoadedMsg{categoria: categoria, products: products, err: err}
	}
}

func (m Model) loadTickets() tea.Cmd {
	flow := m.stores.Checkout
	return func() tea.Msg {
		tickets, err := flow.Tickets(context.Background())
		return ticketsLoadedMsg{tickets: tickets, err: err}
	}
}

func (m Model) cancelTicket(ticketID int64) tea.Cmd {
	flow := m.stores.Checkout
	return func() tea.Msg {
		err := flow.Cancel(context.Background(), ticketID)
		return ticketCancelledMsg{ticketID: ticketID, err: err}
	}
}

func (m Model) doCheckout() tea.Cmd {
	flow := m.stores.Checkout
	return func() tea.Msg {
		receipt, err := flow.Checkout(context.Background())
		return purchaseDoneMsg{receipt: receipt, err: err}
	}
}

func (m Model) doLogin(correo, contrasena string) tea.Cmd {
	store := m.stores.Session
	return func() tea.Msg {
		user, err := store.Login(context.Background(), correo, contrasena)
		return sessionMsg{user: user, err: err}
	}
}

func (m Model) doRegister(reg entities.Registration) tea.Cmd {
	store := m.stores.Session
	return func() tea.Msg {
		return registeredMsg{err: store.Register(context.Background(), reg)}
	}
}

// awaitNotice blocks on the notification channel and resubscribes
// itself after every delivery.
func (m Model) awaitNotice() tea.Cmd {
	ch := m.noticeCh
	return func() tea.Msg {
		return noticeMsg(<-ch)
	}
}
