package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"github.com/jfuentesr/butaca/entities"
	"github.com/jfuentesr/butaca/seats"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Forms swallow most keystrokes; route to them first.
	if m.section == SectionLogin || m.section == SectionRegister {
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.cursor = clamp(m.cursor-1, m.sectionLength())
		return m, nil

	case "down", "j":
		m.cursor = clamp(m.cursor+1, m.sectionLength())
		return m, nil

	case "c":
		m.cartOpen = !m.cartOpen
		return m, nil

	case "x":
		if m.cartOpen {
			if err := m.stores.Cart.RemoveLineItem(m.cursor); err != nil {
				m.stores.Notices.Warning("Nada que quitar ahí")
			} else {
				m.cursor = clamp(m.cursor, len(m.stores.Cart.Items()))
			}
		}
		return m, nil

	case "p":
		return m.startCheckout()

	case "l":
		if m.user == nil {
			return m.openLoginForm()
		}
		return m, nil

	case "r":
		if m.user == nil {
			return m.openRegisterForm()
		}
		return m, nil

	case "o":
		m.stores.Session.Logout()
		m.user = nil
		m.section = SectionMovies
		m.stores.Notices.Info("Sesión cerrada")
		return m, nil

	case "m":
		m.busy = true
		m.section = SectionMovies
		m.cursor = 0
		return m, m.loadMovies()

	case "d":
		m.busy = true
		return m, m.loadProducts("")

	case "t":
		if m.user == nil {
			m.stores.Notices.Warning("Inicia sesión para ver tus boletos")
			return m, nil
		}
		m.busy = true
		return m, m.loadTickets()

	case "esc":
		return m.goBack()
	}

	return m.handleSectionKey(msg)
}

func (m Model) handleSectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.section {
	case SectionMovies:
		if msg.String() == "enter" && m.cursor < len(m.movies) {
			m.busy = true
			return m, m.loadShowtimes(m.movies[m.cursor])
		}

	case SectionShowtimes:
		if msg.String() == "enter" && m.cursor < len(m.times) {
			if m.user == nil {
				m.stores.Notices.Warning("Inicia sesión para elegir asientos")
				return m, nil
			}
			m.busy = true
			return m, m.openSeats(m.times[m.cursor].ID)
		}

	case SectionSeats:
		return m.handleSeatKey(msg)

	case SectionProducts:
		switch msg.String() {
		case "enter":
			if m.cursor < len(m.products) {
				product := m.products[m.cursor]
				if product.Stock <= 0 {
					m.stores.Notices.Warning("Producto agotado")
					return m, nil
				}
				m.stores.Cart.AddProduct(product)
				m.stores.Notices.Success(product.Nombre + " agregado al carrito")
			}
		case "f":
			m.busy = true
			return m, m.loadProducts(m.nextCategory())
		}

	case SectionTickets:
		if msg.String() == "enter" && m.cursor < len(m.tickets) {
			ticket := m.tickets[m.cursor]
			if ticket.Estado != entities.TicketActive {
				m.stores.Notices.Warning("Solo los boletos activos se pueden cancelar")
				return m, nil
			}
			m.busy = true
			return m, m.cancelTicket(ticket.ID)
		}

	case SectionReceipt:
		if msg.String() == "enter" {
			m.section = SectionMovies
			m.cursor = 0
		}
	}

	return m, nil
}

func (m Model) handleSeatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.cursor = clamp(m.cursor-1, len(m.seatMap))
		return m, nil

	case "right":
		m.cursor = clamp(m.cursor+1, len(m.seatMap))
		return m, nil

	case " ", "enter":
		if m.cursor < len(m.seatMap) {
			if err := m.stores.Seats.Toggle(m.seatMap[m.cursor].Numero); err != nil {
				if errors.Is(err, seats.ErrSeatOccupied) {
					m.stores.Notices.Warning("Ese asiento ya está ocupado")
				} else {
					m.stores.Notices.Warning("Asiento no disponible")
				}
			}
		}
		return m, nil

	case "u":
		m.busy = true
		return m, m.refreshSeats()

	case "a":
		if len(m.stores.Seats.Selected()) == 0 {
			m.stores.Notices.Warning("Elige al menos un asiento")
			return m, nil
		}
		m.busy = true
		return m, m.confirmSeats()
	}
	return m, nil
}

func (m Model) goBack() (tea.Model, tea.Cmd) {
	switch m.section {
	case SectionSeats:
		m.stores.Seats.Cancel()
		m.section = SectionShowtimes
	case SectionShowtimes, SectionProducts, SectionTickets, SectionReceipt:
		m.section = SectionMovies
	case SectionLogin, SectionRegister:
		m.section = m.previous
	}
	m.cursor = 0
	return m, nil
}

func (m Model) startCheckout() (tea.Model, tea.Cmd) {
	if m.user == nil {
		// No network call; send the shopper to the login form instead.
		m.stores.Notices.Warning("Inicia sesión para pagar")
		return m.openLoginForm()
	}
	if m.stores.Cart.Empty() {
		m.stores.Notices.Warning("El carrito está vacío")
		return m, nil
	}
	m.busy = true
	return m, m.doCheckout()
}

func (m Model) sectionLength() int {
	if m.cartOpen {
		return len(m.stores.Cart.Items())
	}
	switch m.section {
	case SectionMovies:
		return len(m.movies)
	case SectionShowtimes:
		return len(m.times)
	case SectionSeats:
		return len(m.seatMap)
	case SectionProducts:
		return len(m.products)
	case SectionTickets:
		return len(m.tickets)
	}
	return 0
}
