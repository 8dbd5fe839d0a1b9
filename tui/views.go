package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jfuentesr/butaca/entities"
	"github.com/jfuentesr/butaca/notify"
	"github.com/jfuentesr/butaca/utils"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎬 CineMagic"))
	b.WriteString("  ")
	b.WriteString(m.headerLine())
	b.WriteString("\n\n")

	main := m.sectionView()
	if m.cartOpen {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", m.cartView())
	}
	b.WriteString(main)

	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(m.noticeStyle().Render(m.notice))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) headerLine() string {
	parts := []string{}
	if m.user != nil {
		who := m.user.Nombre
		if m.user.IsAdmin() {
			who += " (admin)"
		}
		parts = append(parts, sectionStyle.Render(who))
	} else {
		parts = append(parts, dimStyle.Render("sin sesión"))
	}
	parts = append(parts, sectionStyle.Render(fmt.Sprintf("🛒 %d", m.stores.Cart.ItemCount())))
	if m.busy {
		parts = append(parts, dimStyle.Render("cargando…"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) sectionView() string {
	switch m.section {
	case SectionWelcome:
		return dimStyle.Render("Cargando cartelera…")
	case SectionLogin:
		return m.formView("Iniciar sesión")
	case SectionRegister:
		return m.formView("Crear cuenta")
	case SectionMovies:
		return m.moviesView()
	case SectionShowtimes:
		return m.showtimesView()
	case SectionSeats:
		return m.seatsView()
	case SectionProducts:
		return m.productsView()
	case SectionTickets:
		return m.ticketsView()
	case SectionReceipt:
		return m.receiptView()
	}
	return ""
}

func (m Model) formView(title string) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n\n")
	for i, input := range m.inputs {
		if i == m.inputFocus {
			b.WriteString(cursorStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) moviesView() string {
	if len(m.movies) == 0 {
		return dimStyle.Render("No hay películas en cartelera")
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Cartelera"))
	b.WriteString("\n\n")
	for i, movie := range m.movies {
		line := fmt.Sprintf("%s (%s, %d min) - %s", movie.Titulo, movie.Clasificacion, movie.Duracion, movie.Genero)
		b.WriteString(m.listLine(i, line))
	}
	return b.String()
}

func (m Model) showtimesView() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Funciones de " + m.movie.Titulo))
	b.WriteString("\n\n")
	if len(m.times) == 0 {
		b.WriteString(dimStyle.Render("No hay funciones programadas"))
		return b.String()
	}
	for i, st := range m.times {
		line := fmt.Sprintf("%s  %s  %s  (%d libres)",
			utils.FormatHorario(st.Horario), st.SalaNombre, utils.FormatPrice(st.Precio), st.AsientosDisponibles)
		b.WriteString(m.listLine(i, line))
	}
	return b.String()
}

func (m Model) seatsView() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Elige tus asientos"))
	b.WriteString("\n\n")

	row := ""
	for i, seat := range m.seatMap {
		label := seat.Numero
		switch {
		case seat.Ocupado:
			label = seatOccupiedStyle.Render(label)
		case m.stores.Seats.IsSelected(seat.Numero):
			label = seatChosenStyle.Render(label)
		default:
			label = seatFreeStyle.Render(label)
		}
		if i == m.cursor {
			label = "[" + label + "]"
		} else {
			label = " " + label + " "
		}
		row += label + " "

		nextRow := i < len(m.seatMap)-1 &&
			len(seat.Numero) > 0 && len(m.seatMap[i+1].Numero) > 0 &&
			m.seatMap[i+1].Numero[0] != seat.Numero[0]
		if nextRow {
			b.WriteString(row)
			b.WriteString("\n")
			row = ""
		}
	}
	if row != "" {
		b.WriteString(row)
		b.WriteString("\n")
	}

	if chosen := m.stores.Seats.Selected(); len(chosen) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Seleccionados: " + strings.Join(chosen, ", ")))
	}
	return b.String()
}

func (m Model) productsView() string {
	if len(m.products) == 0 {
		return dimStyle.Render("La dulcería está vacía")
	}
	var b strings.Builder
	title := "Dulcería"
	if m.category != "" {
		title += " · " + m.category
	}
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n\n")
	for i, product := range m.products {
		line := fmt.Sprintf("%s  %s  (%s)", product.Nombre, utils.FormatPrice(product.Precio), product.Categoria)
		if product.Stock <= 0 {
			line += dimStyle.Render("  agotado")
		}
		b.WriteString(m.listLine(i, line))
	}
	return b.String()
}

func (m Model) ticketsView() string {
	if len(m.tickets) == 0 {
		return dimStyle.Render("No tienes boletos")
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Mis boletos"))
	b.WriteString("\n\n")
	for i, ticket := range m.tickets {
		line := fmt.Sprintf("%s  %s  %s  asiento %s  [%s]",
			ticket.Codigo, ticket.PeliculaTitulo, utils.FormatHorario(ticket.Horario), ticket.Asiento, ticket.Estado)
		if ticket.Estado == entities.TicketCancelled {
			line = dimStyle.Render(line)
		}
		b.WriteString(m.listLine(i, line))
	}
	return b.String()
}

func (m Model) receiptView() string {
	var b strings.Builder
	b.WriteString(noticeSuccessStyle.Render("✔ " + m.receipt.Message))
	b.WriteString("\n\n")
	for _, boleto := range m.receipt.Boletos {
		b.WriteString(fmt.Sprintf("  🎟  %s  %s  asiento %s  %s\n",
			boleto.Codigo, boleto.Pelicula, boleto.Asiento, utils.FormatPrice(boleto.Precio)))
	}
	for _, producto := range m.receipt.Productos {
		b.WriteString(fmt.Sprintf("  🍿 %dx %s  %s\n",
			producto.Cantidad, producto.Producto, utils.FormatPrice(producto.Total)))
	}
	b.WriteString("\n")
	b.WriteString(cursorStyle.Render("Total: " + utils.FormatPrice(m.receipt.Total)))
	return b.String()
}

func (m Model) cartView() string {
	items := m.stores.Cart.Items()
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Carrito"))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("vacío"))
	}
	for i, item := range items {
		line := fmt.Sprintf("%dx %s  %s", item.Quantity, item.Name, utils.FormatPrice(item.Subtotal()))
		b.WriteString(m.listLine(i, line))
	}
	b.WriteString("\n")
	b.WriteString(cursorStyle.Render("Total: " + utils.FormatPrice(m.stores.Cart.Total())))
	return cartStyle.Render(b.String())
}

func (m Model) listLine(i int, line string) string {
	if i == m.cursor {
		return cursorStyle.Render("> "+line) + "\n"
	}
	return "  " + line + "\n"
}

func (m Model) noticeStyle() lipgloss.Style {
	switch m.noticeLvl {
	case notify.Success:
		return noticeSuccessStyle
	case notify.Warning:
		return noticeWarningStyle
	case notify.Error:
		return noticeErrorStyle
	}
	return noticeInfoStyle
}

func (m Model) helpLine() string {
	switch m.section {
	case SectionLogin, SectionRegister:
		return "tab: siguiente campo · enter: enviar · esc: volver"
	case SectionSeats:
		return "←/→: mover · espacio: elegir · a: agregar al carrito · u: actualizar · esc: cancelar"
	case SectionProducts:
		return "enter: agregar al carrito · f: filtrar categoría · esc: volver · q: salir"
	case SectionTickets:
		return "enter: cancelar boleto · esc: volver · q: salir"
	}
	base := "m: cartelera · d: dulcería · t: boletos · c: carrito · p: pagar"
	if m.user == nil {
		base += " · l: entrar · r: registro"
	} else {
		base += " · o: salir de sesión"
	}
	if m.cartOpen {
		base += " · x: quitar línea"
	}
	return base + " · q: salir"
}
