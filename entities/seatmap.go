package entities

type Seat struct {
	Numero  string `json:"numero"`
	Ocupado bool   `json:"ocupado"`
}

// SeatMap is the per-showtime occupancy snapshot as returned by the
// backend. Order follows the theater layout.
type SeatMap []Seat

func (m SeatMap) Find(numero string) (Seat, bool) {
	for _, seat := range m {
		if seat.Numero == numero {
			return seat, true
		}
	}
	return Seat{}, false
}

func (m SeatMap) IsOccupied(numero string) bool {
	seat, ok := m.Find(numero)
	return ok && seat.Ocupado
}

func (m SeatMap) Available() int {
	total := 0
	for _, seat := range m {
		if !seat.Ocupado {
			total++
		}
	}
	return total
}

func (m SeatMap) Occupied() int {
	return len(m) - m.Available()
}
