package entities

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID     int64  `json:"id_usuario"`
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
	Edad   int    `json:"edad,omitempty"`
	Rol    string `json:"rol"`
}

func (u *User) IsAdmin() bool {
	return u.Rol == RoleAdmin
}

type Credentials struct {
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
}

type Registration struct {
	Nombre     string `json:"nombre"`
	Edad       int    `json:"edad"`
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type Movie struct {
	ID            int64  `json:"id_pelicula"`
	Titulo        string `json:"titulo"`
	Director      string `json:"director"`
	Duracion      int    `json:"duracion"`
	Clasificacion string `json:"clasificacion"`
	Genero        string `json:"genero"`
	Sinopsis      string `json:"sinopsis,omitempty"`
	ImagenURL     string `json:"imagen_url,omitempty"`
	TrailerURL    string `json:"trailer_url,omitempty"`
}

type Theater struct {
	ID        int64  `json:"id_sala"`
	Nombre    string `json:"nombre"`
	Capacidad int    `json:"capacidad"`
	Tipo      string `json:"tipo"`
}

type Showtime struct {
	ID                  int64   `json:"id_funcion"`
	MovieID             int64   `json:"id_pelicula"`
	TheaterID           int64   `json:"id_sala"`
	Horario             string  `json:"horario"`
	Precio              float64 `json:"precio"`
	PeliculaTitulo      string  `json:"pelicula_titulo"`
	SalaNombre          string  `json:"sala_nombre"`
	AsientosDisponibles int     `json:"asientos_disponibles"`
}

type Product struct {
	ID          int64   `json:"id_producto"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio"`
	Categoria   string  `json:"categoria"`
	Stock       int     `json:"stock"`
	ImagenURL   string  `json:"imagen_url,omitempty"`
}

const (
	TicketActive    = "activo"
	TicketUsed      = "usado"
	TicketCancelled = "cancelado"
)

type Ticket struct {
	ID             int64   `json:"id_boleto"`
	UserID         int64   `json:"id_usuario"`
	ShowtimeID     int64   `json:"id_funcion"`
	Asiento        string  `json:"asiento"`
	Precio         float64 `json:"precio"`
	Estado         string  `json:"estado"`
	Codigo         string  `json:"codigo_boleto"`
	PeliculaTitulo string  `json:"pelicula_titulo"`
	SalaNombre     string  `json:"sala_nombre"`
	Horario        string  `json:"horario"`
}

// PurchaseLogEntry is the archive record written after a successful
// checkout. It mirrors the receipt, not the cart: counts come from what
// the backend confirmed.
type PurchaseLogEntry struct {
	UserID      int64     `json:"userId"`
	Correo      string    `json:"correo"`
	Total       float64   `json:"total"`
	Tickets     int       `json:"tickets"`
	Products    int       `json:"products"`
	PurchasedAt time.Time `json:"purchasedAt"`
}
