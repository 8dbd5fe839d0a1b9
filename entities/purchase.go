package entities

const (
	ItemTypeTicket  = "ticket"
	ItemTypeProduct = "product"
)

type PurchaseItem struct {
	Type       string `json:"type"`
	ShowtimeID int64  `json:"id_funcion,omitempty"`
	ProductID  int64  `json:"id_producto,omitempty"`
	Asiento    string `json:"asiento,omitempty"`
	Cantidad   int    `json:"cantidad,omitempty"`
}

type PurchaseRequest struct {
	UserID int64          `json:"id_usuario"`
	Items  []PurchaseItem `json:"items"`
	Total  float64        `json:"total"`
}

type PurchasedTicket struct {
	ID       int64   `json:"id_boleto"`
	Codigo   string  `json:"codigo"`
	Pelicula string  `json:"pelicula"`
	Sala     string  `json:"sala"`
	Horario  string  `json:"horario"`
	Asiento  string  `json:"asiento"`
	Precio   float64 `json:"precio"`
}

type PurchasedProduct struct {
	VentaID        int64   `json:"id_venta"`
	Producto       string  `json:"producto"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Total          float64 `json:"total"`
}

type PurchaseReceipt struct {
	Message   string             `json:"message"`
	Total     float64            `json:"total"`
	Boletos   []PurchasedTicket  `json:"boletos"`
	Productos []PurchasedProduct `json:"productos"`
}

type PopularMovie struct {
	Titulo          string `json:"titulo"`
	BoletosVendidos int    `json:"boletos_vendidos"`
}

type SalesReport struct {
	TotalSales    float64        `json:"total_sales"`
	TicketsSold   int            `json:"tickets_sold"`
	ProductsSold  int            `json:"products_sold"`
	TotalUsers    int            `json:"total_users"`
	PopularMovies []PopularMovie `json:"popular_movies"`
}

// APIMessage is the generic {"message": ...} body the backend returns
// for admin create/update/delete operations.
type APIMessage struct {
	Message string `json:"message"`
}
