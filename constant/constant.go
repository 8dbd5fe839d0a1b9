package constant

const (
	LOGIN_PATH     = "/api/auth/login"
	REGISTER_PATH  = "/api/auth/register"
	USERS_PATH     = "/api/auth/users"
	USER_ROLE_PATH = "/api/auth/users/%d/role"

	MOVIES_PATH = "/api/movies/"
	MOVIE_PATH  = "/api/movies/%d"

	THEATERS_PATH = "/api/theaters/"
	THEATER_PATH  = "/api/theaters/%d"

	SHOWTIMES_PATH          = "/api/theaters/showtimes"
	SHOWTIMES_BY_MOVIE_PATH = "/api/theaters/showtimes?movie_id=%d"
	SHOWTIME_PATH           = "/api/theaters/showtimes/%d"
	SEATS_PATH              = "/api/theaters/showtimes/%d/seats"

	PRODUCTS_PATH             = "/api/products/"
	PRODUCT_PATH              = "/api/products/%d"
	PRODUCTS_BY_CATEGORY_PATH = "/api/products/?categoria=%s"

	PURCHASE_PATH      = "/api/tickets/purchase"
	USER_TICKETS_PATH  = "/api/tickets/user/%d"
	TICKET_CANCEL_PATH = "/api/tickets/%d/cancel"
	REPORTS_PATH       = "/api/tickets/reports"
)

const (
	DEFAULT_API_URL = "http://localhost:8000"
	STATE_FILE_NAME = "state.json"
)
