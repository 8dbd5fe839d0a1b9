package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/jfuentesr/butaca/constant"
	"github.com/jfuentesr/butaca/entities"
	"github.com/jfuentesr/butaca/observability"
)

// TokenSource supplies the bearer token for authenticated calls. An
// empty token means the request goes out anonymous.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token source, handy for admin CLI commands and
// tests.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// BoxOffice is the shopper-facing surface of the cinema backend.
type BoxOffice interface {
	Login(ctx context.Context, creds entities.Credentials) (entities.LoginResponse, error)
	Register(ctx context.Context, reg entities.Registration) error
	Movies(ctx context.Context) ([]entities.Movie, error)
	Movie(ctx context.Context, id int64) (entities.Movie, error)
	Showtimes(ctx context.Context, movieID int64) ([]entities.Showtime, error)
	Showtime(ctx context.Context, id int64) (entities.Showtime, error)
	SeatMap(ctx context.Context, showtimeID int64) (entities.SeatMap, error)
	Products(ctx context.Context, categoria string) ([]entities.Product, error)
	Purchase(ctx context.Context, req entities.PurchaseRequest) (entities.PurchaseReceipt, error)
	UserTickets(ctx context.Context, userID int64) ([]entities.Ticket, error)
	CancelTicket(ctx context.Context, ticketID int64) error
}

var _ BoxOffice = (*BoxOfficeClient)(nil)

type BoxOfficeClient struct {
	base   string
	client *http.Client
	tokens TokenSource
	log    observability.Logger
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
	Logger  observability.Logger
}

func New(opts Options) *BoxOfficeClient {
	if opts.BaseURL == "" {
		opts.BaseURL = constant.DEFAULT_API_URL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Tokens == nil {
		opts.Tokens = StaticToken("")
	}
	if opts.Logger == nil {
		opts.Logger = observability.NewLogger("info")
	}
	return &BoxOfficeClient{
		base:   opts.BaseURL,
		client: &http.Client{Timeout: opts.Timeout},
		tokens: opts.Tokens,
		log:    opts.Logger,
	}
}

func (c *BoxOfficeClient) Login(ctx context.Context, creds entities.Credentials) (entities.LoginResponse, error) {
	var resp entities.LoginResponse
	err := c.postJSON(ctx, constant.LOGIN_PATH, creds, &resp, "login failed")
	return resp, err
}

// Register creates the account only; the caller logs in separately.
func (c *BoxOfficeClient) Register(ctx context.Context, reg entities.Registration) error {
	var msg entities.APIMessage
	return c.postJSON(ctx, constant.REGISTER_PATH, reg, &msg, "registration failed")
}

func (c *BoxOfficeClient) Movies(ctx context.Context) ([]entities.Movie, error) {
	var movies []entities.Movie
	err := c.getJSON(ctx, constant.MOVIES_PATH, &movies)
	return movies, err
}

func (c *BoxOfficeClient) Movie(ctx context.Context, id int64) (entities.Movie, error) {
	var movie entities.Movie
	err := c.getJSON(ctx, fmt.Sprintf(constant.MOVIE_PATH, id), &movie)
	return movie, err
}

func (c *BoxOfficeClient) Showtimes(ctx context.Context, movieID int64) ([]entities.Showtime, error) {
	path := constant.SHOWTIMES_PATH
	if movieID > 0 {
		path = fmt.Sprintf(constant.SHOWTIMES_BY_MOVIE_PATH, movieID)
	}
	var showtimes []entities.Showtime
	err := c.getJSON(ctx, path, &showtimes)
	return showtimes, err
}

func (c *BoxOfficeClient) Showtime(ctx context.Context, id int64) (entities.Showtime, error) {
	var showtime entities.Showtime
	err := c.getJSON(ctx, fmt.Sprintf(constant.SHOWTIME_PATH, id), &showtime)
	return showtime, err
}

func (c *BoxOfficeClient) SeatMap(ctx context.Context, showtimeID int64) (entities.SeatMap, error) {
	var seats entities.SeatMap
	err := c.getJSON(ctx, fmt.Sprintf(constant.SEATS_PATH, showtimeID), &seats)
	return seats, err
}

func (c *BoxOfficeClient) Products(ctx context.Context, categoria string) ([]entities.Product, error) {
	path := constant.PRODUCTS_PATH
	if categoria != "" {
		path = fmt.Sprintf(constant.PRODUCTS_BY_CATEGORY_PATH, categoria)
	}
	var products []entities.Product
	err := c.getJSON(ctx, path, &products)
	return products, err
}

func (c *BoxOfficeClient) Purchase(ctx context.Context, req entities.PurchaseRequest) (entities.PurchaseReceipt, error) {
	var receipt entities.PurchaseReceipt
	err := c.postJSON(ctx, constant.PURCHASE_PATH, req, &receipt, "purchase failed")
	return receipt, err
}

func (c *BoxOfficeClient) UserTickets(ctx context.Context, userID int64) ([]entities.Ticket, error) {
	var tickets []entities.Ticket
	err := c.getJSON(ctx, fmt.Sprintf(constant.USER_TICKETS_PATH, userID), &tickets)
	return tickets, err
}

func (c *BoxOfficeClient) CancelTicket(ctx context.Context, ticketID int64) error {
	var msg entities.APIMessage
	return c.postJSON(ctx, fmt.Sprintf(constant.TICKET_CANCEL_PATH, ticketID), nil, &msg, "ticket cancellation failed")
}

func (c *BoxOfficeClient) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out, "request failed")
}

func (c *BoxOfficeClient) postJSON(ctx context.Context, path string, in, out interface{}, fallback string) error {
	body, err := encodeBody(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, body, "application/json", out, fallback)
}

func encodeBody(in interface{}) (io.Reader, error) {
	if in == nil {
		return nil, nil
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, errors.Wrap(err, "encoding request body")
	}
	return bytes.NewReader(payload), nil
}

func (c *BoxOfficeClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}, fallback string) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WithField("requestId", requestID).Debug("transport failure: ", err)
		return errors.Mark(errors.Wrapf(err, "%s %s", method, path), ErrConnection)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "reading response body"), ErrConnection)
	}
	c.log.WithField("requestId", requestID).Debug(method, " ", path, " -> ", resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp.StatusCode, raw, fallback)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "decoding %s response", path)
	}
	return nil
}
