package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/jfuentesr/butaca/constant"
	"github.com/jfuentesr/butaca/entities"
)

// MovieForm carries the fields of the movie create/update multipart
// form. ImagePath is a local file; empty means no image upload.
type MovieForm struct {
	Titulo        string
	Director      string
	Duracion      int
	Clasificacion string
	Genero        string
	Sinopsis      string
	TrailerURL    string
	ImagePath     string
}

type ProductForm struct {
	Nombre      string
	Categoria   string
	Precio      float64
	Stock       int
	Descripcion string
	ImagePath   string
}

type TheaterForm struct {
	Nombre    string `json:"nombre"`
	Capacidad int    `json:"capacidad"`
	Tipo      string `json:"tipo"`
}

type ShowtimeForm struct {
	MovieID   int64   `json:"id_pelicula"`
	TheaterID int64   `json:"id_sala"`
	Horario   string  `json:"horario"`
	Precio    float64 `json:"precio"`
}

// BackOffice is the admin surface. Every call requires a token whose
// user has the admin role; the backend answers 403 otherwise.
type BackOffice interface {
	CreateMovie(ctx context.Context, form MovieForm) error
	UpdateMovie(ctx context.Context, id int64, form MovieForm) error
	DeleteMovie(ctx context.Context, id int64) error

	Theaters(ctx context.Context) ([]entities.Theater, error)
	CreateTheater(ctx context.Context, form TheaterForm) error
	UpdateTheater(ctx context.Context, id int64, form TheaterForm) error
	DeleteTheater(ctx context.Context, id int64) error

	CreateShowtime(ctx context.Context, form ShowtimeForm) error
	UpdateShowtime(ctx context.Context, id int64, form ShowtimeForm) error
	DeleteShowtime(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, form ProductForm) error
	UpdateProduct(ctx context.Context, id int64, form ProductForm) error
	DeleteProduct(ctx context.Context, id int64) error

	Users(ctx context.Context) ([]entities.User, error)
	SetUserRole(ctx context.Context, userID int64, rol string) error

	SalesReport(ctx context.Context) (entities.SalesReport, error)
}

var _ BackOffice = (*BoxOfficeClient)(nil)

func (c *BoxOfficeClient) CreateMovie(ctx context.Context, form MovieForm) error {
	return c.postMultipart(ctx, http.MethodPost, constant.MOVIES_PATH, movieFields(form), form.ImagePath, "movie creation failed")
}

func (c *BoxOfficeClient) UpdateMovie(ctx context.Context, id int64, form MovieForm) error {
	return c.postMultipart(ctx, http.MethodPut, fmt.Sprintf(constant.MOVIE_PATH, id), movieFields(form), form.ImagePath, "movie update failed")
}

func (c *BoxOfficeClient) DeleteMovie(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf(constant.MOVIE_PATH, id), "movie deletion failed")
}

func (c *BoxOfficeClient) Theaters(ctx context.Context) ([]entities.Theater, error) {
	var theaters []entities.Theater
	err := c.getJSON(ctx, constant.THEATERS_PATH, &theaters)
	return theaters, err
}

func (c *BoxOfficeClient) CreateTheater(ctx context.Context, form TheaterForm) error {
	var msg entities.APIMessage
	return c.postJSON(ctx, constant.THEATERS_PATH, form, &msg, "theater creation failed")
}

func (c *BoxOfficeClient) UpdateTheater(ctx context.Context, id int64, form TheaterForm) error {
	var msg entities.APIMessage
	return c.putJSON(ctx, fmt.Sprintf(constant.THEATER_PATH, id), form, &msg, "theater update failed")
}

func (c *BoxOfficeClient) DeleteTheater(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf(constant.THEATER_PATH, id), "theater deletion failed")
}

func (c *BoxOfficeClient) CreateShowtime(ctx context.Context, form ShowtimeForm) error {
	var msg entities.APIMessage
	return c.postJSON(ctx, constant.SHOWTIMES_PATH, form, &msg, "showtime creation failed")
}

func (c *BoxOfficeClient) UpdateShowtime(ctx context.Context, id int64, form ShowtimeForm) error {
	var msg entities.APIMessage
	return c.putJSON(ctx, fmt.Sprintf(constant.SHOWTIME_PATH, id), form, &msg, "showtime update failed")
}

func (c *BoxOfficeClient) DeleteShowtime(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf(constant.SHOWTIME_PATH, id), "showtime deletion failed")
}

func (c *BoxOfficeClient) CreateProduct(ctx context.Context, form ProductForm) error {
	return c.postMultipart(ctx, http.MethodPost, constant.PRODUCTS_PATH, productFields(form), form.ImagePath, "product creation failed")
}

func (c *BoxOfficeClient) UpdateProduct(ctx context.Context, id int64, form ProductForm) error {
	return c.postMultipart(ctx, http.MethodPut, fmt.Sprintf(constant.PRODUCT_PATH, id), productFields(form), form.ImagePath, "product update failed")
}

func (c *BoxOfficeClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf(constant.PRODUCT_PATH, id), "product deletion failed")
}

func (c *BoxOfficeClient) Users(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	err := c.getJSON(ctx, constant.USERS_PATH, &users)
	return users, err
}

func (c *BoxOfficeClient) SetUserRole(ctx context.Context, userID int64, rol string) error {
	var msg entities.APIMessage
	body := map[string]string{"rol": rol}
	return c.putJSON(ctx, fmt.Sprintf(constant.USER_ROLE_PATH, userID), body, &msg, "role update failed")
}

func (c *BoxOfficeClient) SalesReport(ctx context.Context) (entities.SalesReport, error) {
	var report entities.SalesReport
	err := c.getJSON(ctx, constant.REPORTS_PATH, &report)
	return report, err
}

func movieFields(form MovieForm) map[string]string {
	return map[string]string{
		"titulo":        form.Titulo,
		"director":      form.Director,
		"duracion":      strconv.Itoa(form.Duracion),
		"clasificacion": form.Clasificacion,
		"genero":        form.Genero,
		"sinopsis":      form.Sinopsis,
		"trailer_url":   form.TrailerURL,
	}
}

func productFields(form ProductForm) map[string]string {
	return map[string]string{
		"nombre":      form.Nombre,
		"categoria":   form.Categoria,
		"precio":      strconv.FormatFloat(form.Precio, 'f', 2, 64),
		"stock":       strconv.Itoa(form.Stock),
		"descripcion": form.Descripcion,
	}
}

func (c *BoxOfficeClient) putJSON(ctx context.Context, path string, in, out interface{}, fallback string) error {
	payload, err := encodeBody(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, payload, "application/json", out, fallback)
}

func (c *BoxOfficeClient) delete(ctx context.Context, path, fallback string) error {
	var msg entities.APIMessage
	return c.do(ctx, http.MethodDelete, path, nil, "", &msg, fallback)
}

func (c *BoxOfficeClient) postMultipart(ctx context.Context, method, path string, fields map[string]string, imagePath, fallback string) error {
	body, contentType, err := buildMultipart(fields, imagePath)
	if err != nil {
		return err
	}
	var msg entities.APIMessage
	return c.do(ctx, method, path, body, contentType, &msg, fallback)
}

func buildMultipart(fields map[string]string, imagePath string) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", errors.Wrapf(err, "writing form field %s", key)
		}
	}
	if imagePath != "" {
		file, err := os.Open(imagePath)
		if err != nil {
			return nil, "", errors.Wrap(err, "opening image file")
		}
		defer file.Close()
		part, err := writer.CreateFormFile("imagen", filepath.Base(imagePath))
		if err != nil {
			return nil, "", errors.Wrap(err, "creating image part")
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, "", errors.Wrap(err, "copying image data")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", errors.Wrap(err, "finalizing multipart body")
	}
	return buf, writer.FormDataContentType(), nil
}
