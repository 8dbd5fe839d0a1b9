package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/jfuentesr/butaca/client"
	"github.com/jfuentesr/butaca/entities"
)

func (a *app) cmdAdmin(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("admin needs a subcommand: add-movie, edit-movie, delete-movie, add-product, edit-product, delete-product, add-theater, edit-theater, delete-theater, add-showtime, edit-showtime, delete-showtime, list-users, set-role")
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	ctx := context.Background()
	switch args[0] {
	case "add-movie":
		return a.adminAddMovie(ctx, args[1:])
	case "edit-movie":
		return a.adminEditMovie(ctx, args[1:])
	case "add-product":
		return a.adminAddProduct(ctx, args[1:])
	case "edit-product":
		return a.adminEditProduct(ctx, args[1:])
	case "add-theater":
		return a.adminAddTheater(ctx, args[1:])
	case "edit-theater":
		return a.adminEditTheater(ctx, args[1:])
	case "add-showtime":
		return a.adminAddShowtime(ctx, args[1:])
	case "edit-showtime":
		return a.adminEditShowtime(ctx, args[1:])
	case "delete-movie":
		return a.adminDelete(ctx, args[1:], "movie", a.api.DeleteMovie)
	case "delete-product":
		return a.adminDelete(ctx, args[1:], "product", a.api.DeleteProduct)
	case "delete-theater":
		return a.adminDelete(ctx, args[1:], "theater", a.api.DeleteTheater)
	case "delete-showtime":
		return a.adminDelete(ctx, args[1:], "showtime", a.api.DeleteShowtime)
	case "list-users":
		return a.adminListUsers(ctx)
	case "set-role":
		return a.adminSetRole(ctx, args[1:])
	default:
		return fmt.Errorf("unknown admin subcommand %q", args[0])
	}
}

func movieFlags(name string, form *client.MovieForm) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.StringVar(&form.Titulo, "titulo", "", "movie title")
	flags.StringVar(&form.Director, "director", "", "director")
	flags.IntVar(&form.Duracion, "duracion", 0, "duration in minutes")
	flags.StringVar(&form.Clasificacion, "clasificacion", "", "rating (A, B, C)")
	flags.StringVar(&form.Genero, "genero", "", "genre")
	flags.StringVar(&form.Sinopsis, "sinopsis", "", "synopsis")
	flags.StringVar(&form.TrailerURL, "trailer", "", "trailer URL")
	flags.StringVar(&form.ImagePath, "imagen", "", "poster image file")
	return flags
}

func (a *app) adminAddMovie(ctx context.Context, args []string) error {
	form := client.MovieForm{}
	if err := movieFlags("add-movie", &form).Parse(args); err != nil {
		return err
	}
	if form.Titulo == "" || form.Duracion <= 0 {
		return fmt.Errorf("--titulo and a positive --duracion are required")
	}

	if err := a.api.CreateMovie(ctx, form); err != nil {
		return err
	}
	fmt.Println("película creada:", form.Titulo)
	return nil
}

func (a *app) adminEditMovie(ctx context.Context, args []string) error {
	form := client.MovieForm{}
	flags := movieFlags("edit-movie", &form)
	id := flags.Int64("id", 0, "movie id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *id <= 0 || form.Titulo == "" || form.Duracion <= 0 {
		return fmt.Errorf("--id, --titulo and a positive --duracion are required")
	}

	if err := a.api.UpdateMovie(ctx, *id, form); err != nil {
		return err
	}
	fmt.Printf("película %d actualizada\n", *id)
	return nil
}

func productFlags(name string, form *client.ProductForm) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.StringVar(&form.Nombre, "nombre", "", "product name")
	flags.StringVar(&form.Categoria, "categoria", "", "category")
	flags.Float64Var(&form.Precio, "precio", 0, "unit price")
	flags.IntVar(&form.Stock, "stock", 0, "stock")
	flags.StringVar(&form.Descripcion, "descripcion", "", "description")
	flags.StringVar(&form.ImagePath, "imagen", "", "product image file")
	return flags
}

func (a *app) adminAddProduct(ctx context.Context, args []string) error {
	form := client.ProductForm{}
	if err := productFlags("add-product", &form).Parse(args); err != nil {
		return err
	}
	if form.Nombre == "" || form.Precio <= 0 {
		return fmt.Errorf("--nombre and a positive --precio are required")
	}

	if err := a.api.CreateProduct(ctx, form); err != nil {
		return err
	}
	fmt.Println("producto creado:", form.Nombre)
	return nil
}

func (a *app) adminEditProduct(ctx context.Context, args []string) error {
	form := client.ProductForm{}
	flags := productFlags("edit-product", &form)
	id := flags.Int64("id", 0, "product id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *id <= 0 || form.Nombre == "" || form.Precio <= 0 {
		return fmt.Errorf("--id, --nombre and a positive --precio are required")
	}

	if err := a.api.UpdateProduct(ctx, *id, form); err != nil {
		return err
	}
	fmt.Printf("producto %d actualizado\n", *id)
	return nil
}

func theaterFlags(name string, form *client.TheaterForm) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.StringVar(&form.Nombre, "nombre", "", "theater name")
	flags.IntVar(&form.Capacidad, "capacidad", 0, "seat capacity")
	flags.StringVar(&form.Tipo, "tipo", "normal", "theater type (normal, vip, 3d)")
	return flags
}

func (a *app) adminAddTheater(ctx context.Context, args []string) error {
	form := client.TheaterForm{}
	if err := theaterFlags("add-theater", &form).Parse(args); err != nil {
		return err
	}
	if form.Nombre == "" || form.Capacidad <= 0 {
		return fmt.Errorf("--nombre and a positive --capacidad are required")
	}

	if err := a.api.CreateTheater(ctx, form); err != nil {
		return err
	}
	fmt.Println("sala creada:", form.Nombre)
	return nil
}

func (a *app) adminEditTheater(ctx context.Context, args []string) error {
	form := client.TheaterForm{}
	flags := theaterFlags("edit-theater", &form)
	id := flags.Int64("id", 0, "theater id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *id <= 0 || form.Nombre == "" || form.Capacidad <= 0 {
		return fmt.Errorf("--id, --nombre and a positive --capacidad are required")
	}

	if err := a.api.UpdateTheater(ctx, *id, form); err != nil {
		return err
	}
	fmt.Printf("sala %d actualizada\n", *id)
	return nil
}

func showtimeFlags(name string, form *client.ShowtimeForm) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.Int64Var(&form.MovieID, "pelicula", 0, "movie id")
	flags.Int64Var(&form.TheaterID, "sala", 0, "theater id")
	flags.StringVar(&form.Horario, "horario", "", "start time, e.g. 2026-09-01T20:00:00")
	flags.Float64Var(&form.Precio, "precio", 0, "ticket price")
	return flags
}

func (a *app) adminAddShowtime(ctx context.Context, args []string) error {
	form := client.ShowtimeForm{}
	if err := showtimeFlags("add-showtime", &form).Parse(args); err != nil {
		return err
	}
	if form.MovieID <= 0 || form.TheaterID <= 0 || form.Horario == "" || form.Precio <= 0 {
		return fmt.Errorf("--pelicula, --sala, --horario and --precio are required")
	}

	if err := a.api.CreateShowtime(ctx, form); err != nil {
		return err
	}
	fmt.Println("función creada")
	return nil
}

func (a *app) adminEditShowtime(ctx context.Context, args []string) error {
	form := client.ShowtimeForm{}
	flags := showtimeFlags("edit-showtime", &form)
	id := flags.Int64("id", 0, "showtime id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *id <= 0 || form.MovieID <= 0 || form.TheaterID <= 0 || form.Horario == "" || form.Precio <= 0 {
		return fmt.Errorf("--id, --pelicula, --sala, --horario and --precio are required")
	}

	if err := a.api.UpdateShowtime(ctx, *id, form); err != nil {
		return err
	}
	fmt.Printf("función %d actualizada\n", *id)
	return nil
}

func (a *app) adminDelete(ctx context.Context, args []string, what string, del func(context.Context, int64) error) error {
	flags := flag.NewFlagSet("delete-"+what, flag.ContinueOnError)
	id := flags.Int64("id", 0, what+" id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("--id is required")
	}

	if err := del(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("%s %d eliminado\n", what, *id)
	return nil
}

func (a *app) adminListUsers(ctx context.Context) error {
	users, err := a.api.Users(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tCORREO\tROL")
	for _, user := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", user.ID, user.Nombre, user.Correo, user.Rol)
	}
	return w.Flush()
}

func (a *app) adminSetRole(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("set-role", flag.ContinueOnError)
	userID := flags.Int64("user", 0, "user id")
	rol := flags.String("rol", "", "new role (user or admin)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *userID <= 0 || (*rol != entities.RoleUser && *rol != entities.RoleAdmin) {
		return fmt.Errorf("--user and --rol (user|admin) are required")
	}

	if err := a.api.SetUserRole(ctx, *userID, *rol); err != nil {
		return err
	}
	fmt.Printf("usuario %d ahora es %s\n", *userID, *rol)
	return nil
}
