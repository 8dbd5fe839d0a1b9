package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/jfuentesr/butaca/cart"
	"github.com/jfuentesr/butaca/checkout"
	"github.com/jfuentesr/butaca/client"
	"github.com/jfuentesr/butaca/config"
	"github.com/jfuentesr/butaca/localstore"
	"github.com/jfuentesr/butaca/notify"
	"github.com/jfuentesr/butaca/observability"
	"github.com/jfuentesr/butaca/persistence"
	"github.com/jfuentesr/butaca/seats"
	"github.com/jfuentesr/butaca/session"
	"github.com/jfuentesr/butaca/tui"
	"github.com/jfuentesr/butaca/utils"
)

type tokenRef struct {
	store *session.Store
}

func (t *tokenRef) Token() string {
	if t.store == nil {
		return ""
	}
	return t.store.Token()
}

type app struct {
	cfg     config.Config
	log     observability.Logger
	api     *client.BoxOfficeClient
	session *session.Store
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", client.Detail(err, err.Error()))
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := observability.NewLogger(cfg.LogLevel)

	local, err := localstore.NewFileStore(cfg.StateDir)
	if err != nil {
		return err
	}

	// The session store is the client's token source and the client is
	// the session store's authenticator; the indirection breaks the
	// construction cycle.
	tokens := &tokenRef{}
	api := client.New(client.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Tokens:  tokens,
		Logger:  log,
	})
	sessionStore := session.NewStore(api, local, log)
	tokens.store = sessionStore

	sessionStore.Restore()
	// The backend is the authority on token validity; an expired exp
	// claim is only worth a heads-up, the next 401 does the rest.
	if sessionStore.Expired() {
		log.Warn("stored session looks expired, expect a re-login")
	}

	a := &app{cfg: cfg, log: log, api: api, session: sessionStore}

	if len(args) == 0 {
		return a.runTUI()
	}

	switch args[0] {
	case "login":
		return a.cmdLogin(args[1:])
	case "logout":
		a.session.Logout()
		fmt.Println("sesión cerrada")
		return nil
	case "admin":
		return a.cmdAdmin(args[1:])
	case "report":
		return a.cmdReport(args[1:])
	default:
		return fmt.Errorf("unknown command %q (expected login, logout, admin or report)", args[0])
	}
}

func (a *app) runTUI() error {
	cartStore := cart.NewStore()
	seatController := seats.NewController(a.api, cartStore, a.log)
	notices := notify.NewCenter()

	archive, err := a.buildArchive()
	if err != nil {
		return err
	}
	flow := checkout.NewFlow(a.api, a.session, cartStore, archive, a.log)

	// Logging out mid-session drops everything tied to the user.
	a.session.OnLogout(func() {
		cartStore.Clear()
		seatController.Cancel()
	})

	model := tui.New(tui.Stores{
		API:      a.api,
		Session:  a.session,
		Cart:     cartStore,
		Seats:    seatController,
		Checkout: flow,
		Notices:  notices,
		Log:      a.log,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func (a *app) buildArchive() (persistence.Archive, error) {
	switch a.cfg.ArchiveMode {
	case config.ArchiveFile:
		return persistence.NewFileArchive(a.cfg.ArchivePath()), nil
	case config.ArchivePostgres:
		ctx := context.Background()
		pool, err := persistence.NewPostgresPool(ctx)
		if err != nil {
			return nil, err
		}
		if err := persistence.InitPostgresSchema(ctx, pool, "db/schema.sql"); err != nil {
			return nil, err
		}
		return persistence.NewPostgresArchive(pool), nil
	default:
		return persistence.NoopArchive{}, nil
	}
}

func (a *app) cmdLogin(args []string) error {
	flags := flag.NewFlagSet("login", flag.ContinueOnError)
	correo := flags.String("correo", "", "account email")
	contrasena := flags.String("contrasena", "", "account password")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *correo == "" || *contrasena == "" {
		return fmt.Errorf("--correo and --contrasena are required")
	}

	user, err := a.session.Login(context.Background(), *correo, *contrasena)
	if err != nil {
		return err
	}
	fmt.Printf("sesión iniciada como %s (%s)\n", user.Nombre, user.Rol)
	return nil
}

func (a *app) cmdReport(args []string) error {
	flags := flag.NewFlagSet("report", flag.ContinueOnError)
	out := flags.String("out", "", "write the report as JSON to this file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	report, err := a.api.SalesReport(context.Background())
	if err != nil {
		return err
	}

	if *out != "" {
		if err := utils.WriteJSONFile(*out, report); err != nil {
			return err
		}
		fmt.Println("reporte escrito en", *out)
		return nil
	}

	fmt.Println("Ventas totales: ", utils.FormatPrice(report.TotalSales))
	fmt.Println("Boletos vendidos:", report.TicketsSold)
	fmt.Println("Productos vendidos:", report.ProductsSold)
	fmt.Println("Usuarios registrados:", report.TotalUsers)
	if len(report.PopularMovies) > 0 {
		fmt.Println("Películas populares:")
		for _, movie := range report.PopularMovies {
			fmt.Printf("  %-30s %d boletos\n", movie.Titulo, movie.BoletosVendidos)
		}
	}
	return nil
}

func (a *app) requireAdmin() error {
	user, err := a.session.User()
	if err != nil {
		return fmt.Errorf("log in first: butaca login --correo ... --contrasena ...")
	}
	if !user.IsAdmin() {
		return fmt.Errorf("%s is not an admin account", user.Correo)
	}
	return nil
}
