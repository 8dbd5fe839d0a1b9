package checkout

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/jfuentesr/butaca/cart"
	"github.com/jfuentesr/butaca/entities"
	"github.com/jfuentesr/butaca/observability"
	"github.com/jfuentesr/butaca/persistence"
	"github.com/jfuentesr/butaca/session"
)

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrEmptyCart        = errors.New("cart is empty")
)

// TicketDesk is the slice of the backend the checkout flow needs.
type TicketDesk interface {
	Purchase(ctx context.Context, req entities.PurchaseRequest) (entities.PurchaseReceipt, error)
	UserTickets(ctx context.Context, userID int64) ([]entities.Ticket, error)
	CancelTicket(ctx context.Context, ticketID int64) error
}

// Flow runs the purchase: it turns the cart into a purchase request for
// the logged-in user, and on success empties the cart and archives the
// receipt. A failed purchase leaves the cart untouched.
type Flow struct {
	api     TicketDesk
	session *session.Store
	cart    *cart.Store
	archive persistence.Archive
	log     observability.Logger
	clock   func() time.Time
}

func NewFlow(api TicketDesk, sessionStore *session.Store, cartStore *cart.Store, archive persistence.Archive, log observability.Logger) *Flow {
	if archive == nil {
		archive = persistence.NoopArchive{}
	}
	return &Flow{
		api:     api,
		session: sessionStore,
		cart:    cartStore,
		archive: archive,
		log:     log,
		clock:   time.Now,
	}
}

func (f *Flow) Checkout(ctx context.Context) (entities.PurchaseReceipt, error) {
	user, err := f.session.User()
	if err != nil {
		return entities.PurchaseReceipt{}, ErrNotAuthenticated
	}
	if f.cart.Empty() {
		return entities.PurchaseReceipt{}, ErrEmptyCart
	}

	req := entities.PurchaseRequest{
		UserID: user.ID,
		Items:  f.cart.PurchaseItems(),
		Total:  f.cart.Total(),
	}

	receipt, err := f.api.Purchase(ctx, req)
	if err != nil {
		return entities.PurchaseReceipt{}, err
	}

	f.cart.Clear()
	f.log.WithField("userId", user.ID).Info("purchase completed, total ", receipt.Total)

	entry := entities.PurchaseLogEntry{
		UserID:      user.ID,
		Correo:      user.Correo,
		Total:       receipt.Total,
		Tickets:     len(receipt.Boletos),
		Products:    len(receipt.Productos),
		PurchasedAt: f.clock(),
	}
	if err := f.archive.WritePurchase(ctx, entry); err != nil {
		// The purchase went through; a broken archive must not fail it.
		f.log.Warn("archiving purchase: ", err)
	}
	return receipt, nil
}

// Tickets lists the logged-in user's tickets.
func (f *Flow) Tickets(ctx context.Context) ([]entities.Ticket, error) {
	user, err := f.session.User()
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	return f.api.UserTickets(ctx, user.ID)
}

// Cancel voids an active ticket. The backend decides whether it is
// still cancellable.
func (f *Flow) Cancel(ctx context.Context, ticketID int64) error {
	if _, err := f.session.User(); err != nil {
		return ErrNotAuthenticated
	}
	return f.api.CancelTicket(ctx, ticketID)
}
