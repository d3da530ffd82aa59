package sales

import (
	"context"
	"time"

	"github.com/warungkapten/kasir-backend/internal/modules/cart"
)

// Cashier identifies who is ringing up the sale, taken from the session.
type Cashier struct {
	ID   string
	Name string
}

// Service defines checkout and transaction history business logic.
type Service interface {
	// Checkout validates the cashier's cart and payment inputs, persists
	// the transaction and clears the cart. A validation failure or a
	// failed write leaves the cart exactly as it was.
	Checkout(ctx context.Context, cashier Cashier, req CheckoutRequest) (*Transaction, error)

	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	ListTransactions(ctx context.Context) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	Receipt(ctx context.Context, id string) (string, error)
}

type service struct {
	repo     Repository
	sessions *cart.Sessions
}

// NewService creates a new sales service over the cashier cart registry.
func NewService(repo Repository, sessions *cart.Sessions) Service {
	return &service{repo: repo, sessions: sessions}
}

func (s *service) Checkout(ctx context.Context, cashier Cashier, req CheckoutRequest) (*Transaction, error) {
	method, err := ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	in := CheckoutInput{
		CustomerName:   req.CustomerName,
		PaymentMethod:  method,
		AmountTendered: req.AmountTendered,
		CashierID:      cashier.ID,
		CashierName:    cashier.Name,
	}

	var tx *Transaction
	err = s.sessions.With(cashier.ID, func(c *cart.Cart) error {
		tx, err = Checkout(c, in, time.Now())
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, tx); err != nil {
			// Keep the cart so the cashier can retry the write as-is.
			tx = nil
			return &PersistenceError{Err: err}
		}
		c.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *service) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListTransactions(ctx context.Context) ([]*Transaction, error) {
	return s.repo.List(ctx)
}

func (s *service) DeleteTransaction(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Receipt(ctx context.Context, id string) (string, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return RenderReceipt(tx), nil
}
