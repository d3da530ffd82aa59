package sales

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/warungkapten/kasir-backend/internal/modules/cart"
)

// Validation failures reported by the checkout calculator. All are
// recoverable at the counter; none of them mutate the cart.
var (
	ErrMissingCustomerName  = errors.New("customer name is required")
	ErrMissingPaymentMethod = errors.New("payment method is required")
	ErrInsufficientPayment  = errors.New("cash tendered is less than the total")
	ErrEmptyCart            = errors.New("cart is empty")
)

// CheckoutInput are the explicit inputs to the calculator beyond the cart
// itself. Resetting them after a successful checkout is the caller's job.
type CheckoutInput struct {
	CustomerName   string
	PaymentMethod  PaymentMethod
	AmountTendered int64
	CashierID      string
	CashierName    string
}

// Checkout validates the cart and payment inputs and produces the
// transaction record. Pure: it reads the cart but never mutates it, and a
// validation failure leaves every input untouched.
//
// Validation short-circuits in a fixed order: customer name, payment
// method, cash sufficiency, non-empty cart. The checkout button is disabled
// for an empty cart in the UI, but the calculator enforces it independently.
func Checkout(c *cart.Cart, in CheckoutInput, now time.Time) (*Transaction, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, ErrMissingCustomerName
	}
	if in.PaymentMethod == "" {
		return nil, ErrMissingPaymentMethod
	}
	total := c.Total()
	if in.PaymentMethod == PaymentCash && in.AmountTendered < total {
		return nil, ErrInsufficientPayment
	}
	if c.Len() == 0 {
		return nil, ErrEmptyCart
	}

	// QRIS settles instantly for the exact total; whatever was typed into
	// the tendered field is irrelevant and is not recorded.
	amountPaid := in.AmountTendered
	change := in.AmountTendered - total
	if in.PaymentMethod == PaymentQRIS {
		amountPaid = total
		change = 0
	}

	lines := c.Lines()
	items := make([]TransactionItem, len(lines))
	for i, line := range lines {
		items[i] = TransactionItem{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.UnitPrice,
			Quantity: line.Quantity,
		}
	}

	return &Transaction{
		ID:            uuid.New().String(),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		Channel:       c.Channel(),
		Items:         items,
		Total:         total,
		PaymentMethod: in.PaymentMethod,
		AmountPaid:    amountPaid,
		Change:        change,
		Timestamp:     now,
		CashierID:     in.CashierID,
		CashierName:   in.CashierName,
	}, nil
}
