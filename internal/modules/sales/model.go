package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/warungkapten/kasir-backend/internal/modules/catalog"
)

// PaymentMethod is how the customer settled the bill.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQRIS PaymentMethod = "QRIS"
)

// ParsePaymentMethod validates a payment method string. The empty string is
// returned as-is so the checkout calculator can report it as missing rather
// than invalid.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case PaymentCash, PaymentQRIS:
		return m, nil
	case "":
		return "", nil
	default:
		return "", fmt.Errorf("invalid payment method: %s (allowed: CASH, QRIS)", s)
	}
}

// TransactionItem is a sold line with the price frozen at checkout time.
type TransactionItem struct {
	ItemID   string `json:"item_id" firestore:"item_id"`
	Name     string `json:"name" firestore:"name"`
	Price    int64  `json:"price" firestore:"price"`
	Quantity int    `json:"quantity" firestore:"quantity"`
}

// Transaction is the immutable record of a completed sale. Timestamp is
// two-phase: the calculator fills in a provisional local time for the
// immediate receipt echo, while the stored document carries the
// server-assigned write time, which is the authoritative one.
type Transaction struct {
	ID            string            `json:"id" firestore:"-"`
	CustomerName  string            `json:"customer_name" firestore:"customer_name"`
	Channel       catalog.Channel   `json:"channel" firestore:"channel"`
	Items         []TransactionItem `json:"items" firestore:"items"`
	Total         int64             `json:"total" firestore:"total"`
	PaymentMethod PaymentMethod     `json:"payment_method" firestore:"payment_method"`
	AmountPaid    int64             `json:"amount_paid" firestore:"amount_paid"`
	Change        int64             `json:"change" firestore:"change"`
	Timestamp     time.Time         `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	CashierID     string            `json:"cashier_id" firestore:"cashier_id"`
	CashierName   string            `json:"cashier_name" firestore:"cashier_name"`
}

// CheckoutRequest is the payload for ringing up the cashier's cart.
type CheckoutRequest struct {
	CustomerName   string `json:"customer_name"`
	PaymentMethod  string `json:"payment_method"`
	AmountTendered int64  `json:"amount_tendered"`
}
