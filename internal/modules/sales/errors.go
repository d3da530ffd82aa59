package sales

import "fmt"

// PersistenceError wraps a failed transaction write. The cart is left
// untouched so the cashier can retry without re-entering the order.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("saving transaction failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
