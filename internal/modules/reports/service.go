package reports

import (
	"context"
	"time"

	"github.com/warungkapten/kasir-backend/internal/modules/sales"
)

// TransactionSource provides the transaction list a summary is computed
// from. Satisfied by the sales repository and by the realtime history
// snapshot, which is what main wires in.
type TransactionSource interface {
	List(ctx context.Context) ([]*sales.Transaction, error)
}

// Service produces sales reports from the transaction history.
type Service interface {
	Summary(ctx context.Context, p Period) (Summary, error)
}

type service struct {
	transactions TransactionSource
	now          func() time.Time
}

// NewService creates a new reports service.
func NewService(transactions TransactionSource) Service {
	return &service{transactions: transactions, now: time.Now}
}

func (s *service) Summary(ctx context.Context, p Period) (Summary, error) {
	txs, err := s.transactions.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Aggregate(txs, p, s.now()), nil
}
