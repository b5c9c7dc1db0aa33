package repositories

import (
	"context"
)

// TxRunner runs fn inside one atomic unit of work. If fn returns an error
// nothing fn did through tx is committed.
type TxRunner[T any] interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx T) error) error
}
