package repositories

import "context"

// TxFn is the body of a transaction. It must use the ctx it is given.
type TxFn func(ctx context.Context) error

// TransactionManager gives a request's storage work all-or-nothing
// semantics. fn returning nil commits; an error or panic rolls back, and
// the connection is released before ExecTx returns in every case.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
