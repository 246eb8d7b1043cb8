// Package repokit carries the shared plumbing repository packages bind against
package repokit

import "deyimci/internal/platform/store"

// Queryer is the sql surface a bound repo receives
type Queryer = store.RowQuerier

// TxRunner can run a function inside a transaction
type TxRunner = store.TxRunner

// Binder builds a domain repo bound to a specific Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// MustBind binds b to q, panicking on a nil Queryer since that is
// always a wiring bug in main
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}
