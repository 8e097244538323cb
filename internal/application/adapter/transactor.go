// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Transactor runs a function inside a single unit of work.
// Repositories called with the ctx passed to fn join the transaction.
// Returning an error from fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
