package repo

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("resource not found")

// Transactor runs fn inside one store transaction. Repository calls made with
// the context passed to fn join that transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
