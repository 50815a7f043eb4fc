// Package txctx carries an open pgx transaction through a context so
// repositories can run inside it without threading tx handles explicitly.
package txctx

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type txKey struct{}

func Inject(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func Extract(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}
