// Package txn wraps multi-document MongoDB transactions with graceful
// degradation for deployments that cannot run them (standalone servers,
// some DocumentDB versions).
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a multi-document transaction so the batch
// commits all-or-nothing. On servers without transaction support it degrades
// to running fn without a transaction and reports degraded=true so the caller
// can log the weakened guarantee.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) (degraded bool, err error) {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return true, fn(ctx)
		}
		return false, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return true, fn(ctx)
	}
	return false, err
}

// IsNotSupported reports whether err means the server cannot run
// multi-document transactions (as opposed to the transaction failing).
//
// Known signals:
//   - CommandError code 20 (IllegalOperation, "Transaction numbers are only
//     allowed on a replica set member")
//   - CommandError code 51 (illegal operation)
//   - CommandError code 263 (operation not allowed in a transaction)
//   - message sniffing for standalone/DocumentDB phrasings
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	has := func(s string) bool { return strings.Contains(msg, s) }

	if has("transaction") && (has("replica set") || has("session") || has("illegal operation")) {
		return true
	}
	if has("session") && has("not supported") {
		return true
	}
	return false
}
