package txn

import (
	"context"
	"errors"
	"testing"

	"github.com/convohub/convohub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsNotSupported(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("write conflict"), false},
		{"duplicate key command error", mongo.CommandError{Code: 11000, Message: "E11000 duplicate key"}, false},
		{"illegal operation code", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}, true},
		{"code 51", mongo.CommandError{Code: 51, Message: "illegal operation"}, true},
		{"code 263", mongo.CommandError{Code: 263, Message: "operation not allowed in a transaction"}, true},
		{"standalone phrasing", errors.New("transaction requires a replica set deployment"), true},
		{"documentdb phrasing", errors.New("session commands are not supported"), true},
		{"transaction plus session", errors.New("cannot continue transaction in this session"), true},
		{"transaction alone", errors.New("transaction aborted"), false},
		{"illegal operation phrasing", errors.New("illegal operation on a transaction"), true},
		{"shouting server", errors.New("TRANSACTION numbers require a REPLICA SET"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsNotSupported(tc.err); got != tc.want {
				t.Fatalf("IsNotSupported(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

// The batch commits whether or not the server supports transactions; on a
// standalone test server this exercises the degraded path.
func TestWithTransactionCommitsBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := WithTransaction(ctx, db.Client(), func(ctx context.Context) error {
		if _, err := db.Collection("first").InsertOne(ctx, bson.M{"_id": "a"}); err != nil {
			return err
		}
		_, err := db.Collection("second").InsertOne(ctx, bson.M{"_id": "b"})
		return err
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}

	for _, coll := range []string{"first", "second"} {
		n, err := db.Collection(coll).CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("counting %s: %v", coll, err)
		}
		if n != 1 {
			t.Fatalf("collection %s holds %d documents, expected 1", coll, n)
		}
	}
}

func TestWithTransactionReturnsCallbackError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	boom := errors.New("batch rejected")
	_, err := WithTransaction(ctx, db.Client(), func(ctx context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error back, got %v", err)
	}
}
