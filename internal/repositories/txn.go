package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxnRunner runs a function inside a single storage transaction so that
// multi-document mutations (status update + notification insert) commit
// or abort together.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTxnRunner implements TxnRunner on a MongoDB session. Requires a
// replica-set deployment; standalone servers reject transactions.
type MongoTxnRunner struct {
	client *mongo.Client
}

// NewMongoTxnRunner creates a new MongoTxnRunner
func NewMongoTxnRunner(client *mongo.Client) *MongoTxnRunner {
	return &MongoTxnRunner{client: client}
}

// WithTransaction starts a session and runs fn inside a transaction.
func (r *MongoTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
