// Package store is the persistence layer: users, chats and messages live in
// MongoDB. The realtime core only consumes the membership query (MemberIDs);
// everything else backs the REST surface.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already registered")
)

type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and pings it; the server refuses to start without a
// reachable store.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	opts := options.Client().ApplyURI(uri)
	opts.SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Info().Str("module", "store").Str("db", dbName).Msg("connected to mongo")
	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Users() *Users {
	return &Users{coll: m.db.Collection("users")}
}

func (m *Mongo) Chats() *Chats {
	return &Chats{coll: m.db.Collection("chats")}
}

func (m *Mongo) Messages() *Messages {
	return &Messages{coll: m.db.Collection("messages")}
}
