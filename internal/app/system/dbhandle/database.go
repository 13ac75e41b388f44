// Package dbhandle owns the process-wide MongoDB handle.
//
// A Manager decides once whether persistence is configured, runs at most one
// connection attempt, and hands callers either a live Database or a StandIn
// that accepts the same calls and persists nothing. Database never returns an
// error: persistence problems are logged and absorbed here so that features
// unrelated to storage keep working.
package dbhandle

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Database is the handle callers use for persistence.
type Database interface {
	// Name is the resolved database name.
	Name() string
	// Collection returns a handle for the named collection.
	Collection(name string) Collection
	// Live reports whether writes reach a real server.
	Live() bool
}

// Collection is the read/write surface shared by live collections and the
// stand-in.
type Collection interface {
	Find(ctx context.Context, filter any) ([]bson.M, error)
	// FindOne returns nil, nil when no document matches.
	FindOne(ctx context.Context, filter any) (bson.M, error)
	InsertOne(ctx context.Context, doc any) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter, update any) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any) (*mongo.DeleteResult, error)
}

// liveDatabase adapts *mongo.Database to Database.
type liveDatabase struct {
	db *mongo.Database
}

func newLiveDatabase(db *mongo.Database) *liveDatabase {
	return &liveDatabase{db: db}
}

// Wrap adapts an already-connected driver database.
func Wrap(db *mongo.Database) Database {
	return newLiveDatabase(db)
}

func (d *liveDatabase) Name() string { return d.db.Name() }
func (d *liveDatabase) Live() bool   { return true }

func (d *liveDatabase) Collection(name string) Collection {
	return &liveCollection{c: d.db.Collection(name)}
}

// Mongo exposes the driver handle for index management.
func (d *liveDatabase) Mongo() *mongo.Database { return d.db }

type liveCollection struct {
	c *mongo.Collection
}

func (c *liveCollection) Find(ctx context.Context, filter any) ([]bson.M, error) {
	cur, err := c.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *liveCollection) FindOne(ctx context.Context, filter any) (bson.M, error) {
	var doc bson.M
	err := c.c.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *liveCollection) InsertOne(ctx context.Context, doc any) (*mongo.InsertOneResult, error) {
	return c.c.InsertOne(ctx, doc)
}

func (c *liveCollection) UpdateOne(ctx context.Context, filter, update any) (*mongo.UpdateResult, error) {
	return c.c.UpdateOne(ctx, filter, update)
}

func (c *liveCollection) DeleteOne(ctx context.Context, filter any) (*mongo.DeleteResult, error) {
	return c.c.DeleteOne(ctx, filter)
}

// MongoDatabase returns the driver handle behind db, or nil for the stand-in.
func MongoDatabase(db Database) *mongo.Database {
	if l, ok := db.(*liveDatabase); ok {
		return l.Mongo()
	}
	return nil
}
