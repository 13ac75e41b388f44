package dbhandle

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MockInsertedID is the id the stand-in reports for every insert.
const MockInsertedID = "mock"

// StandIn satisfies Database without a server. Reads are empty and writes
// are dropped.
type StandIn struct {
	name string
}

// NewStandIn returns a stand-in that reports name as its database name.
func NewStandIn(name string) StandIn {
	return StandIn{name: name}
}

func (s StandIn) Name() string { return s.name }
func (s StandIn) Live() bool   { return false }

func (s StandIn) Collection(string) Collection {
	return standInCollection{}
}

type standInCollection struct{}

func (standInCollection) Find(context.Context, any) ([]bson.M, error) {
	return []bson.M{}, nil
}

func (standInCollection) FindOne(context.Context, any) (bson.M, error) {
	return nil, nil
}

func (standInCollection) InsertOne(context.Context, any) (*mongo.InsertOneResult, error) {
	return &mongo.InsertOneResult{InsertedID: MockInsertedID}, nil
}

func (standInCollection) UpdateOne(context.Context, any, any) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{}, nil
}

func (standInCollection) DeleteOne(context.Context, any) (*mongo.DeleteResult, error) {
	return &mongo.DeleteResult{}, nil
}
