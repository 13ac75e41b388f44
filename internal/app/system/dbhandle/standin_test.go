package dbhandle

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestStandIn_Operations(t *testing.T) {
	ctx := context.Background()
	db := NewStandIn("team-flags-edu")
	c := db.Collection("flags")

	docs, err := c.Find(ctx, bson.M{})
	if err != nil || docs == nil || len(docs) != 0 {
		t.Errorf("Find() = %v, %v; want empty slice", docs, err)
	}

	upd, err := c.UpdateOne(ctx, bson.M{"_id": 1}, bson.M{"$set": bson.M{"a": 2}})
	if err != nil || upd.ModifiedCount != 0 || upd.MatchedCount != 0 {
		t.Errorf("UpdateOne() = %+v, %v; want zero counts", upd, err)
	}

	del, err := c.DeleteOne(ctx, bson.M{"_id": 1})
	if err != nil || del.DeletedCount != 0 {
		t.Errorf("DeleteOne() = %+v, %v; want zero deleted", del, err)
	}

	if db.Live() {
		t.Error("Live() = true for stand-in")
	}
	if MongoDatabase(db) != nil {
		t.Error("MongoDatabase() should be nil for stand-in")
	}
}
