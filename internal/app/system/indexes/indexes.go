// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup once the database is reachable. Each ensure*
function is idempotent. Errors are aggregated so every problem is visible.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureFlags(ctx, db, logger); err != nil {
		problems = append(problems, "flags: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isUnique(b *bool) bool {
	return b != nil && *b
}

// ensureIndexSet creates the desired indexes, reusing any index with the same
// key pattern and uniqueness and replacing one whose uniqueness differs.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, logger *zap.Logger) error {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			logger.Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}

	var errs []string
	for _, m := range models {
		sig := keySig(m.Keys.(bson.D))
		var unique *bool
		if m.Options != nil {
			unique = m.Options.Unique
		}

		if ex, ok := existing[sig]; ok {
			if isUnique(ex.Unique) == isUnique(unique) {
				logger.Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name))
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("drop %s: %v", ex.Name, err))
				continue
			}
		}

		name, err := coll.Indexes().CreateOne(ctx, m)
		if err != nil {
			errs = append(errs, fmt.Sprintf("create {%s}: %v", sig, err))
			continue
		}
		logger.Info("created index",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", isUnique(unique)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureFlags(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("flags"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "team", Value: 1}, {Key: "key", Value: 1}},
			Options: options.Index().SetName("uniq_flags_team_key").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "team", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_flags_team_updated"),
		},
	}, logger)
}
