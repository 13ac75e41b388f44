// internal/app/store/flags/flagstore.go
package flagstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dalemusser/teamflags/internal/app/system/dbhandle"
	"github.com/dalemusser/teamflags/internal/app/system/htmlsanitize"
	"github.com/dalemusser/teamflags/internal/app/system/normalize"
	"github.com/dalemusser/teamflags/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CollectionName is the collection holding flags.
const CollectionName = "flags"

var (
	// ErrNotFound is returned when no flag matches.
	ErrNotFound = errors.New("flag not found")
	// ErrInvalid is returned for input that fails validation.
	ErrInvalid = errors.New("invalid flag")
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

// Source yields the current database handle. *dbhandle.Manager satisfies it.
type Source interface {
	Database(ctx context.Context) dbhandle.Database
}

// Store provides access to the flags collection.
type Store struct {
	src Source
	now func() time.Time
}

// New creates a new flag store.
func New(src Source) *Store {
	return &Store{src: src, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) coll(ctx context.Context) (dbhandle.Collection, bool) {
	db := s.src.Database(ctx)
	return db.Collection(CollectionName), db.Live()
}

// CreateInput holds the fields a caller may set on a new flag.
type CreateInput struct {
	Team        string
	Key         string
	Name        string
	Description string
	Enabled     bool
	CreatedBy   string
}

// Create inserts a flag. The returned bool reports whether the write reached
// the database; when it did not, the flag carries the stand-in's id.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.Flag, bool, error) {
	in.Team = normalize.Team(in.Team)
	in.Key = normalize.FlagKey(in.Key)
	name := htmlsanitize.StripTags(in.Name)

	if in.Team == "" {
		return models.Flag{}, false, fmt.Errorf("%w: team is required", ErrInvalid)
	}
	if !keyPattern.MatchString(in.Key) {
		return models.Flag{}, false, fmt.Errorf("%w: key must be a lowercase slug", ErrInvalid)
	}
	if name == "" {
		name = in.Key
	}

	now := s.now()
	flag := models.Flag{
		ID:          uuid.NewString(),
		Team:        in.Team,
		Key:         in.Key,
		Name:        name,
		Description: htmlsanitize.Inline(in.Description),
		Enabled:     in.Enabled,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	c, live := s.coll(ctx)
	res, err := c.InsertOne(ctx, flag)
	if err != nil {
		return models.Flag{}, live, err
	}
	if id, ok := res.InsertedID.(string); ok {
		flag.ID = id
	}
	return flag, live, nil
}

// List returns the flags of a team, or all flags when team is empty. The
// returned bool reports whether the flags were read from the database rather
// than the stand-in.
func (s *Store) List(ctx context.Context, team string) ([]models.Flag, bool, error) {
	filter := bson.M{}
	if team = normalize.Team(team); team != "" {
		filter["team"] = team
	}

	c, live := s.coll(ctx)
	docs, err := c.Find(ctx, filter)
	if err != nil {
		return nil, live, err
	}

	flags := make([]models.Flag, 0, len(docs))
	for _, d := range docs {
		f, err := decode(d)
		if err != nil {
			return nil, live, err
		}
		flags = append(flags, f)
	}
	return flags, live, nil
}

// Get returns a flag by id.
func (s *Store) Get(ctx context.Context, id string) (models.Flag, error) {
	c, _ := s.coll(ctx)
	doc, err := c.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.Flag{}, err
	}
	if doc == nil {
		return models.Flag{}, ErrNotFound
	}
	return decode(doc)
}

// SetEnabled switches a flag on or off.
func (s *Store) SetEnabled(ctx context.Context, id string, enabled bool) error {
	c, _ := s.coll(ctx)
	res, err := c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"enabled": enabled, "updated_at": s.now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a flag.
func (s *Store) Delete(ctx context.Context, id string) error {
	c, _ := s.coll(ctx)
	res, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func decode(doc bson.M) (models.Flag, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return models.Flag{}, err
	}
	var f models.Flag
	if err := bson.Unmarshal(raw, &f); err != nil {
		return models.Flag{}, err
	}
	return f, nil
}
