package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/observability"
	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

// titlePath is the nested filter path for locating a document by one of
// its course titles.
const titlePath = "years.semesters.courses.title"

// MongoStore backs the store with MongoDB (or Cosmos DB's Mongo API).
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI      string
	Database string

	// Timeout bounds server selection; defaults to 20s, matching the
	// conservative Cosmos DB guidance.
	Timeout time.Duration
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connecting to %s", cfg.Database)
	}
	s := &MongoStore{client: client, db: client.Database(cfg.Database)}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// roadmapDoc pairs a roadmap with its Mongo identity for replace-by-id.
type roadmapDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	roadmap.Roadmap `bson:",inline"`
}

// Roadmaps returns all documents of a collection.
func (s *MongoStore) Roadmaps(ctx context.Context, collection string) ([]roadmap.Roadmap, error) {
	start := time.Now()
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		observability.Store().OnRead(ctx, collection, 0, time.Since(start), err)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "reading collection %q", collection)
	}
	var docs []roadmapDoc
	if err := cur.All(ctx, &docs); err != nil {
		observability.Store().OnRead(ctx, collection, 0, time.Since(start), err)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decoding collection %q", collection)
	}

	out := make([]roadmap.Roadmap, len(docs))
	for i, d := range docs {
		out[i] = d.Roadmap
	}
	observability.Store().OnRead(ctx, collection, len(out), time.Since(start), nil)
	return out, nil
}

// UpdateCourse finds the document containing the titled course, applies
// the field edit in memory, and replaces the document by id. Cosmos DB's
// Mongo API lacks filtered positional updates on doubly nested arrays,
// hence read-modify-replace.
func (s *MongoStore) UpdateCourse(ctx context.Context, collection, courseTitle, field, value string) error {
	start := time.Now()
	err := s.updateCourse(ctx, collection, courseTitle, field, value)
	observability.Store().OnUpdate(ctx, collection, field, time.Since(start), err)
	return err
}

func (s *MongoStore) updateCourse(ctx context.Context, collection, courseTitle, field, value string) error {
	coll := s.db.Collection(collection)

	var doc roadmapDoc
	err := coll.FindOne(ctx, bson.M{titlePath: courseTitle}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return errors.New(errors.ErrCodeCourseNotFound,
			"no course titled %q in %q", courseTitle, collection)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "finding course %q", courseTitle)
	}

	if err := doc.ApplyEdit(courseTitle, field, value); err != nil {
		return err
	}

	res, err := coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "replacing document for %q", courseTitle)
	}
	if res.MatchedCount == 0 {
		return errors.New(errors.ErrCodeStore, "document for %q vanished during update", courseTitle)
	}
	return nil
}

// InsertRoadmaps appends documents to a collection.
func (s *MongoStore) InsertRoadmaps(ctx context.Context, collection string, docs []roadmap.Roadmap) error {
	if len(docs) == 0 {
		return nil
	}
	payload := make([]any, len(docs))
	for i, d := range docs {
		payload[i] = roadmapDoc{Roadmap: d}
	}
	if _, err := s.db.Collection(collection).InsertMany(ctx, payload); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "inserting into %q", collection)
	}
	return nil
}

// Listings returns the college/degree catalog.
func (s *MongoStore) Listings(ctx context.Context) ([]roadmap.Listing, error) {
	cur, err := s.db.Collection(ListingsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "reading listings")
	}
	var listings []roadmap.Listing
	if err := cur.All(ctx, &listings); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decoding listings")
	}
	return listings, nil
}

// ReplaceListings replaces the catalog wholesale.
func (s *MongoStore) ReplaceListings(ctx context.Context, listings []roadmap.Listing) error {
	coll := s.db.Collection(ListingsCollection)
	if err := coll.Drop(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "dropping listings")
	}
	if len(listings) == 0 {
		return nil
	}
	payload := make([]any, len(listings))
	for i, l := range listings {
		payload[i] = l
	}
	if _, err := coll.InsertMany(ctx, payload); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "inserting listings")
	}
	return nil
}

// Collections lists the roadmap collections (the listing collection excluded).
func (s *MongoStore) Collections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "listing collections")
	}
	out := names[:0]
	for _, n := range names {
		if n != ListingsCollection {
			out = append(out, n)
		}
	}
	return out, nil
}

// Ping verifies the connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "pinging database")
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
