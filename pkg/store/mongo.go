package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	svgerrors "github.com/matzehuels/svgstack/pkg/errors"
	"github.com/matzehuels/svgstack/pkg/record"
)

// MongoConfig configures a [Mongo] store.
type MongoConfig struct {
	URI        string
	Database   string // default "svgstack"
	Collection string // default "plots"

	// Timeout bounds connecting and index creation; default 10s.
	Timeout time.Duration
}

// Mongo stores records in a MongoDB collection using the record wire
// shape: name, svg (string or binary), tag, title and svg_str.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoDoc is the BSON form of a record.
type mongoDoc struct {
	ID     string   `bson:"_id"`
	Name   string   `bson:"name"`
	SVG    any      `bson:"svg"`
	Tags   []string `bson:"tag,omitempty"`
	Title  string   `bson:"title,omitempty"`
	SVGStr string   `bson:"svg_str,omitempty"`
}

// NewMongo connects to MongoDB and ensures a unique index on name.
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	if cfg.Database == "" {
		cfg.Database = "svgstack"
	}
	if cfg.Collection == "" {
		cfg.Collection = "plots"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create name index: %w", err)
	}
	return &Mongo{client: client, coll: coll}, nil
}

func (m *Mongo) Put(ctx context.Context, rec *record.Record) (string, error) {
	if err := validate(rec); err != nil {
		return "", err
	}

	fields := bson.M{"name": rec.Name}
	switch p := rec.SVG.(type) {
	case record.Text:
		fields["svg"] = string(p)
	case record.Compressed:
		fields["svg"] = primitive.Binary{Data: p}
	}
	unset := bson.M{}
	setOrUnset(fields, unset, "tag", rec.Tags, len(rec.Tags) > 0)
	setOrUnset(fields, unset, "title", rec.Title, rec.Title != "")
	setOrUnset(fields, unset, "svg_str", rec.SVGText, rec.SVGText != "")

	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"_id": NewID()},
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var doc struct {
		ID string `bson:"_id"`
	}
	err := m.coll.FindOneAndUpdate(ctx, bson.M{"name": rec.Name}, update,
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After).
			SetProjection(bson.M{"_id": 1}),
	).Decode(&doc)
	if err != nil {
		return "", fmt.Errorf("store record %q: %w", rec.Name, err)
	}
	return doc.ID, nil
}

func setOrUnset(set, unset bson.M, key string, v any, ok bool) {
	if ok {
		set[key] = v
	} else {
		unset[key] = ""
	}
}

func (m *Mongo) Get(ctx context.Context, name string) (*record.Record, error) {
	var doc mongoDoc
	err := m.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("get record %q: %w", name, err)
	}
	rec, err := doc.record()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (m *Mongo) List(ctx context.Context, tag string) ([]record.Record, error) {
	filter := bson.M{}
	if tag != "" {
		filter["tag"] = tag
	}
	cur, err := m.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	var docs []mongoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	out := make([]record.Record, 0, len(docs))
	for _, d := range docs {
		rec, err := d.record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (m *Mongo) Delete(ctx context.Context, name string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete record %q: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return notFound(name)
	}
	return nil
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// record converts a decoded document. svg decodes as a string for text
// payloads and as primitive.Binary for compressed ones.
func (d mongoDoc) record() (record.Record, error) {
	rec := record.Record{Name: d.Name, Tags: d.Tags, Title: d.Title, SVGText: d.SVGStr}
	switch v := d.SVG.(type) {
	case string:
		rec.SVG = record.Text(v)
	case primitive.Binary:
		rec.SVG = record.Compressed(v.Data)
	case []byte:
		rec.SVG = record.Compressed(v)
	default:
		return rec, svgerrors.New(svgerrors.ErrCodeInvalidInput, "record %q: unexpected svg type %T", d.Name, d.SVG)
	}
	return rec, nil
}

var _ Store = (*Mongo)(nil)
