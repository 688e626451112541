package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/knst/site-services/internal/content"
	"github.com/knst/site-services/pkg/logger"
)

const (
	// Collection and DocumentID fix the single well-known location of the
	// site content: site_config/main.
	Collection = "site_config"
	DocumentID = "main"
)

// MongoRepo stores the content document in a MongoDB collection as a single
// document with a fixed _id. Partial writes map onto $set with a dotted key,
// which updates one leaf and leaves every sibling untouched.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (r *MongoRepo) Load(ctx context.Context) (content.Document, error) {
	var raw bson.M
	if err := r.col.FindOne(ctx, bson.M{"_id": DocumentID}).Decode(&raw); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load content: %w", err)
	}
	return fromBSON(raw), nil
}

func (r *MongoRepo) WritePath(ctx context.Context, p content.Path, value any) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": DocumentID},
		bson.M{"$set": bson.M{p.String(): value}})
	if err != nil {
		return fmt.Errorf("write %s: %w", p.String(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) WriteFull(ctx context.Context, doc content.Document) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": DocumentID}, bson.M(doc), opts); err != nil {
		return fmt.Errorf("write full content: %w", err)
	}
	return nil
}

// Watch opens a change stream filtered to the content document and invokes fn
// with the full post-change document for every event, after one immediate
// delivery of the current state. Requires a replica set; single-node
// deployments use the fetch-once path instead.
func (r *MongoRepo) Watch(ctx context.Context, fn func(content.Document)) (func(), error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "documentKey._id", Value: DocumentID}}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.col.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("watch content: %w", err)
	}

	wctx, cancel := context.WithCancel(ctx)

	// initial delivery with the current state, before any change event
	if doc, err := r.Load(ctx); err == nil {
		fn(doc)
	} else if err != ErrNotFound {
		logger.Warnf("content watch: initial load failed: %v", err)
	}

	go func() {
		defer stream.Close(context.Background())
		for stream.Next(wctx) {
			var ev struct {
				FullDocument bson.M `bson:"fullDocument"`
			}
			if err := stream.Decode(&ev); err != nil {
				logger.Warnf("content watch: decode event: %v", err)
				continue
			}
			if ev.FullDocument == nil {
				continue
			}
			fn(fromBSON(ev.FullDocument))
		}
		if err := stream.Err(); err != nil && wctx.Err() == nil {
			logger.Warnf("content watch: stream ended: %v", err)
		}
	}()

	return cancel, nil
}

// fromBSON converts decoded BSON into the plain map/slice shapes the content
// package works with, dropping the _id key.
func fromBSON(raw bson.M) content.Document {
	doc := content.Document{}
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		doc[k] = normalize(v)
	}
	return doc
}

func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = normalize(vv)
		}
		return m
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case primitive.A:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = normalize(vv)
		}
		return s
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = normalize(vv)
		}
		return s
	default:
		return v
	}
}
