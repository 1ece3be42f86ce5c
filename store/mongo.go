package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flanksource/commons/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/faturalab/fatura/api"
	"github.com/faturalab/fatura/totals"
)

const collectionInvoices = "invoices"

// MongoStore is the mongo-backed Repository.
type MongoStore struct {
	collection *mongo.Collection
	now        func() time.Time
}

var _ Repository = (*MongoStore)(nil)

// NewMongoStore creates a store on the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection(collectionInvoices),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Connect dials mongo and returns a store on the named database.
func Connect(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return NewMongoStore(client.Database(database)), nil
}

func (s *MongoStore) Create(ctx context.Context, inv *api.Invoice) error {
	inv.ID = primitive.NewObjectID().Hex()
	now := s.now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	totals.Apply(inv)

	if _, err := s.collection.InsertOne(ctx, inv); err != nil {
		logger.Errorf("Create: InsertOne failed: %v", err)
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*api.Invoice, error) {
	var inv api.Invoice
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		logger.Errorf("Get: FindOne failed for %s: %v", id, err)
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	totals.Apply(&inv)
	return &inv, nil
}

func (s *MongoStore) List(ctx context.Context) ([]*api.Invoice, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		logger.Errorf("List: Find failed: %v", err)
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	var invoices []*api.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		logger.Errorf("List: cursor.All failed: %v", err)
		return nil, fmt.Errorf("failed to decode invoices: %w", err)
	}
	for _, inv := range invoices {
		totals.Apply(inv)
	}
	return invoices, nil
}

func (s *MongoStore) Replace(ctx context.Context, id string, inv *api.Invoice) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	inv.ID = existing.ID
	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = s.now()
	totals.Apply(inv)

	res, err := s.collection.ReplaceOne(ctx, bson.M{"_id": id}, inv)
	if err != nil {
		logger.Errorf("Replace: ReplaceOne failed for %s: %v", id, err)
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Errorf("Delete: DeleteOne failed for %s: %v", id, err)
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Duplicate(ctx context.Context, id string) (*api.Invoice, error) {
	original, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := CopyOf(*original, s.now())
	if err := s.Create(ctx, &dup); err != nil {
		return nil, err
	}
	return &dup, nil
}
