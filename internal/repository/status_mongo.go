package repository

import (
	"context"
	"fmt"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const statusCollection = "status_checks"

// MongoStatusRepository stores status checks in the status_checks collection
type MongoStatusRepository struct {
	coll *mongo.Collection
}

// ConnectMongo connects to MongoDB and pings the primary
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// NewMongoStatusRepository stores checks in the named database
func NewMongoStatusRepository(client *mongo.Client, database string) *MongoStatusRepository {
	return &MongoStatusRepository{
		coll: client.Database(database).Collection(statusCollection),
	}
}

func (r *MongoStatusRepository) Create(ctx context.Context, check *models.StatusCheck) error {
	if _, err := r.coll.InsertOne(ctx, check); err != nil {
		return fmt.Errorf("failed to insert status check: %w", err)
	}
	return nil
}

// List returns checks oldest first
func (r *MongoStatusRepository) List(ctx context.Context) ([]models.StatusCheck, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: 1}}).
		SetLimit(statusListLimit).
		SetProjection(bson.M{"_id": 0})

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query status checks: %w", err)
	}

	checks := []models.StatusCheck{}
	if err := cur.All(ctx, &checks); err != nil {
		return nil, fmt.Errorf("failed to decode status checks: %w", err)
	}
	return checks, nil
}
