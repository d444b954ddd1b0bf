package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/repository"
)

const (
	ingredientsColl      = "ingredients"
	recipesColl          = "recipes"
	ordersColl           = "orders"
	fixedCostsColl       = "fixed_costs"
	assetsColl           = "depreciable_assets"
	variableExpensesColl = "variable_expenses"
	configColl           = "production_config"
	snapshotsColl        = "monthly_snapshots"
)

// MongoDBRepository implements every store of the repository package on one database.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

var (
	_ repository.IngredientStore = (*MongoDBRepository)(nil)
	_ repository.RecipeStore     = (*MongoDBRepository)(nil)
	_ repository.OrderStore      = (*MongoDBRepository)(nil)
	_ repository.FinanceStore    = (*MongoDBRepository)(nil)
	_ repository.SnapshotStore   = (*MongoDBRepository)(nil)
	_ repository.Store           = (*MongoDBRepository)(nil)
)

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) insert(ctx context.Context, coll string, doc any) error {
	if _, err := r.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert into %s: %w", coll, err)
	}
	r.logger.Debug("document inserted", zap.String("collection", coll))
	return nil
}

func (r *MongoDBRepository) replace(ctx context.Context, coll, id string, doc any) error {
	res, err := r.db.Collection(coll).ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return fmt.Errorf("replace %s/%s: %w", coll, id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoDBRepository) set(ctx context.Context, coll, id string, fields bson.M) error {
	res, err := r.db.Collection(coll).UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", coll, id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoDBRepository) delete(ctx context.Context, coll, id string) error {
	res, err := r.db.Collection(coll).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", coll, id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoDBRepository) findOne(ctx context.Context, coll, id string, out any) error {
	err := r.db.Collection(coll).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find %s/%s: %w", coll, id, err)
	}
	return nil
}

// findAll decodes every document of the collection in the given sort order.
func findAll[T any](ctx context.Context, r *MongoDBRepository, coll string, sort bson.D) ([]T, error) {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}

	cursor, err := r.db.Collection(coll).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", coll, err)
	}

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll, err)
	}
	return out, nil
}
