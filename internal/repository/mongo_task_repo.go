package repository

import (
	"context"
	"errors"

	"todo_service/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoTaskRepository stores tasks as documents in a single collection.
// The driver's _id is left to Mongo and never surfaces in domain.Task.
type MongoTaskRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoTaskRepository(client *mongo.Client, database, collection string) *MongoTaskRepository {
	return &MongoTaskRepository{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// EnsureIndexes creates the unique index on id. Safe to call repeatedly.
func (r *MongoTaskRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("id_unique"),
	})
	return err
}

func (r *MongoTaskRepository) Insert(ctx context.Context, t *domain.Task) error {
	_, err := r.coll.InsertOne(ctx, t)
	return err
}

func (r *MongoTaskRepository) Find(ctx context.Context, skip, limit int64) ([]*domain.Task, error) {
	opts := options.Find()
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.findMany(ctx, bson.M{}, opts)
}

func (r *MongoTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *MongoTaskRepository) FindByDueDate(ctx context.Context, due string) ([]*domain.Task, error) {
	return r.findMany(ctx, bson.M{"dueDate": due})
}

func (r *MongoTaskRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"completed": completed}})
	return err
}

func (r *MongoTaskRepository) SetIndex(ctx context.Context, id string, index int64) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"index": index}})
	return err
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (r *MongoTaskRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *MongoTaskRepository) findMany(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*domain.Task, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	res := make([]*domain.Task, 0)
	if err := cur.All(ctx, &res); err != nil {
		return nil, err
	}
	return res, nil
}
