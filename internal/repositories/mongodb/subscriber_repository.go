package mongodb

import (
	"context"
	"fmt"
	"time"

	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type subscriberRepository struct {
	collection *mongo.Collection
}

func NewSubscriberRepository(db *mongo.Database) interfaces.SubscriberRepository {
	return &subscriberRepository{
		collection: db.Collection("subscribers"),
	}
}

func (r *subscriberRepository) Create(ctx context.Context, subscriber *models.Subscriber) error {
	subscriber.ID = primitive.NewObjectID()
	subscriber.SubscribedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, subscriber)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	return nil
}

func (r *subscriberRepository) GetByPhone(ctx context.Context, phone string) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&subscriber)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}

	return &subscriber, nil
}

func (r *subscriberRepository) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error) {
	filter := params.GetSearchFilter([]string{"phone"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find subscribers: %w", err)
	}
	defer cursor.Close(ctx)

	var subscribers []*models.Subscriber
	if err := cursor.All(ctx, &subscribers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode subscribers: %w", err)
	}

	return subscribers, total, nil
}

func (r *subscriberRepository) GetAllPhones(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"phone": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find subscribers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Phone string `bson:"phone"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode subscribers: %w", err)
	}

	phones := make([]string, 0, len(docs))
	for _, doc := range docs {
		phones = append(phones, doc.Phone)
	}

	return phones, nil
}

func (r *subscriberRepository) UpdatePhone(ctx context.Context, id primitive.ObjectID, phone string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"phone": phone}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to update subscriber: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *subscriberRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *subscriberRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}
