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
)

type memberRepository struct {
	collection *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) interfaces.MemberRepository {
	return &memberRepository{
		collection: db.Collection("members"),
	}
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	member.ID = primitive.NewObjectID()
	member.JoinedAt = time.Now()
	member.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *memberRepository) GetByUsername(ctx context.Context, username string) (*models.Member, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *memberRepository) GetByPhone(ctx context.Context, phone string) (*models.Member, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *memberRepository) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Member, int64, error) {
	filter := params.GetSearchFilter([]string{"username", "phone"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []*models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, 0, fmt.Errorf("failed to decode members: %w", err)
	}

	return members, total, nil
}

func (r *memberRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to update member: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *memberRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

func (r *memberRepository) findOne(ctx context.Context, filter bson.M) (*models.Member, error) {
	var member models.Member
	err := r.collection.FindOne(ctx, filter).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}
