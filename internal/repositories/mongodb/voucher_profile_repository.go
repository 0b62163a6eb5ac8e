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

type voucherProfileRepository struct {
	collection *mongo.Collection
}

func NewVoucherProfileRepository(db *mongo.Database) interfaces.VoucherProfileRepository {
	return &voucherProfileRepository{
		collection: db.Collection("voucher_profiles"),
	}
}

func (r *voucherProfileRepository) Create(ctx context.Context, profile *models.VoucherProfile) error {
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create voucher profile: %w", err)
	}

	return nil
}

func (r *voucherProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.VoucherProfile, error) {
	var profile models.VoucherProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get voucher profile: %w", err)
	}

	return &profile, nil
}

func (r *voucherProfileRepository) GetByName(ctx context.Context, name string) (*models.VoucherProfile, error) {
	var profile models.VoucherProfile
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get voucher profile by name: %w", err)
	}

	return &profile, nil
}

func (r *voucherProfileRepository) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.VoucherProfile, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "title"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count voucher profiles: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find voucher profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.VoucherProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, 0, fmt.Errorf("failed to decode voucher profiles: %w", err)
	}

	return profiles, total, nil
}

func (r *voucherProfileRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
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
		return fmt.Errorf("failed to update voucher profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *voucherProfileRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete voucher profile: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}
