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

type bannerRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewBannerRepository(db *mongo.Database, cache CacheService) interfaces.BannerRepository {
	return &bannerRepository{
		collection: db.Collection("banners"),
		cache:      cache,
	}
}

func (r *bannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	banner.ID = primitive.NewObjectID()
	banner.CreatedAt = time.Now()
	banner.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, banner)
	if err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}

	r.invalidateCache(ctx)
	return nil
}

func (r *bannerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Banner, error) {
	var banner models.Banner
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&banner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}

	return &banner, nil
}

func (r *bannerRepository) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Banner, int64, error) {
	filter := params.GetSearchFilter([]string{"description"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count banners: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find banners: %w", err)
	}
	defer cursor.Close(ctx)

	var banners []*models.Banner
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, 0, fmt.Errorf("failed to decode banners: %w", err)
	}

	return banners, total, nil
}

func (r *bannerRepository) GetLatest(ctx context.Context, limit int) ([]*models.Banner, error) {
	if r.cache != nil {
		var cached []*models.Banner
		if err := r.cache.Get(ctx, utils.CacheKeyBanners, &cached); err == nil && len(cached) > 0 {
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find banners: %w", err)
	}
	defer cursor.Close(ctx)

	var banners []*models.Banner
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, fmt.Errorf("failed to decode banners: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheKeyBanners, banners, 10*time.Minute)
	}

	return banners, nil
}

func (r *bannerRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateCache(ctx)
	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateCache(ctx)
	return nil
}

func (r *bannerRepository) invalidateCache(ctx context.Context) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheKeyBanners)
}
