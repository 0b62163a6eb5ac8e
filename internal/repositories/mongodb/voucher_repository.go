package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type voucherRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewVoucherRepository(db *mongo.Database, cache CacheService) interfaces.VoucherRepository {
	return &voucherRepository{
		collection: db.Collection("vouchers"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *voucherRepository) Create(ctx context.Context, voucher *models.Voucher) error {
	voucher.ID = primitive.NewObjectID()
	voucher.CreatedAt = time.Now()
	voucher.UpdatedAt = time.Now()

	if voucher.Status == "" {
		voucher.Status = models.VoucherStatusActive
	}
	voucher.Code = strings.ToUpper(voucher.Code)

	_, err := r.collection.InsertOne(ctx, voucher)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create voucher: %w", err)
	}

	r.invalidateListCaches(ctx)
	return nil
}

func (r *voucherRepository) CreateMany(ctx context.Context, vouchers []*models.Voucher) (int, error) {
	if len(vouchers) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(vouchers))
	now := time.Now()
	for _, v := range vouchers {
		v.ID = primitive.NewObjectID()
		v.CreatedAt = now
		v.UpdatedAt = now
		if v.Status == "" {
			v.Status = models.VoucherStatusActive
		}
		v.Code = strings.ToUpper(v.Code)
		docs = append(docs, v)
	}

	// Unordered so one duplicate code does not abort the whole batch.
	opts := options.InsertMany().SetOrdered(false)
	result, err := r.collection.InsertMany(ctx, docs, opts)
	inserted := 0
	if result != nil {
		inserted = len(result.InsertedIDs)
	}
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return inserted, fmt.Errorf("failed to import vouchers: %w", err)
	}

	// A bulk import can touch any number of codes; drop every per-voucher
	// entry along with the list caches.
	if r.cache != nil {
		r.cache.DeletePattern(ctx, utils.CacheKeyVoucher+"*")
	}
	r.invalidateListCaches(ctx)
	return inserted, nil
}

func (r *voucherRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Voucher, error) {
	cacheKey := utils.CacheKeyVoucher + id.Hex()
	if r.cache != nil {
		var cached models.Voucher
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var voucher models.Voucher
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&voucher)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}

	if r.cache != nil && voucher.Status == models.VoucherStatusActive {
		r.cache.Set(ctx, cacheKey, voucher, 10*time.Minute)
	}

	return &voucher, nil
}

func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*models.Voucher, error) {
	code = strings.ToUpper(code)

	var voucher models.Voucher
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&voucher)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get voucher by code: %w", err)
	}

	return &voucher, nil
}

func (r *voucherRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	if code, exists := updates["code"]; exists {
		if codeStr, ok := code.(string); ok {
			updates["code"] = strings.ToUpper(codeStr)
		}
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to update voucher: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateVoucherCache(ctx, id.Hex())
	return nil
}

func (r *voucherRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete voucher: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateVoucherCache(ctx, id.Hex())
	return nil
}

// Listing
func (r *voucherRepository) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Voucher, int64, error) {
	filter := params.GetSearchFilter([]string{"title", "description", "code"})
	return r.find(ctx, filter, params)
}

func (r *voucherRepository) GetByCategory(ctx context.Context, category models.VoucherCategory, params *utils.PaginationParams) ([]*models.Voucher, int64, error) {
	return r.find(ctx, bson.M{"category": category}, params)
}

func (r *voucherRepository) GetByStatus(ctx context.Context, status models.VoucherStatus, params *utils.PaginationParams) ([]*models.Voucher, int64, error) {
	return r.find(ctx, bson.M{"status": status}, params)
}

func (r *voucherRepository) GetActive(ctx context.Context) ([]*models.Voucher, error) {
	if r.cache != nil {
		var cached []*models.Voucher
		if err := r.cache.Get(ctx, utils.CacheKeyActiveVoucher, &cached); err == nil {
			return cached, nil
		}
	}

	cursor, err := r.collection.Find(ctx, bson.M{"status": models.VoucherStatusActive})
	if err != nil {
		return nil, fmt.Errorf("failed to get active vouchers: %w", err)
	}
	defer cursor.Close(ctx)

	var vouchers []*models.Voucher
	if err := cursor.All(ctx, &vouchers); err != nil {
		return nil, fmt.Errorf("failed to decode vouchers: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheKeyActiveVoucher, vouchers, 5*time.Minute)
	}

	return vouchers, nil
}

// Purchase
func (r *voucherRepository) MarkPurchased(ctx context.Context, id primitive.ObjectID, phone string) error {
	now := time.Now()

	// Filtering on status makes the first buyer win; a second attempt
	// matches nothing instead of overwriting the sale.
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.VoucherStatusActive},
		bson.M{"$set": bson.M{
			"status":       models.VoucherStatusPurchased,
			"purchased_by": phone,
			"purchased_at": now,
			"updated_at":   now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark voucher purchased: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrVoucherUnavailable
	}

	r.invalidateVoucherCache(ctx, id.Hex())
	return nil
}

// Analytics
func (r *voucherRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "$status")
}

func (r *voucherRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "$category")
}

func (r *voucherRepository) SumPurchasedRevenue(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": models.VoucherStatusPurchased}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$price"}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}

	return results[0].Total, nil
}

func (r *voucherRepository) countGrouped(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": field, "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate vouchers: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode counts: %w", err)
	}

	counts := make(map[string]int64, len(results))
	for _, result := range results {
		counts[result.ID] = result.Count
	}

	return counts, nil
}

func (r *voucherRepository) find(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Voucher, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vouchers: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find vouchers: %w", err)
	}
	defer cursor.Close(ctx)

	var vouchers []*models.Voucher
	if err := cursor.All(ctx, &vouchers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode vouchers: %w", err)
	}

	return vouchers, total, nil
}

func (r *voucherRepository) invalidateVoucherCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheKeyVoucher+id)
	r.invalidateListCaches(ctx)
}

func (r *voucherRepository) invalidateListCaches(ctx context.Context) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheKeyActiveVoucher)
}
