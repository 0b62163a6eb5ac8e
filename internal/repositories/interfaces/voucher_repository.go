package interfaces

import (
	"context"

	"luco/internal/models"
	"luco/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VoucherRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, voucher *models.Voucher) error
	CreateMany(ctx context.Context, vouchers []*models.Voucher) (int, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Voucher, error)
	GetByCode(ctx context.Context, code string) (*models.Voucher, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Listing
	GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Voucher, int64, error)
	GetByCategory(ctx context.Context, category models.VoucherCategory, params *utils.PaginationParams) ([]*models.Voucher, int64, error)
	GetByStatus(ctx context.Context, status models.VoucherStatus, params *utils.PaginationParams) ([]*models.Voucher, int64, error)
	GetActive(ctx context.Context) ([]*models.Voucher, error)

	// Purchase
	// MarkPurchased records the buyer on an active voucher. It fails with
	// ErrVoucherUnavailable when the voucher was already purchased or removed.
	MarkPurchased(ctx context.Context, id primitive.ObjectID, phone string) error

	// Analytics
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	SumPurchasedRevenue(ctx context.Context) (float64, error)
}
